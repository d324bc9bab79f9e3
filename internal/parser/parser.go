// Package parser reads markdown deck files. One file is one deck; cards
// are "Q:"/"A:" blocks, optionally separated by "---" rules:
//
//	Q: What is the capital of France?
//	A: Paris
//	---
//	Q: First law of thermodynamics?
//	A: Energy is conserved: dU = dQ - dW.
//	It cannot be created or destroyed.
package parser

import (
	"bufio"
	"io"
	"os"
	"path/filepath"
	"strings"
)

const (
	frontPrefix = "Q:"
	backPrefix  = "A:"
	separator   = "---"
)

// ParsedCard is a front/back pair extracted from a deck file, before it
// gains any scheduling state.
type ParsedCard struct {
	Front string
	Back  string
}

// ParsedDeck is the content of one deck file.
type ParsedDeck struct {
	Name  string
	Cards []ParsedCard
}

// ParseFile reads one markdown deck file. The deck name is the file name
// without its extension.
func ParseFile(path string) (ParsedDeck, error) {
	file, err := os.Open(path)
	if err != nil {
		return ParsedDeck{}, err
	}
	defer file.Close()

	cards, err := Parse(file)
	if err != nil {
		return ParsedDeck{}, err
	}

	base := filepath.Base(path)
	name := strings.TrimSuffix(base, filepath.Ext(base))
	return ParsedDeck{Name: name, Cards: cards}, nil
}

type section int

const (
	seeking section = iota
	readingFront
	readingBack
)

// Parse extracts all cards from r. Lines after a prefix belong to that
// side until the next prefix or separator; cards without a front are
// dropped.
func Parse(r io.Reader) ([]ParsedCard, error) {
	scanner := bufio.NewScanner(r)

	var cards []ParsedCard
	var current ParsedCard
	var block []string
	state := seeking

	closeBlock := func() {
		if len(block) == 0 {
			return
		}
		content := strings.Join(block, "\n")
		switch state {
		case readingFront:
			current.Front = content
		case readingBack:
			current.Back = content
		}
		block = nil
	}

	closeCard := func() {
		closeBlock()
		if current.Front != "" {
			cards = append(cards, current)
		}
		current = ParsedCard{}
		state = seeking
	}

	for scanner.Scan() {
		line := scanner.Text()

		switch {
		case strings.TrimSpace(line) == separator:
			closeCard()
		case strings.HasPrefix(line, frontPrefix):
			// A new front always starts a new card.
			if state != seeking {
				closeCard()
			}
			state = readingFront
			block = append(block, trimPrefix(line, frontPrefix))
		case strings.HasPrefix(line, backPrefix):
			closeBlock()
			state = readingBack
			block = append(block, trimPrefix(line, backPrefix))
		case state != seeking:
			block = append(block, line)
		}
	}
	closeCard()

	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return cards, nil
}

func trimPrefix(line, prefix string) string {
	rest := line[len(prefix):]
	return strings.TrimPrefix(rest, " ")
}
