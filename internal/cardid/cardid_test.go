package cardid

import (
	"testing"

	"github.com/conorfennell/braingym/internal/parser"
)

func TestNormalize(t *testing.T) {
	card := parser.ParsedCard{
		Front: "  What is HTMX? \r\n",
		Back:  "A library for AJAX.",
	}
	expected := "what is htmx?\na library for ajax."
	if got := Normalize(card); got != expected {
		t.Errorf("Expected normalized string %q, but got %q", expected, got)
	}
}

func TestHash(t *testing.T) {
	t.Run("hash is deterministic", func(t *testing.T) {
		a := parser.ParsedCard{Front: "Test", Back: "Answer"}
		b := parser.ParsedCard{Front: "Test", Back: "Answer"}
		if Hash(a) != Hash(b) {
			t.Error("Expected hashes for identical cards to be the same")
		}
	})

	t.Run("normalization produces the same hash", func(t *testing.T) {
		a := parser.ParsedCard{Front: "  what is go? ", Back: "A programming language."}
		b := parser.ParsedCard{Front: "What Is Go?", Back: "A programming language."}
		if Hash(a) != Hash(b) {
			t.Error("Expected hashes to be the same after normalization")
		}
	})

	t.Run("different content has different hashes", func(t *testing.T) {
		a := parser.ParsedCard{Front: "Card 1"}
		b := parser.ParsedCard{Front: "Card 2"}
		if Hash(a) == Hash(b) {
			t.Error("Expected hashes for different cards to differ")
		}
	})

	t.Run("front and back cannot bleed together", func(t *testing.T) {
		a := parser.ParsedCard{Front: "ab", Back: "c"}
		b := parser.ParsedCard{Front: "a", Back: "bc"}
		if Hash(a) == Hash(b) {
			t.Error("Expected the field boundary to affect the hash")
		}
	})
}
