// Package sources reconciles registered markdown deck sources (local
// directories or git repositories) into the store. Re-syncing is
// idempotent: unchanged cards keep their scheduling state, new cards are
// inserted immediately due, and cards removed upstream are deleted.
package sources

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"net/url"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/conorfennell/braingym/internal/cardid"
	"github.com/conorfennell/braingym/internal/domain"
	"github.com/conorfennell/braingym/internal/gitsource"
	"github.com/conorfennell/braingym/internal/parser"
	"github.com/conorfennell/braingym/internal/storage"
)

// KindFor classifies a source path as "git" or "local".
func KindFor(path string) string {
	if strings.HasSuffix(path, ".git") || strings.HasPrefix(path, "git@") ||
		strings.HasPrefix(path, "https://") || strings.HasPrefix(path, "http://") {
		return "git"
	}
	return "local"
}

// RunSync reconciles every registered source. Git sources are cloned or
// pulled under reposDir first. Failures on one source are logged and do
// not stop the others.
func RunSync(ctx context.Context, db *storage.DB, reposDir string, now time.Time) error {
	slog.Info("starting sync for all sources")
	srcs, err := db.ListSources()
	if err != nil {
		return fmt.Errorf("failed to get sources: %w", err)
	}
	if len(srcs) == 0 {
		slog.Info("no sources configured")
		return nil
	}

	for _, src := range srcs {
		slog.Info("syncing source", "id", src.ID, "kind", src.Kind, "path", src.Path)

		dir := src.Path
		if src.Kind == "git" {
			dir, err = gitURLToLocalPath(reposDir, src.Path)
			if err != nil {
				slog.Error("cannot determine local path for git source", "url", src.Path, "error", err)
				continue
			}
			if err := gitsource.Sync(ctx, src.Path, dir); err != nil {
				slog.Error("failed to sync git source", "url", src.Path, "error", err)
				continue
			}
		}

		if err := reconcile(db, src.ID, dir, now); err != nil {
			slog.Error("failed to reconcile source", "path", src.Path, "error", err)
			continue
		}
		if err := db.UpdateSourceSynced(src.ID, now); err != nil {
			slog.Warn("failed to stamp source sync time", "source_id", src.ID, "error", err)
		}
	}
	slog.Info("sync complete")
	return nil
}

// reconcile walks one directory of markdown deck files and mirrors it
// into the store under the given source.
func reconcile(db *storage.DB, sourceID int64, dir string, now time.Time) error {
	parsed := make(map[string]parser.ParsedDeck)
	walkErr := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(strings.ToLower(d.Name()), ".md") {
			return nil
		}
		deck, parseErr := parser.ParseFile(path)
		if parseErr != nil {
			slog.Warn("skipping unreadable deck file", "path", path, "error", parseErr)
			return nil
		}
		if len(deck.Cards) > 0 {
			parsed[deck.Name] = deck
		}
		return nil
	})
	if walkErr != nil {
		return fmt.Errorf("failed to walk source directory %s: %w", dir, walkErr)
	}

	for name, fileDeck := range parsed {
		if err := reconcileDeck(db, sourceID, name, fileDeck, now); err != nil {
			return err
		}
	}

	// Decks whose file disappeared are removed entirely.
	stored, err := db.DecksBySource(sourceID)
	if err != nil {
		return err
	}
	for _, d := range stored {
		if _, found := parsed[d.Name]; !found {
			slog.Info("deck file gone, removing deck", "deck", d.Name)
			if err := db.DeleteDeck(d.ID); err != nil {
				return err
			}
		}
	}
	return nil
}

func reconcileDeck(db *storage.DB, sourceID int64, name string, fileDeck parser.ParsedDeck, now time.Time) error {
	deck, err := db.FindDeckBySourceAndName(sourceID, name)
	if err != nil {
		return err
	}
	if deck == nil {
		created := domain.Deck{ID: uuid.New(), Name: name, CreatedAt: now}
		if err := db.InsertDeck(created, sourceID); err != nil {
			return err
		}
		deck = &created
	}

	existing := make(map[string]domain.Card, len(deck.Cards))
	for _, c := range deck.Cards {
		if c.SourceHash != "" {
			existing[c.SourceHash] = c
		}
	}

	wanted := make(map[string]bool, len(fileDeck.Cards))
	var inserted int
	for _, pc := range fileDeck.Cards {
		hash := cardid.Hash(pc)
		wanted[hash] = true
		if _, ok := existing[hash]; ok {
			continue
		}
		card := domain.NewCard(pc.Front, pc.Back, now)
		card.SourceHash = hash
		if err := db.InsertCard(deck.ID, card); err != nil {
			return err
		}
		inserted++
	}

	var orphaned int
	for hash, c := range existing {
		if !wanted[hash] {
			if err := db.DeleteCard(c.ID); err != nil {
				return err
			}
			orphaned++
		}
	}

	slog.Info("deck reconciled", "deck", name, "cards", len(fileDeck.Cards),
		"inserted", inserted, "orphaned_deleted", orphaned)
	return nil
}

// gitURLToLocalPath maps a git URL (https or scp-like git@host:path) to a
// stable checkout directory under baseDir.
func gitURLToLocalPath(baseDir, repoURL string) (string, error) {
	parsedURL, err := url.Parse(repoURL)
	if err == nil && (parsedURL.Scheme == "https" || parsedURL.Scheme == "http") {
		sanitized := strings.TrimSuffix(parsedURL.Path, ".git")
		return filepath.Join(baseDir, parsedURL.Host, sanitized), nil
	}

	if strings.Contains(repoURL, "@") {
		parts := strings.Split(repoURL, ":")
		if len(parts) == 2 {
			hostAndUser := strings.Split(parts[0], "@")
			if len(hostAndUser) == 2 {
				host := hostAndUser[1]
				repoPath := strings.TrimSuffix(parts[1], ".git")
				return filepath.Join(baseDir, host, repoPath), nil
			}
		}
	}
	return "", fmt.Errorf("could not parse git URL: %s", repoURL)
}
