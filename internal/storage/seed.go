package storage

import (
	"fmt"
	"time"

	"github.com/conorfennell/braingym/internal/domain"
)

// SeedIfEmpty inserts the sample decks into a store that has none, so a
// fresh install has something to review. Returns true when seeding
// happened.
func (db *DB) SeedIfEmpty(now time.Time) (bool, error) {
	var count int
	if err := db.conn.QueryRow(`SELECT COUNT(*) FROM decks`).Scan(&count); err != nil {
		return false, fmt.Errorf("failed to count decks: %w", err)
	}
	if count > 0 {
		return false, nil
	}

	decks := domain.SampleDecks(now)
	for _, d := range decks {
		if err := db.InsertDeck(d, 0); err != nil {
			return false, err
		}
	}

	// Point the profile at the first sample deck.
	profile, err := db.Profile()
	if err != nil {
		return false, err
	}
	profile.PreferredDeckID = decks[0].ID
	if err := db.UpdateProfile(profile); err != nil {
		return false, err
	}
	return true, nil
}
