package storage

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/conorfennell/braingym/internal/domain"
)

const cardColumns = `id, front, back, ease, repetitions, interval_days, due_at, last_quality, source_hash, created_at, updated_at`

// InsertDeck inserts a deck and all of its cards. sourceID links imported
// decks to their markdown source; pass 0 for decks created in the app.
func (db *DB) InsertDeck(d domain.Deck, sourceID int64) error {
	src := sql.NullInt64{Int64: sourceID, Valid: sourceID != 0}
	_, err := db.conn.Exec(`
		INSERT INTO decks (id, name, source_id, created_at)
		VALUES (?, ?, ?, ?)
	`, d.ID.String(), d.Name, src, d.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert deck %s: %w", d.Name, err)
	}

	for _, c := range d.Cards {
		if err := db.InsertCard(d.ID, c); err != nil {
			return err
		}
	}
	return nil
}

// ListDecks retrieves all decks with their cards, in creation order.
// Cards keep their insertion order.
func (db *DB) ListDecks() ([]domain.Deck, error) {
	rows, err := db.conn.Query(`
		SELECT id, name, created_at FROM decks ORDER BY rowid
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list decks: %w", err)
	}
	defer rows.Close()

	var decks []domain.Deck
	for rows.Next() {
		var d domain.Deck
		var id string
		if err := rows.Scan(&id, &d.Name, &d.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan deck row: %w", err)
		}
		if d.ID, err = uuid.Parse(id); err != nil {
			return nil, fmt.Errorf("failed to parse deck id %q: %w", id, err)
		}
		decks = append(decks, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate deck rows: %w", err)
	}

	for i := range decks {
		if decks[i].Cards, err = db.cardsByDeck(decks[i].ID); err != nil {
			return nil, err
		}
	}
	return decks, nil
}

// FindDeck retrieves one deck with its cards, or nil when it does not
// exist.
func (db *DB) FindDeck(id uuid.UUID) (*domain.Deck, error) {
	var d domain.Deck
	var rawID string
	row := db.conn.QueryRow(`
		SELECT id, name, created_at FROM decks WHERE id = ?
	`, id.String())
	err := row.Scan(&rawID, &d.Name, &d.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find deck %s: %w", id, err)
	}
	d.ID = id

	if d.Cards, err = db.cardsByDeck(id); err != nil {
		return nil, err
	}
	return &d, nil
}

// FindDeckBySourceAndName locates an imported deck by its source and file
// name, or nil when the source has no such deck yet.
func (db *DB) FindDeckBySourceAndName(sourceID int64, name string) (*domain.Deck, error) {
	var rawID string
	row := db.conn.QueryRow(`
		SELECT id FROM decks WHERE source_id = ? AND name = ?
	`, sourceID, name)
	err := row.Scan(&rawID)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find deck %q for source %d: %w", name, sourceID, err)
	}

	id, err := uuid.Parse(rawID)
	if err != nil {
		return nil, fmt.Errorf("failed to parse deck id %q: %w", rawID, err)
	}
	return db.FindDeck(id)
}

// DecksBySource retrieves all decks imported from one source.
func (db *DB) DecksBySource(sourceID int64) ([]domain.Deck, error) {
	rows, err := db.conn.Query(`
		SELECT id FROM decks WHERE source_id = ? ORDER BY rowid
	`, sourceID)
	if err != nil {
		return nil, fmt.Errorf("failed to list decks for source %d: %w", sourceID, err)
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("failed to scan deck id row: %w", err)
		}
		id, err := uuid.Parse(raw)
		if err != nil {
			return nil, fmt.Errorf("failed to parse deck id %q: %w", raw, err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate deck id rows: %w", err)
	}

	var decks []domain.Deck
	for _, id := range ids {
		d, err := db.FindDeck(id)
		if err != nil {
			return nil, err
		}
		if d != nil {
			decks = append(decks, *d)
		}
	}
	return decks, nil
}

// DeleteDeck removes a deck and all of its cards.
func (db *DB) DeleteDeck(id uuid.UUID) error {
	if _, err := db.conn.Exec(`DELETE FROM cards WHERE deck_id = ?`, id.String()); err != nil {
		return fmt.Errorf("failed to delete cards of deck %s: %w", id, err)
	}
	if _, err := db.conn.Exec(`DELETE FROM decks WHERE id = ?`, id.String()); err != nil {
		return fmt.Errorf("failed to delete deck %s: %w", id, err)
	}
	return nil
}

// InsertCard appends a card to a deck.
func (db *DB) InsertCard(deckID uuid.UUID, c domain.Card) error {
	_, err := db.conn.Exec(`
		INSERT INTO cards (id, deck_id, front, back, ease, repetitions, interval_days, due_at, last_quality, source_hash, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		c.ID.String(), deckID.String(), c.Front, c.Back,
		c.Ease, c.Repetitions, c.IntervalDays, c.DueAt, c.LastQuality,
		c.SourceHash, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert card into deck %s: %w", deckID, err)
	}
	return nil
}

// UpdateCardSchedule writes back the scheduling state produced by the
// scheduler after a grade.
func (db *DB) UpdateCardSchedule(c domain.Card) error {
	_, err := db.conn.Exec(`
		UPDATE cards
		SET ease = ?, repetitions = ?, interval_days = ?, due_at = ?, last_quality = ?, updated_at = ?
		WHERE id = ?
	`, c.Ease, c.Repetitions, c.IntervalDays, c.DueAt, c.LastQuality, c.UpdatedAt, c.ID.String())
	if err != nil {
		return fmt.Errorf("failed to update schedule for card %s: %w", c.ID, err)
	}
	return nil
}

// DeleteCard removes a single card.
func (db *DB) DeleteCard(id uuid.UUID) error {
	if _, err := db.conn.Exec(`DELETE FROM cards WHERE id = ?`, id.String()); err != nil {
		return fmt.Errorf("failed to delete card %s: %w", id, err)
	}
	return nil
}

func (db *DB) cardsByDeck(deckID uuid.UUID) ([]domain.Card, error) {
	rows, err := db.conn.Query(`
		SELECT `+cardColumns+` FROM cards WHERE deck_id = ? ORDER BY rowid
	`, deckID.String())
	if err != nil {
		return nil, fmt.Errorf("failed to get cards for deck %s: %w", deckID, err)
	}
	defer rows.Close()

	var cards []domain.Card
	for rows.Next() {
		var c domain.Card
		var id string
		if err := rows.Scan(
			&id, &c.Front, &c.Back, &c.Ease, &c.Repetitions, &c.IntervalDays,
			&c.DueAt, &c.LastQuality, &c.SourceHash, &c.CreatedAt, &c.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan card row: %w", err)
		}
		if c.ID, err = uuid.Parse(id); err != nil {
			return nil, fmt.Errorf("failed to parse card id %q: %w", id, err)
		}
		cards = append(cards, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate card rows: %w", err)
	}
	return cards, nil
}
