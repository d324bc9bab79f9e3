package storage

import (
	"database/sql"
	"fmt"
	"time"
)

// Source is a registered origin of markdown deck files, either a local
// directory or a git repository URL.
type Source struct {
	ID         int64
	Path       string
	Kind       string // "local" or "git"
	LastSynced sql.NullTime
}

// InsertSource registers a new source path and returns its ID.
func (db *DB) InsertSource(path, kind string) (int64, error) {
	res, err := db.conn.Exec(`
		INSERT INTO sources (path, kind) VALUES (?, ?)
	`, path, kind)
	if err != nil {
		return 0, fmt.Errorf("failed to insert source %s: %w", path, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get last insert ID for source %s: %w", path, err)
	}
	return id, nil
}

// FindSourceByPath retrieves a source by its path, or nil when it is not
// registered.
func (db *DB) FindSourceByPath(path string) (*Source, error) {
	var s Source
	row := db.conn.QueryRow(`
		SELECT id, path, kind, last_synced FROM sources WHERE path = ?
	`, path)
	err := row.Scan(&s.ID, &s.Path, &s.Kind, &s.LastSynced)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find source by path %s: %w", path, err)
	}
	return &s, nil
}

// ListSources retrieves all registered sources.
func (db *DB) ListSources() ([]Source, error) {
	rows, err := db.conn.Query(`
		SELECT id, path, kind, last_synced FROM sources ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list sources: %w", err)
	}
	defer rows.Close()

	var sources []Source
	for rows.Next() {
		var s Source
		if err := rows.Scan(&s.ID, &s.Path, &s.Kind, &s.LastSynced); err != nil {
			return nil, fmt.Errorf("failed to scan source row: %w", err)
		}
		sources = append(sources, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate source rows: %w", err)
	}
	return sources, nil
}

// UpdateSourceSynced stamps a source's last successful sync.
func (db *DB) UpdateSourceSynced(sourceID int64, at time.Time) error {
	_, err := db.conn.Exec(`
		UPDATE sources SET last_synced = ? WHERE id = ?
	`, at, sourceID)
	if err != nil {
		return fmt.Errorf("failed to update last synced for source ID %d: %w", sourceID, err)
	}
	return nil
}

// DeleteSource removes a source together with its imported decks.
func (db *DB) DeleteSource(id int64) error {
	decks, err := db.DecksBySource(id)
	if err != nil {
		return err
	}
	for _, d := range decks {
		if err := db.DeleteDeck(d.ID); err != nil {
			return err
		}
	}
	if _, err := db.conn.Exec(`DELETE FROM sources WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete source %d: %w", id, err)
	}
	return nil
}
