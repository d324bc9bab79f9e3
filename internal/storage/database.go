// Package storage persists the application state in sqlite. It is a plain
// collaborator of the scheduling core: it stores what the pure functions
// return and makes no scheduling decisions of its own.
package storage

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Registers the sqlite driver

	"github.com/conorfennell/braingym/internal/domain"
)

// DB wraps the SQL database connection.
type DB struct {
	conn *sql.DB
}

// Open creates a new database connection and ensures the schema and the
// single-row tables exist.
func Open(dsn string) (*DB, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}

	s := &DB{conn: db}
	if err := s.ensureSingletons(); err != nil {
		return nil, err
	}
	return s, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

// ensureSingletons creates the profile and recovery rows on first open so
// every later read can assume they exist.
func (db *DB) ensureSingletons() error {
	_, err := db.conn.Exec(`
		INSERT OR IGNORE INTO profile (id) VALUES (1)
	`)
	if err != nil {
		return fmt.Errorf("failed to ensure profile row: %w", err)
	}

	_, err = db.conn.Exec(`
		INSERT OR IGNORE INTO recovery (id, sleep_hours, stress, soreness, updated_at)
		VALUES (1, 7.5, 5, 4, ?)
	`, time.Now())
	if err != nil {
		return fmt.Errorf("failed to ensure recovery row: %w", err)
	}
	return nil
}

// Profile retrieves the user profile.
func (db *DB) Profile() (domain.Profile, error) {
	var p domain.Profile
	var preferred string
	row := db.conn.QueryRow(`
		SELECT name, goal, jokes_enabled, voice_enabled, preferred_deck_id, max_study_minutes
		FROM profile WHERE id = 1
	`)
	if err := row.Scan(&p.Name, &p.Goal, &p.JokesEnabled, &p.VoiceEnabled, &preferred, &p.MaxStudyMinutes); err != nil {
		return domain.Profile{}, fmt.Errorf("failed to read profile: %w", err)
	}
	if preferred != "" {
		id, err := uuid.Parse(preferred)
		if err != nil {
			return domain.Profile{}, fmt.Errorf("failed to parse preferred deck id %q: %w", preferred, err)
		}
		p.PreferredDeckID = id
	}
	return p, nil
}

// UpdateProfile overwrites the user profile.
func (db *DB) UpdateProfile(p domain.Profile) error {
	preferred := ""
	if p.PreferredDeckID != uuid.Nil {
		preferred = p.PreferredDeckID.String()
	}
	_, err := db.conn.Exec(`
		UPDATE profile
		SET name = ?, goal = ?, jokes_enabled = ?, voice_enabled = ?, preferred_deck_id = ?, max_study_minutes = ?
		WHERE id = 1
	`, p.Name, p.Goal, p.JokesEnabled, p.VoiceEnabled, preferred, p.MaxStudyMinutes)
	if err != nil {
		return fmt.Errorf("failed to update profile: %w", err)
	}
	return nil
}

// Recovery retrieves the current recovery check-in snapshot.
func (db *DB) Recovery() (domain.Recovery, error) {
	var r domain.Recovery
	row := db.conn.QueryRow(`
		SELECT sleep_hours, stress, soreness, updated_at
		FROM recovery WHERE id = 1
	`)
	if err := row.Scan(&r.SleepHours, &r.Stress, &r.Soreness, &r.UpdatedAt); err != nil {
		return domain.Recovery{}, fmt.Errorf("failed to read recovery snapshot: %w", err)
	}
	return r, nil
}

// UpdateRecovery overwrites the single current recovery snapshot.
func (db *DB) UpdateRecovery(r domain.Recovery) error {
	_, err := db.conn.Exec(`
		UPDATE recovery
		SET sleep_hours = ?, stress = ?, soreness = ?, updated_at = ?
		WHERE id = 1
	`, r.SleepHours, r.Stress, r.Soreness, r.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to update recovery snapshot: %w", err)
	}
	return nil
}
