package storage

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/conorfennell/braingym/internal/domain"
)

// feedCap bounds the notification feed; the oldest entries are dropped
// once it is exceeded.
const feedCap = 80

// InsertNotification appends a feed entry and trims the feed to its cap.
func (db *DB) InsertNotification(n domain.Notification) error {
	_, err := db.conn.Exec(`
		INSERT INTO notifications (id, created_at, type, text, read)
		VALUES (?, ?, ?, ?, ?)
	`, n.ID.String(), n.CreatedAt, n.Type, n.Text, n.Read)
	if err != nil {
		return fmt.Errorf("failed to insert notification: %w", err)
	}

	_, err = db.conn.Exec(`
		DELETE FROM notifications WHERE id NOT IN (
			SELECT id FROM notifications ORDER BY created_at DESC, rowid DESC LIMIT ?
		)
	`, feedCap)
	if err != nil {
		return fmt.Errorf("failed to trim notification feed: %w", err)
	}
	return nil
}

// ListNotifications retrieves the feed, newest first.
func (db *DB) ListNotifications() ([]domain.Notification, error) {
	rows, err := db.conn.Query(`
		SELECT id, created_at, type, text, read
		FROM notifications ORDER BY created_at DESC, rowid DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}
	defer rows.Close()

	var feed []domain.Notification
	for rows.Next() {
		var n domain.Notification
		var id string
		if err := rows.Scan(&id, &n.CreatedAt, &n.Type, &n.Text, &n.Read); err != nil {
			return nil, fmt.Errorf("failed to scan notification row: %w", err)
		}
		if n.ID, err = uuid.Parse(id); err != nil {
			return nil, fmt.Errorf("failed to parse notification id %q: %w", id, err)
		}
		feed = append(feed, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate notification rows: %w", err)
	}
	return feed, nil
}

// MarkAllNotificationsRead marks the whole feed as read.
func (db *DB) MarkAllNotificationsRead() error {
	if _, err := db.conn.Exec(`UPDATE notifications SET read = 1`); err != nil {
		return fmt.Errorf("failed to mark notifications read: %w", err)
	}
	return nil
}
