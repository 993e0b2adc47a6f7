package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// StateRepository stores key-value pairs in the player_state table.
type StateRepository struct {
	db *sql.DB
}

// NewStateRepository creates a new [StateRepository] with the given database connection.
//
// The schema is created by shared.RunMigrations.
func NewStateRepository(db *sql.DB) *StateRepository {
	return &StateRepository{db: db}
}

// Get returns the value stored under key, or "" if there is none.
func (r *StateRepository) Get(key string) (string, error) {
	var value string
	err := r.db.QueryRow("SELECT value FROM player_state WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to query state %s: %w", key, err)
	}
	return value, nil
}

// Set inserts or overwrites the value under key.
func (r *StateRepository) Set(key, value string) error {
	query := `
		INSERT INTO player_state (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`

	if _, err := r.db.Exec(query, key, value, time.Now().UTC()); err != nil {
		return fmt.Errorf("failed to write state %s: %w", key, err)
	}
	return nil
}

// UpdatedAt returns when key was last written; the zero time if it never was.
func (r *StateRepository) UpdatedAt(key string) (time.Time, error) {
	var updatedAt time.Time
	err := r.db.QueryRow("SELECT updated_at FROM player_state WHERE key = ?", key).Scan(&updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return time.Time{}, nil
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to query state %s: %w", key, err)
	}
	return updatedAt, nil
}
