package db

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// PreferenceStore is a prefs.Store scoped to one profile.
type PreferenceStore struct {
	db      *DB
	profile string
}

// Preference is a stored key/value with its last update time.
type Preference struct {
	Key       string    `yaml:"key"`
	Value     string    `yaml:"value"`
	UpdatedAt time.Time `yaml:"updated_at"`
}

// Preferences returns the store for profile.
func (db *DB) Preferences(profile string) *PreferenceStore {
	return &PreferenceStore{db: db, profile: profile}
}

func (s *PreferenceStore) Get(key string) (string, bool, error) {
	var value string
	err := s.db.QueryRow(
		"SELECT value FROM preferences WHERE profile = ? AND key = ?",
		s.profile, key,
	).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read preference %q: %w", key, err)
	}
	return value, true, nil
}

func (s *PreferenceStore) Set(key, value string) error {
	_, err := s.db.Exec(`
		INSERT INTO preferences (profile, key, value, updated_at)
		VALUES (?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(profile, key) DO UPDATE SET
			value = excluded.value,
			updated_at = excluded.updated_at
	`, s.profile, key, value)
	if err != nil {
		return fmt.Errorf("failed to write preference %q: %w", key, err)
	}
	return nil
}

// List returns every preference of the profile ordered by key.
func (s *PreferenceStore) List() ([]Preference, error) {
	rows, err := s.db.Query(
		"SELECT key, value, updated_at FROM preferences WHERE profile = ? ORDER BY key",
		s.profile,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list preferences: %w", err)
	}
	defer rows.Close()

	var out []Preference
	for rows.Next() {
		var p Preference
		if err := rows.Scan(&p.Key, &p.Value, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan preference: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
