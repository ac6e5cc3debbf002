package store

import (
	"database/sql"
	"errors"
	"time"
)

// TemplateStore is a Cache persisted in SQLite so templates survive across
// runs of the tool.
type TemplateStore struct {
	db *DB
}

// NewTemplateStore creates a template store using the given database.
func NewTemplateStore(db *DB) *TemplateStore {
	return &TemplateStore{db: db}
}

// Get returns the cached text for key. Lookup errors are logged and reported
// as a miss.
func (s *TemplateStore) Get(key string) (string, bool) {
	var content string
	err := s.db.sql.QueryRow(`SELECT content FROM templates WHERE key = ?`, key).Scan(&content)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			s.db.log.Error().Err(err).Str("key", key).Msg("failed to read template")
		}
		return "", false
	}
	return content, true
}

// Put stores value under key. Write errors are logged, never returned.
func (s *TemplateStore) Put(key, value string) {
	if err := s.Save(key, value); err != nil {
		s.db.log.Error().Err(err).Str("key", key).Msg("failed to save template")
	}
}

// Save inserts or replaces the template for key.
func (s *TemplateStore) Save(key, value string) error {
	now := time.Now().UTC().Format(time.DateTime)
	_, err := s.db.sql.Exec(
		`INSERT INTO templates (key, content, created_at, updated_at)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET
		   content = excluded.content,
		   updated_at = excluded.updated_at`,
		key, value, now, now,
	)
	return err
}

// Lookup returns the full template row for key, or nil if absent.
func (s *TemplateStore) Lookup(key string) (*Template, error) {
	var t Template
	var createdAt, updatedAt string
	err := s.db.sql.QueryRow(
		`SELECT key, content, created_at, updated_at FROM templates WHERE key = ?`, key,
	).Scan(&t.Key, &t.Content, &createdAt, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	t.CreatedAt, _ = time.Parse(time.DateTime, createdAt)
	t.UpdatedAt, _ = time.Parse(time.DateTime, updatedAt)
	return &t, nil
}

// List returns all templates, most recently updated first.
func (s *TemplateStore) List() ([]Template, error) {
	rows, err := s.db.sql.Query(
		`SELECT key, content, created_at, updated_at FROM templates ORDER BY updated_at DESC, key`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Template
	for rows.Next() {
		var t Template
		var createdAt, updatedAt string
		if err := rows.Scan(&t.Key, &t.Content, &createdAt, &updatedAt); err != nil {
			return nil, err
		}
		t.CreatedAt, _ = time.Parse(time.DateTime, createdAt)
		t.UpdatedAt, _ = time.Parse(time.DateTime, updatedAt)
		out = append(out, t)
	}
	return out, rows.Err()
}

// Delete removes the template for key. Returns true if a row was removed.
func (s *TemplateStore) Delete(key string) (bool, error) {
	res, err := s.db.sql.Exec(`DELETE FROM templates WHERE key = ?`, key)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

// Reset removes every template and returns how many were deleted.
func (s *TemplateStore) Reset() (int, error) {
	res, err := s.db.sql.Exec(`DELETE FROM templates`)
	if err != nil {
		return 0, err
	}
	n, err := res.RowsAffected()
	return int(n), err
}

// Count returns the number of cached templates.
func (s *TemplateStore) Count() (int, error) {
	var n int
	err := s.db.sql.QueryRow(`SELECT COUNT(*) FROM templates`).Scan(&n)
	return n, err
}
