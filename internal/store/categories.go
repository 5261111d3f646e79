package store

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/starford/skyroute/internal/apperr"
	"github.com/starford/skyroute/internal/canon"
)

// Category is one row of the canonical category catalog.
type Category struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// EnsureCategory normalizes name and gets-or-creates the matching catalog
// row inside its own immediate transaction. When a row already exists its
// stored spelling wins over the input. The catalog cache is invalidated
// only after a successful insert commit.
func (s *Store) EnsureCategory(name string) (Category, error) {
	normalized := canon.Category(name)
	if normalized == "" {
		return Category{}, apperr.Validationf("category name is empty after normalization")
	}

	tx, err := s.Begin()
	if err != nil {
		return Category{}, err
	}
	defer tx.Rollback() //nolint:errcheck // best-effort on failure path

	cat, err := lookupCategory(tx, normalized)
	switch {
	case err == nil:
		return cat, tx.Commit()
	case !errors.Is(err, apperr.ErrUnknownCategory):
		return Category{}, err
	}

	res, err := tx.Exec(`INSERT INTO categories (name) VALUES (?)`, normalized)
	if err != nil {
		return Category{}, fmt.Errorf("store: insert category: %w", uniqueErr(err))
	}
	id, err := res.LastInsertId()
	if err != nil {
		return Category{}, fmt.Errorf("store: category id: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return Category{}, fmt.Errorf("store: commit category: %w", err)
	}

	s.invalidateCatalog()
	return Category{ID: id, Name: normalized}, nil
}

// ResolveCategory is the strict lookup used during traveler registration:
// the category must already exist, registration never creates one.
func (s *Store) ResolveCategory(q Querier, name string) (Category, error) {
	normalized := canon.Category(name)
	if normalized == "" {
		return Category{}, apperr.Validationf("category name is empty after normalization")
	}
	return lookupCategory(q, normalized)
}

func lookupCategory(q Querier, normalized string) (Category, error) {
	var cat Category
	err := q.QueryRow(`SELECT id, name FROM categories WHERE name = ? COLLATE NOCASE`, normalized).
		Scan(&cat.ID, &cat.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return Category{}, fmt.Errorf("%w: %q", apperr.ErrUnknownCategory, normalized)
	}
	if err != nil {
		return Category{}, fmt.Errorf("store: lookup category: %w", err)
	}
	return cat, nil
}

// ListCategories returns the catalog ordered case-insensitively by name.
// The result is cached until the next EnsureCategory insert.
func (s *Store) ListCategories() ([]Category, error) {
	s.mu.RLock()
	cached := s.catalog
	s.mu.RUnlock()
	if cached != nil {
		return cached, nil
	}

	rows, err := s.conn.Query(`SELECT id, name FROM categories ORDER BY name COLLATE NOCASE`)
	if err != nil {
		return nil, fmt.Errorf("store: list categories: %w", err)
	}
	defer rows.Close()

	out := make([]Category, 0)
	for rows.Next() {
		var cat Category
		if err := rows.Scan(&cat.ID, &cat.Name); err != nil {
			return nil, err
		}
		out = append(out, cat)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.catalog = out
	s.mu.Unlock()
	return out, nil
}

func (s *Store) invalidateCatalog() {
	s.mu.Lock()
	s.catalog = nil
	s.mu.Unlock()
}
