// Package store provides the SQLite-backed booking store: the category
// catalog, traveler and reservation persistence, and the route metrics
// catalogs the segment materializer reads from.
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/mattn/go-sqlite3"

	"github.com/starford/skyroute/internal/apperr"
)

// Store wraps a sql.DB with booking-specific operations.
type Store struct {
	conn *sql.DB

	mu      sync.RWMutex
	catalog []Category // ListCategories read-through cache
}

// Querier runs single-row queries against either a live transaction or the
// pooled connection. Both *sql.DB and *sql.Tx satisfy it.
type Querier interface {
	QueryRow(query string, args ...any) *sql.Row
}

// Open opens (or creates) the SQLite database and applies the schema.
// The _txlock=immediate pragma makes every Begin issue BEGIN IMMEDIATE, so
// write transactions take the reserved lock up front instead of failing
// with SQLITE_BUSY at the first write.
func Open(path string) (*Store, error) {
	conn, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=on&_txlock=immediate")
	if err != nil {
		return nil, fmt.Errorf("store: open db: %w", err)
	}
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("store: ping: %w", err)
	}
	if _, err := conn.Exec(schemaSQL); err != nil {
		conn.Close()
		return nil, fmt.Errorf("store: apply schema: %w", err)
	}
	return &Store{conn: conn}, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.conn.Close()
}

// Begin starts an immediate write transaction.
func (s *Store) Begin() (*sql.Tx, error) {
	tx, err := s.conn.Begin()
	if err != nil {
		return nil, fmt.Errorf("store: begin tx: %w", err)
	}
	return tx, nil
}

// uniqueErr translates a SQLite unique-constraint failure into an
// apperr.ErrUniqueness naming the conflicting column. Other errors pass
// through unchanged.
func uniqueErr(err error) error {
	var serr sqlite3.Error
	if !errors.As(err, &serr) || serr.ExtendedCode != sqlite3.ErrConstraintUnique {
		return err
	}
	// Message shape: "UNIQUE constraint failed: travelers.email".
	msg := serr.Error()
	field := msg
	if i := strings.LastIndex(msg, ": "); i >= 0 {
		field = msg[i+2:]
	}
	if i := strings.LastIndex(field, "."); i >= 0 {
		field = field[i+1:]
	}
	return apperr.Uniqueness(field)
}
