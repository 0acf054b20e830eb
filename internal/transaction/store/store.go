package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MrJamesThe3rd/pennywise/internal/transaction"
)

type Dialect int

const (
	Postgres Dialect = iota
	SQLite
)

// Store keeps the encoded collection in one row of the kv table.
type Store struct {
	db      *sql.DB
	key     string
	dialect Dialect
}

func New(db *sql.DB, key string, dialect Dialect) *Store {
	return &Store{db: db, key: key, dialect: dialect}
}

func (s *Store) Read(ctx context.Context) ([]byte, error) {
	query := `SELECT value FROM kv WHERE key = ` + s.placeholder(1)

	var value string
	if err := s.db.QueryRowContext(ctx, query, s.key).Scan(&value); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, transaction.ErrSlotEmpty
		}

		return nil, fmt.Errorf("reading slot %q: %w", s.key, err)
	}

	return []byte(value), nil
}

func (s *Store) Write(ctx context.Context, data []byte) error {
	query := `
		INSERT INTO kv (key, value, updated_at)
		VALUES (` + s.placeholder(1) + `, ` + s.placeholder(2) + `, CURRENT_TIMESTAMP)
		ON CONFLICT (key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`

	if _, err := s.db.ExecContext(ctx, query, s.key, string(data)); err != nil {
		return fmt.Errorf("writing slot %q: %w", s.key, err)
	}

	return nil
}

func (s *Store) placeholder(n int) string {
	if s.dialect == SQLite {
		return "?"
	}

	return fmt.Sprintf("$%d", n)
}
