package store

import (
	"fmt"

	"github.com/MrJamesThe3rd/pennywise/internal/config"
	"github.com/MrJamesThe3rd/pennywise/internal/database"
	"github.com/MrJamesThe3rd/pennywise/internal/transaction"
)

// Open returns the slot selected by cfg.Storage.Backend together with a
// function releasing its resources.
func Open(cfg *config.Config) (transaction.Slot, func() error, error) {
	noop := func() error { return nil }

	switch cfg.Storage.Backend {
	case config.BackendFile, "":
		return NewFile(cfg.Storage.Dir, cfg.Storage.Key), noop, nil
	case config.BackendMemory:
		return NewMemory(), noop, nil
	case config.BackendSQLite:
		db, err := database.NewSQLite(cfg.Storage.SQLitePath)
		if err != nil {
			return nil, nil, fmt.Errorf("opening sqlite slot: %w", err)
		}

		return New(db, cfg.Storage.Key, SQLite), db.Close, nil
	case config.BackendPostgres:
		db, err := database.New(cfg.ConnectionString())
		if err != nil {
			return nil, nil, fmt.Errorf("opening postgres slot: %w", err)
		}

		return New(db, cfg.Storage.Key, Postgres), db.Close, nil
	}

	return nil, nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
}
