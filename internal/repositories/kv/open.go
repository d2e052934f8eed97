package kv

import (
	"context"
	"database/sql"
	"fmt"
	"io"

	"github.com/dmitrijs2005/voyagelog/internal/migrations"
	"github.com/pressly/goose/v3"

	_ "modernc.org/sqlite"
)

// Driver names accepted by Open.
const (
	DriverSQLite = "sqlite"
	DriverDiskv  = "diskv"
	DriverMemory = "memory"
)

const diskvCacheSize = 1 << 20

// Options selects and locates a store.
type Options struct {
	Driver   string
	DSN      string // SQLite database path
	DiskvDir string
}

// RunMigrations brings the SQLite schema up to date.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	goose.SetLogger(goose.NopLogger())

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}
	if err := goose.UpContext(ctx, db, "."); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

// OpenSQLite opens the database at dsn and migrates it.
func OpenSQLite(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", dsn, err)
	}
	// One connection keeps ":memory:" databases coherent and serialises writers.
	db.SetMaxOpenConns(1)

	if err := RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// Open builds the repository named by opts.Driver. The returned closer
// releases the underlying database handle, if any.
func Open(ctx context.Context, opts Options) (Repository, io.Closer, error) {
	switch opts.Driver {
	case DriverSQLite, "":
		db, err := OpenSQLite(ctx, opts.DSN)
		if err != nil {
			return nil, nil, err
		}
		return NewSQLiteRepository(db), db, nil
	case DriverDiskv:
		return NewDiskvRepository(opts.DiskvDir, diskvCacheSize), nopCloser{}, nil
	case DriverMemory:
		return NewMemoryRepository(), nopCloser{}, nil
	default:
		return nil, nil, fmt.Errorf("unknown store driver %q", opts.Driver)
	}
}
