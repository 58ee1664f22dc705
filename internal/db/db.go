package db

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

const (
	driverName = "sqlite"
	fileName   = "index.db"
)

func init() {
	// modernc registers itself as "sqlite", which sqlx does not know by default
	sqlx.BindDriver(driverName, sqlx.QUESTION)
}

type Options struct {
	// Dir holds the store file; created when missing
	Dir string
	// Recreate deletes an existing store file before opening
	Recreate bool
}

// Path returns the location of the store file inside dir.
func Path(dir string) string {
	return filepath.Join(dir, fileName)
}

// Open opens or creates the staging store. The store is disposable, so it is
// tuned for throughput: no rollback journal and an exclusive lock held by a
// single connection for the lifetime of the handle.
func Open(opts Options) (*sqlx.DB, error) {
	if opts.Dir == "" {
		return nil, errors.New("store directory is required")
	}

	err := os.MkdirAll(opts.Dir, 0755)
	if err != nil {
		return nil, fmt.Errorf("failed to create store directory: %w", err)
	}

	path := Path(opts.Dir)
	if opts.Recreate {
		err = os.Remove(path)
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to remove existing store: %w", err)
		}
		if err == nil {
			slog.Info("removed existing store", "path", path)
		}
	}

	db, err := sqlx.Open(driverName, dsn(path))
	if err != nil {
		return nil, fmt.Errorf("failed to open store: %w", err)
	}

	// The exclusive lock belongs to one connection; a second pooled
	// connection would block on it.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)
	db.SetConnMaxIdleTime(0)

	err = db.Ping()
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping store: %w", err)
	}

	slog.Info("store opened", "path", path, "recreate", opts.Recreate)
	return db, nil
}

func dsn(path string) string {
	return "file:" + filepath.ToSlash(path) +
		"?_pragma=journal_mode(OFF)" +
		"&_pragma=locking_mode(EXCLUSIVE)"
}

func Close(db *sqlx.DB) error {
	if db != nil {
		return db.Close()
	}
	return nil
}
