package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/pressly/goose/v3"
	"github.com/templui/importstage/internal/model"
)

var ErrKeyTypeMismatch = errors.New("store was created with a different key type")

// schema returns the versioned schema. Every statement is idempotent so the
// migrations can run against a store populated before versioning existed.
func schema(keyType model.KeyType) []*goose.Migration {
	return []*goose.Migration{
		goose.NewGoMigration(1, &goose.GoFunc{RunTx: execAll(tablesV1(keyType))}, nil),
	}
}

func tablesV1(keyType model.KeyType) []string {
	key := string(keyType)
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS category (
			id {key} NOT NULL PRIMARY KEY,
			name TEXT NOT NULL,
			description TEXT,
			position INTEGER,
			url TEXT
		)`,

		`CREATE TABLE IF NOT EXISTS upload (
			id {key} NOT NULL PRIMARY KEY,
			user_id {key},
			original_filename TEXT,
			filename TEXT,
			description TEXT,
			url TEXT
		)`,

		`CREATE TABLE IF NOT EXISTS "like" (
			user_id {key} NOT NULL,
			topic_id {key},
			post_id {key}
		)`,
		// NULL references are folded so repeated likes collapse under OR REPLACE
		`CREATE UNIQUE INDEX IF NOT EXISTS like_unique ON "like" (user_id, IFNULL(topic_id, ''), IFNULL(post_id, ''))`,

		`CREATE TABLE IF NOT EXISTS "user" (
			id {key} NOT NULL PRIMARY KEY,
			email TEXT,
			username TEXT,
			name TEXT,
			bio TEXT,
			avatar_path TEXT,
			created_at DATETIME,
			last_seen_at DATETIME,
			active BOOLEAN NOT NULL DEFAULT true,
			staged BOOLEAN NOT NULL DEFAULT false,
			admin BOOLEAN NOT NULL DEFAULT false
		)`,
		`CREATE UNIQUE INDEX IF NOT EXISTS user_by_username ON "user" (username)`,

		`CREATE TABLE IF NOT EXISTS topic (
			id {key} NOT NULL PRIMARY KEY,
			title TEXT,
			raw TEXT,
			category_id {key},
			closed BOOLEAN NOT NULL DEFAULT false,
			user_id {key} NOT NULL,
			created_at DATETIME,
			url TEXT,
			upload_count INTEGER DEFAULT 0,
			tags JSON
		)`,
		`CREATE INDEX IF NOT EXISTS topic_by_user_id ON topic (user_id)`,
		`CREATE TABLE IF NOT EXISTS topic_upload (
			topic_id {key} NOT NULL,
			path TEXT NOT NULL
		)`,
		`CREATE UNIQUE INDEX IF NOT EXISTS topic_upload_unique ON topic_upload (topic_id, path)`,

		`CREATE TABLE IF NOT EXISTS post (
			id {key} NOT NULL PRIMARY KEY,
			raw TEXT,
			topic_id {key} NOT NULL,
			user_id {key} NOT NULL,
			created_at DATETIME,
			reply_to_post_id {key},
			url TEXT,
			upload_count INTEGER DEFAULT 0
		)`,
		`CREATE INDEX IF NOT EXISTS post_by_user_id ON post (user_id)`,
		// post_id is UNIQUE rather than the primary key: an INTEGER PRIMARY KEY
		// would alias ROWID, and ROWID carries the rebuilt order.
		`CREATE TABLE IF NOT EXISTS post_order (
			post_id {key} NOT NULL UNIQUE
		)`,
		`CREATE TABLE IF NOT EXISTS post_upload (
			post_id {key} NOT NULL,
			path TEXT NOT NULL
		)`,
		`CREATE UNIQUE INDEX IF NOT EXISTS post_upload_unique ON post_upload (post_id, path)`,

		`CREATE TABLE IF NOT EXISTS pm_topic (
			id {key} NOT NULL PRIMARY KEY,
			title TEXT,
			raw TEXT,
			category_id {key},
			closed BOOLEAN NOT NULL DEFAULT false,
			user_id {key} NOT NULL,
			target_users TEXT,
			created_at DATETIME,
			url TEXT,
			upload_count INTEGER DEFAULT 0
		)`,

		`CREATE TABLE IF NOT EXISTS pm_post (
			id {key} NOT NULL PRIMARY KEY,
			raw TEXT,
			topic_id {key} NOT NULL,
			user_id {key} NOT NULL,
			created_at DATETIME,
			reply_to_post_id {key},
			url TEXT,
			upload_count INTEGER DEFAULT 0
		)`,
	}

	for i, stmt := range stmts {
		stmts[i] = strings.ReplaceAll(stmt, "{key}", key)
	}
	return stmts
}

func execAll(stmts []string) func(context.Context, *sql.Tx) error {
	return func(ctx context.Context, tx *sql.Tx) error {
		for _, stmt := range stmts {
			_, err := tx.ExecContext(ctx, stmt)
			if err != nil {
				return fmt.Errorf("failed to apply %q: %w", firstLine(stmt), err)
			}
		}
		return nil
	}
}

func firstLine(stmt string) string {
	line, _, _ := strings.Cut(stmt, "\n")
	return strings.TrimSpace(line)
}

// Migrate brings the store schema up to date using keyType for every key
// column, then checks that an existing store was created with the same key type.
func Migrate(ctx context.Context, db *sql.DB, keyType model.KeyType) error {
	if keyType != model.KeyTypeText && keyType != model.KeyTypeInteger {
		return fmt.Errorf("unsupported key type %q", keyType)
	}

	provider, err := goose.NewProvider(goose.DialectSQLite3, db, nil,
		goose.WithGoMigrations(schema(keyType)...),
		goose.WithDisableGlobalRegistry(true),
	)
	if err != nil {
		return fmt.Errorf("failed to create migration provider: %w", err)
	}

	results, err := provider.Up(ctx)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	for _, r := range results {
		slog.Debug("migration applied", "version", r.Source.Version, "duration", r.Duration)
	}

	stored, err := StoredKeyType(ctx, db)
	if err != nil {
		return err
	}
	if stored != keyType {
		return fmt.Errorf("%w: store uses %s, configured %s", ErrKeyTypeMismatch, stored, keyType)
	}

	slog.Info("migrations completed successfully", "key_type", keyType, "applied", len(results))
	return nil
}

// StoredKeyType reports the key type the store was created with.
func StoredKeyType(ctx context.Context, db *sql.DB) (model.KeyType, error) {
	var declared string
	err := db.QueryRowContext(ctx, `SELECT type FROM pragma_table_info('user') WHERE name = 'id'`).Scan(&declared)
	if err != nil {
		return "", fmt.Errorf("failed to read key type: %w", err)
	}
	return model.KeyType(strings.ToUpper(declared)), nil
}
