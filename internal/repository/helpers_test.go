package repository

import (
	"context"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/templui/importstage/internal/db"
	"github.com/templui/importstage/internal/model"
)

func openStore(t *testing.T, keyType model.KeyType) *sqlx.DB {
	t.Helper()

	store, err := db.Open(db.Options{Dir: t.TempDir()})
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })

	if err := db.Migrate(context.Background(), store.DB, keyType); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return store
}

func countRows(t *testing.T, store *sqlx.DB, query string, args ...any) int {
	t.Helper()

	var n int
	if err := store.Get(&n, query, args...); err != nil {
		t.Fatalf("count %q: %v", query, err)
	}
	return n
}

func str(s string) *string {
	return &s
}

var base = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func at(minutes int) model.Timestamp {
	return model.At(base.Add(time.Duration(minutes) * time.Minute))
}
