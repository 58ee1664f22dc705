package service

import (
	"context"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/templui/importstage/internal/db"
	"github.com/templui/importstage/internal/model"
)

func openStore(t *testing.T) *sqlx.DB {
	t.Helper()

	store, err := db.Open(db.Options{Dir: t.TempDir()})
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })

	if err := db.Migrate(context.Background(), store.DB, model.KeyTypeText); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return store
}

var base = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func at(minutes int) model.Timestamp {
	return model.At(base.Add(time.Duration(minutes) * time.Minute))
}
