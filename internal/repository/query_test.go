package repository

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/templui/importstage/internal/model"
)

func TestQueryRows(t *testing.T) {
	store := openStore(t, model.KeyTypeText)
	users := NewUserRepository(store, 10)
	queries := NewQueryRepository(store)

	for _, u := range []model.User{
		{ID: "a", Username: str("alice"), Active: true, Admin: true},
		{ID: "b", Username: str("bob"), Active: false},
	} {
		if err := users.Upsert(&u); err != nil {
			t.Fatalf("upsert user: %v", err)
		}
	}

	rows, err := queries.Rows(`SELECT id, username FROM "user" WHERE active = ? ORDER BY id`, true)
	if err != nil {
		t.Fatalf("rows: %v", err)
	}
	if len(rows) != 1 || rows[0]["id"] != "a" || rows[0]["username"] != "alice" {
		t.Fatalf("unexpected rows %v", rows)
	}

	rows, err = queries.Rows(`SELECT id FROM "user" WHERE id = ?`, model.Key("nobody"))
	if err != nil {
		t.Fatalf("rows: %v", err)
	}
	if len(rows) != 0 {
		t.Fatalf("expected no rows, got %v", rows)
	}
}

func TestQueryFirstValue(t *testing.T) {
	store := openStore(t, model.KeyTypeText)
	users := NewUserRepository(store, 10)
	queries := NewQueryRepository(store)

	if err := users.Upsert(&model.User{ID: "a", Username: str("alice"), Admin: true, CreatedAt: at(0)}); err != nil {
		t.Fatalf("upsert user: %v", err)
	}

	value, err := queries.FirstValue(`SELECT username FROM "user" WHERE admin = ?`, true)
	if err != nil {
		t.Fatalf("first value: %v", err)
	}
	if value != "alice" {
		t.Fatalf("expected alice, got %#v", value)
	}

	value, err = queries.FirstValue(`SELECT id FROM "user" WHERE created_at = ?`, base)
	if err != nil {
		t.Fatalf("first value by time: %v", err)
	}
	if value != "a" {
		t.Fatalf("expected time argument to match stored timestamp, got %#v", value)
	}

	value, err = queries.FirstValue(`SELECT id FROM "user" WHERE admin = ?`, false)
	if err != nil {
		t.Fatalf("first value: %v", err)
	}
	if value != nil {
		t.Fatalf("expected nil without rows, got %#v", value)
	}
}

func TestQueryCopyTo(t *testing.T) {
	store := openStore(t, model.KeyTypeText)
	categories := NewCategoryRepository(store)
	queries := NewQueryRepository(store)

	if err := categories.Upsert(&model.Category{ID: "c1", Name: "General"}); err != nil {
		t.Fatalf("upsert category: %v", err)
	}

	path := filepath.Join(t.TempDir(), "copy.db")
	if err := queries.CopyTo(path); err != nil {
		t.Fatalf("copy: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected copy on disk: %v", err)
	}

	copied, err := sqlx.Open("sqlite", path)
	if err != nil {
		t.Fatalf("open copy: %v", err)
	}
	defer copied.Close()

	var name string
	if err := copied.Get(&name, `SELECT name FROM category WHERE id = 'c1'`); err != nil {
		t.Fatalf("read copy: %v", err)
	}
	if name != "General" {
		t.Fatalf("unexpected name %q", name)
	}
}
