package repository

import (
	"testing"

	"github.com/templui/importstage/internal/model"
)

func TestLikeUpsertAndPage(t *testing.T) {
	store := openStore(t, model.KeyTypeText)
	likes := NewLikeRepository(store, 2)

	for _, like := range []model.Like{
		{UserID: "u1", PostID: "p1"},
		{UserID: "u1", PostID: "p1"},
		{UserID: "u2", PostID: "p1"},
		{UserID: "u1", TopicID: "t1"},
	} {
		if err := likes.Upsert(&like); err != nil {
			t.Fatalf("upsert like: %v", err)
		}
	}

	if n, err := likes.Count(); err != nil || n != 3 {
		t.Fatalf("expected duplicate like to collapse: n=%d err=%v", n, err)
	}

	var rows []model.LikeRow
	var cursor int64
	for {
		page, err := likes.Page(cursor)
		if err != nil {
			t.Fatalf("page: %v", err)
		}
		if page.Empty() {
			break
		}
		rows = append(rows, page.Rows...)
		cursor = page.Next
	}

	if len(rows) != 3 {
		t.Fatalf("expected 3 likes, got %d", len(rows))
	}
	last := rows[len(rows)-1]
	if last.TopicID != "t1" || !last.PostID.IsZero() {
		t.Fatalf("expected topic like with NULL post, got %+v", last)
	}
	for i := 1; i < len(rows); i++ {
		if rows[i].RowID <= rows[i-1].RowID {
			t.Fatalf("expected ascending row ids, got %+v", rows)
		}
	}
}

func TestLikeRequiresUser(t *testing.T) {
	store := openStore(t, model.KeyTypeText)
	likes := NewLikeRepository(store, 10)

	if err := likes.Upsert(&model.Like{PostID: "p1"}); err == nil {
		t.Fatalf("expected like without user to fail")
	}
}
