package repository

import (
	"errors"
	"testing"

	"github.com/templui/importstage/internal/model"
)

func position(n int) *int {
	return &n
}

func TestCategoryAllOrdersByPositionThenName(t *testing.T) {
	store := openStore(t, model.KeyTypeText)
	categories := NewCategoryRepository(store)

	for _, c := range []model.Category{
		{ID: "c1", Name: "Support", Position: position(2)},
		{ID: "c2", Name: "Announcements", Position: position(1)},
		{ID: "c3", Name: "General", Position: position(2)},
		{ID: "c3", Name: "General", Position: position(2), Description: str("Anything goes")},
	} {
		if err := categories.Upsert(&c); err != nil {
			t.Fatalf("upsert category: %v", err)
		}
	}

	all, err := categories.All()
	if err != nil {
		t.Fatalf("all: %v", err)
	}

	var names []string
	for _, c := range all {
		names = append(names, c.Name)
	}
	if len(names) != 3 || names[0] != "Announcements" || names[1] != "General" || names[2] != "Support" {
		t.Fatalf("unexpected order %v", names)
	}
	if all[1].Description == nil || *all[1].Description != "Anything goes" {
		t.Fatalf("expected last write to win, got %+v", all[1])
	}

	if n, err := categories.Count(); err != nil || n != 3 {
		t.Fatalf("count: n=%d err=%v", n, err)
	}
}

func TestUploadByID(t *testing.T) {
	store := openStore(t, model.KeyTypeInteger)
	uploads := NewUploadRepository(store)

	err := uploads.Upsert(&model.Upload{
		ID:               "42",
		UserID:           "7",
		OriginalFilename: str("Holiday Photo.JPG"),
		Filename:         str("holiday-photo.jpg"),
	})
	if err != nil {
		t.Fatalf("upsert upload: %v", err)
	}

	upload, err := uploads.ByID("42")
	if err != nil {
		t.Fatalf("by id: %v", err)
	}
	if upload.UserID != "7" || upload.Filename == nil || *upload.Filename != "holiday-photo.jpg" || upload.URL != nil {
		t.Fatalf("unexpected upload %+v", upload)
	}

	if _, err := uploads.ByID("43"); !errors.Is(err, ErrUploadNotFound) {
		t.Fatalf("expected ErrUploadNotFound, got %v", err)
	}
}
