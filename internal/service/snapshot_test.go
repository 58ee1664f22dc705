package service

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/templui/importstage/internal/model"
	"github.com/templui/importstage/internal/repository"
)

type memoryStorage struct {
	objects map[string][]byte
	saveErr error
}

func (m *memoryStorage) Save(_ context.Context, key string, r io.Reader) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	b, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	m.objects[key] = b
	return nil
}

func (m *memoryStorage) PresignedURL(_ context.Context, key string) (string, error) {
	return "https://snapshots.example/" + key + "?sig=test", nil
}

func TestSnapshotUpload(t *testing.T) {
	store := openStore(t)
	categories := repository.NewCategoryRepository(store)
	if err := categories.Upsert(&model.Category{ID: "c1", Name: "General"}); err != nil {
		t.Fatalf("upsert category: %v", err)
	}

	mem := &memoryStorage{objects: map[string][]byte{}}
	svc := NewSnapshotService(repository.NewQueryRepository(store), mem, "forum")

	snap, err := svc.Upload(context.Background())
	if err != nil {
		t.Fatalf("upload: %v", err)
	}

	if !strings.HasPrefix(snap.Key, "forum/index-") || !strings.HasSuffix(snap.Key, ".db") {
		t.Fatalf("unexpected key %q", snap.Key)
	}
	if !strings.Contains(snap.URL, snap.Key) {
		t.Fatalf("expected URL for key, got %q", snap.URL)
	}

	content := mem.objects[snap.Key]
	if !bytes.HasPrefix(content, []byte("SQLite format 3\x00")) {
		t.Fatalf("expected a SQLite file to be uploaded, got %d bytes", len(content))
	}
}

func TestSnapshotUploadFailure(t *testing.T) {
	store := openStore(t)
	boom := errors.New("bucket unavailable")
	mem := &memoryStorage{objects: map[string][]byte{}, saveErr: boom}

	_, err := NewSnapshotService(repository.NewQueryRepository(store), mem, "").Upload(context.Background())
	if !errors.Is(err, boom) {
		t.Fatalf("expected save error, got %v", err)
	}
}
