package service

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/templui/importstage/internal/repository"
	"github.com/templui/importstage/internal/storage"
)

type SnapshotService struct {
	queryRepo repository.QueryRepository
	storage   storage.Storage
	prefix    string
}

func NewSnapshotService(queryRepo repository.QueryRepository, storage storage.Storage, prefix string) *SnapshotService {
	return &SnapshotService{
		queryRepo: queryRepo,
		storage:   storage,
		prefix:    prefix,
	}
}

type Snapshot struct {
	Key string
	URL string
}

// Upload copies the store into a compacted temporary file and uploads it.
func (s *SnapshotService) Upload(ctx context.Context) (*Snapshot, error) {
	dir, err := os.MkdirTemp("", "staging-snapshot-")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp dir: %w", err)
	}
	defer os.RemoveAll(dir)

	copyPath := filepath.Join(dir, "index.db")
	err = s.queryRepo.CopyTo(copyPath)
	if err != nil {
		return nil, fmt.Errorf("failed to copy store: %w", err)
	}

	f, err := os.Open(copyPath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	key := storage.SnapshotKey(s.prefix, time.Now())
	err = s.storage.Save(ctx, key, f)
	if err != nil {
		return nil, err
	}

	url, err := s.storage.PresignedURL(ctx, key)
	if err != nil {
		return nil, err
	}

	slog.Info("uploaded store snapshot", "key", key)
	return &Snapshot{Key: key, URL: url}, nil
}
