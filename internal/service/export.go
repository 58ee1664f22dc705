package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/templui/importstage/internal/model"
	"github.com/templui/importstage/internal/repository"
)

var (
	ErrUnknownKind = errors.New("unknown entity kind")
)

// Kinds accepted by Drain.
const (
	KindCategories  = "categories"
	KindUsers       = "users"
	KindTopics      = "topics"
	KindPmTopics    = "pm-topics"
	KindPosts       = "posts"
	KindSortedPosts = "sorted-posts"
	KindPmPosts     = "pm-posts"
	KindLikes       = "likes"
)

var Kinds = []string{
	KindCategories,
	KindUsers,
	KindTopics,
	KindPmTopics,
	KindPosts,
	KindSortedPosts,
	KindPmPosts,
	KindLikes,
}

// ExportService drains staged tables as newline-delimited JSON, one batch at
// a time.
type ExportService struct {
	categoryRepo repository.CategoryRepository
	userRepo     repository.UserRepository
	topicRepo    repository.TopicRepository
	pmTopicRepo  repository.PmTopicRepository
	postRepo     repository.PostRepository
	pmPostRepo   repository.PmPostRepository
	likeRepo     repository.LikeRepository
}

func NewExportService(
	categoryRepo repository.CategoryRepository,
	userRepo repository.UserRepository,
	topicRepo repository.TopicRepository,
	pmTopicRepo repository.PmTopicRepository,
	postRepo repository.PostRepository,
	pmPostRepo repository.PmPostRepository,
	likeRepo repository.LikeRepository,
) *ExportService {
	return &ExportService{
		categoryRepo: categoryRepo,
		userRepo:     userRepo,
		topicRepo:    topicRepo,
		pmTopicRepo:  pmTopicRepo,
		postRepo:     postRepo,
		pmPostRepo:   pmPostRepo,
		likeRepo:     likeRepo,
	}
}

// Drain writes every row of kind to w and returns the number of rows written.
func (s *ExportService) Drain(kind string, w io.Writer) (int, error) {
	enc := json.NewEncoder(w)

	var n int
	var err error
	switch kind {
	case KindCategories:
		n, err = s.drainCategories(enc)
	case KindUsers:
		n, err = drain(enc, model.Key(""), s.userRepo.Page)
	case KindTopics:
		n, err = drain(enc, model.Key(""), s.topicRepo.Page)
	case KindPmTopics:
		n, err = drain(enc, model.Key(""), s.pmTopicRepo.Page)
	case KindPosts:
		n, err = drain(enc, int64(0), s.postRepo.Page)
	case KindSortedPosts:
		n, err = drain(enc, int64(0), s.postRepo.SortedPage)
	case KindPmPosts:
		n, err = drain(enc, int64(0), s.pmPostRepo.Page)
	case KindLikes:
		n, err = drain(enc, int64(0), s.likeRepo.Page)
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
	if err != nil {
		return n, fmt.Errorf("failed to drain %s: %w", kind, err)
	}

	slog.Info("drained rows", "kind", kind, "rows", n)
	return n, nil
}

func (s *ExportService) drainCategories(enc *json.Encoder) (int, error) {
	categories, err := s.categoryRepo.All()
	if err != nil {
		return 0, err
	}
	for _, c := range categories {
		if err := enc.Encode(c); err != nil {
			return 0, err
		}
	}
	return len(categories), nil
}

// drain follows the cursor from start until a page comes back empty.
func drain[T any, C repository.Cursor](enc *json.Encoder, start C, fetch func(C) (repository.Page[T, C], error)) (int, error) {
	n := 0
	cursor := start
	for {
		page, err := fetch(cursor)
		if err != nil {
			return n, err
		}
		if page.Empty() {
			return n, nil
		}

		for _, row := range page.Rows {
			if err := enc.Encode(row); err != nil {
				return n, err
			}
			n++
		}
		cursor = page.Next
	}
}
