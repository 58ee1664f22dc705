package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/templui/importstage/internal/repository"
)

type RepairService struct {
	topicRepo repository.TopicRepository
	postRepo  repository.PostRepository
	userRepo  repository.UserRepository
}

func NewRepairService(
	topicRepo repository.TopicRepository,
	postRepo repository.PostRepository,
	userRepo repository.UserRepository,
) *RepairService {
	return &RepairService{
		topicRepo: topicRepo,
		postRepo:  postRepo,
		userRepo:  userRepo,
	}
}

type RepairOptions struct {
	// CreateMissingTopics turns orphaned first posts into topics
	CreateMissingTopics bool
	// Backfill completes synthesized topics; nil keeps them as built
	Backfill repository.TopicBackfill
	// DeleteUnusedUsers prunes users without topics or posts
	DeleteUnusedUsers bool
}

type RepairReport struct {
	TopicsCreated    int
	PostsOrdered     int64
	LastSeenUpdated  int64
	CreatedAtUpdated int64
	UsersDeleted     int64
}

// Run executes the repair phase once ingestion is complete. Orphans are
// reconciled first so the rebuilt order and the user dates reflect the
// final set of posts, and pruning runs last so synthesized topics keep
// their authors.
func (s *RepairService) Run(ctx context.Context, opts RepairOptions) (*RepairReport, error) {
	report := &RepairReport{}
	var err error

	if opts.CreateMissingTopics {
		report.TopicsCreated, err = s.topicRepo.CreateMissing(ctx, opts.Backfill)
		if err != nil {
			return report, err
		}
	}

	report.PostsOrdered, err = s.postRepo.RebuildOrder()
	if err != nil {
		return report, fmt.Errorf("failed to rebuild post order: %w", err)
	}

	report.LastSeenUpdated, err = s.userRepo.RecalculateLastSeenAt()
	if err != nil {
		return report, fmt.Errorf("failed to recalculate last seen dates: %w", err)
	}

	report.CreatedAtUpdated, err = s.userRepo.RecalculateCreatedAt()
	if err != nil {
		return report, fmt.Errorf("failed to recalculate created dates: %w", err)
	}

	if opts.DeleteUnusedUsers {
		report.UsersDeleted, err = s.userRepo.DeleteUnused()
		if err != nil {
			return report, fmt.Errorf("failed to delete unused users: %w", err)
		}
	}

	slog.Info("repair completed",
		"topics_created", report.TopicsCreated,
		"posts_ordered", report.PostsOrdered,
		"last_seen_updated", report.LastSeenUpdated,
		"created_at_updated", report.CreatedAtUpdated,
		"users_deleted", report.UsersDeleted,
	)
	return report, nil
}
