package app

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/templui/importstage/internal/config"
	"github.com/templui/importstage/internal/db"
	"github.com/templui/importstage/internal/repository"
	"github.com/templui/importstage/internal/service"
	"github.com/templui/importstage/internal/storage"
)

// App owns the store handle and everything built on it. One App serves one
// ingestion pipeline; it must not be shared between concurrent writers.
type App struct {
	Cfg *config.Config
	DB  *sqlx.DB

	Categories repository.CategoryRepository
	Uploads    repository.UploadRepository
	Users      repository.UserRepository
	Topics     repository.TopicRepository
	PmTopics   repository.PmTopicRepository
	Posts      repository.PostRepository
	PmPosts    repository.PmPostRepository
	Likes      repository.LikeRepository
	Queries    repository.QueryRepository

	RepairService *service.RepairService
	ExportService *service.ExportService
}

func New(ctx context.Context, cfg *config.Config) (*App, error) {
	// Initialize store
	database, err := db.Open(db.Options{Dir: cfg.Dir, Recreate: cfg.Recreate})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize store: %w", err)
	}

	// Create or update the schema
	err = db.Migrate(ctx, database.DB, cfg.KeyType())
	if err != nil {
		_ = database.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	// Repositories
	categoryRepository := repository.NewCategoryRepository(database)
	uploadRepository := repository.NewUploadRepository(database)
	userRepository := repository.NewUserRepository(database, cfg.BatchSize)
	topicRepository := repository.NewTopicRepository(database, cfg.BatchSize)
	pmTopicRepository := repository.NewPmTopicRepository(database, cfg.BatchSize)
	postRepository := repository.NewPostRepository(database, cfg.BatchSize)
	pmPostRepository := repository.NewPmPostRepository(database, cfg.BatchSize)
	likeRepository := repository.NewLikeRepository(database, cfg.BatchSize)
	queryRepository := repository.NewQueryRepository(database)

	// Services
	repairService := service.NewRepairService(topicRepository, postRepository, userRepository)
	exportService := service.NewExportService(
		categoryRepository,
		userRepository,
		topicRepository,
		pmTopicRepository,
		postRepository,
		pmPostRepository,
		likeRepository,
	)

	return &App{
		Cfg:           cfg,
		DB:            database,
		Categories:    categoryRepository,
		Uploads:       uploadRepository,
		Users:         userRepository,
		Topics:        topicRepository,
		PmTopics:      pmTopicRepository,
		Posts:         postRepository,
		PmPosts:       pmPostRepository,
		Likes:         likeRepository,
		Queries:       queryRepository,
		RepairService: repairService,
		ExportService: exportService,
	}, nil
}

// SnapshotService connects to the configured bucket. It is built on demand
// so runs that never upload do not need storage credentials.
func (a *App) SnapshotService(ctx context.Context) (*service.SnapshotService, error) {
	if !a.Cfg.HasSnapshotStorage() {
		return nil, fmt.Errorf("snapshot storage is not configured: set S3_BUCKET")
	}

	fileStorage, err := storage.New(ctx, a.Cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	return service.NewSnapshotService(a.Queries, fileStorage, a.Cfg.S3Prefix), nil
}

func (a *App) Close() error {
	return db.Close(a.DB)
}
