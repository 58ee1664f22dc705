package repository

import (
	"github.com/jmoiron/sqlx"
	"github.com/templui/importstage/internal/model"
)

type PmTopicRepository interface {
	Upsert(topic *model.PmTopic) error
	Count() (int, error)
	Page(after model.Key) (Page[model.PmTopic, model.Key], error)
}

type pmTopicRepository struct {
	db        *sqlx.DB
	batchSize int
}

func NewPmTopicRepository(db *sqlx.DB, size int) PmTopicRepository {
	return &pmTopicRepository{db: db, batchSize: batchSize(size)}
}

// Upsert writes a private message topic. Attachments only contribute to
// UploadCount; private messages have no attachment table.
func (r *pmTopicRepository) Upsert(topic *model.PmTopic) error {
	topic.UploadCount = len(topic.Attachments)

	args, err := bindArgs(r.db, topic)
	if err != nil {
		return err
	}

	query := `INSERT OR REPLACE INTO pm_topic (id, title, raw, category_id, closed, user_id, created_at, url, upload_count, target_users)
	          VALUES (:id, :title, :raw, :category_id, :closed, :user_id, :created_at, :url, :upload_count, :target_users)`

	_, err = r.db.NamedExec(query, args)
	return err
}

func (r *pmTopicRepository) Count() (int, error) {
	var count int
	err := r.db.Get(&count, `SELECT COUNT(*) FROM pm_topic`)
	return count, err
}

func (r *pmTopicRepository) Page(after model.Key) (Page[model.PmTopic, model.Key], error) {
	var topics []model.PmTopic
	var err error
	if after.IsZero() {
		err = r.db.Select(&topics, `SELECT * FROM pm_topic ORDER BY id LIMIT ?`, r.batchSize)
	} else {
		err = r.db.Select(&topics, `SELECT * FROM pm_topic WHERE id > ? ORDER BY id LIMIT ?`, after, r.batchSize)
	}
	if err != nil {
		return Page[model.PmTopic, model.Key]{Next: after}, err
	}

	return newPage(topics, after, func(t model.PmTopic) model.Key { return t.ID }), nil
}
