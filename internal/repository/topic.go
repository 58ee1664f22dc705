package repository

import (
	"github.com/jmoiron/sqlx"
	"github.com/templui/importstage/internal/model"
)

const upsertTopicQuery = `INSERT OR REPLACE INTO topic (id, title, raw, category_id, closed, user_id, created_at, url, upload_count, tags)
          VALUES (:id, :title, :raw, :category_id, :closed, :user_id, :created_at, :url, :upload_count, :tags)`

type TopicRepository interface {
	Upsert(topic *model.Topic) error
	Count() (int, error)
	Page(after model.Key) (Page[model.Topic, model.Key], error)
	Attachments(topicID model.Key) ([]string, error)
	Reconciler
}

type topicRepository struct {
	db        *sqlx.DB
	batchSize int
}

func NewTopicRepository(db *sqlx.DB, size int) TopicRepository {
	return &topicRepository{db: db, batchSize: batchSize(size)}
}

// Upsert writes the topic, its attachment paths and its likes in one
// transaction. UploadCount is set from the attachment list. Attachment and
// like rows written for an earlier version of the topic are left in place.
func (r *topicRepository) Upsert(topic *model.Topic) error {
	topic.UploadCount = len(topic.Attachments)

	args, err := bindArgs(r.db, topic)
	if err != nil {
		return err
	}

	tx, err := r.db.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.NamedExec(upsertTopicQuery, args)
	if err != nil {
		return err
	}

	for _, path := range topic.Attachments {
		_, err = tx.Exec(`INSERT OR REPLACE INTO topic_upload (topic_id, path) VALUES (?, ?)`, topic.ID, path)
		if err != nil {
			return err
		}
	}

	for _, userID := range topic.LikeUserIDs {
		_, err = tx.Exec(`INSERT OR REPLACE INTO "like" (topic_id, user_id) VALUES (?, ?)`, topic.ID, userID)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (r *topicRepository) Count() (int, error) {
	var count int
	err := r.db.Get(&count, `SELECT COUNT(*) FROM topic`)
	return count, err
}

func (r *topicRepository) Page(after model.Key) (Page[model.Topic, model.Key], error) {
	var topics []model.Topic
	var err error
	if after.IsZero() {
		err = r.db.Select(&topics, `SELECT * FROM topic ORDER BY id LIMIT ?`, r.batchSize)
	} else {
		err = r.db.Select(&topics, `SELECT * FROM topic WHERE id > ? ORDER BY id LIMIT ?`, after, r.batchSize)
	}
	if err != nil {
		return Page[model.Topic, model.Key]{Next: after}, err
	}

	return newPage(topics, after, func(t model.Topic) model.Key { return t.ID }), nil
}

func (r *topicRepository) Attachments(topicID model.Key) ([]string, error) {
	paths := []string{}
	err := r.db.Select(&paths, `SELECT path FROM topic_upload WHERE topic_id = ? ORDER BY ROWID`, topicID)
	if err != nil {
		return nil, err
	}
	return paths, nil
}
