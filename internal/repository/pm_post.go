package repository

import (
	"github.com/jmoiron/sqlx"
	"github.com/templui/importstage/internal/model"
)

type PmPostRepository interface {
	Upsert(post *model.PmPost) error
	Count() (int, error)
	Page(afterRowID int64) (Page[model.PmPostRow, int64], error)
}

type pmPostRepository struct {
	db        *sqlx.DB
	batchSize int
}

func NewPmPostRepository(db *sqlx.DB, size int) PmPostRepository {
	return &pmPostRepository{db: db, batchSize: batchSize(size)}
}

func (r *pmPostRepository) Upsert(post *model.PmPost) error {
	post.UploadCount = len(post.Attachments)

	args, err := bindArgs(r.db, post)
	if err != nil {
		return err
	}

	query := `INSERT OR REPLACE INTO pm_post (id, raw, topic_id, user_id, created_at, reply_to_post_id, url, upload_count)
	          VALUES (:id, :raw, :topic_id, :user_id, :created_at, :reply_to_post_id, :url, :upload_count)`

	_, err = r.db.NamedExec(query, args)
	return err
}

func (r *pmPostRepository) Count() (int, error) {
	var count int
	err := r.db.Get(&count, `SELECT COUNT(*) FROM pm_post`)
	return count, err
}

func (r *pmPostRepository) Page(afterRowID int64) (Page[model.PmPostRow, int64], error) {
	var posts []model.PmPostRow
	query := `SELECT ROWID AS rowid, * FROM pm_post WHERE ROWID > ? ORDER BY ROWID LIMIT ?`

	err := r.db.Select(&posts, query, afterRowID, r.batchSize)
	if err != nil {
		return Page[model.PmPostRow, int64]{Next: afterRowID}, err
	}

	return newPage(posts, afterRowID, func(p model.PmPostRow) int64 { return p.RowID }), nil
}
