package repository

import (
	"github.com/jmoiron/sqlx"
	"github.com/templui/importstage/internal/model"
)

type LikeRepository interface {
	Upsert(like *model.Like) error
	Count() (int, error)
	Page(afterRowID int64) (Page[model.LikeRow, int64], error)
}

type likeRepository struct {
	db        *sqlx.DB
	batchSize int
}

func NewLikeRepository(db *sqlx.DB, size int) LikeRepository {
	return &likeRepository{db: db, batchSize: batchSize(size)}
}

func (r *likeRepository) Upsert(like *model.Like) error {
	args, err := bindArgs(r.db, like)
	if err != nil {
		return err
	}

	query := `INSERT OR REPLACE INTO "like" (user_id, topic_id, post_id)
	          VALUES (:user_id, :topic_id, :post_id)`

	_, err = r.db.NamedExec(query, args)
	return err
}

func (r *likeRepository) Count() (int, error) {
	var count int
	err := r.db.Get(&count, `SELECT COUNT(*) FROM "like"`)
	return count, err
}

func (r *likeRepository) Page(afterRowID int64) (Page[model.LikeRow, int64], error) {
	var likes []model.LikeRow
	query := `SELECT ROWID AS rowid, * FROM "like" WHERE ROWID > ? ORDER BY ROWID LIMIT ?`

	err := r.db.Select(&likes, query, afterRowID, r.batchSize)
	if err != nil {
		return Page[model.LikeRow, int64]{Next: afterRowID}, err
	}

	return newPage(likes, afterRowID, func(l model.LikeRow) int64 { return l.RowID }), nil
}
