package repository

import (
	"log/slog"

	"github.com/jmoiron/sqlx"
	"github.com/templui/importstage/internal/model"
)

type PostRepository interface {
	Upsert(post *model.Post) error
	Count() (int, error)
	Page(afterRowID int64) (Page[model.PostRow, int64], error)
	SortedPage(afterRowID int64) (Page[model.PostRow, int64], error)
	Attachments(postID model.Key) ([]string, error)
	RebuildOrder() (int64, error)
}

type postRepository struct {
	db        *sqlx.DB
	batchSize int
}

func NewPostRepository(db *sqlx.DB, size int) PostRepository {
	return &postRepository{db: db, batchSize: batchSize(size)}
}

// Upsert writes the post, its attachment paths and its likes in one
// transaction. UploadCount is set from the attachment list.
func (r *postRepository) Upsert(post *model.Post) error {
	post.UploadCount = len(post.Attachments)

	args, err := bindArgs(r.db, post)
	if err != nil {
		return err
	}

	tx, err := r.db.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `INSERT OR REPLACE INTO post (id, raw, topic_id, user_id, created_at, reply_to_post_id, url, upload_count)
	          VALUES (:id, :raw, :topic_id, :user_id, :created_at, :reply_to_post_id, :url, :upload_count)`

	_, err = tx.NamedExec(query, args)
	if err != nil {
		return err
	}

	for _, path := range post.Attachments {
		_, err = tx.Exec(`INSERT OR REPLACE INTO post_upload (post_id, path) VALUES (?, ?)`, post.ID, path)
		if err != nil {
			return err
		}
	}

	for _, userID := range post.LikeUserIDs {
		_, err = tx.Exec(`INSERT OR REPLACE INTO "like" (post_id, user_id) VALUES (?, ?)`, post.ID, userID)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (r *postRepository) Count() (int, error) {
	var count int
	err := r.db.Get(&count, `SELECT COUNT(*) FROM post`)
	return count, err
}

// Page scans posts in storage order.
func (r *postRepository) Page(afterRowID int64) (Page[model.PostRow, int64], error) {
	var posts []model.PostRow
	query := `SELECT ROWID AS rowid, * FROM post WHERE ROWID > ? ORDER BY ROWID LIMIT ?`

	err := r.db.Select(&posts, query, afterRowID, r.batchSize)
	if err != nil {
		return Page[model.PostRow, int64]{Next: afterRowID}, err
	}

	return newPage(posts, afterRowID, rowID), nil
}

// SortedPage scans posts in the order of the last RebuildOrder. Posts
// written since then are missing until the order is rebuilt.
func (r *postRepository) SortedPage(afterRowID int64) (Page[model.PostRow, int64], error) {
	var posts []model.PostRow
	query := `SELECT o.ROWID AS rowid, p.*
	          FROM post p
	            JOIN post_order o ON (p.id = o.post_id)
	          WHERE o.ROWID > ?
	          ORDER BY o.ROWID
	          LIMIT ?`

	err := r.db.Select(&posts, query, afterRowID, r.batchSize)
	if err != nil {
		return Page[model.PostRow, int64]{Next: afterRowID}, err
	}

	return newPage(posts, afterRowID, rowID), nil
}

func rowID(p model.PostRow) int64 {
	return p.RowID
}

func (r *postRepository) Attachments(postID model.Key) ([]string, error) {
	paths := []string{}
	err := r.db.Select(&paths, `SELECT path FROM post_upload WHERE post_id = ? ORDER BY ROWID`, postID)
	if err != nil {
		return nil, err
	}
	return paths, nil
}

// RebuildOrder replaces post_order with every post id sorted by
// (created_at, topic_id, id). Source APIs page posts out of temporal order,
// so this runs once ingestion is complete.
func (r *postRepository) RebuildOrder() (int64, error) {
	tx, err := r.db.Beginx()
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	_, err = tx.Exec(`DELETE FROM post_order`)
	if err != nil {
		return 0, err
	}

	result, err := tx.Exec(`INSERT INTO post_order (post_id)
	                        SELECT id FROM post ORDER BY created_at, topic_id, id`)
	if err != nil {
		return 0, err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return 0, err
	}

	err = tx.Commit()
	if err != nil {
		return 0, err
	}

	slog.Debug("rebuilt post order", "rows", rows)
	return rows, nil
}
