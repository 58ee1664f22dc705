package repository

import (
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/templui/importstage/internal/model"
)

var (
	ErrUploadNotFound = errors.New("upload not found")
)

type UploadRepository interface {
	Upsert(upload *model.Upload) error
	ByID(id model.Key) (*model.Upload, error)
}

type uploadRepository struct {
	db *sqlx.DB
}

func NewUploadRepository(db *sqlx.DB) UploadRepository {
	return &uploadRepository{db: db}
}

func (r *uploadRepository) Upsert(upload *model.Upload) error {
	args, err := bindArgs(r.db, upload)
	if err != nil {
		return err
	}

	query := `INSERT OR REPLACE INTO upload (id, user_id, original_filename, filename, description, url)
	          VALUES (:id, :user_id, :original_filename, :filename, :description, :url)`

	_, err = r.db.NamedExec(query, args)
	return err
}

func (r *uploadRepository) ByID(id model.Key) (*model.Upload, error) {
	upload := &model.Upload{}
	query := `SELECT * FROM upload WHERE id = ?`

	err := r.db.Get(upload, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUploadNotFound
	}
	if err != nil {
		return nil, err
	}

	return upload, nil
}
