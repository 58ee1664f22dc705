package repository

import (
	"github.com/jmoiron/sqlx"
	"github.com/templui/importstage/internal/model"
)

type CategoryRepository interface {
	Upsert(category *model.Category) error
	All() ([]*model.Category, error)
	Count() (int, error)
}

type categoryRepository struct {
	db *sqlx.DB
}

func NewCategoryRepository(db *sqlx.DB) CategoryRepository {
	return &categoryRepository{db: db}
}

func (r *categoryRepository) Upsert(category *model.Category) error {
	args, err := bindArgs(r.db, category)
	if err != nil {
		return err
	}

	query := `INSERT OR REPLACE INTO category (id, name, description, position, url)
	          VALUES (:id, :name, :description, :position, :url)`

	_, err = r.db.NamedExec(query, args)
	return err
}

// All returns every category; categories are few enough to skip pagination.
func (r *categoryRepository) All() ([]*model.Category, error) {
	var categories []*model.Category
	query := `SELECT * FROM category ORDER BY position, name`

	err := r.db.Select(&categories, query)
	if err != nil {
		return nil, err
	}

	return categories, nil
}

func (r *categoryRepository) Count() (int, error) {
	var count int
	err := r.db.Get(&count, `SELECT COUNT(*) FROM category`)
	return count, err
}
