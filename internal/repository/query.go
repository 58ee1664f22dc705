package repository

import (
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
)

// QueryRepository runs caller-written SQL for lookups the typed
// repositories do not cover. Arguments are normalized like record fields.
type QueryRepository interface {
	Rows(query string, args ...any) ([]map[string]any, error)
	FirstValue(query string, args ...any) (any, error)
	CopyTo(path string) error
}

type queryRepository struct {
	db *sqlx.DB
}

func NewQueryRepository(db *sqlx.DB) QueryRepository {
	return &queryRepository{db: db}
}

// Rows returns every result row keyed by column name. Text is returned as
// string rather than []byte.
func (r *queryRepository) Rows(query string, args ...any) ([]map[string]any, error) {
	args, err := normalizeAll(args)
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Queryx(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []map[string]any
	for rows.Next() {
		row := map[string]any{}
		err = rows.MapScan(row)
		if err != nil {
			return nil, err
		}
		for k, v := range row {
			if b, ok := v.([]byte); ok {
				row[k] = string(b)
			}
		}
		result = append(result, row)
	}

	return result, rows.Err()
}

// FirstValue returns the first column of the first row, or nil when the
// query yields no rows.
func (r *queryRepository) FirstValue(query string, args ...any) (any, error) {
	args, err := normalizeAll(args)
	if err != nil {
		return nil, err
	}

	var value any
	err = r.db.QueryRowx(query, args...).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if b, ok := value.([]byte); ok {
		return string(b), nil
	}
	return value, nil
}

// CopyTo writes a compacted, consistent copy of the store to path, which
// must not exist yet.
func (r *queryRepository) CopyTo(path string) error {
	_, err := r.db.Exec(`VACUUM INTO ?`, path)
	return err
}
