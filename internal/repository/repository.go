package repository

import (
	"database/sql/driver"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/templui/importstage/internal/model"
)

const DefaultBatchSize = 1000

// Cursor is the checkpoint type of a paginated scan: a primary key, or a
// storage-order row id.
type Cursor interface {
	model.Key | int64
}

// Page is one batch of a cursor scan. Next is the cursor of the last row in
// Rows, or the cursor the scan was called with when Rows is empty.
type Page[T any, C Cursor] struct {
	Rows []T
	Next C
}

func (p Page[T, C]) Empty() bool {
	return len(p.Rows) == 0
}

func newPage[T any, C Cursor](rows []T, after C, cursor func(T) C) Page[T, C] {
	page := Page[T, C]{Rows: rows, Next: after}
	if len(rows) > 0 {
		page.Next = cursor(rows[len(rows)-1])
	}
	return page
}

func batchSize(n int) int {
	if n < 1 {
		return DefaultBatchSize
	}
	return n
}

// bindArgs flattens a record into named arguments keyed by column name and
// normalizes every value with normalize.
func bindArgs(db *sqlx.DB, record any) (map[string]any, error) {
	fields := db.Mapper.FieldMap(reflect.ValueOf(record))
	args := make(map[string]any, len(fields))
	for name, field := range fields {
		if strings.Contains(name, ".") {
			continue
		}
		value, err := normalize(field.Interface())
		if err != nil {
			return nil, fmt.Errorf("invalid value for %s: %w", name, err)
		}
		args[name] = value
	}
	return args, nil
}

func normalizeAll(values []any) ([]any, error) {
	out := make([]any, len(values))
	for i, v := range values {
		n, err := normalize(v)
		if err != nil {
			return nil, fmt.Errorf("invalid argument %d: %w", i+1, err)
		}
		out[i] = n
	}
	return out, nil
}

// normalize converts a value to its stored form: booleans become 0/1, dates
// become YYYY-MM-DD and times become UTC ISO-8601 text.
func normalize(v any) (any, error) {
	if v == nil {
		return nil, nil
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil, nil
		}
		return normalize(rv.Elem().Interface())
	}

	switch x := v.(type) {
	case bool:
		if x {
			return 1, nil
		}
		return 0, nil
	case time.Time:
		return x.UTC().Format(model.TimestampLayout), nil
	case driver.Valuer:
		value, err := x.Value()
		if err != nil {
			return nil, err
		}
		return value, nil
	}
	return v, nil
}
