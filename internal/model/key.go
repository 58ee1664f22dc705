package model

import (
	"database/sql/driver"
	"fmt"
	"strconv"
)

// KeyType is the storage type of every key column, fixed when a store is created.
type KeyType string

const (
	KeyTypeText    KeyType = "TEXT"
	KeyTypeInteger KeyType = "INTEGER"
)

// Key identifies a staged row. Integer keys are held in their decimal form.
// The empty Key is stored as NULL.
type Key string

func IntKey(id int64) Key {
	return Key(strconv.FormatInt(id, 10))
}

func (k Key) IsZero() bool {
	return k == ""
}

func (k Key) String() string {
	return string(k)
}

// Int returns the integer form of a numeric key.
func (k Key) Int() (int64, error) {
	return strconv.ParseInt(string(k), 10, 64)
}

func (k Key) Value() (driver.Value, error) {
	if k == "" {
		return nil, nil
	}
	return string(k), nil
}

func (k *Key) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*k = ""
	case int64:
		*k = IntKey(v)
	case float64:
		*k = Key(strconv.FormatFloat(v, 'f', -1, 64))
	case string:
		*k = Key(v)
	case []byte:
		*k = Key(v)
	default:
		return fmt.Errorf("cannot scan %T into Key", src)
	}
	return nil
}
