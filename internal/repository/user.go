package repository

import (
	"database/sql"
	"errors"
	"log/slog"

	"github.com/jmoiron/sqlx"
	"github.com/templui/importstage/internal/model"
)

var (
	ErrUserNotFound = errors.New("user not found")
)

type UserRepository interface {
	Upsert(user *model.User) error
	Count() (int, error)
	Page(after model.Key) (Page[model.User, model.Key], error)
	IDByUsername(username string) (model.Key, error)
	RecalculateLastSeenAt() (int64, error)
	RecalculateCreatedAt() (int64, error)
	DeleteUnused() (int64, error)
}

type userRepository struct {
	db        *sqlx.DB
	batchSize int
}

func NewUserRepository(db *sqlx.DB, size int) UserRepository {
	return &userRepository{db: db, batchSize: batchSize(size)}
}

func (r *userRepository) Upsert(user *model.User) error {
	args, err := bindArgs(r.db, user)
	if err != nil {
		return err
	}

	query := `INSERT OR REPLACE INTO "user" (id, email, username, name, bio, avatar_path, created_at, last_seen_at, active, staged, admin)
	          VALUES (:id, :email, :username, :name, :bio, :avatar_path, :created_at, :last_seen_at, :active, :staged, :admin)`

	_, err = r.db.NamedExec(query, args)
	return err
}

func (r *userRepository) Count() (int, error) {
	var count int
	err := r.db.Get(&count, `SELECT COUNT(*) FROM "user"`)
	return count, err
}

// Page returns up to one batch of users with an id greater than after,
// ordered by id. The empty key starts from the beginning.
func (r *userRepository) Page(after model.Key) (Page[model.User, model.Key], error) {
	var users []model.User
	var err error
	if after.IsZero() {
		err = r.db.Select(&users, `SELECT * FROM "user" ORDER BY id LIMIT ?`, r.batchSize)
	} else {
		err = r.db.Select(&users, `SELECT * FROM "user" WHERE id > ? ORDER BY id LIMIT ?`, after, r.batchSize)
	}
	if err != nil {
		return Page[model.User, model.Key]{Next: after}, err
	}

	return newPage(users, after, func(u model.User) model.Key { return u.ID }), nil
}

func (r *userRepository) IDByUsername(username string) (model.Key, error) {
	var id model.Key
	err := r.db.Get(&id, `SELECT id FROM "user" WHERE username = ?`, username)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrUserNotFound
	}
	return id, err
}

// RecalculateLastSeenAt sets last_seen_at to the newest post of each user.
// Users without posts keep their value.
func (r *userRepository) RecalculateLastSeenAt() (int64, error) {
	query := `UPDATE "user"
	          SET last_seen_at = (SELECT MAX(created_at) FROM post WHERE post.user_id = "user".id)
	          WHERE EXISTS (SELECT 1 FROM post WHERE post.user_id = "user".id)`

	return r.exec("recalculated user last_seen_at", query)
}

// RecalculateCreatedAt sets created_at to the oldest post of each user.
// Users without posts keep their value.
func (r *userRepository) RecalculateCreatedAt() (int64, error) {
	query := `UPDATE "user"
	          SET created_at = (SELECT MIN(created_at) FROM post WHERE post.user_id = "user".id)
	          WHERE EXISTS (SELECT 1 FROM post WHERE post.user_id = "user".id)`

	return r.exec("recalculated user created_at", query)
}

// DeleteUnused removes users that authored neither a topic nor a post.
func (r *userRepository) DeleteUnused() (int64, error) {
	query := `DELETE FROM "user"
	          WHERE NOT EXISTS (SELECT 1 FROM topic WHERE topic.user_id = "user".id)
	            AND NOT EXISTS (SELECT 1 FROM post WHERE post.user_id = "user".id)`

	return r.exec("deleted unused users", query)
}

func (r *userRepository) exec(msg, query string) (int64, error) {
	result, err := r.db.Exec(query)
	if err != nil {
		return 0, err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return 0, err
	}

	slog.Debug(msg, "rows", rows)
	return rows, nil
}
