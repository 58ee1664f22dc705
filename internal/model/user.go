package model

type User struct {
	ID         Key       `db:"id" json:"id"`
	Email      *string   `db:"email" json:"email"`
	Username   *string   `db:"username" json:"username"`
	Name       *string   `db:"name" json:"name"`
	Bio        *string   `db:"bio" json:"bio"`
	AvatarPath *string   `db:"avatar_path" json:"avatar_path"`
	CreatedAt  Timestamp `db:"created_at" json:"created_at"`
	LastSeenAt Timestamp `db:"last_seen_at" json:"last_seen_at"`
	Active     bool      `db:"active" json:"active"`
	Staged     bool      `db:"staged" json:"staged"`
	Admin      bool      `db:"admin" json:"admin"`
}
