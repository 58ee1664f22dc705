package model

// Like references a user and either a topic or a post.
type Like struct {
	UserID  Key `db:"user_id" json:"user_id"`
	TopicID Key `db:"topic_id" json:"topic_id"`
	PostID  Key `db:"post_id" json:"post_id"`
}

type LikeRow struct {
	RowID int64 `db:"rowid" json:"rowid"`
	Like
}
