package model

type Post struct {
	ID            Key       `db:"id" json:"id"`
	Raw           *string   `db:"raw" json:"raw"`
	TopicID       Key       `db:"topic_id" json:"topic_id"`
	UserID        Key       `db:"user_id" json:"user_id"`
	CreatedAt     Timestamp `db:"created_at" json:"created_at"`
	ReplyToPostID Key       `db:"reply_to_post_id" json:"reply_to_post_id"`
	URL           *string   `db:"url" json:"url"`
	UploadCount   int       `db:"upload_count" json:"upload_count"`

	// Fan-out lists, written to post_upload and like (not columns)
	Attachments []string `db:"-" json:"-"`
	LikeUserIDs []Key    `db:"-" json:"-"`
}

// PostRow is a post read back together with its cursor position.
type PostRow struct {
	RowID int64 `db:"rowid" json:"rowid"`
	Post
}

type PmPost struct {
	ID            Key       `db:"id" json:"id"`
	Raw           *string   `db:"raw" json:"raw"`
	TopicID       Key       `db:"topic_id" json:"topic_id"`
	UserID        Key       `db:"user_id" json:"user_id"`
	CreatedAt     Timestamp `db:"created_at" json:"created_at"`
	ReplyToPostID Key       `db:"reply_to_post_id" json:"reply_to_post_id"`
	URL           *string   `db:"url" json:"url"`
	UploadCount   int       `db:"upload_count" json:"upload_count"`

	Attachments []string `db:"-" json:"-"`
}

type PmPostRow struct {
	RowID int64 `db:"rowid" json:"rowid"`
	PmPost
}
