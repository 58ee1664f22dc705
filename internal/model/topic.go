package model

type Topic struct {
	ID          Key        `db:"id" json:"id"`
	Title       *string    `db:"title" json:"title"`
	Raw         *string    `db:"raw" json:"raw"`
	CategoryID  Key        `db:"category_id" json:"category_id"`
	Closed      bool       `db:"closed" json:"closed"`
	UserID      Key        `db:"user_id" json:"user_id"`
	CreatedAt   Timestamp  `db:"created_at" json:"created_at"`
	URL         *string    `db:"url" json:"url"`
	UploadCount int        `db:"upload_count" json:"upload_count"`
	Tags        StringList `db:"tags" json:"tags"`

	// Fan-out lists, written to topic_upload and like (not columns)
	Attachments []string `db:"-" json:"-"`
	LikeUserIDs []Key    `db:"-" json:"-"`
}

// PmTopic is a private message thread. TargetUsers lists the recipients.
type PmTopic struct {
	ID          Key        `db:"id" json:"id"`
	Title       *string    `db:"title" json:"title"`
	Raw         *string    `db:"raw" json:"raw"`
	CategoryID  Key        `db:"category_id" json:"category_id"`
	Closed      bool       `db:"closed" json:"closed"`
	UserID      Key        `db:"user_id" json:"user_id"`
	TargetUsers StringList `db:"target_users" json:"target_users"`
	CreatedAt   Timestamp  `db:"created_at" json:"created_at"`
	URL         *string    `db:"url" json:"url"`
	UploadCount int        `db:"upload_count" json:"upload_count"`

	Attachments []string `db:"-" json:"-"`
}
