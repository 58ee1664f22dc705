package model

type Upload struct {
	ID               Key     `db:"id" json:"id"`
	UserID           Key     `db:"user_id" json:"user_id"`
	OriginalFilename *string `db:"original_filename" json:"original_filename"`
	Filename         *string `db:"filename" json:"filename"`
	Description      *string `db:"description" json:"description"`
	URL              *string `db:"url" json:"url"`
}
