package model

type Category struct {
	ID          Key     `db:"id" json:"id"`
	Name        string  `db:"name" json:"name"`
	Description *string `db:"description" json:"description"`
	Position    *int    `db:"position" json:"position"`
	URL         *string `db:"url" json:"url"`
}
