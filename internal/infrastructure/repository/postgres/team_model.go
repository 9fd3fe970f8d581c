package postgres

import "time"

type teamTableModel struct {
	ID        int64     `db:"id"`
	Code      string    `db:"code"`
	Name      string    `db:"name"`
	ImageURL  string    `db:"image_url"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

type teamInsertModel struct {
	Code     string `db:"code"`
	Name     string `db:"name"`
	ImageURL string `db:"image_url"`
}
