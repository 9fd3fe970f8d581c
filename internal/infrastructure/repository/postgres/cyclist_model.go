package postgres

import (
	"database/sql"
	"time"
)

// cyclistTableModel is read joined with teams.
type cyclistTableModel struct {
	ID           int64          `db:"id"`
	FirstName    string         `db:"first_name"`
	LastName     string         `db:"last_name"`
	Price        float64        `db:"price"`
	BirthDate    time.Time      `db:"birth_date"`
	Nationality  string         `db:"nationality"`
	TeamID       int64          `db:"team_id"`
	ImageURL     string         `db:"image_url"`
	PCSPath      sql.NullString `db:"pcs_path"`
	TeamName     string         `db:"team_name"`
	TeamCode     string         `db:"team_code"`
	TeamImageURL string         `db:"team_image_url"`
}

type cyclistInsertModel struct {
	FirstName   string         `db:"first_name"`
	LastName    string         `db:"last_name"`
	Price       float64        `db:"price"`
	BirthDate   time.Time      `db:"birth_date"`
	Nationality string         `db:"nationality"`
	TeamID      int64          `db:"team_id"`
	ImageURL    string         `db:"image_url"`
	PCSPath     sql.NullString `db:"pcs_path"`
}
