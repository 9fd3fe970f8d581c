package postgres

import (
	"database/sql"
	"time"
)

type raceTableModel struct {
	ID        int64          `db:"id"`
	Name      string         `db:"name"`
	Year      int            `db:"year"`
	StartAt   time.Time      `db:"start_at"`
	Category  string         `db:"category"`
	Status    string         `db:"status"`
	PCSPath   sql.NullString `db:"pcs_path"`
	CreatedAt time.Time      `db:"created_at"`
	UpdatedAt time.Time      `db:"updated_at"`
}

type raceInsertModel struct {
	Name     string         `db:"name"`
	Year     int            `db:"year"`
	StartAt  time.Time      `db:"start_at"`
	Category string         `db:"category"`
	Status   string         `db:"status"`
	PCSPath  sql.NullString `db:"pcs_path"`
}

type raceCyclistInsertModel struct {
	RaceID    int64 `db:"race_id"`
	CyclistID int64 `db:"cyclist_id"`
}

type categoryPointsInsertModel struct {
	Category string `db:"category"`
	Position int    `db:"position"`
	Points   int    `db:"points"`
}
