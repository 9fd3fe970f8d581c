package postgres

import "database/sql"

type raceResultTableModel struct {
	ID              int64          `db:"id"`
	RaceID          int64          `db:"race_id"`
	CyclistID       sql.NullInt64  `db:"cyclist_id"`
	Position        sql.NullInt32  `db:"position"`
	CyclistFullName string         `db:"cyclist_full_name"`
	Info            sql.NullString `db:"info"`
}

type raceResultInsertModel struct {
	RaceID          int64          `db:"race_id"`
	CyclistID       sql.NullInt64  `db:"cyclist_id"`
	Position        sql.NullInt32  `db:"position"`
	CyclistFullName string         `db:"cyclist_full_name"`
	Info            sql.NullString `db:"info"`
}
