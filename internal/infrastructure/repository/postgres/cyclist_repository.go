package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/fantasy-cycling/internal/domain/cyclist"
	qb "github.com/riskibarqy/fantasy-cycling/internal/platform/querybuilder"
)

const cyclistSelectColumns = `
SELECT c.id, c.first_name, c.last_name, c.price, c.birth_date, c.nationality, c.team_id,
       c.image_url, c.pcs_path,
       t.name AS team_name, t.code AS team_code, t.image_url AS team_image_url
FROM cyclists c
JOIN teams t ON t.id = c.team_id`

type CyclistRepository struct {
	db *sqlx.DB
}

func NewCyclistRepository(db *sqlx.DB) *CyclistRepository {
	return &CyclistRepository{db: db}
}

func (r *CyclistRepository) List(ctx context.Context) ([]cyclist.Cyclist, error) {
	const query = cyclistSelectColumns + `
ORDER BY c.last_name, c.first_name, c.id`

	var rows []cyclistTableModel
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("select cyclists: %w", err)
	}
	return cyclistsFromRows(rows), nil
}

func (r *CyclistRepository) ListByRace(ctx context.Context, raceID int64) ([]cyclist.Cyclist, error) {
	const query = cyclistSelectColumns + `
JOIN race_cyclists rc ON rc.cyclist_id = c.id
WHERE rc.race_id = $1
ORDER BY t.name, c.last_name, c.first_name`

	var rows []cyclistTableModel
	if err := r.db.SelectContext(ctx, &rows, query, raceID); err != nil {
		return nil, fmt.Errorf("select cyclists by race: %w", err)
	}
	return cyclistsFromRows(rows), nil
}

func (r *CyclistRepository) Insert(ctx context.Context, item cyclist.Cyclist) error {
	insertModel := cyclistInsertModel{
		FirstName:   item.FirstName,
		LastName:    item.LastName,
		Price:       item.Price,
		BirthDate:   item.BirthDate,
		Nationality: item.Nationality,
		TeamID:      item.TeamID,
		ImageURL:    item.ImageURL,
		PCSPath:     ptrToNullString(item.PCSPath),
	}

	query, args, err := qb.InsertModel("cyclists", insertModel, `ON CONFLICT (first_name, last_name, birth_date) DO NOTHING`)
	if err != nil {
		return fmt.Errorf("build insert cyclist query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert cyclist %s: %w", item.FullName(), err)
	}

	return nil
}

func cyclistsFromRows(rows []cyclistTableModel) []cyclist.Cyclist {
	out := make([]cyclist.Cyclist, 0, len(rows))
	for _, row := range rows {
		out = append(out, cyclist.Cyclist{
			ID:           row.ID,
			FirstName:    row.FirstName,
			LastName:     row.LastName,
			Price:        row.Price,
			BirthDate:    row.BirthDate,
			Nationality:  row.Nationality,
			TeamID:       row.TeamID,
			ImageURL:     row.ImageURL,
			PCSPath:      nullStringToPtr(row.PCSPath),
			TeamName:     row.TeamName,
			TeamCode:     row.TeamCode,
			TeamImageURL: row.TeamImageURL,
		})
	}
	return out
}
