package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/fantasy-cycling/internal/domain/race"
	qb "github.com/riskibarqy/fantasy-cycling/internal/platform/querybuilder"
)

type RaceRepository struct {
	db *sqlx.DB
}

func NewRaceRepository(db *sqlx.DB) *RaceRepository {
	return &RaceRepository{db: db}
}

func (r *RaceRepository) Insert(ctx context.Context, item race.Race) error {
	status := item.Status
	if status == "" {
		status = race.StatusPlanned
	}
	insertModel := raceInsertModel{
		Name:     item.Name,
		Year:     item.Year,
		StartAt:  item.StartAt,
		Category: string(item.Category),
		Status:   string(status),
		PCSPath:  ptrToNullString(item.PCSPath),
	}

	query, args, err := qb.InsertModel("races", insertModel, `ON CONFLICT (name, year) DO NOTHING`)
	if err != nil {
		return fmt.Errorf("build insert race query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert race %s: %w", item.Name, err)
	}

	return nil
}

func (r *RaceRepository) ListByYear(ctx context.Context, year int) ([]race.Race, error) {
	return r.list(ctx, "by year", qb.Eq("year", year))
}

func (r *RaceRepository) ListRemoteByYear(ctx context.Context, year int) ([]race.Race, error) {
	return r.list(ctx, "remote by year",
		qb.Eq("year", year),
		qb.Expr("COALESCE(TRIM(pcs_path), '') <> ''"),
	)
}

func (r *RaceRepository) Next(ctx context.Context, now time.Time) (race.Race, bool, error) {
	query, args, err := qb.Select("*").From("races").
		Where(
			qb.Eq("status", string(race.StatusPlanned)),
			qb.Expr("start_at >= ?", now),
		).
		OrderBy("start_at", "id").
		Limit(1).
		ToSQL()
	if err != nil {
		return race.Race{}, false, fmt.Errorf("build select next race query: %w", err)
	}

	var row raceTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return race.Race{}, false, nil
		}
		return race.Race{}, false, fmt.Errorf("select next race: %w", err)
	}

	return raceFromRow(row), true, nil
}

func (r *RaceRepository) UpdateStatus(ctx context.Context, raceID int64, status race.Status) error {
	query, args, err := qb.Update("races").
		Set("status", string(status)).
		SetExpr("updated_at", "NOW()").
		Where(qb.Eq("id", raceID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update race status query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update race status: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("read race status rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("race id=%d not found", raceID)
	}

	return nil
}

func (r *RaceRepository) DeleteCyclists(ctx context.Context, raceID int64) error {
	query, args, err := qb.DeleteFrom("race_cyclists").
		Where(qb.Eq("race_id", raceID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build delete race cyclists query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete race cyclists: %w", err)
	}

	return nil
}

func (r *RaceRepository) InsertCyclist(ctx context.Context, raceID, cyclistID int64) error {
	query, args, err := qb.InsertModel("race_cyclists", raceCyclistInsertModel{
		RaceID:    raceID,
		CyclistID: cyclistID,
	}, `ON CONFLICT (race_id, cyclist_id) DO NOTHING`)
	if err != nil {
		return fmt.Errorf("build insert race cyclist query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert race cyclist: %w", err)
	}

	return nil
}

func (r *RaceRepository) InsertCategoryPoints(ctx context.Context, item race.CategoryPoints) error {
	query, args, err := qb.InsertModel("category_points", categoryPointsInsertModel{
		Category: string(item.Category),
		Position: item.Position,
		Points:   item.Points,
	}, `ON CONFLICT (category, position)
DO UPDATE SET
    points = EXCLUDED.points`)
	if err != nil {
		return fmt.Errorf("build upsert category points query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert category points: %w", err)
	}

	return nil
}

func (r *RaceRepository) list(ctx context.Context, label string, conditions ...qb.Condition) ([]race.Race, error) {
	query, args, err := qb.Select("*").From("races").
		Where(conditions...).
		OrderBy("start_at", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select races %s query: %w", label, err)
	}

	var rows []raceTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select races %s: %w", label, err)
	}

	out := make([]race.Race, 0, len(rows))
	for _, row := range rows {
		out = append(out, raceFromRow(row))
	}
	return out, nil
}

func raceFromRow(row raceTableModel) race.Race {
	category, ok := race.ParseCategory(row.Category)
	if !ok {
		category = race.CategoryOther
	}
	status, ok := race.ParseStatus(row.Status)
	if !ok {
		status = race.StatusPlanned
	}

	return race.Race{
		ID:       row.ID,
		Name:     row.Name,
		Year:     row.Year,
		StartAt:  row.StartAt,
		Category: category,
		Status:   status,
		PCSPath:  nullStringToPtr(row.PCSPath),
	}
}
