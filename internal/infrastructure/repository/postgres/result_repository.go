package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/fantasy-cycling/internal/domain/result"
	qb "github.com/riskibarqy/fantasy-cycling/internal/platform/querybuilder"
)

type ResultRepository struct {
	db *sqlx.DB
}

func NewResultRepository(db *sqlx.DB) *ResultRepository {
	return &ResultRepository{db: db}
}

func (r *ResultRepository) Insert(ctx context.Context, item result.RaceResult) error {
	if err := item.Validate(); err != nil {
		return err
	}

	query, args, err := qb.InsertModel("race_results", resultInsertModel(item), "")
	if err != nil {
		return fmt.Errorf("build insert race result query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert race result: %w", err)
	}

	return nil
}

func (r *ResultRepository) DeleteByRace(ctx context.Context, raceID int64) error {
	query, args, err := qb.DeleteFrom("race_results").
		Where(qb.Eq("race_id", raceID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build delete race results query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete race results: %w", err)
	}

	return nil
}

func (r *ResultRepository) ListByRace(ctx context.Context, raceID int64) ([]result.RaceResult, error) {
	query, args, err := qb.Select("id", "race_id", "cyclist_id", "position", "cyclist_full_name", "info").
		From("race_results").
		Where(qb.Eq("race_id", raceID)).
		OrderBy("position NULLS LAST", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select race results query: %w", err)
	}

	var rows []raceResultTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select race results: %w", err)
	}

	out := make([]result.RaceResult, 0, len(rows))
	for _, row := range rows {
		out = append(out, result.RaceResult{
			ID:              row.ID,
			RaceID:          row.RaceID,
			CyclistID:       nullInt64ToPtr(row.CyclistID),
			Position:        nullInt32ToIntPtr(row.Position),
			CyclistFullName: row.CyclistFullName,
			Info:            nullStringToPtr(row.Info),
		})
	}

	return out, nil
}

// ReplaceRaceResults deletes and re-inserts the results of a race in one transaction.
func (r *ResultRepository) ReplaceRaceResults(ctx context.Context, raceID int64, items []result.RaceResult) error {
	for _, item := range items {
		if item.RaceID != raceID {
			return fmt.Errorf("race result belongs to race id=%d, want %d", item.RaceID, raceID)
		}
		if err := item.Validate(); err != nil {
			return err
		}
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx for race results replace: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	clearQuery, clearArgs, err := qb.DeleteFrom("race_results").
		Where(qb.Eq("race_id", raceID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build clear race results query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, clearQuery, clearArgs...); err != nil {
		return fmt.Errorf("clear race results: %w", err)
	}

	if len(items) > 0 {
		insert := qb.InsertInto("race_results").
			Columns("race_id", "cyclist_id", "position", "cyclist_full_name", "info")
		for _, item := range items {
			row := resultInsertModel(item)
			insert.Values(row.RaceID, row.CyclistID, row.Position, row.CyclistFullName, row.Info)
		}
		insertQuery, insertArgs, err := insert.ToSQL()
		if err != nil {
			return fmt.Errorf("build insert race results query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, insertQuery, insertArgs...); err != nil {
			return fmt.Errorf("insert race results: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit race results replace: %w", err)
	}

	return nil
}

func resultInsertModel(item result.RaceResult) raceResultInsertModel {
	return raceResultInsertModel{
		RaceID:          item.RaceID,
		CyclistID:       ptrToNullInt64(item.CyclistID),
		Position:        intPtrToNullInt32(item.Position),
		CyclistFullName: item.CyclistFullName,
		Info:            ptrToNullString(item.Info),
	}
}
