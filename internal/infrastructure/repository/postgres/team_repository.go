package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/fantasy-cycling/internal/domain/team"
	qb "github.com/riskibarqy/fantasy-cycling/internal/platform/querybuilder"
)

type TeamRepository struct {
	db *sqlx.DB
}

func NewTeamRepository(db *sqlx.DB) *TeamRepository {
	return &TeamRepository{db: db}
}

func (r *TeamRepository) List(ctx context.Context) ([]team.Team, error) {
	query, args, err := qb.Select("*").From("teams").
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select teams query: %w", err)
	}

	var rows []teamTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select teams: %w", err)
	}

	out := make([]team.Team, 0, len(rows))
	for _, row := range rows {
		out = append(out, team.Team{
			ID:       row.ID,
			Code:     row.Code,
			Name:     row.Name,
			ImageURL: row.ImageURL,
		})
	}

	return out, nil
}

func (r *TeamRepository) Insert(ctx context.Context, item team.Team) error {
	insertModel := teamInsertModel{
		Code:     item.Code,
		Name:     item.Name,
		ImageURL: item.ImageURL,
	}

	query, args, err := qb.InsertModel("teams", insertModel, `ON CONFLICT (code) DO NOTHING`)
	if err != nil {
		return fmt.Errorf("build insert team query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert team %s: %w", item.Code, err)
	}

	return nil
}
