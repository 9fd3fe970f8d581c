package memory

import (
	"context"
	"strings"

	"github.com/riskibarqy/fantasy-cycling/internal/domain/team"
)

type TeamRepository struct {
	store *Store
}

func NewTeamRepository(store *Store) *TeamRepository {
	return &TeamRepository{store: store}
}

func (r *TeamRepository) List(_ context.Context) ([]team.Team, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	out := make([]team.Team, 0, len(r.store.teams))
	out = append(out, r.store.teams...)

	return out, nil
}

func (r *TeamRepository) Insert(_ context.Context, item team.Team) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	code := strings.TrimSpace(item.Code)
	for _, existing := range r.store.teams {
		if existing.Code == code {
			return nil
		}
	}

	r.store.nextTeamID++
	item.ID = r.store.nextTeamID
	item.Code = code
	r.store.teams = append(r.store.teams, item)

	return nil
}
