package memory

import (
	"context"

	"github.com/riskibarqy/fantasy-cycling/internal/domain/cyclist"
)

type CyclistRepository struct {
	store *Store
}

func NewCyclistRepository(store *Store) *CyclistRepository {
	return &CyclistRepository{store: store}
}

func (r *CyclistRepository) List(_ context.Context) ([]cyclist.Cyclist, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	out := make([]cyclist.Cyclist, 0, len(r.store.cyclists))
	for _, item := range r.store.cyclists {
		out = append(out, r.store.withTeam(item))
	}

	return out, nil
}

func (r *CyclistRepository) Insert(_ context.Context, item cyclist.Cyclist) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for _, existing := range r.store.cyclists {
		if existing.FirstName == item.FirstName &&
			existing.LastName == item.LastName &&
			existing.BirthDate.Equal(item.BirthDate) {
			return nil
		}
	}

	r.store.nextCyclistID++
	item.ID = r.store.nextCyclistID
	item.PCSPath = cloneString(item.PCSPath)
	item.TeamName, item.TeamCode, item.TeamImageURL = "", "", ""
	r.store.cyclists = append(r.store.cyclists, item)

	return nil
}

func (r *CyclistRepository) ListByRace(_ context.Context, raceID int64) ([]cyclist.Cyclist, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	ids := r.store.raceCyclists[raceID]
	out := make([]cyclist.Cyclist, 0, len(ids))
	for _, id := range ids {
		for _, item := range r.store.cyclists {
			if item.ID == id {
				out = append(out, r.store.withTeam(item))
				break
			}
		}
	}

	return out, nil
}
