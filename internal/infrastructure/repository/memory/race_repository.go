package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/riskibarqy/fantasy-cycling/internal/domain/race"
)

type RaceRepository struct {
	store *Store
}

func NewRaceRepository(store *Store) *RaceRepository {
	return &RaceRepository{store: store}
}

func (r *RaceRepository) Insert(_ context.Context, item race.Race) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for _, existing := range r.store.races {
		if existing.Name == item.Name && existing.Year == item.Year {
			return nil
		}
	}

	r.store.nextRaceID++
	item.ID = r.store.nextRaceID
	item.PCSPath = cloneString(item.PCSPath)
	r.store.races = append(r.store.races, item)

	return nil
}

func (r *RaceRepository) ListByYear(_ context.Context, year int) ([]race.Race, error) {
	return r.list(func(item race.Race) bool { return item.Year == year }), nil
}

func (r *RaceRepository) ListRemoteByYear(_ context.Context, year int) ([]race.Race, error) {
	return r.list(func(item race.Race) bool { return item.Year == year && item.HasRemote() }), nil
}

func (r *RaceRepository) Next(_ context.Context, now time.Time) (race.Race, bool, error) {
	items := r.list(func(item race.Race) bool {
		return item.Status == race.StatusPlanned && !item.StartAt.Before(now)
	})
	if len(items) == 0 {
		return race.Race{}, false, nil
	}
	return items[0], true, nil
}

func (r *RaceRepository) UpdateStatus(_ context.Context, raceID int64, status race.Status) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	idx := r.store.raceIndex(raceID)
	if idx < 0 {
		return fmt.Errorf("race id=%d not found", raceID)
	}
	r.store.races[idx].Status = status

	return nil
}

func (r *RaceRepository) DeleteCyclists(_ context.Context, raceID int64) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	delete(r.store.raceCyclists, raceID)
	return nil
}

func (r *RaceRepository) InsertCyclist(_ context.Context, raceID, cyclistID int64) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if r.store.raceIndex(raceID) < 0 {
		return fmt.Errorf("race id=%d not found", raceID)
	}
	for _, id := range r.store.raceCyclists[raceID] {
		if id == cyclistID {
			return nil
		}
	}
	r.store.raceCyclists[raceID] = append(r.store.raceCyclists[raceID], cyclistID)

	return nil
}

func (r *RaceRepository) InsertCategoryPoints(_ context.Context, item race.CategoryPoints) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for idx, existing := range r.store.points {
		if existing.Category == item.Category && existing.Position == item.Position {
			r.store.points[idx].Points = item.Points
			return nil
		}
	}
	r.store.points = append(r.store.points, item)

	return nil
}

// CategoryPoints returns the stored points table ordered by category and position.
func (r *RaceRepository) CategoryPoints() []race.CategoryPoints {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	out := make([]race.CategoryPoints, 0, len(r.store.points))
	out = append(out, r.store.points...)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Category != out[j].Category {
			return out[i].Category < out[j].Category
		}
		return out[i].Position < out[j].Position
	})
	return out
}

func (r *RaceRepository) list(keep func(race.Race) bool) []race.Race {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	out := make([]race.Race, 0, len(r.store.races))
	for _, item := range r.store.races {
		if keep(item) {
			item.PCSPath = cloneString(item.PCSPath)
			out = append(out, item)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].StartAt.Equal(out[j].StartAt) {
			return out[i].StartAt.Before(out[j].StartAt)
		}
		return out[i].ID < out[j].ID
	})

	return out
}
