package memory

import (
	"context"
	"fmt"

	"github.com/riskibarqy/fantasy-cycling/internal/domain/result"
)

type ResultRepository struct {
	store *Store
}

func NewResultRepository(store *Store) *ResultRepository {
	return &ResultRepository{store: store}
}

func (r *ResultRepository) Insert(_ context.Context, item result.RaceResult) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	return r.insertLocked(item)
}

func (r *ResultRepository) DeleteByRace(_ context.Context, raceID int64) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	r.deleteLocked(raceID)
	return nil
}

func (r *ResultRepository) ListByRace(_ context.Context, raceID int64) ([]result.RaceResult, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	out := make([]result.RaceResult, 0)
	for _, item := range r.store.results {
		if item.RaceID != raceID {
			continue
		}
		item.CyclistID = cloneInt64(item.CyclistID)
		item.Position = cloneInt(item.Position)
		item.Info = cloneString(item.Info)
		out = append(out, item)
	}

	return out, nil
}

// ReplaceRaceResults swaps the race's rows under a single lock.
func (r *ResultRepository) ReplaceRaceResults(_ context.Context, raceID int64, items []result.RaceResult) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if r.store.raceIndex(raceID) < 0 {
		return fmt.Errorf("race id=%d not found", raceID)
	}
	for _, item := range items {
		if item.RaceID != raceID {
			return fmt.Errorf("race result belongs to race id=%d, want %d", item.RaceID, raceID)
		}
	}

	r.deleteLocked(raceID)
	for _, item := range items {
		if err := r.insertLocked(item); err != nil {
			return err
		}
	}

	return nil
}

func (r *ResultRepository) insertLocked(item result.RaceResult) error {
	if err := item.Validate(); err != nil {
		return err
	}

	r.store.nextResultID++
	item.ID = r.store.nextResultID
	item.CyclistID = cloneInt64(item.CyclistID)
	item.Position = cloneInt(item.Position)
	item.Info = cloneString(item.Info)
	r.store.results = append(r.store.results, item)

	return nil
}

func (r *ResultRepository) deleteLocked(raceID int64) {
	kept := r.store.results[:0]
	for _, item := range r.store.results {
		if item.RaceID != raceID {
			kept = append(kept, item)
		}
	}
	r.store.results = kept
}
