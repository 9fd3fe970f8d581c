// Package cache wraps repositories with read-through caching. Every write
// drops the keys it can affect.
package cache

import (
	"context"
	"strconv"
	"time"

	"github.com/riskibarqy/fantasy-cycling/internal/domain/cyclist"
	"github.com/riskibarqy/fantasy-cycling/internal/domain/race"
	"github.com/riskibarqy/fantasy-cycling/internal/domain/result"
	"github.com/riskibarqy/fantasy-cycling/internal/domain/team"
	basecache "github.com/riskibarqy/fantasy-cycling/internal/platform/cache"
)

const (
	teamListKey         = "team:list"
	cyclistPrefix       = "cyclist:"
	cyclistListKey      = "cyclist:list"
	cyclistByRacePrefix = "cyclist:race:"
	racePrefix          = "race:"
	raceByYearPrefix    = "race:year:"
	remoteByYearPrefix  = "race:remote:"
	resultByRacePrefix  = "result:race:"
)

type TeamRepository struct {
	next  team.Repository
	cache *basecache.Store
}

func NewTeamRepository(next team.Repository, cache *basecache.Store) *TeamRepository {
	return &TeamRepository{next: next, cache: cache}
}

func (r *TeamRepository) List(ctx context.Context) ([]team.Team, error) {
	return loadSlice(ctx, r.cache, teamListKey, r.next.List)
}

func (r *TeamRepository) Insert(ctx context.Context, item team.Team) error {
	if err := r.next.Insert(ctx, item); err != nil {
		return err
	}
	r.cache.Delete(ctx, teamListKey)
	// Cyclist reads carry the joined team columns.
	r.cache.DeletePrefix(ctx, cyclistPrefix)
	return nil
}

type CyclistRepository struct {
	next  cyclist.Repository
	cache *basecache.Store
}

func NewCyclistRepository(next cyclist.Repository, cache *basecache.Store) *CyclistRepository {
	return &CyclistRepository{next: next, cache: cache}
}

func (r *CyclistRepository) List(ctx context.Context) ([]cyclist.Cyclist, error) {
	return loadSlice(ctx, r.cache, cyclistListKey, r.next.List)
}

func (r *CyclistRepository) Insert(ctx context.Context, item cyclist.Cyclist) error {
	if err := r.next.Insert(ctx, item); err != nil {
		return err
	}
	r.cache.Delete(ctx, cyclistListKey)
	return nil
}

func (r *CyclistRepository) ListByRace(ctx context.Context, raceID int64) ([]cyclist.Cyclist, error) {
	return loadSlice(ctx, r.cache, cyclistByRaceKey(raceID), func(ctx context.Context) ([]cyclist.Cyclist, error) {
		return r.next.ListByRace(ctx, raceID)
	})
}

type RaceRepository struct {
	next  race.Repository
	cache *basecache.Store
}

func NewRaceRepository(next race.Repository, cache *basecache.Store) *RaceRepository {
	return &RaceRepository{next: next, cache: cache}
}

func (r *RaceRepository) Insert(ctx context.Context, item race.Race) error {
	if err := r.next.Insert(ctx, item); err != nil {
		return err
	}
	r.cache.DeletePrefix(ctx, racePrefix)
	return nil
}

func (r *RaceRepository) ListByYear(ctx context.Context, year int) ([]race.Race, error) {
	return loadSlice(ctx, r.cache, raceByYearPrefix+strconv.Itoa(year), func(ctx context.Context) ([]race.Race, error) {
		return r.next.ListByYear(ctx, year)
	})
}

func (r *RaceRepository) ListRemoteByYear(ctx context.Context, year int) ([]race.Race, error) {
	return loadSlice(ctx, r.cache, remoteByYearPrefix+strconv.Itoa(year), func(ctx context.Context) ([]race.Race, error) {
		return r.next.ListRemoteByYear(ctx, year)
	})
}

// Next depends on the clock and is never cached.
func (r *RaceRepository) Next(ctx context.Context, now time.Time) (race.Race, bool, error) {
	return r.next.Next(ctx, now)
}

func (r *RaceRepository) UpdateStatus(ctx context.Context, raceID int64, status race.Status) error {
	if err := r.next.UpdateStatus(ctx, raceID, status); err != nil {
		return err
	}
	r.cache.DeletePrefix(ctx, racePrefix)
	return nil
}

func (r *RaceRepository) DeleteCyclists(ctx context.Context, raceID int64) error {
	if err := r.next.DeleteCyclists(ctx, raceID); err != nil {
		return err
	}
	r.cache.Delete(ctx, cyclistByRaceKey(raceID))
	return nil
}

func (r *RaceRepository) InsertCyclist(ctx context.Context, raceID, cyclistID int64) error {
	if err := r.next.InsertCyclist(ctx, raceID, cyclistID); err != nil {
		return err
	}
	r.cache.Delete(ctx, cyclistByRaceKey(raceID))
	return nil
}

func (r *RaceRepository) InsertCategoryPoints(ctx context.Context, item race.CategoryPoints) error {
	return r.next.InsertCategoryPoints(ctx, item)
}

type ResultRepository struct {
	next  result.Repository
	cache *basecache.Store
}

func NewResultRepository(next result.Repository, cache *basecache.Store) *ResultRepository {
	return &ResultRepository{next: next, cache: cache}
}

func (r *ResultRepository) Insert(ctx context.Context, item result.RaceResult) error {
	if err := r.next.Insert(ctx, item); err != nil {
		return err
	}
	r.cache.Delete(ctx, resultByRaceKey(item.RaceID))
	return nil
}

func (r *ResultRepository) DeleteByRace(ctx context.Context, raceID int64) error {
	if err := r.next.DeleteByRace(ctx, raceID); err != nil {
		return err
	}
	r.cache.Delete(ctx, resultByRaceKey(raceID))
	return nil
}

func (r *ResultRepository) ListByRace(ctx context.Context, raceID int64) ([]result.RaceResult, error) {
	return loadSlice(ctx, r.cache, resultByRaceKey(raceID), func(ctx context.Context) ([]result.RaceResult, error) {
		return r.next.ListByRace(ctx, raceID)
	})
}

// ReplaceRaceResults keeps the wrapped repository's single unit of work when it has one.
func (r *ResultRepository) ReplaceRaceResults(ctx context.Context, raceID int64, items []result.RaceResult) error {
	var err error
	if replacer, ok := r.next.(result.Replacer); ok {
		err = replacer.ReplaceRaceResults(ctx, raceID, items)
	} else {
		err = r.replaceSequential(ctx, raceID, items)
	}
	r.cache.Delete(ctx, resultByRaceKey(raceID))
	return err
}

func (r *ResultRepository) replaceSequential(ctx context.Context, raceID int64, items []result.RaceResult) error {
	if err := r.next.DeleteByRace(ctx, raceID); err != nil {
		return err
	}
	for _, item := range items {
		if err := r.next.Insert(ctx, item); err != nil {
			return err
		}
	}
	return nil
}

func loadSlice[T any](ctx context.Context, store *basecache.Store, key string, load func(context.Context) ([]T, error)) ([]T, error) {
	v, err := store.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		items, err := load(ctx)
		if err != nil {
			return nil, err
		}
		return append([]T(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]T)
	return append([]T(nil), items...), nil
}

func cyclistByRaceKey(raceID int64) string {
	return cyclistByRacePrefix + strconv.FormatInt(raceID, 10)
}

func resultByRaceKey(raceID int64) string {
	return resultByRacePrefix + strconv.FormatInt(raceID, 10)
}
