package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/riskibarqy/fantasy-cycling/internal/domain/cyclist"
	"github.com/riskibarqy/fantasy-cycling/internal/domain/race"
	"github.com/riskibarqy/fantasy-cycling/internal/domain/result"
	"github.com/riskibarqy/fantasy-cycling/internal/domain/team"
)

// CatalogService serves the read side of the synced data.
type CatalogService struct {
	teamRepo    team.Repository
	cyclistRepo cyclist.Repository
	raceRepo    race.Repository
	resultRepo  result.Repository
	targetYear  int
	now         func() time.Time
}

func NewCatalogService(
	teamRepo team.Repository,
	cyclistRepo cyclist.Repository,
	raceRepo race.Repository,
	resultRepo result.Repository,
	targetYear int,
) *CatalogService {
	return &CatalogService{
		teamRepo:    teamRepo,
		cyclistRepo: cyclistRepo,
		raceRepo:    raceRepo,
		resultRepo:  resultRepo,
		targetYear:  targetYear,
		now:         time.Now,
	}
}

func (s *CatalogService) ListTeams(ctx context.Context) ([]team.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.CatalogService.ListTeams")
	defer span.End()

	items, err := s.teamRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list teams: %w", err)
	}
	return items, nil
}

func (s *CatalogService) ListCyclists(ctx context.Context) ([]cyclist.Cyclist, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.CatalogService.ListCyclists")
	defer span.End()

	items, err := s.cyclistRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list cyclists: %w", err)
	}
	return items, nil
}

func (s *CatalogService) ListRaces(ctx context.Context, year int) ([]race.Race, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.CatalogService.ListRaces")
	defer span.End()

	if year == 0 {
		year = s.targetYear
	}
	if year <= 0 {
		return nil, fmt.Errorf("%w: year must be > 0", ErrInvalidInput)
	}

	items, err := s.raceRepo.ListByYear(ctx, year)
	if err != nil {
		return nil, fmt.Errorf("list races year=%d: %w", year, err)
	}
	return items, nil
}

// NextRace returns the next planned race, or ErrNotFound when none is scheduled.
func (s *CatalogService) NextRace(ctx context.Context) (race.Race, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.CatalogService.NextRace")
	defer span.End()

	item, ok, err := s.raceRepo.Next(ctx, s.now())
	if err != nil {
		return race.Race{}, fmt.Errorf("get next race: %w", err)
	}
	if !ok {
		return race.Race{}, fmt.Errorf("%w: no upcoming race", ErrNotFound)
	}
	return item, nil
}

func (s *CatalogService) ListRaceCyclists(ctx context.Context, raceID int64) ([]cyclist.Cyclist, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.CatalogService.ListRaceCyclists")
	defer span.End()

	if raceID <= 0 {
		return nil, fmt.Errorf("%w: race id must be > 0", ErrInvalidInput)
	}

	items, err := s.cyclistRepo.ListByRace(ctx, raceID)
	if err != nil {
		return nil, fmt.Errorf("list race cyclists race_id=%d: %w", raceID, err)
	}
	return items, nil
}

func (s *CatalogService) ListRaceResults(ctx context.Context, raceID int64) ([]result.RaceResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.CatalogService.ListRaceResults")
	defer span.End()

	if raceID <= 0 {
		return nil, fmt.Errorf("%w: race id must be > 0", ErrInvalidInput)
	}

	items, err := s.resultRepo.ListByRace(ctx, raceID)
	if err != nil {
		return nil, fmt.Errorf("list race results race_id=%d: %w", raceID, err)
	}
	return items, nil
}
