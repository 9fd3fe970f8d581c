package usecase

import (
	"context"
	"time"
)

// SeedSource loads the static reference data used by the seed sync.
type SeedSource interface {
	LoadTeams(ctx context.Context) ([]SeedTeam, error)
	LoadCyclists(ctx context.Context) ([]SeedCyclist, error)
	LoadRaces(ctx context.Context) ([]SeedRace, error)
	LoadCategoryPoints(ctx context.Context) ([]SeedCategoryPoints, error)
}

type SeedTeam struct {
	Code     string
	Name     string
	ImageURL string
}

type SeedCyclist struct {
	FirstName   string
	LastName    string
	BirthDate   time.Time
	Nationality string
	Price       float64
	TeamCode    string
	ImageURL    string
}

type SeedRace struct {
	Name     string
	StartAt  time.Time
	Category string
}

type SeedCategoryPoints struct {
	Category string
	Position int
	Points   int
}
