package result

import "context"

// Repository describes race result persistence needs from use cases.
type Repository interface {
	Insert(ctx context.Context, item RaceResult) error
	DeleteByRace(ctx context.Context, raceID int64) error
	ListByRace(ctx context.Context, raceID int64) ([]RaceResult, error)
}

// Replacer swaps all results of a race in one unit of work.
type Replacer interface {
	ReplaceRaceResults(ctx context.Context, raceID int64, items []RaceResult) error
}
