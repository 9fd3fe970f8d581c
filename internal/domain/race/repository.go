package race

import (
	"context"
	"time"
)

// Repository describes race persistence needs from use cases.
type Repository interface {
	// Insert is a no-op when a race with the same name and year exists.
	Insert(ctx context.Context, item Race) error
	ListByYear(ctx context.Context, year int) ([]Race, error)
	// ListRemoteByYear returns races of year that carry a procyclingstats slug.
	ListRemoteByYear(ctx context.Context, year int) ([]Race, error)
	// Next returns the earliest planned race starting at or after now.
	Next(ctx context.Context, now time.Time) (Race, bool, error)
	UpdateStatus(ctx context.Context, raceID int64, status Status) error

	DeleteCyclists(ctx context.Context, raceID int64) error
	InsertCyclist(ctx context.Context, raceID, cyclistID int64) error

	InsertCategoryPoints(ctx context.Context, item CategoryPoints) error
}
