package cyclist

import "context"

// Repository describes cyclist persistence needs from use cases.
type Repository interface {
	List(ctx context.Context) ([]Cyclist, error)
	// Insert is a no-op when the same first name, last name and birth date exist.
	Insert(ctx context.Context, item Cyclist) error
	ListByRace(ctx context.Context, raceID int64) ([]Cyclist, error)
}
