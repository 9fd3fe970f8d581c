package team

import "context"

// Repository describes team persistence needs from use cases.
type Repository interface {
	List(ctx context.Context) ([]Team, error)
	// Insert is a no-op when a team with the same code already exists.
	Insert(ctx context.Context, item Team) error
}
