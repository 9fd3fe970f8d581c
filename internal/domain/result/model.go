package result

import "fmt"

// RaceResult is one ranked row of a race. CyclistID is nil when the rider
// name could not be matched; the raw name is kept for auditing.
type RaceResult struct {
	ID              int64
	RaceID          int64
	CyclistID       *int64
	Position        *int
	CyclistFullName string
	Info            *string
}

func (r RaceResult) Validate() error {
	if r.RaceID <= 0 {
		return fmt.Errorf("race result race id is required")
	}
	if r.Position != nil && *r.Position <= 0 {
		return fmt.Errorf("race result position must be > 0")
	}
	return nil
}

func (r RaceResult) Resolved() bool {
	return r.CyclistID != nil
}
