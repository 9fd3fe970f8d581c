package cyclist

import (
	"fmt"
	"strings"
	"time"
)

// Cyclist is a rider that can be picked into a fantasy squad.
type Cyclist struct {
	ID          int64
	FirstName   string
	LastName    string
	Price       float64
	BirthDate   time.Time
	Nationality string
	TeamID      int64
	ImageURL    string
	PCSPath     *string

	// Populated on reads joined with teams.
	TeamName     string
	TeamCode     string
	TeamImageURL string
}

// FullName is the "{last} {first}" projection used for name matching.
func (c Cyclist) FullName() string {
	return strings.TrimSpace(strings.TrimSpace(c.LastName) + " " + strings.TrimSpace(c.FirstName))
}

// Age returns the completed years at now.
func (c Cyclist) Age(now time.Time) int {
	if c.BirthDate.IsZero() {
		return 0
	}
	age := now.Year() - c.BirthDate.Year()
	if now.Month() < c.BirthDate.Month() || (now.Month() == c.BirthDate.Month() && now.Day() < c.BirthDate.Day()) {
		age--
	}
	return age
}

func (c Cyclist) Validate() error {
	if strings.TrimSpace(c.FirstName) == "" || strings.TrimSpace(c.LastName) == "" {
		return fmt.Errorf("cyclist first and last name are required")
	}
	if c.BirthDate.IsZero() {
		return fmt.Errorf("cyclist birth date is required")
	}
	if c.Price < 0 {
		return fmt.Errorf("cyclist price must be >= 0")
	}
	if c.TeamID <= 0 {
		return fmt.Errorf("cyclist team id is required")
	}

	return nil
}
