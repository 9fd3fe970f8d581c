package race

import (
	"fmt"
	"strings"
	"time"
)

type Category string

const (
	CategoryWorldTour Category = "world-tour"
	CategoryMonument  Category = "monument"
	CategoryOther     Category = "other"
)

type Status string

const (
	StatusPlanned  Status = "planned"
	StatusFinished Status = "finished"
	StatusCanceled Status = "canceled"
)

// Race is a one-day or stage race in a season.
type Race struct {
	ID       int64
	Name     string
	Year     int
	StartAt  time.Time
	Category Category
	Status   Status
	// PCSPath is the procyclingstats slug; nil for races seeded without a remote page.
	PCSPath *string
}

// CategoryPoints is the score awarded for a finishing position in a race category.
type CategoryPoints struct {
	Category Category
	Position int
	Points   int
}

func (r Race) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return fmt.Errorf("race name is required")
	}
	if r.Year <= 0 {
		return fmt.Errorf("race year must be > 0")
	}
	if r.StartAt.IsZero() {
		return fmt.Errorf("race start timestamp is required")
	}
	if _, ok := ParseCategory(string(r.Category)); !ok {
		return fmt.Errorf("invalid race category %q", r.Category)
	}
	if _, ok := ParseStatus(string(r.Status)); !ok {
		return fmt.Errorf("invalid race status %q", r.Status)
	}

	return nil
}

// HasRemote reports whether the race can be synced from procyclingstats.
func (r Race) HasRemote() bool {
	return r.PCSPath != nil && strings.TrimSpace(*r.PCSPath) != ""
}

func (r Race) RemoteSlug() string {
	if r.PCSPath == nil {
		return ""
	}
	return strings.TrimSpace(*r.PCSPath)
}

func (p CategoryPoints) Validate() error {
	if _, ok := ParseCategory(string(p.Category)); !ok {
		return fmt.Errorf("invalid race category %q", p.Category)
	}
	if p.Position <= 0 {
		return fmt.Errorf("points position must be > 0")
	}
	if p.Points < 0 {
		return fmt.Errorf("points must be >= 0")
	}
	return nil
}

func ParseCategory(v string) (Category, bool) {
	switch Category(strings.ToLower(strings.TrimSpace(v))) {
	case CategoryWorldTour:
		return CategoryWorldTour, true
	case CategoryMonument:
		return CategoryMonument, true
	case CategoryOther:
		return CategoryOther, true
	default:
		return "", false
	}
}

func ParseStatus(v string) (Status, bool) {
	switch Status(strings.ToLower(strings.TrimSpace(v))) {
	case StatusPlanned:
		return StatusPlanned, true
	case StatusFinished:
		return StatusFinished, true
	case StatusCanceled:
		return StatusCanceled, true
	default:
		return "", false
	}
}
