package usecase

import (
	"context"
	"time"

	"github.com/riskibarqy/fantasy-cycling/internal/domain/race"
)

// RaceDataProvider fetches and parses remote race pages.
type RaceDataProvider interface {
	FetchRaceResults(ctx context.Context, slug string, year int) ([]ParsedResultRow, error)
	FetchStartlist(ctx context.Context, slug string, year int) ([]ParsedStartlistEntry, error)
	FetchRaceCalendar(ctx context.Context, year int, filter CalendarFilter) ([]ParsedRaceRow, error)
}

// CalendarFilter selects one circuit/class listing of the remote calendar.
type CalendarFilter struct {
	Circuit string
	Class   string
}

func (f CalendarFilter) Key() string {
	return "circuit=" + f.Circuit + "&class=" + f.Class
}

// DefaultCalendars are the top-tier and second-tier one-day calendars.
func DefaultCalendars() []CalendarFilter {
	return []CalendarFilter{
		{Circuit: "1", Class: "1.UWT"},
		{Circuit: "26", Class: "1.Pro"},
	}
}

type ParsedRaceRow struct {
	Slug     string
	Name     string
	StartAt  time.Time
	HasDate  bool
	Category race.Category
	// ClassCode is the raw class token found on the row, e.g. "1.UWT".
	ClassCode string
}

type ParsedResultRow struct {
	Position  *int
	RiderName string
	TeamName  string
	Info      *string
}

type ParsedStartlistEntry struct {
	RiderName string
	TeamName  string
}
