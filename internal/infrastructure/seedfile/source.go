// Package seedfile reads the static JSON reference data used by the seed sync.
package seedfile

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/go-playground/validator/v10"
	"github.com/riskibarqy/fantasy-cycling/internal/usecase"
)

const (
	CyclistsFile = "cyclists.json"
	RacesFile    = "races.json"
	PointsFile   = "points.json"
)

var naiveTimestampLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	"2006-01-02",
}

var offsetTimestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999Z07:00",
}

// Source implements usecase.SeedSource over a directory of JSON files.
type Source struct {
	dir      string
	location *time.Location
	validate *validator.Validate
}

// NewSource reads from dir. Timestamps without an offset are read in location.
func NewSource(dir string, location *time.Location) *Source {
	if strings.TrimSpace(dir) == "" {
		dir = "data"
	}
	if location == nil {
		location = time.UTC
	}
	return &Source{
		dir:      dir,
		location: location,
		validate: validator.New(),
	}
}

type cyclistsDocument struct {
	Teams    []teamRecord    `json:"teams" validate:"dive"`
	Cyclists []cyclistRecord `json:"cyclists" validate:"dive"`
}

type teamRecord struct {
	Name      string `json:"name" validate:"required"`
	ShortName string `json:"shortName" validate:"required"`
	JerseyURL string `json:"jerseyUrl" validate:"omitempty,url"`
}

type cyclistRecord struct {
	FirstName   string         `json:"firstName" validate:"required"`
	LastName    string         `json:"lastName" validate:"required"`
	DateOfBirth string         `json:"dateOfBirth" validate:"required,datetime=2006-01-02"`
	Nationality string         `json:"nationality"`
	Price       float64        `json:"price" validate:"gte=0"`
	ImageURL    string         `json:"imageUrl" validate:"omitempty,url"`
	Team        cyclistTeamRef `json:"team"`
}

type cyclistTeamRef struct {
	ShortName string `json:"shortName" validate:"required"`
	JerseyURL string `json:"jerseyUrl" validate:"omitempty,url"`
}

type raceRecord struct {
	Name           string `json:"name" validate:"required"`
	StartTimestamp string `json:"start_timestamp" validate:"required"`
	Category       string `json:"category" validate:"required,oneof=world-tour monument other"`
}

type pointsRecord struct {
	Category string `json:"category" validate:"required,oneof=world-tour monument other"`
	Position int    `json:"position" validate:"gte=1"`
	Points   int    `json:"points" validate:"gte=0"`
}

func (s *Source) LoadTeams(ctx context.Context) ([]usecase.SeedTeam, error) {
	doc, err := s.loadCyclistsDocument(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]usecase.SeedTeam, 0, len(doc.Teams))
	for _, item := range doc.Teams {
		out = append(out, usecase.SeedTeam{
			Code:     strings.TrimSpace(item.ShortName),
			Name:     strings.TrimSpace(item.Name),
			ImageURL: strings.TrimSpace(item.JerseyURL),
		})
	}
	return out, nil
}

// LoadCyclists falls back to the team jersey when a rider has no image.
func (s *Source) LoadCyclists(ctx context.Context) ([]usecase.SeedCyclist, error) {
	doc, err := s.loadCyclistsDocument(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]usecase.SeedCyclist, 0, len(doc.Cyclists))
	for idx, item := range doc.Cyclists {
		birthDate, err := time.Parse(time.DateOnly, strings.TrimSpace(item.DateOfBirth))
		if err != nil {
			return nil, invalidSeed(CyclistsFile, crerr.Wrapf(err, "cyclist #%d dateOfBirth", idx))
		}

		imageURL := strings.TrimSpace(item.ImageURL)
		if imageURL == "" {
			imageURL = strings.TrimSpace(item.Team.JerseyURL)
		}

		out = append(out, usecase.SeedCyclist{
			FirstName:   strings.TrimSpace(item.FirstName),
			LastName:    strings.TrimSpace(item.LastName),
			BirthDate:   birthDate,
			Nationality: strings.TrimSpace(item.Nationality),
			Price:       item.Price,
			TeamCode:    strings.TrimSpace(item.Team.ShortName),
			ImageURL:    imageURL,
		})
	}
	return out, nil
}

func (s *Source) LoadRaces(ctx context.Context) ([]usecase.SeedRace, error) {
	var records []raceRecord
	if err := s.decode(RacesFile, &records); err != nil {
		return nil, err
	}

	out := make([]usecase.SeedRace, 0, len(records))
	for idx, item := range records {
		if err := s.validate.StructCtx(ctx, item); err != nil {
			return nil, invalidSeed(RacesFile, crerr.Wrapf(err, "race #%d", idx))
		}
		startAt, err := ParseTimestamp(item.StartTimestamp, s.location)
		if err != nil {
			return nil, invalidSeed(RacesFile, crerr.Wrapf(err, "race #%d start_timestamp", idx))
		}
		out = append(out, usecase.SeedRace{
			Name:     strings.TrimSpace(item.Name),
			StartAt:  startAt,
			Category: item.Category,
		})
	}
	return out, nil
}

func (s *Source) LoadCategoryPoints(ctx context.Context) ([]usecase.SeedCategoryPoints, error) {
	var records []pointsRecord
	if err := s.decode(PointsFile, &records); err != nil {
		return nil, err
	}

	out := make([]usecase.SeedCategoryPoints, 0, len(records))
	for idx, item := range records {
		if err := s.validate.StructCtx(ctx, item); err != nil {
			return nil, invalidSeed(PointsFile, crerr.Wrapf(err, "points #%d", idx))
		}
		out = append(out, usecase.SeedCategoryPoints{
			Category: item.Category,
			Position: item.Position,
			Points:   item.Points,
		})
	}
	return out, nil
}

// ParseTimestamp keeps an explicit offset and reads naive ISO timestamps in location.
func ParseTimestamp(raw string, location *time.Location) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, crerr.New("timestamp is empty")
	}
	if location == nil {
		location = time.UTC
	}

	for _, layout := range offsetTimestampLayouts {
		if parsed, err := time.Parse(layout, raw); err == nil {
			return parsed, nil
		}
	}
	for _, layout := range naiveTimestampLayouts {
		if parsed, err := time.ParseInLocation(layout, raw, location); err == nil {
			return parsed, nil
		}
	}

	return time.Time{}, crerr.Newf("unsupported timestamp %q", raw)
}

func (s *Source) loadCyclistsDocument(ctx context.Context) (cyclistsDocument, error) {
	var doc cyclistsDocument
	if err := s.decode(CyclistsFile, &doc); err != nil {
		return cyclistsDocument{}, err
	}
	if err := s.validate.StructCtx(ctx, doc); err != nil {
		return cyclistsDocument{}, invalidSeed(CyclistsFile, err)
	}
	return doc, nil
}

func (s *Source) decode(name string, target any) error {
	path := filepath.Join(s.dir, name)
	raw, err := os.ReadFile(path)
	if err != nil {
		return invalidSeed(name, crerr.Wrapf(err, "read %s", path))
	}
	if err := sonic.Unmarshal(raw, target); err != nil {
		return invalidSeed(name, crerr.Wrapf(err, "decode %s", path))
	}
	return nil
}

func invalidSeed(name string, err error) error {
	return fmt.Errorf("%w: seed file %s: %w", usecase.ErrInvalidInput, name, err)
}
