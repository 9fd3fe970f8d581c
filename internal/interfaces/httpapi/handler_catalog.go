package httpapi

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/riskibarqy/fantasy-cycling/internal/domain/cyclist"
	"github.com/riskibarqy/fantasy-cycling/internal/domain/race"
	"github.com/riskibarqy/fantasy-cycling/internal/domain/result"
	"github.com/riskibarqy/fantasy-cycling/internal/domain/team"
	"github.com/riskibarqy/fantasy-cycling/internal/usecase"
)

type teamDTO struct {
	ID       int64  `json:"id"`
	Code     string `json:"code"`
	Name     string `json:"name"`
	ImageURL string `json:"image_url,omitempty"`
}

type cyclistDTO struct {
	ID          int64   `json:"id"`
	FirstName   string  `json:"first_name"`
	LastName    string  `json:"last_name"`
	FullName    string  `json:"full_name"`
	Age         int     `json:"age"`
	Nationality string  `json:"nationality,omitempty"`
	Price       float64 `json:"price"`
	ImageURL    string  `json:"image_url,omitempty"`
	Team        teamDTO `json:"team"`
}

type raceDTO struct {
	ID       int64   `json:"id"`
	Name     string  `json:"name"`
	Year     int     `json:"year"`
	StartAt  string  `json:"start_at"`
	Category string  `json:"category"`
	Status   string  `json:"status"`
	PCSPath  *string `json:"pcs_path,omitempty"`
}

type raceResultDTO struct {
	ID              int64   `json:"id"`
	RaceID          int64   `json:"race_id"`
	CyclistID       *int64  `json:"cyclist_id"`
	Position        *int    `json:"position"`
	CyclistFullName string  `json:"cyclist_full_name"`
	Info            *string `json:"info,omitempty"`
}

func (h *Handler) ListTeams(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListTeams")
	defer span.End()

	items, err := h.catalogService.ListTeams(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list teams failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	out := make([]teamDTO, 0, len(items))
	for _, item := range items {
		out = append(out, teamToDTO(item))
	}
	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) ListCyclists(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListCyclists")
	defer span.End()

	items, err := h.catalogService.ListCyclists(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list cyclists failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, cyclistsToDTO(items, time.Now()))
}

func (h *Handler) ListRaces(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListRaces")
	defer span.End()

	year := 0
	if raw := strings.TrimSpace(r.URL.Query().Get("year")); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			writeError(ctx, w, fmt.Errorf("%w: year must be a positive integer", usecase.ErrInvalidInput))
			return
		}
		year = parsed
	}

	items, err := h.catalogService.ListRaces(ctx, year)
	if err != nil {
		h.logger.WarnContext(ctx, "list races failed", "year", year, "error", err)
		writeError(ctx, w, err)
		return
	}

	out := make([]raceDTO, 0, len(items))
	for _, item := range items {
		out = append(out, raceToDTO(item))
	}
	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) GetNextRace(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetNextRace")
	defer span.End()

	item, err := h.catalogService.NextRace(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, raceToDTO(item))
}

func (h *Handler) ListRaceCyclists(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListRaceCyclists")
	defer span.End()

	raceID, err := parseRaceID(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	items, err := h.catalogService.ListRaceCyclists(ctx, raceID)
	if err != nil {
		h.logger.WarnContext(ctx, "list race cyclists failed", "race_id", raceID, "error", err)
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, cyclistsToDTO(items, time.Now()))
}

func (h *Handler) ListRaceResults(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListRaceResults")
	defer span.End()

	raceID, err := parseRaceID(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	items, err := h.catalogService.ListRaceResults(ctx, raceID)
	if err != nil {
		h.logger.WarnContext(ctx, "list race results failed", "race_id", raceID, "error", err)
		writeError(ctx, w, err)
		return
	}

	out := make([]raceResultDTO, 0, len(items))
	for _, item := range items {
		out = append(out, raceResultToDTO(item))
	}
	writeSuccess(ctx, w, http.StatusOK, out)
}

func parseRaceID(r *http.Request) (int64, error) {
	raw := strings.TrimSpace(r.PathValue("raceID"))
	raceID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || raceID <= 0 {
		return 0, fmt.Errorf("%w: invalid race id %q", usecase.ErrInvalidInput, raw)
	}
	return raceID, nil
}

func teamToDTO(v team.Team) teamDTO {
	return teamDTO{
		ID:       v.ID,
		Code:     v.Code,
		Name:     v.Name,
		ImageURL: v.ImageURL,
	}
}

func cyclistsToDTO(items []cyclist.Cyclist, now time.Time) []cyclistDTO {
	out := make([]cyclistDTO, 0, len(items))
	for _, v := range items {
		out = append(out, cyclistDTO{
			ID:          v.ID,
			FirstName:   v.FirstName,
			LastName:    v.LastName,
			FullName:    v.FullName(),
			Age:         v.Age(now),
			Nationality: v.Nationality,
			Price:       v.Price,
			ImageURL:    v.ImageURL,
			Team: teamDTO{
				ID:       v.TeamID,
				Code:     v.TeamCode,
				Name:     v.TeamName,
				ImageURL: v.TeamImageURL,
			},
		})
	}
	return out
}

func raceToDTO(v race.Race) raceDTO {
	return raceDTO{
		ID:       v.ID,
		Name:     v.Name,
		Year:     v.Year,
		StartAt:  v.StartAt.Format(time.RFC3339),
		Category: string(v.Category),
		Status:   string(v.Status),
		PCSPath:  v.PCSPath,
	}
}

func raceResultToDTO(v result.RaceResult) raceResultDTO {
	return raceResultDTO{
		ID:              v.ID,
		RaceID:          v.RaceID,
		CyclistID:       v.CyclistID,
		Position:        v.Position,
		CyclistFullName: v.CyclistFullName,
		Info:            v.Info,
	}
}
