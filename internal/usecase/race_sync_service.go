package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/fantasy-cycling/internal/domain/cyclist"
	"github.com/riskibarqy/fantasy-cycling/internal/domain/race"
	"github.com/riskibarqy/fantasy-cycling/internal/domain/result"
	"github.com/riskibarqy/fantasy-cycling/internal/domain/team"
	"github.com/riskibarqy/fantasy-cycling/internal/platform/logging"
)

type RaceSyncConfig struct {
	MatchThreshold float64
	TargetYear     int
	Location       *time.Location
	Calendars      []CalendarFilter
}

// RaceSyncService runs the seed and procyclingstats sync operations.
// Races are processed one at a time; a failing race is reported and skipped.
type RaceSyncService struct {
	provider    RaceDataProvider
	seeds       SeedSource
	teamRepo    team.Repository
	cyclistRepo cyclist.Repository
	raceRepo    race.Repository
	resultRepo  result.Repository
	cfg         RaceSyncConfig
	logger      *logging.Logger
}

func NewRaceSyncService(
	provider RaceDataProvider,
	seeds SeedSource,
	teamRepo team.Repository,
	cyclistRepo cyclist.Repository,
	raceRepo race.Repository,
	resultRepo result.Repository,
	cfg RaceSyncConfig,
	logger *logging.Logger,
) *RaceSyncService {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.MatchThreshold <= 0 {
		cfg.MatchThreshold = cyclist.DefaultMatchThreshold
	}
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	if len(cfg.Calendars) == 0 {
		cfg.Calendars = DefaultCalendars()
	}

	return &RaceSyncService{
		provider:    provider,
		seeds:       seeds,
		teamRepo:    teamRepo,
		cyclistRepo: cyclistRepo,
		raceRepo:    raceRepo,
		resultRepo:  resultRepo,
		cfg:         cfg,
		logger:      logger,
	}
}

// Sync loads teams, cyclists, races and category points from the seed files,
// in that order. The first failing step aborts the run.
func (s *RaceSyncService) Sync(ctx context.Context) (SyncReport, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RaceSyncService.Sync")
	defer span.End()

	if s.seeds == nil || s.teamRepo == nil || s.cyclistRepo == nil || s.raceRepo == nil {
		return SyncReport{}, fmt.Errorf("%w: seed sync is not fully configured", ErrDependencyUnavailable)
	}

	report := newSyncReport(SyncOperationSeed, s.cfg.TargetYear)
	steps := []struct {
		name string
		run  func(context.Context) (int, error)
	}{
		{name: "teams", run: s.seedTeams},
		{name: "cyclists", run: s.seedCyclists},
		{name: "races", run: s.seedRaces},
		{name: "points", run: s.seedCategoryPoints},
	}

	for _, step := range steps {
		started := time.Now()
		records, err := step.run(ctx)
		item := SyncItemResult{
			Key:        step.name,
			Name:       "seed " + step.name,
			Status:     SyncStatusOK,
			Records:    records,
			DurationMs: time.Since(started).Milliseconds(),
		}
		if err != nil {
			item.Status = SyncStatusFailed
			item.Message = err.Error()
			report.add(item)
			s.logger.ErrorContext(ctx, "seed sync step failed", "step", step.name, "records", records, "error", err)
			return report, fmt.Errorf("seed %s: %w", step.name, err)
		}
		report.add(item)
		s.logger.InfoContext(ctx, "seed sync step completed", "step", step.name, "records", records)
	}

	return report, nil
}

func (s *RaceSyncService) seedTeams(ctx context.Context) (int, error) {
	items, err := s.seeds.LoadTeams(ctx)
	if err != nil {
		return 0, err
	}

	teams := make([]team.Team, 0, len(items))
	for idx, item := range items {
		value := team.Team{
			Code:     strings.TrimSpace(item.Code),
			Name:     strings.TrimSpace(item.Name),
			ImageURL: strings.TrimSpace(item.ImageURL),
		}
		if err := value.Validate(); err != nil {
			return 0, fmt.Errorf("%w: team #%d: %v", ErrInvalidInput, idx, err)
		}
		teams = append(teams, value)
	}

	written := 0
	for _, value := range teams {
		if err := s.teamRepo.Insert(ctx, value); err != nil {
			return written, fmt.Errorf("insert team code=%s: %w", value.Code, err)
		}
		written++
	}
	return written, nil
}

func (s *RaceSyncService) seedCyclists(ctx context.Context) (int, error) {
	items, err := s.seeds.LoadCyclists(ctx)
	if err != nil {
		return 0, err
	}

	teams, err := s.teamRepo.List(ctx)
	if err != nil {
		return 0, fmt.Errorf("list teams: %w", err)
	}
	teamIDs := team.IDsByCode(teams)

	cyclists := make([]cyclist.Cyclist, 0, len(items))
	for idx, item := range items {
		code := strings.TrimSpace(item.TeamCode)
		teamID, ok := teamIDs[code]
		if !ok {
			return 0, fmt.Errorf("%w: cyclist #%d %s %s references unknown team code %q", ErrInvalidInput, idx, item.FirstName, item.LastName, code)
		}
		value := cyclist.Cyclist{
			FirstName:   strings.TrimSpace(item.FirstName),
			LastName:    strings.TrimSpace(item.LastName),
			Price:       item.Price,
			BirthDate:   item.BirthDate,
			Nationality: strings.TrimSpace(item.Nationality),
			TeamID:      teamID,
			ImageURL:    strings.TrimSpace(item.ImageURL),
		}
		if err := value.Validate(); err != nil {
			return 0, fmt.Errorf("%w: cyclist #%d: %v", ErrInvalidInput, idx, err)
		}
		cyclists = append(cyclists, value)
	}

	written := 0
	for _, value := range cyclists {
		if err := s.cyclistRepo.Insert(ctx, value); err != nil {
			return written, fmt.Errorf("insert cyclist %s: %w", value.FullName(), err)
		}
		written++
	}
	return written, nil
}

func (s *RaceSyncService) seedRaces(ctx context.Context) (int, error) {
	items, err := s.seeds.LoadRaces(ctx)
	if err != nil {
		return 0, err
	}
	if s.cfg.TargetYear <= 0 {
		return 0, fmt.Errorf("%w: target year is not configured", ErrInvalidInput)
	}

	races := make([]race.Race, 0, len(items))
	for idx, item := range items {
		category, ok := race.ParseCategory(item.Category)
		if !ok {
			return 0, fmt.Errorf("%w: race #%d %q has unknown category %q", ErrInvalidInput, idx, item.Name, item.Category)
		}
		value := race.Race{
			Name:     strings.TrimSpace(item.Name),
			Year:     s.cfg.TargetYear,
			StartAt:  item.StartAt,
			Category: category,
			Status:   race.StatusPlanned,
		}
		if err := value.Validate(); err != nil {
			return 0, fmt.Errorf("%w: race #%d: %v", ErrInvalidInput, idx, err)
		}
		races = append(races, value)
	}

	written := 0
	for _, value := range races {
		if err := s.raceRepo.Insert(ctx, value); err != nil {
			return written, fmt.Errorf("insert race %q: %w", value.Name, err)
		}
		written++
	}
	return written, nil
}

func (s *RaceSyncService) seedCategoryPoints(ctx context.Context) (int, error) {
	items, err := s.seeds.LoadCategoryPoints(ctx)
	if err != nil {
		return 0, err
	}

	entries := make([]race.CategoryPoints, 0, len(items))
	for idx, item := range items {
		category, ok := race.ParseCategory(item.Category)
		if !ok {
			return 0, fmt.Errorf("%w: points #%d has unknown category %q", ErrInvalidInput, idx, item.Category)
		}
		value := race.CategoryPoints{Category: category, Position: item.Position, Points: item.Points}
		if err := value.Validate(); err != nil {
			return 0, fmt.Errorf("%w: points #%d: %v", ErrInvalidInput, idx, err)
		}
		entries = append(entries, value)
	}

	written := 0
	for _, value := range entries {
		if err := s.raceRepo.InsertCategoryPoints(ctx, value); err != nil {
			return written, fmt.Errorf("insert category points %s/%d: %w", value.Category, value.Position, err)
		}
		written++
	}
	return written, nil
}

// SyncRemoteRaces discovers the year's races from the remote calendars and
// inserts them as planned races. Duplicate handling is left to the repository.
func (s *RaceSyncService) SyncRemoteRaces(ctx context.Context, year int) (SyncReport, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RaceSyncService.SyncRemoteRaces")
	defer span.End()

	if s.provider == nil || s.raceRepo == nil {
		return SyncReport{}, fmt.Errorf("%w: remote race sync is not fully configured", ErrDependencyUnavailable)
	}
	year, err := s.resolveYear(year)
	if err != nil {
		return SyncReport{}, err
	}

	report := newSyncReport(SyncOperationRaces, year)
	rows := make([]ParsedRaceRow, 0, 64)
	failedCalendars := 0
	for _, filter := range s.cfg.Calendars {
		started := time.Now()
		parsed, err := s.provider.FetchRaceCalendar(ctx, year, filter)
		if err != nil {
			failedCalendars++
			report.add(SyncItemResult{
				Key:        "calendar:" + filter.Key(),
				Name:       "calendar " + filter.Class,
				Status:     SyncStatusFailed,
				DurationMs: time.Since(started).Milliseconds(),
				Message:    err.Error(),
			})
			s.logger.WarnContext(ctx, "fetch race calendar failed", "year", year, "circuit", filter.Circuit, "class", filter.Class, "error", err)
			continue
		}
		s.logger.InfoContext(ctx, "race calendar fetched", "year", year, "circuit", filter.Circuit, "class", filter.Class, "races", len(parsed))
		rows = append(rows, parsed...)
	}
	if len(s.cfg.Calendars) > 0 && failedCalendars == len(s.cfg.Calendars) {
		return report, fmt.Errorf("%w: all %d race calendars failed for year %d", ErrDependencyUnavailable, failedCalendars, year)
	}

	seen := make(map[string]struct{}, len(rows))
	for _, row := range rows {
		slug := strings.TrimSpace(row.Slug)
		if _, ok := seen[slug]; ok {
			continue
		}
		seen[slug] = struct{}{}
		report.add(s.insertDiscoveredRace(ctx, year, row))
	}

	s.logger.InfoContext(ctx, "remote race sync completed",
		"year", year,
		"races", report.SuccessCount,
		"skipped", report.SkippedCount,
		"failed", report.FailedCount,
	)
	return report, nil
}

func (s *RaceSyncService) insertDiscoveredRace(ctx context.Context, year int, row ParsedRaceRow) SyncItemResult {
	started := time.Now()
	item := SyncItemResult{Key: row.Slug, Name: row.Name, Status: SyncStatusOK}
	defer func() {
		item.DurationMs = time.Since(started).Milliseconds()
	}()

	if !row.HasDate {
		item.Status = SyncStatusSkipped
		item.Message = "start date not found on calendar row"
		s.logger.WarnContext(ctx, "skip remote race without start date", "pcs_path", row.Slug, "name", row.Name)
		return item
	}

	category := row.Category
	if _, ok := race.ParseCategory(string(category)); !ok {
		category = race.CategoryOther
	}
	slug := row.Slug
	value := race.Race{
		Name:     strings.TrimSpace(row.Name),
		Year:     year,
		StartAt:  row.StartAt,
		Category: category,
		Status:   race.StatusPlanned,
		PCSPath:  &slug,
	}
	if err := value.Validate(); err != nil {
		item.Status = SyncStatusSkipped
		item.Message = err.Error()
		return item
	}
	if err := s.raceRepo.Insert(ctx, value); err != nil {
		item.Status = SyncStatusFailed
		item.Message = err.Error()
		s.logger.WarnContext(ctx, "insert remote race failed", "pcs_path", row.Slug, "error", err)
		return item
	}

	item.Records = 1
	return item
}

// SyncRaceResults fetches results for every remote race of year. A race with
// no published results is marked canceled; otherwise its results are replaced
// and it is marked finished. Unmatched riders are kept without a cyclist id.
func (s *RaceSyncService) SyncRaceResults(ctx context.Context, year int) (SyncReport, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RaceSyncService.SyncRaceResults")
	defer span.End()

	if s.provider == nil || s.raceRepo == nil || s.cyclistRepo == nil || s.resultRepo == nil {
		return SyncReport{}, fmt.Errorf("%w: race result sync is not fully configured", ErrDependencyUnavailable)
	}
	races, matcher, year, err := s.loadRemoteRaces(ctx, year)
	if err != nil {
		return SyncReport{}, err
	}

	report := newSyncReport(SyncOperationResults, year)
	for _, item := range races {
		if ctx.Err() != nil {
			return report, ctx.Err()
		}
		report.add(s.runRaceItem(ctx, "race results", item, func(ctx context.Context, out *SyncItemResult) error {
			return s.syncRaceResult(ctx, item, matcher, out)
		}))
	}

	s.logger.InfoContext(ctx, "race result sync completed",
		"year", year,
		"races", report.ItemCount,
		"finished", report.SuccessCount,
		"canceled", report.CanceledCount,
		"failed", report.FailedCount,
	)
	return report, nil
}

func (s *RaceSyncService) syncRaceResult(ctx context.Context, item race.Race, matcher *cyclist.Matcher, out *SyncItemResult) error {
	rows, err := s.provider.FetchRaceResults(ctx, item.RemoteSlug(), item.Year)
	if err != nil && !errors.Is(err, ErrRemoteNoData) {
		return fmt.Errorf("fetch results: %w", err)
	}

	if len(rows) == 0 {
		if err := s.raceRepo.UpdateStatus(ctx, item.ID, race.StatusCanceled); err != nil {
			return fmt.Errorf("mark race canceled: %w", err)
		}
		out.Status = SyncStatusCanceled
		out.Message = "no results published"
		s.logger.InfoContext(ctx, "race has no results, marked canceled", "race_id", item.ID, "pcs_path", item.RemoteSlug())
		return nil
	}

	results := make([]result.RaceResult, 0, len(rows))
	for _, row := range rows {
		value := result.RaceResult{
			RaceID:          item.ID,
			Position:        row.Position,
			CyclistFullName: strings.TrimSpace(row.RiderName),
			Info:            row.Info,
		}
		if cyclistID, ok := s.resolveRider(ctx, item, matcher, row.RiderName); ok {
			value.CyclistID = &cyclistID
		} else {
			out.Unmatched++
		}
		results = append(results, value)
	}

	if err := s.replaceRaceResults(ctx, item.ID, results); err != nil {
		return err
	}
	if err := s.raceRepo.UpdateStatus(ctx, item.ID, race.StatusFinished); err != nil {
		return fmt.Errorf("mark race finished: %w", err)
	}

	out.Records = len(results)
	return nil
}

func (s *RaceSyncService) replaceRaceResults(ctx context.Context, raceID int64, items []result.RaceResult) error {
	if replacer, ok := s.resultRepo.(result.Replacer); ok {
		if err := replacer.ReplaceRaceResults(ctx, raceID, items); err != nil {
			return fmt.Errorf("replace race results: %w", err)
		}
		return nil
	}

	if err := s.resultRepo.DeleteByRace(ctx, raceID); err != nil {
		return fmt.Errorf("clear race results: %w", err)
	}
	for _, value := range items {
		if err := s.resultRepo.Insert(ctx, value); err != nil {
			return fmt.Errorf("insert race result rider=%q: %w", value.CyclistFullName, err)
		}
	}
	return nil
}

// SyncStartlists rebuilds the startlist of every remote race of year.
// Riders that cannot be matched are left out.
func (s *RaceSyncService) SyncStartlists(ctx context.Context, year int) (SyncReport, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RaceSyncService.SyncStartlists")
	defer span.End()

	if s.provider == nil || s.raceRepo == nil || s.cyclistRepo == nil {
		return SyncReport{}, fmt.Errorf("%w: startlist sync is not fully configured", ErrDependencyUnavailable)
	}
	races, matcher, year, err := s.loadRemoteRaces(ctx, year)
	if err != nil {
		return SyncReport{}, err
	}

	report := newSyncReport(SyncOperationStartlists, year)
	for _, item := range races {
		if ctx.Err() != nil {
			return report, ctx.Err()
		}
		report.add(s.runRaceItem(ctx, "startlist", item, func(ctx context.Context, out *SyncItemResult) error {
			return s.syncRaceStartlist(ctx, item, matcher, out)
		}))
	}

	s.logger.InfoContext(ctx, "startlist sync completed",
		"year", year,
		"races", report.ItemCount,
		"synced", report.SuccessCount,
		"empty", report.SkippedCount,
		"failed", report.FailedCount,
	)
	return report, nil
}

func (s *RaceSyncService) syncRaceStartlist(ctx context.Context, item race.Race, matcher *cyclist.Matcher, out *SyncItemResult) error {
	if err := s.raceRepo.DeleteCyclists(ctx, item.ID); err != nil {
		return fmt.Errorf("clear startlist: %w", err)
	}

	entries, err := s.provider.FetchStartlist(ctx, item.RemoteSlug(), item.Year)
	if err != nil && !errors.Is(err, ErrRemoteNoData) {
		return fmt.Errorf("fetch startlist: %w", err)
	}
	if len(entries) == 0 {
		out.Status = SyncStatusSkipped
		out.Message = "startlist not published"
		return nil
	}

	seen := make(map[int64]struct{}, len(entries))
	for _, entry := range entries {
		cyclistID, ok := s.resolveRider(ctx, item, matcher, entry.RiderName)
		if !ok {
			out.Unmatched++
			continue
		}
		if _, dup := seen[cyclistID]; dup {
			continue
		}
		seen[cyclistID] = struct{}{}

		if err := s.raceRepo.InsertCyclist(ctx, item.ID, cyclistID); err != nil {
			return fmt.Errorf("insert startlist cyclist_id=%d: %w", cyclistID, err)
		}
		out.Records++
	}

	return nil
}

func (s *RaceSyncService) loadRemoteRaces(ctx context.Context, year int) ([]race.Race, *cyclist.Matcher, int, error) {
	year, err := s.resolveYear(year)
	if err != nil {
		return nil, nil, 0, err
	}

	races, err := s.raceRepo.ListRemoteByYear(ctx, year)
	if err != nil {
		return nil, nil, year, fmt.Errorf("list remote races year=%d: %w", year, err)
	}
	cyclists, err := s.cyclistRepo.List(ctx)
	if err != nil {
		return nil, nil, year, fmt.Errorf("list cyclists: %w", err)
	}

	eligible := make([]race.Race, 0, len(races))
	for _, item := range races {
		if item.HasRemote() && item.Year == year {
			eligible = append(eligible, item)
		}
	}

	return eligible, cyclist.NewMatcher(cyclists, s.cfg.MatchThreshold), year, nil
}

func (s *RaceSyncService) resolveRider(ctx context.Context, item race.Race, matcher *cyclist.Matcher, name string) (int64, bool) {
	match, ok := matcher.Match(name)
	if ok {
		return match.Cyclist.ID, true
	}

	s.logger.WarnContext(ctx, "rider name not matched",
		"race_id", item.ID,
		"pcs_path", item.RemoteSlug(),
		"rider", name,
		"best_candidate", match.Cyclist.FullName(),
		"best_score", match.Score,
		"threshold", matcher.Threshold(),
	)
	return 0, false
}

// runRaceItem isolates one race: errors and panics become a failed item.
func (s *RaceSyncService) runRaceItem(
	ctx context.Context,
	stage string,
	item race.Race,
	fn func(context.Context, *SyncItemResult) error,
) (out SyncItemResult) {
	started := time.Now()
	out = SyncItemResult{
		Key:    item.RemoteSlug(),
		Name:   item.Name,
		RaceID: item.ID,
		Status: SyncStatusOK,
	}

	defer func() {
		if rec := recover(); rec != nil {
			out.Status = SyncStatusFailed
			out.Message = fmt.Sprintf("panic: %v", rec)
			s.logger.ErrorContext(ctx, stage+" sync panicked", "race_id", item.ID, "pcs_path", item.RemoteSlug(), "panic", rec)
		}
		out.DurationMs = time.Since(started).Milliseconds()
	}()

	if err := fn(ctx, &out); err != nil {
		out.Status = SyncStatusFailed
		out.Message = err.Error()
		s.logger.WarnContext(ctx, stage+" sync failed", "race_id", item.ID, "pcs_path", item.RemoteSlug(), "error", err)
	}
	return out
}

func (s *RaceSyncService) resolveYear(year int) (int, error) {
	if year <= 0 {
		year = s.cfg.TargetYear
	}
	if year <= 0 {
		return 0, fmt.Errorf("%w: year must be > 0", ErrInvalidInput)
	}
	return year, nil
}
