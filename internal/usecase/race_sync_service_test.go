package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/riskibarqy/fantasy-cycling/internal/domain/cyclist"
	"github.com/riskibarqy/fantasy-cycling/internal/domain/race"
	"github.com/riskibarqy/fantasy-cycling/internal/domain/team"
	"github.com/riskibarqy/fantasy-cycling/internal/infrastructure/repository/memory"
)

type syncFixture struct {
	provider *stubRaceDataProvider
	seeds    *stubSeedSource
	teams    *memory.TeamRepository
	cyclists *memory.CyclistRepository
	races    *memory.RaceRepository
	results  *memory.ResultRepository
	service  *RaceSyncService
}

func newSyncFixture(t *testing.T) *syncFixture {
	t.Helper()

	ctx := context.Background()
	store := memory.NewStore()
	f := &syncFixture{
		provider: newStubRaceDataProvider(),
		seeds:    &stubSeedSource{},
		teams:    memory.NewTeamRepository(store),
		cyclists: memory.NewCyclistRepository(store),
		races:    memory.NewRaceRepository(store),
		results:  memory.NewResultRepository(store),
	}

	if err := f.teams.Insert(ctx, team.Team{Code: "UAD", Name: "UAE Team Emirates"}); err != nil {
		t.Fatalf("insert team: %v", err)
	}
	if err := f.teams.Insert(ctx, team.Team{Code: "ADC", Name: "Alpecin-Deceuninck"}); err != nil {
		t.Fatalf("insert team: %v", err)
	}
	riders := []cyclist.Cyclist{
		{FirstName: "Tadej", LastName: "Pogačar", TeamID: 1, BirthDate: time.Date(1998, 9, 21, 0, 0, 0, 0, time.UTC)},
		{FirstName: "Mathieu", LastName: "van der Poel", TeamID: 2, BirthDate: time.Date(1995, 1, 19, 0, 0, 0, 0, time.UTC)},
		{FirstName: "Jasper", LastName: "Philipsen", TeamID: 2, BirthDate: time.Date(1998, 3, 2, 0, 0, 0, 0, time.UTC)},
	}
	for _, item := range riders {
		if err := f.cyclists.Insert(ctx, item); err != nil {
			t.Fatalf("insert cyclist: %v", err)
		}
	}

	f.service = NewRaceSyncService(
		f.provider,
		f.seeds,
		f.teams,
		f.cyclists,
		f.races,
		f.results,
		RaceSyncConfig{TargetYear: 2026, Location: time.UTC},
		nil,
	)
	return f
}

func (f *syncFixture) addRemoteRace(t *testing.T, name, slug string, startAt time.Time) race.Race {
	t.Helper()

	if err := f.races.Insert(context.Background(), race.Race{
		Name:     name,
		Year:     startAt.Year(),
		StartAt:  startAt,
		Category: race.CategoryWorldTour,
		Status:   race.StatusPlanned,
		PCSPath:  &slug,
	}); err != nil {
		t.Fatalf("insert race: %v", err)
	}

	items, err := f.races.ListByYear(context.Background(), startAt.Year())
	if err != nil {
		t.Fatalf("list races: %v", err)
	}
	for _, item := range items {
		if item.RemoteSlug() == slug {
			return item
		}
	}
	t.Fatalf("race %s not stored", slug)
	return race.Race{}
}

func (f *syncFixture) raceStatus(t *testing.T, raceID int64) race.Status {
	t.Helper()

	items, err := f.races.ListByYear(context.Background(), 2026)
	if err != nil {
		t.Fatalf("list races: %v", err)
	}
	for _, item := range items {
		if item.ID == raceID {
			return item.Status
		}
	}
	t.Fatalf("race id=%d not found", raceID)
	return ""
}

func TestRaceSyncService_SyncRaceResults_MatchesAndFinishesRace(t *testing.T) {
	t.Parallel()

	f := newSyncFixture(t)
	item := f.addRemoteRace(t, "Strade Bianche", "strade-bianche", time.Date(2026, 3, 7, 9, 0, 0, 0, time.UTC))

	dnf := "DNF"
	f.provider.results["strade-bianche"] = []ParsedResultRow{
		{Position: intPtr(1), RiderName: "Pogacar T.", TeamName: "UAE Team Emirates"},
		{Position: intPtr(2), RiderName: "Somebody Unknown", TeamName: "Continental Team"},
		{RiderName: "van der Poel Mathieu", TeamName: "Alpecin-Deceuninck", Info: &dnf},
	}

	report, err := f.service.SyncRaceResults(context.Background(), 2026)
	if err != nil {
		t.Fatalf("SyncRaceResults error: %v", err)
	}
	if report.ItemCount != 1 || report.SuccessCount != 1 {
		t.Fatalf("unexpected report counts: %+v", report)
	}
	got := report.Items[0]
	if got.Records != 3 || got.Unmatched != 1 {
		t.Fatalf("expected 3 records with 1 unmatched, got records=%d unmatched=%d", got.Records, got.Unmatched)
	}
	if status := f.raceStatus(t, item.ID); status != race.StatusFinished {
		t.Fatalf("expected race finished, got %s", status)
	}

	rows, err := f.results.ListByRace(context.Background(), item.ID)
	if err != nil {
		t.Fatalf("list results: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected 3 result rows, got %d", len(rows))
	}
	if rows[0].CyclistID == nil || *rows[0].CyclistID != 1 {
		t.Fatalf("expected first row matched to cyclist 1, got %+v", rows[0].CyclistID)
	}
	if rows[1].CyclistID != nil || rows[1].CyclistFullName != "Somebody Unknown" {
		t.Fatalf("expected unmatched row kept without cyclist id, got %+v", rows[1])
	}
	if rows[2].Position != nil || rows[2].Info == nil || *rows[2].Info != "DNF" {
		t.Fatalf("expected DNF row without position, got %+v", rows[2])
	}
}

func TestRaceSyncService_SyncRaceResults_ReplacesPreviousRows(t *testing.T) {
	t.Parallel()

	f := newSyncFixture(t)
	item := f.addRemoteRace(t, "Milano-Sanremo", "milano-sanremo", time.Date(2026, 3, 21, 9, 0, 0, 0, time.UTC))
	f.provider.results["milano-sanremo"] = []ParsedResultRow{
		{Position: intPtr(1), RiderName: "Philipsen Jasper"},
		{Position: intPtr(2), RiderName: "Van der Poel Mathieu"},
	}

	for i := 0; i < 2; i++ {
		if _, err := f.service.SyncRaceResults(context.Background(), 2026); err != nil {
			t.Fatalf("SyncRaceResults run %d error: %v", i, err)
		}
	}

	rows, _ := f.results.ListByRace(context.Background(), item.ID)
	if len(rows) != 2 {
		t.Fatalf("expected re-sync to replace rows, got %d rows", len(rows))
	}
}

func TestRaceSyncService_SyncRaceResults_NoDataCancelsRace(t *testing.T) {
	t.Parallel()

	f := newSyncFixture(t)
	missing := f.addRemoteRace(t, "Liège-Bastogne-Liège", "liege-bastogne-liege", time.Date(2026, 4, 26, 9, 0, 0, 0, time.UTC))
	empty := f.addRemoteRace(t, "Gent-Wevelgem", "gent-wevelgem", time.Date(2026, 3, 29, 9, 0, 0, 0, time.UTC))
	f.provider.resultErrs["liege-bastogne-liege"] = fmt.Errorf("status 404: %w", ErrRemoteNoData)
	f.provider.results["gent-wevelgem"] = []ParsedResultRow{}

	report, err := f.service.SyncRaceResults(context.Background(), 2026)
	if err != nil {
		t.Fatalf("SyncRaceResults error: %v", err)
	}
	if report.CanceledCount != 2 {
		t.Fatalf("expected 2 canceled races, got %+v", report)
	}
	for _, id := range []int64{missing.ID, empty.ID} {
		if status := f.raceStatus(t, id); status != race.StatusCanceled {
			t.Fatalf("expected race %d canceled, got %s", id, status)
		}
		rows, _ := f.results.ListByRace(context.Background(), id)
		if len(rows) != 0 {
			t.Fatalf("expected no results for race %d, got %d", id, len(rows))
		}
	}
}

func TestRaceSyncService_SyncRaceResults_TransientFailureLeavesStatus(t *testing.T) {
	t.Parallel()

	f := newSyncFixture(t)
	down := f.addRemoteRace(t, "Omloop Nieuwsblad", "omloop-het-nieuwsblad", time.Date(2026, 2, 28, 9, 0, 0, 0, time.UTC))
	ok := f.addRemoteRace(t, "Strade Bianche", "strade-bianche", time.Date(2026, 3, 7, 9, 0, 0, 0, time.UTC))
	f.provider.resultErrs["omloop-het-nieuwsblad"] = fmt.Errorf("status 503: %w", ErrDependencyUnavailable)
	f.provider.results["strade-bianche"] = []ParsedResultRow{{Position: intPtr(1), RiderName: "Pogačar Tadej"}}

	report, err := f.service.SyncRaceResults(context.Background(), 2026)
	if err != nil {
		t.Fatalf("SyncRaceResults error: %v", err)
	}
	if report.FailedCount != 1 || report.SuccessCount != 1 {
		t.Fatalf("expected one failed and one ok race, got %+v", report)
	}
	if status := f.raceStatus(t, down.ID); status != race.StatusPlanned {
		t.Fatalf("expected failed race to stay planned, got %s", status)
	}
	if status := f.raceStatus(t, ok.ID); status != race.StatusFinished {
		t.Fatalf("expected second race finished, got %s", status)
	}
	failed, found := report.Item("omloop-het-nieuwsblad")
	if !found || !strings.Contains(failed.Message, "dependency unavailable") {
		t.Fatalf("expected failure message to carry cause, got %+v", failed)
	}
}

func TestRaceSyncService_SyncRaceResults_RecoversPanicPerRace(t *testing.T) {
	t.Parallel()

	f := newSyncFixture(t)
	f.addRemoteRace(t, "E3 Saxo Classic", "e3-harelbeke", time.Date(2026, 3, 27, 9, 0, 0, 0, time.UTC))
	f.addRemoteRace(t, "Paris-Roubaix", "paris-roubaix", time.Date(2026, 4, 12, 9, 0, 0, 0, time.UTC))
	f.provider.panicOn = "e3-harelbeke"
	f.provider.results["paris-roubaix"] = []ParsedResultRow{{Position: intPtr(1), RiderName: "Van der Poel Mathieu"}}

	report, err := f.service.SyncRaceResults(context.Background(), 2026)
	if err != nil {
		t.Fatalf("SyncRaceResults error: %v", err)
	}
	item, _ := report.Item("e3-harelbeke")
	if item.Status != SyncStatusFailed || !strings.HasPrefix(item.Message, "panic:") {
		t.Fatalf("expected panicking race reported failed, got %+v", item)
	}
	if report.SuccessCount != 1 {
		t.Fatalf("expected the next race to still sync, got %+v", report)
	}
}

func TestRaceSyncService_SyncStartlists_ReplacesLinks(t *testing.T) {
	t.Parallel()

	f := newSyncFixture(t)
	item := f.addRemoteRace(t, "Ronde van Vlaanderen", "ronde-van-vlaanderen", time.Date(2026, 4, 5, 9, 0, 0, 0, time.UTC))
	if err := f.races.InsertCyclist(context.Background(), item.ID, 3); err != nil {
		t.Fatalf("insert stale link: %v", err)
	}

	f.provider.startlists["ronde-van-vlaanderen"] = []ParsedStartlistEntry{
		{RiderName: "POGAČAR Tadej", TeamName: "UAE Team Emirates"},
		{RiderName: "Pogacar Tadej", TeamName: "UAE Team Emirates"},
		{RiderName: "VAN DER POEL Mathieu", TeamName: "Alpecin-Deceuninck"},
		{RiderName: "Nobody Special", TeamName: "Wildcard"},
	}

	report, err := f.service.SyncStartlists(context.Background(), 2026)
	if err != nil {
		t.Fatalf("SyncStartlists error: %v", err)
	}
	got := report.Items[0]
	if got.Status != SyncStatusOK || got.Records != 2 || got.Unmatched != 1 {
		t.Fatalf("unexpected startlist item: %+v", got)
	}

	riders, err := f.cyclists.ListByRace(context.Background(), item.ID)
	if err != nil {
		t.Fatalf("list race cyclists: %v", err)
	}
	if len(riders) != 2 || riders[0].ID != 1 || riders[1].ID != 2 {
		t.Fatalf("expected startlist [1 2], got %+v", riders)
	}
}

func TestRaceSyncService_SyncStartlists_FetchErrorKeepsLinksCleared(t *testing.T) {
	t.Parallel()

	f := newSyncFixture(t)
	item := f.addRemoteRace(t, "Amstel Gold Race", "amstel-gold-race", time.Date(2026, 4, 19, 9, 0, 0, 0, time.UTC))
	if err := f.races.InsertCyclist(context.Background(), item.ID, 1); err != nil {
		t.Fatalf("insert stale link: %v", err)
	}
	f.provider.startlistErrs["amstel-gold-race"] = fmt.Errorf("timeout: %w", ErrDependencyUnavailable)

	report, err := f.service.SyncStartlists(context.Background(), 2026)
	if err != nil {
		t.Fatalf("SyncStartlists error: %v", err)
	}
	if report.FailedCount != 1 {
		t.Fatalf("expected failed item, got %+v", report)
	}
	riders, _ := f.cyclists.ListByRace(context.Background(), item.ID)
	if len(riders) != 0 {
		t.Fatalf("expected links cleared, got %d", len(riders))
	}
}

func TestRaceSyncService_SyncRemoteRaces(t *testing.T) {
	t.Parallel()

	f := newSyncFixture(t)
	start := time.Date(2026, 3, 7, 9, 0, 0, 0, time.UTC)
	f.provider.calendars["circuit=1&class=1.UWT"] = []ParsedRaceRow{
		{Slug: "strade-bianche", Name: "Strade Bianche", StartAt: start, HasDate: true, Category: race.CategoryWorldTour, ClassCode: "1.UWT"},
		{Slug: "mystery-race", Name: "Mystery Race"},
	}
	f.provider.calendars["circuit=26&class=1.Pro"] = []ParsedRaceRow{
		{Slug: "strade-bianche", Name: "Strade Bianche", StartAt: start, HasDate: true, Category: race.CategoryWorldTour},
		{Slug: "grand-prix-de-denain", Name: "Grand Prix de Denain", StartAt: start.AddDate(0, 0, 12), HasDate: true, Category: race.CategoryOther, ClassCode: "1.Pro"},
	}

	report, err := f.service.SyncRemoteRaces(context.Background(), 2026)
	if err != nil {
		t.Fatalf("SyncRemoteRaces error: %v", err)
	}
	if report.SuccessCount != 2 || report.SkippedCount != 1 {
		t.Fatalf("unexpected report counts: %+v", report)
	}

	items, _ := f.races.ListRemoteByYear(context.Background(), 2026)
	if len(items) != 2 {
		t.Fatalf("expected 2 remote races, got %d", len(items))
	}
	if items[0].RemoteSlug() != "strade-bianche" || items[0].Status != race.StatusPlanned {
		t.Fatalf("unexpected first race: %+v", items[0])
	}
	if items[1].Category != race.CategoryOther {
		t.Fatalf("expected 1.Pro race categorized other, got %s", items[1].Category)
	}
}

func TestRaceSyncService_SyncRemoteRaces_CalendarFailures(t *testing.T) {
	t.Parallel()

	f := newSyncFixture(t)
	f.provider.calendarErrs["circuit=1&class=1.UWT"] = fmt.Errorf("status 503: %w", ErrDependencyUnavailable)
	f.provider.calendars["circuit=26&class=1.Pro"] = []ParsedRaceRow{}

	report, err := f.service.SyncRemoteRaces(context.Background(), 2026)
	if err != nil {
		t.Fatalf("expected partial failure to be reported, got error %v", err)
	}
	if report.FailedCount != 1 {
		t.Fatalf("expected one failed calendar, got %+v", report)
	}

	f.provider.calendarErrs["circuit=26&class=1.Pro"] = fmt.Errorf("status 500: %w", ErrDependencyUnavailable)
	if _, err := f.service.SyncRemoteRaces(context.Background(), 2026); !errors.Is(err, ErrDependencyUnavailable) {
		t.Fatalf("expected ErrDependencyUnavailable when every calendar fails, got %v", err)
	}
}

func TestRaceSyncService_Sync_SeedsAllSteps(t *testing.T) {
	t.Parallel()

	f := newSyncFixture(t)
	f.seeds.teams = []SeedTeam{{Code: "LTK", Name: "Lidl-Trek", ImageURL: "https://img/ltk.png"}}
	f.seeds.cyclists = []SeedCyclist{{
		FirstName: "Mads", LastName: "Pedersen", Nationality: "DK", Price: 12.5, TeamCode: "LTK",
		BirthDate: time.Date(1995, 12, 18, 0, 0, 0, 0, time.UTC),
	}}
	f.seeds.races = []SeedRace{{Name: "Il Lombardia", StartAt: time.Date(2026, 10, 10, 9, 0, 0, 0, time.UTC), Category: "monument"}}
	f.seeds.points = []SeedCategoryPoints{{Category: "monument", Position: 1, Points: 100}, {Category: "monument", Position: 2, Points: 80}}

	report, err := f.service.Sync(context.Background())
	if err != nil {
		t.Fatalf("Sync error: %v", err)
	}
	if report.ItemCount != 4 || report.SuccessCount != 4 {
		t.Fatalf("expected 4 successful steps, got %+v", report)
	}

	races, _ := f.races.ListByYear(context.Background(), 2026)
	if len(races) != 1 || races[0].Status != race.StatusPlanned || races[0].HasRemote() {
		t.Fatalf("unexpected seeded races: %+v", races)
	}
	if points := f.races.CategoryPoints(); len(points) != 2 {
		t.Fatalf("expected 2 category points rows, got %d", len(points))
	}
}

func TestRaceSyncService_Sync_UnknownTeamAborts(t *testing.T) {
	t.Parallel()

	f := newSyncFixture(t)
	f.seeds.cyclists = []SeedCyclist{{
		FirstName: "Wout", LastName: "van Aert", TeamCode: "XXX",
		BirthDate: time.Date(1994, 9, 15, 0, 0, 0, 0, time.UTC),
	}}
	f.seeds.races = []SeedRace{{Name: "Should Not Load", StartAt: time.Now(), Category: "other"}}

	report, err := f.service.Sync(context.Background())
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if !strings.HasPrefix(err.Error(), "seed cyclists:") {
		t.Fatalf("expected error prefixed with step, got %q", err.Error())
	}
	if report.FailedCount != 1 || report.ItemCount != 2 {
		t.Fatalf("expected abort after cyclists step, got %+v", report)
	}
	if races, _ := f.races.ListByYear(context.Background(), 2026); len(races) != 0 {
		t.Fatalf("expected races step never to run, got %d races", len(races))
	}
}

func TestRaceSyncService_Sync_LoadErrorAborts(t *testing.T) {
	t.Parallel()

	f := newSyncFixture(t)
	f.seeds.teamsErr = fmt.Errorf("read teams: %w", ErrInvalidInput)

	_, err := f.service.Sync(context.Background())
	if !errors.Is(err, ErrInvalidInput) || !strings.HasPrefix(err.Error(), "seed teams:") {
		t.Fatalf("expected seed teams error, got %v", err)
	}
}

func TestRaceSyncService_ResolveYear(t *testing.T) {
	t.Parallel()

	svc := NewRaceSyncService(nil, nil, nil, nil, nil, nil, RaceSyncConfig{}, nil)
	if _, err := svc.resolveYear(0); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput without target year, got %v", err)
	}

	svc.cfg.TargetYear = 2026
	year, err := svc.resolveYear(0)
	if err != nil || year != 2026 {
		t.Fatalf("expected fallback to 2026, got year=%d err=%v", year, err)
	}
	if year, _ := svc.resolveYear(2025); year != 2025 {
		t.Fatalf("expected explicit year kept, got %d", year)
	}
}

func intPtr(v int) *int {
	return &v
}

type stubRaceDataProvider struct {
	results       map[string][]ParsedResultRow
	resultErrs    map[string]error
	startlists    map[string][]ParsedStartlistEntry
	startlistErrs map[string]error
	calendars     map[string][]ParsedRaceRow
	calendarErrs  map[string]error
	panicOn       string
}

func newStubRaceDataProvider() *stubRaceDataProvider {
	return &stubRaceDataProvider{
		results:       make(map[string][]ParsedResultRow),
		resultErrs:    make(map[string]error),
		startlists:    make(map[string][]ParsedStartlistEntry),
		startlistErrs: make(map[string]error),
		calendars:     make(map[string][]ParsedRaceRow),
		calendarErrs:  make(map[string]error),
	}
}

func (s *stubRaceDataProvider) FetchRaceResults(_ context.Context, slug string, _ int) ([]ParsedResultRow, error) {
	if slug == s.panicOn {
		panic("parser blew up")
	}
	if err := s.resultErrs[slug]; err != nil {
		return nil, err
	}
	return s.results[slug], nil
}

func (s *stubRaceDataProvider) FetchStartlist(_ context.Context, slug string, _ int) ([]ParsedStartlistEntry, error) {
	if err := s.startlistErrs[slug]; err != nil {
		return nil, err
	}
	return s.startlists[slug], nil
}

func (s *stubRaceDataProvider) FetchRaceCalendar(_ context.Context, _ int, filter CalendarFilter) ([]ParsedRaceRow, error) {
	if err := s.calendarErrs[filter.Key()]; err != nil {
		return nil, err
	}
	return s.calendars[filter.Key()], nil
}

type stubSeedSource struct {
	teams    []SeedTeam
	teamsErr error
	cyclists []SeedCyclist
	races    []SeedRace
	points   []SeedCategoryPoints
}

func (s *stubSeedSource) LoadTeams(context.Context) ([]SeedTeam, error) {
	return s.teams, s.teamsErr
}

func (s *stubSeedSource) LoadCyclists(context.Context) ([]SeedCyclist, error) {
	return s.cyclists, nil
}

func (s *stubSeedSource) LoadRaces(context.Context) ([]SeedRace, error) {
	return s.races, nil
}

func (s *stubSeedSource) LoadCategoryPoints(context.Context) ([]SeedCategoryPoints, error) {
	return s.points, nil
}
