package app

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/riskibarqy/fantasy-cycling/external/procyclingstats"
	"github.com/riskibarqy/fantasy-cycling/internal/config"
	"github.com/riskibarqy/fantasy-cycling/internal/domain/cyclist"
	"github.com/riskibarqy/fantasy-cycling/internal/domain/race"
	"github.com/riskibarqy/fantasy-cycling/internal/domain/result"
	"github.com/riskibarqy/fantasy-cycling/internal/domain/team"
	cacherepo "github.com/riskibarqy/fantasy-cycling/internal/infrastructure/repository/cache"
	"github.com/riskibarqy/fantasy-cycling/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/fantasy-cycling/internal/infrastructure/repository/postgres"
	"github.com/riskibarqy/fantasy-cycling/internal/infrastructure/seedfile"
	"github.com/riskibarqy/fantasy-cycling/internal/interfaces/httpapi"
	"github.com/riskibarqy/fantasy-cycling/internal/platform/cache"
	"github.com/riskibarqy/fantasy-cycling/internal/platform/logging"
	"github.com/riskibarqy/fantasy-cycling/internal/usecase"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"
)

const dbPingTimeout = 5 * time.Second

// Repositories is the storage backend selected by REPOSITORY_DRIVER.
type Repositories struct {
	Teams    team.Repository
	Cyclists cyclist.Repository
	Races    race.Repository
	Results  result.Repository

	db *sqlx.DB
}

func (r Repositories) Close() error {
	if r.db == nil {
		return nil
	}
	return r.db.Close()
}

// Services holds the usecases shared by the HTTP server and the sync CLI.
type Services struct {
	Sync    *usecase.RaceSyncService
	Catalog *usecase.CatalogService
}

// DSN is the postgres connection string shared by the API, the sync CLI and migrations.
func DSN(cfg config.Config) string {
	return normalizeDBURL(strings.TrimSpace(cfg.DBURL), cfg.DBDisablePreparedBinary)
}

func OpenDB(ctx context.Context, cfg config.Config) (*sqlx.DB, error) {
	if strings.TrimSpace(cfg.DBURL) == "" {
		return nil, fmt.Errorf("DB_URL is required for repository driver %q", cfg.RepositoryDriver)
	}

	dsn := DSN(cfg)
	opts := []otelsql.Option{
		otelsql.WithDBSystem("postgresql"),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
	}
	if name := dbNameFromURL(dsn); name != "" {
		opts = append(opts, otelsql.WithDBName(name))
	}

	db, err := otelsqlx.Open("postgres", dsn, opts...)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, dbPingTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	return db, nil
}

func BuildRepositories(ctx context.Context, cfg config.Config, logger *logging.Logger) (Repositories, error) {
	switch cfg.RepositoryDriver {
	case config.RepositoryDriverMemory:
		logger.Warn("using in-memory repositories, data is lost on restart")
		store := memory.NewStore()
		return Repositories{
			Teams:    memory.NewTeamRepository(store),
			Cyclists: memory.NewCyclistRepository(store),
			Races:    memory.NewRaceRepository(store),
			Results:  memory.NewResultRepository(store),
		}, nil
	case config.RepositoryDriverPostgres, "":
		db, err := OpenDB(ctx, cfg)
		if err != nil {
			return Repositories{}, err
		}
		repos := Repositories{
			Teams:    postgres.NewTeamRepository(db),
			Cyclists: postgres.NewCyclistRepository(db),
			Races:    postgres.NewRaceRepository(db),
			Results:  postgres.NewResultRepository(db),
			db:       db,
		}
		if cfg.CacheEnabled {
			repos = withReadCache(repos, cache.NewStore(cfg.CacheTTL))
		}
		return repos, nil
	default:
		return Repositories{}, fmt.Errorf("unsupported repository driver %q", cfg.RepositoryDriver)
	}
}

func withReadCache(repos Repositories, store *cache.Store) Repositories {
	return Repositories{
		Teams:    cacherepo.NewTeamRepository(repos.Teams, store),
		Cyclists: cacherepo.NewCyclistRepository(repos.Cyclists, store),
		Races:    cacherepo.NewRaceRepository(repos.Races, store),
		Results:  cacherepo.NewResultRepository(repos.Results, store),
		db:       repos.db,
	}
}

func NewRaceDataProvider(cfg config.Config, logger *logging.Logger) *procyclingstats.Client {
	syncCfg := cfg.Sync()

	var pageCache *cache.Store
	if cfg.CacheEnabled {
		pageCache = cache.NewStore(cfg.CacheTTL)
	}

	return procyclingstats.NewClient(procyclingstats.ClientConfig{
		BaseURL:            cfg.PCSBaseURL,
		Headers:            syncCfg.RequestHeaders,
		Timeout:            cfg.PCSTimeout,
		Logger:             logger.Named("procyclingstats"),
		CircuitBreaker:     cfg.PCSCircuitBreaker(),
		Cache:              pageCache,
		Location:           syncCfg.ReferenceTimezone,
		DefaultStartHour:   cfg.PCSDefaultStartHour,
		DefaultStartMinute: cfg.PCSDefaultStartMinute,
	})
}

func BuildServices(cfg config.Config, repos Repositories, provider usecase.RaceDataProvider, logger *logging.Logger) Services {
	syncCfg := cfg.Sync()

	syncSvc := usecase.NewRaceSyncService(
		provider,
		seedfile.NewSource(cfg.SeedDataDir, syncCfg.ReferenceTimezone),
		repos.Teams,
		repos.Cyclists,
		repos.Races,
		repos.Results,
		usecase.RaceSyncConfig{
			MatchThreshold: syncCfg.MatchThreshold,
			TargetYear:     syncCfg.TargetYear,
			Location:       syncCfg.ReferenceTimezone,
		},
		logger.Named("race_sync"),
	)
	catalogSvc := usecase.NewCatalogService(repos.Teams, repos.Cyclists, repos.Races, repos.Results, syncCfg.TargetYear)

	return Services{Sync: syncSvc, Catalog: catalogSvc}
}

func NewHTTPServer(cfg config.Config, services Services, logger *logging.Logger) (*http.Server, error) {
	handler := httpapi.NewHandler(services.Sync, services.Catalog, logger)
	router := httpapi.NewRouter(handler, logger, cfg.CORSAllowedOrigins, cfg.InternalJobToken)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	if server.Addr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	return server, nil
}
