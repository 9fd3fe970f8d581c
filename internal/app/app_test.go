package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/riskibarqy/fantasy-cycling/internal/config"
	"github.com/riskibarqy/fantasy-cycling/internal/domain/result"
	"github.com/riskibarqy/fantasy-cycling/internal/platform/cache"
	"github.com/riskibarqy/fantasy-cycling/internal/platform/logging"
)

func memoryConfig() config.Config {
	return config.Config{
		HTTPAddr:          ":0",
		RepositoryDriver:  config.RepositoryDriverMemory,
		SeedDataDir:       "../../data",
		PCSBaseURL:        "http://127.0.0.1:1",
		PCSTimeout:        time.Second,
		PCSMatchThreshold: 80,
		PCSLocation:       time.UTC,
		SyncYear:          2026,
		InternalJobToken:  "token",
	}
}

func TestBuildRepositories_Memory(t *testing.T) {
	repos, err := BuildRepositories(context.Background(), memoryConfig(), logging.NewNop())
	if err != nil {
		t.Fatalf("BuildRepositories error: %v", err)
	}
	if repos.Teams == nil || repos.Cyclists == nil || repos.Races == nil || repos.Results == nil {
		t.Fatalf("expected all repositories, got %+v", repos)
	}
	if err := repos.Close(); err != nil {
		t.Fatalf("close memory repositories: %v", err)
	}
}

func TestBuildRepositories_Errors(t *testing.T) {
	cfg := memoryConfig()
	cfg.RepositoryDriver = "sqlite"
	if _, err := BuildRepositories(context.Background(), cfg, logging.NewNop()); err == nil {
		t.Fatalf("expected unsupported driver error")
	}

	cfg.RepositoryDriver = config.RepositoryDriverPostgres
	cfg.DBURL = " "
	_, err := BuildRepositories(context.Background(), cfg, logging.NewNop())
	if err == nil || !strings.Contains(err.Error(), "DB_URL") {
		t.Fatalf("expected DB_URL error, got %v", err)
	}
}

func TestNewHTTPServer_SeedsThroughRouter(t *testing.T) {
	cfg := memoryConfig()
	logger := logging.NewNop()

	repos, err := BuildRepositories(context.Background(), cfg, logger)
	if err != nil {
		t.Fatalf("BuildRepositories error: %v", err)
	}
	services := BuildServices(cfg, repos, NewRaceDataProvider(cfg, logger), logger)

	srv, err := NewHTTPServer(cfg, services, logger)
	if err != nil {
		t.Fatalf("NewHTTPServer error: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/v1/internal/sync/seed", nil)
	req.Header.Set("X-Internal-Job-Token", "token")
	rec := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected seed sync 200, got %d: %s", rec.Code, rec.Body.String())
	}

	teams, err := repos.Teams.List(context.Background())
	if err != nil || len(teams) == 0 {
		t.Fatalf("expected seeded teams, got %d err=%v", len(teams), err)
	}
}

func TestNewHTTPServer_RequiresAddr(t *testing.T) {
	cfg := memoryConfig()
	cfg.HTTPAddr = ""
	if _, err := NewHTTPServer(cfg, Services{}, logging.NewNop()); err == nil {
		t.Fatalf("expected empty addr error")
	}
}

func TestWithReadCache_KeepsReplacer(t *testing.T) {
	repos, err := BuildRepositories(context.Background(), memoryConfig(), logging.NewNop())
	if err != nil {
		t.Fatalf("BuildRepositories error: %v", err)
	}

	cached := withReadCache(repos, cache.NewStore(time.Minute))
	if _, ok := cached.Results.(result.Replacer); !ok {
		t.Fatalf("expected cached results repository to keep ReplaceRaceResults")
	}
}
