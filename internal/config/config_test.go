package config

import (
	"testing"
	"time"
)

func TestLoad_AppEnvValidation(t *testing.T) {
	t.Setenv("APP_ENV", "invalid")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for invalid APP_ENV")
	}
}

func TestLoad_UptraceRequiresDSNWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "true")
	t.Setenv("UPTRACE_DSN", "")
	t.Setenv("OTEL_EXPORTER_OTLP_HEADERS", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when UPTRACE_ENABLED=true without UPTRACE_DSN")
	}
}

func TestLoad_UptraceDSNFromOTLPHeaders(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "true")
	t.Setenv("UPTRACE_DSN", "")
	t.Setenv("OTEL_EXPORTER_OTLP_HEADERS", "uptrace-dsn='https://token@api.uptrace.dev?grpc=4317'")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.UptraceDSN != "https://token@api.uptrace.dev?grpc=4317" {
		t.Fatalf("unexpected UptraceDSN: %q", cfg.UptraceDSN)
	}
}

func TestLoad_PyroscopeRequiresServerAddressWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")
	t.Setenv("PYROSCOPE_ENABLED", "true")
	t.Setenv("PYROSCOPE_SERVER_ADDRESS", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when PYROSCOPE_ENABLED=true without PYROSCOPE_SERVER_ADDRESS")
	}
}

func TestLoad_PyroscopeAppNameDefaultsToServiceName(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")
	t.Setenv("APP_SERVICE_NAME", "fantasy-cycling-api-test")
	t.Setenv("PYROSCOPE_ENABLED", "true")
	t.Setenv("PYROSCOPE_SERVER_ADDRESS", "http://localhost:4040")
	t.Setenv("PYROSCOPE_APP_NAME", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.PyroscopeAppName != "fantasy-cycling-api-test" {
		t.Fatalf("unexpected pyroscope app name: %q", cfg.PyroscopeAppName)
	}
}

func TestLoad_CORSOriginsDefaultAndParsing(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")

	t.Run("default wildcard", func(t *testing.T) {
		t.Setenv("CORS_ALLOWED_ORIGINS", "")
		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if len(cfg.CORSAllowedOrigins) != 1 || cfg.CORSAllowedOrigins[0] != "*" {
			t.Fatalf("unexpected default CORS origins: %+v", cfg.CORSAllowedOrigins)
		}
	})

	t.Run("comma separated parsing", func(t *testing.T) {
		t.Setenv("CORS_ALLOWED_ORIGINS", " https://a.example.com, http://localhost:5173 ")
		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if len(cfg.CORSAllowedOrigins) != 2 {
			t.Fatalf("unexpected CORS origins length: %d", len(cfg.CORSAllowedOrigins))
		}
		if cfg.CORSAllowedOrigins[1] != "http://localhost:5173" {
			t.Fatalf("unexpected second CORS origin: %s", cfg.CORSAllowedOrigins[1])
		}
	})
}

func TestLoad_RepositoryDriver(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")

	t.Run("defaults to postgres", func(t *testing.T) {
		t.Setenv("REPOSITORY_DRIVER", "")
		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if cfg.RepositoryDriver != RepositoryDriverPostgres {
			t.Fatalf("unexpected driver: %q", cfg.RepositoryDriver)
		}
	})

	t.Run("memory is accepted", func(t *testing.T) {
		t.Setenv("REPOSITORY_DRIVER", "Memory")
		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if cfg.RepositoryDriver != RepositoryDriverMemory {
			t.Fatalf("unexpected driver: %q", cfg.RepositoryDriver)
		}
	})

	t.Run("unknown driver", func(t *testing.T) {
		t.Setenv("REPOSITORY_DRIVER", "sqlite")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error for unknown REPOSITORY_DRIVER")
		}
	})
}

func TestLoad_CacheConfigParsing(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")

	t.Run("defaults", func(t *testing.T) {
		t.Setenv("CACHE_ENABLED", "")
		t.Setenv("CACHE_TTL", "")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if !cfg.CacheEnabled {
			t.Fatalf("expected cache enabled by default")
		}
		if cfg.CacheTTL != 60*time.Second {
			t.Fatalf("unexpected default cache ttl: %s", cfg.CacheTTL)
		}
	})

	t.Run("invalid ttl", func(t *testing.T) {
		t.Setenv("CACHE_TTL", "bad")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error for invalid CACHE_TTL")
		}
	})
}

func TestLoad_PCSDefaults(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")
	for _, key := range []string{
		"PCS_BASE_URL", "PCS_USER_AGENT", "PCS_REQUEST_HEADERS", "PCS_TIMEOUT", "PCS_MATCH_THRESHOLD",
		"PCS_REFERENCE_TIMEZONE", "PCS_DEFAULT_START_TIME", "PCS_CIRCUIT_ENABLED", "SYNC_YEAR",
	} {
		t.Setenv(key, "")
	}

	now := time.Date(2027, 1, 3, 12, 0, 0, 0, time.UTC)
	cfg, err := load(func() time.Time { return now })
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.PCSBaseURL != "https://www.procyclingstats.com" {
		t.Fatalf("unexpected PCSBaseURL: %q", cfg.PCSBaseURL)
	}
	if cfg.PCSMatchThreshold != 80 {
		t.Fatalf("unexpected PCSMatchThreshold: %v", cfg.PCSMatchThreshold)
	}
	if cfg.PCSLocation == nil || cfg.PCSLocation.String() != "Europe/Brussels" {
		t.Fatalf("unexpected PCSLocation: %v", cfg.PCSLocation)
	}
	if cfg.PCSDefaultStartHour != 9 || cfg.PCSDefaultStartMinute != 0 {
		t.Fatalf("unexpected default start %02d:%02d", cfg.PCSDefaultStartHour, cfg.PCSDefaultStartMinute)
	}
	if cfg.SyncYear != 2027 {
		t.Fatalf("expected SYNC_YEAR to default to the current year, got %d", cfg.SyncYear)
	}
	if !cfg.PCSCircuitBreaker().Enabled {
		t.Fatalf("expected PCS circuit breaker enabled by default")
	}
}

func TestLoad_PCSValidation(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")

	tests := []struct {
		key   string
		value string
	}{
		{key: "PCS_MATCH_THRESHOLD", value: "101"},
		{key: "PCS_MATCH_THRESHOLD", value: "-1"},
		{key: "PCS_REFERENCE_TIMEZONE", value: "Mars/Olympus"},
		{key: "PCS_DEFAULT_START_TIME", value: "9am"},
		{key: "PCS_REQUEST_HEADERS", value: "Accept-Language"},
		{key: "PCS_TIMEOUT", value: "0s"},
		{key: "PCS_CIRCUIT_FAILURE_COUNT", value: "0"},
		{key: "SYNC_YEAR", value: "0"},
	}

	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			if _, err := Load(); err == nil {
				t.Fatalf("expected error for %s=%q", tt.key, tt.value)
			}
		})
	}
}

func TestConfig_Sync(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")
	t.Setenv("PCS_REQUEST_HEADERS", "Accept-Language=en-GB, Referer=https://www.procyclingstats.com/")
	t.Setenv("PCS_USER_AGENT", "fantasy-cycling-sync/1.0")
	t.Setenv("PCS_MATCH_THRESHOLD", "85.5")
	t.Setenv("PCS_REFERENCE_TIMEZONE", "UTC")
	t.Setenv("SYNC_YEAR", "2026")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}

	sync := cfg.Sync()
	if sync.MatchThreshold != 85.5 {
		t.Fatalf("unexpected match threshold: %v", sync.MatchThreshold)
	}
	if sync.TargetYear != 2026 {
		t.Fatalf("unexpected target year: %d", sync.TargetYear)
	}
	if sync.ReferenceTimezone != time.UTC {
		t.Fatalf("unexpected reference timezone: %v", sync.ReferenceTimezone)
	}
	if sync.RequestHeaders["Accept-Language"] != "en-GB" {
		t.Fatalf("unexpected headers: %+v", sync.RequestHeaders)
	}
	if sync.RequestHeaders["User-Agent"] != "fantasy-cycling-sync/1.0" {
		t.Fatalf("expected PCS_USER_AGENT in headers, got %+v", sync.RequestHeaders)
	}
	if _, ok := cfg.PCSRequestHeaders["User-Agent"]; ok {
		t.Fatalf("Sync must not mutate the configured header map")
	}
}
