package config

import (
	"testing"
	"time"

	"github.com/matchdayhq/matchday-api/internal/platform/logging"
)

func TestLoad_AppEnvValidation(t *testing.T) {
	t.Setenv("APP_ENV", "invalid")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for invalid APP_ENV")
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.ServiceName != "matchday-api" {
		t.Fatalf("unexpected ServiceName: %q", cfg.ServiceName)
	}
	if cfg.HTTPAddr != ":8080" {
		t.Fatalf("unexpected HTTPAddr: %q", cfg.HTTPAddr)
	}
	if !cfg.CacheEnabled || cfg.CacheTTL != 60*time.Second {
		t.Fatalf("unexpected cache defaults: enabled=%v ttl=%s", cfg.CacheEnabled, cfg.CacheTTL)
	}
	if cfg.ResyncWorkerCount != 4 {
		t.Fatalf("unexpected ResyncWorkerCount: %d", cfg.ResyncWorkerCount)
	}
	if cfg.FixtureDoubleRoundRobin {
		t.Fatalf("expected single round robin by default")
	}
	if cfg.StatsAggEnabled {
		t.Fatalf("expected stats aggregation disabled by default")
	}
	if cfg.LogLevel != logging.LevelInfo {
		t.Fatalf("unexpected LogLevel: %v", cfg.LogLevel)
	}
}

func TestLoad_UptraceRequiresDSNWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "true")
	t.Setenv("UPTRACE_DSN", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when UPTRACE_ENABLED=true without UPTRACE_DSN")
	}
}

func TestLoad_UptraceDSNFromOTLPHeaders(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "true")
	t.Setenv("UPTRACE_DSN", "")
	t.Setenv("OTEL_EXPORTER_OTLP_HEADERS", `uptrace-dsn="https://token@api.uptrace.dev?grpc=4317"`)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.UptraceDSN != "https://token@api.uptrace.dev?grpc=4317" {
		t.Fatalf("unexpected UptraceDSN: %q", cfg.UptraceDSN)
	}
}

func TestLoad_BetterStackRequiresEndpointWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("BETTERSTACK_ENABLED", "true")
	t.Setenv("BETTERSTACK_ENDPOINT", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when BETTERSTACK_ENABLED=true without BETTERSTACK_ENDPOINT")
	}
}

func TestLoad_StatsAggregatorValidation(t *testing.T) {
	t.Run("requires base url when enabled", func(t *testing.T) {
		t.Setenv("APP_ENV", EnvDev)
		t.Setenv("STATS_AGG_ENABLED", "true")
		t.Setenv("STATS_AGG_BASE_URL", "")
		t.Setenv("STATS_AGG_TOKEN", "token-123")

		if _, err := Load(); err == nil {
			t.Fatalf("expected error when STATS_AGG_ENABLED=true without STATS_AGG_BASE_URL")
		}
	})

	t.Run("requires token when enabled", func(t *testing.T) {
		t.Setenv("APP_ENV", EnvDev)
		t.Setenv("STATS_AGG_ENABLED", "true")
		t.Setenv("STATS_AGG_BASE_URL", "https://stats.example.com")
		t.Setenv("STATS_AGG_TOKEN", "")

		if _, err := Load(); err == nil {
			t.Fatalf("expected error when STATS_AGG_ENABLED=true without STATS_AGG_TOKEN")
		}
	})

	t.Run("parses full block", func(t *testing.T) {
		t.Setenv("APP_ENV", EnvDev)
		t.Setenv("STATS_AGG_ENABLED", "true")
		t.Setenv("STATS_AGG_BASE_URL", "https://stats.example.com")
		t.Setenv("STATS_AGG_TOKEN", "token-123")
		t.Setenv("STATS_AGG_TIMEOUT", "7s")
		t.Setenv("STATS_AGG_MAX_RETRIES", "4")
		t.Setenv("STATS_AGG_CIRCUIT_FAILURE_COUNT", "3")
		t.Setenv("STATS_AGG_REDELIVER_ATTEMPTS", "5")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if cfg.StatsAggTimeout != 7*time.Second {
			t.Fatalf("unexpected StatsAggTimeout: %s", cfg.StatsAggTimeout)
		}
		if cfg.StatsAggMaxRetries != 4 {
			t.Fatalf("unexpected StatsAggMaxRetries: %d", cfg.StatsAggMaxRetries)
		}
		if cfg.StatsAggCircuitFailures != 3 {
			t.Fatalf("unexpected StatsAggCircuitFailures: %d", cfg.StatsAggCircuitFailures)
		}
		if cfg.StatsAggRedeliverAttempts != 5 {
			t.Fatalf("unexpected StatsAggRedeliverAttempts: %d", cfg.StatsAggRedeliverAttempts)
		}
	})
}

func TestLoad_ResyncWorkerCountMustBePositive(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("RESYNC_WORKER_COUNT", "0")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error for RESYNC_WORKER_COUNT=0")
	}
}

func TestLoad_CacheTTLValidation(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("CACHE_TTL", "-5s")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error for negative CACHE_TTL")
	}
}

func TestLoad_CORSAllowedOrigins(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("CORS_ALLOWED_ORIGINS", " https://app.example.com , https://admin.example.com ")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if len(cfg.CORSAllowedOrigins) != 2 {
		t.Fatalf("unexpected origins: %v", cfg.CORSAllowedOrigins)
	}
	if cfg.CORSAllowedOrigins[0] != "https://app.example.com" {
		t.Fatalf("unexpected first origin: %q", cfg.CORSAllowedOrigins[0])
	}
}

func TestLoad_LogLevelParsing(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("APP_LOG_LEVEL", "WARN")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.LogLevel != logging.LevelWarn {
		t.Fatalf("unexpected LogLevel: %v", cfg.LogLevel)
	}
}
