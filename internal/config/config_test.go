package config

import (
	"testing"
	"time"

	"github.com/riskibarqy/live-match/internal/platform/logging"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", "")
	t.Setenv("STORE_DRIVER", "")
	t.Setenv("LIVE_POLL_INTERVAL", "")
	t.Setenv("LIVE_FETCH_TIMEOUT", "")
	t.Setenv("EVENT_BATCH_WORKERS", "")
	t.Setenv("UPTRACE_ENABLED", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.AppEnv != EnvDev {
		t.Fatalf("unexpected AppEnv: %q", cfg.AppEnv)
	}
	if cfg.StoreDriver != StoreMemory {
		t.Fatalf("unexpected StoreDriver: %q", cfg.StoreDriver)
	}
	if cfg.LivePollInterval != 60*time.Second {
		t.Fatalf("unexpected LivePollInterval: %s", cfg.LivePollInterval)
	}
	if cfg.LiveFetchTimeout != 10*time.Second {
		t.Fatalf("unexpected LiveFetchTimeout: %s", cfg.LiveFetchTimeout)
	}
	if cfg.EventBatchWorkers != 4 {
		t.Fatalf("unexpected EventBatchWorkers: %d", cfg.EventBatchWorkers)
	}
}

func TestLoad_AppEnvValidation(t *testing.T) {
	t.Setenv("APP_ENV", "invalid")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for invalid APP_ENV")
	}
}

func TestLoad_PostgresRequiresDBURL(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("STORE_DRIVER", "postgres")
	t.Setenv("DB_URL", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when STORE_DRIVER=postgres without DB_URL")
	}
}

func TestLoad_InvalidStoreDriver(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("STORE_DRIVER", "mongo")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error for unknown STORE_DRIVER")
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
	t.Setenv("OTEL_EXPORTER_OTLP_HEADERS", `uptrace-dsn="https://token@api.uptrace.dev?grpc=4317"`)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.UptraceDSN != "https://token@api.uptrace.dev?grpc=4317" {
		t.Fatalf("unexpected UptraceDSN: %q", cfg.UptraceDSN)
	}
}

func TestLoad_LiveSettings(t *testing.T) {
	t.Setenv("APP_ENV", EnvStage)
	t.Setenv("LIVE_SOURCE_URL", " http://match-api:8080 ")
	t.Setenv("LIVE_POLL_INTERVAL", "15s")
	t.Setenv("LIVE_FETCH_TIMEOUT", "3s")
	t.Setenv("LIVE_CIRCUIT_FAILURE_COUNT", "3")
	t.Setenv("APP_LOG_LEVEL", "debug")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.LiveSourceURL != "http://match-api:8080" {
		t.Fatalf("unexpected LiveSourceURL: %q", cfg.LiveSourceURL)
	}
	if cfg.LivePollInterval != 15*time.Second || cfg.LiveFetchTimeout != 3*time.Second {
		t.Fatalf("unexpected live durations: poll=%s fetch=%s", cfg.LivePollInterval, cfg.LiveFetchTimeout)
	}
	if cfg.LiveCircuitFailureCount != 3 {
		t.Fatalf("unexpected LiveCircuitFailureCount: %d", cfg.LiveCircuitFailureCount)
	}
	if cfg.LogLevel != logging.LevelDebug {
		t.Fatalf("unexpected LogLevel: %v", cfg.LogLevel)
	}
}

func TestLoad_RejectsNonPositiveDurations(t *testing.T) {
	for _, key := range []string{"LIVE_POLL_INTERVAL", "LIVE_FETCH_TIMEOUT", "CACHE_TTL"} {
		t.Run(key, func(t *testing.T) {
			t.Setenv("APP_ENV", EnvDev)
			t.Setenv(key, "0s")
			if _, err := Load(); err == nil {
				t.Fatalf("expected error for %s=0s", key)
			}
		})
	}
}

func TestLoad_EventBatchWorkersValidation(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("EVENT_BATCH_WORKERS", "zero")
	if _, err := Load(); err == nil {
		t.Fatalf("expected parse error for EVENT_BATCH_WORKERS")
	}

	t.Setenv("EVENT_BATCH_WORKERS", "0")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for EVENT_BATCH_WORKERS=0")
	}
}
