package app

import (
	"fmt"
	"net/http"

	"github.com/riskibarqy/live-match/external/liveclient"
	"github.com/riskibarqy/live-match/internal/config"
	"github.com/riskibarqy/live-match/internal/domain/match"
	"github.com/riskibarqy/live-match/internal/infrastructure/repository/cache"
	"github.com/riskibarqy/live-match/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/live-match/internal/infrastructure/repository/postgres"
	"github.com/riskibarqy/live-match/internal/interfaces/httpapi"
	"github.com/riskibarqy/live-match/internal/live"
	"github.com/riskibarqy/live-match/internal/platform/logging"
	"github.com/riskibarqy/live-match/internal/platform/resilience"
	"github.com/riskibarqy/live-match/internal/usecase"
)

// Closer releases resources opened while building the app.
type Closer func() error

func noopCloser() error { return nil }

func NewHTTPServer(cfg config.Config, logger *logging.Logger) (*http.Server, Closer, error) {
	if cfg.HTTPAddr == "" {
		return nil, nil, fmt.Errorf("http server addr cannot be empty")
	}

	repo, closeRepo, err := NewMatchRepository(cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	matchSvc := usecase.NewMatchService(repo, logger)
	eventSvc := usecase.NewEventService(repo, cfg.EventBatchWorkers, logger)

	handler := httpapi.NewHandler(matchSvc, eventSvc, logger)
	router := httpapi.NewRouter(handler, logger, cfg.CORSAllowedOrigins)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	return server, closeRepo, nil
}

// NewMatchRepository picks the store configured by STORE_DRIVER and wraps it
// with the read cache when enabled.
func NewMatchRepository(cfg config.Config, logger *logging.Logger) (match.Repository, Closer, error) {
	var (
		repo   match.Repository
		closer Closer = noopCloser
	)

	switch cfg.StoreDriver {
	case config.StorePostgres:
		db, err := openDB(cfg)
		if err != nil {
			return nil, nil, err
		}
		repo = postgres.NewMatchRepository(db)
		closer = db.Close
		logger.Info("match store ready", "driver", cfg.StoreDriver, "db_name", dbNameFromURL(cfg.DBURL))
	default:
		repo = memory.NewMatchRepository()
		logger.Info("match store ready", "driver", config.StoreMemory)
	}

	if cfg.CacheEnabled {
		repo = cache.NewMatchRepository(repo, cfg.CacheTTL)
		logger.Info("match read cache enabled", "ttl_ms", cfg.CacheTTL.Milliseconds())
	}

	return repo, closer, nil
}

// NewLiveAggregator builds an aggregator that polls the match store over HTTP.
func NewLiveAggregator(cfg config.Config, logger *logging.Logger) (*live.Aggregator, error) {
	client, err := liveclient.NewClient(liveclient.ClientConfig{
		BaseURL: cfg.LiveSourceURL,
		Timeout: cfg.LiveFetchTimeout,
		Logger:  logger,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.LiveCircuitEnabled,
			FailureThreshold: cfg.LiveCircuitFailureCount,
			OpenTimeout:      cfg.LiveCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.LiveCircuitHalfOpenMax,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("build live source client: %w", err)
	}

	return live.NewAggregator(client, live.Config{
		Interval:     cfg.LivePollInterval,
		FetchTimeout: cfg.LiveFetchTimeout,
		Logger:       logger,
	}), nil
}
