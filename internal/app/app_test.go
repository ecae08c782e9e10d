package app

import (
	"context"
	"testing"
	"time"

	"github.com/riskibarqy/live-match/internal/config"
	"github.com/riskibarqy/live-match/internal/domain/match"
	"github.com/riskibarqy/live-match/internal/infrastructure/repository/cache"
	"github.com/riskibarqy/live-match/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/live-match/internal/platform/logging"
)

func testConfig() config.Config {
	return config.Config{
		HTTPAddr:           ":0",
		ReadTimeout:        time.Second,
		WriteTimeout:       time.Second,
		StoreDriver:        config.StoreMemory,
		CacheTTL:           time.Second,
		EventBatchWorkers:  2,
		CORSAllowedOrigins: []string{"*"},
		LiveSourceURL:      "http://localhost:8080",
		LivePollInterval:   time.Minute,
		LiveFetchTimeout:   time.Second,
	}
}

func TestNewMatchRepository_MemoryStore(t *testing.T) {
	repo, closer, err := NewMatchRepository(testConfig(), logging.NewNop())
	if err != nil {
		t.Fatalf("new match repository: %v", err)
	}
	defer func() { _ = closer() }()

	if _, ok := repo.(*memory.MatchRepository); !ok {
		t.Fatalf("expected memory repository, got %T", repo)
	}

	created, err := repo.Create(context.Background(), match.Match{HomeTeam: "A", AwayTeam: "B", Status: match.StatusNotStarted})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.ID == 0 {
		t.Fatalf("expected assigned id")
	}
}

func TestNewMatchRepository_WrapsCacheWhenEnabled(t *testing.T) {
	cfg := testConfig()
	cfg.CacheEnabled = true

	repo, _, err := NewMatchRepository(cfg, logging.NewNop())
	if err != nil {
		t.Fatalf("new match repository: %v", err)
	}
	if _, ok := repo.(*cache.MatchRepository); !ok {
		t.Fatalf("expected cached repository, got %T", repo)
	}
}

func TestNewHTTPServer(t *testing.T) {
	srv, closer, err := NewHTTPServer(testConfig(), logging.NewNop())
	if err != nil {
		t.Fatalf("new http server: %v", err)
	}
	defer func() { _ = closer() }()

	if srv.Addr != ":0" || srv.Handler == nil {
		t.Fatalf("unexpected server: addr=%q handler=%v", srv.Addr, srv.Handler)
	}
}

func TestNewHTTPServer_RequiresAddr(t *testing.T) {
	cfg := testConfig()
	cfg.HTTPAddr = ""
	if _, _, err := NewHTTPServer(cfg, logging.NewNop()); err == nil {
		t.Fatalf("expected error for empty addr")
	}
}

func TestNewLiveAggregator(t *testing.T) {
	agg, err := NewLiveAggregator(testConfig(), logging.NewNop())
	if err != nil {
		t.Fatalf("new live aggregator: %v", err)
	}
	if agg.LastSnapshot() != nil {
		t.Fatalf("expected no snapshot before the first tick")
	}

	cfg := testConfig()
	cfg.LiveSourceURL = ""
	if _, err := NewLiveAggregator(cfg, logging.NewNop()); err == nil {
		t.Fatalf("expected error for empty live source url")
	}
}
