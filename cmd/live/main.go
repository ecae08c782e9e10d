package main

import (
	"context"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/riskibarqy/live-match/internal/app"
	"github.com/riskibarqy/live-match/internal/config"
	"github.com/riskibarqy/live-match/internal/live"
	"github.com/riskibarqy/live-match/internal/observability"
	"github.com/riskibarqy/live-match/internal/platform/logging"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger := logging.NewJSON(cfg.LogLevel).With("service", cfg.ServiceName+"-live", "env", cfg.AppEnv)
	logging.SetDefault(logger)
	defer func() { _ = logger.Sync() }()

	shutdownTracing, err := observability.InitUptrace(cfg, logger)
	if err != nil {
		logger.Error("init uptrace", "error", err)
		os.Exit(1)
	}

	agg, err := app.NewLiveAggregator(cfg, logger)
	if err != nil {
		logger.Error("build live aggregator", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Info("live aggregator polling", "source", cfg.LiveSourceURL, "interval_ms", cfg.LivePollInterval.Milliseconds())
	agg.Start(ctx)

	reportBoard(ctx, agg, cfg.LivePollInterval, logger)

	agg.Stop()

	flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := shutdownTracing(flushCtx); err != nil {
		logger.Warn("shutdown uptrace", "error", err)
	}
	logger.Info("live aggregator exited")
}

func reportBoard(ctx context.Context, agg *live.Aggregator, interval time.Duration, logger *logging.Logger) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	var lastReported time.Time
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		snap := agg.LastSnapshot()
		if snap == nil || !snap.ComputedAt.After(lastReported) {
			status := agg.Status()
			logger.Warn("live board not refreshed",
				"consecutive_failures", status.ConsecutiveFailures,
				"last_error", status.LastError,
			)
			continue
		}
		lastReported = snap.ComputedAt

		for _, row := range agg.Board() {
			logger.Info("live match",
				"match_id", row.Match.ID,
				"status", row.Match.Status,
				"home_team", row.Match.HomeTeam,
				"away_team", row.Match.AwayTeam,
				"score", formatScore(row.Match.HomeScore, row.Match.AwayScore),
				"minute", row.Display,
			)
		}
	}
}

func formatScore(home, away int) string {
	return strconv.Itoa(home) + "-" + strconv.Itoa(away)
}
