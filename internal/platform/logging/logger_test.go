package logging

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func newObserved(level Level) (*Logger, *observer.ObservedLogs) {
	core, logs := observer.New(level)
	return FromZap(zap.New(core)), logs
}

func TestLogger_KeyValueFields(t *testing.T) {
	logger, logs := newObserved(LevelDebug)

	logger.Info("live aggregator refreshed",
		"count", 3,
		"error", errors.New("boom"),
		"took", 1500*time.Millisecond,
		"dangling",
	)

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("expected one entry, got %d", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["count"] != int64(3) {
		t.Fatalf("unexpected count field: %#v", fields["count"])
	}
	if fields["error"] != "boom" {
		t.Fatalf("unexpected error field: %#v", fields["error"])
	}
	if fields["took"] != 1500*time.Millisecond {
		t.Fatalf("unexpected duration field: %#v", fields["took"])
	}
	if _, ok := fields["dangling"]; !ok {
		t.Fatalf("expected dangling key to be kept")
	}
}

func TestLogger_WithAndLevel(t *testing.T) {
	logger, logs := newObserved(LevelInfo)
	child := logger.With("service", "live-match")

	child.Debug("hidden")
	child.Warn("shown")

	if logger.Enabled(LevelDebug) {
		t.Fatalf("debug must be disabled at info level")
	}
	entries := logs.All()
	if len(entries) != 1 || entries[0].Level != zapcore.WarnLevel {
		t.Fatalf("unexpected entries: %+v", entries)
	}
	if entries[0].ContextMap()["service"] != "live-match" {
		t.Fatalf("expected inherited field, got %+v", entries[0].ContextMap())
	}
}

func TestLogger_ContextAddsTraceIDs(t *testing.T) {
	logger, logs := newObserved(LevelDebug)

	spanCtx := trace.NewSpanContext(trace.SpanContextConfig{
		TraceID:    trace.TraceID{1, 2, 3},
		SpanID:     trace.SpanID{4, 5, 6},
		TraceFlags: trace.FlagsSampled,
	})
	ctx := trace.ContextWithSpanContext(context.Background(), spanCtx)

	logger.InfoContext(ctx, "with trace")
	logger.InfoContext(context.Background(), "without trace")

	entries := logs.All()
	if got := entries[0].ContextMap()["trace_id"]; got != spanCtx.TraceID().String() {
		t.Fatalf("unexpected trace id: %#v", got)
	}
	if _, ok := entries[1].ContextMap()["trace_id"]; ok {
		t.Fatalf("did not expect trace id without a span")
	}
}

func TestLogger_NilAndDefault(t *testing.T) {
	var logger *Logger
	logger.Info("no panic")
	if err := logger.Sync(); err != nil {
		t.Fatalf("nil sync: %v", err)
	}

	observed, logs := newObserved(LevelDebug)
	SetDefault(observed)
	t.Cleanup(func() { SetDefault(nil) })

	logger.Warn("routed to default")
	if logs.Len() != 1 {
		t.Fatalf("expected nil logger to use default, got %d entries", logs.Len())
	}
}
