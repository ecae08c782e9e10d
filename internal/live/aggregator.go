package live

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/riskibarqy/live-match/internal/domain/match"
	"github.com/riskibarqy/live-match/internal/platform/logging"
	"github.com/sourcegraph/conc/iter"
)

const (
	defaultInterval     = 60 * time.Second
	defaultFetchTimeout = 10 * time.Second
)

// MatchSource returns every match the aggregator should track.
type MatchSource interface {
	ListMatches(ctx context.Context) ([]match.Match, error)
}

type Config struct {
	Interval     time.Duration
	FetchTimeout time.Duration
	Logger       *logging.Logger
}

// Snapshot is the result of one successful tick. It is never mutated after
// it has been published.
type Snapshot struct {
	ComputedAt time.Time
	Matches    []LiveMatch
	byID       map[int64]int
}

// Status describes the recent health of the polling loop.
type Status struct {
	ConsecutiveFailures int
	LastError           string
	LastAttempt         time.Time
	LastSuccess         time.Time
}

// Aggregator polls a MatchSource and keeps the derived minute of every match.
type Aggregator struct {
	source       MatchSource
	logger       *logging.Logger
	interval     time.Duration
	fetchTimeout time.Duration
	now          func() time.Time

	snapshot atomic.Pointer[Snapshot]

	done     chan struct{}
	stopOnce sync.Once
	startMu  sync.Mutex
	started  bool
	stopped  chan struct{}

	statusMu sync.RWMutex
	status   Status
}

func NewAggregator(source MatchSource, cfg Config) *Aggregator {
	if cfg.Interval <= 0 {
		cfg.Interval = defaultInterval
	}
	if cfg.FetchTimeout <= 0 {
		cfg.FetchTimeout = defaultFetchTimeout
	}
	if cfg.Logger == nil {
		cfg.Logger = logging.Default()
	}

	return &Aggregator{
		source:       source,
		logger:       cfg.Logger,
		interval:     cfg.Interval,
		fetchTimeout: cfg.FetchTimeout,
		now:          time.Now,
		done:         make(chan struct{}),
		stopped:      make(chan struct{}),
	}
}

// Start begins polling until ctx is cancelled or Stop is called. The first
// tick runs immediately. Calling Start again, or after Stop, is a no-op.
func (a *Aggregator) Start(ctx context.Context) {
	a.startMu.Lock()
	if a.started || a.isStopped() {
		a.startMu.Unlock()
		return
	}
	a.started = true
	a.startMu.Unlock()

	go a.run(ctx)
}

// Stop halts the polling loop and waits for an in-flight tick to finish.
func (a *Aggregator) Stop() {
	a.stopOnce.Do(func() {
		close(a.done)
	})

	a.startMu.Lock()
	started := a.started
	a.startMu.Unlock()
	if started {
		<-a.stopped
	}
}

func (a *Aggregator) isStopped() bool {
	select {
	case <-a.done:
		return true
	default:
		return false
	}
}

func (a *Aggregator) run(ctx context.Context) {
	defer close(a.stopped)

	ticker := time.NewTicker(a.interval)
	defer ticker.Stop()

	select {
	case <-ctx.Done():
		a.logger.Info("live aggregator stopped before first tick", "reason", "context")
		return
	case <-a.done:
		a.logger.Info("live aggregator stopped before first tick", "reason", "stop")
		return
	default:
	}

	a.logger.Info("live aggregator started", "interval_ms", a.interval.Milliseconds())
	_ = a.Refresh(ctx)

	for {
		select {
		case <-ctx.Done():
			a.logger.Info("live aggregator stopped", "reason", "context")
			return
		case <-a.done:
			a.logger.Info("live aggregator stopped", "reason", "stop")
			return
		case <-ticker.C:
			_ = a.Refresh(ctx)
		}
	}
}

// Refresh runs one tick: fetch, derive every minute, publish. On failure the
// previous snapshot stays in place.
func (a *Aggregator) Refresh(ctx context.Context) error {
	started := a.now()
	a.recordAttempt(started)

	fetchCtx, cancel := context.WithTimeout(ctx, a.fetchTimeout)
	items, err := a.source.ListMatches(fetchCtx)
	cancel()
	if err != nil {
		err = fmt.Errorf("fetch matches: %w", err)
		a.recordFailure(err, started)
		a.logger.WarnContext(ctx, "live aggregator fetch failed",
			"error", err,
			"consecutive_failures", a.Status().ConsecutiveFailures,
		)
		return err
	}

	now := a.now()
	rows := iter.Map(items, func(item *match.Match) LiveMatch {
		return NewLiveMatch(*item, now)
	})

	next := &Snapshot{
		ComputedAt: now,
		Matches:    rows,
		byID:       make(map[int64]int, len(rows)),
	}
	for i, row := range rows {
		next.byID[row.Match.ID] = i
	}
	a.snapshot.Store(next)
	a.recordSuccess(started)

	a.logger.DebugContext(ctx, "live aggregator refreshed",
		"count", len(rows),
		"duration_ms", a.now().Sub(started).Milliseconds(),
	)
	return nil
}

// Minute returns the cached minute of one match from the last snapshot.
func (a *Aggregator) Minute(id int64) (int, bool) {
	snap := a.snapshot.Load()
	if snap == nil {
		return 0, false
	}
	idx, ok := snap.byID[id]
	if !ok {
		return 0, false
	}
	return snap.Matches[idx].Minute, true
}

// Board returns the last snapshot grouped for display.
func (a *Aggregator) Board() []LiveMatch {
	snap := a.snapshot.Load()
	if snap == nil {
		return []LiveMatch{}
	}
	return GroupLiveByStatus(snap.Matches)
}

// LastSnapshot returns the last published snapshot, or nil before the first
// successful tick.
func (a *Aggregator) LastSnapshot() *Snapshot {
	return a.snapshot.Load()
}

func (a *Aggregator) recordAttempt(at time.Time) {
	a.statusMu.Lock()
	defer a.statusMu.Unlock()
	a.status.LastAttempt = at
}

func (a *Aggregator) recordSuccess(at time.Time) {
	a.statusMu.Lock()
	defer a.statusMu.Unlock()
	a.status.ConsecutiveFailures = 0
	a.status.LastError = ""
	a.status.LastSuccess = at
}

func (a *Aggregator) recordFailure(err error, at time.Time) {
	a.statusMu.Lock()
	defer a.statusMu.Unlock()
	a.status.ConsecutiveFailures++
	if err != nil {
		a.status.LastError = err.Error()
	}
	a.status.LastAttempt = at
}

// Status returns the recent health of the loop.
func (a *Aggregator) Status() Status {
	a.statusMu.RLock()
	defer a.statusMu.RUnlock()
	return a.status
}
