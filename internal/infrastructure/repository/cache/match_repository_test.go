package cache

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/riskibarqy/live-match/internal/domain/match"
	"github.com/riskibarqy/live-match/internal/infrastructure/repository/memory"
)

type countingRepository struct {
	match.Repository
	listCalls int
}

func (r *countingRepository) List(ctx context.Context) ([]match.Match, error) {
	r.listCalls++
	return r.Repository.List(ctx)
}

func TestMatchRepository_ListIsCachedUntilWrite(t *testing.T) {
	ctx := context.Background()
	inner := &countingRepository{Repository: memory.NewMatchRepository()}
	repo := NewMatchRepository(inner, time.Minute)

	created, err := repo.Create(ctx, match.Match{Status: match.StatusNotStarted, HomeTeam: "Home", AwayTeam: "Away"})
	if err != nil {
		t.Fatalf("create match: %v", err)
	}

	for i := 0; i < 3; i++ {
		if _, err := repo.List(ctx); err != nil {
			t.Fatalf("list matches: %v", err)
		}
	}
	if inner.listCalls != 1 {
		t.Fatalf("expected one underlying list call, got %d", inner.listCalls)
	}

	if _, err := repo.InsertGoal(ctx, match.Goal{MatchID: created.ID, PlayerID: 7, Minute: 23}); err != nil {
		t.Fatalf("insert goal: %v", err)
	}

	items, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("list matches after insert: %v", err)
	}
	if inner.listCalls != 2 {
		t.Fatalf("expected cache to be invalidated by insert, list calls=%d", inner.listCalls)
	}
	if len(items) != 1 || len(items[0].Goals) != 1 {
		t.Fatalf("expected inserted goal in listing: %+v", items)
	}
}

func TestMatchRepository_GetByIDCachesAbsence(t *testing.T) {
	ctx := context.Background()
	repo := NewMatchRepository(memory.NewMatchRepository(), time.Minute)

	if _, exists, err := repo.GetByID(ctx, 99); err != nil || exists {
		t.Fatalf("expected missing match, exists=%v err=%v", exists, err)
	}

	created, err := repo.Create(ctx, match.Match{Status: match.StatusUpcoming})
	if err != nil {
		t.Fatalf("create match: %v", err)
	}
	got, exists, err := repo.GetByID(ctx, created.ID)
	if err != nil || !exists {
		t.Fatalf("expected created match, exists=%v err=%v", exists, err)
	}
	if got.Goals == nil {
		t.Fatalf("expected normalized collections on cached read")
	}
}

func TestMatchRepository_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	repo := NewMatchRepository(memory.NewMatchRepository(), time.Minute)

	created, err := repo.Create(ctx, match.Match{
		Status: match.StatusOngoing,
		Goals:  []match.Goal{{PlayerID: 1, Minute: 10}},
	})
	if err != nil {
		t.Fatalf("create match: %v", err)
	}

	first, _, _ := repo.GetByID(ctx, created.ID)
	first.Goals[0].Minute = 99

	second, _, _ := repo.GetByID(ctx, created.ID)
	if second.Goals[0].Minute != 10 {
		t.Fatalf("cached value was mutated through a returned copy: %+v", second.Goals)
	}
}

// blockingListRepository holds the first List call until release is closed.
type blockingListRepository struct {
	match.Repository
	once     sync.Once
	started  chan struct{}
	release  chan struct{}
	snapshot []match.Match
}

func (r *blockingListRepository) List(ctx context.Context) ([]match.Match, error) {
	first := false
	r.once.Do(func() { first = true })
	if !first {
		return r.Repository.List(ctx)
	}

	items := r.snapshot
	close(r.started)
	<-r.release
	return items, nil
}

func TestMatchRepository_ReadAfterWriteSkipsInFlightList(t *testing.T) {
	ctx := context.Background()
	inner := memory.NewMatchRepository()
	created, err := inner.Create(ctx, match.Match{Status: match.StatusNotStarted, HomeTeam: "Home", AwayTeam: "Away"})
	if err != nil {
		t.Fatalf("create match: %v", err)
	}
	before, err := inner.List(ctx)
	if err != nil {
		t.Fatalf("list matches: %v", err)
	}

	blocking := &blockingListRepository{
		Repository: inner,
		started:    make(chan struct{}),
		release:    make(chan struct{}),
		snapshot:   before,
	}
	repo := NewMatchRepository(blocking, time.Minute)

	slowDone := make(chan struct{})
	go func() {
		defer close(slowDone)
		_, _ = repo.List(ctx)
	}()
	<-blocking.started

	status := match.StatusOngoing
	if _, _, err := repo.Update(ctx, created.ID, match.Patch{Status: &status}); err != nil {
		t.Fatalf("update status: %v", err)
	}

	items, err := repo.List(ctx)
	close(blocking.release)
	<-slowDone
	if err != nil {
		t.Fatalf("list after update: %v", err)
	}
	if len(items) != 1 || items[0].Status != match.StatusOngoing {
		t.Fatalf("expected post-write status, got %+v", items)
	}

	cached, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("cached list: %v", err)
	}
	if cached[0].Status != match.StatusOngoing {
		t.Fatalf("stale list was cached: %q", cached[0].Status)
	}
}
