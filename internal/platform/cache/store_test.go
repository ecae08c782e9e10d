package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestStore_GetOrLoad_DeduplicatesConcurrentLoads(t *testing.T) {
	t.Parallel()

	store := NewStore[int](time.Minute)
	var calls atomic.Int32

	loader := func(context.Context) (int, error) {
		calls.Add(1)
		time.Sleep(20 * time.Millisecond)
		return 90, nil
	}

	const workers = 24
	start := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(workers)
	errCh := make(chan error, workers)

	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			<-start
			v, err := store.GetOrLoad(context.Background(), "match:id:1", loader)
			if err != nil {
				errCh <- err
				return
			}
			if v != 90 {
				errCh <- errors.New("unexpected loaded value")
			}
		}()
	}

	close(start)
	wg.Wait()
	close(errCh)
	for err := range errCh {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := calls.Load(); got != 1 {
		t.Fatalf("loader called %d times, want 1", got)
	}
}

func TestStore_ExpiresAfterTTL(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 3, 1, 19, 0, 0, 0, time.UTC)
	store := NewStore[string](5 * time.Second)
	store.now = func() time.Time { return now }

	store.Set(context.Background(), "k", "cached")
	if v, ok := store.Get(context.Background(), "k"); !ok || v != "cached" {
		t.Fatalf("expected hit, got v=%q ok=%v", v, ok)
	}

	now = now.Add(5 * time.Second)
	if _, ok := store.Get(context.Background(), "k"); ok {
		t.Fatalf("expected entry to expire at ttl")
	}
	if store.Len() != 0 {
		t.Fatalf("expected expired entry to be dropped, len=%d", store.Len())
	}
}

func TestStore_LoaderErrorIsNotCached(t *testing.T) {
	t.Parallel()

	store := NewStore[string](time.Minute)
	var calls atomic.Int32
	boom := errors.New("db down")

	loader := func(context.Context) (string, error) {
		if calls.Add(1) == 1 {
			return "", boom
		}
		return "ok", nil
	}

	if _, err := store.GetOrLoad(context.Background(), "k", loader); !errors.Is(err, boom) {
		t.Fatalf("expected loader error, got %v", err)
	}
	v, err := store.GetOrLoad(context.Background(), "k", loader)
	if err != nil || v != "ok" {
		t.Fatalf("expected second load to succeed, got v=%q err=%v", v, err)
	}
}

func TestStore_PurgeDuringLoadSkipsStaleValue(t *testing.T) {
	t.Parallel()

	store := NewStore[string](time.Minute)
	loaded := make(chan struct{})
	release := make(chan struct{})

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = store.GetOrLoad(context.Background(), "k", func(context.Context) (string, error) {
			close(loaded)
			<-release
			return "stale", nil
		})
	}()

	<-loaded
	store.Purge(context.Background())
	close(release)
	<-done

	if _, ok := store.Get(context.Background(), "k"); ok {
		t.Fatalf("value loaded before purge must not be cached")
	}
}

func TestStore_CallerAfterPurgeDoesNotJoinOlderLoad(t *testing.T) {
	t.Parallel()

	store := NewStore[string](time.Minute)
	loaded := make(chan struct{})
	release := make(chan struct{})

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = store.GetOrLoad(context.Background(), "k", func(context.Context) (string, error) {
			close(loaded)
			<-release
			return "before", nil
		})
	}()

	<-loaded
	store.Purge(context.Background())

	got, err := store.GetOrLoad(context.Background(), "k", func(context.Context) (string, error) {
		return "after", nil
	})
	close(release)
	<-done

	if err != nil {
		t.Fatalf("load after purge: %v", err)
	}
	if got != "after" {
		t.Fatalf("expected fresh load after purge, got %q", got)
	}
	if cached, ok := store.Get(context.Background(), "k"); !ok || cached != "after" {
		t.Fatalf("expected fresh value cached, got %q ok=%v", cached, ok)
	}
}
