package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestStore_GetOrLoad_UsesSingleFlight(t *testing.T) {
	t.Parallel()

	store := NewStore[string](time.Minute)
	var calls atomic.Int32

	loader := func(context.Context) (string, error) {
		calls.Add(1)
		time.Sleep(20 * time.Millisecond)
		return "value", nil
	}

	const workers = 32
	start := make(chan struct{})
	errCh := make(chan error, workers)
	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			<-start
			v, err := store.GetOrLoad(context.Background(), "same-key", loader)
			if err != nil {
				errCh <- err
				return
			}
			if v != "value" {
				errCh <- errUnexpectedValue
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

func TestStore_GetOrLoad_DoesNotCacheErrors(t *testing.T) {
	t.Parallel()

	store := NewStore[int](time.Minute)
	var calls atomic.Int32
	boom := errors.New("boom")

	loader := func(context.Context) (int, error) {
		if calls.Add(1) == 1 {
			return 0, boom
		}
		return 7, nil
	}

	if _, err := store.GetOrLoad(context.Background(), "k", loader); !errors.Is(err, boom) {
		t.Fatalf("expected loader error, got %v", err)
	}
	v, err := store.GetOrLoad(context.Background(), "k", loader)
	if err != nil || v != 7 {
		t.Fatalf("second load = %d, %v", v, err)
	}
	if got := calls.Load(); got != 2 {
		t.Fatalf("loader called %d times, want 2", got)
	}
}

func TestStore_ExpiresEntries(t *testing.T) {
	store := NewStore[string](time.Second)
	now := time.Date(2025, 4, 1, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }

	store.Set("k", "v")
	if _, ok := store.Get("k"); !ok {
		t.Fatalf("expected fresh entry")
	}

	now = now.Add(time.Second)
	if _, ok := store.Get("k"); ok {
		t.Fatalf("expected entry to expire")
	}
	if store.Len() != 0 {
		t.Fatalf("expected expired entry to be dropped, len=%d", store.Len())
	}
}

func TestStore_InvalidatePrefix(t *testing.T) {
	store := NewStore[int](0)
	store.Set("game:list:0", 1)
	store.Set("game:key:5", 2)
	store.Set("other", 3)

	store.InvalidatePrefix("game:")
	if store.Len() != 1 {
		t.Fatalf("expected only unrelated key left, len=%d", store.Len())
	}
	if v, ok := store.Get("other"); !ok || v != 3 {
		t.Fatalf("unrelated key lost: %d %v", v, ok)
	}

	store.InvalidatePrefix("")
	if store.Len() != 0 {
		t.Fatalf("expected empty store, len=%d", store.Len())
	}
}

var errUnexpectedValue = errors.New("unexpected loaded value")
