package cache_test

import (
	"context"
	"errors"
	"io"
	"sync"
	"sync/atomic"
	"testing"

	logger_adapter "property-admin-service/internal/adapters/logger"
	"property-admin-service/internal/core/cache"
	"property-admin-service/internal/core/domain"
	"property-admin-service/internal/core/port"
)

func newCache(t *testing.T) *cache.QueryCache {
	t.Helper()
	logger := logger_adapter.NewSlogAdapter(logger_adapter.SlogConfig{Writer: io.Discard})
	return cache.NewQueryCache(logger)
}

func TestFetchCachesValue(t *testing.T) {
	c := newCache(t)
	calls := 0

	for i := 0; i < 3; i++ {
		value, err := c.Fetch(context.Background(), "k", func(ctx context.Context) (interface{}, error) {
			calls++
			return "v", nil
		})
		if err != nil {
			t.Fatal(err)
		}
		if value != "v" {
			t.Fatalf("value = %v", value)
		}
	}

	if calls != 1 {
		t.Fatalf("fetch called %d times, want 1", calls)
	}
}

func TestFetchDeduplicatesConcurrentReaders(t *testing.T) {
	c := newCache(t)

	var calls int64
	started := make(chan struct{})
	release := make(chan struct{})

	fetch := func(ctx context.Context) (interface{}, error) {
		if atomic.AddInt64(&calls, 1) == 1 {
			close(started)
		}
		<-release
		return 42, nil
	}

	const readers = 8
	var wg sync.WaitGroup
	results := make([]interface{}, readers)
	for i := 0; i < readers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			value, err := c.Fetch(context.Background(), "k", fetch)
			if err != nil {
				t.Error(err)
				return
			}
			results[i] = value
		}(i)
	}

	<-started
	close(release)
	wg.Wait()

	if n := atomic.LoadInt64(&calls); n != 1 {
		t.Fatalf("fetch called %d times, want 1", n)
	}
	for i, v := range results {
		if v != 42 {
			t.Fatalf("reader %d got %v", i, v)
		}
	}
}

func TestInvalidateForcesRefetch(t *testing.T) {
	c := newCache(t)
	calls := 0
	fetch := func(ctx context.Context) (interface{}, error) {
		calls++
		return calls, nil
	}

	if _, err := c.Fetch(context.Background(), "k", fetch); err != nil {
		t.Fatal(err)
	}
	c.Invalidate("k")

	value, err := c.Fetch(context.Background(), "k", fetch)
	if err != nil {
		t.Fatal(err)
	}
	if value != 2 {
		t.Fatalf("value after invalidation = %v, want 2", value)
	}
}

func TestInvalidatePrefixMarksWholeKeySpace(t *testing.T) {
	c := newCache(t)
	calls := map[string]int{}
	fetchFor := func(key string) port.FetchFunc {
		return func(ctx context.Context) (interface{}, error) {
			calls[key]++
			return calls[key], nil
		}
	}

	keys := []string{
		cache.ListKey(domain.PropertyFilters{Page: 1}),
		cache.ListKey(domain.PropertyFilters{Page: 2}),
		cache.DetailKey(5),
	}
	for _, key := range keys {
		if _, err := c.Fetch(context.Background(), key, fetchFor(key)); err != nil {
			t.Fatal(err)
		}
	}

	c.InvalidatePrefix(cache.ListKeyPrefix)

	for _, key := range keys[:2] {
		value, err := c.Fetch(context.Background(), key, fetchFor(key))
		if err != nil {
			t.Fatal(err)
		}
		if value != 2 {
			t.Fatalf("list key %q not refetched: %v", key, value)
		}
	}
	// детальный ключ вне префикса остался свежим
	value, err := c.Fetch(context.Background(), keys[2], fetchFor(keys[2]))
	if err != nil {
		t.Fatal(err)
	}
	if value != 1 {
		t.Fatalf("detail key refetched: %v", value)
	}
}

func TestInvalidateDuringFlightSurvivesResult(t *testing.T) {
	c := newCache(t)

	started := make(chan struct{})
	release := make(chan struct{})
	firstDone := make(chan struct{})

	go func() {
		defer close(firstDone)
		c.Fetch(context.Background(), "k", func(ctx context.Context) (interface{}, error) {
			close(started)
			<-release
			return "first", nil
		})
	}()

	<-started
	// Запись в ресурс случилась, пока чтение летело.
	c.Invalidate("k")
	close(release)
	<-firstDone

	// Следующее чтение обязано перезапросить, а не отдать "first".
	value, err := c.Fetch(context.Background(), "k", func(ctx context.Context) (interface{}, error) {
		return "second", nil
	})
	if err != nil {
		t.Fatal(err)
	}
	if value != "second" {
		t.Fatalf("value = %v, want %q", value, "second")
	}
}

func TestStaleGenerationDoesNotOverwrite(t *testing.T) {
	c := newCache(t)

	started := make(chan struct{})
	releaseOld := make(chan struct{})
	oldDone := make(chan struct{})

	go func() {
		defer close(oldDone)
		value, err := c.Fetch(context.Background(), "k", func(ctx context.Context) (interface{}, error) {
			close(started)
			<-releaseOld
			return "old", nil
		})
		// Инициатор устаревшего запроса свой результат получает.
		if err != nil || value != "old" {
			t.Errorf("initiator got (%v, %v)", value, err)
		}
	}()

	<-started
	c.Invalidate("k")

	// Новое поколение стартует и завершается, пока старое висит.
	value, err := c.Fetch(context.Background(), "k", func(ctx context.Context) (interface{}, error) {
		return "new", nil
	})
	if err != nil {
		t.Fatal(err)
	}
	if value != "new" {
		t.Fatalf("value = %v", value)
	}

	close(releaseOld)
	<-oldDone

	// Ответ старого поколения не перезаписал кэш.
	value, err = c.Fetch(context.Background(), "k", func(ctx context.Context) (interface{}, error) {
		t.Error("unexpected refetch")
		return nil, nil
	})
	if err != nil {
		t.Fatal(err)
	}
	if value != "new" {
		t.Fatalf("stale response overwrote cache: %v", value)
	}
}

func TestErrorStateRefetchesOnNextRead(t *testing.T) {
	c := newCache(t)
	boom := errors.New("boom")
	calls := 0

	_, err := c.Fetch(context.Background(), "k", func(ctx context.Context) (interface{}, error) {
		calls++
		return nil, boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v", err)
	}

	value, err := c.Fetch(context.Background(), "k", func(ctx context.Context) (interface{}, error) {
		calls++
		return "ok", nil
	})
	if err != nil {
		t.Fatal(err)
	}
	if value != "ok" || calls != 2 {
		t.Fatalf("value = %v, calls = %d", value, calls)
	}
}

func TestJoinerCancellationDoesNotAbortFetch(t *testing.T) {
	c := newCache(t)

	started := make(chan struct{})
	release := make(chan struct{})
	initiatorDone := make(chan struct{})

	go func() {
		defer close(initiatorDone)
		c.Fetch(context.Background(), "k", func(ctx context.Context) (interface{}, error) {
			close(started)
			<-release
			return "v", nil
		})
	}()

	<-started
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := c.Fetch(ctx, "k", func(ctx context.Context) (interface{}, error) {
		t.Error("joiner must not start its own fetch")
		return nil, nil
	})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v", err)
	}

	close(release)
	<-initiatorDone

	// Результат долетел до кэша, несмотря на отмену присоединившегося.
	value, err := c.Fetch(context.Background(), "k", func(ctx context.Context) (interface{}, error) {
		t.Error("unexpected refetch")
		return nil, nil
	})
	if err != nil {
		t.Fatal(err)
	}
	if value != "v" {
		t.Fatalf("value = %v", value)
	}
}

func TestClearDropsEverything(t *testing.T) {
	c := newCache(t)
	fetch := func(ctx context.Context) (interface{}, error) { return 1, nil }

	c.Fetch(context.Background(), "a", fetch)
	c.Fetch(context.Background(), "b", fetch)
	if c.Len() != 2 {
		t.Fatalf("Len() = %d", c.Len())
	}

	c.Clear()
	if c.Len() != 0 {
		t.Fatalf("Len() after Clear = %d", c.Len())
	}
}
