package reconcile

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingRegistry counts inner lookups and can block until released.
type countingRegistry struct {
	calls   atomic.Int32
	release chan struct{}
	objects map[string]Entity
}

func (r *countingRegistry) Resolve(ctx context.Context, key string) (Entity, error) {
	r.calls.Add(1)
	if r.release != nil {
		<-r.release
	}
	if e, ok := r.objects[key]; ok {
		return e, nil
	}
	return nil, ErrNotFound
}

func TestCachedRegistry_CachesHits(t *testing.T) {
	inner := &countingRegistry{objects: map[string]Entity{"A": &keyedEntity{id: 1, key: "A"}}}
	cache := NewCachedRegistry(inner, time.Minute)

	for i := 0; i < 3; i++ {
		e, err := cache.Resolve(context.Background(), "A")
		require.NoError(t, err)
		assert.Equal(t, "A", e.(Keyed).ObjectKey())
	}

	assert.Equal(t, int32(1), inner.calls.Load())
	assert.Equal(t, 1, cache.Len())
}

func TestCachedRegistry_DoesNotCacheMisses(t *testing.T) {
	inner := &countingRegistry{objects: map[string]Entity{}}
	cache := NewCachedRegistry(inner, time.Minute)

	for i := 0; i < 2; i++ {
		_, err := cache.Resolve(context.Background(), "missing")
		assert.ErrorIs(t, err, ErrNotFound)
	}

	assert.Equal(t, int32(2), inner.calls.Load())
	assert.Equal(t, 0, cache.Len())
}

func TestCachedRegistry_Expiry(t *testing.T) {
	inner := &countingRegistry{objects: map[string]Entity{"A": &keyedEntity{key: "A"}}}
	cache := NewCachedRegistry(inner, time.Minute)

	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	cache.now = func() time.Time { return now }

	_, err := cache.Resolve(context.Background(), "A")
	require.NoError(t, err)

	now = now.Add(30 * time.Second)
	_, err = cache.Resolve(context.Background(), "A")
	require.NoError(t, err)
	assert.Equal(t, int32(1), inner.calls.Load())

	now = now.Add(time.Minute)
	_, err = cache.Resolve(context.Background(), "A")
	require.NoError(t, err)
	assert.Equal(t, int32(2), inner.calls.Load())
}

func TestCachedRegistry_ZeroTTLDisablesCaching(t *testing.T) {
	inner := &countingRegistry{objects: map[string]Entity{"A": &keyedEntity{key: "A"}}}
	cache := NewCachedRegistry(inner, 0)

	_, _ = cache.Resolve(context.Background(), "A")
	_, _ = cache.Resolve(context.Background(), "A")

	assert.Equal(t, int32(2), inner.calls.Load())
	assert.Equal(t, 0, cache.Len())
}

func TestCachedRegistry_InvalidateAndPurge(t *testing.T) {
	inner := &countingRegistry{objects: map[string]Entity{
		"A": &keyedEntity{key: "A"},
		"B": &keyedEntity{key: "B"},
	}}
	cache := NewCachedRegistry(inner, time.Minute)

	_, _ = cache.Resolve(context.Background(), "A")
	_, _ = cache.Resolve(context.Background(), "B")
	require.Equal(t, 2, cache.Len())

	cache.Invalidate("A")
	assert.Equal(t, 1, cache.Len())

	cache.Purge()
	assert.Equal(t, 0, cache.Len())
}

func TestCachedRegistry_SingleFlight(t *testing.T) {
	inner := &countingRegistry{
		objects: map[string]Entity{"A": &keyedEntity{key: "A"}},
		release: make(chan struct{}),
	}
	cache := NewCachedRegistry(inner, time.Minute)

	const workers = 10
	var wg sync.WaitGroup
	errs := make(chan error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := cache.Resolve(context.Background(), "A"); err != nil {
				errs <- fmt.Errorf("resolve: %w", err)
			}
		}()
	}

	// Let the first lookup through once the others have had a chance to queue.
	time.Sleep(50 * time.Millisecond)
	close(inner.release)
	wg.Wait()
	close(errs)

	for err := range errs {
		t.Error(err)
	}
	assert.Equal(t, int32(1), inner.calls.Load())
	assert.Equal(t, 1, cache.Len())
}

func TestConfig_CacheTTL(t *testing.T) {
	assert.Equal(t, 90*time.Second, Config{CacheTTLSeconds: 90}.CacheTTL())
	assert.Equal(t, time.Duration(0), Config{}.CacheTTL())
}
