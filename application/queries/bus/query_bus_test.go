package bus

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"campaign-manager/infrastructure/cache"
)

type echoQuery struct {
	Key string
}

func (q echoQuery) Validate() error {
	if q.Key == "" {
		return errors.New("key is required")
	}
	return nil
}

func (q echoQuery) CacheKey() string { return "echo:" + q.Key }

type uncachedQuery struct{}

func (uncachedQuery) Validate() error { return nil }

type recordingObserver struct {
	mu      sync.Mutex
	results []bool
	spaces  []string
}

func (o *recordingObserver) RecordCacheResult(ctx context.Context, keyspace string, hit bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.results = append(o.results, hit)
	o.spaces = append(o.spaces, keyspace)
}

type clock struct{ now time.Time }

func (c *clock) Now() time.Time { return c.now }

func newCachedBus(t *testing.T, handler QueryHandler) (*QueryBus, *clock, *recordingObserver) {
	t.Helper()
	clk := &clock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	observer := &recordingObserver{}
	c := cache.New(cache.WithClock(clk.Now))

	b := NewQueryBus(NewCachingMiddleware(c, time.Minute, observer, zap.NewNop()))
	require.NoError(t, b.Register(echoQuery{}, handler))
	require.NoError(t, b.Register(uncachedQuery{}, handler))
	return b, clk, observer
}

func TestCachingMiddleware_ServesWithinTTL(t *testing.T) {
	// Arrange
	calls := 0
	b, clk, observer := newCachedBus(t, QueryHandlerFunc(func(ctx context.Context, q Query) (interface{}, error) {
		calls++
		return calls, nil
	}))

	// Act
	first, err := b.Ask(context.Background(), echoQuery{Key: "a"})
	require.NoError(t, err)
	clk.now = clk.now.Add(59 * time.Second)
	second, err := b.Ask(context.Background(), echoQuery{Key: "a"})
	require.NoError(t, err)
	clk.now = clk.now.Add(time.Second)
	third, err := b.Ask(context.Background(), echoQuery{Key: "a"})
	require.NoError(t, err)

	// Assert
	assert.Equal(t, 1, first)
	assert.Equal(t, 1, second, "stale value is served until the TTL lapses")
	assert.Equal(t, 2, third)
	assert.Equal(t, []bool{false, true, false}, observer.results)
	assert.Equal(t, "echo", observer.spaces[0])
}

func TestCachingMiddleware_DoesNotCacheErrors(t *testing.T) {
	fail := true
	calls := 0
	b, _, _ := newCachedBus(t, QueryHandlerFunc(func(ctx context.Context, q Query) (interface{}, error) {
		calls++
		if fail {
			return nil, errors.New("store offline")
		}
		return "ok", nil
	}))

	_, err := b.Ask(context.Background(), echoQuery{Key: "a"})
	require.Error(t, err)

	fail = false
	result, err := b.Ask(context.Background(), echoQuery{Key: "a"})
	require.NoError(t, err)
	assert.Equal(t, "ok", result)
	assert.Equal(t, 2, calls)
}

func TestCachingMiddleware_PassesThroughUncacheable(t *testing.T) {
	calls := 0
	b, _, observer := newCachedBus(t, QueryHandlerFunc(func(ctx context.Context, q Query) (interface{}, error) {
		calls++
		return calls, nil
	}))

	_, _ = b.Ask(context.Background(), uncachedQuery{})
	result, err := b.Ask(context.Background(), uncachedQuery{})

	require.NoError(t, err)
	assert.Equal(t, 2, result)
	assert.Empty(t, observer.results)
}

func TestQueryBus_ValidationRunsBeforeCache(t *testing.T) {
	calls := 0
	b, _, observer := newCachedBus(t, QueryHandlerFunc(func(ctx context.Context, q Query) (interface{}, error) {
		calls++
		return nil, nil
	}))

	_, err := b.Ask(context.Background(), echoQuery{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "query validation failed")
	assert.Zero(t, calls)
	assert.Empty(t, observer.results)
}

func TestQueryBus_Registration(t *testing.T) {
	b := NewQueryBus()
	h := QueryHandlerFunc(func(ctx context.Context, q Query) (interface{}, error) { return nil, nil })

	require.NoError(t, b.Register(echoQuery{}, h))
	assert.Error(t, b.Register(echoQuery{}, h))

	_, err := b.Ask(context.Background(), uncachedQuery{})
	assert.Error(t, err)
}
