package bus

import (
	"context"
	"fmt"
	"reflect"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Query represents a read-only query
type Query interface {
	Validate() error
}

// Cacheable is implemented by queries whose results may be served from the
// response cache. CacheKey must identify the query shape completely.
type Cacheable interface {
	CacheKey() string
}

// QueryHandler handles a specific query type
type QueryHandler interface {
	Handle(ctx context.Context, query Query) (interface{}, error)
}

// Wrapper decorates a query handler
type Wrapper interface {
	Wrap(next QueryHandler) QueryHandler
}

// QueryBus dispatches queries to their handlers
type QueryBus struct {
	handlers map[reflect.Type]QueryHandler
	wrappers []Wrapper
	mu       sync.RWMutex
}

// NewQueryBus creates a new query bus. Wrappers decorate every handler
// registered afterwards; the first wrapper is the outermost.
func NewQueryBus(wrappers ...Wrapper) *QueryBus {
	return &QueryBus{
		handlers: make(map[reflect.Type]QueryHandler),
		wrappers: wrappers,
	}
}

// Register registers a handler for a query type
func (b *QueryBus) Register(queryType Query, handler QueryHandler) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	t := reflect.TypeOf(queryType)
	if _, exists := b.handlers[t]; exists {
		return fmt.Errorf("handler already registered for query type %s", t.Name())
	}

	for i := len(b.wrappers) - 1; i >= 0; i-- {
		handler = b.wrappers[i].Wrap(handler)
	}
	b.handlers[t] = handler
	return nil
}

// Ask dispatches a query to its handler and returns the result
func (b *QueryBus) Ask(ctx context.Context, query Query) (interface{}, error) {
	if err := query.Validate(); err != nil {
		return nil, fmt.Errorf("query validation failed: %w", err)
	}

	b.mu.RLock()
	handler, exists := b.handlers[reflect.TypeOf(query)]
	b.mu.RUnlock()

	if !exists {
		return nil, fmt.Errorf("no handler registered for query type %T", query)
	}

	result, err := handler.Handle(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query handler failed: %w", err)
	}

	return result, nil
}

// QueryHandlerFunc is an adapter to allow functions to be used as handlers
type QueryHandlerFunc func(ctx context.Context, query Query) (interface{}, error)

// Handle implements QueryHandler
func (f QueryHandlerFunc) Handle(ctx context.Context, query Query) (interface{}, error) {
	return f(ctx, query)
}

// CachingMiddleware serves Cacheable queries through the response cache.
// On a miss the wrapped handler runs and only a successful result is stored.
type CachingMiddleware struct {
	cache    Cache
	ttl      time.Duration
	observer CacheObserver
	logger   *zap.Logger
}

// NewCachingMiddleware creates a new caching middleware
func NewCachingMiddleware(cache Cache, ttl time.Duration, observer CacheObserver, logger *zap.Logger) *CachingMiddleware {
	return &CachingMiddleware{
		cache:    cache,
		ttl:      ttl,
		observer: observer,
		logger:   logger,
	}
}

// Wrap wraps a query handler with caching
func (m *CachingMiddleware) Wrap(next QueryHandler) QueryHandler {
	return QueryHandlerFunc(func(ctx context.Context, query Query) (interface{}, error) {
		cacheable, ok := query.(Cacheable)
		if !ok {
			return next.Handle(ctx, query)
		}

		key := cacheable.CacheKey()
		hit := true
		result, err := m.cache.GetOrSet(key, m.ttl, func() (interface{}, error) {
			hit = false
			return next.Handle(ctx, query)
		})
		if err != nil {
			return nil, err
		}

		m.logger.Debug("Query cache lookup", zap.String("key", key), zap.Bool("hit", hit))
		if m.observer != nil {
			m.observer.RecordCacheResult(ctx, keyspace(key), hit)
		}
		return result, nil
	})
}

// keyspace is the key prefix before the first colon
func keyspace(key string) string {
	if i := strings.IndexByte(key, ':'); i > 0 {
		return key[:i]
	}
	return key
}

// Cache is the read-through part of the response cache
type Cache interface {
	GetOrSet(key string, ttl time.Duration, producer func() (interface{}, error)) (interface{}, error)
}

// CacheObserver receives hit/miss outcomes
type CacheObserver interface {
	RecordCacheResult(ctx context.Context, keyspace string, hit bool)
}

// MetricsMiddleware adds metrics to query handlers
type MetricsMiddleware struct {
	metrics Metrics
}

// NewMetricsMiddleware creates a new metrics middleware
func NewMetricsMiddleware(metrics Metrics) *MetricsMiddleware {
	return &MetricsMiddleware{
		metrics: metrics,
	}
}

// Wrap wraps a query handler with metrics
func (m *MetricsMiddleware) Wrap(next QueryHandler) QueryHandler {
	return QueryHandlerFunc(func(ctx context.Context, query Query) (interface{}, error) {
		start := time.Now()
		result, err := next.Handle(ctx, query)
		m.metrics.RecordQueryExecution(ctx, reflect.TypeOf(query).Name(), time.Since(start), err)
		return result, err
	})
}

// Metrics receives query timings
type Metrics interface {
	RecordQueryExecution(ctx context.Context, queryName string, duration time.Duration, err error)
}
