package bus

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aws/aws-xray-sdk-go/xray"
)

// Middleware decorates a handler
type Middleware interface {
	Wrap(next QueryHandler) QueryHandler
}

// Cache stores query results for ttl seconds
type Cache interface {
	Get(ctx context.Context, key string) (interface{}, bool)
	Set(ctx context.Context, key string, value interface{}, ttl int) error
}

// CachingMiddleware serves repeated Cacheable queries from a cache. A
// non-positive TTL disables it.
type CachingMiddleware struct {
	cache Cache
	ttl   int
}

// NewCachingMiddleware creates a caching middleware with ttl in seconds
func NewCachingMiddleware(cache Cache, ttl int) *CachingMiddleware {
	return &CachingMiddleware{cache: cache, ttl: ttl}
}

// Wrap implements Middleware. Failed queries are never cached.
func (m *CachingMiddleware) Wrap(next QueryHandler) QueryHandler {
	if m.ttl <= 0 {
		return next
	}
	return QueryHandlerFunc(func(ctx context.Context, query Query) (interface{}, error) {
		key, ok := cacheKey(query)
		if !ok {
			return next.Handle(ctx, query)
		}

		if cached, found := m.cache.Get(ctx, key); found {
			return cached, nil
		}

		result, err := next.Handle(ctx, query)
		if err == nil {
			_ = m.cache.Set(ctx, key, result, m.ttl)
		}
		return result, err
	})
}

// cacheKey is the query type plus its JSON encoding
func cacheKey(query Query) (string, bool) {
	if c, ok := query.(Cacheable); !ok || !c.Cacheable() {
		return "", false
	}
	body, err := json.Marshal(query)
	if err != nil {
		return "", false
	}
	return fmt.Sprintf("%T:%s", query, body), true
}

// Metrics receives per-query counters and timings
type Metrics interface {
	StartTimer(metric, label string) Timer
	Increment(metric, label string)
}

// Timer is a running measurement
type Timer interface {
	Stop()
}

// MetricsMiddleware counts and times every query by type
type MetricsMiddleware struct {
	metrics Metrics
}

// NewMetricsMiddleware creates a metrics middleware
func NewMetricsMiddleware(metrics Metrics) *MetricsMiddleware {
	return &MetricsMiddleware{metrics: metrics}
}

// Wrap implements Middleware
func (m *MetricsMiddleware) Wrap(next QueryHandler) QueryHandler {
	return QueryHandlerFunc(func(ctx context.Context, query Query) (interface{}, error) {
		name := queryName(query)
		m.metrics.Increment("query_count", name)

		timer := m.metrics.StartTimer("query_duration", name)
		result, err := next.Handle(ctx, query)
		timer.Stop()

		outcome := "query_success"
		if err != nil {
			outcome = "query_errors"
		}
		m.metrics.Increment(outcome, name)
		return result, err
	})
}

// TracingMiddleware opens an X-Ray subsegment per query inside a traced
// request. Untraced calls pass straight through.
type TracingMiddleware struct{}

// NewTracingMiddleware creates a tracing middleware
func NewTracingMiddleware() *TracingMiddleware {
	return &TracingMiddleware{}
}

// Wrap implements Middleware
func (m *TracingMiddleware) Wrap(next QueryHandler) QueryHandler {
	return QueryHandlerFunc(func(ctx context.Context, query Query) (interface{}, error) {
		if xray.GetSegment(ctx) == nil {
			return next.Handle(ctx, query)
		}

		ctx, seg := xray.BeginSubsegment(ctx, "query."+queryName(query))
		result, err := next.Handle(ctx, query)
		if seg != nil {
			seg.Close(err)
		}
		return result, err
	})
}
