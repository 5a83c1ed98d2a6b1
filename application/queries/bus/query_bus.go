// Package bus dispatches read-only queries to the handler registered for
// their concrete type, through a fixed middleware chain.
package bus

import (
	"context"
	"fmt"
	"reflect"
	"sync"
)

// Query represents a read-only query
type Query interface {
	Validate() error
}

// Cacheable is implemented by queries whose result depends only on their
// fields
type Cacheable interface {
	Query
	Cacheable() bool
}

// QueryHandler handles a specific query type
type QueryHandler interface {
	Handle(ctx context.Context, query Query) (interface{}, error)
}

// QueryHandlerFunc adapts a function to QueryHandler
type QueryHandlerFunc func(ctx context.Context, query Query) (interface{}, error)

// Handle implements QueryHandler
func (f QueryHandlerFunc) Handle(ctx context.Context, query Query) (interface{}, error) {
	return f(ctx, query)
}

// Handler adapts a typed handler function. The returned handler rejects
// queries of any other type.
func Handler[Q Query, R any](fn func(ctx context.Context, query Q) (R, error)) QueryHandler {
	return QueryHandlerFunc(func(ctx context.Context, query Query) (interface{}, error) {
		typed, ok := query.(Q)
		if !ok {
			var want Q
			return nil, fmt.Errorf("invalid query type %T, want %T", query, want)
		}
		return fn(ctx, typed)
	})
}

// QueryBus routes queries by their concrete type
type QueryBus struct {
	mu         sync.RWMutex
	handlers   map[reflect.Type]QueryHandler
	middleware []Middleware
}

// NewQueryBus creates a bus whose handlers are wrapped by middleware, the
// first being outermost
func NewQueryBus(middleware ...Middleware) *QueryBus {
	return &QueryBus{
		handlers:   make(map[reflect.Type]QueryHandler),
		middleware: middleware,
	}
}

// Register binds handler to the type of query
func (b *QueryBus) Register(query Query, handler QueryHandler) error {
	key := reflect.TypeOf(query)

	b.mu.Lock()
	defer b.mu.Unlock()

	if _, exists := b.handlers[key]; exists {
		return fmt.Errorf("handler already registered for query type %s", key.Name())
	}
	b.handlers[key] = chain(handler, b.middleware)
	return nil
}

// Ask validates query and runs it through its handler
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

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	result, err := handler.Handle(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query handler failed: %w", err)
	}
	return result, nil
}

func chain(handler QueryHandler, middleware []Middleware) QueryHandler {
	for i := len(middleware) - 1; i >= 0; i-- {
		handler = middleware[i].Wrap(handler)
	}
	return handler
}

// queryName is the unqualified type name used for metrics and traces
func queryName(query Query) string {
	t := reflect.TypeOf(query)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t.Name()
}
