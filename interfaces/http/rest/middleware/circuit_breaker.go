package middleware

import (
	"errors"
	"net/http"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"

	"skincare-backend/infrastructure/config"
	pkgerrors "skincare-backend/pkg/errors"
)

// errServerError marks a 5xx response as a breaker failure
var errServerError = errors.New("server error response")

// StateObserver is told about breaker state changes
type StateObserver interface {
	SetGauge(name string, value float64, tags map[string]string)
}

// CircuitBreaker creates a circuit breaker middleware. Responses with a 5xx
// status count as failures. While the breaker is open requests are rejected
// with 503 without reaching the handler.
func CircuitBreaker(
	name string,
	cfg config.CircuitBreakerConfig,
	errorHandler *pkgerrors.ErrorHandler,
	observer StateObserver,
	logger *zap.Logger,
) func(http.Handler) http.Handler {
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			// Only trip if we have enough requests to make a decision
			if counts.Requests < cfg.MinRequests {
				return false
			}

			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return failureRatio >= cfg.FailureRatio
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			logger.Warn("Circuit breaker state changed",
				zap.String("breaker", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
			if observer != nil {
				observer.SetGauge("circuit_breaker_state", stateValue(to), map[string]string{"name": name})
			}
		},
	})

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, err := cb.Execute(func() (any, error) {
				wrapper := &responseWrapper{
					ResponseWriter: w,
					statusCode:     http.StatusOK,
				}

				next.ServeHTTP(wrapper, r)

				if wrapper.statusCode >= 500 {
					return nil, errServerError
				}
				return nil, nil
			})

			switch {
			case errors.Is(err, gobreaker.ErrOpenState):
				errorHandler.HandleStatus(w, r, http.StatusServiceUnavailable,
					"Service temporarily unavailable - too many failures")
			case errors.Is(err, gobreaker.ErrTooManyRequests):
				errorHandler.HandleStatus(w, r, http.StatusServiceUnavailable,
					"Service temporarily unavailable - too many requests")
			}
			// Any other error means the handler already wrote its 5xx response
		})
	}
}

func stateValue(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return 0
	}
}

// responseWrapper wraps http.ResponseWriter to capture status code
type responseWrapper struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWrapper) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}
