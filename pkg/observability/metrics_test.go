package observability

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCollector(t *testing.T) *Collector {
	t.Helper()
	ResetForTesting()
	t.Cleanup(ResetForTesting)
	return NewCollector("test")
}

func TestNewCollectorIsSingleton(t *testing.T) {
	c := newTestCollector(t)
	assert.Same(t, c, NewCollector("other"))
}

func TestCollectorRouting(t *testing.T) {
	c := newTestCollector(t)

	c.IncrementCounter("query_count", map[string]string{"query": "GetIngredientQuery"})
	c.IncrementCounter("query_success", map[string]string{"query": "GetIngredientQuery"})
	c.IncrementCounter("query_errors", map[string]string{"query": "BuildRoutineQuery"})
	c.IncrementCounter("cache_hits", nil)
	c.IncrementCounter("cache_misses", nil)
	c.IncrementCounter("cache_misses", nil)
	c.IncrementCounter("unknown_metric", nil)
	c.RecordDuration("query_duration", 3*time.Millisecond, map[string]string{"query": "GetIngredientQuery"})
	c.SetGauge("catalog_ingredients", 25, nil)
	c.SetGauge("circuit_breaker_state", 2, map[string]string{"name": "api"})

	assert.Equal(t, 1.0, testutil.ToFloat64(c.Queries.WithLabelValues("GetIngredientQuery", "received")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.Queries.WithLabelValues("GetIngredientQuery", "success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.Queries.WithLabelValues("BuildRoutineQuery", "error")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.CacheHits))
	assert.Equal(t, 2.0, testutil.ToFloat64(c.CacheMisses))
	assert.Equal(t, 25.0, testutil.ToFloat64(c.CatalogIngredients))
	assert.Equal(t, 2.0, testutil.ToFloat64(c.BreakerState.WithLabelValues("api")))
	assert.Equal(t, 1, testutil.CollectAndCount(c.QueryDuration))
}

func TestMetricsMiddlewareAndHandler(t *testing.T) {
	c := newTestCollector(t)

	r := chi.NewRouter()
	r.Use(MetricsMiddleware(c))
	r.Get("/ingredients/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	r.Handle("/metrics", c.Handler())

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ingredients/unobtainium", nil))
	require.Equal(t, http.StatusNotFound, rec.Code)

	assert.Equal(t, 1.0, testutil.ToFloat64(c.HTTPRequests.WithLabelValues("GET", "/ingredients/{id}", "404")))

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `test_http_requests_total{method="GET",route="/ingredients/{id}",status="404"} 1`)
}
