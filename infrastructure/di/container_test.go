package di

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"skincare-backend/application/queries"
	"skincare-backend/infrastructure/config"
	"skincare-backend/pkg/observability"
)

func testConfig() *config.Config {
	cfg := config.DefaultConfig()
	cfg.Environment = config.Test
	cfg.ServiceName = "skincare-test"
	return cfg
}

func newTestContainer(t *testing.T, cfg *config.Config) *Container {
	t.Helper()
	observability.ResetForTesting()
	t.Cleanup(observability.ResetForTesting)

	container, cleanup, err := InitializeContainer(cfg)
	require.NoError(t, err)
	t.Cleanup(cleanup)
	return container
}

func TestInitializeContainer(t *testing.T) {
	container := newTestContainer(t, testConfig())

	require.NotNil(t, container.Logger)
	require.NotNil(t, container.QueryBus)
	require.NotNil(t, container.Router)
	require.NotNil(t, container.Collector)
	assert.Equal(t, 25, container.Graph.IngredientCount())

	assert.Equal(t, float64(25), testutil.ToFloat64(container.Collector.CatalogIngredients))
	assert.Equal(t, float64(container.Graph.InteractionCount()), testutil.ToFloat64(container.Collector.CatalogInteractions))
}

func TestContainerCachesQueries(t *testing.T) {
	container := newTestContainer(t, testConfig())
	ctx := context.Background()

	first, err := container.QueryBus.Ask(ctx, queries.GetIngredientQuery{ID: "retinol"})
	require.NoError(t, err)
	second, err := container.QueryBus.Ask(ctx, queries.GetIngredientQuery{ID: "retinol"})
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, float64(1), testutil.ToFloat64(container.Collector.CacheHits))
	assert.Equal(t, float64(1), testutil.ToFloat64(container.Collector.CacheMisses))
	assert.Equal(t, float64(2),
		testutil.ToFloat64(container.Collector.Queries.WithLabelValues("GetIngredientQuery", "success")))
}

func TestContainerWithoutMetricsOrCache(t *testing.T) {
	cfg := testConfig()
	cfg.EnableMetrics = false
	cfg.CacheTTL = 0
	container := newTestContainer(t, cfg)

	assert.Nil(t, container.Collector)

	_, err := container.QueryBus.Ask(context.Background(), queries.ListIngredientsQuery{})
	require.NoError(t, err)
	assert.Equal(t, 0, container.Cache.Len())
}

func TestInitializeContainerBadCatalog(t *testing.T) {
	cfg := testConfig()
	cfg.CatalogPath = "/does/not/exist.yaml"

	observability.ResetForTesting()
	defer observability.ResetForTesting()

	_, _, err := InitializeContainer(cfg)
	assert.Error(t, err)
}

func TestApplyConfigChangesLogLevel(t *testing.T) {
	container := newTestContainer(t, testConfig())
	require.Equal(t, zap.InfoLevel, container.LogLevel.Level())

	updated := testConfig()
	updated.LogLevel = "debug"
	container.ApplyConfig(updated)
	assert.Equal(t, zap.DebugLevel, container.LogLevel.Level())
	assert.True(t, container.Logger.Core().Enabled(zap.DebugLevel))

	updated.LogLevel = "loud"
	container.ApplyConfig(updated)
	assert.Equal(t, zap.DebugLevel, container.LogLevel.Level())
}

func TestMetricsNamespace(t *testing.T) {
	assert.Equal(t, "skincare_backend", metricsNamespace("skincare-backend"))
	assert.Equal(t, "api_v1", metricsNamespace("api.v1"))
}
