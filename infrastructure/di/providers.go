package di

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"skincare-backend/application/advisor"
	"skincare-backend/application/queries/bus"
	"skincare-backend/application/queries/handlers"
	domainconfig "skincare-backend/domain/config"
	"skincare-backend/domain/core/aggregates"
	"skincare-backend/domain/services"
	"skincare-backend/infrastructure/catalog"
	"skincare-backend/infrastructure/config"
	"skincare-backend/interfaces/http/rest"
	pkgerrors "skincare-backend/pkg/errors"
	"skincare-backend/pkg/observability"
)

// ProvideLogLevel parses the configured level into an atomic level so it
// can be changed while the process runs
func ProvideLogLevel(cfg *config.Config) (zap.AtomicLevel, error) {
	level, err := zapcore.ParseLevel(cfg.LogLevel)
	if err != nil {
		return zap.AtomicLevel{}, fmt.Errorf("invalid log level: %w", err)
	}
	return zap.NewAtomicLevelAt(level), nil
}

// ProvideLogger creates a new logger instance
func ProvideLogger(cfg *config.Config, level zap.AtomicLevel) (*zap.Logger, error) {
	var zapCfg zap.Config
	if cfg.IsProduction() {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
	}
	zapCfg.Level = level

	logger, err := zapCfg.Build()
	if err != nil {
		return nil, err
	}

	return logger.With(
		zap.String("service", cfg.ServiceName),
		zap.String("environment", cfg.Environment),
	), nil
}

// ProvideDomainConfig selects the domain limits for the environment
func ProvideDomainConfig(cfg *config.Config) (*domainconfig.DomainConfig, error) {
	domainCfg := domainconfig.LoadDomainConfig(cfg.Environment)
	if err := domainCfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid domain configuration: %w", err)
	}
	return domainCfg, nil
}

// ProvideMetricsCollector creates the Prometheus collector, or nil when
// metrics are disabled
func ProvideMetricsCollector(cfg *config.Config) *observability.Collector {
	if !cfg.EnableMetrics {
		return nil
	}
	return observability.NewCollector(metricsNamespace(cfg.ServiceName))
}

// metricsNamespace turns a service name into a valid Prometheus namespace
func metricsNamespace(serviceName string) string {
	return strings.NewReplacer("-", "_", ".", "_", " ", "_").Replace(serviceName)
}

// ProvideTracer creates the X-Ray tracer
func ProvideTracer(cfg *config.Config) *observability.Tracer {
	return observability.NewTracer(cfg.ServiceName, cfg.EnableTracing)
}

// ProvideKnowledgeGraph loads the ingredient catalog
func ProvideKnowledgeGraph(
	cfg *config.Config,
	collector *observability.Collector,
	logger *zap.Logger,
) (*aggregates.KnowledgeGraph, error) {
	graph, err := catalog.NewLoader(logger).Load(cfg.CatalogPath)
	if err != nil {
		return nil, pkgerrors.Wrap(err, "failed to load catalog")
	}

	if collector != nil {
		collector.SetGauge("catalog_ingredients", float64(graph.IngredientCount()), nil)
		collector.SetGauge("catalog_interactions", float64(graph.InteractionCount()), nil)
	}

	return graph, nil
}

// ProvideKnowledgeGraphService creates the knowledge graph service
func ProvideKnowledgeGraphService(
	graph *aggregates.KnowledgeGraph,
	domainCfg *domainconfig.DomainConfig,
	logger *zap.Logger,
) *services.KnowledgeGraphService {
	return services.NewKnowledgeGraphService(graph, domainCfg, logger)
}

// ProvideRoutineBuilder creates the routine builder
func ProvideRoutineBuilder(
	kg *services.KnowledgeGraphService,
	domainCfg *domainconfig.DomainConfig,
	logger *zap.Logger,
) *services.RoutineBuilder {
	return services.NewRoutineBuilder(kg, domainCfg, logger)
}

// ProvideRoutineAnalyzer creates the routine analyzer
func ProvideRoutineAnalyzer(
	kg *services.KnowledgeGraphService,
	builder *services.RoutineBuilder,
	logger *zap.Logger,
) *services.RoutineAnalyzer {
	return services.NewRoutineAnalyzer(kg, builder, logger)
}

// ProvideAdvisor creates the question advisor
func ProvideAdvisor(kg *services.KnowledgeGraphService, logger *zap.Logger) *advisor.Advisor {
	return advisor.NewAdvisor(kg, logger)
}

// ProvideIngredientQueryHandler creates the ingredient query handler
func ProvideIngredientQueryHandler(
	kg *services.KnowledgeGraphService,
	domainCfg *domainconfig.DomainConfig,
	logger *zap.Logger,
) *handlers.IngredientQueryHandler {
	return handlers.NewIngredientQueryHandler(kg, domainCfg, logger)
}

// ProvideRoutineQueryHandler creates the routine query handler
func ProvideRoutineQueryHandler(
	builder *services.RoutineBuilder,
	analyzer *services.RoutineAnalyzer,
	domainCfg *domainconfig.DomainConfig,
	logger *zap.Logger,
) *handlers.RoutineQueryHandler {
	return handlers.NewRoutineQueryHandler(builder, analyzer, domainCfg, logger)
}

// ProvideAdvisorQueryHandler creates the advisor query handler
func ProvideAdvisorQueryHandler(adv *advisor.Advisor, logger *zap.Logger) *handlers.AdvisorQueryHandler {
	return handlers.NewAdvisorQueryHandler(adv, logger)
}

// ProvideInMemoryCache creates the query result cache. The cleanup function
// stops its sweeper.
func ProvideInMemoryCache(collector *observability.Collector) (*InMemoryCache, func()) {
	var sink counterSink
	if collector != nil {
		sink = collector
	}
	cache := NewInMemoryCache(sink)
	return cache, cache.Close
}

// ProvideQueryBus creates a query bus with every handler registered.
// Middleware runs outermost first: tracing, metrics, then caching.
func ProvideQueryBus(
	cfg *config.Config,
	cache *InMemoryCache,
	collector *observability.Collector,
	ingredients *handlers.IngredientQueryHandler,
	routines *handlers.RoutineQueryHandler,
	advice *handlers.AdvisorQueryHandler,
	logger *zap.Logger,
) (*bus.QueryBus, error) {
	var middleware []bus.Middleware
	if cfg.EnableTracing {
		middleware = append(middleware, bus.NewTracingMiddleware())
	}
	if collector != nil {
		middleware = append(middleware, bus.NewMetricsMiddleware(newBusMetrics(collector)))
	}
	if cfg.CacheTTL > 0 {
		middleware = append(middleware, bus.NewCachingMiddleware(cache, cfg.CacheTTL))
	}

	queryBus := bus.NewQueryBus(middleware...)
	if err := handlers.Register(queryBus, ingredients, routines, advice); err != nil {
		return nil, fmt.Errorf("failed to register query handlers: %w", err)
	}

	logger.Debug("Query bus ready",
		zap.Int("middleware", len(middleware)),
		zap.Int("cache_ttl", cfg.CacheTTL),
	)
	return queryBus, nil
}

// ProvideRouter creates the HTTP router
func ProvideRouter(
	cfg *config.Config,
	queryBus *bus.QueryBus,
	collector *observability.Collector,
	tracer *observability.Tracer,
	logger *zap.Logger,
) *rest.Router {
	return rest.NewRouter(cfg, queryBus, collector, tracer, logger)
}
