//go:build wireinject
// +build wireinject

package di

import (
	"github.com/google/wire"

	"skincare-backend/infrastructure/config"
)

// ObservabilitySet provides logging, metrics and tracing
var ObservabilitySet = wire.NewSet(
	ProvideLogLevel,
	ProvideLogger,
	ProvideMetricsCollector,
	ProvideTracer,
)

// DomainSet provides the catalog and the domain services
var DomainSet = wire.NewSet(
	ProvideDomainConfig,
	ProvideKnowledgeGraph,
	ProvideKnowledgeGraphService,
	ProvideRoutineBuilder,
	ProvideRoutineAnalyzer,
	ProvideAdvisor,
)

// ApplicationSet provides the query handlers and the query bus
var ApplicationSet = wire.NewSet(
	ProvideIngredientQueryHandler,
	ProvideRoutineQueryHandler,
	ProvideAdvisorQueryHandler,
	ProvideInMemoryCache,
	ProvideQueryBus,
)

// SuperSet is the main provider set containing all providers
var SuperSet = wire.NewSet(
	ObservabilitySet,
	DomainSet,
	ApplicationSet,
	ProvideRouter,
	wire.Struct(new(Container), "*"),
)

// InitializeContainer creates a fully wired container
func InitializeContainer(cfg *config.Config) (*Container, func(), error) {
	wire.Build(SuperSet)
	return nil, nil, nil
}
