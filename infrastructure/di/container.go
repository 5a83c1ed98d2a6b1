package di

import (
	"go.uber.org/zap"

	"skincare-backend/application/queries/bus"
	"skincare-backend/domain/core/aggregates"
	"skincare-backend/infrastructure/config"
	"skincare-backend/interfaces/http/rest"
	"skincare-backend/pkg/observability"
)

// Container holds all application dependencies
type Container struct {
	Config    *config.Config
	Logger    *zap.Logger
	LogLevel  zap.AtomicLevel
	Graph     *aggregates.KnowledgeGraph
	Cache     *InMemoryCache
	QueryBus  *bus.QueryBus
	Collector *observability.Collector
	Tracer    *observability.Tracer
	Router    *rest.Router
}

// ApplyConfig applies the settings that can change without a restart.
// Only the log level is reloaded.
func (c *Container) ApplyConfig(updated *config.Config) {
	level, err := ProvideLogLevel(updated)
	if err != nil {
		c.Logger.Warn("Ignoring invalid log level", zap.String("log_level", updated.LogLevel))
		return
	}
	if level.Level() != c.LogLevel.Level() {
		c.Logger.Info("Log level changed",
			zap.Stringer("from", c.LogLevel.Level()),
			zap.Stringer("to", level.Level()),
		)
		c.LogLevel.SetLevel(level.Level())
	}
}
