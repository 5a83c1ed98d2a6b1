package rest

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"skincare-backend/application/queries"
	"skincare-backend/application/queries/bus"
	"skincare-backend/infrastructure/config"
	"skincare-backend/interfaces/http/rest/handlers"
	"skincare-backend/interfaces/http/rest/middleware"
	"skincare-backend/pkg/common"
	pkgerrors "skincare-backend/pkg/errors"
	"skincare-backend/pkg/observability"
)

// requestTimeout bounds every request's context
const requestTimeout = 30 * time.Second

// Router creates and configures the HTTP router
type Router struct {
	config       *config.Config
	queryBus     *bus.QueryBus
	collector    *observability.Collector
	tracer       *observability.Tracer
	errorHandler *pkgerrors.ErrorHandler
	logger       *zap.Logger
}

// NewRouter creates a new router instance. collector may be nil when metrics
// are disabled.
func NewRouter(
	cfg *config.Config,
	queryBus *bus.QueryBus,
	collector *observability.Collector,
	tracer *observability.Tracer,
	logger *zap.Logger,
) *Router {
	return &Router{
		config:       cfg,
		queryBus:     queryBus,
		collector:    collector,
		tracer:       tracer,
		errorHandler: pkgerrors.NewErrorHandler(logger, cfg.IsDevelopment()),
		logger:       logger,
	}
}

// Setup configures all routes and middleware
func (rt *Router) Setup() *chi.Mux {
	router := chi.NewRouter()

	// Global middleware
	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(middleware.Logger(rt.logger))
	router.Use(rt.errorHandler.Middleware)
	router.Use(rt.tracer.Middleware)
	router.Use(chimiddleware.Timeout(requestTimeout))

	if rt.metricsEnabled() {
		router.Use(observability.MetricsMiddleware(rt.collector))
	}

	if rt.config.EnableCORS {
		router.Use(cors.Handler(cors.Options{
			AllowedOrigins: rt.config.AllowedOrigins,
			AllowedMethods: []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
			ExposedHeaders: []string{"X-Request-ID"},
			MaxAge:         300,
		}))
	}

	router.Get("/health", rt.healthCheck)
	router.Get("/ready", rt.readinessCheck)
	if rt.metricsEnabled() {
		router.Method(http.MethodGet, "/metrics", rt.collector.Handler())
	}

	router.Route("/api/v1", func(r chi.Router) {
		if rt.config.CircuitBreaker.Enabled {
			r.Use(middleware.CircuitBreaker("api", rt.config.CircuitBreaker, rt.errorHandler, rt.breakerObserver(), rt.logger))
		}

		ingredientHandler := handlers.NewIngredientHandler(rt.queryBus, rt.errorHandler, rt.tracer, rt.logger)
		r.Route("/ingredients", func(r chi.Router) {
			r.Get("/", ingredientHandler.ListIngredients)
			r.Get("/search", ingredientHandler.SearchIngredients)
			r.Get("/{id}", ingredientHandler.GetIngredient)
			r.Get("/{id}/interactions", ingredientHandler.GetIngredientInteractions)
		})
		r.Get("/interactions/explain", ingredientHandler.ExplainInteraction)
		r.Post("/compatibility", ingredientHandler.CheckCompatibility)

		routineHandler := handlers.NewRoutineHandler(rt.queryBus, rt.errorHandler, rt.tracer, rt.logger)
		r.Route("/routines", func(r chi.Router) {
			r.Post("/build", routineHandler.BuildRoutine)
			r.Post("/analyze", routineHandler.AnalyzeRoutine)
			r.Post("/suggest", routineHandler.SuggestRoutine)
			r.Post("/compare", routineHandler.CompareProducts)
			r.Post("/analyze-ingredients", routineHandler.AnalyzeIngredients)
		})

		advisorHandler := handlers.NewAdvisorHandler(rt.queryBus, rt.errorHandler, rt.tracer, rt.logger)
		r.Post("/advisor/ask", advisorHandler.Ask)
	})

	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		rt.errorHandler.HandleStatus(w, r, http.StatusNotFound, "route not found")
	})
	router.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		rt.errorHandler.HandleStatus(w, r, http.StatusMethodNotAllowed, "method not allowed")
	})

	return router
}

func (rt *Router) metricsEnabled() bool {
	return rt.config.EnableMetrics && rt.collector != nil
}

// breakerObserver avoids handing the middleware a typed nil
func (rt *Router) breakerObserver() middleware.StateObserver {
	if rt.collector == nil {
		return nil
	}
	return rt.collector
}

func (rt *Router) healthCheck(w http.ResponseWriter, r *http.Request) {
	common.RespondJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

// readinessCheck reports ready once the catalog answers queries
func (rt *Router) readinessCheck(w http.ResponseWriter, r *http.Request) {
	result, err := rt.queryBus.Ask(r.Context(), queries.ListIngredientsQuery{})
	if err != nil {
		rt.logger.Warn("Readiness check failed", zap.Error(err))
		rt.errorHandler.Handle(w, r, pkgerrors.NewUnavailableError("catalog").WithCause(err))
		return
	}

	list, ok := result.(*queries.ListIngredientsResult)
	if !ok || list.Total == 0 {
		rt.errorHandler.HandleStatus(w, r, http.StatusServiceUnavailable, "catalog is empty")
		return
	}

	common.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"status":      "ready",
		"ingredients": list.Total,
	})
}
