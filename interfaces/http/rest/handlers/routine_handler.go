package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"skincare-backend/application/queries"
	"skincare-backend/application/queries/bus"
	pkgerrors "skincare-backend/pkg/errors"
	"skincare-backend/pkg/observability"
)

// RoutineHandler handles routine building and product analysis
type RoutineHandler struct {
	base
}

// NewRoutineHandler creates a new routine handler
func NewRoutineHandler(
	queryBus *bus.QueryBus,
	errorHandler *pkgerrors.ErrorHandler,
	tracer *observability.Tracer,
	logger *zap.Logger,
) *RoutineHandler {
	return &RoutineHandler{base: newBase(queryBus, errorHandler, tracer, logger)}
}

// BuildRoutine handles POST /routines/build
func (h *RoutineHandler) BuildRoutine(w http.ResponseWriter, r *http.Request) {
	var query queries.BuildRoutineQuery
	if !h.decode(w, r, &query) {
		return
	}
	h.respondRoutine(w, r, query)
}

// AnalyzeRoutine handles POST /routines/analyze
func (h *RoutineHandler) AnalyzeRoutine(w http.ResponseWriter, r *http.Request) {
	var query queries.AnalyzeRoutineQuery
	if !h.decode(w, r, &query) {
		return
	}
	h.respondRoutine(w, r, query)
}

func (h *RoutineHandler) respondRoutine(w http.ResponseWriter, r *http.Request, query bus.Query) {
	result, ok := h.ask(w, r, query)
	if !ok {
		return
	}
	if routine, ok := result.(*queries.RoutineResult); ok {
		h.tracer.AddAnnotation(r.Context(), "routine_id", routine.ID)
		h.tracer.AddMetadata(r.Context(), "routine_valid", routine.Analysis.IsValid)
	}
}

// SuggestRoutine handles POST /routines/suggest
func (h *RoutineHandler) SuggestRoutine(w http.ResponseWriter, r *http.Request) {
	var query queries.SuggestRoutineQuery
	if !h.decode(w, r, &query) {
		return
	}
	h.ask(w, r, query)
}

// CompareProducts handles POST /routines/compare
func (h *RoutineHandler) CompareProducts(w http.ResponseWriter, r *http.Request) {
	var query queries.CompareProductsQuery
	if !h.decode(w, r, &query) {
		return
	}
	h.ask(w, r, query)
}

// AnalyzeIngredients handles POST /routines/analyze-ingredients
func (h *RoutineHandler) AnalyzeIngredients(w http.ResponseWriter, r *http.Request) {
	var query queries.AnalyzeIngredientsQuery
	if !h.decode(w, r, &query) {
		return
	}
	h.ask(w, r, query)
}
