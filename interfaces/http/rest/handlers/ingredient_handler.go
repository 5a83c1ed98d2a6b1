package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"skincare-backend/application/queries"
	"skincare-backend/application/queries/bus"
	pkgerrors "skincare-backend/pkg/errors"
	"skincare-backend/pkg/observability"
)

// IngredientHandler handles ingredient and interaction lookups
type IngredientHandler struct {
	base
}

// NewIngredientHandler creates a new ingredient handler
func NewIngredientHandler(
	queryBus *bus.QueryBus,
	errorHandler *pkgerrors.ErrorHandler,
	tracer *observability.Tracer,
	logger *zap.Logger,
) *IngredientHandler {
	return &IngredientHandler{base: newBase(queryBus, errorHandler, tracer, logger)}
}

// ListIngredients handles GET /ingredients
func (h *IngredientHandler) ListIngredients(w http.ResponseWriter, r *http.Request) {
	h.ask(w, r, queries.ListIngredientsQuery{
		Concern: r.URL.Query().Get("concern"),
	})
}

// SearchIngredients handles GET /ingredients/search
func (h *IngredientHandler) SearchIngredients(w http.ResponseWriter, r *http.Request) {
	h.ask(w, r, queries.SearchIngredientsQuery{
		Text: r.URL.Query().Get("q"),
	})
}

// GetIngredient handles GET /ingredients/{id}
func (h *IngredientHandler) GetIngredient(w http.ResponseWriter, r *http.Request) {
	h.ask(w, r, queries.GetIngredientQuery{
		ID: chi.URLParam(r, "id"),
	})
}

// GetIngredientInteractions handles GET /ingredients/{id}/interactions
func (h *IngredientHandler) GetIngredientInteractions(w http.ResponseWriter, r *http.Request) {
	h.ask(w, r, queries.GetIngredientInteractionsQuery{
		ID: chi.URLParam(r, "id"),
	})
}

// ExplainInteraction handles GET /interactions/explain
func (h *IngredientHandler) ExplainInteraction(w http.ResponseWriter, r *http.Request) {
	h.ask(w, r, queries.ExplainInteractionQuery{
		A: r.URL.Query().Get("a"),
		B: r.URL.Query().Get("b"),
	})
}

// CheckCompatibility handles POST /compatibility
func (h *IngredientHandler) CheckCompatibility(w http.ResponseWriter, r *http.Request) {
	var query queries.CheckCompatibilityQuery
	if !h.decode(w, r, &query) {
		return
	}

	result, ok := h.ask(w, r, query)
	if !ok {
		return
	}
	if compatibility, ok := result.(*queries.CompatibilityResult); ok {
		h.tracer.AddAnnotation(r.Context(), "compatible", boolString(compatibility.IsCompatible))
	}
}

func boolString(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
