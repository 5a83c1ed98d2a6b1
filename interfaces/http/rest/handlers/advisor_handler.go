package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"skincare-backend/application/queries"
	"skincare-backend/application/queries/bus"
	pkgerrors "skincare-backend/pkg/errors"
	"skincare-backend/pkg/observability"
)

// AdvisorHandler handles free-text questions
type AdvisorHandler struct {
	base
}

// NewAdvisorHandler creates a new advisor handler
func NewAdvisorHandler(
	queryBus *bus.QueryBus,
	errorHandler *pkgerrors.ErrorHandler,
	tracer *observability.Tracer,
	logger *zap.Logger,
) *AdvisorHandler {
	return &AdvisorHandler{base: newBase(queryBus, errorHandler, tracer, logger)}
}

// Ask handles POST /advisor/ask
func (h *AdvisorHandler) Ask(w http.ResponseWriter, r *http.Request) {
	var query queries.AskAdvisorQuery
	if !h.decode(w, r, &query) {
		return
	}

	result, ok := h.ask(w, r, query)
	if !ok {
		return
	}
	if answer, ok := result.(*queries.AdvisorResult); ok {
		h.tracer.AddAnnotation(r.Context(), "intent", answer.Intent)
	}
}
