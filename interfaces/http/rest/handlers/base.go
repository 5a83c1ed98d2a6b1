package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"skincare-backend/application/queries/bus"
	"skincare-backend/pkg/common"
	pkgerrors "skincare-backend/pkg/errors"
	"skincare-backend/pkg/observability"
)

// base holds what every handler needs to dispatch a query and respond
type base struct {
	queryBus *bus.QueryBus
	errors   *pkgerrors.ErrorHandler
	tracer   *observability.Tracer
	logger   *zap.Logger
}

func newBase(
	queryBus *bus.QueryBus,
	errorHandler *pkgerrors.ErrorHandler,
	tracer *observability.Tracer,
	logger *zap.Logger,
) base {
	return base{
		queryBus: queryBus,
		errors:   errorHandler,
		tracer:   tracer,
		logger:   logger,
	}
}

// ask dispatches the query and writes the result, or the error, as JSON.
// It returns the result so callers can annotate the trace.
func (h *base) ask(w http.ResponseWriter, r *http.Request, query bus.Query) (interface{}, bool) {
	result, err := h.queryBus.Ask(r.Context(), query)
	if errors.Is(err, context.DeadlineExceeded) {
		err = pkgerrors.NewTimeoutError(fmt.Sprintf("%T", query)).WithCause(err)
	}
	if err != nil {
		h.tracer.RecordError(r.Context(), err)
		h.errors.Handle(w, r, err)
		return nil, false
	}

	common.RespondWithMeta(w, r, http.StatusOK, result)
	return result, true
}

// decode parses the request body into v, reporting failures as validation
// errors
func (h *base) decode(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := common.ParseJSONBody(w, r, v); err != nil {
		h.errors.Handle(w, r, pkgerrors.NewValidationError("invalid request body: "+err.Error()))
		return false
	}
	return true
}
