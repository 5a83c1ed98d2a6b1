package handlers

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"skincare-backend/application/queries"
	"skincare-backend/domain/config"
	"skincare-backend/domain/core/aggregates"
	"skincare-backend/domain/core/valueobjects"
	"skincare-backend/domain/services"
	pkgerrors "skincare-backend/pkg/errors"
)

// RoutineQueryHandler handles routine building, analysis and suggestion
type RoutineQueryHandler struct {
	builder  *services.RoutineBuilder
	analyzer *services.RoutineAnalyzer
	config   *config.DomainConfig
	logger   *zap.Logger
}

// NewRoutineQueryHandler creates a new routine query handler
func NewRoutineQueryHandler(
	builder *services.RoutineBuilder,
	analyzer *services.RoutineAnalyzer,
	cfg *config.DomainConfig,
	logger *zap.Logger,
) *RoutineQueryHandler {
	return &RoutineQueryHandler{
		builder:  builder,
		analyzer: analyzer,
		config:   cfg,
		logger:   logger,
	}
}

// BuildRoutine orders products into a routine and analyzes it
func (h *RoutineQueryHandler) BuildRoutine(ctx context.Context, query queries.BuildRoutineQuery) (*queries.RoutineResult, error) {
	if err := query.Validate(); err != nil {
		return nil, fmt.Errorf("invalid query: %w", err)
	}
	if err := h.checkProductLimit(len(query.Products)); err != nil {
		return nil, err
	}

	routineTime, err := parseRoutineTime(query.Time)
	if err != nil {
		return nil, err
	}
	profile, err := queries.OptionalProfile(query.Profile)
	if err != nil {
		return nil, err
	}

	routine, analysis := h.builder.BuildRoutine(queries.ToServiceProducts(query.Products), routineTime, profile)

	h.logger.Info("Routine built",
		zap.String("routineID", routine.ID().String()),
		zap.String("time", string(routineTime)),
		zap.Int("products", len(query.Products)),
		zap.Bool("valid", analysis.IsValid),
	)

	return toRoutineResult(routine, analysis), nil
}

// AnalyzeRoutine diagnoses an existing routine without reordering it
func (h *RoutineQueryHandler) AnalyzeRoutine(ctx context.Context, query queries.AnalyzeRoutineQuery) (*queries.RoutineResult, error) {
	if err := query.Validate(); err != nil {
		return nil, fmt.Errorf("invalid query: %w", err)
	}
	if err := h.checkProductLimit(len(query.Steps)); err != nil {
		return nil, err
	}

	routineTime, err := parseRoutineTime(query.Time)
	if err != nil {
		return nil, err
	}
	profile, err := queries.OptionalProfile(query.Profile)
	if err != nil {
		return nil, err
	}

	routine := aggregates.NewRoutine(routineTime, queries.ToRoutineSteps(query.Steps))
	analysis := h.builder.AnalyzeRoutine(routine, profile)

	return toRoutineResult(routine, analysis), nil
}

// SuggestRoutine proposes routine steps for a skin profile
func (h *RoutineQueryHandler) SuggestRoutine(ctx context.Context, query queries.SuggestRoutineQuery) (*queries.SuggestRoutineResult, error) {
	if err := query.Validate(); err != nil {
		return nil, fmt.Errorf("invalid query: %w", err)
	}

	routineTime, err := parseRoutineTime(query.Time)
	if err != nil {
		return nil, err
	}
	profile, err := query.Profile.ToProfile()
	if err != nil {
		return nil, err
	}

	budget := query.Budget
	if budget == "" {
		budget = h.config.DefaultBudget
	}

	return &queries.SuggestRoutineResult{
		Time:   string(routineTime),
		Budget: budget,
		Steps:  toStepSuggestions(h.builder.SuggestRoutine(profile, routineTime, budget)),
	}, nil
}

// CompareProducts checks whether two products can share a routine
func (h *RoutineQueryHandler) CompareProducts(ctx context.Context, query queries.CompareProductsQuery) (*queries.ComparisonResult, error) {
	if err := query.Validate(); err != nil {
		return nil, fmt.Errorf("invalid query: %w", err)
	}
	if err := checkIngredientLimit(len(query.ProductA)+len(query.ProductB), h.config); err != nil {
		return nil, err
	}

	comparison := h.analyzer.CompareProducts(query.ProductA, query.ProductB)
	return &queries.ComparisonResult{
		CanUseTogether:    comparison.CanUseTogether,
		Conflicts:         toPairFindings(comparison.Conflicts),
		Cautions:          toPairFindings(comparison.Cautions),
		Synergies:         toPairFindings(comparison.Synergies),
		WaitTimes:         toWaitTimes(comparison.WaitTimes),
		InsufficientInput: comparison.InsufficientInput,
		Recommendation:    comparison.Recommendation,
	}, nil
}

// AnalyzeIngredients breaks down one product's ingredient list
func (h *RoutineQueryHandler) AnalyzeIngredients(ctx context.Context, query queries.AnalyzeIngredientsQuery) (*queries.IngredientListResult, error) {
	if err := query.Validate(); err != nil {
		return nil, fmt.Errorf("invalid query: %w", err)
	}
	if err := checkIngredientLimit(len(query.Ingredients), h.config); err != nil {
		return nil, err
	}

	analysis := h.analyzer.AnalyzeIngredientList(query.Ingredients)
	return &queries.IngredientListResult{
		Identified:        toIdentified(analysis.Identified),
		Unrecognized:      nonNil(analysis.Unrecognized),
		Compatibility:     toCompatibilityResult(analysis.Compatibility),
		ConcernsAddressed: stringsOf(analysis.ConcernsAddressed),
		Summary:           analysis.Summary,
	}, nil
}

func (h *RoutineQueryHandler) checkProductLimit(count int) error {
	if count > h.config.MaxProductsPerRoutine {
		return pkgerrors.NewValidationError(
			fmt.Sprintf("too many products: %d given, at most %d allowed", count, h.config.MaxProductsPerRoutine),
		).WithCode("TOO_MANY_PRODUCTS")
	}
	return nil
}

func parseRoutineTime(raw string) (valueobjects.RoutineTime, error) {
	routineTime, err := valueobjects.ParseRoutineTime(raw)
	if err != nil {
		return "", pkgerrors.NewValidationError(err.Error())
	}
	return routineTime, nil
}
