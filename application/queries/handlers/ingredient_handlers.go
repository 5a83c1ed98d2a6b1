package handlers

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"skincare-backend/application/queries"
	"skincare-backend/domain/config"
	"skincare-backend/domain/core/valueobjects"
	"skincare-backend/domain/services"
	pkgerrors "skincare-backend/pkg/errors"
)

// IngredientQueryHandler handles the read queries over the ingredient catalog
type IngredientQueryHandler struct {
	kg     *services.KnowledgeGraphService
	config *config.DomainConfig
	logger *zap.Logger
}

// NewIngredientQueryHandler creates a new ingredient query handler
func NewIngredientQueryHandler(
	kg *services.KnowledgeGraphService,
	cfg *config.DomainConfig,
	logger *zap.Logger,
) *IngredientQueryHandler {
	return &IngredientQueryHandler{
		kg:     kg,
		config: cfg,
		logger: logger,
	}
}

// ListIngredients returns the whole catalog, or the ingredients addressing
// one concern ranked by priority
func (h *IngredientQueryHandler) ListIngredients(ctx context.Context, query queries.ListIngredientsQuery) (*queries.ListIngredientsResult, error) {
	if err := query.Validate(); err != nil {
		return nil, fmt.Errorf("invalid query: %w", err)
	}

	ingredients := h.kg.Ingredients()
	if query.Concern != "" {
		concern, err := valueobjects.ParseConcern(query.Concern)
		if err != nil {
			return nil, pkgerrors.NewValidationError(err.Error())
		}
		ingredients = h.kg.GetIngredientsByConcern(concern)
	}

	results := toIngredientResults(ingredients)
	return &queries.ListIngredientsResult{
		Ingredients: results,
		Total:       len(results),
	}, nil
}

// GetIngredient looks up one ingredient by id, name or alias
func (h *IngredientQueryHandler) GetIngredient(ctx context.Context, query queries.GetIngredientQuery) (*queries.IngredientResult, error) {
	if err := query.Validate(); err != nil {
		return nil, fmt.Errorf("invalid query: %w", err)
	}

	ingredient, ok := h.kg.GetIngredient(query.ID)
	if !ok {
		return nil, pkgerrors.NewNotFoundError("ingredient").
			WithDetails(map[string]interface{}{"ingredient": query.ID})
	}

	result := toIngredientResult(ingredient)
	return &result, nil
}

// SearchIngredients ranks the catalog by similarity to free text
func (h *IngredientQueryHandler) SearchIngredients(ctx context.Context, query queries.SearchIngredientsQuery) (*queries.SearchIngredientsResult, error) {
	if err := query.Validate(); err != nil {
		return nil, fmt.Errorf("invalid query: %w", err)
	}

	matches := h.kg.FindIngredient(query.Text)
	results := make([]queries.IngredientMatchResult, len(matches))
	for i, m := range matches {
		results[i] = queries.IngredientMatchResult{
			Ingredient: toIngredientResult(m.Ingredient),
			Score:      m.Score,
			MatchedKey: m.MatchedKey,
		}
	}

	h.logger.Debug("Searched ingredients",
		zap.String("text", query.Text),
		zap.Int("matches", len(results)),
	)

	return &queries.SearchIngredientsResult{
		Query:   strings.TrimSpace(query.Text),
		Matches: results,
	}, nil
}

// GetIngredientInteractions lists every interaction touching an ingredient
func (h *IngredientQueryHandler) GetIngredientInteractions(ctx context.Context, query queries.GetIngredientInteractionsQuery) (*queries.IngredientInteractionsResult, error) {
	if err := query.Validate(); err != nil {
		return nil, fmt.Errorf("invalid query: %w", err)
	}

	ingredient, ok := h.kg.GetIngredient(query.ID)
	if !ok {
		return nil, pkgerrors.NewNotFoundError("ingredient").
			WithDetails(map[string]interface{}{"ingredient": query.ID})
	}

	interactions := h.kg.GetAllInteractions(ingredient.ID().String())
	results := make([]queries.InteractionResult, len(interactions))
	for i, interaction := range interactions {
		results[i] = toInteractionResult(interaction)
	}

	return &queries.IngredientInteractionsResult{
		Ingredient:   ingredient.ID().String(),
		Interactions: results,
	}, nil
}

// ExplainInteraction renders the interaction between two ingredients as text
func (h *IngredientQueryHandler) ExplainInteraction(ctx context.Context, query queries.ExplainInteractionQuery) (*queries.ExplainInteractionResult, error) {
	if err := query.Validate(); err != nil {
		return nil, fmt.Errorf("invalid query: %w", err)
	}

	result := &queries.ExplainInteractionResult{
		A:           query.A,
		B:           query.B,
		Explanation: h.kg.ExplainInteraction(query.A, query.B),
	}
	if interaction, ok := h.kg.GetInteraction(query.A, query.B); ok {
		wire := toInteractionResult(interaction)
		result.Interaction = &wire
	}
	return result, nil
}

// CheckCompatibility checks every pair in a set of ingredients
func (h *IngredientQueryHandler) CheckCompatibility(ctx context.Context, query queries.CheckCompatibilityQuery) (*queries.CompatibilityResult, error) {
	if err := query.Validate(); err != nil {
		return nil, fmt.Errorf("invalid query: %w", err)
	}
	if err := checkIngredientLimit(len(query.Ingredients), h.config); err != nil {
		return nil, err
	}

	report := h.kg.CheckCompatibility(query.Ingredients)

	h.logger.Debug("Checked compatibility",
		zap.Strings("ingredients", report.Ingredients),
		zap.Bool("compatible", report.IsCompatible),
		zap.Int("conflicts", len(report.Conflicts)),
	)

	result := toCompatibilityResult(report)
	return &result, nil
}

func checkIngredientLimit(count int, cfg *config.DomainConfig) error {
	if count > cfg.MaxIngredientsPerQuery {
		return pkgerrors.NewValidationError(
			fmt.Sprintf("too many ingredients: %d given, at most %d allowed", count, cfg.MaxIngredientsPerQuery),
		).WithCode("TOO_MANY_INGREDIENTS")
	}
	return nil
}
