package queries

import (
	"strings"

	pkgerrors "skincare-backend/pkg/errors"
)

// ListIngredientsQuery lists the catalog, optionally only the ingredients
// addressing one concern ranked by priority
type ListIngredientsQuery struct {
	Concern string `json:"concern,omitempty" validate:"omitempty,oneof=acne aging hyperpigmentation dryness oiliness sensitivity redness dullness texture pores"`
}

// Validate validates the query
func (q ListIngredientsQuery) Validate() error {
	return validate(q)
}

// Cacheable marks the query as cacheable
func (q ListIngredientsQuery) Cacheable() bool { return true }

// GetIngredientQuery looks up one ingredient by id, name or alias
type GetIngredientQuery struct {
	ID string `json:"id"`
}

// Validate validates the query
func (q GetIngredientQuery) Validate() error {
	if strings.TrimSpace(q.ID) == "" {
		return pkgerrors.NewValidationError("ingredient ID is required")
	}
	return nil
}

// Cacheable marks the query as cacheable
func (q GetIngredientQuery) Cacheable() bool { return true }

// SearchIngredientsQuery ranks ingredients by similarity to free text
type SearchIngredientsQuery struct {
	Text string `json:"text"`
}

// Validate validates the query
func (q SearchIngredientsQuery) Validate() error {
	if strings.TrimSpace(q.Text) == "" {
		return pkgerrors.NewValidationError("search text is required")
	}
	return nil
}

// Cacheable marks the query as cacheable
func (q SearchIngredientsQuery) Cacheable() bool { return true }

// GetIngredientInteractionsQuery lists every interaction touching an ingredient
type GetIngredientInteractionsQuery struct {
	ID string `json:"id"`
}

// Validate validates the query
func (q GetIngredientInteractionsQuery) Validate() error {
	if strings.TrimSpace(q.ID) == "" {
		return pkgerrors.NewValidationError("ingredient ID is required")
	}
	return nil
}

// Cacheable marks the query as cacheable
func (q GetIngredientInteractionsQuery) Cacheable() bool { return true }

// ExplainInteractionQuery renders the interaction between two ingredients
type ExplainInteractionQuery struct {
	A string `json:"a" validate:"required"`
	B string `json:"b" validate:"required"`
}

// Validate validates the query
func (q ExplainInteractionQuery) Validate() error {
	return validate(q)
}

// Cacheable marks the query as cacheable
func (q ExplainInteractionQuery) Cacheable() bool { return true }

// CheckCompatibilityQuery checks every pair in a set of ingredients.
// Fewer than two distinct ingredients is answered, not rejected.
type CheckCompatibilityQuery struct {
	Ingredients []string `json:"ingredients" validate:"dive,required"`
}

// Validate validates the query
func (q CheckCompatibilityQuery) Validate() error {
	return validate(q)
}

// Cacheable marks the query as cacheable
func (q CheckCompatibilityQuery) Cacheable() bool { return true }

// IngredientResult is the wire form of a catalog entry
type IngredientResult struct {
	ID               string   `json:"id"`
	Name             string   `json:"name"`
	Aliases          []string `json:"aliases"`
	Category         string   `json:"category"`
	Description      string   `json:"description"`
	HowItWorks       string   `json:"howItWorks,omitempty"`
	Concerns         []string `json:"concerns"`
	CautionSkinTypes []string `json:"cautionSkinTypes"`
	UsageTips        []string `json:"usageTips"`
	TimeOfDay        string   `json:"timeOfDay"`
	ApplicationOrder int      `json:"applicationOrder"`
	Priority         int      `json:"priority"`
}

// ListIngredientsResult is the result of ListIngredientsQuery
type ListIngredientsResult struct {
	Ingredients []IngredientResult `json:"ingredients"`
	Total       int                `json:"total"`
}

// IngredientMatchResult is one fuzzy search hit
type IngredientMatchResult struct {
	Ingredient IngredientResult `json:"ingredient"`
	Score      float64          `json:"score"`
	MatchedKey string           `json:"matchedKey"`
}

// SearchIngredientsResult is the result of SearchIngredientsQuery
type SearchIngredientsResult struct {
	Query   string                  `json:"query"`
	Matches []IngredientMatchResult `json:"matches"`
}

// InteractionResult is the wire form of an interaction record
type InteractionResult struct {
	IngredientA    string `json:"ingredientA"`
	IngredientB    string `json:"ingredientB"`
	Kind           string `json:"kind"`
	Explanation    string `json:"explanation"`
	Recommendation string `json:"recommendation,omitempty"`
	WaitMinutes    int    `json:"waitMinutes,omitempty"`
}

// IngredientInteractionsResult is the result of GetIngredientInteractionsQuery
type IngredientInteractionsResult struct {
	Ingredient   string              `json:"ingredient"`
	Interactions []InteractionResult `json:"interactions"`
}

// ExplainInteractionResult is the result of ExplainInteractionQuery
type ExplainInteractionResult struct {
	A           string             `json:"a"`
	B           string             `json:"b"`
	Explanation string             `json:"explanation"`
	Interaction *InteractionResult `json:"interaction,omitempty"`
}

// PairFindingResult is one classified pair
type PairFindingResult struct {
	IngredientA    string `json:"ingredientA"`
	IngredientB    string `json:"ingredientB"`
	NameA          string `json:"nameA"`
	NameB          string `json:"nameB"`
	Kind           string `json:"kind"`
	Explanation    string `json:"explanation"`
	Recommendation string `json:"recommendation,omitempty"`
	WaitMinutes    int    `json:"waitMinutes,omitempty"`
}

// WaitTimeResult is a pair that needs a pause between applications
type WaitTimeResult struct {
	IngredientA string `json:"ingredientA"`
	IngredientB string `json:"ingredientB"`
	NameA       string `json:"nameA"`
	NameB       string `json:"nameB"`
	Kind        string `json:"kind"`
	Minutes     int    `json:"minutes"`
}

// CompatibilityResult is the result of CheckCompatibilityQuery
type CompatibilityResult struct {
	IsCompatible      bool                `json:"isCompatible"`
	Ingredients       []string            `json:"ingredients"`
	Conflicts         []PairFindingResult `json:"conflicts"`
	Cautions          []PairFindingResult `json:"cautions"`
	Synergies         []PairFindingResult `json:"synergies"`
	WaitTimes         []WaitTimeResult    `json:"waitTimes"`
	InsufficientInput bool                `json:"insufficientInput,omitempty"`
}
