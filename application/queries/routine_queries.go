package queries

import (
	"strings"

	pkgerrors "skincare-backend/pkg/errors"
)

// BuildRoutineQuery orders products into a routine and analyzes it
type BuildRoutineQuery struct {
	Time     string         `json:"time" yaml:"time" validate:"required,oneof=AM PM am pm morning evening night"`
	Products []ProductInput `json:"products" yaml:"products" validate:"required,min=1,dive"`
	Profile  *ProfileInput  `json:"profile,omitempty" yaml:"profile"`
}

// Validate validates the query
func (q BuildRoutineQuery) Validate() error {
	return validate(q)
}

// AnalyzeRoutineQuery diagnoses an existing routine without reordering it
type AnalyzeRoutineQuery struct {
	Time    string        `json:"time" yaml:"time" validate:"required,oneof=AM PM am pm morning evening night"`
	Steps   []StepInput   `json:"steps" yaml:"steps" validate:"required,min=1,dive"`
	Profile *ProfileInput `json:"profile,omitempty" yaml:"profile"`
}

// Validate validates the query
func (q AnalyzeRoutineQuery) Validate() error {
	return validate(q)
}

// SuggestRoutineQuery proposes routine steps for a profile
type SuggestRoutineQuery struct {
	Profile ProfileInput `json:"profile" yaml:"profile"`
	Time    string       `json:"time" yaml:"time" validate:"required,oneof=AM PM am pm morning evening night"`
	Budget  string       `json:"budget,omitempty" yaml:"budget" validate:"omitempty,oneof=minimal moderate comprehensive"`
}

// Validate validates the query
func (q SuggestRoutineQuery) Validate() error {
	return validate(q)
}

// Cacheable marks the query as cacheable
func (q SuggestRoutineQuery) Cacheable() bool { return true }

// CompareProductsQuery checks whether two products can share a routine
type CompareProductsQuery struct {
	ProductA []string `json:"productA" yaml:"product_a" validate:"dive,required"`
	ProductB []string `json:"productB" yaml:"product_b" validate:"dive,required"`
}

// Validate validates the query
func (q CompareProductsQuery) Validate() error {
	return validate(q)
}

// Cacheable marks the query as cacheable
func (q CompareProductsQuery) Cacheable() bool { return true }

// AnalyzeIngredientsQuery breaks down one product's ingredient list
type AnalyzeIngredientsQuery struct {
	Ingredients []string `json:"ingredients" yaml:"ingredients" validate:"required,min=1"`
}

// Validate validates the query
func (q AnalyzeIngredientsQuery) Validate() error {
	if err := validate(q); err != nil {
		return err
	}
	for _, name := range q.Ingredients {
		if strings.TrimSpace(name) != "" {
			return nil
		}
	}
	return pkgerrors.NewValidationError("ingredients must contain at least one name")
}

// Cacheable marks the query as cacheable
func (q AnalyzeIngredientsQuery) Cacheable() bool { return true }

// RoutineStepResult is one step of a built routine
type RoutineStepResult struct {
	Position    int      `json:"position"`
	ProductName string   `json:"productName"`
	Ingredients []string `json:"ingredients"`
	WaitAfter   int      `json:"waitAfter"`
	Notes       string   `json:"notes,omitempty"`
}

// RoutineAnalysisResult is the diagnostic report for one routine
type RoutineAnalysisResult struct {
	RoutineID         string              `json:"routineId"`
	IsValid           bool                `json:"isValid"`
	Conflicts         []PairFindingResult `json:"conflicts"`
	Cautions          []PairFindingResult `json:"cautions"`
	Synergies         []PairFindingResult `json:"synergies"`
	WaitTimes         []WaitTimeResult    `json:"waitTimes"`
	OrderingIssues    []string            `json:"orderingIssues"`
	MissingEssentials []string            `json:"missingEssentials"`
	Suggestions       []string            `json:"suggestions"`
}

// RoutineResult is the result of BuildRoutineQuery and AnalyzeRoutineQuery
type RoutineResult struct {
	ID       string                `json:"id"`
	Time     string                `json:"time"`
	Steps    []RoutineStepResult   `json:"steps"`
	Analysis RoutineAnalysisResult `json:"analysis"`
}

// StepSuggestionResult is one suggested step
type StepSuggestionResult struct {
	Step        string   `json:"step"`
	Why         string   `json:"why"`
	Ingredients []string `json:"ingredients"`
	Priority    string   `json:"priority"`
	Concerns    []string `json:"concerns,omitempty"`
}

// SuggestRoutineResult is the result of SuggestRoutineQuery
type SuggestRoutineResult struct {
	Time   string                 `json:"time"`
	Budget string                 `json:"budget"`
	Steps  []StepSuggestionResult `json:"steps"`
}

// ComparisonResult is the result of CompareProductsQuery
type ComparisonResult struct {
	CanUseTogether    bool                `json:"canUseTogether"`
	Conflicts         []PairFindingResult `json:"conflicts"`
	Cautions          []PairFindingResult `json:"cautions"`
	Synergies         []PairFindingResult `json:"synergies"`
	WaitTimes         []WaitTimeResult    `json:"waitTimes"`
	InsufficientInput bool                `json:"insufficientInput,omitempty"`
	Recommendation    string              `json:"recommendation"`
}

// IdentifiedIngredientResult is an input name resolved to a catalog entry
type IdentifiedIngredientResult struct {
	Input      string   `json:"input"`
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Category   string   `json:"category"`
	Concerns   []string `json:"concerns"`
	CautionFor []string `json:"cautionFor"`
	Fuzzy      bool     `json:"fuzzy,omitempty"`
}

// IngredientListResult is the result of AnalyzeIngredientsQuery
type IngredientListResult struct {
	Identified        []IdentifiedIngredientResult `json:"identified"`
	Unrecognized      []string                     `json:"unrecognized"`
	Compatibility     CompatibilityResult          `json:"compatibility"`
	ConcernsAddressed []string                     `json:"concernsAddressed"`
	Summary           string                       `json:"summary"`
}
