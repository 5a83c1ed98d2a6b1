package services

import (
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"

	"skincare-backend/domain/config"
	"skincare-backend/domain/core/aggregates"
	"skincare-backend/domain/core/entities"
	"skincare-backend/domain/core/valueobjects"
)

// Missing-essentials messages
const (
	MissingSunscreen   = "Sunscreen (SPF) — essential for morning routine"
	MissingMoisturizer = "Moisturizer — needed to maintain skin barrier"
)

// RetinoidSuggestion is offered for anti-aging PM routines without a retinoid
const RetinoidSuggestion = "Consider adding a retinoid for anti-aging (PM routine only)"

// Step suggestion priorities
const (
	StepPriorityEssential   = "essential"
	StepPriorityRecommended = "recommended"
)

// ProductInput is a product the caller wants placed in a routine
type ProductInput struct {
	Name        string
	Ingredients []string
}

// RoutineAnalysis is the diagnostic report for one routine.
// It is built once per call and never modified afterwards.
type RoutineAnalysis struct {
	RoutineID         string
	IsValid           bool
	Conflicts         []PairFinding
	Cautions          []PairFinding
	Synergies         []PairFinding
	WaitTimes         []WaitTime
	OrderingIssues    []string
	MissingEssentials []string
	Suggestions       []string
}

// StepSuggestion is one step of a suggested routine
type StepSuggestion struct {
	Step        string
	Why         string
	Ingredients []string
	Priority    string
	// Concerns lists the profile concerns a treatment step addresses
	Concerns []valueobjects.Concern
}

// RoutineBuilder orders products into routines and diagnoses them
type RoutineBuilder struct {
	kg     *KnowledgeGraphService
	config *config.DomainConfig
	logger *zap.Logger
}

// NewRoutineBuilder creates a new routine builder
func NewRoutineBuilder(kg *KnowledgeGraphService, cfg *config.DomainConfig, logger *zap.Logger) *RoutineBuilder {
	if cfg == nil {
		cfg = config.DefaultDomainConfig()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RoutineBuilder{
		kg:     kg,
		config: cfg,
		logger: logger,
	}
}

// BuildRoutine sorts products thin to thick, computes wait times between
// adjacent steps and flags time-of-day problems, then analyzes the result.
// Products restricted to the other time of day are noted, never moved.
func (b *RoutineBuilder) BuildRoutine(
	products []ProductInput,
	time valueobjects.RoutineTime,
	profile *valueobjects.SkinProfile,
) (*aggregates.Routine, *RoutineAnalysis) {
	sorted := make([]ProductInput, len(products))
	copy(sorted, products)
	orders := make(map[int]int, len(sorted))
	indexed := make([]int, len(sorted))
	for i := range sorted {
		indexed[i] = i
		orders[i] = b.effectiveOrder(sorted[i].Ingredients)
	}
	sort.SliceStable(indexed, func(i, j int) bool {
		return orders[indexed[i]] < orders[indexed[j]]
	})

	steps := make([]aggregates.RoutineStep, len(indexed))
	for pos, idx := range indexed {
		product := sorted[idx]

		wait := 0
		if pos+1 < len(indexed) {
			wait = b.waitBetween(product.Ingredients, sorted[indexed[pos+1]].Ingredients)
		}

		steps[pos] = aggregates.RoutineStep{
			Position:    pos + 1,
			ProductName: product.Name,
			Ingredients: product.Ingredients,
			WaitAfter:   wait,
			Notes:       b.timeNote(product.Ingredients, time),
		}
	}

	routine := aggregates.NewRoutine(time, steps)
	analysis := b.AnalyzeRoutine(routine, profile)

	b.logger.Debug("Built routine",
		zap.String("routineID", routine.ID().String()),
		zap.String("time", string(time)),
		zap.Int("steps", routine.StepCount()),
		zap.Bool("valid", analysis.IsValid),
	)

	return routine, analysis
}

// AnalyzeRoutine checks compatibility over all ingredients, layering order
// between every pair of steps, missing essentials, and derives suggestions.
// A routine is valid when it has no conflicts and no ordering issues.
func (b *RoutineBuilder) AnalyzeRoutine(routine *aggregates.Routine, profile *valueobjects.SkinProfile) *RoutineAnalysis {
	all := routine.AllIngredients()
	compatibility := b.kg.CheckCompatibility(all)
	ordering := b.checkOrdering(routine)

	analysis := &RoutineAnalysis{
		RoutineID:         routine.ID().String(),
		IsValid:           len(compatibility.Conflicts) == 0 && len(ordering) == 0,
		Conflicts:         compatibility.Conflicts,
		Cautions:          compatibility.Cautions,
		Synergies:         compatibility.Synergies,
		WaitTimes:         compatibility.WaitTimes,
		OrderingIssues:    ordering,
		MissingEssentials: b.checkMissingEssentials(routine.Time(), all),
		Suggestions:       b.generateSuggestions(routine.Time(), all, compatibility, profile),
	}

	b.logger.Debug("Analyzed routine",
		zap.String("routineID", analysis.RoutineID),
		zap.Bool("valid", analysis.IsValid),
		zap.Int("conflicts", len(analysis.Conflicts)),
		zap.Int("orderingIssues", len(analysis.OrderingIssues)),
		zap.Int("missingEssentials", len(analysis.MissingEssentials)),
	)

	return analysis
}

// SuggestRoutine proposes steps for a profile: a cleanser, treatments drawn
// from the first few time-appropriate recommendations with at most one per
// category, a moisturizer and, in the morning, sunscreen. The budget caps the
// number of treatments kept. Unknown budgets use the default budget.
func (b *RoutineBuilder) SuggestRoutine(
	profile valueobjects.SkinProfile,
	time valueobjects.RoutineTime,
	budget string,
) []StepSuggestion {
	suggestions := []StepSuggestion{{
		Step:        "Cleanser",
		Why:         "Removes dirt, oil, and products",
		Ingredients: b.firstOfCategories(valueobjects.CategoryCleanser),
		Priority:    StepPriorityEssential,
	}}

	var candidates []*entities.Ingredient
	for _, ingredient := range b.kg.GetRecommendedIngredients(profile) {
		if ingredient.AllowedIn(time) {
			candidates = append(candidates, ingredient)
		}
	}
	if len(candidates) > b.config.TreatmentCandidates {
		candidates = candidates[:b.config.TreatmentCandidates]
	}
	limit := b.config.TreatmentLimit(budget)
	treatments := 0

	// The essential steps already cover these categories
	used := map[valueobjects.Category]bool{
		valueobjects.CategoryCleanser:    true,
		valueobjects.CategoryMoisturizer: true,
		valueobjects.CategoryCeramide:    true,
		valueobjects.CategorySunscreen:   true,
	}
	for _, ingredient := range candidates {
		if treatments == limit {
			break
		}
		if used[ingredient.Category()] {
			continue
		}
		used[ingredient.Category()] = true
		treatments++

		var addressed []valueobjects.Concern
		var names []string
		for _, concern := range ingredient.Concerns() {
			if profile.HasConcern(concern) {
				addressed = append(addressed, concern)
				names = append(names, string(concern))
			}
		}

		suggestions = append(suggestions, StepSuggestion{
			Step:        "Treatment: " + ingredient.Name(),
			Why:         "Addresses: " + strings.Join(names, ", "),
			Ingredients: []string{ingredient.ID().String()},
			Priority:    StepPriorityRecommended,
			Concerns:    addressed,
		})
	}

	suggestions = append(suggestions, StepSuggestion{
		Step:        "Moisturizer",
		Why:         "Maintains skin barrier and hydration",
		Ingredients: b.firstOfCategories(valueobjects.CategoryCeramide, valueobjects.CategoryMoisturizer),
		Priority:    StepPriorityEssential,
	})

	if time == valueobjects.RoutineAM {
		suggestions = append(suggestions, StepSuggestion{
			Step:        "Sunscreen (SPF 30+)",
			Why:         "Protects from UV damage, the #1 anti-aging step",
			Ingredients: b.firstOfCategories(valueobjects.CategorySunscreen),
			Priority:    StepPriorityEssential,
		})
	}

	b.logger.Debug("Suggested routine",
		zap.String("time", string(time)),
		zap.String("budget", budget),
		zap.Int("steps", len(suggestions)),
	)

	return suggestions
}

// checkOrdering compares every pair of steps, not only neighbours
func (b *RoutineBuilder) checkOrdering(routine *aggregates.Routine) []string {
	steps := routine.Steps()
	orders := make([]int, len(steps))
	for i, step := range steps {
		orders[i] = b.effectiveOrder(step.Ingredients)
	}

	issues := []string{}
	for i := 0; i < len(steps); i++ {
		for j := i + 1; j < len(steps); j++ {
			if orders[i] > orders[j] {
				issues = append(issues, fmt.Sprintf("'%s' (step %d) should come after '%s' (step %d)",
					steps[i].ProductName, steps[i].Position, steps[j].ProductName, steps[j].Position))
			}
		}
	}
	return issues
}

func (b *RoutineBuilder) checkMissingEssentials(time valueobjects.RoutineTime, ingredients []string) []string {
	missing := []string{}
	if time == valueobjects.RoutineAM && !b.containsCategory(ingredients, valueobjects.CategorySunscreen) {
		missing = append(missing, MissingSunscreen)
	}
	if !b.containsCategory(ingredients, valueobjects.CategoryMoisturizer, valueobjects.CategoryCeramide) {
		missing = append(missing, MissingMoisturizer)
	}
	return missing
}

func (b *RoutineBuilder) generateSuggestions(
	time valueobjects.RoutineTime,
	ingredients []string,
	compatibility *CompatibilityReport,
	profile *valueobjects.SkinProfile,
) []string {
	suggestions := []string{}

	for _, wait := range compatibility.WaitTimes {
		suggestions = append(suggestions, fmt.Sprintf("Wait %d minutes between %s and %s", wait.Minutes, wait.NameA, wait.NameB))
	}

	for _, conflict := range compatibility.Conflicts {
		suggestions = append(suggestions, strings.TrimSpace(fmt.Sprintf("Consider removing one of: %s or %s. %s",
			conflict.NameA, conflict.NameB, conflict.Recommendation)))
	}

	if profile != nil && profile.HasConcern(valueobjects.ConcernAging) &&
		time == valueobjects.RoutinePM &&
		!b.containsCategory(ingredients, valueobjects.CategoryRetinoid) {
		suggestions = append(suggestions, RetinoidSuggestion)
	}

	return suggestions
}

// effectiveOrder is the lowest application order among resolvable
// ingredients, or the configured default when none resolve
func (b *RoutineBuilder) effectiveOrder(ingredients []string) int {
	order, found := 0, false
	for _, raw := range ingredients {
		ingredient, ok := b.kg.GetIngredient(raw)
		if !ok {
			continue
		}
		if !found || ingredient.ApplicationOrder() < order {
			order, found = ingredient.ApplicationOrder(), true
		}
	}
	if !found {
		return b.config.DefaultApplicationOrder
	}
	return order
}

// waitBetween is the longest wait over every pair across the two steps
func (b *RoutineBuilder) waitBetween(current, next []string) int {
	longest := 0
	for _, a := range current {
		for _, c := range next {
			if interaction, ok := b.kg.GetInteraction(a, c); ok && interaction.WaitMinutes() > longest {
				longest = interaction.WaitMinutes()
			}
		}
	}
	return longest
}

// timeNote warns about the first ingredient restricted to the other time of day
func (b *RoutineBuilder) timeNote(ingredients []string, time valueobjects.RoutineTime) string {
	for _, raw := range ingredients {
		ingredient, ok := b.kg.GetIngredient(raw)
		if !ok {
			continue
		}
		switch {
		case time == valueobjects.RoutineAM && ingredient.TimeOfDay() == valueobjects.TimePMOnly:
			return ingredient.Name() + " should only be used at night"
		case time == valueobjects.RoutinePM && ingredient.TimeOfDay() == valueobjects.TimeAMOnly:
			return ingredient.Name() + " should only be used in the morning"
		}
	}
	return ""
}

func (b *RoutineBuilder) containsCategory(ingredients []string, categories ...valueobjects.Category) bool {
	for _, raw := range ingredients {
		ingredient, ok := b.kg.GetIngredient(raw)
		if !ok {
			continue
		}
		for _, category := range categories {
			if ingredient.Category() == category {
				return true
			}
		}
	}
	return false
}

// firstOfCategories picks the first catalog ingredient of each category
func (b *RoutineBuilder) firstOfCategories(categories ...valueobjects.Category) []string {
	ids := make([]string, 0, len(categories))
	for _, category := range categories {
		if matches := b.kg.IngredientsByCategory(category); len(matches) > 0 {
			ids = append(ids, matches[0].ID().String())
		}
	}
	return ids
}
