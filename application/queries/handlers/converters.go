package handlers

import (
	"skincare-backend/application/queries"
	"skincare-backend/domain/core/aggregates"
	"skincare-backend/domain/core/entities"
	"skincare-backend/domain/services"
)

// The converters below always return non-nil slices so empty lists encode
// as [] rather than null.

func toIngredientResult(ingredient *entities.Ingredient) queries.IngredientResult {
	return queries.IngredientResult{
		ID:               ingredient.ID().String(),
		Name:             ingredient.Name(),
		Aliases:          nonNil(ingredient.Aliases()),
		Category:         string(ingredient.Category()),
		Description:      ingredient.Description(),
		HowItWorks:       ingredient.HowItWorks(),
		Concerns:         stringsOf(ingredient.Concerns()),
		CautionSkinTypes: stringsOf(ingredient.CautionSkinTypes()),
		UsageTips:        nonNil(ingredient.UsageTips()),
		TimeOfDay:        string(ingredient.TimeOfDay()),
		ApplicationOrder: ingredient.ApplicationOrder(),
		Priority:         ingredient.Priority(),
	}
}

func toIngredientResults(ingredients []*entities.Ingredient) []queries.IngredientResult {
	out := make([]queries.IngredientResult, len(ingredients))
	for i, ingredient := range ingredients {
		out[i] = toIngredientResult(ingredient)
	}
	return out
}

func toInteractionResult(interaction *entities.Interaction) queries.InteractionResult {
	return queries.InteractionResult{
		IngredientA:    interaction.IngredientA().String(),
		IngredientB:    interaction.IngredientB().String(),
		Kind:           string(interaction.Kind()),
		Explanation:    interaction.Explanation(),
		Recommendation: interaction.Recommendation(),
		WaitMinutes:    interaction.WaitMinutes(),
	}
}

func toPairFindings(findings []services.PairFinding) []queries.PairFindingResult {
	out := make([]queries.PairFindingResult, len(findings))
	for i, f := range findings {
		out[i] = queries.PairFindingResult{
			IngredientA:    f.IngredientA,
			IngredientB:    f.IngredientB,
			NameA:          f.NameA,
			NameB:          f.NameB,
			Kind:           string(f.Kind),
			Explanation:    f.Explanation,
			Recommendation: f.Recommendation,
			WaitMinutes:    f.WaitMinutes,
		}
	}
	return out
}

func toWaitTimes(waits []services.WaitTime) []queries.WaitTimeResult {
	out := make([]queries.WaitTimeResult, len(waits))
	for i, w := range waits {
		out[i] = queries.WaitTimeResult{
			IngredientA: w.IngredientA,
			IngredientB: w.IngredientB,
			NameA:       w.NameA,
			NameB:       w.NameB,
			Kind:        string(w.Kind),
			Minutes:     w.Minutes,
		}
	}
	return out
}

func toCompatibilityResult(report *services.CompatibilityReport) queries.CompatibilityResult {
	return queries.CompatibilityResult{
		IsCompatible:      report.IsCompatible,
		Ingredients:       nonNil(report.Ingredients),
		Conflicts:         toPairFindings(report.Conflicts),
		Cautions:          toPairFindings(report.Cautions),
		Synergies:         toPairFindings(report.Synergies),
		WaitTimes:         toWaitTimes(report.WaitTimes),
		InsufficientInput: report.InsufficientInput,
	}
}

func toRoutineResult(routine *aggregates.Routine, analysis *services.RoutineAnalysis) *queries.RoutineResult {
	steps := routine.Steps()
	stepResults := make([]queries.RoutineStepResult, len(steps))
	for i, step := range steps {
		stepResults[i] = queries.RoutineStepResult{
			Position:    step.Position,
			ProductName: step.ProductName,
			Ingredients: nonNil(step.Ingredients),
			WaitAfter:   step.WaitAfter,
			Notes:       step.Notes,
		}
	}

	return &queries.RoutineResult{
		ID:    routine.ID().String(),
		Time:  string(routine.Time()),
		Steps: stepResults,
		Analysis: queries.RoutineAnalysisResult{
			RoutineID:         analysis.RoutineID,
			IsValid:           analysis.IsValid,
			Conflicts:         toPairFindings(analysis.Conflicts),
			Cautions:          toPairFindings(analysis.Cautions),
			Synergies:         toPairFindings(analysis.Synergies),
			WaitTimes:         toWaitTimes(analysis.WaitTimes),
			OrderingIssues:    nonNil(analysis.OrderingIssues),
			MissingEssentials: nonNil(analysis.MissingEssentials),
			Suggestions:       nonNil(analysis.Suggestions),
		},
	}
}

func toStepSuggestions(suggestions []services.StepSuggestion) []queries.StepSuggestionResult {
	out := make([]queries.StepSuggestionResult, len(suggestions))
	for i, s := range suggestions {
		out[i] = queries.StepSuggestionResult{
			Step:        s.Step,
			Why:         s.Why,
			Ingredients: nonNil(s.Ingredients),
			Priority:    s.Priority,
			Concerns:    stringsOf(s.Concerns),
		}
	}
	return out
}

func toIdentified(identified []services.IdentifiedIngredient) []queries.IdentifiedIngredientResult {
	out := make([]queries.IdentifiedIngredientResult, len(identified))
	for i, id := range identified {
		out[i] = queries.IdentifiedIngredientResult{
			Input:      id.Input,
			ID:         id.ID,
			Name:       id.Name,
			Category:   string(id.Category),
			Concerns:   stringsOf(id.Concerns),
			CautionFor: stringsOf(id.CautionFor),
			Fuzzy:      id.Fuzzy,
		}
	}
	return out
}

func stringsOf[T ~string](values []T) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = string(v)
	}
	return out
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
