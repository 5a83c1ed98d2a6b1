package services

import (
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"

	"skincare-backend/domain/core/valueobjects"
)

// Combination advice returned by CompareProducts
const (
	AdviceConflict     = "These products should NOT be used together in the same routine."
	AdviceCaution      = "These can be used together with caution. Consider using on alternate days if irritation occurs."
	AdviceSynergy      = "Great combination! These products complement each other well."
	AdviceNeutral      = "No known interactions. Should be safe to use together."
	AdviceInsufficient = "Not enough ingredients to compare. Each product needs at least one ingredient, and together they need two different ones."
)

// NoNotableInteractions is the summary for lists with nothing to report
const NoNotableInteractions = "No notable interactions found."

// IdentifiedIngredient is an input name resolved to a catalog entry
type IdentifiedIngredient struct {
	Input    string
	ID       string
	Name     string
	Category valueobjects.Category
	Concerns []valueobjects.Concern
	// CautionFor lists the skin types that should be careful with it
	CautionFor []valueobjects.SkinType
	// Fuzzy is set when the name only resolved through similarity search
	Fuzzy bool
}

// IngredientListAnalysis breaks down a product's ingredient list
type IngredientListAnalysis struct {
	Identified        []IdentifiedIngredient
	Unrecognized      []string
	Compatibility     *CompatibilityReport
	ConcernsAddressed []valueobjects.Concern
	Summary           string
}

// ProductComparison says whether two products can share a routine
type ProductComparison struct {
	CanUseTogether    bool
	Conflicts         []PairFinding
	Cautions          []PairFinding
	Synergies         []PairFinding
	WaitTimes         []WaitTime
	InsufficientInput bool
	Recommendation    string
}

// RoutineAnalyzer is a diagnostic facade over the knowledge graph for
// ingredient lists and product pairs
type RoutineAnalyzer struct {
	kg      *KnowledgeGraphService
	builder *RoutineBuilder
	logger  *zap.Logger
}

// NewRoutineAnalyzer creates a new routine analyzer
func NewRoutineAnalyzer(kg *KnowledgeGraphService, builder *RoutineBuilder, logger *zap.Logger) *RoutineAnalyzer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RoutineAnalyzer{
		kg:      kg,
		builder: builder,
		logger:  logger,
	}
}

// Builder returns the routine builder the analyzer delegates to
func (a *RoutineAnalyzer) Builder() *RoutineBuilder {
	return a.builder
}

// AnalyzeIngredientList resolves each name, exactly or by a close fuzzy
// match, and checks the identified ingredients against each other. Names
// with no close match are reported as unrecognized.
func (a *RoutineAnalyzer) AnalyzeIngredientList(names []string) *IngredientListAnalysis {
	analysis := &IngredientListAnalysis{
		Identified:   []IdentifiedIngredient{},
		Unrecognized: []string{},
	}

	ids := make([]string, 0, len(names))
	concerns := make(map[valueobjects.Concern]bool)
	for _, name := range names {
		if strings.TrimSpace(name) == "" {
			continue
		}

		ingredient, exact, ok := a.kg.ResolveIngredient(name)
		if !ok {
			analysis.Unrecognized = append(analysis.Unrecognized, name)
			continue
		}

		analysis.Identified = append(analysis.Identified, IdentifiedIngredient{
			Input:      name,
			ID:         ingredient.ID().String(),
			Name:       ingredient.Name(),
			Category:   ingredient.Category(),
			Concerns:   ingredient.Concerns(),
			CautionFor: ingredient.CautionSkinTypes(),
			Fuzzy:      !exact,
		})
		ids = append(ids, ingredient.ID().String())
		for _, c := range ingredient.Concerns() {
			concerns[c] = true
		}
	}

	analysis.Compatibility = a.kg.CheckCompatibility(ids)

	analysis.ConcernsAddressed = make([]valueobjects.Concern, 0, len(concerns))
	for c := range concerns {
		analysis.ConcernsAddressed = append(analysis.ConcernsAddressed, c)
	}
	sort.Slice(analysis.ConcernsAddressed, func(i, j int) bool {
		return analysis.ConcernsAddressed[i] < analysis.ConcernsAddressed[j]
	})

	analysis.Summary = summarize(analysis.Compatibility, analysis.ConcernsAddressed)

	a.logger.Debug("Analyzed ingredient list",
		zap.Int("inputs", len(names)),
		zap.Int("identified", len(analysis.Identified)),
		zap.Int("unrecognized", len(analysis.Unrecognized)),
	)

	return analysis
}

func summarize(report *CompatibilityReport, concerns []valueobjects.Concern) string {
	var lines []string
	if n := len(report.Conflicts); n > 0 {
		lines = append(lines, fmt.Sprintf("⚠️ Found %d ingredient conflict(s)", n))
	}
	if n := len(report.Synergies); n > 0 {
		lines = append(lines, fmt.Sprintf("✨ Found %d beneficial combination(s)", n))
	}
	if len(concerns) > 0 {
		names := make([]string, len(concerns))
		for i, c := range concerns {
			names[i] = string(c)
		}
		lines = append(lines, "📋 This addresses: "+strings.Join(names, ", "))
	}
	if len(lines) == 0 {
		return NoNotableInteractions
	}
	return strings.Join(lines, "\n")
}

// CompareProducts checks the combined ingredients of two products and maps
// the outcome to advice: conflicts first, then cautions, then synergies
func (a *RoutineAnalyzer) CompareProducts(productA, productB []string) *ProductComparison {
	// a product with no ingredients leaves nothing to compare against,
	// whatever the other product holds
	var combined []string
	if hasIngredient(productA) && hasIngredient(productB) {
		combined = make([]string, 0, len(productA)+len(productB))
		combined = append(combined, productA...)
		combined = append(combined, productB...)
	}

	report := a.kg.CheckCompatibility(combined)

	comparison := &ProductComparison{
		CanUseTogether:    report.IsCompatible,
		Conflicts:         report.Conflicts,
		Cautions:          report.Cautions,
		Synergies:         report.Synergies,
		WaitTimes:         report.WaitTimes,
		InsufficientInput: report.InsufficientInput,
	}

	switch {
	case report.InsufficientInput:
		comparison.Recommendation = AdviceInsufficient
	case len(report.Conflicts) > 0:
		comparison.Recommendation = AdviceConflict
	case len(report.Cautions) > 0:
		comparison.Recommendation = AdviceCaution
	case len(report.Synergies) > 0:
		comparison.Recommendation = AdviceSynergy
	default:
		comparison.Recommendation = AdviceNeutral
	}

	return comparison
}

func hasIngredient(product []string) bool {
	for _, name := range product {
		if strings.TrimSpace(name) != "" {
			return true
		}
	}
	return false
}
