package config

import (
	"fmt"
)

// Treatment budgets accepted by SuggestRoutine
const (
	BudgetMinimal       = "minimal"
	BudgetModerate      = "moderate"
	BudgetComprehensive = "comprehensive"
)

// DomainConfig holds the tunable rules of the routine engine
type DomainConfig struct {
	// Layering
	DefaultApplicationOrder int

	// Fuzzy lookup. Search lists anything above FuzzyMatchThreshold;
	// resolving a whole name to one ingredient needs ResolveMatchThreshold.
	FuzzyMatchThreshold   float64
	ResolveMatchThreshold float64
	MaxFuzzyResults       int

	// Routine suggestion. TreatmentCandidates recommendations are considered
	// and a budget caps the treatments kept after category de-duplication.
	TreatmentCandidates int
	TreatmentBudgets    map[string]int
	DefaultBudget       string

	// Input limits for outer layers. Compatibility and ordering checks are
	// quadratic, so these bound the work of a single request.
	MaxIngredientsPerQuery int
	MaxProductsPerRoutine  int
}

// DefaultDomainConfig returns the default domain configuration
func DefaultDomainConfig() *DomainConfig {
	return &DomainConfig{
		DefaultApplicationOrder: 5,

		FuzzyMatchThreshold:   0.6,
		ResolveMatchThreshold: 0.8,
		MaxFuzzyResults:       5,

		TreatmentCandidates: 5,
		TreatmentBudgets: map[string]int{
			BudgetMinimal:       2,
			BudgetModerate:      5,
			BudgetComprehensive: 5,
		},
		DefaultBudget: BudgetModerate,

		MaxIngredientsPerQuery: 50,
		MaxProductsPerRoutine:  20,
	}
}

// ProductionDomainConfig returns production-specific configuration
func ProductionDomainConfig() *DomainConfig {
	return DefaultDomainConfig()
}

// DevelopmentDomainConfig returns development-specific configuration
func DevelopmentDomainConfig() *DomainConfig {
	config := DefaultDomainConfig()

	// More permissive for local experiments
	config.MaxFuzzyResults = 10
	config.MaxIngredientsPerQuery = 200
	config.MaxProductsPerRoutine = 50

	return config
}

// LoadDomainConfig loads domain configuration based on environment
func LoadDomainConfig(environment string) *DomainConfig {
	switch environment {
	case "production":
		return ProductionDomainConfig()
	case "development":
		return DevelopmentDomainConfig()
	default:
		return DefaultDomainConfig()
	}
}

// TreatmentLimit returns the most treatments a budget keeps, falling back to
// the default budget for unknown names. It never exceeds TreatmentCandidates.
func (c *DomainConfig) TreatmentLimit(budget string) int {
	n, ok := c.TreatmentBudgets[budget]
	if !ok {
		n = c.TreatmentBudgets[c.DefaultBudget]
	}
	return min(n, c.TreatmentCandidates)
}

// Validate checks if the configuration is valid
func (c *DomainConfig) Validate() error {
	if c.DefaultApplicationOrder < 1 || c.DefaultApplicationOrder > 10 {
		return fmt.Errorf("default application order %d out of range 1-10", c.DefaultApplicationOrder)
	}
	if c.FuzzyMatchThreshold <= 0 || c.FuzzyMatchThreshold > 1 {
		return fmt.Errorf("fuzzy match threshold %.2f must be in (0, 1]", c.FuzzyMatchThreshold)
	}
	if c.ResolveMatchThreshold < c.FuzzyMatchThreshold || c.ResolveMatchThreshold > 1 {
		return fmt.Errorf("resolve match threshold %.2f must be in [%.2f, 1]", c.ResolveMatchThreshold, c.FuzzyMatchThreshold)
	}
	if c.MaxFuzzyResults < 1 {
		return fmt.Errorf("max fuzzy results must be positive")
	}
	if c.TreatmentCandidates < 1 {
		return fmt.Errorf("treatment candidates must be positive")
	}
	if _, ok := c.TreatmentBudgets[c.DefaultBudget]; !ok {
		return fmt.Errorf("default budget %q has no treatment count", c.DefaultBudget)
	}
	for name, n := range c.TreatmentBudgets {
		if n < 0 {
			return fmt.Errorf("budget %q has negative treatment count", name)
		}
	}
	if c.MaxIngredientsPerQuery < 2 {
		return fmt.Errorf("max ingredients per query must allow at least one pair")
	}
	if c.MaxProductsPerRoutine < 1 {
		return fmt.Errorf("max products per routine must be positive")
	}
	return nil
}
