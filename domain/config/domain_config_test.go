package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadDomainConfig(t *testing.T) {
	assert.Equal(t, DefaultDomainConfig(), LoadDomainConfig("production"))
	assert.Equal(t, DefaultDomainConfig(), LoadDomainConfig(""))

	dev := LoadDomainConfig("development")
	assert.Equal(t, 10, dev.MaxFuzzyResults)
	assert.Equal(t, 200, dev.MaxIngredientsPerQuery)

	for _, env := range []string{"production", "development", "staging"} {
		assert.NoError(t, LoadDomainConfig(env).Validate(), env)
	}
}

func TestTreatmentLimit(t *testing.T) {
	cfg := DefaultDomainConfig()

	assert.Equal(t, 2, cfg.TreatmentLimit(BudgetMinimal))
	assert.Equal(t, 5, cfg.TreatmentLimit(BudgetModerate))
	assert.Equal(t, 5, cfg.TreatmentLimit(BudgetComprehensive))
	assert.Equal(t, 5, cfg.TreatmentLimit("extravagant"))

	t.Run("never exceeds the candidate window", func(t *testing.T) {
		cfg := DefaultDomainConfig()
		cfg.TreatmentBudgets[BudgetComprehensive] = 9
		assert.Equal(t, cfg.TreatmentCandidates, cfg.TreatmentLimit(BudgetComprehensive))
	})
}

func TestDomainConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*DomainConfig)
	}{
		{"order out of range", func(c *DomainConfig) { c.DefaultApplicationOrder = 11 }},
		{"zero threshold", func(c *DomainConfig) { c.FuzzyMatchThreshold = 0 }},
		{"resolve threshold below search", func(c *DomainConfig) { c.ResolveMatchThreshold = 0.5 }},
		{"resolve threshold above one", func(c *DomainConfig) { c.ResolveMatchThreshold = 1.2 }},
		{"no treatment candidates", func(c *DomainConfig) { c.TreatmentCandidates = 0 }},
		{"no fuzzy results", func(c *DomainConfig) { c.MaxFuzzyResults = 0 }},
		{"unknown default budget", func(c *DomainConfig) { c.DefaultBudget = "lavish" }},
		{"negative budget", func(c *DomainConfig) { c.TreatmentBudgets[BudgetMinimal] = -1 }},
		{"single ingredient queries", func(c *DomainConfig) { c.MaxIngredientsPerQuery = 1 }},
		{"no products", func(c *DomainConfig) { c.MaxProductsPerRoutine = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultDomainConfig()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
