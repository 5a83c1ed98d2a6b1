package advisor

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"skincare-backend/domain/core/valueobjects"
	"skincare-backend/domain/services"
	"skincare-backend/infrastructure/catalog"
)

func newTestAdvisor(t *testing.T) *Advisor {
	t.Helper()
	graph, err := catalog.NewLoader(zap.NewNop()).Load("")
	require.NoError(t, err)
	return NewAdvisor(services.NewKnowledgeGraphService(graph, nil, zap.NewNop()), zap.NewNop())
}

func TestClassify(t *testing.T) {
	tests := []struct {
		question string
		intent   Intent
		terms    []string
	}{
		{"Can I use retinol with vitamin C?", IntentCompatibility, []string{"retinol", "vitamin c?"}},
		{"can i mix AHA and BHA", IntentCompatibility, []string{"aha", "bha"}},
		{"Is niacinamide compatible with vitamin c", IntentCompatibility, []string{"niacinamide", "vitamin c"}},
		{"retinol and peptides together?", IntentCompatibility, []string{"retinol", "peptides"}},
		{"What is bakuchiol?", IntentIngredientInfo, []string{"bakuchiol?"}},
		{"How does tretinoin work", IntentIngredientInfo, []string{"tretinoin"}},
		{"What should I use for acne?", IntentConcernAdvice, []string{"acne?"}},
		{"Can you recommend something for dark spots", IntentConcernAdvice, []string{"dark spots"}},
		{"What order should I apply retinol and vitamin c?", IntentRoutineHelp, []string{}},
		{"Which first, toner or serum?", IntentRoutineHelp, []string{}},
		{"hello there", IntentGeneral, nil},
		{"", IntentGeneral, nil},
	}

	for _, tt := range tests {
		t.Run(tt.question, func(t *testing.T) {
			intent, terms := Classify(tt.question)
			assert.Equal(t, tt.intent, intent)
			if tt.terms == nil {
				assert.Nil(t, terms)
			} else {
				assert.Equal(t, tt.terms, terms)
			}
		})
	}
}

func TestAskCompatibility(t *testing.T) {
	advisor := newTestAdvisor(t)

	t.Run("caution with wait", func(t *testing.T) {
		result := advisor.Ask("Can I use retinol with vitamin C?", nil)
		assert.Equal(t, IntentCompatibility, result.Intent)
		assert.Equal(t, 0.9, result.Confidence)
		assert.True(t, strings.HasPrefix(result.Answer, "Retinol and Vitamin C can be used together with caution."))
		assert.Contains(t, result.Answer, "Wait 20 minutes between applying them.")
		assert.Equal(t, []string{"Ingredient: Retinol", "Ingredient: Vitamin C"}, result.Sources)
		assert.Equal(t, []string{
			"What can I use instead of Retinol?",
			"What order should I apply Retinol and Vitamin C?",
		}, result.FollowUps)
		assert.NotEqual(t, uuid.Nil, result.ID)
	})

	t.Run("synergy is highlighted", func(t *testing.T) {
		result := advisor.Ask("Is retinol compatible with niacinamide?", nil)
		assert.True(t, strings.HasSuffix(result.Answer, "\n\n✨ These ingredients actually work well together!"))
		assert.Equal(t, []string{"What order should I apply Retinol and Niacinamide?"}, result.FollowUps)
	})

	t.Run("fuzzy names resolve", func(t *testing.T) {
		result := advisor.Ask("can i mix retinl and glycolic acid", nil)
		assert.Equal(t, 0.9, result.Confidence)
		assert.True(t, strings.HasPrefix(result.Answer, "⚠️ Retinol and Glycolic Acid should not be used together."))
	})

	t.Run("unknown ingredient", func(t *testing.T) {
		result := advisor.Ask("Can I use retinol with zzzz?", nil)
		assert.Equal(t, 0.3, result.Confidence)
		assert.Contains(t, result.Answer, "'zzzz'")
		assert.Equal(t, []string{"What is zzzz?"}, result.FollowUps)
	})

	t.Run("same ingredient twice", func(t *testing.T) {
		result := advisor.Ask("Can I use retinol with vitamin A?", nil)
		assert.Equal(t, IntentCompatibility, result.Intent)
		assert.Contains(t, result.Answer, "are both Retinol")
	})
}

func TestAskIngredientInfo(t *testing.T) {
	advisor := newTestAdvisor(t)

	t.Run("fact sheet", func(t *testing.T) {
		result := advisor.Ask("What is niacinamide?", nil)
		assert.Equal(t, IntentIngredientInfo, result.Intent)
		assert.Equal(t, 0.95, result.Confidence)
		assert.True(t, strings.HasPrefix(result.Answer, "## Niacinamide\n"))
		assert.Contains(t, result.Answer, "**Category:** Serum Water")
		assert.Contains(t, result.Answer, "**Good for:** Acne, Pores, Oiliness, Redness, Hyperpigmentation")
		assert.NotContains(t, result.Answer, "**Best used:**")
		assert.Equal(t, []string{"Ingredient database: Niacinamide"}, result.Sources)
		assert.Equal(t, []string{
			"Can I use Niacinamide with retinol?",
			"Can I use Niacinamide with Glycolic Acid?",
			"Can I use Niacinamide with Vitamin C?",
		}, result.FollowUps)
	})

	t.Run("restrictions are listed", func(t *testing.T) {
		result := advisor.Ask("tell me about Vitamin A", nil)
		assert.Contains(t, result.Answer, "## Retinol")
		assert.Contains(t, result.Answer, "**Use with caution if you have:** Sensitive, Dry skin")
		assert.Contains(t, result.Answer, "**Best used:** PM only")
		assert.Equal(t, "Can I use Retinol with niacinamide?", result.FollowUps[0])
		assert.LessOrEqual(t, len(result.FollowUps), 3)
	})

	t.Run("unknown", func(t *testing.T) {
		result := advisor.Ask("What is xyzzy?", nil)
		assert.Equal(t, 0.3, result.Confidence)
		assert.Contains(t, result.Answer, "'xyzzy'")
	})
}

func TestAskConcernAdvice(t *testing.T) {
	advisor := newTestAdvisor(t)

	t.Run("synonym maps to concern", func(t *testing.T) {
		result := advisor.Ask("What should I use for dark spots?", nil)
		assert.Equal(t, IntentConcernAdvice, result.Intent)
		assert.Equal(t, 0.85, result.Confidence)
		assert.True(t, strings.HasPrefix(result.Answer, "## Recommended ingredients for hyperpigmentation:\n"))
		listed := 0
		for _, line := range strings.Split(result.Answer, "\n") {
			if strings.HasPrefix(line, "**") {
				listed++
			}
		}
		assert.Equal(t, maxConcernRecommendations, listed)
		assert.Equal(t, []string{"Concern: hyperpigmentation"}, result.Sources)
		assert.Equal(t, []string{
			"Can I use Niacinamide with Vitamin C?",
			"What is Niacinamide?",
			"Build me a routine",
		}, result.FollowUps)
		assert.NotContains(t, result.Answer, "Since you have")
	})

	t.Run("sensitive profile gets a warning", func(t *testing.T) {
		profile := valueobjects.NewSkinProfile(valueobjects.SkinTypeDry)
		result := advisor.Ask("help with wrinkles", &profile)
		assert.Contains(t, result.Answer, "## Recommended ingredients for aging:")
		assert.Contains(t, result.Answer, "⚠️ Since you have dry skin, start with gentler options and patch test first.")
	})

	t.Run("unmapped concern", func(t *testing.T) {
		result := advisor.Ask("What should I use for my elbows?", nil)
		assert.Equal(t, 0.4, result.Confidence)
		assert.Contains(t, result.Answer, "'my elbows'")
	})
}

func TestAskRoutineHelp(t *testing.T) {
	advisor := newTestAdvisor(t)

	result := advisor.Ask("What order should I apply my products?", nil)
	assert.Equal(t, IntentRoutineHelp, result.Intent)
	assert.Equal(t, 0.95, result.Confidence)
	assert.Equal(t, routineGuide, result.Answer)
	assert.Len(t, result.FollowUps, 3)
}

func TestAskGeneral(t *testing.T) {
	advisor := newTestAdvisor(t)

	t.Run("one mention gives a fact sheet", func(t *testing.T) {
		result := advisor.Ask("I love niacinamide", nil)
		assert.Equal(t, IntentIngredientInfo, result.Intent)
		assert.Contains(t, result.Answer, "## Niacinamide")
	})

	t.Run("two mentions give a compatibility answer", func(t *testing.T) {
		result := advisor.Ask("retinol vs tretinoin", nil)
		assert.Equal(t, IntentCompatibility, result.Intent)
		assert.Contains(t, result.Answer, "should not be used together")
	})

	t.Run("nothing recognized", func(t *testing.T) {
		result := advisor.Ask("hello there", nil)
		assert.Equal(t, IntentGeneral, result.Intent)
		assert.Equal(t, 0.3, result.Confidence)
		assert.Equal(t, generalHelp, result.Answer)
		assert.Empty(t, result.Sources)
	})
}
