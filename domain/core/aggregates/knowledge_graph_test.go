package aggregates

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skincare-backend/domain/core/entities"
	"skincare-backend/domain/core/valueobjects"
	pkgerrors "skincare-backend/pkg/errors"
)

func mustIngredient(t *testing.T, id, name string, category valueobjects.Category, aliases ...string) *entities.Ingredient {
	t.Helper()
	ingredient, err := entities.NewIngredient(entities.IngredientParams{
		ID:       valueobjects.MustIngredientID(id),
		Name:     name,
		Aliases:  aliases,
		Category: category,
	})
	require.NoError(t, err)
	return ingredient
}

func mustInteraction(t *testing.T, a, b string, kind valueobjects.InteractionKind) *entities.Interaction {
	t.Helper()
	interaction, err := entities.NewInteraction(
		valueobjects.MustIngredientID(a),
		valueobjects.MustIngredientID(b),
		kind, "", "", 0,
	)
	require.NoError(t, err)
	return interaction
}

func TestNewKnowledgeGraph(t *testing.T) {
	retinol := mustIngredient(t, "retinol", "Retinol", valueobjects.CategoryRetinoid, "Vitamin A")
	vitaminC := mustIngredient(t, "vitamin_c", "Vitamin C", valueobjects.CategorySerumActive, "ascorbic acid")
	niacinamide := mustIngredient(t, "niacinamide", "Niacinamide", valueobjects.CategorySerumWater)

	graph, err := NewKnowledgeGraph(
		[]*entities.Ingredient{retinol, vitaminC, niacinamide},
		[]*entities.Interaction{
			mustInteraction(t, "retinol", "vitamin_c", valueobjects.InteractionCaution),
			mustInteraction(t, "niacinamide", "retinol", valueobjects.InteractionSynergy),
		},
	)
	require.NoError(t, err)

	assert.Equal(t, 3, graph.IngredientCount())
	assert.Equal(t, 2, graph.InteractionCount())
	assert.Equal(t, 1, graph.Position(valueobjects.MustIngredientID("vitamin_c")))
	assert.Equal(t, -1, graph.Position(valueobjects.MustIngredientID("spf")))

	found, ok := graph.Lookup("  VITAMIN a ")
	require.True(t, ok)
	assert.Equal(t, retinol, found)

	_, ok = graph.Lookup("vitamin")
	assert.False(t, ok)

	ab, ok := graph.Interaction(retinol.ID(), vitaminC.ID())
	require.True(t, ok)
	ba, ok := graph.Interaction(vitaminC.ID(), retinol.ID())
	require.True(t, ok)
	assert.Same(t, ab, ba)

	touching := graph.InteractionsOf(retinol.ID())
	require.Len(t, touching, 2)
	assert.Equal(t, valueobjects.InteractionCaution, touching[0].Kind())
	assert.Equal(t, valueobjects.InteractionSynergy, touching[1].Kind())
}

func TestNewKnowledgeGraphRejectsBadData(t *testing.T) {
	retinol := mustIngredient(t, "retinol", "Retinol", valueobjects.CategoryRetinoid, "vitamin a")
	vitaminC := mustIngredient(t, "vitamin_c", "Vitamin C", valueobjects.CategorySerumActive)

	tests := []struct {
		name         string
		ingredients  []*entities.Ingredient
		interactions []*entities.Interaction
		wantProblem  string
	}{
		{
			name:        "duplicate id",
			ingredients: []*entities.Ingredient{retinol, mustIngredient(t, "retinol", "Other", valueobjects.CategoryToner)},
			wantProblem: "duplicate ingredient id retinol",
		},
		{
			name: "shared alias",
			ingredients: []*entities.Ingredient{
				retinol,
				mustIngredient(t, "retinal", "Retinal", valueobjects.CategoryRetinoid, "Vitamin A"),
			},
			wantProblem: `lookup key "vitamin a" already used by retinol`,
		},
		{
			name:         "unknown endpoint",
			ingredients:  []*entities.Ingredient{retinol},
			interactions: []*entities.Interaction{mustInteraction(t, "retinol", "vitamin_c", valueobjects.InteractionCaution)},
			wantProblem:  "unknown ingredient vitamin_c",
		},
		{
			name:        "duplicate unordered pair",
			ingredients: []*entities.Ingredient{retinol, vitaminC},
			interactions: []*entities.Interaction{
				mustInteraction(t, "retinol", "vitamin_c", valueobjects.InteractionCaution),
				mustInteraction(t, "vitamin_c", "retinol", valueobjects.InteractionConflict),
			},
			wantProblem: "duplicate interaction for pair retinol|vitamin_c",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			graph, err := NewKnowledgeGraph(tt.ingredients, tt.interactions)
			require.Error(t, err)
			assert.Nil(t, graph)
			assert.True(t, pkgerrors.IsCatalog(err))

			appErr := pkgerrors.GetAppError(err)
			require.NotNil(t, appErr)
			problems, ok := appErr.Details["problems"].([]string)
			require.True(t, ok)
			assert.Contains(t, strings.Join(problems, "\n"), tt.wantProblem)
		})
	}
}
