package services

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"skincare-backend/domain/config"
	"skincare-backend/domain/core/aggregates"
	"skincare-backend/domain/core/entities"
	"skincare-backend/domain/core/valueobjects"
)

// graphFixture builds small alternate catalogs for tests
type graphFixture struct {
	t            *testing.T
	ingredients  []*entities.Ingredient
	interactions []*entities.Interaction
}

func newGraphFixture(t *testing.T) *graphFixture {
	t.Helper()
	return &graphFixture{t: t}
}

func (f *graphFixture) ingredient(p entities.IngredientParams) *graphFixture {
	f.t.Helper()
	ingredient, err := entities.NewIngredient(p)
	require.NoError(f.t, err)
	f.ingredients = append(f.ingredients, ingredient)
	return f
}

func (f *graphFixture) interaction(a, b string, kind valueobjects.InteractionKind, explanation, recommendation string, wait int) *graphFixture {
	f.t.Helper()
	interaction, err := entities.NewInteraction(
		valueobjects.MustIngredientID(a),
		valueobjects.MustIngredientID(b),
		kind, explanation, recommendation, wait,
	)
	require.NoError(f.t, err)
	f.interactions = append(f.interactions, interaction)
	return f
}

func (f *graphFixture) graph() *aggregates.KnowledgeGraph {
	f.t.Helper()
	graph, err := aggregates.NewKnowledgeGraph(f.ingredients, f.interactions)
	require.NoError(f.t, err)
	return graph
}

func (f *graphFixture) service(cfg *config.DomainConfig) *KnowledgeGraphService {
	f.t.Helper()
	return NewKnowledgeGraphService(f.graph(), cfg, zap.NewNop())
}

func id(s string) valueobjects.IngredientID {
	return valueobjects.MustIngredientID(s)
}

// standardFixture is a compact catalog covering every rule the engine applies
func standardFixture(t *testing.T) *graphFixture {
	t.Helper()
	return newGraphFixture(t).
		ingredient(entities.IngredientParams{
			ID: id("gentle_cleanser"), Name: "Gentle Cleanser", Category: valueobjects.CategoryCleanser,
			Concerns: []valueobjects.Concern{valueobjects.ConcernSensitivity}, Priority: 1,
		}).
		ingredient(entities.IngredientParams{
			ID: id("retinol"), Name: "Retinol", Aliases: []string{"Vitamin A"}, Category: valueobjects.CategoryRetinoid,
			Concerns:         []valueobjects.Concern{valueobjects.ConcernAging, valueobjects.ConcernAcne, valueobjects.ConcernTexture},
			CautionSkinTypes: []valueobjects.SkinType{valueobjects.SkinTypeSensitive},
			TimeOfDay:        valueobjects.TimePMOnly, Priority: 5,
		}).
		ingredient(entities.IngredientParams{
			ID: id("vitamin_c"), Name: "Vitamin C", Aliases: []string{"ascorbic acid"}, Category: valueobjects.CategorySerumActive,
			Concerns:  []valueobjects.Concern{valueobjects.ConcernHyperpigmentation, valueobjects.ConcernAging, valueobjects.ConcernDullness},
			TimeOfDay: valueobjects.TimeAMOnly, Priority: 4,
		}).
		ingredient(entities.IngredientParams{
			ID: id("niacinamide"), Name: "Niacinamide", Category: valueobjects.CategorySerumWater,
			Concerns: []valueobjects.Concern{valueobjects.ConcernAcne, valueobjects.ConcernPores, valueobjects.ConcernRedness},
			Priority: 5,
		}).
		ingredient(entities.IngredientParams{
			ID: id("glycolic_acid"), Name: "Glycolic Acid", Aliases: []string{"aha"}, Category: valueobjects.CategoryExfoliant,
			Concerns:         []valueobjects.Concern{valueobjects.ConcernTexture, valueobjects.ConcernAging},
			CautionSkinTypes: []valueobjects.SkinType{valueobjects.SkinTypeSensitive},
			TimeOfDay:        valueobjects.TimePMOnly, Priority: 3,
		}).
		ingredient(entities.IngredientParams{
			ID: id("peptides"), Name: "Peptides", Category: valueobjects.CategorySerumWater,
			Concerns: []valueobjects.Concern{valueobjects.ConcernAging}, Priority: 3,
		}).
		ingredient(entities.IngredientParams{
			ID: id("bakuchiol"), Name: "Bakuchiol", Category: valueobjects.CategorySerumActive,
			Concerns: []valueobjects.Concern{valueobjects.ConcernAging}, Priority: 2,
		}).
		ingredient(entities.IngredientParams{
			ID: id("ceramides"), Name: "Ceramides", Category: valueobjects.CategoryCeramide,
			Concerns: []valueobjects.Concern{valueobjects.ConcernDryness, valueobjects.ConcernSensitivity}, Priority: 4,
		}).
		ingredient(entities.IngredientParams{
			ID: id("barrier_cream"), Name: "Barrier Cream", Aliases: []string{"moisturizer"}, Category: valueobjects.CategoryMoisturizer,
			Concerns: []valueobjects.Concern{valueobjects.ConcernDryness}, Priority: 2,
		}).
		ingredient(entities.IngredientParams{
			ID: id("spf"), Name: "Sunscreen", Category: valueobjects.CategorySunscreen,
			Concerns:  []valueobjects.Concern{valueobjects.ConcernAging},
			TimeOfDay: valueobjects.TimeAMOnly, Priority: 5,
		}).
		ingredient(entities.IngredientParams{
			ID: id("vitamin_e"), Name: "Vitamin E", Category: valueobjects.CategorySerumOil,
			Concerns: []valueobjects.Concern{valueobjects.ConcernDryness, valueobjects.ConcernAging}, Priority: 1,
		}).
		interaction("retinol", "vitamin_c", valueobjects.InteractionCaution, "Both are potent.", "Split AM and PM.", 20).
		interaction("retinol", "glycolic_acid", valueobjects.InteractionConflict, "Over-exfoliation.", "Alternate nights.", 0).
		interaction("retinol", "niacinamide", valueobjects.InteractionSynergy, "Niacinamide buffers retinol.", "", 0).
		interaction("vitamin_c", "niacinamide", valueobjects.InteractionNeutral, "Modern formulas are stable.", "", 0).
		interaction("glycolic_acid", "niacinamide", valueobjects.InteractionSynergy, "Clearer pores.", "Let the acid absorb first.", 10).
		interaction("vitamin_c", "vitamin_e", valueobjects.InteractionSynergy, "Vitamin E regenerates vitamin C.", "", 0)
}
