package aggregates

import (
	"fmt"
	"strings"

	"skincare-backend/domain/core/entities"
	"skincare-backend/domain/core/valueobjects"
	pkgerrors "skincare-backend/pkg/errors"
)

// KnowledgeGraph is the aggregate root for the ingredient catalog and the
// interaction edges between catalog entries. It is read-only once built, so
// concurrent readers need no locking.
type KnowledgeGraph struct {
	ingredients  []*entities.Ingredient
	byID         map[valueobjects.IngredientID]*entities.Ingredient
	position     map[valueobjects.IngredientID]int
	lookup       map[string]*entities.Ingredient
	interactions []*entities.Interaction
	edges        map[valueobjects.PairKey]*entities.Interaction
}

// NewKnowledgeGraph assembles the graph, rejecting duplicate identifiers,
// lookup keys shared by two ingredients, self pairs, edges to unknown
// ingredients and repeated unordered pairs. Every problem is reported at once.
func NewKnowledgeGraph(ingredients []*entities.Ingredient, interactions []*entities.Interaction) (*KnowledgeGraph, error) {
	g := &KnowledgeGraph{
		ingredients:  make([]*entities.Ingredient, 0, len(ingredients)),
		byID:         make(map[valueobjects.IngredientID]*entities.Ingredient, len(ingredients)),
		position:     make(map[valueobjects.IngredientID]int, len(ingredients)),
		lookup:       make(map[string]*entities.Ingredient, len(ingredients)*3),
		interactions: make([]*entities.Interaction, 0, len(interactions)),
		edges:        make(map[valueobjects.PairKey]*entities.Interaction, len(interactions)),
	}

	var problems []string
	for _, ingredient := range ingredients {
		if ingredient == nil {
			problems = append(problems, "ingredient cannot be nil")
			continue
		}
		if err := g.addIngredient(ingredient); err != nil {
			problems = append(problems, err.Error())
		}
	}
	for _, interaction := range interactions {
		if interaction == nil {
			problems = append(problems, "interaction cannot be nil")
			continue
		}
		if err := g.connect(interaction); err != nil {
			problems = append(problems, err.Error())
		}
	}

	if len(problems) > 0 {
		return nil, pkgerrors.NewCatalogError("graph", problems)
	}
	return g, nil
}

func (g *KnowledgeGraph) addIngredient(ingredient *entities.Ingredient) error {
	id := ingredient.ID()
	if _, exists := g.byID[id]; exists {
		return fmt.Errorf("duplicate ingredient id %s", id)
	}

	for _, key := range ingredient.LookupKeys() {
		if owner, taken := g.lookup[key]; taken && !owner.ID().Equals(id) {
			return fmt.Errorf("ingredient %s: lookup key %q already used by %s", id, key, owner.ID())
		}
	}

	g.position[id] = len(g.ingredients)
	g.ingredients = append(g.ingredients, ingredient)
	g.byID[id] = ingredient
	for _, key := range ingredient.LookupKeys() {
		g.lookup[key] = ingredient
	}
	return nil
}

func (g *KnowledgeGraph) connect(interaction *entities.Interaction) error {
	a, b := interaction.IngredientA(), interaction.IngredientB()
	if a.Equals(b) {
		return fmt.Errorf("interaction cannot pair %s with itself", a)
	}
	if _, ok := g.byID[a]; !ok {
		return fmt.Errorf("interaction %s/%s references unknown ingredient %s", a, b, a)
	}
	if _, ok := g.byID[b]; !ok {
		return fmt.Errorf("interaction %s/%s references unknown ingredient %s", a, b, b)
	}

	key := interaction.Key()
	if _, exists := g.edges[key]; exists {
		return fmt.Errorf("duplicate interaction for pair %s", key)
	}

	g.edges[key] = interaction
	g.interactions = append(g.interactions, interaction)
	return nil
}

// Ingredient retrieves an ingredient by identifier
func (g *KnowledgeGraph) Ingredient(id valueobjects.IngredientID) (*entities.Ingredient, bool) {
	ingredient, ok := g.byID[id]
	return ingredient, ok
}

// Lookup resolves an identifier, display name or alias, ignoring case and
// surrounding whitespace
func (g *KnowledgeGraph) Lookup(key string) (*entities.Ingredient, bool) {
	ingredient, ok := g.lookup[strings.ToLower(strings.TrimSpace(key))]
	return ingredient, ok
}

// Ingredients returns all ingredients in catalog order
func (g *KnowledgeGraph) Ingredients() []*entities.Ingredient {
	out := make([]*entities.Ingredient, len(g.ingredients))
	copy(out, g.ingredients)
	return out
}

// Position returns the catalog insertion index of an ingredient, -1 if unknown
func (g *KnowledgeGraph) Position(id valueobjects.IngredientID) int {
	if pos, ok := g.position[id]; ok {
		return pos
	}
	return -1
}

// Interaction returns the record for the unordered pair, if any
func (g *KnowledgeGraph) Interaction(a, b valueobjects.IngredientID) (*entities.Interaction, bool) {
	interaction, ok := g.edges[valueobjects.NewPairKey(a.String(), b.String())]
	return interaction, ok
}

// Interactions returns every record in insertion order
func (g *KnowledgeGraph) Interactions() []*entities.Interaction {
	out := make([]*entities.Interaction, len(g.interactions))
	copy(out, g.interactions)
	return out
}

// InteractionsOf returns every record touching the ingredient, in insertion order
func (g *KnowledgeGraph) InteractionsOf(id valueobjects.IngredientID) []*entities.Interaction {
	var out []*entities.Interaction
	for _, interaction := range g.interactions {
		if interaction.Involves(id) {
			out = append(out, interaction)
		}
	}
	return out
}

// IngredientCount returns the number of catalog entries
func (g *KnowledgeGraph) IngredientCount() int {
	return len(g.ingredients)
}

// InteractionCount returns the number of interaction records
func (g *KnowledgeGraph) InteractionCount() int {
	return len(g.interactions)
}
