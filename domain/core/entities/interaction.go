package entities

import (
	"fmt"

	"skincare-backend/domain/core/valueobjects"
	pkgerrors "skincare-backend/pkg/errors"
)

// Interaction is an undirected edge between two catalog ingredients
type Interaction struct {
	ingredientA    valueobjects.IngredientID
	ingredientB    valueobjects.IngredientID
	kind           valueobjects.InteractionKind
	explanation    string
	recommendation string
	waitMinutes    int
}

// NewInteraction creates an interaction record with validation
func NewInteraction(
	a, b valueobjects.IngredientID,
	kind valueobjects.InteractionKind,
	explanation, recommendation string,
	waitMinutes int,
) (*Interaction, error) {
	if a.IsZero() || b.IsZero() {
		return nil, pkgerrors.NewValidationError("interaction requires two ingredient IDs")
	}
	if a.Equals(b) {
		return nil, pkgerrors.NewValidationError(fmt.Sprintf("interaction cannot pair %s with itself", a))
	}
	if _, err := valueobjects.ParseInteractionKind(string(kind)); err != nil {
		return nil, pkgerrors.NewValidationError(err.Error())
	}
	if waitMinutes < 0 {
		return nil, pkgerrors.NewValidationError(fmt.Sprintf("interaction %s/%s: wait minutes cannot be negative", a, b))
	}

	return &Interaction{
		ingredientA:    a,
		ingredientB:    b,
		kind:           kind,
		explanation:    explanation,
		recommendation: recommendation,
		waitMinutes:    waitMinutes,
	}, nil
}

// IngredientA returns the first ingredient as declared
func (i *Interaction) IngredientA() valueobjects.IngredientID {
	return i.ingredientA
}

// IngredientB returns the second ingredient as declared
func (i *Interaction) IngredientB() valueobjects.IngredientID {
	return i.ingredientB
}

// Kind returns the interaction classification
func (i *Interaction) Kind() valueobjects.InteractionKind {
	return i.kind
}

// Explanation returns why the two ingredients interact
func (i *Interaction) Explanation() string {
	return i.explanation
}

// Recommendation returns what to do about it
func (i *Interaction) Recommendation() string {
	return i.recommendation
}

// WaitMinutes returns the wait required between applications, zero if none
func (i *Interaction) WaitMinutes() int {
	return i.waitMinutes
}

// Key returns the unordered pair key
func (i *Interaction) Key() valueobjects.PairKey {
	return valueobjects.NewPairKey(i.ingredientA.String(), i.ingredientB.String())
}

// Involves reports whether the ingredient is either end of the edge
func (i *Interaction) Involves(id valueobjects.IngredientID) bool {
	return i.ingredientA.Equals(id) || i.ingredientB.Equals(id)
}

// Other returns the opposite end of the edge from id
func (i *Interaction) Other(id valueobjects.IngredientID) valueobjects.IngredientID {
	if i.ingredientA.Equals(id) {
		return i.ingredientB
	}
	return i.ingredientA
}
