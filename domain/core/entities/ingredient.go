package entities

import (
	"fmt"
	"strings"

	"skincare-backend/domain/core/valueobjects"
	pkgerrors "skincare-backend/pkg/errors"
)

// IngredientParams carries the raw fields of a catalog record
type IngredientParams struct {
	ID               valueobjects.IngredientID
	Name             string
	Aliases          []string
	Category         valueobjects.Category
	Description      string
	HowItWorks       string
	Concerns         []valueobjects.Concern
	CautionSkinTypes []valueobjects.SkinType
	UsageTips        []string
	TimeOfDay        valueobjects.TimeOfDay
	// ApplicationOrder of zero falls back to the category's standard order
	ApplicationOrder int
	Priority         int
}

// Ingredient is a catalog entry in the knowledge graph.
// Ingredients are immutable once constructed.
type Ingredient struct {
	id               valueobjects.IngredientID
	name             string
	aliases          []string
	category         valueobjects.Category
	description      string
	howItWorks       string
	concerns         []valueobjects.Concern
	cautionSkinTypes []valueobjects.SkinType
	usageTips        []string
	timeOfDay        valueobjects.TimeOfDay
	applicationOrder int
	priority         int
}

// NewIngredient creates an ingredient with full validation
func NewIngredient(p IngredientParams) (*Ingredient, error) {
	if p.ID.IsZero() {
		return nil, pkgerrors.NewValidationError("ingredient ID cannot be empty")
	}

	name := strings.TrimSpace(p.Name)
	if name == "" {
		return nil, pkgerrors.NewValidationError(fmt.Sprintf("ingredient %s: name cannot be empty", p.ID))
	}

	if p.Category.StandardOrder() == 0 {
		return nil, pkgerrors.NewValidationError(fmt.Sprintf("ingredient %s: unknown category %q", p.ID, p.Category))
	}

	timeOfDay := p.TimeOfDay
	if timeOfDay == "" {
		timeOfDay = valueobjects.TimeEither
	}

	order := p.ApplicationOrder
	if order == 0 {
		order = p.Category.StandardOrder()
	}
	if order < 1 || order > 10 {
		return nil, pkgerrors.NewValidationError(fmt.Sprintf("ingredient %s: application order %d out of range 1-10", p.ID, order))
	}

	priority := p.Priority
	if priority == 0 {
		priority = 1
	}
	if priority < 1 || priority > 5 {
		return nil, pkgerrors.NewValidationError(fmt.Sprintf("ingredient %s: priority %d out of range 1-5", p.ID, priority))
	}

	return &Ingredient{
		id:               p.ID,
		name:             name,
		aliases:          dedupeStrings(p.Aliases),
		category:         p.Category,
		description:      p.Description,
		howItWorks:       p.HowItWorks,
		concerns:         dedupeConcerns(p.Concerns),
		cautionSkinTypes: append([]valueobjects.SkinType(nil), p.CautionSkinTypes...),
		usageTips:        append([]string(nil), p.UsageTips...),
		timeOfDay:        timeOfDay,
		applicationOrder: order,
		priority:         priority,
	}, nil
}

// ID returns the ingredient's identifier
func (i *Ingredient) ID() valueobjects.IngredientID {
	return i.id
}

// Name returns the display name
func (i *Ingredient) Name() string {
	return i.name
}

// Aliases returns a copy of the alias list
func (i *Ingredient) Aliases() []string {
	aliases := make([]string, len(i.aliases))
	copy(aliases, i.aliases)
	return aliases
}

// Category returns the ingredient's category
func (i *Ingredient) Category() valueobjects.Category {
	return i.category
}

// Description returns what the ingredient does
func (i *Ingredient) Description() string {
	return i.description
}

// HowItWorks returns the mechanism text
func (i *Ingredient) HowItWorks() string {
	return i.howItWorks
}

// Concerns returns a copy of the addressed concerns, primary concern first
func (i *Ingredient) Concerns() []valueobjects.Concern {
	concerns := make([]valueobjects.Concern, len(i.concerns))
	copy(concerns, i.concerns)
	return concerns
}

// CautionSkinTypes returns a copy of the skin types needing caution
func (i *Ingredient) CautionSkinTypes() []valueobjects.SkinType {
	types := make([]valueobjects.SkinType, len(i.cautionSkinTypes))
	copy(types, i.cautionSkinTypes)
	return types
}

// UsageTips returns a copy of the ordered usage tips
func (i *Ingredient) UsageTips() []string {
	tips := make([]string, len(i.usageTips))
	copy(tips, i.usageTips)
	return tips
}

// TimeOfDay returns the time-of-day restriction
func (i *Ingredient) TimeOfDay() valueobjects.TimeOfDay {
	return i.timeOfDay
}

// ApplicationOrder returns the layering hint, lower applies first
func (i *Ingredient) ApplicationOrder() int {
	return i.applicationOrder
}

// Priority returns the relevance score used when ranking by concern
func (i *Ingredient) Priority() int {
	return i.priority
}

// Addresses reports whether the ingredient treats the concern
func (i *Ingredient) Addresses(c valueobjects.Concern) bool {
	for _, concern := range i.concerns {
		if concern == c {
			return true
		}
	}
	return false
}

// NeedsCautionFor reports whether the skin type is on the caution list
func (i *Ingredient) NeedsCautionFor(st valueobjects.SkinType) bool {
	for _, t := range i.cautionSkinTypes {
		if t == st {
			return true
		}
	}
	return false
}

// AllowedIn reports whether the ingredient may be used in the routine time
func (i *Ingredient) AllowedIn(rt valueobjects.RoutineTime) bool {
	return i.timeOfDay.AllowedIn(rt)
}

// LookupKeys returns the lowercased identifier, name and aliases
func (i *Ingredient) LookupKeys() []string {
	keys := make([]string, 0, len(i.aliases)+2)
	keys = append(keys, i.id.String(), strings.ToLower(i.name))
	for _, alias := range i.aliases {
		keys = append(keys, strings.ToLower(alias))
	}
	return keys
}

func dedupeStrings(values []string) []string {
	seen := make(map[string]bool, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		key := strings.ToLower(v)
		if v == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, v)
	}
	return out
}

func dedupeConcerns(values []valueobjects.Concern) []valueobjects.Concern {
	seen := make(map[valueobjects.Concern]bool, len(values))
	out := make([]valueobjects.Concern, 0, len(values))
	for _, c := range values {
		if seen[c] {
			continue
		}
		seen[c] = true
		out = append(out, c)
	}
	return out
}
