package queries

import (
	"skincare-backend/domain/core/aggregates"
	"skincare-backend/domain/core/valueobjects"
	"skincare-backend/domain/services"
	pkgerrors "skincare-backend/pkg/errors"
	"skincare-backend/pkg/utils"
)

// ProfileInput is the caller's skin profile as sent over the wire
type ProfileInput struct {
	SkinType string   `json:"skinType" yaml:"skin_type" validate:"required,oneof=normal dry oily combination sensitive"`
	Concerns []string `json:"concerns,omitempty" yaml:"concerns" validate:"dive,oneof=acne aging hyperpigmentation dryness oiliness sensitivity redness dullness texture pores"`
}

// ToProfile converts a validated input into a domain profile
func (p ProfileInput) ToProfile() (valueobjects.SkinProfile, error) {
	skinType, err := valueobjects.ParseSkinType(p.SkinType)
	if err != nil {
		return valueobjects.SkinProfile{}, pkgerrors.NewValidationError(err.Error())
	}
	concerns := make([]valueobjects.Concern, 0, len(p.Concerns))
	for _, raw := range p.Concerns {
		concern, err := valueobjects.ParseConcern(raw)
		if err != nil {
			return valueobjects.SkinProfile{}, pkgerrors.NewValidationError(err.Error())
		}
		concerns = append(concerns, concern)
	}
	return valueobjects.NewSkinProfile(skinType, concerns...), nil
}

// OptionalProfile converts a possibly absent profile
func OptionalProfile(p *ProfileInput) (*valueobjects.SkinProfile, error) {
	if p == nil {
		return nil, nil
	}
	profile, err := p.ToProfile()
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// ProductInput is one product with its ingredient list
type ProductInput struct {
	Name        string   `json:"name" yaml:"name" validate:"required"`
	Ingredients []string `json:"ingredients" yaml:"ingredients" validate:"required,min=1,dive,required"`
}

// ToServiceProducts converts products for the routine builder
func ToServiceProducts(products []ProductInput) []services.ProductInput {
	out := make([]services.ProductInput, len(products))
	for i, p := range products {
		out[i] = services.ProductInput{Name: p.Name, Ingredients: p.Ingredients}
	}
	return out
}

// StepInput is one step of an existing routine
type StepInput struct {
	Position    int      `json:"position,omitempty" yaml:"position" validate:"gte=0"`
	ProductName string   `json:"productName" yaml:"product_name" validate:"required"`
	Ingredients []string `json:"ingredients" yaml:"ingredients" validate:"required,min=1,dive,required"`
	WaitAfter   int      `json:"waitAfter,omitempty" yaml:"wait_after" validate:"gte=0"`
	Notes       string   `json:"notes,omitempty" yaml:"notes"`
}

// ToRoutineSteps converts steps into routine steps
func ToRoutineSteps(steps []StepInput) []aggregates.RoutineStep {
	out := make([]aggregates.RoutineStep, len(steps))
	for i, s := range steps {
		out[i] = aggregates.RoutineStep{
			Position:    s.Position,
			ProductName: s.ProductName,
			Ingredients: s.Ingredients,
			WaitAfter:   s.WaitAfter,
			Notes:       s.Notes,
		}
	}
	return out
}

// validate runs struct tag validation and reports the problems as a
// validation error
func validate(q interface{}) error {
	if err := utils.ValidateStruct(q); err != nil {
		return pkgerrors.NewValidationError(err.Error())
	}
	return nil
}
