package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type product struct {
	Name        string   `json:"name" validate:"required"`
	Ingredients []string `json:"ingredients" validate:"required,min=1,dive,required"`
}

type request struct {
	Time     string    `json:"time" validate:"required,oneof=AM PM"`
	Wait     int       `yaml:"wait_minutes" validate:"gte=0"`
	Products []product `json:"products" validate:"dive"`
}

func TestValidateStruct(t *testing.T) {
	valid := request{Time: "AM", Products: []product{{Name: "Serum", Ingredients: []string{"retinol"}}}}
	assert.NoError(t, ValidateStruct(valid))

	err := ValidateStruct(request{Time: "noon", Wait: -1})
	require.Error(t, err)
	assert.Equal(t, "time must be one of: AM PM; wait_minutes must be 0 or greater", err.Error())
}

func TestValidationProblems(t *testing.T) {
	problems := ValidationProblems(request{
		Time: "PM",
		Products: []product{
			{Name: "", Ingredients: []string{}},
			{Name: "Toner", Ingredients: []string{""}},
		},
	})

	assert.Equal(t, []string{
		"products[0].name is required",
		"products[0].ingredients must have at least 1 item(s)",
		"products[1].ingredients[0] is required",
	}, problems)
}
