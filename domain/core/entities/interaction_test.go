package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skincare-backend/domain/core/valueobjects"
)

func TestNewInteraction(t *testing.T) {
	retinol := valueobjects.MustIngredientID("retinol")
	vitaminC := valueobjects.MustIngredientID("vitamin_c")

	tests := []struct {
		name    string
		a, b    valueobjects.IngredientID
		kind    valueobjects.InteractionKind
		wait    int
		wantErr string
	}{
		{name: "valid", a: retinol, b: vitaminC, kind: valueobjects.InteractionCaution, wait: 20},
		{name: "self pair", a: retinol, b: retinol, kind: valueobjects.InteractionSynergy, wantErr: "itself"},
		{name: "missing side", a: retinol, kind: valueobjects.InteractionSynergy, wantErr: "two ingredient IDs"},
		{name: "unknown kind", a: retinol, b: vitaminC, kind: "MAYBE", wantErr: "unknown interaction kind"},
		{name: "negative wait", a: retinol, b: vitaminC, kind: valueobjects.InteractionCaution, wait: -1, wantErr: "negative"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			interaction, err := NewInteraction(tt.a, tt.b, tt.kind, "why", "what to do", tt.wait)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wait, interaction.WaitMinutes())
			assert.Equal(t, tt.kind, interaction.Kind())
		})
	}
}

func TestInteractionEnds(t *testing.T) {
	retinol := valueobjects.MustIngredientID("retinol")
	vitaminC := valueobjects.MustIngredientID("vitamin_c")
	niacinamide := valueobjects.MustIngredientID("niacinamide")

	interaction, err := NewInteraction(vitaminC, retinol, valueobjects.InteractionCaution, "", "", 20)
	require.NoError(t, err)

	assert.True(t, interaction.Involves(retinol))
	assert.False(t, interaction.Involves(niacinamide))
	assert.Equal(t, retinol, interaction.Other(vitaminC))
	assert.Equal(t, vitaminC, interaction.Other(retinol))
	assert.Equal(t, valueobjects.NewPairKey("retinol", "vitamin_c"), interaction.Key())
}
