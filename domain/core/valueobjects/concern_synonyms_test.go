package valueobjects

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConcernSynonymsCoverEveryConcern(t *testing.T) {
	assert.NoError(t, checkConcernSynonymCoverage())
}

func TestConcernFromText(t *testing.T) {
	tests := []struct {
		text string
		want Concern
		ok   bool
	}{
		{text: "acne", want: ConcernAcne, ok: true},
		{text: "stubborn Breakouts on my chin", want: ConcernAcne, ok: true},
		{text: "anti-aging", want: ConcernAging, ok: true},
		{text: "fine lines around the eyes", want: ConcernAging, ok: true},
		{text: "dark spots", want: ConcernHyperpigmentation, ok: true},
		{text: "uneven skin tone", want: ConcernHyperpigmentation, ok: true},
		{text: "dehydration", want: ConcernDryness, ok: true},
		{text: "too much shine", want: ConcernOiliness, ok: true},
		{text: "sensitive skin", want: ConcernSensitivity, ok: true},
		{text: "redness", want: ConcernRedness, ok: true},
		{text: "dull skin", want: ConcernDullness, ok: true},
		{text: "rough skin", want: ConcernTexture, ok: true},
		{text: "large pores", want: ConcernPores, ok: true},
		{text: "sunburn", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			got, ok := ConcernFromText(tt.text)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSkinProfileDedupesConcerns(t *testing.T) {
	profile := NewSkinProfile(SkinTypeOily, ConcernAcne, ConcernPores, ConcernAcne)

	assert.Equal(t, SkinTypeOily, profile.SkinType())
	assert.Equal(t, []Concern{ConcernAcne, ConcernPores}, profile.Concerns())
	assert.True(t, profile.HasConcern(ConcernPores))
	assert.False(t, profile.HasConcern(ConcernAging))

	concerns := profile.Concerns()
	concerns[0] = ConcernDryness
	assert.True(t, profile.HasConcern(ConcernAcne))
}
