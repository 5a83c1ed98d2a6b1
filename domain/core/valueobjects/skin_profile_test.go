package valueobjects

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewSkinProfile(t *testing.T) {
	profile := NewSkinProfile(SkinTypeOily, ConcernAcne, ConcernAging, ConcernAcne)

	assert.Equal(t, SkinTypeOily, profile.SkinType())
	assert.Equal(t, []Concern{ConcernAcne, ConcernAging}, profile.Concerns())
	assert.True(t, profile.HasConcern(ConcernAging))
	assert.False(t, profile.HasConcern(ConcernDryness))

	t.Run("concerns are copied", func(t *testing.T) {
		concerns := profile.Concerns()
		concerns[0] = ConcernRedness
		assert.True(t, profile.HasConcern(ConcernAcne))
		assert.False(t, profile.HasConcern(ConcernRedness))
	})

	t.Run("no concerns", func(t *testing.T) {
		empty := NewSkinProfile(SkinTypeNormal)
		assert.Empty(t, empty.Concerns())
	})
}
