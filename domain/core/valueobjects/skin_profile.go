package valueobjects

// SkinProfile describes the caller's skin for a single query.
// It is immutable once built.
type SkinProfile struct {
	skinType SkinType
	concerns []Concern
}

// NewSkinProfile creates a profile, dropping duplicate concerns while
// keeping their first-seen order
func NewSkinProfile(skinType SkinType, concerns ...Concern) SkinProfile {
	seen := make(map[Concern]bool, len(concerns))
	unique := make([]Concern, 0, len(concerns))
	for _, c := range concerns {
		if seen[c] {
			continue
		}
		seen[c] = true
		unique = append(unique, c)
	}
	return SkinProfile{skinType: skinType, concerns: unique}
}

// SkinType returns the profile's skin type
func (p SkinProfile) SkinType() SkinType {
	return p.skinType
}

// Concerns returns a copy of the profile's concerns
func (p SkinProfile) Concerns() []Concern {
	concerns := make([]Concern, len(p.concerns))
	copy(concerns, p.concerns)
	return concerns
}

// HasConcern reports whether the profile lists the concern
func (p SkinProfile) HasConcern(c Concern) bool {
	for _, existing := range p.concerns {
		if existing == c {
			return true
		}
	}
	return false
}
