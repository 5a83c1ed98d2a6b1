package valueobjects

import (
	"errors"
	"regexp"
	"strings"
)

var ingredientIDPattern = regexp.MustCompile(`^[a-z0-9]+(_[a-z0-9]+)*$`)

// IngredientID is a value object representing a stable catalog identifier
// such as "retinol" or "hyaluronic_acid".
type IngredientID struct {
	value string
}

// NewIngredientID creates an IngredientID from a string, normalizing case
func NewIngredientID(id string) (IngredientID, error) {
	id = strings.ToLower(strings.TrimSpace(id))
	if id == "" {
		return IngredientID{}, errors.New("ingredient ID cannot be empty")
	}
	if !ingredientIDPattern.MatchString(id) {
		return IngredientID{}, errors.New("ingredient ID must be lowercase snake_case")
	}
	return IngredientID{value: id}, nil
}

// MustIngredientID is NewIngredientID for literals known to be valid
func MustIngredientID(id string) IngredientID {
	iid, err := NewIngredientID(id)
	if err != nil {
		panic(err)
	}
	return iid
}

// String returns the string representation of the IngredientID
func (id IngredientID) String() string {
	return id.value
}

// Equals checks if two IngredientIDs are equal
func (id IngredientID) Equals(other IngredientID) bool {
	return id.value == other.value
}

// IsZero checks if the IngredientID is the zero value
func (id IngredientID) IsZero() bool {
	return id.value == ""
}

// MarshalText implements encoding.TextMarshaler
func (id IngredientID) MarshalText() ([]byte, error) {
	return []byte(id.value), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (id *IngredientID) UnmarshalText(data []byte) error {
	parsed, err := NewIngredientID(string(data))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

// PairKey is the canonical key of an unordered ingredient pair.
// PairKey(a, b) == PairKey(b, a).
type PairKey struct {
	first  string
	second string
}

// NewPairKey builds the unordered key for two identifiers
func NewPairKey(a, b string) PairKey {
	if a > b {
		a, b = b, a
	}
	return PairKey{first: a, second: b}
}

// Members returns both sides of the pair in canonical order
func (k PairKey) Members() (string, string) {
	return k.first, k.second
}

// String returns "a|b" in canonical order
func (k PairKey) String() string {
	return k.first + "|" + k.second
}
