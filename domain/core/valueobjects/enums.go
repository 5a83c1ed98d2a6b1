package valueobjects

import "fmt"

// Concern is a skin concern an ingredient can address
type Concern string

const (
	ConcernAcne              Concern = "acne"
	ConcernAging             Concern = "aging"
	ConcernHyperpigmentation Concern = "hyperpigmentation"
	ConcernDryness           Concern = "dryness"
	ConcernOiliness          Concern = "oiliness"
	ConcernSensitivity       Concern = "sensitivity"
	ConcernRedness           Concern = "redness"
	ConcernDullness          Concern = "dullness"
	ConcernTexture           Concern = "texture"
	ConcernPores             Concern = "pores"
)

// AllConcerns lists every concern in declaration order
var AllConcerns = []Concern{
	ConcernAcne,
	ConcernAging,
	ConcernHyperpigmentation,
	ConcernDryness,
	ConcernOiliness,
	ConcernSensitivity,
	ConcernRedness,
	ConcernDullness,
	ConcernTexture,
	ConcernPores,
}

// ParseConcern parses the canonical concern value
func ParseConcern(s string) (Concern, error) {
	for _, c := range AllConcerns {
		if string(c) == s {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown concern %q", s)
}

// SkinType classifies a person's skin
type SkinType string

const (
	SkinTypeNormal      SkinType = "normal"
	SkinTypeDry         SkinType = "dry"
	SkinTypeOily        SkinType = "oily"
	SkinTypeCombination SkinType = "combination"
	SkinTypeSensitive   SkinType = "sensitive"
)

// AllSkinTypes lists every skin type in declaration order
var AllSkinTypes = []SkinType{
	SkinTypeNormal,
	SkinTypeDry,
	SkinTypeOily,
	SkinTypeCombination,
	SkinTypeSensitive,
}

// ParseSkinType parses the canonical skin type value
func ParseSkinType(s string) (SkinType, error) {
	for _, st := range AllSkinTypes {
		if string(st) == s {
			return st, nil
		}
	}
	return "", fmt.Errorf("unknown skin type %q", s)
}

// Category is the product family an ingredient is usually formulated in.
// It drives the default layering position.
type Category string

const (
	CategoryCleanser     Category = "cleanser"
	CategoryToner        Category = "toner"
	CategoryEssence      Category = "essence"
	CategorySerumWater   Category = "serum_water"
	CategorySerumActive  Category = "serum_active"
	CategoryExfoliant    Category = "exfoliant"
	CategoryRetinoid     Category = "retinoid"
	CategorySerumOil     Category = "serum_oil"
	CategoryEyeCream     Category = "eye_cream"
	CategoryMoisturizer  Category = "moisturizer"
	CategoryCeramide     Category = "ceramide"
	CategoryFaceOil      Category = "face_oil"
	CategorySunscreen    Category = "sunscreen"
	CategorySleepingMask Category = "sleeping_mask"
)

// standardOrder is the thin-to-thick layering table, lower applies first
var standardOrder = map[Category]int{
	CategoryCleanser:     1,
	CategoryToner:        2,
	CategoryEssence:      3,
	CategorySerumWater:   4,
	CategorySerumActive:  5,
	CategoryExfoliant:    5,
	CategoryRetinoid:     5,
	CategorySerumOil:     6,
	CategoryEyeCream:     7,
	CategoryMoisturizer:  8,
	CategoryCeramide:     8,
	CategoryFaceOil:      9,
	CategorySunscreen:    10,
	CategorySleepingMask: 10,
}

// ParseCategory parses the canonical category value
func ParseCategory(s string) (Category, error) {
	c := Category(s)
	if _, ok := standardOrder[c]; !ok {
		return "", fmt.Errorf("unknown category %q", s)
	}
	return c, nil
}

// StandardOrder returns the default application order of the category
func (c Category) StandardOrder() int {
	return standardOrder[c]
}

// TimeOfDay restricts when an ingredient may be applied
type TimeOfDay string

const (
	TimeAMOnly TimeOfDay = "AM_ONLY"
	TimePMOnly TimeOfDay = "PM_ONLY"
	TimeEither TimeOfDay = "EITHER"
)

// ParseTimeOfDay parses the canonical time-of-day value
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	switch TimeOfDay(s) {
	case TimeAMOnly, TimePMOnly, TimeEither:
		return TimeOfDay(s), nil
	}
	return "", fmt.Errorf("unknown time of day %q", s)
}

// AllowedIn reports whether the restriction permits use in the routine time
func (t TimeOfDay) AllowedIn(rt RoutineTime) bool {
	switch rt {
	case RoutineAM:
		return t != TimePMOnly
	case RoutinePM:
		return t != TimeAMOnly
	}
	return true
}

// InteractionKind classifies how two ingredients behave together
type InteractionKind string

const (
	InteractionConflict InteractionKind = "CONFLICT"
	InteractionCaution  InteractionKind = "CAUTION"
	InteractionSynergy  InteractionKind = "SYNERGY"
	InteractionNeutral  InteractionKind = "NEUTRAL"
)

// ParseInteractionKind parses the canonical interaction kind
func ParseInteractionKind(s string) (InteractionKind, error) {
	switch InteractionKind(s) {
	case InteractionConflict, InteractionCaution, InteractionSynergy, InteractionNeutral:
		return InteractionKind(s), nil
	}
	return "", fmt.Errorf("unknown interaction kind %q", s)
}

// RoutineTime is the time of day a routine is performed
type RoutineTime string

const (
	RoutineAM RoutineTime = "AM"
	RoutinePM RoutineTime = "PM"
)

// ParseRoutineTime accepts "AM"/"PM" and the long forms "morning"/"evening"
func ParseRoutineTime(s string) (RoutineTime, error) {
	switch s {
	case "AM", "am", "morning":
		return RoutineAM, nil
	case "PM", "pm", "evening", "night":
		return RoutinePM, nil
	}
	return "", fmt.Errorf("unknown routine time %q", s)
}

// Opposite returns the other routine time
func (rt RoutineTime) Opposite() RoutineTime {
	if rt == RoutineAM {
		return RoutinePM
	}
	return RoutineAM
}
