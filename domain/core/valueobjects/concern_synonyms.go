package valueobjects

import (
	"fmt"
	"strings"
)

// concernSynonym maps a free-text term to a concern
type concernSynonym struct {
	term    string
	concern Concern
}

// concernSynonyms is scanned in order and the first term contained in the
// text wins. Every concern must appear at least once.
var concernSynonyms = []concernSynonym{
	{"acne", ConcernAcne},
	{"pimples", ConcernAcne},
	{"breakouts", ConcernAcne},
	{"aging", ConcernAging},
	{"anti-aging", ConcernAging},
	{"wrinkles", ConcernAging},
	{"fine lines", ConcernAging},
	{"dark spots", ConcernHyperpigmentation},
	{"hyperpigmentation", ConcernHyperpigmentation},
	{"pigmentation", ConcernHyperpigmentation},
	{"uneven skin tone", ConcernHyperpigmentation},
	{"dry skin", ConcernDryness},
	{"dryness", ConcernDryness},
	{"dehydration", ConcernDryness},
	{"oily skin", ConcernOiliness},
	{"oiliness", ConcernOiliness},
	{"shine", ConcernOiliness},
	{"sensitivity", ConcernSensitivity},
	{"sensitive skin", ConcernSensitivity},
	{"redness", ConcernRedness},
	{"dull skin", ConcernDullness},
	{"dullness", ConcernDullness},
	{"texture", ConcernTexture},
	{"rough skin", ConcernTexture},
	{"pores", ConcernPores},
	{"large pores", ConcernPores},
}

func init() {
	if err := checkConcernSynonymCoverage(); err != nil {
		panic(err)
	}
}

// checkConcernSynonymCoverage fails when a concern has no synonym or a term
// is listed twice
func checkConcernSynonymCoverage() error {
	covered := make(map[Concern]bool, len(AllConcerns))
	terms := make(map[string]bool, len(concernSynonyms))
	for _, s := range concernSynonyms {
		if terms[s.term] {
			return fmt.Errorf("duplicate concern synonym %q", s.term)
		}
		terms[s.term] = true
		covered[s.concern] = true
	}
	for _, c := range AllConcerns {
		if !covered[c] {
			return fmt.Errorf("concern %q has no synonym", c)
		}
	}
	return nil
}

// ConcernFromText maps free text such as "dark spots on my cheeks" to a concern
func ConcernFromText(text string) (Concern, bool) {
	text = strings.ToLower(text)
	for _, s := range concernSynonyms {
		if strings.Contains(text, s.term) {
			return s.concern, true
		}
	}
	return "", false
}
