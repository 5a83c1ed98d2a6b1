package advisor

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"skincare-backend/domain/core/entities"
	"skincare-backend/domain/core/valueobjects"
)

// maxConcernRecommendations caps the ingredients listed for one concern
const maxConcernRecommendations = 5

// routineGuide is the standard layering guide returned for ordering questions
const routineGuide = `## Standard Skincare Routine Order

**Morning (AM):**
1. Cleanser (or just water)
2. Toner (optional)
3. Vitamin C serum
4. Other treatments/serums (water-based)
5. Eye cream
6. Moisturizer
7. Sunscreen (SPF 30+) ← ESSENTIAL

**Evening (PM):**
1. Oil cleanser / Makeup remover
2. Water-based cleanser
3. Toner (optional)
4. Exfoliant (AHA/BHA) - not daily
5. Treatments (retinol, etc.)
6. Serums (thinnest to thickest)
7. Eye cream
8. Moisturizer
9. Face oil (optional)
10. Sleeping mask (optional)

**Key Rules:**
• Thin → Thick consistency
• Water-based → Oil-based
• Actives on dry skin to reduce irritation
• Wait 1-2 minutes between layers`

const generalHelp = `I'm not sure I understood that question. I can help you with:

• **Ingredient compatibility** - 'Can I use retinol with AHA?'
• **Ingredient information** - 'What is niacinamide?'
• **Concern-based advice** - 'What should I use for acne?'
• **Routine help** - 'What order should I apply products?'

Try asking one of these types of questions!`

// titleCase turns enum values like "serum_water" into "Serum Water".
// A Caser keeps state, so one is built per call.
func titleCase(value string) string {
	return cases.Title(language.English).String(strings.ReplaceAll(value, "_", " "))
}

func cleanTerm(term string) string {
	return strings.TrimRight(strings.TrimSpace(term), "?.,! ")
}

// resolve looks a term up exactly, then by a close fuzzy match
func (a *Advisor) resolve(term string) (*entities.Ingredient, bool) {
	ingredient, _, ok := a.kg.ResolveIngredient(term)
	return ingredient, ok
}

func (a *Advisor) answerCompatibility(terms []string) *QueryResult {
	if len(terms) < 2 {
		return &QueryResult{
			Intent:     IntentCompatibility,
			Answer:     "I need two ingredients to check compatibility. Try asking 'Can I use retinol with vitamin C?'",
			Confidence: 0.5,
			Sources:    []string{},
			FollowUps:  []string{"Can I use retinol with niacinamide?"},
		}
	}

	nameA, nameB := cleanTerm(terms[0]), cleanTerm(terms[1])
	first, okA := a.resolve(nameA)
	second, okB := a.resolve(nameB)
	if !okA || !okB {
		missing := nameA
		if okA {
			missing = nameB
		}
		return &QueryResult{
			Intent:     IntentCompatibility,
			Answer:     fmt.Sprintf("I don't have information about '%s' in my database. Could you check the spelling or try another name?", missing),
			Confidence: 0.3,
			Sources:    []string{},
			FollowUps:  []string{fmt.Sprintf("What is %s?", missing)},
		}
	}

	sources := []string{"Ingredient: " + first.Name(), "Ingredient: " + second.Name()}
	if first.ID().Equals(second.ID()) {
		return &QueryResult{
			Intent:     IntentCompatibility,
			Answer:     fmt.Sprintf("'%s' and '%s' are both %s, so there is nothing to combine.", nameA, nameB, first.Name()),
			Confidence: 0.9,
			Sources:    sources[:1],
			FollowUps:  []string{fmt.Sprintf("What is %s?", first.Name())},
		}
	}

	idA, idB := first.ID().String(), second.ID().String()
	answer := a.kg.ExplainInteraction(idA, idB)
	report := a.kg.CheckCompatibility([]string{idA, idB})
	if len(report.Synergies) > 0 {
		answer += "\n\n✨ These ingredients actually work well together!"
	}

	var followUps []string
	if len(report.Conflicts) > 0 || len(report.Cautions) > 0 {
		followUps = append(followUps, fmt.Sprintf("What can I use instead of %s?", first.Name()))
	}
	followUps = append(followUps, fmt.Sprintf("What order should I apply %s and %s?", first.Name(), second.Name()))

	return &QueryResult{
		Intent:     IntentCompatibility,
		Answer:     answer,
		Confidence: 0.9,
		Sources:    sources,
		FollowUps:  followUps,
	}
}

func (a *Advisor) answerIngredientInfo(terms []string) *QueryResult {
	if len(terms) == 0 || cleanTerm(terms[0]) == "" {
		return &QueryResult{
			Intent:     IntentIngredientInfo,
			Answer:     "What ingredient would you like to know about?",
			Confidence: 0.5,
			Sources:    []string{},
			FollowUps:  []string{"What is retinol?", "Tell me about niacinamide"},
		}
	}

	name := cleanTerm(terms[0])
	ingredient, ok := a.resolve(name)
	if !ok {
		return &QueryResult{
			Intent:     IntentIngredientInfo,
			Answer:     fmt.Sprintf("I don't have detailed information about '%s'. It might be a less common ingredient or known by another name.", name),
			Confidence: 0.3,
			Sources:    []string{},
			FollowUps:  []string{"What ingredients help with acne?"},
		}
	}

	return &QueryResult{
		Intent:     IntentIngredientInfo,
		Answer:     DescribeIngredient(ingredient),
		Confidence: 0.95,
		Sources:    []string{"Ingredient database: " + ingredient.Name()},
		FollowUps:  a.ingredientFollowUps(ingredient),
	}
}

// DescribeIngredient renders the markdown fact sheet for one ingredient
func DescribeIngredient(ingredient *entities.Ingredient) string {
	lines := []string{
		"## " + ingredient.Name(),
		"\n**Category:** " + titleCase(string(ingredient.Category())),
		"\n**What it does:** " + ingredient.Description(),
	}

	if how := ingredient.HowItWorks(); how != "" {
		lines = append(lines, "\n**How it works:** "+how)
	}

	if concerns := ingredient.Concerns(); len(concerns) > 0 {
		names := make([]string, len(concerns))
		for i, c := range concerns {
			names[i] = titleCase(string(c))
		}
		lines = append(lines, "\n**Good for:** "+strings.Join(names, ", "))
	}

	if skinTypes := ingredient.CautionSkinTypes(); len(skinTypes) > 0 {
		names := make([]string, len(skinTypes))
		for i, s := range skinTypes {
			names[i] = titleCase(string(s))
		}
		lines = append(lines, "\n**Use with caution if you have:** "+strings.Join(names, ", ")+" skin")
	}

	if tips := ingredient.UsageTips(); len(tips) > 0 {
		lines = append(lines, "\n**Tips:**")
		for _, tip := range tips {
			lines = append(lines, "• "+tip)
		}
	}

	switch ingredient.TimeOfDay() {
	case valueobjects.TimeAMOnly:
		lines = append(lines, "\n**Best used:** AM only")
	case valueobjects.TimePMOnly:
		lines = append(lines, "\n**Best used:** PM only")
	}

	return strings.Join(lines, "\n")
}

// ingredientFollowUps suggests pairing questions with known partners, at most three
func (a *Advisor) ingredientFollowUps(ingredient *entities.Ingredient) []string {
	partner := "retinol"
	if ingredient.ID().String() == "retinol" {
		partner = "niacinamide"
	}
	followUps := []string{fmt.Sprintf("Can I use %s with %s?", ingredient.Name(), partner)}

	interactions := a.kg.GetAllInteractions(ingredient.ID().String())
	for i := 0; i < len(interactions) && i < 2; i++ {
		other, ok := a.kg.Graph().Ingredient(interactions[i].Other(ingredient.ID()))
		if !ok {
			continue
		}
		question := fmt.Sprintf("Can I use %s with %s?", ingredient.Name(), other.Name())
		if !strings.EqualFold(question, followUps[0]) {
			followUps = append(followUps, question)
		}
	}
	return followUps
}

func (a *Advisor) answerConcernAdvice(terms []string, profile *valueobjects.SkinProfile) *QueryResult {
	if len(terms) == 0 || cleanTerm(terms[0]) == "" {
		return &QueryResult{
			Intent:     IntentConcernAdvice,
			Answer:     "What skin concern would you like help with?",
			Confidence: 0.5,
			Sources:    []string{},
			FollowUps: []string{
				"What should I use for acne?",
				"Help with anti-aging",
				"Best for hyperpigmentation",
			},
		}
	}

	text := cleanTerm(terms[0])
	concern, ok := valueobjects.ConcernFromText(text)
	if !ok {
		return &QueryResult{
			Intent:     IntentConcernAdvice,
			Answer:     fmt.Sprintf("I'm not sure what '%s' refers to. Try asking about specific concerns like acne, aging, dark spots, dryness, or oiliness.", text),
			Confidence: 0.4,
			Sources:    []string{},
			FollowUps:  []string{"What should I use for acne?", "Best ingredients for aging?"},
		}
	}

	ingredients := a.kg.GetIngredientsByConcern(concern)
	if len(ingredients) == 0 {
		return &QueryResult{
			Intent:     IntentConcernAdvice,
			Answer:     fmt.Sprintf("I don't have specific recommendations for %s yet.", concern),
			Confidence: 0.3,
			Sources:    []string{},
			FollowUps:  []string{},
		}
	}

	lines := []string{fmt.Sprintf("## Recommended ingredients for %s:\n", concern)}
	for i, ingredient := range ingredients {
		if i == maxConcernRecommendations {
			break
		}
		lines = append(lines, fmt.Sprintf("**%s** - %s", ingredient.Name(), ingredient.Description()))
		if tips := ingredient.UsageTips(); len(tips) > 0 {
			lines = append(lines, fmt.Sprintf("  _Tip: %s_", tips[0]))
		}
		lines = append(lines, "")
	}

	if profile != nil {
		switch profile.SkinType() {
		case valueobjects.SkinTypeSensitive, valueobjects.SkinTypeDry:
			lines = append(lines, fmt.Sprintf("\n⚠️ Since you have %s skin, start with gentler options and patch test first.", profile.SkinType()))
		}
	}

	var followUps []string
	if len(ingredients) > 1 {
		followUps = append(followUps, fmt.Sprintf("Can I use %s with %s?", ingredients[0].Name(), ingredients[1].Name()))
	}
	followUps = append(followUps, fmt.Sprintf("What is %s?", ingredients[0].Name()), "Build me a routine")

	return &QueryResult{
		Intent:     IntentConcernAdvice,
		Answer:     strings.Join(lines, "\n"),
		Confidence: 0.85,
		Sources:    []string{"Concern: " + string(concern)},
		FollowUps:  followUps,
	}
}

func (a *Advisor) answerRoutineHelp() *QueryResult {
	return &QueryResult{
		Intent:     IntentRoutineHelp,
		Answer:     routineGuide,
		Confidence: 0.95,
		Sources:    []string{"General skincare guidelines"},
		FollowUps: []string{
			"Can I use vitamin C and niacinamide together?",
			"What order for retinol and hyaluronic acid?",
			"What should I use for my skin concerns?",
		},
	}
}

// answerGeneral falls back to the ingredients mentioned anywhere in the
// question: one gets its fact sheet, two or more get a compatibility answer
// for the first pair
func (a *Advisor) answerGeneral(question string) *QueryResult {
	mentioned := a.kg.MentionedIngredients(question)
	switch {
	case len(mentioned) == 1:
		return a.answerIngredientInfo([]string{mentioned[0].ID().String()})
	case len(mentioned) >= 2:
		return a.answerCompatibility([]string{mentioned[0].ID().String(), mentioned[1].ID().String()})
	}

	return &QueryResult{
		Intent:     IntentGeneral,
		Answer:     generalHelp,
		Confidence: 0.3,
		Sources:    []string{},
		FollowUps: []string{
			"Can I use vitamin C with niacinamide?",
			"What should I use for aging?",
			"What order should I apply my products?",
		},
	}
}
