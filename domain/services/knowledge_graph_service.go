package services

import (
	"fmt"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"go.uber.org/zap"

	"skincare-backend/domain/config"
	"skincare-backend/domain/core/aggregates"
	"skincare-backend/domain/core/entities"
	"skincare-backend/domain/core/valueobjects"
)

// IngredientMatch is a fuzzy lookup hit
type IngredientMatch struct {
	Ingredient *entities.Ingredient
	Score      float64
	// MatchedKey is the identifier, name or alias that scored best
	MatchedKey string
}

// PairFinding is one classified pair from a compatibility check.
// IngredientA and IngredientB keep the caller's input order.
type PairFinding struct {
	IngredientA    string
	IngredientB    string
	NameA          string
	NameB          string
	Kind           valueobjects.InteractionKind
	Explanation    string
	Recommendation string
	WaitMinutes    int
}

// WaitTime is a pair that needs a pause between applications
type WaitTime struct {
	IngredientA string
	IngredientB string
	NameA       string
	NameB       string
	Kind        valueobjects.InteractionKind
	Minutes     int
}

// CompatibilityReport is the result of checking every pair in a set
type CompatibilityReport struct {
	IsCompatible bool
	// Ingredients are the distinct resolved identifiers that were checked
	Ingredients []string
	Conflicts   []PairFinding
	Cautions    []PairFinding
	Synergies   []PairFinding
	WaitTimes   []WaitTime
	// InsufficientInput is set when fewer than two distinct ingredients were given
	InsufficientInput bool
}

// resolvedIngredient is a caller-supplied string after catalog lookup.
// Unknown strings keep their normalized text as key and carry no ingredient.
type resolvedIngredient struct {
	key        string
	name       string
	ingredient *entities.Ingredient
}

// KnowledgeGraphService is the query surface over the ingredient graph.
// All methods are safe for concurrent use because the graph never changes.
type KnowledgeGraphService struct {
	graph  *aggregates.KnowledgeGraph
	config *config.DomainConfig
	logger *zap.Logger
}

// NewKnowledgeGraphService creates a new knowledge graph service
func NewKnowledgeGraphService(graph *aggregates.KnowledgeGraph, cfg *config.DomainConfig, logger *zap.Logger) *KnowledgeGraphService {
	if cfg == nil {
		cfg = config.DefaultDomainConfig()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &KnowledgeGraphService{
		graph:  graph,
		config: cfg,
		logger: logger,
	}
}

// Graph returns the underlying aggregate
func (s *KnowledgeGraphService) Graph() *aggregates.KnowledgeGraph {
	return s.graph
}

// GetIngredient finds an ingredient by identifier, display name or alias
func (s *KnowledgeGraphService) GetIngredient(idOrName string) (*entities.Ingredient, bool) {
	return s.graph.Lookup(idOrName)
}

// FindIngredient ranks ingredients by similarity to free text, best first.
// Ties keep catalog order.
func (s *KnowledgeGraphService) FindIngredient(text string) []IngredientMatch {
	query := strings.ToLower(strings.TrimSpace(text))
	if query == "" {
		return []IngredientMatch{}
	}

	matches := make([]IngredientMatch, 0)
	for _, ingredient := range s.graph.Ingredients() {
		best, bestKey := 0.0, ""
		for _, key := range ingredient.LookupKeys() {
			if score := matchScore(query, key); score > best {
				best, bestKey = score, key
			}
		}
		if best >= s.config.FuzzyMatchThreshold {
			matches = append(matches, IngredientMatch{
				Ingredient: ingredient,
				Score:      best,
				MatchedKey: bestKey,
			})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})
	if len(matches) > s.config.MaxFuzzyResults {
		matches = matches[:s.config.MaxFuzzyResults]
	}
	return matches
}

// ResolveIngredient tries an exact lookup and falls back to the top fuzzy
// match when it scores at least ResolveMatchThreshold. exact reports which
// path succeeded.
func (s *KnowledgeGraphService) ResolveIngredient(text string) (ingredient *entities.Ingredient, exact bool, ok bool) {
	if match, found := s.GetIngredient(text); found {
		return match, true, true
	}
	matches := s.FindIngredient(text)
	if len(matches) == 0 || matches[0].Score < s.config.ResolveMatchThreshold {
		return nil, false, false
	}
	return matches[0].Ingredient, false, true
}

// GetInteraction returns the record between two ingredients regardless of
// argument order
func (s *KnowledgeGraphService) GetInteraction(a, b string) (*entities.Interaction, bool) {
	return s.interactionBetween(s.resolve(a), s.resolve(b))
}

func (s *KnowledgeGraphService) interactionBetween(a, b resolvedIngredient) (*entities.Interaction, bool) {
	if a.ingredient == nil || b.ingredient == nil {
		return nil, false
	}
	return s.graph.Interaction(a.ingredient.ID(), b.ingredient.ID())
}

// ExplainInteraction renders a sentence describing how two ingredients behave together
func (s *KnowledgeGraphService) ExplainInteraction(a, b string) string {
	ra, rb := s.resolve(a), s.resolve(b)
	interaction, ok := s.interactionBetween(ra, rb)
	if !ok {
		return fmt.Sprintf("No known interaction between %s and %s. They should be safe to use together, but patch test if unsure.", ra.name, rb.name)
	}

	switch interaction.Kind() {
	case valueobjects.InteractionConflict:
		return joinSentences(
			fmt.Sprintf("⚠️ %s and %s should not be used together.", ra.name, rb.name),
			interaction.Explanation(),
			interaction.Recommendation(),
		)
	case valueobjects.InteractionCaution:
		text := joinSentences(
			fmt.Sprintf("%s and %s can be used together with caution.", ra.name, rb.name),
			interaction.Explanation(),
			interaction.Recommendation(),
		)
		if interaction.WaitMinutes() > 0 {
			text += fmt.Sprintf(" Wait %d minutes between applying them.", interaction.WaitMinutes())
		}
		return text
	case valueobjects.InteractionSynergy:
		return joinSentences(
			fmt.Sprintf("✨ %s and %s work well together!", ra.name, rb.name),
			interaction.Explanation(),
			interaction.Recommendation(),
		)
	default:
		return joinSentences(
			fmt.Sprintf("%s and %s have no significant interaction.", ra.name, rb.name),
			interaction.Explanation(),
		)
	}
}

// CheckCompatibility classifies every unordered pair of the distinct inputs.
// Pairs are visited in input order (i < j), which makes the work quadratic in
// the number of ingredients.
func (s *KnowledgeGraphService) CheckCompatibility(ids []string) *CompatibilityReport {
	resolved := s.resolveDistinct(ids)

	report := &CompatibilityReport{
		IsCompatible: true,
		Ingredients:  make([]string, 0, len(resolved)),
		Conflicts:    []PairFinding{},
		Cautions:     []PairFinding{},
		Synergies:    []PairFinding{},
		WaitTimes:    []WaitTime{},
	}
	for _, r := range resolved {
		report.Ingredients = append(report.Ingredients, r.key)
	}

	if len(resolved) < 2 {
		report.InsufficientInput = true
		return report
	}

	for i := 0; i < len(resolved); i++ {
		for j := i + 1; j < len(resolved); j++ {
			a, b := resolved[i], resolved[j]
			interaction, ok := s.interactionBetween(a, b)
			if !ok {
				continue
			}

			finding := PairFinding{
				IngredientA:    a.key,
				IngredientB:    b.key,
				NameA:          a.name,
				NameB:          b.name,
				Kind:           interaction.Kind(),
				Explanation:    interaction.Explanation(),
				Recommendation: interaction.Recommendation(),
				WaitMinutes:    interaction.WaitMinutes(),
			}

			switch interaction.Kind() {
			case valueobjects.InteractionConflict:
				report.Conflicts = append(report.Conflicts, finding)
			case valueobjects.InteractionCaution:
				report.Cautions = append(report.Cautions, finding)
			case valueobjects.InteractionSynergy:
				report.Synergies = append(report.Synergies, finding)
			}

			if interaction.WaitMinutes() > 0 {
				report.WaitTimes = append(report.WaitTimes, WaitTime{
					IngredientA: a.key,
					IngredientB: b.key,
					NameA:       a.name,
					NameB:       b.name,
					Kind:        interaction.Kind(),
					Minutes:     interaction.WaitMinutes(),
				})
			}
		}
	}

	report.IsCompatible = len(report.Conflicts) == 0

	s.logger.Debug("Checked compatibility",
		zap.Int("ingredients", len(resolved)),
		zap.Int("conflicts", len(report.Conflicts)),
		zap.Int("cautions", len(report.Cautions)),
		zap.Int("synergies", len(report.Synergies)),
	)

	return report
}

// GetIngredientsByConcern returns ingredients that address the concern,
// highest priority first with ties in catalog order
func (s *KnowledgeGraphService) GetIngredientsByConcern(concern valueobjects.Concern) []*entities.Ingredient {
	matches := make([]*entities.Ingredient, 0)
	for _, ingredient := range s.graph.Ingredients() {
		if ingredient.Addresses(concern) {
			matches = append(matches, ingredient)
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Priority() > matches[j].Priority()
	})
	return matches
}

// GetRecommendedIngredients merges the per-concern rankings of the profile.
// Ingredients flagged for the profile's skin type are dropped unless nothing
// else would remain. The result is ordered by how many of the profile's
// concerns each ingredient covers.
func (s *KnowledgeGraphService) GetRecommendedIngredients(profile valueobjects.SkinProfile) []*entities.Ingredient {
	var union []*entities.Ingredient
	matched := make(map[valueobjects.IngredientID]int)

	for _, concern := range profile.Concerns() {
		for _, ingredient := range s.GetIngredientsByConcern(concern) {
			if _, seen := matched[ingredient.ID()]; !seen {
				union = append(union, ingredient)
			}
			matched[ingredient.ID()]++
		}
	}

	safe := make([]*entities.Ingredient, 0, len(union))
	for _, ingredient := range union {
		if !ingredient.NeedsCautionFor(profile.SkinType()) {
			safe = append(safe, ingredient)
		}
	}
	if len(safe) == 0 {
		safe = union
	}

	result := make([]*entities.Ingredient, len(safe))
	copy(result, safe)
	sort.SliceStable(result, func(i, j int) bool {
		return matched[result[i].ID()] > matched[result[j].ID()]
	})
	return result
}

// GetAllInteractions returns every record touching the ingredient
func (s *KnowledgeGraphService) GetAllInteractions(id string) []*entities.Interaction {
	ingredient, ok := s.GetIngredient(id)
	if !ok {
		return []*entities.Interaction{}
	}
	interactions := s.graph.InteractionsOf(ingredient.ID())
	if interactions == nil {
		return []*entities.Interaction{}
	}
	return interactions
}

// Ingredients returns the whole catalog in insertion order
func (s *KnowledgeGraphService) Ingredients() []*entities.Ingredient {
	return s.graph.Ingredients()
}

// Interactions returns every interaction record
func (s *KnowledgeGraphService) Interactions() []*entities.Interaction {
	return s.graph.Interactions()
}

// IngredientsByCategory returns the catalog entries of one category in catalog order
func (s *KnowledgeGraphService) IngredientsByCategory(category valueobjects.Category) []*entities.Ingredient {
	matches := make([]*entities.Ingredient, 0)
	for _, ingredient := range s.graph.Ingredients() {
		if ingredient.Category() == category {
			matches = append(matches, ingredient)
		}
	}
	return matches
}

// MentionedIngredients scans free text for whole-word occurrences of any
// ingredient name or alias, returning hits in catalog order
func (s *KnowledgeGraphService) MentionedIngredients(text string) []*entities.Ingredient {
	text = strings.ToLower(text)
	found := make([]*entities.Ingredient, 0)
	for _, ingredient := range s.graph.Ingredients() {
		keys := append([]string{strings.ToLower(ingredient.Name())}, lowerAll(ingredient.Aliases())...)
		for _, key := range keys {
			if containsPhrase(text, key) {
				found = append(found, ingredient)
				break
			}
		}
	}
	return found
}

// DisplayName returns the catalog name for a resolvable input, the trimmed
// input otherwise
func (s *KnowledgeGraphService) DisplayName(idOrName string) string {
	return s.resolve(idOrName).name
}

func (s *KnowledgeGraphService) resolve(raw string) resolvedIngredient {
	trimmed := strings.TrimSpace(raw)
	if ingredient, ok := s.graph.Lookup(trimmed); ok {
		return resolvedIngredient{
			key:        ingredient.ID().String(),
			name:       ingredient.Name(),
			ingredient: ingredient,
		}
	}
	return resolvedIngredient{key: strings.ToLower(trimmed), name: trimmed}
}

// resolveDistinct resolves inputs and drops blanks and repeats, keeping the
// first occurrence of each
func (s *KnowledgeGraphService) resolveDistinct(raw []string) []resolvedIngredient {
	seen := make(map[string]bool, len(raw))
	out := make([]resolvedIngredient, 0, len(raw))
	for _, r := range raw {
		resolved := s.resolve(r)
		if resolved.key == "" || seen[resolved.key] {
			continue
		}
		seen[resolved.key] = true
		out = append(out, resolved)
	}
	return out
}

func joinSentences(parts ...string) string {
	kept := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, " ")
}

func lowerAll(values []string) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = strings.ToLower(v)
	}
	return out
}

// containsPhrase reports whether phrase occurs in text bounded by
// characters that are neither letters nor digits, or by the ends of the text
func containsPhrase(text, phrase string) bool {
	if phrase == "" {
		return false
	}
	for start := 0; start <= len(text)-len(phrase); {
		idx := strings.Index(text[start:], phrase)
		if idx < 0 {
			return false
		}
		begin := start + idx
		end := begin + len(phrase)
		before, _ := utf8.DecodeLastRuneInString(text[:begin])
		after, _ := utf8.DecodeRuneInString(text[end:])
		if isBoundary(before) && isBoundary(after) {
			return true
		}
		start = begin + 1
	}
	return false
}

func isBoundary(r rune) bool {
	return r == utf8.RuneError || (!unicode.IsLetter(r) && !unicode.IsDigit(r))
}
