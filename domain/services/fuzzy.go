package services

import (
	"strings"
	"unicode"
)

const (
	minContainedRunes = 3
	minContainedShare = 0.5
)

// matchScore scores how well a query matches a single lookup key (0.0 to 1.0).
// Both inputs are expected lowercased and trimmed. The best of four measures
// wins: exact equality, substring containment, word-token overlap and
// Levenshtein ratio.
func matchScore(query, key string) float64 {
	if query == "" || key == "" {
		return 0.0
	}
	if query == key {
		return 1.0
	}

	best := containmentScore(query, key)

	if jaccard := jaccardSimilarity(tokenize(query), tokenize(key)); jaccard > best {
		best = jaccard
	}

	if ratio := levenshteinRatio(query, key); ratio > best {
		best = ratio
	}

	return best
}

// containmentScore credits a shorter string that appears as whole words in
// the longer one and covers at least half of it. Short aliases like "ha" are
// left to the other measures.
func containmentScore(a, b string) float64 {
	short, long := a, b
	if runeLen(short) > runeLen(long) {
		short, long = long, short
	}

	shortLen, longLen := runeLen(short), runeLen(long)
	if shortLen < minContainedRunes || float64(shortLen)/float64(longLen) < minContainedShare {
		return 0.0
	}
	if !containsPhrase(long, short) {
		return 0.0
	}
	return 0.6 + 0.4*float64(shortLen)/float64(longLen)
}

// tokenize breaks text into a set of lowercase words, splitting on anything
// that is not a letter or digit
func tokenize(text string) map[string]bool {
	words := make(map[string]bool)
	for _, word := range strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	}) {
		words[word] = true
	}
	return words
}

// jaccardSimilarity calculates Jaccard index: |A ∩ B| / |A ∪ B|
func jaccardSimilarity(set1, set2 map[string]bool) float64 {
	if len(set1) == 0 || len(set2) == 0 {
		return 0.0
	}

	intersection := 0
	for word := range set1 {
		if set2[word] {
			intersection++
		}
	}
	union := len(set1) + len(set2) - intersection
	return float64(intersection) / float64(union)
}

// levenshteinRatio returns 1 - distance/max(len), so identical strings score 1
func levenshteinRatio(a, b string) float64 {
	longest := runeLen(a)
	if n := runeLen(b); n > longest {
		longest = n
	}
	if longest == 0 {
		return 1.0
	}
	return 1.0 - float64(levenshtein(a, b))/float64(longest)
}

// levenshtein computes the edit distance between two strings using two rows
// of the dynamic programming table
func levenshtein(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	if len(ra) == 0 {
		return len(rb)
	}
	if len(rb) == 0 {
		return len(ra)
	}

	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}

	return prev[len(rb)]
}

func runeLen(s string) int {
	return len([]rune(s))
}
