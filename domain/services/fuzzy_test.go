package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLevenshtein(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"", "abc", 3},
		{"abc", "", 3},
		{"retinol", "retinol", 0},
		{"retinl", "retinol", 1},
		{"kitten", "sitting", 3},
		{"crème", "creme", 1},
	}

	for _, tt := range tests {
		t.Run(tt.a+"/"+tt.b, func(t *testing.T) {
			assert.Equal(t, tt.want, levenshtein(tt.a, tt.b))
			assert.Equal(t, tt.want, levenshtein(tt.b, tt.a))
		})
	}
}

func TestMatchScore(t *testing.T) {
	tests := []struct {
		name  string
		query string
		key   string
		want  float64
	}{
		{name: "exact", query: "niacinamide", key: "niacinamide", want: 1.0},
		{name: "whole-word containment", query: "vitamin c", key: "vitamin c serum", want: 0.6 + 0.4*9.0/15.0},
		{name: "small share falls back to tokens", query: "acid", key: "lactic acid", want: 0.5},
		{name: "shared prefix only", query: "glycerin", key: "glycolic", want: 1.0 - 3.0/8.0},
		{name: "token overlap", query: "acid lactic", key: "lactic acid", want: 1.0},
		{name: "typo", query: "retinl", key: "retinol", want: 1.0 - 1.0/7.0},
		{name: "blank", query: "", key: "retinol", want: 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, matchScore(tt.query, tt.key), 1e-9)
		})
	}
}

func TestContainmentScore(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want float64
	}{
		{name: "short alias inside a word", a: "ha", b: "phenoxyethanol", want: 0.0},
		{name: "short alias as a word", a: "ha", b: "ha serum", want: 0.0},
		{name: "small share", a: "eth", b: "phenoxy eth anol", want: 0.0},
		{name: "not on a word boundary", a: "retinol", b: "retinoloid", want: 0.0},
		{name: "underscore separates words", a: "vitamin", b: "vitamin_e", want: 0.6 + 0.4*7.0/9.0},
		{name: "either order", a: "vitamin c serum", b: "vitamin c", want: 0.6 + 0.4*9.0/15.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, containmentScore(tt.a, tt.b), 1e-9)
		})
	}
}

func TestContainsPhrase(t *testing.T) {
	tests := []struct {
		text, phrase string
		want         bool
	}{
		{"can i use retinol?", "retinol", true},
		{"retinol", "retinol", true},
		{"retinoloid", "retinol", false},
		{"hahaha", "aha", false},
		{"aha, then aha!", "aha", true},
		{"vitamin c serum", "vitamin c", true},
		{"vitamin ce", "vitamin c", false},
		{"anything", "", false},
		{"is retinol’s strength ok", "retinol", true},
		{"crème retinol", "retinol", true},
		{"retinolé", "retinol", false},
		{"éaha", "aha", false},
		{"日本retinol", "retinol", false},
	}

	for _, tt := range tests {
		t.Run(tt.text+"/"+tt.phrase, func(t *testing.T) {
			assert.Equal(t, tt.want, containsPhrase(tt.text, tt.phrase))
		})
	}
}
