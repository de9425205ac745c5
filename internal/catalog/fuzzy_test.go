package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSimilarity_IdenticalStrings(t *testing.T) {
	for _, s := range []string{"JavaScript", "a", "", "XYZ University"} {
		assert.InDelta(t, 1.0, Similarity(s, s), 1e-9, "Similarity(%q, %q)", s, s)
	}
}

func TestSimilarity_CaseInsensitiveEquality(t *testing.T) {
	assert.InDelta(t, 1.0, Similarity("javascript", "JavaScript"), 1e-9)
}

func TestSimilarity_Symmetry(t *testing.T) {
	pairs := [][2]string{
		{"JavaScript", "Jscript"},
		{"PostgreSQL", "Postgres"},
		{"Go", "Golang"},
		{"", "nonempty"},
	}
	for _, p := range pairs {
		assert.InDelta(t, Similarity(p[0], p[1]), Similarity(p[1], p[0]), 1e-9,
			"Similarity(%q, %q) vs reverse", p[0], p[1])
	}
}

func TestSimilarity_Containment(t *testing.T) {
	assert.InDelta(t, containmentScore, Similarity("Postgres", "PostgreSQL"), 1e-9)
	assert.InDelta(t, containmentScore, Similarity("XYZ University of Engineering", "XYZ University"), 1e-9)
}

func TestSimilarity_EmptyString(t *testing.T) {
	assert.Zero(t, Similarity("", "anything"))
}

func TestSimilarity_EditDistanceFallback(t *testing.T) {
	// levenshtein("jscript", "javascript") = 3 over max length 10.
	assert.InDelta(t, 0.7, Similarity("Jscript", "JavaScript"), 1e-9)
}

func TestLevenshtein(t *testing.T) {
	tests := []struct {
		a, b     string
		expected int
	}{
		{"", "", 0},
		{"abc", "", 3},
		{"", "abc", 3},
		{"kitten", "sitting", 3},
		{"flaw", "lawn", 2},
		{"same", "same", 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, levenshtein(tt.a, tt.b), "levenshtein(%q, %q)", tt.a, tt.b)
	}
}
