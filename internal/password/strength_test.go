package password_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"volleytrack/training-app/internal/password"
)

func TestEvaluateEmptyInput(t *testing.T) {
	got := password.Evaluate("")
	assert.Equal(t, password.Strength{}, got)
}

func TestEvaluateIsPure(t *testing.T) {
	first := password.Evaluate("Tr0ub4dor&3")
	second := password.Evaluate("Tr0ub4dor&3")
	require.Equal(t, first, second)
}

func TestEvaluateScores(t *testing.T) {
	tests := []struct {
		input     string
		wantScore int
		wantLabel string
	}{
		// Repeated-character run sinks an otherwise length-qualified password.
		{"aaaaaaaa", 0, "Weak"},
		// Length, both cases, digit, and symbol with no penalties.
		{"Tr0ub4dor&3", 4, "Strong"},
		// Contains both a weak word and a numeric sequence.
		{"password123", 0, "Weak"},
		// Everything present but an alphabetic sequence costs a point.
		{"Abcdef1!", 3, "Good"},
		// Too short, single case, no digit or symbol.
		{"vol", 0, "Weak"},
		// Length and digit only.
		{"volleyball7", 2, "Fair"},
	}
	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			got := password.Evaluate(tc.input)
			assert.Equal(t, tc.wantScore, got.Score)
			assert.Equal(t, tc.wantLabel, got.Label)
		})
	}
}

func TestEvaluateSuggestions(t *testing.T) {
	got := password.Evaluate("short")
	assert.Contains(t, got.Suggestions, "Use at least 8 characters")
	assert.Contains(t, got.Suggestions, "Add a number")
	assert.Contains(t, got.Suggestions, "Add a symbol")

	strong := password.Evaluate("Tr0ub4dor&3")
	assert.Empty(t, strong.Suggestions)
}

func TestEvaluateClampsToZero(t *testing.T) {
	// "qwerty" is short, single-case, letter-only, and a weak pattern.
	got := password.Evaluate("qwerty")
	assert.Equal(t, 0, got.Score)
	assert.Equal(t, "Weak", got.Label)
}
