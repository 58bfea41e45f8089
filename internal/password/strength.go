// Package password scores candidate passwords for the registration flow and
// the strength meter shown in the UI. Scoring is a pure function of the
// string: same input, same result, no I/O.
package password

import (
	"regexp"
	"strings"
)

// Strength is the evaluation result: a 0-4 score, a human-readable label
// with a presentation color, and concrete suggestions for improvement.
type Strength struct {
	Score       int      `json:"score"` // 0 (weakest) to 4 (strongest)
	Label       string   `json:"label,omitempty"`
	Color       string   `json:"color,omitempty"`
	Suggestions []string `json:"suggestions,omitempty"`
}

var (
	lowerRe = regexp.MustCompile(`[a-z]`)
	upperRe = regexp.MustCompile(`[A-Z]`)
	digitRe = regexp.MustCompile(`[0-9]`)
	symbolRe = regexp.MustCompile("[!@#$%^&*()_+\\-=\\[\\]{};':\"\\\\|,.<>/?~`]")
)

// Common passwords and keyboard walks that sink a score outright.
var weakPatterns = []string{
	"password",
	"qwerty",
	"123456",
	"letmein",
	"iloveyou",
	"welcome",
	"admin",
}

// Sequence tables for the 3-character-run check.
var sequences = []string{
	"abcdefghijklmnopqrstuvwxyz",
	"0123456789",
}

// Evaluate scores a candidate password. The empty string yields a neutral
// zero result with no label and no suggestions.
func Evaluate(candidate string) Strength {
	if candidate == "" {
		return Strength{}
	}

	score := 0
	var suggestions []string

	if len(candidate) >= 8 {
		score++
	} else {
		suggestions = append(suggestions, "Use at least 8 characters")
	}
	if len(candidate) >= 12 {
		score++
	}

	if lowerRe.MatchString(candidate) && upperRe.MatchString(candidate) {
		score++
	} else {
		suggestions = append(suggestions, "Mix upper and lower case letters")
	}

	if digitRe.MatchString(candidate) {
		score++
	} else {
		suggestions = append(suggestions, "Add a number")
	}

	if symbolRe.MatchString(candidate) {
		score++
	} else {
		suggestions = append(suggestions, "Add a symbol")
	}

	if hasWeakPattern(candidate) {
		score -= 2
		suggestions = append(suggestions, "Avoid common words and repeated characters")
	}
	if hasSequentialRun(candidate) {
		score--
		suggestions = append(suggestions, "Avoid sequential characters like abc or 123")
	}

	if score < 0 {
		score = 0
	}
	if score > 4 {
		score = 4
	}

	label, color := labelForScore(score)
	return Strength{
		Score:       score,
		Label:       label,
		Color:       color,
		Suggestions: suggestions,
	}
}

// hasWeakPattern reports whether the password contains a known-weak word or
// a run of three or more identical characters.
func hasWeakPattern(candidate string) bool {
	lowered := strings.ToLower(candidate)
	for _, p := range weakPatterns {
		if strings.Contains(lowered, p) {
			return true
		}
	}
	for i := 2; i < len(lowered); i++ {
		if lowered[i] == lowered[i-1] && lowered[i] == lowered[i-2] {
			return true
		}
	}
	return false
}

// hasSequentialRun reports whether any 3-character window of the password is
// a substring of the alphabetic or numeric sequence tables.
func hasSequentialRun(candidate string) bool {
	lowered := strings.ToLower(candidate)
	for i := 0; i+3 <= len(lowered); i++ {
		window := lowered[i : i+3]
		for _, seq := range sequences {
			if strings.Contains(seq, window) {
				return true
			}
		}
	}
	return false
}

func labelForScore(score int) (label, color string) {
	switch score {
	case 0, 1:
		return "Weak", "red"
	case 2:
		return "Fair", "orange"
	case 3:
		return "Good", "yellow"
	default:
		return "Strong", "green"
	}
}
