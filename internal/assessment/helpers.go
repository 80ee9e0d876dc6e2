package assessment

import (
	"strings"
	"unicode"

	"readiness/internal/model"
)

// leadingPersona returns the highest-scoring persona; ties go to the earlier persona
func leadingPersona(scores map[model.PersonaType]float64) (model.PersonaType, float64) {
	best := model.PersonaObserver
	bestScore := -1.0
	for _, p := range model.Personas {
		if s := scores[p]; s > bestScore {
			best, bestScore = p, s
		}
	}
	return best, bestScore
}

func answeredSet(responses []model.AssessmentResponse) map[string]bool {
	set := make(map[string]bool, len(responses))
	for _, r := range responses {
		set[r.QuestionID] = true
	}
	return set
}

// tokenize lower-cases s and splits it into words. Apostrophes stay inside words.
func tokenize(s string) []string {
	return strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '\''
	})
}

// containsPhrase reports whether phrase occurs in tokens on word boundaries
func containsPhrase(tokens []string, phrase string) bool {
	words := tokenize(phrase)
	if len(words) == 0 || len(words) > len(tokens) {
		return false
	}
	for i := 0; i+len(words) <= len(tokens); i++ {
		match := true
		for j, w := range words {
			if tokens[i+j] != w {
				match = false
				break
			}
		}
		if match {
			return true
		}
	}
	return false
}

func countPhrases(tokens []string, phrases []string) int {
	n := 0
	for _, p := range phrases {
		if containsPhrase(tokens, p) {
			n++
		}
	}
	return n
}

// normalizeText lower-cases s and folds typographic apostrophes for substring rules
func normalizeText(s string) string {
	return strings.ToLower(strings.ReplaceAll(s, "\u2019", "'"))
}

// containsSubstring reports whether the lower-cased phrase occurs anywhere in text.
// text must already be normalized.
func containsSubstring(text, phrase string) bool {
	phrase = normalizeText(strings.TrimSpace(phrase))
	return phrase != "" && strings.Contains(text, phrase)
}

func containsAnySubstring(text string, phrases []string) bool {
	for _, p := range phrases {
		if containsSubstring(text, p) {
			return true
		}
	}
	return false
}

func countSubstrings(text string, phrases []string) int {
	n := 0
	for _, p := range phrases {
		if containsSubstring(text, p) {
			n++
		}
	}
	return n
}

func containsFold(list []string, v string) bool {
	for _, s := range list {
		if strings.EqualFold(s, v) {
			return true
		}
	}
	return false
}
