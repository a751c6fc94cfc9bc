// Package moderation censors forbidden words in user messages before they
// reach the log. Matching runs on a normalized view of the text (lowercase,
// leet speak folded, punctuation and spacing stripped) so spaced-out or
// obfuscated variants are still caught.
package moderation

import (
	"unicode"

	goahocorasick "github.com/anknown/ahocorasick"
)

type Moderator struct {
	matcher     *goahocorasick.Machine
	replacement rune
}

// NewModerator builds the Aho-Corasick automaton from the forbidden word
// list, normalized the same way message text will be at match time.
func NewModerator(words []string, replacement rune) (Moderator, error) {
	patterns := make([][]rune, len(words))
	for i, word := range words {
		normalized, _ := normalize(word)
		patterns[i] = normalized
	}

	machine := new(goahocorasick.Machine)
	if err := machine.Build(patterns); err != nil {
		return Moderator{}, err
	}
	return Moderator{matcher: machine, replacement: replacement}, nil
}

// Censor masks every forbidden span in the original text, preserving its
// length and spacing. It returns the sanitized text and the number of spans
// that were masked; zero means the text came back untouched.
func (m *Moderator) Censor(original string) (string, int) {
	normalized, indexes := normalize(original)
	if len(normalized) == 0 {
		return original, 0
	}

	spans := m.matcher.MultiPatternSearch(normalized, false)
	if len(spans) == 0 {
		return original, 0
	}

	masked := []rune(original)
	for _, span := range spans {
		start := span.Pos
		end := start + len(span.Word)
		if start < 0 || end > len(indexes) {
			continue
		}
		// Map the normalized span back to the original rune range,
		// masking everything in between (including stripped noise).
		for i := indexes[start]; i <= indexes[end-1]; i++ {
			masked[i] = m.replacement
		}
	}
	return string(masked), len(spans)
}

// normalize lowercases, folds leet speak, and strips noise runes. The second
// return value maps each normalized rune back to its original index.
func normalize(input string) ([]rune, []int) {
	original := []rune(input)
	normalized := make([]rune, 0, len(original))
	indexes := make([]int, 0, len(original))

	for i, r := range original {
		folded := foldLeet(r)
		if unicode.IsPunct(folded) || unicode.IsSpace(folded) || unicode.IsSymbol(folded) {
			continue
		}
		normalized = append(normalized, unicode.ToLower(folded))
		indexes = append(indexes, i)
	}
	return normalized, indexes
}

// foldLeet maps common leet speak substitutions back to plain letters.
func foldLeet(r rune) rune {
	switch r {
	case '4', '@':
		return 'a'
	case '3':
		return 'e'
	case '1', '!', '|':
		return 'i'
	case '0':
		return 'o'
	case '5', '$':
		return 's'
	case '7':
		return 't'
	}
	return r
}
