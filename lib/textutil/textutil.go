package textutil

import (
	"strings"
	"unicode"

	"github.com/antzucaro/matchr"
)

// StripSpace removes every whitespace rune from s, including full-width
// spaces (U+3000), which portal option text mixes freely with ASCII spaces.
func StripSpace(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}

// ContainsStripped reports whether text contains target once all whitespace
// has been stripped from text. Matching is case sensitive.
func ContainsStripped(text, target string) bool {
	return strings.Contains(StripSpace(text), target)
}

// Closest returns the candidate most similar to target along with its
// Jaro-Winkler similarity. Returns "" and 0 when candidates is empty.
func Closest(target string, candidates []string) (string, float64) {
	var mostSimilar string
	var similarity float64
	for _, c := range candidates {
		sim := matchr.JaroWinkler(target, c, false)
		if sim > similarity {
			similarity = sim
			mostSimilar = c
		}
	}
	return mostSimilar, similarity
}
