// Package guess validates free-text name guesses against the daily player.
//
// Matching is exact after trimming and case-folding: no fuzzy matching and
// no spell-correction. Internal hyphens and spaces must match exactly as
// stored; knowing the exact spelling is part of the challenge.
package guess

import (
	"strings"

	"github.com/albionarcade/gully/internal/domain/model"
)

// quoteNormalizer maps curly quotes and apostrophes to their straight
// forms so pasted text compares equal to the dataset spelling.
var quoteNormalizer = strings.NewReplacer(
	"‘", "'", // left single quote
	"’", "'", // right single quote
	"“", `"`, // left double quote
	"”", `"`, // right double quote
)

// Validate reports whether the guessed first and last name match the
// player record. Empty input (after trimming) returns ErrEmptyGuess;
// callers treat that as an ordinary rejected guess, not a fault.
func Validate(first, last string, p model.Player) (bool, error) {
	first = normalize(first)
	last = normalize(last)
	if first == "" && last == "" {
		return false, ErrEmptyGuess
	}

	return first == normalize(p.FirstName) && last == normalize(p.LastName), nil
}

func normalize(s string) string {
	s = strings.TrimSpace(s)
	s = quoteNormalizer.Replace(s)
	return strings.ToLower(s)
}
