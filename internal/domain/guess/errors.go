package guess

import "errors"

// Sentinel kinds for guess validation errors.
var (
	ErrEmptyGuess = errors.New("empty guess")
)
