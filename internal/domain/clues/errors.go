package clues

import "errors"

// Sentinel kinds for clue assembly errors.
var (
	// ErrInsufficientData means fewer than five valid, non-excluded
	// templates could be assembled for a player record.
	ErrInsufficientData = errors.New("insufficient data for clue tiers")
)
