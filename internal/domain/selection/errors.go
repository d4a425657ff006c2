package selection

import "errors"

// Sentinel kinds for selection errors.
var (
	// ErrNoPlayers means the table holds no player eligible for selection.
	ErrNoPlayers = errors.New("no players available")

	// ErrPoolExhausted means eligibility filtering left zero candidates
	// even after the window reset fallback.
	ErrPoolExhausted = errors.New("selection pool exhausted")
)
