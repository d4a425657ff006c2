package repository

import "errors"

// Sentinel kinds for repository errors.
var (
	ErrNoPlayers     = errors.New("player table unavailable")
	ErrUnknownPlayer = errors.New("unknown player id")
	ErrLogCorrupt    = errors.New("recency log unreadable")
	ErrLogPersist    = errors.New("recency log persist failed")
)
