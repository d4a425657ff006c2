package ai

import "errors"

// Sentinel kinds for AI collaborator errors.
var (
	ErrDisabled   = errors.New("ai features are not configured")
	ErrThrottled  = errors.New("ai request throttled")
	ErrClientInit = errors.New("ai client init failed")
	ErrGenerate   = errors.New("ai generation failed")
)
