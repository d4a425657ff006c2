package metrics

import "errors"

// Sentinel kinds for metrics errors.
var (
	ErrRegister = errors.New("metric registration failed")
	ErrDisabled = errors.New("metrics disabled")
)
