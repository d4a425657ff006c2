// Package selection implements the deterministic daily player pick.
package selection

import (
	"time"

	"github.com/albionarcade/gully/pkg/logger"
)

// Option applies a configuration option to the Selector.
type Option func(*Selector)

// WithWindowDays sets the no-repeat window length in days.
func WithWindowDays(days int) Option {
	return func(s *Selector) {
		if days > 0 {
			s.windowDays = days
		}
	}
}

// WithLocation sets the canonical timezone for daily rollover.
func WithLocation(loc *time.Location) Option {
	return func(s *Selector) {
		if loc != nil {
			s.loc = loc
		}
	}
}

// WithLogger sets a custom logger for the selector.
func WithLogger(l logger.Logger) Option {
	return func(s *Selector) {
		if l != nil {
			s.logger = l
		}
	}
}
