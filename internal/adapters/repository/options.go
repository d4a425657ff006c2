package repository

import "time"

// LogOption applies a configuration option to the RecencyLog.
type LogOption func(*RecencyLog)

// WithLogLocation sets the timezone used to interpret persisted dates.
// It must match the selector's daily-rollover zone.
func WithLogLocation(loc *time.Location) LogOption {
	return func(l *RecencyLog) {
		if loc != nil {
			l.loc = loc
		}
	}
}
