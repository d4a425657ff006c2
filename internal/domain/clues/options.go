package clues

// Option applies a configuration option to the Builder.
type Option func(*Builder)

// WithClubName sets the club noun used in rendered clue text,
// e.g. "Brighton" instead of the default "the club".
func WithClubName(name string) Option {
	return func(b *Builder) {
		if name != "" {
			b.clubName = name
		}
	}
}
