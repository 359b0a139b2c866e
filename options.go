package plainify

import "log/slog"

// Option configures a Converter.
type Option func(*Converter)

// WithDescriber enables image enrichment through the given describer.
// Without this option image nodes carry only their name and no remote
// call is ever made.
func WithDescriber(d Describer) Option {
	return func(c *Converter) {
		c.describer = d
	}
}

// WithLogger sets the logger for non-fatal degradation warnings
// (default: slog.Default()).
func WithLogger(l *slog.Logger) Option {
	return func(c *Converter) {
		c.logger = l
	}
}
