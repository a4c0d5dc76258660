package vqvae

import (
	"log/slog"
	"math/rand"
)

// Option configures encoder construction.
type Option func(*options)

type options struct {
	rng    *rand.Rand
	logger *slog.Logger
}

func defaultOptions() options {
	return options{
		logger: slog.New(slog.DiscardHandler),
	}
}

// WithSeed makes weight initialization reproducible: two encoders built with
// the same Config and seed hold identical parameters.
func WithSeed(seed int64) Option {
	return func(o *options) {
		o.rng = rand.New(rand.NewSource(seed)) //nolint:gosec // G404: weight init is not security-critical
	}
}

// WithLogger sends construction and forward-pass debug records to logger.
// The encoder is silent by default.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}
