package vqvae

import "fmt"

// Config holds the four integers that fix the encoder topology.
//
// The encoder copies Config at construction; changing a Config value later
// has no effect on an existing encoder.
type Config struct {
	InDim      int // Input channel count
	HDim       int // Latent channel count; even, stage 1 emits HDim/2
	NResLayers int // Residual block count, 0 disables refinement
	ResHDim    int // Hidden channel width inside each residual block
}

// DefaultConfig returns the reference configuration: single-channel input,
// 128 latent channels, 3 residual blocks of width 64.
func DefaultConfig() Config {
	return Config{
		InDim:      1,
		HDim:       128,
		NResLayers: 3,
		ResHDim:    64,
	}
}

// Validate reports the first invalid field as a *ConfigError.
func (c Config) Validate() error {
	switch {
	case c.InDim <= 0:
		return &ConfigError{Field: "in_dim", Value: c.InDim, Reason: "must be positive"}
	case c.HDim <= 0:
		return &ConfigError{Field: "h_dim", Value: c.HDim, Reason: "must be positive"}
	case c.HDim%2 != 0:
		return &ConfigError{Field: "h_dim", Value: c.HDim, Reason: "must be even"}
	case c.NResLayers < 0:
		return &ConfigError{Field: "n_res_layers", Value: c.NResLayers, Reason: "must not be negative"}
	case c.ResHDim <= 0:
		return &ConfigError{Field: "res_h_dim", Value: c.ResHDim, Reason: "must be positive"}
	}
	return nil
}

// String returns the configuration in constructor order.
func (c Config) String() string {
	return fmt.Sprintf("in_dim=%d, h_dim=%d, n_res_layers=%d, res_h_dim=%d",
		c.InDim, c.HDim, c.NResLayers, c.ResHDim)
}
