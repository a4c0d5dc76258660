// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package vqvae

import (
	"log/slog"

	"github.com/born-ml/vqvae/internal/vqvae"
	"github.com/born-ml/vqvae/tensor"
)

// Encoder is the VQ-VAE encoder.
type Encoder[B tensor.Backend] = vqvae.Encoder[B]

// ConvDownsampler is the three-stage convolution front of the encoder.
type ConvDownsampler[B tensor.Backend] = vqvae.ConvDownsampler[B]

// ResidualRefiner is the residual stack behind the downsampler.
type ResidualRefiner[B tensor.Backend] = vqvae.ResidualRefiner[B]

// Config holds the encoder topology.
type Config = vqvae.Config

// StageShape is the output size of one downsampler stage.
type StageShape = vqvae.StageShape

// Option configures encoder construction.
type Option = vqvae.Option

// Error types.
type (
	ConfigError   = vqvae.ConfigError
	ShapeError    = vqvae.ShapeError
	ResourceError = vqvae.ResourceError
)

// Error classes.
var (
	ErrConfiguration = vqvae.ErrConfiguration
	ErrShape         = vqvae.ErrShape
	ErrResource      = vqvae.ErrResource
)

// DefaultConfig returns Config{InDim: 1, HDim: 128, NResLayers: 3, ResHDim: 64}.
func DefaultConfig() Config {
	return vqvae.DefaultConfig()
}

// NewEncoder validates cfg and builds an encoder on backend.
//
// Example:
//
//	enc, err := vqvae.NewEncoder(cpu.New(), vqvae.Config{InDim: 1, HDim: 128, NResLayers: 3, ResHDim: 64})
func NewEncoder[B tensor.Backend](backend B, cfg Config, opts ...Option) (*Encoder[B], error) {
	return vqvae.NewEncoder(backend, cfg, opts...)
}

// WithSeed makes weight initialization reproducible.
func WithSeed(seed int64) Option {
	return vqvae.WithSeed(seed)
}

// WithLogger sends debug records to logger.
func WithLogger(logger *slog.Logger) Option {
	return vqvae.WithLogger(logger)
}
