// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package vqvae provides the encoder half of a Vector-Quantized Variational
// Autoencoder.
//
// # Overview
//
// The encoder maps a [batch, in_dim, H, W] float32 tensor to a
// [batch, h_dim, H', W'] latent feature map in two parts:
//   - ConvDownsampler: three convolution stages (kernels 2x4, 2x4, 1x3;
//     stride 1; padding 1) taking in_dim to h_dim/2 to h_dim channels
//   - ResidualRefiner: n_res_layers residual blocks at constant shape
//
// With stride 1 and padding 1 the height grows by 1, 1 and 2 while the
// width shrinks by 1, 1 and 0, so (H, W) becomes (H+4, W-2).
//
// # Basic Usage
//
//	import (
//	    "github.com/born-ml/vqvae/backend/cpu"
//	    "github.com/born-ml/vqvae/tensor"
//	    "github.com/born-ml/vqvae/vqvae"
//	)
//
//	func main() {
//	    backend := cpu.New()
//	    enc, err := vqvae.NewEncoder(backend, vqvae.DefaultConfig(), vqvae.WithSeed(1))
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//
//	    x := tensor.Randn[float32](tensor.Shape{200, 1, 2, 200}, nil, backend)
//	    z, err := enc.Forward(x) // [200, 128, 6, 198]
//	}
//
// # Errors
//
// Every error matches exactly one of ErrConfiguration, ErrShape or
// ErrResource under errors.Is, and the matching *ConfigError,
// *ShapeError or *ResourceError under errors.As.
//
// # Thread Safety
//
// Forward may be called from many goroutines at once. Loading weights
// while a Forward is in flight must be synchronized by the caller.
package vqvae
