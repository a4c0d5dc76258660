// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package nn provides the neural network building blocks of the encoder.
//
// # Overview
//
// This package contains:
//   - Layers: Conv2D
//   - Activations: ReLU
//   - Containers: Sequential
//   - Residual blocks: ResidualBlock, ResidualStack
//   - Utilities: Module interface, Parameter
//   - Initialization: Xavier, Zeros
//
// # Basic Usage
//
//	import (
//	    "github.com/born-ml/vqvae/backend/cpu"
//	    "github.com/born-ml/vqvae/nn"
//	)
//
//	func main() {
//	    backend := cpu.New()
//
//	    stack := nn.NewResidualStack(128, 128, 64, 3, nil, backend)
//	    output := stack.Forward(input) // same shape as input
//	}
//
// # Layers
//
// Conv2D: 2D convolution with rectangular kernels, computed with im2col
//
//	conv := nn.NewConv2D(inChannels, outChannels, kernelH, kernelW, stride, padding, useBias, rng, backend)
//
// # State Dicts
//
// StateDict keys follow PyTorch module naming ("0.weight",
// "stack.1.res_block.3.weight"), so weights exported by PyTorch can be
// loaded with LoadStateDict once converted to raw tensors.
package nn
