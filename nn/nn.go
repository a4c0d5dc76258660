// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package nn

import (
	"math/rand"

	"github.com/born-ml/vqvae/internal/nn"
	"github.com/born-ml/vqvae/tensor"
)

// Layers

// Conv2D represents a 2D convolutional layer.
type Conv2D[B tensor.Backend] = nn.Conv2D[B]

// NewConv2D creates a new 2D convolutional layer with Xavier-initialized
// weights. A nil rng uses the math/rand global source.
//
// Example:
//
//	backend := cpu.New()
//	conv := nn.NewConv2D(1, 64, 2, 4, 1, 1, true, nil, backend)  // in=1, out=64, kernel=2x4, stride=1, padding=1
func NewConv2D[B tensor.Backend](
	inChannels, outChannels int,
	kernelH, kernelW int,
	stride, padding int,
	useBias bool,
	rng *rand.Rand,
	backend B,
) *Conv2D[B] {
	return nn.NewConv2D(inChannels, outChannels, kernelH, kernelW, stride, padding, useBias, rng, backend)
}

// Activations

// ReLU represents the Rectified Linear Unit activation function.
type ReLU[B tensor.Backend] = nn.ReLU[B]

// NewReLU creates a new ReLU activation layer.
//
// Example:
//
//	relu := nn.NewReLU[*cpu.Backend]()
func NewReLU[B tensor.Backend]() *ReLU[B] {
	return nn.NewReLU[B]()
}

// Containers

// Sequential chains modules, feeding each output into the next.
type Sequential[B tensor.Backend] = nn.Sequential[B]

// NewSequential creates a sequential container.
//
// Example:
//
//	model := nn.NewSequential[*cpu.Backend](
//	    nn.NewConv2D(1, 64, 2, 4, 1, 1, true, nil, backend),
//	    nn.NewReLU[*cpu.Backend](),
//	)
func NewSequential[B tensor.Backend](modules ...Module[B]) *Sequential[B] {
	return nn.NewSequential(modules...)
}

// Residual blocks

// ResidualBlock computes x + f(x) with f = ReLU, Conv3x3, ReLU, Conv1x1.
type ResidualBlock[B tensor.Backend] = nn.ResidualBlock[B]

// NewResidualBlock creates a residual block on inDim channels with a hidden
// width of resHDim. inDim must equal hDim.
func NewResidualBlock[B tensor.Backend](inDim, hDim, resHDim int, rng *rand.Rand, backend B) *ResidualBlock[B] {
	return nn.NewResidualBlock(inDim, hDim, resHDim, rng, backend)
}

// ResidualStack applies residual blocks in order followed by a ReLU.
// With zero blocks it is the identity.
type ResidualStack[B tensor.Backend] = nn.ResidualStack[B]

// NewResidualStack creates nResLayers independent residual blocks.
//
// Example:
//
//	stack := nn.NewResidualStack(128, 128, 64, 3, nil, backend)
func NewResidualStack[B tensor.Backend](inDim, hDim, resHDim, nResLayers int, rng *rand.Rand, backend B) *ResidualStack[B] {
	return nn.NewResidualStack(inDim, hDim, resHDim, nResLayers, rng, backend)
}

// Initialization

// Xavier creates a tensor with Xavier/Glorot uniform initialization.
func Xavier[B tensor.Backend](fanIn, fanOut int, shape tensor.Shape, rng *rand.Rand, backend B) *tensor.Tensor[float32, B] {
	return nn.Xavier(fanIn, fanOut, shape, rng, backend)
}

// Zeros creates a zero-filled tensor, used for biases.
func Zeros[B tensor.Backend](shape tensor.Shape, backend B) *tensor.Tensor[float32, B] {
	return nn.Zeros(shape, backend)
}
