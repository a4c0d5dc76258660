// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package nn_test

import (
	"math/rand"
	"testing"

	"github.com/born-ml/vqvae/backend/cpu"
	"github.com/born-ml/vqvae/nn"
	"github.com/born-ml/vqvae/tensor"
)

// TestModuleInterface verifies that concrete types implement Module interface.
func TestModuleInterface(t *testing.T) {
	backend := cpu.New()
	rng := rand.New(rand.NewSource(1))

	tests := []struct {
		name   string
		module nn.Module[*cpu.Backend]
		params int
	}{
		{
			name:   "Conv2D",
			module: nn.NewConv2D(4, 4, 3, 3, 1, 1, true, rng, backend),
			params: 2,
		},
		{
			name:   "ReLU",
			module: nn.NewReLU[*cpu.Backend](),
			params: 0,
		},
		{
			name:   "ResidualBlock",
			module: nn.NewResidualBlock(4, 4, 2, rng, backend),
			params: 2,
		},
		{
			name:   "ResidualStack",
			module: nn.NewResidualStack(4, 4, 2, 2, rng, backend),
			params: 4,
		},
		{
			name: "Sequential",
			module: nn.NewSequential[*cpu.Backend](
				nn.NewConv2D(4, 4, 1, 3, 1, 1, true, rng, backend),
				nn.NewReLU[*cpu.Backend](),
			),
			params: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := tensor.Randn[float32](tensor.Shape{2, 4, 3, 5}, rng, backend)
			output := tt.module.Forward(input)
			if output == nil {
				t.Fatal("Forward() returned nil")
			}

			if got := len(tt.module.Parameters()); got != tt.params {
				t.Errorf("Parameters() returned %d params, want %d", got, tt.params)
			}

			if got := len(tt.module.StateDict()); got != tt.params {
				t.Errorf("StateDict() returned %d entries, want %d", got, tt.params)
			}
		})
	}
}

// TestModuleComposition verifies modules can be composed.
func TestModuleComposition(t *testing.T) {
	backend := cpu.New()

	model := nn.NewSequential[*cpu.Backend](
		nn.NewConv2D(1, 8, 2, 4, 1, 1, true, nil, backend),
		nn.NewReLU[*cpu.Backend](),
		nn.NewResidualStack(8, 8, 4, 1, nil, backend),
	)

	var _ nn.Module[*cpu.Backend] = model

	input := tensor.Randn[float32](tensor.Shape{2, 1, 2, 200}, nil, backend)
	output := model.Forward(input)

	expectedShape := tensor.Shape{2, 8, 3, 199}
	if !output.Shape().Equal(expectedShape) {
		t.Errorf("Output shape = %v, want %v", output.Shape(), expectedShape)
	}

	// conv weight + bias, then two bias-free convolutions in the block
	if params := model.Parameters(); len(params) != 4 {
		t.Errorf("Parameters() returned %d params, want 4", len(params))
	}
}

// TestNewParameter verifies parameter creation.
func TestNewParameter(t *testing.T) {
	backend := cpu.New()

	tests := []struct {
		name        string
		paramName   string
		tensorShape tensor.Shape
		elements    int
	}{
		{
			name:        "weight parameter",
			paramName:   "conv_stack.0.weight",
			tensorShape: tensor.Shape{64, 1, 2, 4},
			elements:    512,
		},
		{
			name:        "bias parameter",
			paramName:   "conv_stack.0.bias",
			tensorShape: tensor.Shape{64},
			elements:    64,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tensorData := tensor.Zeros[float32](tt.tensorShape, backend)
			param := nn.NewParameter(tt.paramName, tensorData)

			if got := param.Name(); got != tt.paramName {
				t.Errorf("Name() = %q, want %q", got, tt.paramName)
			}
			if got := param.Tensor(); got != tensorData {
				t.Error("Tensor() returned different tensor")
			}
			if got := param.NumElements(); got != tt.elements {
				t.Errorf("NumElements() = %d, want %d", got, tt.elements)
			}
		})
	}
}
