// Package nn implements the neural network building blocks of the encoder.
//
// This package provides:
//   - Module interface: Base interface for all NN components
//   - Parameter: Named, exclusively owned trainable tensors
//   - Conv2D: 2D convolution with rectangular kernels
//   - ReLU: Rectified linear activation
//   - Sequential: Fixed, ordered pipeline of modules
//   - ResidualBlock / ResidualStack: Shape-preserving residual refinement
//
// Modules are built eagerly and are read-only during Forward, so one module
// may serve concurrent Forward calls. Updating parameters while a Forward is
// running is not synchronized here; callers that train and infer at the same
// time must serialize the two themselves.
package nn

import (
	"github.com/born-ml/vqvae/internal/tensor"
)

// Module is the base interface for all neural network components.
//
// Type parameter B must satisfy the tensor.Backend interface.
type Module[B tensor.Backend] interface {
	// Forward computes the output of the module given an input tensor.
	Forward(input *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B]

	// Parameters returns all trainable parameters of this module, including
	// those of nested modules. Activations return nil.
	Parameters() []*Parameter[B]

	// StateDict returns the module's parameters keyed by name.
	StateDict() map[string]*tensor.RawTensor

	// LoadStateDict copies values from stateDict into the module's parameters.
	LoadStateDict(stateDict map[string]*tensor.RawTensor) error
}
