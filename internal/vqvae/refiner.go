package vqvae

import (
	"math/rand"

	"github.com/born-ml/vqvae/internal/nn"
	"github.com/born-ml/vqvae/internal/tensor"
)

// ResidualRefiner refines an [N, h_dim, H', W'] map through a residual
// stack without changing its shape. With zero layers Forward returns its
// input as is.
type ResidualRefiner[B tensor.Backend] struct {
	stack *nn.ResidualStack[B]
}

// NewResidualRefiner builds nResLayers residual blocks of hidden width
// resHDim on hDim channels.
func NewResidualRefiner[B tensor.Backend](hDim, resHDim, nResLayers int, rng *rand.Rand, backend B) *ResidualRefiner[B] {
	return &ResidualRefiner[B]{
		stack: nn.NewResidualStack(hDim, hDim, resHDim, nResLayers, rng, backend),
	}
}

// Forward applies the residual blocks in order.
func (r *ResidualRefiner[B]) Forward(x *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	return r.stack.Forward(x)
}

// Len returns the number of residual blocks.
func (r *ResidualRefiner[B]) Len() int {
	return r.stack.Len()
}

// Parameters returns the parameters of every block.
func (r *ResidualRefiner[B]) Parameters() []*nn.Parameter[B] {
	return r.stack.Parameters()
}

// StateDict returns the residual stack's weights.
func (r *ResidualRefiner[B]) StateDict() map[string]*tensor.RawTensor {
	return r.stack.StateDict()
}

// LoadStateDict loads weights keyed like StateDict.
func (r *ResidualRefiner[B]) LoadStateDict(stateDict map[string]*tensor.RawTensor) error {
	return r.stack.LoadStateDict(stateDict)
}
