package nn

import (
	"fmt"
	"math/rand"
	"strconv"

	"github.com/born-ml/vqvae/internal/tensor"
)

// ResidualBlock computes y = x + f(x) where
//
//	f = ReLU -> Conv2D(h->res_h, 3x3, pad 1, no bias) -> ReLU -> Conv2D(res_h->h, 1x1, no bias)
//
// Both convolutions keep the spatial size, so the block preserves the shape
// of its input exactly.
type ResidualBlock[B tensor.Backend] struct {
	res *Sequential[B]
}

// NewResidualBlock creates a residual block on inDim channels with a hidden
// width of resHDim. The residual sum requires hDim == inDim.
func NewResidualBlock[B tensor.Backend](inDim, hDim, resHDim int, rng *rand.Rand, backend B) *ResidualBlock[B] {
	if inDim != hDim {
		panic(fmt.Sprintf("residual block: in_dim %d != h_dim %d, residual sum needs equal shapes", inDim, hDim))
	}
	return &ResidualBlock[B]{
		res: NewSequential[B](
			NewReLU[B](),
			NewConv2D(inDim, resHDim, 3, 3, 1, 1, false, rng, backend),
			NewReLU[B](),
			NewConv2D(resHDim, hDim, 1, 1, 1, 0, false, rng, backend),
		),
	}
}

// Forward returns x + f(x). The input is not modified.
func (r *ResidualBlock[B]) Forward(x *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	return x.Add(r.res.Forward(x))
}

// Parameters returns the weights of both convolutions.
func (r *ResidualBlock[B]) Parameters() []*Parameter[B] {
	return r.res.Parameters()
}

// StateDict keys are "res_block.1.weight" and "res_block.3.weight".
func (r *ResidualBlock[B]) StateDict() map[string]*tensor.RawTensor {
	stateDict := make(map[string]*tensor.RawTensor)
	prefixStateDict("res_block", r.res.StateDict(), stateDict)
	return stateDict
}

// LoadStateDict loads weights keyed like StateDict.
func (r *ResidualBlock[B]) LoadStateDict(stateDict map[string]*tensor.RawTensor) error {
	return r.res.LoadStateDict(subStateDict("res_block", stateDict))
}

// String returns a string representation of the block.
func (r *ResidualBlock[B]) String() string {
	return "ResidualBlock(" + r.res.String() + ")"
}

// ResidualStack applies nResLayers residual blocks in order, then ReLU.
//
// With zero layers the stack is the identity and Forward returns its input
// unchanged (the same tensor, no trailing ReLU).
type ResidualStack[B tensor.Backend] struct {
	layers []*ResidualBlock[B]
}

// NewResidualStack creates nResLayers independent blocks, each owning its
// own parameters. Panics if nResLayers is negative or inDim != hDim.
func NewResidualStack[B tensor.Backend](inDim, hDim, resHDim, nResLayers int, rng *rand.Rand, backend B) *ResidualStack[B] {
	if nResLayers < 0 {
		panic(fmt.Sprintf("residual stack: invalid layer count %d", nResLayers))
	}
	layers := make([]*ResidualBlock[B], nResLayers)
	for i := range layers {
		layers[i] = NewResidualBlock(inDim, hDim, resHDim, rng, backend)
	}
	return &ResidualStack[B]{layers: layers}
}

// Forward refines x through every block. Output shape equals input shape.
func (s *ResidualStack[B]) Forward(x *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	if len(s.layers) == 0 {
		return x
	}
	for _, layer := range s.layers {
		x = layer.Forward(x)
	}
	return x.ReLU()
}

// Len returns the number of residual blocks.
func (s *ResidualStack[B]) Len() int {
	return len(s.layers)
}

// Parameters returns the parameters of all blocks, in order.
func (s *ResidualStack[B]) Parameters() []*Parameter[B] {
	var params []*Parameter[B]
	for _, layer := range s.layers {
		params = append(params, layer.Parameters()...)
	}
	return params
}

// StateDict keys are "stack.<i>.res_block.<j>.weight".
func (s *ResidualStack[B]) StateDict() map[string]*tensor.RawTensor {
	stateDict := make(map[string]*tensor.RawTensor)
	for i, layer := range s.layers {
		prefixStateDict("stack."+strconv.Itoa(i), layer.StateDict(), stateDict)
	}
	return stateDict
}

// LoadStateDict loads weights keyed like StateDict.
func (s *ResidualStack[B]) LoadStateDict(stateDict map[string]*tensor.RawTensor) error {
	for i, layer := range s.layers {
		if err := layer.LoadStateDict(subStateDict("stack."+strconv.Itoa(i), stateDict)); err != nil {
			return fmt.Errorf("residual layer %d: %w", i, err)
		}
	}
	return nil
}

// String returns a string representation of the stack.
func (s *ResidualStack[B]) String() string {
	return fmt.Sprintf("ResidualStack(n_res_layers=%d)", len(s.layers))
}
