package nn

import (
	"github.com/born-ml/vqvae/internal/tensor"
)

// Parameter represents a trainable tensor owned by exactly one layer.
//
// Weights can be replaced in place through Tensor().Data() or a layer's
// LoadStateDict; the storage is never shared between layers.
type Parameter[B tensor.Backend] struct {
	name   string                     // Parameter name (e.g., "conv2d.weight")
	tensor *tensor.Tensor[float32, B] // The parameter tensor
}

// NewParameter creates a new trainable parameter.
func NewParameter[B tensor.Backend](name string, t *tensor.Tensor[float32, B]) *Parameter[B] {
	return &Parameter[B]{
		name:   name,
		tensor: t,
	}
}

// Name returns the parameter name.
func (p *Parameter[B]) Name() string {
	return p.name
}

// Tensor returns the parameter tensor.
func (p *Parameter[B]) Tensor() *tensor.Tensor[float32, B] {
	return p.tensor
}

// NumElements returns the number of scalar weights in the parameter.
func (p *Parameter[B]) NumElements() int {
	return p.tensor.NumElements()
}
