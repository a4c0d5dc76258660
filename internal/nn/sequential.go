package nn

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/born-ml/vqvae/internal/tensor"
)

// Sequential is a container module that chains modules in a fixed order.
//
// Each module's output becomes the next module's input:
//
//	stack := nn.NewSequential[B](
//	    nn.NewConv2D(1, 64, 2, 4, 1, 1, true, rng, backend),
//	    nn.NewReLU[B](),
//	)
//	output := stack.Forward(input)
type Sequential[B tensor.Backend] struct {
	modules []Module[B]
}

// NewSequential creates a new Sequential container.
func NewSequential[B tensor.Backend](modules ...Module[B]) *Sequential[B] {
	return &Sequential[B]{
		modules: modules,
	}
}

// Forward applies all modules in sequence.
func (s *Sequential[B]) Forward(input *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	output := input
	for _, module := range s.modules {
		output = module.Forward(output)
	}
	return output
}

// Parameters returns all trainable parameters from all modules, in order.
func (s *Sequential[B]) Parameters() []*Parameter[B] {
	var params []*Parameter[B]
	for _, module := range s.modules {
		params = append(params, module.Parameters()...)
	}
	return params
}

// Len returns the number of modules in the sequence.
func (s *Sequential[B]) Len() int {
	return len(s.modules)
}

// Module returns the module at the given index.
//
// Panics if index is out of bounds.
func (s *Sequential[B]) Module(index int) Module[B] {
	if index < 0 || index >= len(s.modules) {
		panic("Sequential.Module: index out of bounds")
	}
	return s.modules[index]
}

// StateDict returns a map of parameter names to raw tensors.
//
// Names are prefixed with the module index ("0.weight", "2.bias", ...).
func (s *Sequential[B]) StateDict() map[string]*tensor.RawTensor {
	stateDict := make(map[string]*tensor.RawTensor)
	for i, module := range s.modules {
		prefixStateDict(strconv.Itoa(i), module.StateDict(), stateDict)
	}
	return stateDict
}

// LoadStateDict loads parameters from a state dictionary keyed like
// StateDict. Every module that owns parameters must find them.
func (s *Sequential[B]) LoadStateDict(stateDict map[string]*tensor.RawTensor) error {
	for i, module := range s.modules {
		if len(module.Parameters()) == 0 {
			continue
		}
		if err := module.LoadStateDict(subStateDict(strconv.Itoa(i), stateDict)); err != nil {
			return fmt.Errorf("module %d: %w", i, err)
		}
	}
	return nil
}

// String lists the contained modules.
func (s *Sequential[B]) String() string {
	var sb strings.Builder
	sb.WriteString("Sequential(")
	for i, module := range s.modules {
		if i > 0 {
			sb.WriteString(", ")
		}
		fmt.Fprintf(&sb, "%v", module)
	}
	sb.WriteString(")")
	return sb.String()
}
