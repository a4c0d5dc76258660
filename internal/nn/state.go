package nn

import (
	"fmt"
	"strings"

	"github.com/born-ml/vqvae/internal/tensor"
)

// loadParameter copies stateDict[key] into p after checking shape and dtype.
func loadParameter[B tensor.Backend](p *Parameter[B], key string, stateDict map[string]*tensor.RawTensor) error {
	raw, ok := stateDict[key]
	if !ok {
		return fmt.Errorf("missing %s in state dict", key)
	}

	expected := p.Tensor().Shape()
	if !raw.Shape().Equal(expected) {
		return fmt.Errorf("%s shape mismatch: expected %v, got %v", key, expected, raw.Shape())
	}
	if raw.DType() != tensor.Float32 {
		return fmt.Errorf("%s dtype mismatch: expected float32, got %v", key, raw.DType())
	}

	copy(p.Tensor().Data(), raw.AsFloat32())
	return nil
}

// prefixStateDict returns src with every key prefixed by prefix + ".".
func prefixStateDict(prefix string, src map[string]*tensor.RawTensor, dst map[string]*tensor.RawTensor) {
	for name, raw := range src {
		dst[prefix+"."+name] = raw
	}
}

// subStateDict returns the entries of stateDict under prefix + ".", with the
// prefix removed.
func subStateDict(prefix string, stateDict map[string]*tensor.RawTensor) map[string]*tensor.RawTensor {
	sub := make(map[string]*tensor.RawTensor)
	for key, raw := range stateDict {
		if name, ok := strings.CutPrefix(key, prefix+"."); ok {
			sub[name] = raw
		}
	}
	return sub
}
