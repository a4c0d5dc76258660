package cpu

import (
	"fmt"

	"github.com/born-ml/vqvae/internal/tensor"
)

// ReLU computes max(0, x) element-wise into a new tensor.
func (cpu *CPUBackend) ReLU(x *tensor.RawTensor) *tensor.RawTensor {
	result := cpu.alloc("relu", x.Shape(), x.DType())

	switch x.DType() {
	case tensor.Float32:
		relu(result.AsFloat32(), x.AsFloat32())
	case tensor.Float64:
		relu(result.AsFloat64(), x.AsFloat64())
	default:
		panic(fmt.Sprintf("relu: unsupported dtype %s", x.DType()))
	}

	return result
}

func relu[T float32 | float64](dst, src []T) {
	for i, v := range src {
		if v > 0 {
			dst[i] = v
		}
	}
}
