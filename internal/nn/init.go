package nn

import (
	"math"
	"math/rand"

	"github.com/born-ml/vqvae/internal/tensor"
)

// Xavier (Glorot) initialization for weights.
//
// Values are drawn from U(-sqrt(6/(fan_in + fan_out)), sqrt(6/(fan_in + fan_out))).
// A nil rng falls back to the math/rand global source.
//
// Panics with an error wrapping tensor.ErrAllocation if the weight tensor
// cannot be created.
func Xavier[B tensor.Backend](fanIn, fanOut int, shape tensor.Shape, rng *rand.Rand, backend B) *tensor.Tensor[float32, B] {
	bound := math.Sqrt(6.0 / float64(fanIn+fanOut))

	t := tensor.Zeros[float32](shape, backend)
	data := t.Data()
	for i := range data {
		data[i] = float32((uniform(rng)*2.0 - 1.0) * bound)
	}

	return t
}

// Zeros creates a zero-filled parameter tensor, used for biases.
func Zeros[B tensor.Backend](shape tensor.Shape, backend B) *tensor.Tensor[float32, B] {
	return tensor.Zeros[float32](shape, backend)
}

func uniform(rng *rand.Rand) float64 {
	if rng == nil {
		return rand.Float64() //nolint:gosec // G404: weight init is not security-critical
	}
	return rng.Float64()
}
