package vqvae

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/born-ml/vqvae/internal/backend/cpu"
	"github.com/born-ml/vqvae/internal/tensor"
)

func TestResidualRefiner_ZeroLayersIsIdentity(t *testing.T) {
	backend := cpu.New()
	refiner := NewResidualRefiner(4, 2, 0, nil, backend)

	x := tensor.Randn[float32](tensor.Shape{1, 4, 3, 5}, rand.New(rand.NewSource(1)), backend)
	y := refiner.Forward(x)

	assert.Same(t, x, y)
	assert.Equal(t, 0, refiner.Len())
	assert.Empty(t, refiner.Parameters())
	assert.Empty(t, refiner.StateDict())
}

func TestResidualRefiner_PreservesShape(t *testing.T) {
	backend := cpu.New()
	refiner := NewResidualRefiner(4, 3, 2, rand.New(rand.NewSource(1)), backend)

	x := tensor.Randn[float32](tensor.Shape{2, 4, 3, 5}, rand.New(rand.NewSource(2)), backend)
	y := refiner.Forward(x)

	assert.Equal(t, x.Shape(), y.Shape())
	assert.Equal(t, 2, refiner.Len())
	assert.Len(t, refiner.Parameters(), 4)
	for _, v := range y.Data() {
		assert.GreaterOrEqual(t, v, float32(0), "trailing ReLU")
	}
}
