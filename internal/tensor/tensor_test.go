package tensor_test

import (
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/vqvae/internal/backend/cpu"
	"github.com/born-ml/vqvae/internal/tensor"
)

func TestFromSlice(t *testing.T) {
	backend := cpu.New()

	x, err := tensor.FromSlice([]float32{1, 2, 3, 4, 5, 6}, tensor.Shape{1, 1, 2, 3}, backend)
	require.NoError(t, err)
	assert.Equal(t, float32(6), x.At(0, 0, 1, 2))

	_, err = tensor.FromSlice([]float32{1, 2}, tensor.Shape{1, 1, 2, 3}, backend)
	assert.ErrorIs(t, err, tensor.ErrInvalidShape)
}

func TestSetAt(t *testing.T) {
	backend := cpu.New()
	x := tensor.Zeros[float64](tensor.Shape{2, 3, 4, 5}, backend)
	x.Set(2.5, 1, 2, 3, 4)
	assert.Equal(t, 2.5, x.At(1, 2, 3, 4))
	assert.Equal(t, 2.5, x.Data()[len(x.Data())-1])
	assert.Panics(t, func() { x.At(2, 0, 0, 0) })
	assert.Panics(t, func() { x.At(0, 0) })
}

func TestRand_Reproducible(t *testing.T) {
	backend := cpu.New()
	shape := tensor.Shape{3, 1, 2, 8}

	a := tensor.Rand[float32](shape, rand.New(rand.NewSource(7)), backend)
	b := tensor.Rand[float32](shape, rand.New(rand.NewSource(7)), backend)
	if diff := cmp.Diff(a.Data(), b.Data()); diff != "" {
		t.Fatalf("same seed gave different data (-a +b):\n%s", diff)
	}

	for _, v := range a.Data() {
		assert.GreaterOrEqual(t, v, float32(0))
		assert.LessOrEqual(t, v, float32(1))
	}
}

func TestRandn_Moments(t *testing.T) {
	backend := cpu.New()
	x := tensor.Randn[float64](tensor.Shape{10001}, rand.New(rand.NewSource(1)), backend)

	var sum, sumSq float64
	for _, v := range x.Data() {
		sum += v
		sumSq += v * v
	}
	n := float64(x.NumElements())
	mean := sum / n
	assert.InDelta(t, 0.0, mean, 0.05)
	assert.InDelta(t, 1.0, sumSq/n-mean*mean, 0.1)
}

func TestOnesFull(t *testing.T) {
	backend := cpu.New()
	for _, v := range tensor.Ones[float32](tensor.Shape{2, 2}, backend).Data() {
		assert.Equal(t, float32(1), v)
	}
	for _, v := range tensor.Full[float64](tensor.Shape{3}, -2, backend).Data() {
		assert.Equal(t, -2.0, v)
	}
}

func TestZeros_InvalidShapePanics(t *testing.T) {
	backend := cpu.New()
	assert.Panics(t, func() { tensor.Zeros[float32](tensor.Shape{1, 0}, backend) })
}

func TestClone(t *testing.T) {
	backend := cpu.New()
	x := tensor.Ones[float32](tensor.Shape{1, 2}, backend)
	c := x.Clone()
	c.Set(5, 0, 0)
	assert.Equal(t, float32(1), x.At(0, 0))
	assert.Equal(t, "Tensor[float32][1 2] on CPU", x.String())
}
