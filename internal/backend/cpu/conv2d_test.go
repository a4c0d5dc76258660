package cpu

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/vqvae/internal/tensor"
)

// naiveConv2D is a direct 7-loop reference convolution.
func naiveConv2D(in []float64, inShape tensor.Shape, k []float64, kShape tensor.Shape, stride, padding int) ([]float64, tensor.Shape) {
	n, c, h, w := inShape[0], inShape[1], inShape[2], inShape[3]
	co, kh, kw := kShape[0], kShape[2], kShape[3]
	ho := tensor.ConvOutputSize(h, kh, stride, padding)
	wo := tensor.ConvOutputSize(w, kw, stride, padding)

	out := make([]float64, n*co*ho*wo)
	for b := 0; b < n; b++ {
		for o := 0; o < co; o++ {
			for y := 0; y < ho; y++ {
				for x := 0; x < wo; x++ {
					var sum float64
					for ci := 0; ci < c; ci++ {
						for i := 0; i < kh; i++ {
							for j := 0; j < kw; j++ {
								iy := y*stride - padding + i
								ix := x*stride - padding + j
								if iy < 0 || iy >= h || ix < 0 || ix >= w {
									continue
								}
								sum += in[((b*c+ci)*h+iy)*w+ix] * k[((o*c+ci)*kh+i)*kw+j]
							}
						}
					}
					out[((b*co+o)*ho+y)*wo+x] = sum
				}
			}
		}
	}
	return out, tensor.Shape{n, co, ho, wo}
}

func TestConvOutputSize(t *testing.T) {
	tests := []struct {
		in, kernel, stride, padding, want int
	}{
		{2, 2, 1, 1, 3},
		{200, 4, 1, 1, 199},
		{3, 2, 1, 1, 4},
		{199, 4, 1, 1, 198},
		{4, 1, 1, 1, 6},
		{198, 3, 1, 1, 198},
		{28, 5, 1, 0, 24},
		{1, 4, 1, 0, -2},
		{1, 4, 2, 0, -1},
		{7, 3, 2, 1, 4},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tensor.ConvOutputSize(tt.in, tt.kernel, tt.stride, tt.padding),
			"in=%d kernel=%d stride=%d padding=%d", tt.in, tt.kernel, tt.stride, tt.padding)
	}
}

func TestConv2D_BasicForward(t *testing.T) {
	backend := New()

	// 1 2 3
	// 4 5 6
	// 7 8 9
	input := rawFloat32(t, tensor.Shape{1, 1, 3, 3}, 1, 2, 3, 4, 5, 6, 7, 8, 9)
	// 1 0
	// 0 1
	kernel := rawFloat32(t, tensor.Shape{1, 1, 2, 2}, 1, 0, 0, 1)

	output := backend.Conv2D(input, kernel, 1, 0)

	require.True(t, output.Shape().Equal(tensor.Shape{1, 1, 2, 2}), "got %v", output.Shape())
	assert.Equal(t, []float32{6, 8, 12, 14}, output.AsFloat32())
}

func TestConv2D_PaddingRectangularKernel(t *testing.T) {
	backend := New()

	// [1, 1, 2, 3] input, kernel 2x4, padding 1.
	input := rawFloat32(t, tensor.Shape{1, 1, 2, 3}, 1, 2, 3, 4, 5, 6)
	kernel := rawFloat32(t, tensor.Shape{1, 1, 2, 4}, 1, 1, 1, 1, 1, 1, 1, 1)

	output := backend.Conv2D(input, kernel, 1, 1)

	// out_h = 2+2-2+1 = 3, out_w = 3+2-4+1 = 2
	require.True(t, output.Shape().Equal(tensor.Shape{1, 1, 3, 2}), "got %v", output.Shape())
	// Each output sums the in-bounds part of a 2x4 window over the padded image.
	assert.Equal(t, []float32{6, 6, 21, 21, 15, 15}, output.AsFloat32())
}

func TestConv2D_MatchesReference(t *testing.T) {
	rng := rand.New(rand.NewSource(3))

	cases := []struct {
		name            string
		in, k           tensor.Shape
		stride, padding int
	}{
		{"stage1", tensor.Shape{3, 2, 2, 11}, tensor.Shape{4, 2, 2, 4}, 1, 1},
		{"stage3", tensor.Shape{2, 4, 4, 9}, tensor.Shape{4, 4, 1, 3}, 1, 1},
		{"strided", tensor.Shape{2, 3, 9, 8}, tensor.Shape{5, 3, 3, 3}, 2, 1},
		{"pointwise", tensor.Shape{1, 6, 3, 3}, tensor.Shape{2, 6, 1, 1}, 1, 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in, err := tensor.NewRaw(tc.in, tensor.Float64, tensor.CPU)
			require.NoError(t, err)
			k, err := tensor.NewRaw(tc.k, tensor.Float64, tensor.CPU)
			require.NoError(t, err)
			for i := range in.AsFloat64() {
				in.AsFloat64()[i] = rng.NormFloat64()
			}
			for i := range k.AsFloat64() {
				k.AsFloat64()[i] = rng.NormFloat64()
			}

			want, wantShape := naiveConv2D(in.AsFloat64(), tc.in, k.AsFloat64(), tc.k, tc.stride, tc.padding)

			for _, workers := range []int{1, 4} {
				got := New(WithWorkers(workers)).Conv2D(in, k, tc.stride, tc.padding)
				require.True(t, got.Shape().Equal(wantShape), "workers=%d: got %v want %v", workers, got.Shape(), wantShape)
				assert.InDeltaSlice(t, want, got.AsFloat64(), 1e-9, "workers=%d", workers)
			}
		})
	}
}

func TestConv2D_Deterministic(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	input := rawFloat32(t, tensor.Shape{8, 3, 4, 20})
	kernel := rawFloat32(t, tensor.Shape{6, 3, 2, 4})
	for i := range input.AsFloat32() {
		input.AsFloat32()[i] = rng.Float32()
	}
	for i := range kernel.AsFloat32() {
		kernel.AsFloat32()[i] = rng.Float32() - 0.5
	}

	backend := New(WithWorkers(4))
	a := backend.Conv2D(input, kernel, 1, 1)
	b := backend.Conv2D(input, kernel, 1, 1)
	assert.Equal(t, a.AsFloat32(), b.AsFloat32())
}

func TestConv2D_Errors(t *testing.T) {
	backend := New()

	t.Run("OutputTooSmall", func(t *testing.T) {
		input := rawFloat32(t, tensor.Shape{1, 1, 1, 1})
		kernel := rawFloat32(t, tensor.Shape{1, 1, 2, 4})
		err := requirePanicErr(t, func() { backend.Conv2D(input, kernel, 1, 0) })
		assert.ErrorIs(t, err, tensor.ErrInvalidShape)
		assert.Contains(t, err.Error(), "out_h=0")
	})

	t.Run("ChannelMismatch", func(t *testing.T) {
		input := rawFloat32(t, tensor.Shape{1, 2, 4, 4})
		kernel := rawFloat32(t, tensor.Shape{1, 3, 2, 2})
		err := requirePanicErr(t, func() { backend.Conv2D(input, kernel, 1, 0) })
		assert.ErrorIs(t, err, tensor.ErrInvalidShape)
	})

	t.Run("NotFourD", func(t *testing.T) {
		input := rawFloat32(t, tensor.Shape{4, 4})
		kernel := rawFloat32(t, tensor.Shape{1, 1, 2, 2})
		err := requirePanicErr(t, func() { backend.Conv2D(input, kernel, 1, 0) })
		assert.ErrorIs(t, err, tensor.ErrInvalidShape)
	})
}
