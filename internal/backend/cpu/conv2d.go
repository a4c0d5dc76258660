package cpu

import (
	"fmt"

	"gonum.org/v1/gonum/blas"
	"gonum.org/v1/gonum/blas/blas32"
	"gonum.org/v1/gonum/blas/blas64"

	"github.com/born-ml/vqvae/internal/parallel"
	"github.com/born-ml/vqvae/internal/tensor"
)

// Conv2D performs 2D convolution using the im2col algorithm.
//
// Input shape:  [batch, in_channels, height, width]
// Kernel shape: [out_channels, in_channels, kernel_h, kernel_w]
// Output shape: [batch, out_channels, out_h, out_w]
//
// Stride and zero padding apply to both spatial axes; the kernel may be
// rectangular.
//
// Algorithm, per batch item:
//  1. Im2col: [C_in, H, W] -> col [C_in*K_h*K_w, H_out*W_out]
//  2. Gemm:   kernel [C_out, C_in*K_h*K_w] @ col -> [C_out, H_out*W_out]
//
// The Gemm result is already in NCHW order for that batch item, so no
// rearrangement is needed. Batch items run in parallel.
func (cpu *CPUBackend) Conv2D(input, kernel *tensor.RawTensor, stride, padding int) *tensor.RawTensor {
	inputShape := input.Shape()
	kernelShape := kernel.Shape()

	if len(inputShape) != 4 {
		panic(fmt.Errorf("conv2d: %w: input must be 4D [N,C,H,W], got %dD", tensor.ErrInvalidShape, len(inputShape)))
	}
	if len(kernelShape) != 4 {
		panic(fmt.Errorf("conv2d: %w: kernel must be 4D [C_out,C_in,K_h,K_w], got %dD", tensor.ErrInvalidShape, len(kernelShape)))
	}
	if input.DType() != kernel.DType() {
		panic(fmt.Errorf("conv2d: %w: dtype mismatch %s vs %s", tensor.ErrInvalidShape, input.DType(), kernel.DType()))
	}
	if stride <= 0 || padding < 0 {
		panic(fmt.Errorf("conv2d: %w: stride=%d padding=%d", tensor.ErrInvalidShape, stride, padding))
	}

	g := convGeom{
		N:       inputShape[0],
		CIn:     inputShape[1],
		H:       inputShape[2],
		W:       inputShape[3],
		COut:    kernelShape[0],
		KH:      kernelShape[2],
		KW:      kernelShape[3],
		stride:  stride,
		padding: padding,
	}

	if g.CIn != kernelShape[1] {
		panic(fmt.Errorf("conv2d: %w: input channels %d != kernel channels %d", tensor.ErrInvalidShape, g.CIn, kernelShape[1]))
	}

	g.HOut = tensor.ConvOutputSize(g.H, g.KH, stride, padding)
	g.WOut = tensor.ConvOutputSize(g.W, g.KW, stride, padding)
	if g.HOut <= 0 || g.WOut <= 0 {
		panic(fmt.Errorf("conv2d: %w: output dimensions out_h=%d, out_w=%d (input %dx%d, kernel %dx%d, stride %d, padding %d)",
			tensor.ErrInvalidShape, g.HOut, g.WOut, g.H, g.W, g.KH, g.KW, stride, padding))
	}

	output := cpu.alloc("conv2d", tensor.Shape{g.N, g.COut, g.HOut, g.WOut}, input.DType())

	switch input.DType() {
	case tensor.Float32:
		conv2d(g, output.AsFloat32(), input.AsFloat32(), kernel.AsFloat32(), gemm32, cpu.par)
	case tensor.Float64:
		conv2d(g, output.AsFloat64(), input.AsFloat64(), kernel.AsFloat64(), gemm64, cpu.par)
	default:
		panic(fmt.Sprintf("conv2d: unsupported dtype %s", input.DType()))
	}

	return output
}

// convGeom holds the dimensions of one convolution call.
type convGeom struct {
	N, CIn, H, W    int
	COut, KH, KW    int
	HOut, WOut      int
	stride, padding int
}

// gemmFunc computes c = a @ b for row-major a [m, k], b [k, n], c [m, n].
type gemmFunc[T float32 | float64] func(m, n, k int, a, b, c []T)

func gemm32(m, n, k int, a, b, c []float32) {
	blas32.Gemm(blas.NoTrans, blas.NoTrans, 1,
		blas32.General{Rows: m, Cols: k, Stride: k, Data: a},
		blas32.General{Rows: k, Cols: n, Stride: n, Data: b},
		0,
		blas32.General{Rows: m, Cols: n, Stride: n, Data: c},
	)
}

func gemm64(m, n, k int, a, b, c []float64) {
	blas64.Gemm(blas.NoTrans, blas.NoTrans, 1,
		blas64.General{Rows: m, Cols: k, Stride: k, Data: a},
		blas64.General{Rows: k, Cols: n, Stride: n, Data: b},
		0,
		blas64.General{Rows: m, Cols: n, Stride: n, Data: c},
	)
}

func conv2d[T float32 | float64](g convGeom, out, in, kernel []T, gemm gemmFunc[T], par parallel.Config) {
	colRows := g.CIn * g.KH * g.KW
	colCols := g.HOut * g.WOut
	inSize := g.CIn * g.H * g.W
	outSize := g.COut * colCols

	parallel.For(g.N, func(n int) {
		col := make([]T, colRows*colCols)
		im2col(g, col, in[n*inSize:(n+1)*inSize])
		gemm(g.COut, colCols, colRows, kernel, col, out[n*outSize:(n+1)*outSize])
	}, par)
}

// im2col unfolds one [C, H, W] image into col [C*K_h*K_w, H_out*W_out].
//
// Row r = (c, kh, kw) holds, for every output position, the input value the
// kernel weight (c, kh, kw) is multiplied with; positions that fall in the
// zero padding stay 0.
func im2col[T float32 | float64](g convGeom, col, img []T) {
	colCols := g.HOut * g.WOut
	row := 0
	for c := 0; c < g.CIn; c++ {
		plane := img[c*g.H*g.W : (c+1)*g.H*g.W]
		for kh := 0; kh < g.KH; kh++ {
			for kw := 0; kw < g.KW; kw++ {
				dst := col[row*colCols : (row+1)*colCols]
				for oh := 0; oh < g.HOut; oh++ {
					h := oh*g.stride - g.padding + kh
					if h < 0 || h >= g.H {
						continue
					}
					for ow := 0; ow < g.WOut; ow++ {
						w := ow*g.stride - g.padding + kw
						if w >= 0 && w < g.W {
							dst[oh*g.WOut+ow] = plane[h*g.W+w]
						}
					}
				}
				row++
			}
		}
	}
}
