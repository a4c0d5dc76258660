package vqvae

import (
	"fmt"
	"math/rand"

	"github.com/born-ml/vqvae/internal/nn"
	"github.com/born-ml/vqvae/internal/tensor"
)

// Convolution schedule shared by every encoder.
const (
	kernelH = 2
	kernelW = 4
	stride  = 1
	padding = 1
)

// StageShape is the output size of one downsampler stage.
type StageShape struct {
	Stage    int
	Channels int
	Height   int
	Width    int
}

// ConvDownsampler maps [N, in_dim, H, W] to [N, h_dim, H', W'] in three
// convolution stages:
//
//	1: Conv2D(in_dim -> h_dim/2, kernel 2x4, stride 1, padding 1), ReLU
//	2: Conv2D(h_dim/2 -> h_dim, kernel 2x4, stride 1, padding 1), ReLU
//	3: Conv2D(h_dim -> h_dim,   kernel 1x3, stride 1, padding 1)
//
// Stage 3 has no activation; the residual stack applies its own.
type ConvDownsampler[B tensor.Backend] struct {
	convs [3]*nn.Conv2D[B]
	hDim  int
	seq   *nn.Sequential[B]
}

// stage describes one convolution of the downsampler.
type stage struct {
	outChannels      int
	kernelH, kernelW int
	activation       bool
}

// schedule returns the three stages for an h_dim latent.
func schedule(hDim int) [3]stage {
	return [3]stage{
		{outChannels: hDim / 2, kernelH: kernelH, kernelW: kernelW, activation: true},
		{outChannels: hDim, kernelH: kernelH, kernelW: kernelW, activation: true},
		{outChannels: hDim, kernelH: kernelH - 1, kernelW: kernelW - 1},
	}
}

// planStages walks the schedule over an H x W input. The first stage whose
// height or width would be non-positive is reported as a *ShapeError.
func planStages(hDim, height, width int) ([]StageShape, error) {
	stages := schedule(hDim)
	plan := make([]StageShape, 0, len(stages))
	h, w := height, width
	for i, s := range stages {
		outH := tensor.ConvOutputSize(h, s.kernelH, stride, padding)
		outW := tensor.ConvOutputSize(w, s.kernelW, stride, padding)
		detail := fmt.Sprintf("kernel %dx%d, stride %d, padding %d on %dx%d",
			s.kernelH, s.kernelW, stride, padding, h, w)
		switch {
		case outH <= 0:
			return nil, &ShapeError{Stage: i + 1, Axis: "height", Size: outH, Detail: detail}
		case outW <= 0:
			return nil, &ShapeError{Stage: i + 1, Axis: "width", Size: outW, Detail: detail}
		}
		h, w = outH, outW
		plan = append(plan, StageShape{Stage: i + 1, Channels: s.outChannels, Height: h, Width: w})
	}
	return plan, nil
}

// NewConvDownsampler builds the three stages with freshly initialized
// weights. inDim and hDim must already be validated.
func NewConvDownsampler[B tensor.Backend](inDim, hDim int, rng *rand.Rand, backend B) *ConvDownsampler[B] {
	var (
		convs   [3]*nn.Conv2D[B]
		modules []nn.Module[B]
	)
	in := inDim
	for i, s := range schedule(hDim) {
		convs[i] = nn.NewConv2D(in, s.outChannels, s.kernelH, s.kernelW, stride, padding, true, rng, backend)
		modules = append(modules, convs[i])
		if s.activation {
			modules = append(modules, nn.NewReLU[B]())
		}
		in = s.outChannels
	}
	return &ConvDownsampler[B]{
		convs: convs,
		hDim:  hDim,
		seq:   nn.NewSequential[B](modules...),
	}
}

// Plan computes every stage's output size for an H x W input without
// touching any tensor.
func (d *ConvDownsampler[B]) Plan(height, width int) ([]StageShape, error) {
	return planStages(d.hDim, height, width)
}

// Forward runs the three stages. The input must have passed Plan.
func (d *ConvDownsampler[B]) Forward(x *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	return d.seq.Forward(x)
}

// Stage returns the convolution of stage i (1-based).
func (d *ConvDownsampler[B]) Stage(i int) *nn.Conv2D[B] {
	return d.convs[i-1]
}

// Parameters returns weights and biases of the three stages, in order.
func (d *ConvDownsampler[B]) Parameters() []*nn.Parameter[B] {
	return d.seq.Parameters()
}

// StateDict keys are "0.*", "2.*" and "4.*" (ReLUs occupy 1 and 3).
func (d *ConvDownsampler[B]) StateDict() map[string]*tensor.RawTensor {
	return d.seq.StateDict()
}

// LoadStateDict loads weights keyed like StateDict.
func (d *ConvDownsampler[B]) LoadStateDict(stateDict map[string]*tensor.RawTensor) error {
	return d.seq.LoadStateDict(stateDict)
}
