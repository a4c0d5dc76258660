package nn

import (
	"fmt"
	"math/rand"

	"github.com/born-ml/vqvae/internal/tensor"
)

// Conv2D is a 2D convolutional layer.
//
// Performs convolution: output = Conv2D(input, weight) + bias
//
// Input shape:  [batch, in_channels, height, width]
// Weight shape: [out_channels, in_channels, kernel_h, kernel_w]
// Bias shape:   [out_channels]
// Output shape: [batch, out_channels, out_h, out_w]
//
// Where:
//
//	out_h = floor((height + 2*padding - kernel_h) / stride) + 1
//	out_w = floor((width + 2*padding - kernel_w) / stride) + 1
//
// Example:
//
//	// 1 -> 64 channels, 2x4 kernel, stride 1, padding 1
//	conv := nn.NewConv2D(1, 64, 2, 4, 1, 1, true, rng, backend)
//	output := conv.Forward(input) // [N, 1, 2, 200] -> [N, 64, 3, 199]
type Conv2D[B tensor.Backend] struct {
	inChannels  int
	outChannels int
	kernelSize  [2]int
	stride      int
	padding     int
	useBias     bool

	weight *Parameter[B] // [out_channels, in_channels, kernel_h, kernel_w]
	bias   *Parameter[B] // [out_channels] or nil

	backend B
}

// NewConv2D creates a new 2D convolutional layer.
//
// Parameters:
//   - inChannels, outChannels: Channel counts
//   - kernelH, kernelW: Kernel dimensions (may differ)
//   - stride: Stride on both spatial axes
//   - padding: Zero padding on every spatial border
//   - useBias: Whether to include a bias term
//   - rng: Source for weight initialization (nil uses math/rand)
//   - backend: Backend for computation
//
// Weights use Xavier uniform initialization, biases start at zero.
// Panics on non-positive sizes or negative padding.
func NewConv2D[B tensor.Backend](
	inChannels, outChannels int,
	kernelH, kernelW int,
	stride, padding int,
	useBias bool,
	rng *rand.Rand,
	backend B,
) *Conv2D[B] {
	if inChannels <= 0 || outChannels <= 0 {
		panic(fmt.Sprintf("conv2d: invalid channels in=%d, out=%d", inChannels, outChannels))
	}
	if kernelH <= 0 || kernelW <= 0 {
		panic(fmt.Sprintf("conv2d: invalid kernel size h=%d, w=%d", kernelH, kernelW))
	}
	if stride <= 0 {
		panic(fmt.Sprintf("conv2d: invalid stride %d", stride))
	}
	if padding < 0 {
		panic(fmt.Sprintf("conv2d: invalid padding %d", padding))
	}

	// fan_in = in_channels * kernel_h * kernel_w
	// fan_out = out_channels * kernel_h * kernel_w
	fanIn := inChannels * kernelH * kernelW
	fanOut := outChannels * kernelH * kernelW
	weightShape := tensor.Shape{outChannels, inChannels, kernelH, kernelW}
	weight := NewParameter("conv2d.weight", Xavier(fanIn, fanOut, weightShape, rng, backend))

	var bias *Parameter[B]
	if useBias {
		bias = NewParameter("conv2d.bias", Zeros(tensor.Shape{outChannels}, backend))
	}

	return &Conv2D[B]{
		inChannels:  inChannels,
		outChannels: outChannels,
		kernelSize:  [2]int{kernelH, kernelW},
		stride:      stride,
		padding:     padding,
		useBias:     useBias,
		weight:      weight,
		bias:        bias,
		backend:     backend,
	}
}

// Forward performs the forward pass.
//
// Input: [batch, in_channels, height, width]
// Output: [batch, out_channels, out_h, out_w].
func (c *Conv2D[B]) Forward(input *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	inputShape := input.Shape()
	if len(inputShape) != 4 {
		panic(fmt.Errorf("conv2d: %w: expected 4D input [N,C,H,W], got %dD", tensor.ErrInvalidShape, len(inputShape)))
	}
	if inputShape[1] != c.inChannels {
		panic(fmt.Errorf("conv2d: %w: input channels %d != expected %d", tensor.ErrInvalidShape, inputShape[1], c.inChannels))
	}

	outputRaw := c.backend.Conv2D(input.Raw(), c.weight.Tensor().Raw(), c.stride, c.padding)
	output := tensor.New[float32, B](outputRaw, c.backend)

	if c.useBias {
		// [out_channels] -> [1, out_channels, 1, 1] for broadcasting
		output = output.Add(c.bias.Tensor().Reshape(1, c.outChannels, 1, 1))
	}

	return output
}

// Parameters returns all trainable parameters.
func (c *Conv2D[B]) Parameters() []*Parameter[B] {
	if c.useBias {
		return []*Parameter[B]{c.weight, c.bias}
	}
	return []*Parameter[B]{c.weight}
}

// StateDict returns "weight" and, with bias, "bias".
func (c *Conv2D[B]) StateDict() map[string]*tensor.RawTensor {
	stateDict := map[string]*tensor.RawTensor{"weight": c.weight.Tensor().Raw()}
	if c.useBias {
		stateDict["bias"] = c.bias.Tensor().Raw()
	}
	return stateDict
}

// LoadStateDict copies "weight" (and "bias" when the layer has one).
func (c *Conv2D[B]) LoadStateDict(stateDict map[string]*tensor.RawTensor) error {
	if err := loadParameter(c.weight, "weight", stateDict); err != nil {
		return err
	}
	if c.useBias {
		return loadParameter(c.bias, "bias", stateDict)
	}
	return nil
}

// String returns a string representation of the layer.
func (c *Conv2D[B]) String() string {
	return fmt.Sprintf("Conv2D(in_channels=%d, out_channels=%d, kernel_size=(%d, %d), stride=%d, padding=%d, bias=%v)",
		c.inChannels, c.outChannels,
		c.kernelSize[0], c.kernelSize[1],
		c.stride, c.padding, c.useBias)
}

// OutChannels returns the number of output channels.
func (c *Conv2D[B]) OutChannels() int {
	return c.outChannels
}

// InChannels returns the number of input channels.
func (c *Conv2D[B]) InChannels() int {
	return c.inChannels
}

// KernelSize returns the kernel size [height, width].
func (c *Conv2D[B]) KernelSize() [2]int {
	return c.kernelSize
}

// Stride returns the stride.
func (c *Conv2D[B]) Stride() int {
	return c.stride
}

// Padding returns the padding.
func (c *Conv2D[B]) Padding() int {
	return c.padding
}

// ComputeOutputSize computes output spatial dimensions for given input size.
// Values <= 0 mean the input is too small for this layer.
//
// Returns: [out_height, out_width].
func (c *Conv2D[B]) ComputeOutputSize(inputH, inputW int) [2]int {
	return [2]int{
		tensor.ConvOutputSize(inputH, c.kernelSize[0], c.stride, c.padding),
		tensor.ConvOutputSize(inputW, c.kernelSize[1], c.stride, c.padding),
	}
}
