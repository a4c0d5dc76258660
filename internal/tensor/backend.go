package tensor

// Backend defines the operations a compute engine must provide to run the
// encoder. Every operation returns a freshly allocated tensor and leaves its
// inputs untouched, which makes concurrent use over shared parameters safe.
//
// Backends report misuse by panicking with an error that wraps
// ErrInvalidShape or ErrAllocation.
type Backend interface {
	// Add performs element-wise addition with NumPy-style broadcasting.
	Add(a, b *RawTensor) *RawTensor

	// ReLU computes max(0, x) element-wise.
	ReLU(x *RawTensor) *RawTensor

	// Conv2D convolves a [N, C_in, H, W] input with a [C_out, C_in, K_h, K_w]
	// kernel using the same stride and zero padding on both spatial axes.
	Conv2D(input, kernel *RawTensor, stride, padding int) *RawTensor

	// Reshape returns a copy of t with a new shape of equal element count.
	Reshape(t *RawTensor, newShape Shape) *RawTensor

	// Metadata
	Name() string
	Device() Device
}
