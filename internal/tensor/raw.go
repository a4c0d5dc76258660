package tensor

import (
	"fmt"
	"math"
	"runtime"
	"unsafe"
)

// Device represents the compute device for tensor operations.
type Device int

// Supported compute devices.
const (
	CPU Device = iota
)

// String returns a human-readable device name.
func (d Device) String() string {
	switch d {
	case CPU:
		return "CPU"
	default:
		return "Unknown"
	}
}

// RawTensor is the low-level tensor representation.
//
// A RawTensor exclusively owns its buffer. Backends always allocate a fresh
// RawTensor for results and never write into their inputs, so a RawTensor
// that is not handed to user code again is effectively immutable.
type RawTensor struct {
	data   []byte   // Backing buffer
	shape  Shape    // Tensor dimensions
	stride []int    // Memory strides (row-major)
	dtype  DataType // Runtime type information
	device Device   // Compute device
}

// NewRaw creates a new zero-filled RawTensor with the given shape and type.
//
// Returns an error wrapping ErrInvalidShape for non-positive dimensions and
// ErrAllocation when the byte size cannot be represented or exceeds what the
// Go runtime can allocate.
func NewRaw(shape Shape, dtype DataType, device Device) (*RawTensor, error) {
	if err := shape.Validate(); err != nil {
		return nil, err
	}

	numElements, ok := shape.checkedNumElements()
	if !ok || numElements > math.MaxInt/dtype.Size() {
		return nil, fmt.Errorf("%w: shape %v of %s overflows addressable memory", ErrAllocation, shape, dtype)
	}

	data, err := allocBytes(numElements * dtype.Size())
	if err != nil {
		return nil, fmt.Errorf("%w: shape %v of %s: %w", ErrAllocation, shape, dtype, err)
	}

	return &RawTensor{
		data:   data,
		shape:  shape.Clone(),
		stride: shape.ComputeStrides(),
		dtype:  dtype,
		device: device,
	}, nil
}

// allocBytes is make([]byte, n) with the runtime's "len out of range"
// panic, raised for sizes above the platform allocation limit, returned as
// an error.
func allocBytes(n int) (data []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			rtErr, ok := r.(runtime.Error)
			if !ok {
				panic(r)
			}
			err = rtErr
		}
	}()
	return make([]byte, n), nil
}

// Shape returns the tensor's shape.
func (r *RawTensor) Shape() Shape {
	return r.shape
}

// Strides returns the tensor's memory strides.
func (r *RawTensor) Strides() []int {
	return r.stride
}

// DType returns the tensor's data type.
func (r *RawTensor) DType() DataType {
	return r.dtype
}

// Device returns the tensor's compute device.
func (r *RawTensor) Device() Device {
	return r.device
}

// NumElements returns the total number of elements.
func (r *RawTensor) NumElements() int {
	return r.shape.NumElements()
}

// ByteSize returns the total memory size in bytes.
func (r *RawTensor) ByteSize() int {
	return len(r.data)
}

// Data returns the raw byte slice.
// WARNING: Direct access to underlying memory. Use with caution.
func (r *RawTensor) Data() []byte {
	return r.data
}

// AsFloat32 interprets the data as []float32.
// Panics if the tensor's dtype is not Float32.
func (r *RawTensor) AsFloat32() []float32 {
	if r.dtype != Float32 {
		panic(fmt.Sprintf("tensor dtype is %s, not float32", r.dtype))
	}
	//nolint:gosec // unsafe.Slice for zero-copy access, length fixed by NumElements()
	return unsafe.Slice((*float32)(unsafe.Pointer(&r.data[0])), r.NumElements())
}

// AsFloat64 interprets the data as []float64.
// Panics if the tensor's dtype is not Float64.
func (r *RawTensor) AsFloat64() []float64 {
	if r.dtype != Float64 {
		panic(fmt.Sprintf("tensor dtype is %s, not float64", r.dtype))
	}
	//nolint:gosec // unsafe.Slice for zero-copy access, length fixed by NumElements()
	return unsafe.Slice((*float64)(unsafe.Pointer(&r.data[0])), r.NumElements())
}

// Clone returns a deep copy of the tensor.
func (r *RawTensor) Clone() *RawTensor {
	data := make([]byte, len(r.data))
	copy(data, r.data)
	return &RawTensor{
		data:   data,
		shape:  r.shape.Clone(),
		stride: append([]int(nil), r.stride...),
		dtype:  r.dtype,
		device: r.device,
	}
}

// WithShape returns a copy of the tensor viewed with a new shape.
// The element count must match.
func (r *RawTensor) WithShape(newShape Shape) (*RawTensor, error) {
	if err := newShape.Validate(); err != nil {
		return nil, err
	}
	if newShape.NumElements() != r.NumElements() {
		return nil, fmt.Errorf("%w: cannot view %v as %v", ErrInvalidShape, r.shape, newShape)
	}
	out := r.Clone()
	out.shape = newShape.Clone()
	out.stride = newShape.ComputeStrides()
	return out, nil
}
