package tensor

import (
	"fmt"
	"math"
)

// Shape represents the dimensions of a tensor.
//
// Encoder tensors are always 4D and laid out as [batch, channels, height, width].
type Shape []int

// NumElements returns the total number of elements in the tensor.
func (s Shape) NumElements() int {
	n := 1
	for _, dim := range s {
		n *= dim
	}
	return n
}

// checkedNumElements is NumElements with overflow detection.
func (s Shape) checkedNumElements() (int, bool) {
	n := 1
	for _, dim := range s {
		if dim != 0 && n > math.MaxInt/dim {
			return 0, false
		}
		n *= dim
	}
	return n, true
}

// Validate checks if the shape is valid (all dimensions > 0).
func (s Shape) Validate() error {
	for i, dim := range s {
		if dim <= 0 {
			return fmt.Errorf("%w: dimension %d is %d (must be > 0)", ErrInvalidShape, i, dim)
		}
	}
	return nil
}

// Equal checks if two shapes are equal.
func (s Shape) Equal(other Shape) bool {
	if len(s) != len(other) {
		return false
	}
	for i := range s {
		if s[i] != other[i] {
			return false
		}
	}
	return true
}

// Clone returns a copy of the shape.
func (s Shape) Clone() Shape {
	clone := make(Shape, len(s))
	copy(clone, s)
	return clone
}

// ComputeStrides calculates row-major strides for the shape.
func (s Shape) ComputeStrides() []int {
	strides := make([]int, len(s))
	if len(s) == 0 {
		return strides
	}

	strides[len(s)-1] = 1
	for i := len(s) - 2; i >= 0; i-- {
		strides[i] = strides[i+1] * s[i+1]
	}
	return strides
}

// BroadcastShapes implements NumPy-style broadcasting rules.
//
// Shapes are compared from the rightmost dimension; two dimensions are
// compatible when they are equal or one of them is 1. Missing leading
// dimensions count as 1.
//
//	(1, 8, 1, 1) + (4, 8, 5, 5) -> (4, 8, 5, 5), true, nil
//	(4, 8, 5, 5) + (4, 8, 5, 5) -> (4, 8, 5, 5), false, nil
//	(4, 8, 5, 5) + (4, 6, 5, 5) -> nil, false, error
func BroadcastShapes(a, b Shape) (Shape, bool, error) {
	maxLen := max(len(a), len(b))
	result := make(Shape, maxLen)
	needsBroadcast := len(a) != len(b)

	for i := 0; i < maxLen; i++ {
		aDim, bDim := 1, 1
		if aIdx := len(a) - 1 - i; aIdx >= 0 {
			aDim = a[aIdx]
		}
		if bIdx := len(b) - 1 - i; bIdx >= 0 {
			bDim = b[bIdx]
		}

		switch {
		case aDim == bDim:
			result[maxLen-1-i] = aDim
		case aDim == 1:
			result[maxLen-1-i] = bDim
			needsBroadcast = true
		case bDim == 1:
			result[maxLen-1-i] = aDim
			needsBroadcast = true
		default:
			return nil, false, fmt.Errorf("%w: %v and %v are not broadcastable (dimension %d: %d vs %d)",
				ErrInvalidShape, a, b, maxLen-1-i, aDim, bDim)
		}
	}

	return result, needsBroadcast, nil
}

// ConvOutputSize applies out = floor((in + 2*padding - kernel)/stride) + 1
// to one spatial axis. The result may be zero or negative; callers decide
// how to report that.
func ConvOutputSize(in, kernel, stride, padding int) int {
	return floorDiv(in+2*padding-kernel, stride) + 1
}

// floorDiv is integer division rounding toward negative infinity.
func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}
