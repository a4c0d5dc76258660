package tensor

// Add performs element-wise addition with broadcasting.
//
// Example:
//
//	bias := tensor.Ones[float32](Shape{1, 8, 1, 1}, backend)
//	x := tensor.Zeros[float32](Shape{4, 8, 5, 5}, backend)
//	y := x.Add(bias) // Shape: [4, 8, 5, 5]
func (t *Tensor[T, B]) Add(other *Tensor[T, B]) *Tensor[T, B] {
	result := t.backend.Add(t.raw, other.raw)
	return New[T, B](result, t.backend)
}

// ReLU applies max(0, x) element-wise.
func (t *Tensor[T, B]) ReLU() *Tensor[T, B] {
	result := t.backend.ReLU(t.raw)
	return New[T, B](result, t.backend)
}

// Reshape returns a tensor with the same data but different shape.
// The new shape must have the same number of elements.
//
// Example:
//
//	b := bias.Reshape(1, 8, 1, 1) // [8] -> [1, 8, 1, 1]
func (t *Tensor[T, B]) Reshape(newShape ...int) *Tensor[T, B] {
	result := t.backend.Reshape(t.raw, Shape(newShape))
	return New[T, B](result, t.backend)
}
