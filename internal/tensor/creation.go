package tensor

import "math/rand"

// alloc builds a zeroed tensor, panicking on an invalid shape. The
// creation helpers funnel through here.
func alloc[T DType, B Backend](shape Shape, b B) *Tensor[T, B] {
	var zero T
	raw, err := NewRaw(shape, typeTag(zero), b.Device())
	if err != nil {
		panic(err)
	}
	return New[T, B](raw, b)
}

// Zeros creates a tensor of zeros.
//
//	t := tensor.Zeros[float32](Shape{3, 4}, backend)
func Zeros[T DType, B Backend](shape Shape, b B) *Tensor[T, B] {
	// Fresh buffers come back zeroed already.
	return alloc[T, B](shape, b)
}

// Ones creates a tensor of ones.
func Ones[T DType, B Backend](shape Shape, b B) *Tensor[T, B] {
	return Full[T, B](shape, 1, b)
}

// Full creates a tensor with every element set to value.
//
//	t := tensor.Full[float32](Shape{3, 3}, 3.14, backend)
func Full[T DType, B Backend](shape Shape, value T, b B) *Tensor[T, B] {
	t := alloc[T, B](shape, b)
	data := t.Data()
	for i := range data {
		data[i] = value
	}
	return t
}

// Randn creates a tensor drawn from the standard normal distribution.
// math/rand is deliberate here: seedable noise matters more than
// cryptographic quality for initialization.
func Randn[T DType, B Backend](shape Shape, b B) *Tensor[T, B] {
	t := alloc[T, B](shape, b)
	data := t.Data()
	for i := range data {
		data[i] = T(rand.NormFloat64()) //nolint:gosec // G404: initialization noise, not crypto
	}
	return t
}

// Rand creates a tensor drawn uniformly from [0, 1).
func Rand[T DType, B Backend](shape Shape, b B) *Tensor[T, B] {
	t := alloc[T, B](shape, b)
	data := t.Data()
	for i := range data {
		data[i] = T(rand.Float64()) //nolint:gosec // G404: initialization noise, not crypto
	}
	return t
}

// Eye creates the n by n identity matrix.
func Eye[T DType, B Backend](n int, b B) *Tensor[T, B] {
	t := alloc[T, B](Shape{n, n}, b)
	for i := 0; i < n; i++ {
		t.Set(1, i, i)
	}
	return t
}
