package tensor

// Typed operation wrappers. Every method hands its raw tensors to the
// backend and reties the result to the same backend; shape and dtype
// checking stay in the backend.

// wrap binds a backend result to t's backend as a typed tensor.
func (t *Tensor[T, B]) wrap(raw *RawTensor) *Tensor[T, B] {
	return New[T, B](raw, t.backend)
}

// Add returns t + other with broadcasting.
//
//	a := tensor.Ones[float32](Shape{3, 1}, backend)
//	b := tensor.Ones[float32](Shape{3, 5}, backend)
//	c := a.Add(b) // shape [3, 5]
func (t *Tensor[T, B]) Add(other *Tensor[T, B]) *Tensor[T, B] {
	return t.wrap(t.backend.Add(t.raw, other.raw))
}

// Sub returns t - other with broadcasting.
func (t *Tensor[T, B]) Sub(other *Tensor[T, B]) *Tensor[T, B] {
	return t.wrap(t.backend.Sub(t.raw, other.raw))
}

// Mul returns the element-wise product with broadcasting.
func (t *Tensor[T, B]) Mul(other *Tensor[T, B]) *Tensor[T, B] {
	return t.wrap(t.backend.Mul(t.raw, other.raw))
}

// Div returns the element-wise quotient with broadcasting.
func (t *Tensor[T, B]) Div(other *Tensor[T, B]) *Tensor[T, B] {
	return t.wrap(t.backend.Div(t.raw, other.raw))
}

// MatMul multiplies 2D matrices: (M, K) @ (K, N) gives (M, N).
func (t *Tensor[T, B]) MatMul(other *Tensor[T, B]) *Tensor[T, B] {
	return t.wrap(t.backend.MatMul(t.raw, other.raw))
}

// Reshape returns the same data under a new shape with an equal element
// count.
//
//	t := tensor.Randn[float32](Shape{1, 8, 4, 4}, backend)
//	flat := t.Reshape(8, 16) // channels by spatial positions
func (t *Tensor[T, B]) Reshape(newShape ...int) *Tensor[T, B] {
	return t.wrap(t.backend.Reshape(t.raw, Shape(newShape)))
}

// Transpose permutes dimensions. Without arguments the axes reverse,
// which for 2D is the standard transpose.
func (t *Tensor[T, B]) Transpose(axes ...int) *Tensor[T, B] {
	return t.wrap(t.backend.Transpose(t.raw, axes...))
}

// T swaps the two dimensions of a matrix. Panics on other ranks.
func (t *Tensor[T, B]) T() *Tensor[T, B] {
	if len(t.Shape()) != 2 {
		panic("T() only works for 2D tensors")
	}
	return t.Transpose(1, 0)
}

// MulScalar scales every element by scalar.
func (t *Tensor[T, B]) MulScalar(scalar T) *Tensor[T, B] {
	return t.wrap(t.backend.MulScalar(t.raw, scalar))
}

// AddScalar shifts every element by scalar.
func (t *Tensor[T, B]) AddScalar(scalar T) *Tensor[T, B] {
	return t.wrap(t.backend.AddScalar(t.raw, scalar))
}

// SubScalar shifts every element by -scalar.
func (t *Tensor[T, B]) SubScalar(scalar T) *Tensor[T, B] {
	return t.wrap(t.backend.SubScalar(t.raw, scalar))
}

// DivScalar divides every element by scalar.
func (t *Tensor[T, B]) DivScalar(scalar T) *Tensor[T, B] {
	return t.wrap(t.backend.DivScalar(t.raw, scalar))
}

// ReLU clamps negatives to zero element-wise.
func (t *Tensor[T, B]) ReLU() *Tensor[T, B] {
	return t.wrap(t.backend.ReLU(t.raw))
}

// Sum reduces to the total of all elements, shape {1}.
func (t *Tensor[T, B]) Sum() *Tensor[T, B] {
	return t.wrap(t.backend.Sum(t.raw))
}

// Mean reduces to the average of all elements, shape {1}.
//
//	diff := target.Sub(reference)
//	mse := diff.Mul(diff).Mean()
func (t *Tensor[T, B]) Mean() *Tensor[T, B] {
	return t.wrap(t.backend.Mean(t.raw))
}
