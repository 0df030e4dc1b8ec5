// Copyright 2025 StyleTransfer-NerualNet. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor is the public tensor API of the style transfer engine.
//
// It re-exports the engine's dense tensor types so user code can build
// and combine tensors without importing internal packages:
//
//	backend := cpu.New()
//	x := tensor.Zeros[float32](tensor.Shape{1, 3, 224, 224}, backend)
//	y := tensor.Randn[float32](x.Shape(), backend)
//	z := x.Add(y)
//
// Tensor[T, B] is the high-level generic type; RawTensor and NewRaw are
// the untyped layer underneath it, needed only when implementing a
// Backend.
package tensor

import (
	"github.com/elvinmirzazada/StyleTransfer-NerualNet/internal/tensor"
)

// DType constrains the element types a Tensor can carry: float32 or
// float64.
type DType = tensor.DType

// DataType is the runtime tag matching a DType.
type DataType = tensor.DataType

const (
	Float32 DataType = tensor.Float32
	Float64 DataType = tensor.Float64
)

// Device identifies where tensor data lives.
type Device = tensor.Device

const (
	CPU Device = tensor.CPU
)

// Shape holds tensor dimensions, outermost first. A batched NCHW image
// is Shape{n, c, h, w}.
type Shape = tensor.Shape

// Tensor is a dense tensor with element type T computed by backend B.
// Operations dispatch through the backend, so the same call sites run
// eagerly on the CPU backend or record onto a tape under the autodiff
// backend.
type Tensor[T DType, B Backend] = tensor.Tensor[T, B]

// Zeros returns a tensor of the given shape filled with zeros.
func Zeros[T DType, B Backend](shape Shape, b B) *Tensor[T, B] {
	return tensor.Zeros[T, B](shape, b)
}

// Ones returns a tensor of the given shape filled with ones.
func Ones[T DType, B Backend](shape Shape, b B) *Tensor[T, B] {
	return tensor.Ones[T, B](shape, b)
}

// Full returns a tensor of the given shape with every element set to
// value.
func Full[T DType, B Backend](shape Shape, value T, b B) *Tensor[T, B] {
	return tensor.Full[T, B](shape, value, b)
}

// Randn returns a tensor drawn elementwise from the standard normal
// distribution N(0, 1).
func Randn[T DType, B Backend](shape Shape, b B) *Tensor[T, B] {
	return tensor.Randn[T, B](shape, b)
}

// Rand returns a tensor drawn elementwise from the uniform distribution
// U(0, 1).
func Rand[T DType, B Backend](shape Shape, b B) *Tensor[T, B] {
	return tensor.Rand[T, B](shape, b)
}

// Eye returns the n by n identity matrix.
func Eye[T DType, B Backend](n int, b B) *Tensor[T, B] {
	return tensor.Eye[T, B](n, b)
}

// FromSlice builds a tensor from data laid out in row-major order. The
// slice length must match the shape's element count.
func FromSlice[T DType, B Backend](data []T, shape Shape, b B) (*Tensor[T, B], error) {
	return tensor.FromSlice[T, B](data, shape, b)
}

// New wraps an existing raw tensor in the typed API. The raw tensor's
// dtype must match T; this is not checked here.
func New[T DType, B Backend](raw *RawTensor, b B) *Tensor[T, B] {
	return tensor.New[T, B](raw, b)
}

// NewRaw allocates an untyped tensor buffer. Backend implementations
// use it; most callers want Zeros or FromSlice.
func NewRaw(shape Shape, dtype DataType, device Device) (*RawTensor, error) {
	return tensor.NewRaw(shape, dtype, device)
}

// BroadcastShapes resolves two shapes under NumPy broadcasting rules,
// reporting the combined shape and whether either operand needs
// stretching.
func BroadcastShapes(a, b Shape) (Shape, bool, error) {
	return tensor.BroadcastShapes(a, b)
}
