// Copyright 2025 StyleTransfer-NerualNet. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

import "github.com/elvinmirzazada/StyleTransfer-NerualNet/internal/tensor"

// Backend is the compute contract tensors dispatch through. Every
// operation takes raw tensors and returns a freshly allocated result;
// operands are never written to.
//
// The method set is exactly what the style transfer pipeline needs: the
// frozen network forward pass (Conv2D, ReLU, MaxPool2D), the Gram
// statistic (Reshape, Transpose, MatMul), loss composition (Sub, Mul,
// Mean, scalar ops, Add) and the backward kernel of each.
//
// backend/cpu is the pure Go implementation, with gonum BLAS matmul and
// parallel convolution kernels. The autodiff package wraps any Backend
// to add gradient recording without changing call sites.
type Backend interface {
	// Elementwise arithmetic with NumPy-style broadcasting.
	Add(a, b *RawTensor) *RawTensor
	Sub(a, b *RawTensor) *RawTensor
	Mul(a, b *RawTensor) *RawTensor
	Div(a, b *RawTensor) *RawTensor

	// MatMul multiplies two 2D matrices.
	MatMul(a, b *RawTensor) *RawTensor

	// Network kernels. All spatial tensors are NCHW with square kernels.
	Conv2D(input, kernel *RawTensor, stride, padding int) *RawTensor
	MaxPool2D(input *RawTensor, kernelSize, stride int) *RawTensor
	ReLU(x *RawTensor) *RawTensor

	// Backward kernels for the spatial operations. maxIndices carries
	// the flat winner positions saved during the pooling forward pass.
	Conv2DInputBackward(input, kernel, grad *RawTensor, stride, padding int) *RawTensor
	Conv2DKernelBackward(input, kernel, grad *RawTensor, stride, padding int) *RawTensor
	MaxPool2DBackward(input, grad *RawTensor, maxIndices []int, kernelSize, stride int) *RawTensor

	// Shape manipulation.
	Reshape(t *RawTensor, newShape Shape) *RawTensor
	Transpose(t *RawTensor, axes ...int) *RawTensor

	// Elementwise arithmetic against a scalar (float32 or float64,
	// matching the tensor's dtype).
	MulScalar(x *RawTensor, scalar any) *RawTensor
	AddScalar(x *RawTensor, scalar any) *RawTensor
	SubScalar(x *RawTensor, scalar any) *RawTensor
	DivScalar(x *RawTensor, scalar any) *RawTensor

	// Full reductions to a shape {1} tensor.
	Sum(x *RawTensor) *RawTensor
	Mean(x *RawTensor) *RawTensor

	Name() string   // human-readable backend name, e.g. "CPU"
	Device() Device // where this backend's tensors live
}

// Compile-time check that the internal interface and this one agree.
var _ Backend = tensor.Backend(nil)
