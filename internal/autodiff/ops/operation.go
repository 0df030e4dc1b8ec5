// Package ops holds the differentiable operation records the gradient tape
// replays in reverse.
//
// Forward computation happens in the backend; each op here only remembers
// the raw tensors involved and knows how to turn an output gradient into
// input gradients:
//
//   - AddOp, SubOp, MulOp, DivOp: element-wise arithmetic with broadcast-aware backward
//   - MatMulOp: matrix product (dA = grad @ B^T, dB = A^T @ grad)
//   - ReshapeOp, TransposeOp: shape movements (backward restores the original layout)
//   - Conv2DOp, MaxPool2DOp, ReLUOp: the convolutional feature-stack ops
//   - ScaleOp: multiplication by a fixed scalar (loss weighting)
//   - SumOp, MeanOp: full reductions to a single element (loss terms)
package ops

import "github.com/elvinmirzazada/StyleTransfer-NerualNet/internal/tensor"

// Operation is one recorded step of the forward pass. The tape identifies
// tensors by raw pointer, so an op must hand back the same *RawTensor
// values it was built with.
type Operation interface {
	// Backward maps the gradient at the output to a gradient per input,
	// in Inputs() order. A nil entry means no gradient flows to that
	// input, for example the divisor of a scalar scale.
	Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor

	// Inputs returns the operand tensors captured at record time.
	Inputs() []*tensor.RawTensor

	// Output returns the tensor this op produced.
	Output() *tensor.RawTensor
}
