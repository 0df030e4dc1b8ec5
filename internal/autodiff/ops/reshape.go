package ops

import "github.com/elvinmirzazada/StyleTransfer-NerualNet/internal/tensor"

// ReshapeOp records a shape change over the same elements.
//
// The backward pass reshapes the output gradient back to the input's
// shape. No arithmetic is involved; tensor shapes are fixed at creation,
// so the recorded input still carries the shape to restore.
type ReshapeOp struct {
	input  *tensor.RawTensor
	output *tensor.RawTensor
}

// NewReshapeOp records a reshape of input with the given result.
func NewReshapeOp(input, output *tensor.RawTensor) *ReshapeOp {
	return &ReshapeOp{input: input, output: output}
}

// Backward returns the output gradient in the input's shape.
func (op *ReshapeOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	return []*tensor.RawTensor{backend.Reshape(outputGrad, op.input.Shape())}
}

// Inputs returns the reshaped tensor.
func (op *ReshapeOp) Inputs() []*tensor.RawTensor {
	return []*tensor.RawTensor{op.input}
}

// Output returns the recorded result.
func (op *ReshapeOp) Output() *tensor.RawTensor {
	return op.output
}
