package ops

import "github.com/elvinmirzazada/StyleTransfer-NerualNet/internal/tensor"

// SubOp records output = a - b.
//
// The minuend takes the output gradient as is, the subtrahend its
// negation, each conformed to the operand's shape.
type SubOp struct {
	pairOp
}

// NewSubOp records a subtraction of b from a with the given result.
func NewSubOp(a, b, output *tensor.RawTensor) *SubOp {
	return &SubOp{pairOp{a: a, b: b, out: output}}
}

// Backward returns [dL/da, dL/db] = [grad, -grad] in the operand shapes.
func (op *SubOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	return []*tensor.RawTensor{
		reduceBroadcast(outputGrad, op.a.Shape(), backend),
		reduceBroadcast(negate(outputGrad, backend), op.b.Shape(), backend),
	}
}
