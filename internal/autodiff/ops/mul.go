package ops

import "github.com/elvinmirzazada/StyleTransfer-NerualNet/internal/tensor"

// MulOp records output = a * b.
//
// Each operand's gradient is the output gradient times the other operand
// (d(ab)/da = b, d(ab)/db = a), conformed to the operand's shape.
type MulOp struct {
	pairOp
}

// NewMulOp records a multiplication of a and b with the given result.
func NewMulOp(a, b, output *tensor.RawTensor) *MulOp {
	return &MulOp{pairOp{a: a, b: b, out: output}}
}

// Backward returns [dL/da, dL/db] = [grad*b, grad*a] in the operand
// shapes.
func (op *MulOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	return []*tensor.RawTensor{
		reduceBroadcast(backend.Mul(outputGrad, op.b), op.a.Shape(), backend),
		reduceBroadcast(backend.Mul(outputGrad, op.a), op.b.Shape(), backend),
	}
}
