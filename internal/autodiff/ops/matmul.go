package ops

import "github.com/elvinmirzazada/StyleTransfer-NerualNet/internal/tensor"

// MatMulOp records a 2-D matrix product output = a @ b.
//
// With grad the output gradient, d(a@b)/da = grad @ b^T and
// d(a@b)/db = a^T @ grad. Both land in the operand's own shape, so no
// broadcast reduction applies.
type MatMulOp struct {
	pairOp
}

// NewMatMulOp records a matrix product of a and b with the given result.
func NewMatMulOp(a, b, output *tensor.RawTensor) *MatMulOp {
	return &MatMulOp{pairOp{a: a, b: b, out: output}}
}

// Backward returns [grad @ b^T, a^T @ grad].
func (op *MatMulOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	return []*tensor.RawTensor{
		backend.MatMul(outputGrad, backend.Transpose(op.b, 1, 0)),
		backend.MatMul(backend.Transpose(op.a, 1, 0), outputGrad),
	}
}
