package ops

import "github.com/elvinmirzazada/StyleTransfer-NerualNet/internal/tensor"

// DivOp records output = a / b.
//
// d(a/b)/da = 1/b and d(a/b)/db = -a/b², so the numerator's gradient is
// the output gradient over b and the denominator's is the output gradient
// times -a/b², each conformed to the operand's shape.
type DivOp struct {
	pairOp
}

// NewDivOp records a division of a by b with the given result.
func NewDivOp(a, b, output *tensor.RawTensor) *DivOp {
	return &DivOp{pairOp{a: a, b: b, out: output}}
}

// Backward returns [dL/da, dL/db] for the division.
func (op *DivOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	gradA := backend.Div(outputGrad, op.b)

	// -(grad * a) / b²
	gradB := backend.Div(backend.Mul(outputGrad, op.a), backend.Mul(op.b, op.b))
	gradB = negate(gradB, backend)

	return []*tensor.RawTensor{
		reduceBroadcast(gradA, op.a.Shape(), backend),
		reduceBroadcast(gradB, op.b.Shape(), backend),
	}
}
