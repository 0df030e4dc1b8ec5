package ops

import "github.com/elvinmirzazada/StyleTransfer-NerualNet/internal/tensor"

// AddOp records output = a + b.
//
// Addition passes the output gradient through to both operands unchanged.
// A broadcast operand gets its gradient summed back down to its own shape.
type AddOp struct {
	pairOp
}

// NewAddOp records an addition of a and b with the given result.
func NewAddOp(a, b, output *tensor.RawTensor) *AddOp {
	return &AddOp{pairOp{a: a, b: b, out: output}}
}

// Backward returns [dL/da, dL/db], the output gradient conformed to each
// operand's shape.
func (op *AddOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	return []*tensor.RawTensor{
		reduceBroadcast(outputGrad, op.a.Shape(), backend),
		reduceBroadcast(outputGrad, op.b.Shape(), backend),
	}
}
