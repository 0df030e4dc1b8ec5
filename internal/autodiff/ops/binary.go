package ops

import "github.com/elvinmirzazada/StyleTransfer-NerualNet/internal/tensor"

// pairOp carries the recorded operands of a two-input operation. The
// concrete ops embed it and add their backward rule.
type pairOp struct {
	a, b *tensor.RawTensor
	out  *tensor.RawTensor
}

// Inputs returns the recorded operands [a, b].
func (op *pairOp) Inputs() []*tensor.RawTensor {
	return []*tensor.RawTensor{op.a, op.b}
}

// Output returns the recorded result.
func (op *pairOp) Output() *tensor.RawTensor {
	return op.out
}
