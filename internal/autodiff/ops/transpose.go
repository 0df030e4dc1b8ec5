package ops

import "github.com/elvinmirzazada/StyleTransfer-NerualNet/internal/tensor"

// TransposeOp records an axis permutation.
//
// The gradient of a permutation is the inverse permutation applied to the
// output gradient. The inverse is computed once at record time.
type TransposeOp struct {
	input   *tensor.RawTensor
	output  *tensor.RawTensor
	inverse []int
}

// NewTransposeOp records a transpose of input along axes with the given
// result.
func NewTransposeOp(input, output *tensor.RawTensor, axes []int) *TransposeOp {
	inverse := make([]int, len(axes))
	for i, ax := range axes {
		inverse[ax] = i
	}
	return &TransposeOp{input: input, output: output, inverse: inverse}
}

// Backward returns the output gradient permuted back to the input's axis
// order.
func (op *TransposeOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	return []*tensor.RawTensor{backend.Transpose(outputGrad, op.inverse...)}
}

// Inputs returns the transposed tensor.
func (op *TransposeOp) Inputs() []*tensor.RawTensor {
	return []*tensor.RawTensor{op.input}
}

// Output returns the recorded result.
func (op *TransposeOp) Output() *tensor.RawTensor {
	return op.output
}
