package ops

import "github.com/elvinmirzazada/StyleTransfer-NerualNet/internal/tensor"

// ScaleOp represents multiplication by a fixed scalar: output = x * factor.
// Scalar division records a ScaleOp with the reciprocal factor, and scalar
// addition and subtraction record one with factor 1 (a constant shift leaves
// the gradient unchanged).
//
// Backward pass:
//   - d(x*k)/dx = k, so grad_x = outputGrad * k
//
// The factor is a plain number, not a tensor: no gradient flows to it.
type ScaleOp struct {
	input  *tensor.RawTensor
	output *tensor.RawTensor
	factor float64
}

// NewScaleOp creates a new ScaleOp with the given factor.
func NewScaleOp(input, output *tensor.RawTensor, factor float64) *ScaleOp {
	return &ScaleOp{
		input:  input,
		output: output,
		factor: factor,
	}
}

// Backward computes the input gradient: outputGrad scaled by the factor.
func (op *ScaleOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	gradInput := backend.MulScalar(outputGrad, scalarFor(outputGrad.DType(), op.factor))

	return []*tensor.RawTensor{gradInput}
}

// Inputs returns the input tensor [x].
func (op *ScaleOp) Inputs() []*tensor.RawTensor {
	return []*tensor.RawTensor{op.input}
}

// Output returns the output tensor x * factor.
func (op *ScaleOp) Output() *tensor.RawTensor {
	return op.output
}
