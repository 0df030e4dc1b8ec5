package ops

import (
	"fmt"

	"github.com/elvinmirzazada/StyleTransfer-NerualNet/internal/tensor"
)

// SumOp represents a full sum reduction: output = sum(x) with shape {1}.
//
// Backward pass: every element contributed with weight 1, so
//
//	grad_x[i] = outputGrad[0]
type SumOp struct {
	input  *tensor.RawTensor
	output *tensor.RawTensor
}

// NewSumOp creates a new SumOp.
func NewSumOp(input, output *tensor.RawTensor) *SumOp {
	return &SumOp{
		input:  input,
		output: output,
	}
}

// Backward spreads the single output gradient over the input unchanged.
func (op *SumOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	gradInput, err := tensor.NewRaw(op.input.Shape(), op.input.DType(), backend.Device())
	if err != nil {
		panic(fmt.Sprintf("sum: failed to create input gradient: %v", err))
	}

	switch op.input.DType() {
	case tensor.Float32:
		g := outputGrad.AsFloat32()[0]
		data := gradInput.AsFloat32()
		for i := range data {
			data[i] = g
		}

	case tensor.Float64:
		g := outputGrad.AsFloat64()[0]
		data := gradInput.AsFloat64()
		for i := range data {
			data[i] = g
		}

	default:
		panic(fmt.Sprintf("sum: unsupported dtype %s", op.input.DType()))
	}

	return []*tensor.RawTensor{gradInput}
}

// Inputs returns the input tensor [x].
func (op *SumOp) Inputs() []*tensor.RawTensor {
	return []*tensor.RawTensor{op.input}
}

// Output returns the output tensor sum(x).
func (op *SumOp) Output() *tensor.RawTensor {
	return op.output
}
