package ops

import (
	"fmt"

	"github.com/elvinmirzazada/StyleTransfer-NerualNet/internal/tensor"
)

// MeanOp represents a full mean reduction: output = mean(x) with shape {1}.
//
// Backward pass: each of the n elements contributed with weight 1/n, so
//
//	grad_x[i] = outputGrad[0] / n
type MeanOp struct {
	input  *tensor.RawTensor
	output *tensor.RawTensor
}

// NewMeanOp creates a new MeanOp.
func NewMeanOp(input, output *tensor.RawTensor) *MeanOp {
	return &MeanOp{
		input:  input,
		output: output,
	}
}

// Backward spreads the single output gradient uniformly over the input.
func (op *MeanOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	gradInput, err := tensor.NewRaw(op.input.Shape(), op.input.DType(), backend.Device())
	if err != nil {
		panic(fmt.Sprintf("mean: failed to create input gradient: %v", err))
	}

	n := op.input.NumElements()

	switch op.input.DType() {
	case tensor.Float32:
		g := outputGrad.AsFloat32()[0] / float32(n)
		data := gradInput.AsFloat32()
		for i := range data {
			data[i] = g
		}

	case tensor.Float64:
		g := outputGrad.AsFloat64()[0] / float64(n)
		data := gradInput.AsFloat64()
		for i := range data {
			data[i] = g
		}

	default:
		panic(fmt.Sprintf("mean: unsupported dtype %s", op.input.DType()))
	}

	return []*tensor.RawTensor{gradInput}
}

// Inputs returns the input tensor [x].
func (op *MeanOp) Inputs() []*tensor.RawTensor {
	return []*tensor.RawTensor{op.input}
}

// Output returns the output tensor mean(x).
func (op *MeanOp) Output() *tensor.RawTensor {
	return op.output
}
