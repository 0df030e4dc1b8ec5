package ops

import (
	"fmt"

	"github.com/elvinmirzazada/StyleTransfer-NerualNet/internal/tensor"
)

// ReLUOp records output = max(0, x).
//
// The gradient passes through where the input was positive and is zero
// elsewhere, including at exactly zero.
type ReLUOp struct {
	input  *tensor.RawTensor
	output *tensor.RawTensor
}

// NewReLUOp records a ReLU of input with the given result.
func NewReLUOp(input, output *tensor.RawTensor) *ReLUOp {
	return &ReLUOp{input: input, output: output}
}

// Backward masks the output gradient by the input's sign in a single pass
// over the buffers; no separate mask tensor is built.
func (op *ReLUOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	gradInput, err := tensor.NewRaw(op.input.Shape(), op.input.DType(), backend.Device())
	if err != nil {
		panic(fmt.Sprintf("relu: failed to create input gradient: %v", err))
	}

	switch op.input.DType() {
	case tensor.Float32:
		in := op.input.AsFloat32()
		g := outputGrad.AsFloat32()
		dst := gradInput.AsFloat32()
		for i, v := range in {
			if v > 0 {
				dst[i] = g[i]
			}
		}

	case tensor.Float64:
		in := op.input.AsFloat64()
		g := outputGrad.AsFloat64()
		dst := gradInput.AsFloat64()
		for i, v := range in {
			if v > 0 {
				dst[i] = g[i]
			}
		}

	default:
		panic(fmt.Sprintf("relu: unsupported dtype %s", op.input.DType()))
	}

	return []*tensor.RawTensor{gradInput}
}

// Inputs returns the input tensor [x].
func (op *ReLUOp) Inputs() []*tensor.RawTensor {
	return []*tensor.RawTensor{op.input}
}

// Output returns the output tensor max(0, x).
func (op *ReLUOp) Output() *tensor.RawTensor {
	return op.output
}
