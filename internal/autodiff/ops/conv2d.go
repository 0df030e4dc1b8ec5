package ops

import (
	"github.com/elvinmirzazada/StyleTransfer-NerualNet/internal/tensor"
)

// Conv2DOp logs a 2D convolution for the tape.
//
// Its backward pass is pure orchestration over the two gradient kernels
// the backend provides: a transposed convolution of the upstream
// gradient with the kernel for the input side, and a correlation of the
// input with the upstream gradient for the kernel side (Dumoulin &
// Visin, "A guide to convolution arithmetic for deep learning", 2016).
//
// A kernel-fixed op belongs to a frozen network: nothing ever consumes
// the kernel gradient, so the more expensive of the two computations is
// skipped and its slot stays nil.
type Conv2DOp struct {
	input       *tensor.RawTensor
	kernel      *tensor.RawTensor
	output      *tensor.RawTensor
	stride      int
	padding     int
	kernelFixed bool
}

// NewConv2DOp records a convolution. kernelFixed marks the kernel
// non-trainable.
func NewConv2DOp(input, kernel, output *tensor.RawTensor, stride, padding int, kernelFixed bool) *Conv2DOp {
	return &Conv2DOp{
		input:       input,
		kernel:      kernel,
		output:      output,
		stride:      stride,
		padding:     padding,
		kernelFixed: kernelFixed,
	}
}

// Inputs returns the convolved tensor and the kernel, in that order.
func (op *Conv2DOp) Inputs() []*tensor.RawTensor {
	return []*tensor.RawTensor{op.input, op.kernel}
}

// Output returns the convolution result.
func (op *Conv2DOp) Output() *tensor.RawTensor {
	return op.output
}

// Backward returns the input gradient and, unless the op is
// kernel-fixed, the kernel gradient.
func (op *Conv2DOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	inputGrad := backend.Conv2DInputBackward(op.input, op.kernel, outputGrad, op.stride, op.padding)

	var kernelGrad *tensor.RawTensor
	if !op.kernelFixed {
		kernelGrad = backend.Conv2DKernelBackward(op.input, op.kernel, outputGrad, op.stride, op.padding)
	}
	return []*tensor.RawTensor{inputGrad, kernelGrad}
}
