package ops

import (
	"github.com/elvinmirzazada/StyleTransfer-NerualNet/internal/tensor"
)

// MaxPool2DOp logs a max pooling operation for the tape.
//
// The winner of every pooling window is located here, at record time;
// the backward pass is then a single scatter with no re-scan of the
// windows. Ties resolve to the first position in row-major order,
// matching the forward kernels.
type MaxPool2DOp struct {
	input      *tensor.RawTensor
	output     *tensor.RawTensor
	maxIndices []int
	kernelSize int
	stride     int
}

// NewMaxPool2DOp records input, output and the per-window argmax.
func NewMaxPool2DOp(input, output *tensor.RawTensor, kernelSize, stride int) *MaxPool2DOp {
	op := &MaxPool2DOp{
		input:      input,
		output:     output,
		kernelSize: kernelSize,
		stride:     stride,
	}
	switch input.DType() {
	case tensor.Float32:
		op.maxIndices = poolWinners(input.AsFloat32(), input.Shape(), output.Shape(), kernelSize, stride)
	case tensor.Float64:
		op.maxIndices = poolWinners(input.AsFloat64(), input.Shape(), output.Shape(), kernelSize, stride)
	default:
		panic("maxpool2d: unsupported dtype")
	}
	return op
}

// poolWinners returns the flat input index of the maximum in each
// pooling window, in output order.
func poolWinners[F tensor.DType](data []F, in, out tensor.Shape, kernel, stride int) []int {
	h, w := in[2], in[3]
	outH, outW := out[2], out[3]

	winners := make([]int, 0, in[0]*in[1]*outH*outW)
	for img := 0; img < in[0]*in[1]; img++ {
		base := img * h * w
		for oy := 0; oy < outH; oy++ {
			for ox := 0; ox < outW; ox++ {
				best := base + oy*stride*w + ox*stride
				for dy := 0; dy < kernel; dy++ {
					row := base + (oy*stride+dy)*w + ox*stride
					for dx := 0; dx < kernel; dx++ {
						if data[row+dx] > data[best] {
							best = row + dx
						}
					}
				}
				winners = append(winners, best)
			}
		}
	}
	return winners
}

// Inputs returns the pooled tensor.
func (op *MaxPool2DOp) Inputs() []*tensor.RawTensor {
	return []*tensor.RawTensor{op.input}
}

// Output returns the pooled result.
func (op *MaxPool2DOp) Output() *tensor.RawTensor {
	return op.output
}

// Backward routes each upstream value to the input position that won
// its window: the subgradient of max is 1 at the argmax and 0 at every
// other position.
func (op *MaxPool2DOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	return []*tensor.RawTensor{
		backend.MaxPool2DBackward(op.input, outputGrad, op.maxIndices, op.kernelSize, op.stride),
	}
}
