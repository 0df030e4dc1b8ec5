package nn

import (
	"fmt"

	"github.com/elvinmirzazada/StyleTransfer-NerualNet/internal/tensor"
)

// MaxPool2D takes the maximum over square windows of an NCHW activation,
// shrinking the spatial dimensions. It has no parameters.
//
// Output spatial size per axis is (in - kernelSize)/stride + 1. Every
// pool in the VGG-19 stack is the 2x2 stride-2 configuration, which
// halves height and width.
//
// Example:
//
//	pool := nn.NewMaxPool2D(2, 2, backend)
//	input := tensor.Randn[float32](tensor.Shape{1, 64, 224, 224}, backend)
//	output := pool.Forward(input) // [1, 64, 112, 112]
type MaxPool2D[B tensor.Backend] struct {
	kernelSize int
	stride     int
	backend    B
}

// NewMaxPool2D creates a square max pooling layer. Panics on
// non-positive kernel size or stride.
func NewMaxPool2D[B tensor.Backend](kernelSize, stride int, backend B) *MaxPool2D[B] {
	if kernelSize <= 0 {
		panic(fmt.Sprintf("maxpool2d: invalid kernel size %d", kernelSize))
	}
	if stride <= 0 {
		panic(fmt.Sprintf("maxpool2d: invalid stride %d", stride))
	}
	return &MaxPool2D[B]{kernelSize: kernelSize, stride: stride, backend: backend}
}

// Forward pools a [batch, channels, height, width] input. Panics on
// input of any other rank.
func (m *MaxPool2D[B]) Forward(input *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	if ndim := len(input.Shape()); ndim != 4 {
		panic(fmt.Sprintf("maxpool2d: expected 4D input [N,C,H,W], got %dD", ndim))
	}
	out := m.backend.MaxPool2D(input.Raw(), m.kernelSize, m.stride)
	return tensor.New[float32, B](out, m.backend)
}

// Parameters returns nothing; pooling has nothing to train.
func (m *MaxPool2D[B]) Parameters() []*Parameter[B] {
	return nil
}

// String returns a short description of the layer.
func (m *MaxPool2D[B]) String() string {
	return fmt.Sprintf("MaxPool2D(kernel_size=%d, stride=%d)",
		m.kernelSize, m.stride)
}

// KernelSize returns the pooling window side length.
func (m *MaxPool2D[B]) KernelSize() int {
	return m.kernelSize
}

// Stride returns the pooling stride.
func (m *MaxPool2D[B]) Stride() int {
	return m.stride
}

// ComputeOutputSize returns the [height, width] pooling produces for the
// given input spatial size.
func (m *MaxPool2D[B]) ComputeOutputSize(inputH, inputW int) [2]int {
	outH := (inputH-m.kernelSize)/m.stride + 1
	outW := (inputW-m.kernelSize)/m.stride + 1
	return [2]int{outH, outW}
}
