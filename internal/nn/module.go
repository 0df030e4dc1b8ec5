// Package nn implements the neural network modules for StyleTransfer-NerualNet.
//
// The package covers exactly what a VGG-style feature extractor needs:
// Conv2D with loadable pretrained weights, ReLU, MaxPool2D, and the
// Parameter wrapper that ties a named tensor to its gradient. There is
// deliberately no training-oriented layer zoo; style transfer optimizes
// an image, not the network.
//
// Design inspired by PyTorch's nn.Module but adapted for Go generics.
package nn

import (
	"github.com/elvinmirzazada/StyleTransfer-NerualNet/internal/tensor"
)

// Module is one layer of the feature stack. A module transforms a tensor
// and exposes whatever trainable parameters it owns; composition is plain
// function chaining:
//
//	conv := nn.NewConv2D(3, 64, 3, 1, 1, true, backend)
//	relu := nn.NewReLU[Backend]()
//	out := relu.Forward(conv.Forward(input))
//
// Type parameter B pins the backend at compile time, so a stack cannot
// accidentally mix tensors from different backends.
type Module[B tensor.Backend] interface {
	// Forward computes the module's output. The convolutional modules
	// expect NCHW input: [batch, channels, height, width].
	Forward(input *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B]

	// Parameters lists the module's trainable tensors, empty (possibly
	// nil) for stateless modules such as activations.
	Parameters() []*Parameter[B]
}
