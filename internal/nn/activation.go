package nn

import (
	"github.com/elvinmirzazada/StyleTransfer-NerualNet/internal/tensor"
)

// ReLU clamps every element to max(0, x).
//
// The VGG feature stack inserts one after each convolution. The module is
// stateless: no parameters, no configuration, safe to share between layers.
//
//	relu := nn.NewReLU[Backend]()
//	out := relu.Forward(in) // negatives become zero
type ReLU[B tensor.Backend] struct{}

// NewReLU returns a stateless ReLU module.
func NewReLU[B tensor.Backend]() *ReLU[B] {
	return &ReLU[B]{}
}

// Forward rectifies the input element-wise on the input's own backend.
func (r *ReLU[B]) Forward(input *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	b := input.Backend()
	return tensor.New[float32, B](b.ReLU(input.Raw()), b)
}

// Parameters reports no trainable state.
func (r *ReLU[B]) Parameters() []*Parameter[B] {
	return nil
}
