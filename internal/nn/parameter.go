package nn

import (
	"github.com/elvinmirzazada/StyleTransfer-NerualNet/internal/tensor"
)

// Parameter is a named tensor with a gradient slot.
//
// In this pipeline almost every parameter is frozen: the network's
// weights and biases are marked constant on the tape, and the single
// trainable parameter is the target image. The type is the same either
// way; freezing is a property of the tape, not of the Parameter.
//
// Example:
//
//	target := nn.NewParameter("target", pixels)
//	optimizer := optim.NewAdam([]*nn.Parameter[B]{target}, cfg, backend)
type Parameter[B tensor.Backend] struct {
	name   string
	tensor *tensor.Tensor[float32, B]
	grad   *tensor.Tensor[float32, B]
}

// NewParameter wraps an initialized tensor as a parameter. The gradient
// slot starts empty.
func NewParameter[B tensor.Backend](name string, t *tensor.Tensor[float32, B]) *Parameter[B] {
	return &Parameter[B]{name: name, tensor: t}
}

// Name returns the parameter name (e.g. "conv1_1.weight").
func (p *Parameter[B]) Name() string {
	return p.name
}

// Tensor returns the parameter tensor.
func (p *Parameter[B]) Tensor() *tensor.Tensor[float32, B] {
	return p.tensor
}

// Grad returns the gradient tensor, nil before the first backward pass.
func (p *Parameter[B]) Grad() *tensor.Tensor[float32, B] {
	return p.grad
}

// SetGrad installs a gradient tensor.
func (p *Parameter[B]) SetGrad(grad *tensor.Tensor[float32, B]) {
	p.grad = grad
}

// ZeroGrad drops the gradient so iterations never accumulate across
// steps.
func (p *Parameter[B]) ZeroGrad() {
	p.grad = nil
}
