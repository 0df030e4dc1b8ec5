// Package vgg builds the VGG-19 convolutional feature stack used as the
// frozen perception network for style transfer.
//
// Only the 37-layer feature extractor is modelled; the classifier head has
// no role here. The stack is described by an explicit layer table
// (Architecture) so layer indices are stable: feature selections address
// layers by the same 0-based index that pretrained weight files use
// (features.<index>.weight).
//
// A Network is fixed after construction: device and layer geometry never
// change, and the only mutation path is installing pretrained weights
// through Conv(i).SetWeights before optimization starts.
package vgg

import (
	"fmt"

	"github.com/elvinmirzazada/StyleTransfer-NerualNet/internal/nn"
	"github.com/elvinmirzazada/StyleTransfer-NerualNet/internal/tensor"
)

// ConstantMarker is the tape capability Freeze needs: registering raw
// tensors as constants so backward passes skip them.
type ConstantMarker interface {
	MarkConstant(tensors ...*tensor.RawTensor)
}

// Network is the VGG-19 feature stack bound to a backend.
//
// It implements the stack boundary the feature extractor works against
// (Len/Apply) and exposes its convolutions for weight loading.
type Network[B tensor.Backend] struct {
	modules [NumLayers]nn.Module[B]
	backend B
}

// New creates a VGG-19 feature stack with Xavier-initialized convolution
// weights and zero biases. Pretrained weights are installed afterwards via
// the loader; random weights are only useful in tests.
//
// Example:
//
//	backend := autodiff.New(cpu.New())
//	net := vgg.New(backend)
//	net.Freeze(backend.Tape())
func New[B tensor.Backend](backend B) *Network[B] {
	n := &Network[B]{backend: backend}
	for _, l := range architecture {
		switch l.Kind {
		case Conv:
			ch := convShapes[l.Index]
			n.modules[l.Index] = nn.NewConv2D(ch[0], ch[1], convKernel, convStride, convPadding, true, backend)
		case ReLU:
			n.modules[l.Index] = nn.NewReLU[B]()
		case Pool:
			n.modules[l.Index] = nn.NewMaxPool2D(poolKernel, poolStride, backend)
		}
	}
	return n
}

// Len returns the number of sequential layers (37).
func (n *Network[B]) Len() int {
	return len(n.modules)
}

// Apply runs layer i on x and returns the activation. The caller owns
// ordering; the network keeps no running state between calls.
//
// Panics if i is outside [0, Len).
func (n *Network[B]) Apply(i int, x *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	if i < 0 || i >= len(n.modules) {
		panic(fmt.Sprintf("vgg: layer index %d out of range [0, %d)", i, len(n.modules)))
	}
	return n.modules[i].Forward(x)
}

// Conv returns the convolution module at table index i, for weight loading.
//
// Returns an error if i is out of range or names a non-convolution layer.
func (n *Network[B]) Conv(index int) (*nn.Conv2D[B], error) {
	if index < 0 || index >= len(n.modules) {
		return nil, fmt.Errorf("vgg: layer index %d out of range [0, %d)", index, len(n.modules))
	}
	conv, ok := n.modules[index].(*nn.Conv2D[B])
	if !ok {
		return nil, fmt.Errorf("vgg: layer %d (%s) is not a convolution", index, architecture[index].Name)
	}
	return conv, nil
}

// Parameters returns every weight and bias in the stack, in layer order.
func (n *Network[B]) Parameters() []*nn.Parameter[B] {
	params := make([]*nn.Parameter[B], 0, 2*len(convShapes))
	for _, m := range n.modules {
		params = append(params, m.Parameters()...)
	}
	return params
}

// Freeze marks every network parameter constant on the tape: backward
// passes treat the weights as fixed inputs and accumulate no gradients for
// them. SetWeights copies into the existing parameter buffers, so freezing
// before or after a weight load behaves the same.
func (n *Network[B]) Freeze(tape ConstantMarker) {
	raws := make([]*tensor.RawTensor, 0, 2*len(convShapes))
	for _, p := range n.Parameters() {
		raws = append(raws, p.Tensor().Raw())
	}
	tape.MarkConstant(raws...)
}

// String returns a short description of the network.
func (n *Network[B]) String() string {
	return fmt.Sprintf("VGG19Features(layers=%d, convs=%d)", NumLayers, len(convShapes))
}
