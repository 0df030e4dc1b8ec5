// Copyright 2025 StyleTransfer-NerualNet. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package nn

import (
	"github.com/elvinmirzazada/StyleTransfer-NerualNet/internal/nn"
	"github.com/elvinmirzazada/StyleTransfer-NerualNet/internal/tensor"
)

// Conv2D is a square-kernel 2D convolution layer over NCHW tensors.
type Conv2D[B tensor.Backend] = nn.Conv2D[B]

// NewConv2D builds a convolution layer with Xavier-initialized weights.
// Pretrained weights are installed afterwards with SetWeights.
//
//	// in=3, out=64, 3x3 kernel, stride 1, same padding, with bias
//	conv := nn.NewConv2D(3, 64, 3, 1, 1, true, backend)
func NewConv2D[B tensor.Backend](
	inChannels, outChannels int,
	kernelSize int,
	stride, padding int,
	useBias bool,
	backend B,
) *Conv2D[B] {
	return nn.NewConv2D(inChannels, outChannels, kernelSize, stride, padding, useBias, backend)
}

// MaxPool2D is a 2D max pooling layer.
type MaxPool2D[B tensor.Backend] = nn.MaxPool2D[B]

// NewMaxPool2D builds a pooling layer with a square kernel. VGG uses
// NewMaxPool2D(2, 2, backend).
func NewMaxPool2D[B tensor.Backend](kernelSize, stride int, backend B) *MaxPool2D[B] {
	return nn.NewMaxPool2D(kernelSize, stride, backend)
}

// ReLU is the rectified linear activation, max(0, x) elementwise.
type ReLU[B tensor.Backend] = nn.ReLU[B]

// NewReLU builds a ReLU layer. It holds no state; the type parameter
// only fixes which backend Forward dispatches through.
func NewReLU[B tensor.Backend]() *ReLU[B] {
	return nn.NewReLU[B]()
}

// Xavier draws a float32 tensor from the Xavier/Glorot uniform
// distribution for the given fan counts.
func Xavier[B tensor.Backend](fanIn, fanOut int, shape tensor.Shape, backend B) *tensor.Tensor[float32, B] {
	return nn.Xavier(fanIn, fanOut, shape, backend)
}

// Zeros returns a float32 tensor of zeros, the usual bias initializer.
func Zeros[B tensor.Backend](shape tensor.Shape, backend B) *tensor.Tensor[float32, B] {
	return nn.Zeros(shape, backend)
}

// Ones returns a float32 tensor of ones.
func Ones[B tensor.Backend](shape tensor.Shape, backend B) *tensor.Tensor[float32, B] {
	return nn.Ones(shape, backend)
}

// Randn returns a float32 tensor drawn from N(0, 1).
func Randn[B tensor.Backend](shape tensor.Shape, backend B) *tensor.Tensor[float32, B] {
	return nn.Randn(shape, backend)
}
