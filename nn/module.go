// Copyright 2025 StyleTransfer-NerualNet. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package nn

import (
	"github.com/elvinmirzazada/StyleTransfer-NerualNet/tensor"
)

// Module is one layer of a feature stack: it maps a float32 tensor to a
// float32 tensor and exposes its trainable parameters. Conv2D, ReLU and
// MaxPool2D all satisfy it for any backend B.
//
// Layers compose by chaining Forward calls:
//
//	out := relu.Forward(conv.Forward(input))
type Module[B tensor.Backend] interface {
	// Forward applies the layer. Convolutional layers expect NCHW input,
	// [batch, channels, height, width].
	Forward(input *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B]

	// Parameters lists the layer's trainable tensors, empty for
	// stateless layers.
	Parameters() []*Parameter[B]
}

// The internal module implementations satisfy this interface structurally;
// no adapter types are needed.
