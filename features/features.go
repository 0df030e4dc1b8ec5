// Copyright 2025 StyleTransfer-NerualNet. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package features selects and extracts intermediate activations from a
// layered network stack.
//
// This package wraps the internal extractor and exports a clean public
// API for pulling named activations out of a network in one forward pass.
// A vgg.Network satisfies the Stack interface directly.
//
// Example usage:
//
//	import (
//	    "github.com/elvinmirzazada/StyleTransfer-NerualNet/features"
//	    "github.com/elvinmirzazada/StyleTransfer-NerualNet/vgg"
//	)
//
//	net := vgg.New(backend)
//	extractor := features.NewExtractor[backendT](net)
//
//	acts, err := extractor.Extract(img, features.DefaultSelections())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	content := acts["conv4_2"]
package features

import (
	"github.com/elvinmirzazada/StyleTransfer-NerualNet/internal/features"
	"github.com/elvinmirzazada/StyleTransfer-NerualNet/internal/tensor"
)

// ErrConfiguration marks an invalid layer selection. Match with errors.Is.
var ErrConfiguration = features.ErrConfiguration

// Stack is an ordered, indexable sequence of layer applications. This is
// the seam that keeps the perception network swappable.
type Stack[B tensor.Backend] interface {
	Len() int
	Apply(i int, x *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B]
}

// Selection names the activation produced by the stack layer at Index.
type Selection = features.Selection

// Extractor pulls named activations out of a stack in one forward pass.
//
// Note: This is a type alias because method signatures reference internal
// types that cannot be abstracted without a wrapper layer.
type Extractor[B tensor.Backend] = features.Extractor[B]

// NewExtractor creates an extractor over the given stack. Panics if the
// stack is nil.
//
// Example:
//
//	extractor := features.NewExtractor[backendT](vgg.New(backend))
func NewExtractor[B tensor.Backend](stack Stack[B]) *Extractor[B] {
	return features.NewExtractor[B](stack)
}

// DefaultSelections returns the classic style-transfer layer set for a
// VGG-19 feature stack: the first convolution of each block for style
// statistics, plus conv4_2 for content.
func DefaultSelections() []Selection {
	return features.DefaultSelections()
}
