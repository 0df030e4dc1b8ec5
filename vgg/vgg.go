// Copyright 2025 StyleTransfer-NerualNet. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package vgg provides the VGG-19 feature stack used as the frozen
// perception network for style transfer.
//
// This package wraps the internal network and exports a clean public API
// for building the 37-layer feature extractor, inspecting its layout, and
// freezing its weights on a gradient tape.
//
// Example usage:
//
//	import (
//	    "github.com/elvinmirzazada/StyleTransfer-NerualNet/autodiff"
//	    "github.com/elvinmirzazada/StyleTransfer-NerualNet/backend/cpu"
//	    "github.com/elvinmirzazada/StyleTransfer-NerualNet/vgg"
//	)
//
//	backend := autodiff.New(cpu.New())
//	net := vgg.New(backend)
//	net.Freeze(backend.Tape())
//
//	for _, l := range vgg.Architecture() {
//	    fmt.Printf("%2d %-8s %s\n", l.Index, l.Name, l.Kind)
//	}
package vgg

import (
	"github.com/elvinmirzazada/StyleTransfer-NerualNet/internal/tensor"
	"github.com/elvinmirzazada/StyleTransfer-NerualNet/internal/vgg"
)

// LayerKind discriminates the three layer types in the feature stack.
type LayerKind = vgg.LayerKind

// Layer kinds, in the order they first appear in the stack.
const (
	Conv = vgg.Conv
	ReLU = vgg.ReLU
	Pool = vgg.Pool
)

// Layer describes one position in the feature stack: its 0-based index,
// its conventional name (conv4_2, pool5, ...), and its kind.
type Layer = vgg.Layer

// NumLayers is the number of sequential layers in the feature stack.
const NumLayers = vgg.NumLayers

// ConstantMarker is the tape capability Freeze needs. The autodiff
// backend's tape satisfies it.
type ConstantMarker = vgg.ConstantMarker

// Network is the VGG-19 feature stack bound to a backend.
//
// Note: This is a type alias because method signatures reference internal
// types that cannot be abstracted without a wrapper layer.
type Network[B tensor.Backend] = vgg.Network[B]

// New creates a VGG-19 feature stack with Xavier-initialized convolution
// weights and zero biases. Use loader.LoadVGG19 to install pretrained
// weights; random weights are only useful in tests.
//
// Example:
//
//	net := vgg.New(backend)
//	fmt.Println(net) // VGG19Features(layers=37, convs=16)
func New[B tensor.Backend](backend B) *Network[B] {
	return vgg.New(backend)
}

// Architecture returns a copy of the full 37-layer descriptor table.
//
// Layer indices are stable and match the tensor names of torchvision
// checkpoint files (features.<index>.weight).
func Architecture() []Layer {
	return vgg.Architecture()
}
