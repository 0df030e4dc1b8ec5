// Copyright 2025 StyleTransfer-NerualNet. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package loader provides pretrained weight loading for the style
// transfer engine.
//
// This package wraps the internal loader and exports a clean public API
// for reading safetensors checkpoints and mapping VGG-19 feature weights
// onto a network.
//
// Example usage:
//
//	import (
//	    "github.com/elvinmirzazada/StyleTransfer-NerualNet/autodiff"
//	    "github.com/elvinmirzazada/StyleTransfer-NerualNet/backend/cpu"
//	    "github.com/elvinmirzazada/StyleTransfer-NerualNet/loader"
//	)
//
//	backend := autodiff.New(cpu.New())
//
//	// Load the full feature stack in one call
//	net, err := loader.LoadVGG19("vgg19_features.safetensors", backend)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	net.Freeze(backend.Tape())
//
//	// Or inspect a checkpoint directly
//	f, err := loader.Open("vgg19_features.safetensors")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer f.Close()
//
//	for _, name := range f.TensorNames() {
//	    fmt.Println(name)
//	}
package loader

import (
	"github.com/elvinmirzazada/StyleTransfer-NerualNet/internal/loader"
	"github.com/elvinmirzazada/StyleTransfer-NerualNet/internal/tensor"
	"github.com/elvinmirzazada/StyleTransfer-NerualNet/internal/vgg"
)

// File is a memory-mapped safetensors checkpoint.
//
// Note: This is a type alias because method signatures reference internal
// types that cannot be abstracted without a wrapper layer.
type File = loader.File

// TensorInfo describes one tensor entry of a checkpoint header.
type TensorInfo = loader.TensorInfo

// Option configures weight loading.
type Option = loader.Option

// Sentinel errors returned by checkpoint reading and weight mapping.
// Match with errors.Is.
var (
	ErrHeaderTooLarge   = loader.ErrHeaderTooLarge
	ErrOutOfBounds      = loader.ErrOutOfBounds
	ErrTensorNotFound   = loader.ErrTensorNotFound
	ErrChecksumMismatch = loader.ErrChecksumMismatch
)

// Open memory-maps a safetensors file and validates its header.
//
// The returned File must be closed after use. All tensor entries are
// validated up front, so subsequent data access does not recheck bounds.
//
// Example:
//
//	f, err := loader.Open("vgg19_features.safetensors")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer f.Close()
//
//	info, err := f.Info("features.0.weight")
//	data, err := f.Float32s("features.0.weight")
func Open(path string) (*File, error) {
	return loader.Open(path)
}

// WithChecksum verifies the checkpoint's data section against the given
// SHA-256 digest (hex) before any tensor is mapped.
func WithChecksum(digest string) Option {
	return loader.WithChecksum(digest)
}

// LoadVGG19 reads a torchvision-layout VGG-19 features checkpoint and
// returns a network with the pretrained weights installed.
//
// The returned network is not frozen; call Freeze on it with the
// backend's tape before running the engine.
//
// Example:
//
//	net, err := loader.LoadVGG19(path, backend, loader.WithChecksum(digest))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	net.Freeze(backend.Tape())
func LoadVGG19[B tensor.Backend](path string, backend B, opts ...Option) (*vgg.Network[B], error) {
	return loader.LoadVGG19(path, backend, opts...)
}
