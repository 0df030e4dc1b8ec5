// Copyright 2025 StyleTransfer-NerualNet. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package autodiff is the public API for reverse-mode automatic
// differentiation.
//
// Wrapping a compute backend with New gives every tensor operation a
// second job: while the wrapped backend does the arithmetic, the
// wrapper records each step on a gradient tape. Backward then walks the
// tape in reverse to produce gradients:
//
//	backend := autodiff.New(cpu.New())
//	backend.Tape().StartRecording()
//
//	loss := model(x) // ordinary tensor code, recorded as it runs
//	grads := autodiff.Backward(loss, backend)
//	dx := grads[x.Raw()]
package autodiff

import (
	"github.com/elvinmirzazada/StyleTransfer-NerualNet/internal/autodiff"
	"github.com/elvinmirzazada/StyleTransfer-NerualNet/internal/tensor"
)

// Backend wraps a compute backend with gradient recording.
type Backend[B tensor.Backend] = autodiff.AutodiffBackend[B]

// New wraps base with a fresh, initially paused gradient tape. Call
// Tape().StartRecording() before running the computation to
// differentiate.
func New[B tensor.Backend](base B) *Backend[B] {
	return autodiff.New(base)
}

// GradientTape is the operation record Backward replays in reverse.
type GradientTape = autodiff.GradientTape

// NewGradientTape returns an empty tape. Backends created with New
// already carry one; this is for building custom wrappers.
func NewGradientTape() *GradientTape {
	return autodiff.NewGradientTape()
}

// BackwardCapable is the backend contract Backward needs: a tape plus
// the gradient kernels of each recorded operation.
type BackwardCapable = autodiff.BackwardCapable

// Backward seeds t's gradient with ones and backpropagates through the
// recorded tape, returning a map from each reachable input's raw tensor
// to its gradient.
func Backward[T tensor.DType, B BackwardCapable](t *tensor.Tensor[T, B], backend B) map[*tensor.RawTensor]*tensor.RawTensor {
	return autodiff.Backward(t, backend)
}
