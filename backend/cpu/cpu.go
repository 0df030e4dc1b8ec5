// Copyright 2025 StyleTransfer-NerualNet. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package cpu

import (
	internalcpu "github.com/elvinmirzazada/StyleTransfer-NerualNet/internal/backend/cpu"
	"github.com/elvinmirzazada/StyleTransfer-NerualNet/tensor"
)

// Backend is the CPU implementation of tensor.Backend: pure Go kernels
// with matrix multiplication delegated to gonum's BLAS and the
// convolution loops parallelized across goroutines.
type Backend = internalcpu.CPUBackend

// Compile-time check that Backend implements tensor.Backend.
var _ tensor.Backend = (*Backend)(nil)

// New returns a CPU backend with parallelism enabled on multi-core hosts.
//
//	backend := cpu.New()
//	x := tensor.Zeros[float32](tensor.Shape{2, 3}, backend)
func New() *Backend {
	return internalcpu.New()
}

// NewSequential returns a CPU backend with parallelism disabled. Useful
// for deterministic profiling and tests.
func NewSequential() *Backend {
	return internalcpu.NewSequential()
}
