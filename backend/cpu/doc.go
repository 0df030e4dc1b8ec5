// Copyright 2025 StyleTransfer-NerualNet. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package cpu exposes the CPU compute backend.
//
// # Overview
//
// The backend runs everything in pure Go, without CGO:
//   - gonum BLAS GEMM for matrix multiplication
//   - im2col convolutions with worker-pool parallelism in the outer loops
//   - float32 and float64 element types
//   - NumPy-style broadcasting on the elementwise ops
//
// # Basic Usage
//
//	backend := cpu.New()
//
//	x := tensor.Zeros[float32](tensor.Shape{2, 3}, backend)
//	y := tensor.Ones[float32](tensor.Shape{2, 3}, backend)
//	z := x.Add(y)
//
//	conv := nn.NewConv2D(3, 64, 3, 1, 1, true, backend)
//
// # Performance
//
// The kernels are sized for pixel optimization over a frozen network. The
// Gram statistic reduces to GEMM, so matrix multiplication dominates and
// goes through BLAS; convolution and pooling parallelize their backward
// kernels with the same split as their forward passes.
//
// NewSequential disables the worker pools for deterministic profiling.
//
// # Thread Safety
//
// Backend values are safe for concurrent use. Operations allocate their
// outputs and share no mutable state.
package cpu
