// Copyright 2025 StyleTransfer-NerualNet. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor provides type-safe tensor operations for the style
// transfer engine.
//
// # Data model
//
// Tensor[T, B] pairs an element type with a compute backend at the type
// level, so mixing dtypes or devices is a compile error rather than a
// runtime surprise. Underneath sits RawTensor, an untyped dense buffer
// with reference counting and copy-on-write: Clone shares the buffer,
// and the first mutation through a shared buffer copies it.
//
// # Dtypes and devices
//
// The DType constraint admits float32 and float64. Images, weights and
// gradients are float32 end to end; float64 exists for numeric
// verification such as finite-difference gradient checks. CPU is the
// only device, and the Backend interface is the seam where another
// implementation would plug in.
//
// # Broadcasting
//
// Elementwise operations follow NumPy broadcasting rules, which is what
// lets a [1, C, 1, 1] bias add to a [N, C, H, W] activation:
//
//	a := tensor.Zeros[float32](tensor.Shape{3, 1}, backend) // (3, 1)
//	b := tensor.Ones[float32](tensor.Shape{3, 4}, backend)  // (3, 4)
//	c := a.Add(b)                                           // (3, 4)
package tensor
