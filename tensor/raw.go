// Copyright 2025 StyleTransfer-NerualNet. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

import (
	"github.com/elvinmirzazada/StyleTransfer-NerualNet/internal/tensor"
)

// RawTensor is the untyped storage layer underneath Tensor[T, B]: a flat
// byte buffer tagged with a Shape, a DataType, and a Device. Clones share
// the buffer through reference counting, and AsFloat32/AsFloat64 expose it
// as an element slice without copying.
//
// Backends and gradient plumbing traffic in RawTensor; application code is
// usually better served by the typed Tensor wrapper:
//
//	raw, _ := tensor.NewRaw(tensor.Shape{2, 3}, tensor.Float32, tensor.CPU)
//	data := raw.AsFloat32()
//	clone := raw.Clone() // shares storage until one side mutates
type RawTensor = tensor.RawTensor
