// Copyright 2025 StyleTransfer-NerualNet. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package nn provides the layers the VGG feature stack is built from:
// Conv2D, MaxPool2D and ReLU, plus the Module and Parameter types that
// tie them together and the Xavier, Zeros, Ones and Randn initializers.
//
// Layers are generic over the compute backend, so the same model code
// runs eagerly or under gradient recording depending on which backend
// it is built with:
//
//	backend := cpu.New()
//	conv := nn.NewConv2D(3, 64, 3, 1, 1, true, backend)
//	relu := nn.NewReLU[*cpu.Backend]()
//	out := relu.Forward(conv.Forward(input))
//
// Convolutions start Xavier-initialized; pretrained tensors are
// installed with SetWeights:
//
//	err := conv.SetWeights(weight, bias)
//
// Every layer satisfies Module, and Parameters exposes its trainable
// tensors by name:
//
//	for _, p := range conv.Parameters() {
//		fmt.Println(p.Name(), p.Tensor().Shape())
//	}
package nn
