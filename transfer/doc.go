// Copyright 2025 StyleTransfer-NerualNet. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package transfer implements Gatys-style neural style transfer as an
// offline optimization run.
//
// # Overview
//
// A run takes a content image, a style image, and a frozen VGG-19 feature
// stack. The synthesized target starts as a copy of the content image and
// is optimized directly in pixel space: each iteration extracts the
// target's features, composes a content term (feature distance at conv4_2)
// with a style term (Gram matrix distances at the selected style layers),
// backpropagates through the frozen network to the pixels, and applies one
// optimizer step. The network's weights never change; the target tensor
// is the only thing the run mutates.
//
// # Basic Usage
//
//	backend := autodiff.New(cpu.New())
//
//	content, err := imageio.Load("content.png", imageio.DefaultMaxSide, backend)
//	shape := content.Shape()
//	style, err := imageio.LoadMatching("style.png", shape[2], shape[3], backend)
//
//	net, err := loader.LoadVGG19("vgg19_features.safetensors", backend)
//	net.Freeze(backend.Tape())
//
//	engine, err := transfer.NewEngine(net, backend, transfer.DefaultConfig())
//	result, err := engine.Run(content, style)
//
//	img, err := imageio.FromTensor(result.Target)
//	err = imageio.Save("out.png", img)
//
// # Configuration
//
// Config holds the hyperparameters of a run: the content/style loss
// weights, the per-layer style weight table, the step count, the progress
// cadence and the learning rate. DefaultConfig returns the classic values
// (content 1, style 1e6, 2000 steps, Adam at 0.003).
//
// Per-layer style weights can be loaded from a YAML file:
//
//	conv1_1: 1.0
//	conv2_1: 0.75
//	conv3_1: 0.2
//	conv4_1: 0.2
//	conv5_1: 0.2
//
//	weights, err := transfer.LoadStyleWeights("weights.yaml")
//	config.StyleWeights = weights
//
// # Progress Reporting
//
// WithProgress installs a callback that receives a Progress snapshot every
// Config.ShowEvery steps, after that step's optimizer update. The snapshot
// carries the loss terms and the live target tensor for rendering
// intermediate frames. The callback cannot feed anything back into the
// run.
//
// # Choosing an Optimizer
//
// Adam with the configured learning rate drives the target pixels by
// default. WithOptimizer swaps in any optimizer factory:
//
//	transfer.WithOptimizer[B](func(params []*nn.Parameter[B], b B) optim.Optimizer {
//	    return optim.NewSGD(params, optim.SGDConfig{LR: 1, Momentum: 0.9}, b)
//	})
package transfer
