// Copyright 2025 StyleTransfer-NerualNet. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package optim provides the gradient descent optimizers driving the
// pixel optimization loop: Adam with bias correction (the default) and
// SGD with momentum, behind a shared Optimizer interface.
//
// An optimizer owns a parameter list and consumes the gradient map the
// autodiff backend produces:
//
//	target := nn.NewParameter("target", pixels)
//	opt := optim.NewAdam([]*nn.Parameter[B]{target}, optim.AdamConfig{LR: 0.003}, backend)
//
//	for step := 0; step < steps; step++ {
//		loss := computeLoss(target)
//		grads := autodiff.Backward(loss, backend)
//		if err := opt.Step(grads); err != nil {
//			return err
//		}
//		backend.Tape().Clear()
//	}
//
// Config zero values select the conventional defaults, so
// AdamConfig{LR: 0.003} and SGDConfig{LR: 0.01, Momentum: 0.9} are
// complete configurations; Adam's Betas default to 0.9/0.999 and Eps to
// 1e-8.
//
// Step writes elementwise into the raw parameter buffers rather than
// going through backend tensor ops, so updates run under a recording
// tape without leaving operations on it.
package optim
