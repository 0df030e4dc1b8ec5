// Package optim implements the optimizers that drive pixel updates.
//
// Adam is the default for style transfer; SGD with momentum is kept as
// a simpler alternative. Both satisfy Optimizer, which is all the
// transfer engine depends on.
//
// Usage:
//
//	opt := optim.NewAdam(params, optim.AdamConfig{LR: 0.003}, backend)
//	for step := 0; step < steps; step++ {
//		tape.Clear()
//		loss := computeLoss(target)
//		grads := autodiff.Backward(loss, backend)
//		if err := opt.Step(grads); err != nil {
//			return err
//		}
//		opt.ZeroGrad()
//	}
//
// Updates write the raw float buffers directly rather than going
// through backend tensor ops, so a Step can run while a gradient tape
// is recording without leaving stray operations on it.
package optim

import (
	"github.com/elvinmirzazada/StyleTransfer-NerualNet/internal/nn"
	"github.com/elvinmirzazada/StyleTransfer-NerualNet/internal/tensor"
)

// Optimizer is what the transfer engine requires of an optimization
// algorithm. Adam and SGD are substitutable behind it.
type Optimizer interface {
	// Step applies one update using the gradient map produced by a
	// backward pass. Parameters absent from the map are skipped; a
	// gradient whose shape disagrees with its parameter is an error.
	Step(grads map[*tensor.RawTensor]*tensor.RawTensor) error

	// ZeroGrad clears parameter gradients. Call it after each Step so
	// gradients do not accumulate across iterations.
	ZeroGrad()

	// LR returns the current learning rate.
	LR() float64
}

// getGradient looks up the gradient recorded for a parameter's storage.
// A nil result means the parameter never entered the forward pass.
func getGradient[B tensor.Backend](param *nn.Parameter[B], grads map[*tensor.RawTensor]*tensor.RawTensor) *tensor.RawTensor {
	if param == nil {
		return nil
	}
	return grads[param.Tensor().Raw()]
}
