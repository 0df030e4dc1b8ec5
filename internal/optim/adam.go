package optim

import (
	"fmt"
	"math"

	"github.com/elvinmirzazada/StyleTransfer-NerualNet/internal/nn"
	"github.com/elvinmirzazada/StyleTransfer-NerualNet/internal/tensor"
)

// AdamConfig holds the Adam hyperparameters. Zero values select the
// defaults, so AdamConfig{LR: 0.003} is a complete configuration.
type AdamConfig struct {
	LR    float64    // learning rate (default 0.001)
	Betas [2]float64 // moment decay rates (default 0.9, 0.999)
	Eps   float64    // denominator floor (default 1e-8)
}

// Adam implements Adam (Kingma & Ba, 2014).
//
// Per parameter it keeps exponential moving averages of the gradient
// and of the squared gradient, corrects both for their zero start, and
// scales each update by the inverse gradient magnitude:
//
//	m = beta1*m + (1-beta1)*g
//	v = beta2*v + (1-beta2)*g*g
//	param -= lr * (m/bc1) / (sqrt(v/bc2) + eps)
//
// Pixel optimization produces gradients whose scale varies by orders of
// magnitude across layers, which is why Adam is the default optimizer
// for the transfer loop.
//
// Example:
//
//	opt := optim.NewAdam(params, optim.AdamConfig{LR: 0.003}, backend)
//	for step := 0; step < steps; step++ {
//		grads := autodiff.Backward(loss, backend)
//		if err := opt.Step(grads); err != nil { ... }
//		opt.ZeroGrad()
//	}
type Adam[B tensor.Backend] struct {
	params  []*nn.Parameter[B]
	backend B

	lr    float64
	beta1 float64
	beta2 float64
	eps   float64

	step   int
	moment map[*nn.Parameter[B]]*adamMoments[B]
}

// adamMoments is the per-parameter optimizer state.
type adamMoments[B tensor.Backend] struct {
	m *tensor.Tensor[float32, B] // gradient average
	v *tensor.Tensor[float32, B] // squared-gradient average
}

// NewAdam creates an Adam optimizer over params. Moment buffers are
// allocated on backend the first time a parameter receives a gradient.
func NewAdam[B tensor.Backend](params []*nn.Parameter[B], config AdamConfig, backend B) *Adam[B] {
	if config.LR == 0 {
		config.LR = 0.001
	}
	if config.Betas[0] == 0 {
		config.Betas[0] = 0.9
	}
	if config.Betas[1] == 0 {
		config.Betas[1] = 0.999
	}
	if config.Eps == 0 {
		config.Eps = 1e-8
	}

	return &Adam[B]{
		params:  params,
		backend: backend,
		lr:      config.LR,
		beta1:   config.Betas[0],
		beta2:   config.Betas[1],
		eps:     config.Eps,
		moment:  make(map[*nn.Parameter[B]]*adamMoments[B]),
	}
}

// Step applies one Adam update using the gradients from a backward
// pass. Parameters absent from grads are skipped; a gradient whose
// shape disagrees with its parameter is an error.
func (a *Adam[B]) Step(grads map[*tensor.RawTensor]*tensor.RawTensor) error {
	a.step++
	bc1 := 1.0 - math.Pow(a.beta1, float64(a.step))
	bc2 := 1.0 - math.Pow(a.beta2, float64(a.step))

	for _, param := range a.params {
		grad := getGradient(param, grads)
		if grad == nil {
			continue
		}

		shape := param.Tensor().Shape()
		if !grad.Shape().Equal(shape) {
			return fmt.Errorf("adam: gradient shape %v does not match parameter %q shape %v",
				grad.Shape(), param.Name(), shape)
		}

		state, ok := a.moment[param]
		if !ok {
			state = &adamMoments[B]{
				m: tensor.Zeros[float32](shape, a.backend),
				v: tensor.Zeros[float32](shape, a.backend),
			}
			a.moment[param] = state
		}

		a.apply(param, grad, state, bc1, bc2)
	}
	return nil
}

// apply runs the element-wise update for one parameter.
func (a *Adam[B]) apply(param *nn.Parameter[B], grad *tensor.RawTensor, state *adamMoments[B], bc1f, bc2f float64) {
	gs := grad.AsFloat32()
	ms := state.m.Raw().AsFloat32()
	vs := state.v.Raw().AsFloat32()
	ps := param.Tensor().Raw().AsFloat32()

	lr := float32(a.lr)
	beta1 := float32(a.beta1)
	beta2 := float32(a.beta2)
	eps := float32(a.eps)
	bc1 := float32(bc1f)
	bc2 := float32(bc2f)

	for i, g := range gs {
		ms[i] = beta1*ms[i] + (1.0-beta1)*g
		vs[i] = beta2*vs[i] + (1.0-beta2)*g*g

		mHat := ms[i] / bc1
		vHat := vs[i] / bc2

		ps[i] -= lr * mHat / (float32(math.Sqrt(float64(vHat))) + eps)
	}
}

// ZeroGrad clears the gradients of every parameter.
func (a *Adam[B]) ZeroGrad() {
	for _, param := range a.params {
		param.ZeroGrad()
	}
}

// LR returns the current learning rate.
func (a *Adam[B]) LR() float64 {
	return a.lr
}

// SetLR updates the learning rate, for schedules that decay it during
// the run.
func (a *Adam[B]) SetLR(lr float64) {
	a.lr = lr
}

// Timestep returns how many steps have been applied.
func (a *Adam[B]) Timestep() int {
	return a.step
}
