package optim

import (
	"fmt"

	"github.com/elvinmirzazada/StyleTransfer-NerualNet/internal/nn"
	"github.com/elvinmirzazada/StyleTransfer-NerualNet/internal/tensor"
)

// SGDConfig holds the SGD hyperparameters. A zero LR selects the
// default; a zero Momentum means plain gradient descent.
type SGDConfig struct {
	LR       float64 // learning rate (default 0.01)
	Momentum float64 // momentum factor in [0, 1)
}

// SGD implements stochastic gradient descent with optional momentum:
//
//	v = momentum*v + g
//	param -= lr * v
//
// With Momentum zero the velocity buffer is skipped and the update
// reduces to param -= lr * g.
//
// Example:
//
//	opt := optim.NewSGD(params, optim.SGDConfig{LR: 0.01, Momentum: 0.9}, backend)
//	for step := 0; step < steps; step++ {
//		grads := autodiff.Backward(loss, backend)
//		if err := opt.Step(grads); err != nil { ... }
//		opt.ZeroGrad()
//	}
type SGD[B tensor.Backend] struct {
	params   []*nn.Parameter[B]
	backend  B
	lr       float64
	momentum float64
	velocity map[*nn.Parameter[B]]*tensor.Tensor[float32, B]
}

// NewSGD creates an SGD optimizer over params. Velocity buffers are
// allocated on backend the first time a parameter receives a gradient.
func NewSGD[B tensor.Backend](params []*nn.Parameter[B], config SGDConfig, backend B) *SGD[B] {
	if config.LR == 0 {
		config.LR = 0.01
	}

	return &SGD[B]{
		params:   params,
		backend:  backend,
		lr:       config.LR,
		momentum: config.Momentum,
		velocity: make(map[*nn.Parameter[B]]*tensor.Tensor[float32, B]),
	}
}

// Step applies one descent update using the gradients from a backward
// pass. Parameters absent from grads are skipped; a gradient whose
// shape disagrees with its parameter is an error.
func (s *SGD[B]) Step(grads map[*tensor.RawTensor]*tensor.RawTensor) error {
	lr := float32(s.lr)

	for _, param := range s.params {
		grad := getGradient(param, grads)
		if grad == nil {
			continue
		}

		shape := param.Tensor().Shape()
		if !grad.Shape().Equal(shape) {
			return fmt.Errorf("sgd: gradient shape %v does not match parameter %q shape %v",
				grad.Shape(), param.Name(), shape)
		}

		ps := param.Tensor().Raw().AsFloat32()
		gs := grad.AsFloat32()

		if s.momentum == 0 {
			for i, g := range gs {
				ps[i] -= lr * g
			}
			continue
		}

		vel, ok := s.velocity[param]
		if !ok {
			vel = tensor.Zeros[float32](shape, s.backend)
			s.velocity[param] = vel
		}

		vs := vel.Raw().AsFloat32()
		mu := float32(s.momentum)
		for i, g := range gs {
			vs[i] = mu*vs[i] + g
			ps[i] -= lr * vs[i]
		}
	}
	return nil
}

// ZeroGrad clears the gradients of every parameter.
func (s *SGD[B]) ZeroGrad() {
	for _, param := range s.params {
		param.ZeroGrad()
	}
}

// LR returns the current learning rate.
func (s *SGD[B]) LR() float64 {
	return s.lr
}

// SetLR updates the learning rate, for schedules that decay it during
// the run.
func (s *SGD[B]) SetLR(lr float64) {
	s.lr = lr
}
