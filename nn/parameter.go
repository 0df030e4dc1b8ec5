// Copyright 2025 StyleTransfer-NerualNet. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package nn

import (
	"github.com/elvinmirzazada/StyleTransfer-NerualNet/internal/nn"
	"github.com/elvinmirzazada/StyleTransfer-NerualNet/internal/tensor"
)

// Parameter is a named tensor the optimizer may update, paired with a
// gradient slot that Backward fills. Layer weights and biases are
// Parameters, and so is the target image of a style transfer run.
//
//	target := nn.NewParameter("target", pixels)
//	target.Grad()    // nil until a backward pass runs
//	target.ZeroGrad()
//
// Parameter is a type alias rather than a wrapper because Module's
// Parameters method returns it; a distinct facade type would not satisfy
// the interface implemented by the internal layers.
type Parameter[B tensor.Backend] = nn.Parameter[B]

// NewParameter wraps an initialized tensor under a name. The gradient
// slot starts empty.
func NewParameter[B tensor.Backend](name string, t *tensor.Tensor[float32, B]) *Parameter[B] {
	return nn.NewParameter(name, t)
}
