// Copyright 2025 StyleTransfer-NerualNet. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package transfer

import (
	"github.com/elvinmirzazada/StyleTransfer-NerualNet/autodiff"
	"github.com/elvinmirzazada/StyleTransfer-NerualNet/features"
	"github.com/elvinmirzazada/StyleTransfer-NerualNet/internal/tensor"
	"github.com/elvinmirzazada/StyleTransfer-NerualNet/internal/transfer"
)

// Backend is what the engine needs from its numeric backend: tensor
// compute plus a recordable gradient tape. The autodiff backend
// satisfies it.
type Backend interface {
	autodiff.BackwardCapable

	// NoGrad runs fn with tape recording suspended.
	NoGrad(fn func())
}

// State tracks engine progress through a run.
type State = transfer.State

// Engine states, in lifecycle order.
const (
	Initializing = transfer.Initializing
	Iterating    = transfer.Iterating
	Terminated   = transfer.Terminated
)

// ContentLayer is the activation the content loss compares, conv4_2 in
// the VGG-19 naming scheme.
const ContentLayer = transfer.ContentLayer

// Sentinel errors returned by engine construction and runs. Match with
// errors.Is.
var (
	ErrConfiguration = transfer.ErrConfiguration
	ErrShapeMismatch = transfer.ErrShapeMismatch
	ErrNonFinite     = transfer.ErrNonFinite
)

// Config holds the tunable hyperparameters of a run.
type Config = transfer.Config

// DefaultConfig returns the classic hyperparameters: content weight 1,
// style weight 1e6, 2000 steps reported every 400, learning rate 0.003.
func DefaultConfig() Config {
	return transfer.DefaultConfig()
}

// StyleWeights maps style layer names to their per-layer loss multipliers.
type StyleWeights = transfer.StyleWeights

// DefaultStyleWeights returns the classic per-layer multipliers. Early
// layers dominate, so fine texture weighs more than large-scale structure.
func DefaultStyleWeights() StyleWeights {
	return transfer.DefaultStyleWeights()
}

// ParseStyleWeights decodes a YAML mapping of layer name to weight and
// validates it.
func ParseStyleWeights(data []byte) (StyleWeights, error) {
	return transfer.ParseStyleWeights(data)
}

// LoadStyleWeights reads a YAML style weight table from disk.
//
// Example:
//
//	weights, err := transfer.LoadStyleWeights("weights.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	config.StyleWeights = weights
func LoadStyleWeights(path string) (StyleWeights, error) {
	return transfer.LoadStyleWeights(path)
}

// Progress is one reporting snapshot, delivered every Config.ShowEvery
// steps. Target is the live optimization tensor, not a copy: read it,
// never mutate it.
type Progress[B Backend] = transfer.Progress[B]

// ProgressFunc receives progress snapshots.
type ProgressFunc[B Backend] = transfer.ProgressFunc[B]

// OptimizerFactory builds the optimizer that drives the target parameter.
// The engine calls it exactly once, during initialization.
type OptimizerFactory[B Backend] = transfer.OptimizerFactory[B]

// Result is the outcome of a completed run: the synthesized target, the
// final loss terms and the wall-clock duration.
type Result[B Backend] = transfer.Result[B]

// Engine owns one style transfer run end to end.
//
// Lifecycle: Initializing until Run is called, Iterating while stepping,
// Terminated afterwards. An engine runs once; build a new one per run.
//
// Note: This is a type alias because method signatures reference internal
// types that cannot be abstracted without a wrapper layer.
type Engine[B Backend] = transfer.Engine[B]

// EngineOption customizes an engine beyond its Config.
type EngineOption[B Backend] = transfer.EngineOption[B]

// WithSelections overrides the default feature selection. The selection
// must still cover ContentLayer and every layer in the style weight table.
func WithSelections[B Backend](selections []features.Selection) EngineOption[B] {
	return transfer.WithSelections[B](selections)
}

// WithOptimizer replaces the default Adam factory. The factory receives
// the sole trainable parameter (the target pixels) and the backend.
func WithOptimizer[B Backend](factory OptimizerFactory[B]) EngineOption[B] {
	return transfer.WithOptimizer[B](factory)
}

// WithProgress installs the reporting callback.
//
// Example:
//
//	transfer.WithProgress[B](func(p transfer.Progress[B]) {
//	    fmt.Printf("step %d: total=%.4e\n", p.Step, p.Total)
//	})
func WithProgress[B Backend](fn ProgressFunc[B]) EngineOption[B] {
	return transfer.WithProgress[B](fn)
}

// NewEngine validates the configuration and builds an engine over the
// given feature stack. The stack's parameters should already be marked
// constant on the backend's tape (the vgg Network's Freeze).
//
// Example:
//
//	engine, err := transfer.NewEngine(net, backend, transfer.DefaultConfig())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	result, err := engine.Run(content, style)
func NewEngine[B Backend](
	stack features.Stack[B],
	backend B,
	config Config,
	opts ...EngineOption[B],
) (*Engine[B], error) {
	return transfer.NewEngine[B](stack, backend, config, opts...)
}

// Gram computes the channel-by-channel Gram matrix of a (1, C, H, W)
// activation: the (C, C) product of the flattened feature map with its
// own transpose. Style similarity is measured as the distance between
// Gram matrices; the loss composer applies the size normalization.
func Gram[B tensor.Backend](activation *tensor.Tensor[float32, B]) (*tensor.Tensor[float32, B], error) {
	return transfer.Gram(activation)
}
