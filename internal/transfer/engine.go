// Package transfer implements Gatys-style neural style transfer as an
// offline optimization run.
//
// A run takes a content image, a style image, and a frozen convolutional
// feature stack. The synthesized target starts as a copy of the content
// image and is optimized directly in pixel space: each iteration extracts
// the target's features, composes a content term (feature distance at
// conv4_2) with a style term (Gram matrix distances at the selected style
// layers), backpropagates through the frozen network to the pixels, and
// applies one optimizer step. The network's weights never change; the
// target tensor is the only thing the run mutates.
package transfer

import (
	"fmt"
	"math"
	"time"

	"github.com/elvinmirzazada/StyleTransfer-NerualNet/internal/autodiff"
	"github.com/elvinmirzazada/StyleTransfer-NerualNet/internal/features"
	"github.com/elvinmirzazada/StyleTransfer-NerualNet/internal/nn"
	"github.com/elvinmirzazada/StyleTransfer-NerualNet/internal/optim"
	"github.com/elvinmirzazada/StyleTransfer-NerualNet/internal/tensor"
)

// Backend is what the engine needs from its numeric backend: tensor compute
// plus a recordable gradient tape.
type Backend interface {
	autodiff.BackwardCapable

	// NoGrad runs fn with tape recording suspended.
	NoGrad(fn func())
}

// State tracks engine progress through a run.
type State int

// Engine states, in lifecycle order.
const (
	Initializing State = iota
	Iterating
	Terminated
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case Initializing:
		return "initializing"
	case Iterating:
		return "iterating"
	case Terminated:
		return "terminated"
	default:
		return "unknown"
	}
}

// Config holds the tunable hyperparameters of a run.
type Config struct {
	// ContentWeight scales the content term of the total loss.
	ContentWeight float64

	// StyleWeight scales the style term. Per-layer style losses are
	// numerically tiny next to the content loss, hence the 1e6 default.
	StyleWeight float64

	// StyleWeights are the per-layer multipliers inside the style term.
	StyleWeights StyleWeights

	// Steps is the fixed iteration count. There is no early stopping.
	Steps int

	// ShowEvery is the progress reporting cadence, in steps.
	ShowEvery int

	// LearningRate is the optimizer step size for the target pixels.
	LearningRate float64
}

// DefaultConfig returns the classic hyperparameters.
func DefaultConfig() Config {
	return Config{
		ContentWeight: 1,
		StyleWeight:   1e6,
		StyleWeights:  DefaultStyleWeights(),
		Steps:         2000,
		ShowEvery:     400,
		LearningRate:  0.003,
	}
}

func (c Config) validate() error {
	if c.Steps <= 0 {
		return fmt.Errorf("transfer: steps must be positive, got %d: %w", c.Steps, ErrConfiguration)
	}
	if c.ShowEvery <= 0 {
		return fmt.Errorf("transfer: show-every must be positive, got %d: %w", c.ShowEvery, ErrConfiguration)
	}
	if c.LearningRate <= 0 {
		return fmt.Errorf("transfer: learning rate must be positive, got %g: %w", c.LearningRate, ErrConfiguration)
	}
	if c.ContentWeight < 0 || c.StyleWeight < 0 {
		return fmt.Errorf("transfer: negative loss weights (content %g, style %g): %w",
			c.ContentWeight, c.StyleWeight, ErrConfiguration)
	}
	return c.StyleWeights.Validate()
}

// Progress is one reporting snapshot, delivered every ShowEvery steps after
// the optimizer update of that step.
//
// Target is the live optimization tensor, not a copy: read it (render it,
// inspect it), never mutate it. The callback has no way to feed anything
// back into the run.
type Progress[B Backend] struct {
	Step    int
	Content float32
	Style   float32
	Total   float32
	Target  *tensor.Tensor[float32, B]
}

// ProgressFunc receives progress snapshots.
type ProgressFunc[B Backend] func(Progress[B])

// OptimizerFactory builds the optimizer that drives the target parameter.
// The engine calls it exactly once, during initialization.
type OptimizerFactory[B Backend] func(params []*nn.Parameter[B], backend B) optim.Optimizer

// Result is the outcome of a completed run.
type Result[B Backend] struct {
	// Target holds the synthesized image, still in normalized form.
	Target *tensor.Tensor[float32, B]

	// Steps is the number of iterations performed.
	Steps int

	// Content, Style and Total are the loss terms of the final step.
	Content float32
	Style   float32
	Total   float32

	// Elapsed is the wall-clock duration of the run.
	Elapsed time.Duration
}

// Engine owns one style transfer run end to end.
//
// Lifecycle: Initializing until Run is called, Iterating while stepping,
// Terminated afterwards. An engine runs once; build a new one per run.
type Engine[B Backend] struct {
	backend    B
	extractor  *features.Extractor[B]
	config     Config
	selections []features.Selection
	newOptim   OptimizerFactory[B]
	progress   ProgressFunc[B]
	state      State
}

// EngineOption customizes an engine beyond its Config.
type EngineOption[B Backend] func(*engineOptions[B])

type engineOptions[B Backend] struct {
	selections []features.Selection
	newOptim   OptimizerFactory[B]
	progress   ProgressFunc[B]
}

// WithSelections overrides the default feature selection. The selection
// must still cover ContentLayer and every layer in the style weight table.
func WithSelections[B Backend](selections []features.Selection) EngineOption[B] {
	return func(o *engineOptions[B]) {
		o.selections = selections
	}
}

// WithOptimizer replaces the default Adam factory. The factory receives the
// sole trainable parameter (the target pixels) and the backend.
func WithOptimizer[B Backend](factory OptimizerFactory[B]) EngineOption[B] {
	return func(o *engineOptions[B]) {
		o.newOptim = factory
	}
}

// WithProgress installs the reporting callback.
func WithProgress[B Backend](fn ProgressFunc[B]) EngineOption[B] {
	return func(o *engineOptions[B]) {
		o.progress = fn
	}
}

// NewEngine validates the configuration and builds an engine over the given
// feature stack.
//
// The stack's parameters should already be marked constant on the backend's
// tape (the vgg Network's Freeze): the engine only ever updates the target
// pixels either way, but an unfrozen stack costs a wasted weight-gradient
// computation per step.
func NewEngine[B Backend](
	stack features.Stack[B],
	backend B,
	config Config,
	opts ...EngineOption[B],
) (*Engine[B], error) {
	if err := config.validate(); err != nil {
		return nil, err
	}

	options := &engineOptions[B]{
		selections: features.DefaultSelections(),
		newOptim: func(params []*nn.Parameter[B], b B) optim.Optimizer {
			return optim.NewAdam(params, optim.AdamConfig{LR: config.LearningRate}, b)
		},
	}
	for _, opt := range opts {
		opt(options)
	}

	return &Engine[B]{
		backend:    backend,
		extractor:  features.NewExtractor(stack),
		config:     config,
		selections: options.selections,
		newOptim:   options.newOptim,
		progress:   options.progress,
		state:      Initializing,
	}, nil
}

// State reports where the engine is in its lifecycle.
func (e *Engine[B]) State() State {
	return e.state
}

// Run synthesizes a new image from the content/style pair.
//
// content and style are normalized (1, 3, H, W) tensors of identical shape.
// The target starts as a deep copy of content and is optimized in place for
// exactly Config.Steps iterations. Any failure aborts the run with the
// cause wrapped; there are no retries and no partial results.
func (e *Engine[B]) Run(content, style *tensor.Tensor[float32, B]) (*Result[B], error) {
	if e.state != Initializing {
		return nil, fmt.Errorf("transfer: engine already ran (state %s): %w", e.state, ErrConfiguration)
	}
	started := time.Now()

	if err := checkImagePair(content, style); err != nil {
		return nil, err
	}

	composer, err := e.initialize(content, style)
	if err != nil {
		return nil, err
	}

	// The target is the sole trainable parameter of the run.
	target := content.DeepClone()
	param := nn.NewParameter("target", target)
	optimizer := e.newOptim([]*nn.Parameter[B]{param}, e.backend)

	tape := e.backend.GetTape()
	tape.Clear()
	tape.StartRecording()

	e.state = Iterating
	var final *Losses[B]
	for step := 1; step <= e.config.Steps; step++ {
		targetFeatures, err := e.extractor.Extract(target, e.selections)
		if err != nil {
			return nil, fmt.Errorf("transfer: step %d: extracting target features: %w", step, err)
		}

		losses, err := composer.Compose(targetFeatures)
		if err != nil {
			return nil, fmt.Errorf("transfer: step %d: %w", step, err)
		}

		total := losses.Total.Item()
		if math.IsNaN(float64(total)) || math.IsInf(float64(total), 0) {
			return nil, fmt.Errorf("transfer: step %d: loss %g: %w", step, total, ErrNonFinite)
		}

		grads := autodiff.Backward(losses.Total, e.backend)
		if err := optimizer.Step(grads); err != nil {
			return nil, fmt.Errorf("transfer: step %d: optimizer: %w", step, err)
		}
		tape.Clear()

		if e.progress != nil && step%e.config.ShowEvery == 0 {
			e.backend.NoGrad(func() {
				e.progress(Progress[B]{
					Step:    step,
					Content: losses.Content.Item(),
					Style:   losses.Style.Item(),
					Total:   total,
					Target:  target,
				})
			})
		}
		final = losses
	}

	e.state = Terminated
	return &Result[B]{
		Target:  target,
		Steps:   e.config.Steps,
		Content: final.Content.Item(),
		Style:   final.Style.Item(),
		Total:   final.Total.Item(),
		Elapsed: time.Since(started),
	}, nil
}

// initialize extracts the reference features and builds the loss composer.
// Reference features never need gradients, so all of it stays off the tape.
func (e *Engine[B]) initialize(content, style *tensor.Tensor[float32, B]) (*Composer[B], error) {
	var (
		contentFeatures map[string]*tensor.Tensor[float32, B]
		styleGrams      map[string]*tensor.Tensor[float32, B]
		initErr         error
	)
	e.backend.NoGrad(func() {
		contentFeatures, initErr = e.extractor.Extract(content, e.selections)
		if initErr != nil {
			initErr = fmt.Errorf("transfer: extracting content features: %w", initErr)
			return
		}

		var styleFeatures map[string]*tensor.Tensor[float32, B]
		styleFeatures, initErr = e.extractor.Extract(style, e.selections)
		if initErr != nil {
			initErr = fmt.Errorf("transfer: extracting style features: %w", initErr)
			return
		}

		styleGrams = make(map[string]*tensor.Tensor[float32, B], len(e.config.StyleWeights))
		for layer := range e.config.StyleWeights {
			feat := styleFeatures[layer]
			if feat == nil {
				initErr = fmt.Errorf("transfer: selection does not cover style layer %q: %w",
					layer, ErrConfiguration)
				return
			}
			gram, err := Gram(feat)
			if err != nil {
				initErr = fmt.Errorf("transfer: style gram of %q: %w", layer, err)
				return
			}
			styleGrams[layer] = gram
		}
	})
	if initErr != nil {
		return nil, initErr
	}

	return NewComposer(contentFeatures, styleGrams,
		e.config.StyleWeights, e.config.ContentWeight, e.config.StyleWeight)
}

// checkImagePair validates the normalized image tensors entering a run.
func checkImagePair[B Backend](content, style *tensor.Tensor[float32, B]) error {
	for name, t := range map[string]*tensor.Tensor[float32, B]{"content": content, "style": style} {
		shape := t.Shape()
		if len(shape) != 4 || shape[0] != 1 {
			return fmt.Errorf("transfer: %s image must be (1, 3, h, w), got %v: %w",
				name, shape, ErrShapeMismatch)
		}
		if shape[1] != 3 {
			return fmt.Errorf("transfer: %s image has %d channels, want 3: %w",
				name, shape[1], ErrShapeMismatch)
		}
	}
	if !content.Shape().Equal(style.Shape()) {
		return fmt.Errorf("transfer: content %v and style %v shapes differ: %w",
			content.Shape(), style.Shape(), ErrShapeMismatch)
	}
	return nil
}
