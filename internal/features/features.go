// Package features selects and extracts intermediate activations from a
// layered network stack.
//
// The extractor is deliberately ignorant of what the stack computes: it only
// knows the stack has Len ordered layers and that applying layer i to an
// activation yields the next activation. Which layers matter, and under what
// names their activations are published, is the caller's selection. This is
// the seam that keeps the perception network swappable.
package features

import (
	"errors"
	"fmt"

	"github.com/elvinmirzazada/StyleTransfer-NerualNet/internal/tensor"
)

// ErrConfiguration marks an invalid layer selection. Wrapped errors carry
// the offending selection; errors.Is identifies the class.
var ErrConfiguration = errors.New("invalid configuration")

// Stack is an ordered, indexable sequence of layer applications.
//
// Apply(i, x) runs layer i on activation x and returns the result; the
// caller owns ordering and feeds each output back in as the next input.
type Stack[B tensor.Backend] interface {
	Len() int
	Apply(i int, x *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B]
}

// Selection names the activation produced by the stack layer at Index.
type Selection struct {
	Index int
	Name  string
}

// DefaultSelections returns the classic style-transfer layer set for a
// VGG-19 feature stack: the first convolution of each block for style
// statistics, plus conv4_2 for content.
func DefaultSelections() []Selection {
	return []Selection{
		{Index: 0, Name: "conv1_1"},
		{Index: 5, Name: "conv2_1"},
		{Index: 10, Name: "conv3_1"},
		{Index: 19, Name: "conv4_1"},
		{Index: 21, Name: "conv4_2"},
		{Index: 28, Name: "conv5_1"},
	}
}

// Extractor pulls named activations out of a stack in one forward pass.
type Extractor[B tensor.Backend] struct {
	stack Stack[B]
}

// NewExtractor creates an extractor over the given stack.
func NewExtractor[B tensor.Backend](stack Stack[B]) *Extractor[B] {
	if stack == nil {
		panic("features: nil stack")
	}
	return &Extractor[B]{stack: stack}
}

// Extract applies stack layers 0 through the largest selected index in
// order, recording the activation immediately after each selected layer
// under its selection name. Layers past the largest selected index are
// never applied.
//
// The whole selection is validated before any layer runs: an out-of-range
// or duplicate index, a duplicate or empty name, or an empty selection list
// returns ErrConfiguration and leaves the stack untouched.
//
// The stack is read-only to this call; x is not mutated.
func (e *Extractor[B]) Extract(
	x *tensor.Tensor[float32, B],
	selections []Selection,
) (map[string]*tensor.Tensor[float32, B], error) {
	if err := validateSelections(selections, e.stack.Len()); err != nil {
		return nil, err
	}

	byIndex := make(map[int]string, len(selections))
	maxIndex := 0
	for _, s := range selections {
		byIndex[s.Index] = s.Name
		if s.Index > maxIndex {
			maxIndex = s.Index
		}
	}

	activations := make(map[string]*tensor.Tensor[float32, B], len(selections))
	act := x
	for i := 0; i <= maxIndex; i++ {
		act = e.stack.Apply(i, act)
		if name, ok := byIndex[i]; ok {
			activations[name] = act
		}
	}
	return activations, nil
}

// validateSelections rejects malformed selections up front so extraction
// never half-runs a network.
func validateSelections(selections []Selection, stackLen int) error {
	if len(selections) == 0 {
		return fmt.Errorf("features: no layers selected: %w", ErrConfiguration)
	}

	byIndex := make(map[int]string, len(selections))
	byName := make(map[string]int, len(selections))
	for _, s := range selections {
		if s.Name == "" {
			return fmt.Errorf("features: selection at index %d has an empty name: %w",
				s.Index, ErrConfiguration)
		}
		if s.Index < 0 || s.Index >= stackLen {
			return fmt.Errorf("features: selection %q index %d out of range [0, %d): %w",
				s.Name, s.Index, stackLen, ErrConfiguration)
		}
		if prev, dup := byIndex[s.Index]; dup {
			return fmt.Errorf("features: selections %q and %q share index %d: %w",
				prev, s.Name, s.Index, ErrConfiguration)
		}
		if prev, dup := byName[s.Name]; dup {
			return fmt.Errorf("features: name %q used for indices %d and %d: %w",
				s.Name, prev, s.Index, ErrConfiguration)
		}
		byIndex[s.Index] = s.Name
		byName[s.Name] = s.Index
	}
	return nil
}
