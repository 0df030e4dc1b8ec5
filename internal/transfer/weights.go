package transfer

import (
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

// StyleWeights maps style layer names to their per-layer loss multipliers.
type StyleWeights map[string]float64

// DefaultStyleWeights returns the classic per-layer multipliers. Early
// layers dominate, so fine texture weighs more than large-scale structure.
func DefaultStyleWeights() StyleWeights {
	return StyleWeights{
		"conv1_1": 1.0,
		"conv2_1": 0.75,
		"conv3_1": 0.2,
		"conv4_1": 0.2,
		"conv5_1": 0.2,
	}
}

// Validate rejects empty tables, empty layer names and negative or
// non-finite weights.
func (w StyleWeights) Validate() error {
	if len(w) == 0 {
		return fmt.Errorf("transfer: empty style weight table: %w", ErrConfiguration)
	}
	for layer, weight := range w {
		if layer == "" {
			return fmt.Errorf("transfer: style weight with empty layer name: %w", ErrConfiguration)
		}
		if weight < 0 {
			return fmt.Errorf("transfer: negative style weight %g for %q: %w",
				weight, layer, ErrConfiguration)
		}
		if math.IsNaN(weight) || math.IsInf(weight, 0) {
			return fmt.Errorf("transfer: non-finite style weight for %q: %w",
				layer, ErrConfiguration)
		}
	}
	return nil
}

// ParseStyleWeights decodes a YAML mapping of layer name to weight.
//
// Example file:
//
//	conv1_1: 1.0
//	conv2_1: 0.75
//	conv3_1: 0.2
func ParseStyleWeights(data []byte) (StyleWeights, error) {
	var w StyleWeights
	if err := yaml.Unmarshal(data, &w); err != nil {
		return nil, fmt.Errorf("transfer: parsing style weights: %w: %w", err, ErrConfiguration)
	}
	if err := w.Validate(); err != nil {
		return nil, err
	}
	return w, nil
}

// LoadStyleWeights reads a YAML style weight table from disk.
func LoadStyleWeights(path string) (StyleWeights, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("transfer: reading style weights: %w", err)
	}
	return ParseStyleWeights(data)
}
