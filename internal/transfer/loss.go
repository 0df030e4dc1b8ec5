package transfer

import (
	"fmt"
	"sort"

	"github.com/elvinmirzazada/StyleTransfer-NerualNet/internal/tensor"
)

// ContentLayer names the activation the content loss compares. conv4_2
// sits deep enough to encode arrangement rather than texture.
const ContentLayer = "conv4_2"

// Losses holds the three scalar terms of one composition. Each is a
// one-element tensor on the backend, so Total carries the full
// differentiable chain back to whatever produced the target features.
type Losses[B tensor.Backend] struct {
	Content *tensor.Tensor[float32, B]
	Style   *tensor.Tensor[float32, B]
	Total   *tensor.Tensor[float32, B]
}

// Composer combines content and style terms into the total loss.
//
// The comparison side is fixed at construction: content features and style
// grams are computed once per run, validated against the weight table up
// front, and Compose then only needs the target's features each iteration.
type Composer[B tensor.Backend] struct {
	contentFeature *tensor.Tensor[float32, B]
	styleGrams     map[string]*tensor.Tensor[float32, B]
	weights        StyleWeights
	styleLayers    []string
	contentWeight  float64
	styleWeight    float64
}

// NewComposer validates the reference features against the weight table.
//
// contentFeatures must contain ContentLayer and styleGrams must contain
// every layer the weight table names; anything missing is ErrConfiguration.
func NewComposer[B tensor.Backend](
	contentFeatures map[string]*tensor.Tensor[float32, B],
	styleGrams map[string]*tensor.Tensor[float32, B],
	weights StyleWeights,
	contentWeight, styleWeight float64,
) (*Composer[B], error) {
	if err := weights.Validate(); err != nil {
		return nil, err
	}
	if contentWeight < 0 || styleWeight < 0 {
		return nil, fmt.Errorf("transfer: negative loss weights (content %g, style %g): %w",
			contentWeight, styleWeight, ErrConfiguration)
	}

	contentFeature := contentFeatures[ContentLayer]
	if contentFeature == nil {
		return nil, fmt.Errorf("transfer: content features missing %q: %w",
			ContentLayer, ErrConfiguration)
	}
	for layer := range weights {
		if styleGrams[layer] == nil {
			return nil, fmt.Errorf("transfer: style grams missing %q: %w", layer, ErrConfiguration)
		}
	}

	// A fixed layer order keeps the composed op sequence identical from
	// iteration to iteration.
	styleLayers := make([]string, 0, len(weights))
	for layer := range weights {
		styleLayers = append(styleLayers, layer)
	}
	sort.Strings(styleLayers)

	return &Composer[B]{
		contentFeature: contentFeature,
		styleGrams:     styleGrams,
		weights:        weights,
		styleLayers:    styleLayers,
		contentWeight:  contentWeight,
		styleWeight:    styleWeight,
	}, nil
}

// Compose computes the content, style and total losses for one pass of
// target features.
//
// content = mean((target[conv4_2] - content[conv4_2])²)
// style   = Σ over weighted layers of
//
//	weight · mean((Gram(target[L]) - styleGram[L])²) / (d·h·w of target[L])
//
// total   = contentWeight·content + styleWeight·style
//
// The style term normalizes by the feature map size d·h·w, not by the Gram
// matrix's own d², so deeper layers do not dominate purely by magnitude.
func (c *Composer[B]) Compose(
	targetFeatures map[string]*tensor.Tensor[float32, B],
) (*Losses[B], error) {
	content, err := c.contentLoss(targetFeatures)
	if err != nil {
		return nil, err
	}
	style, err := c.styleLoss(targetFeatures)
	if err != nil {
		return nil, err
	}

	total := content.MulScalar(float32(c.contentWeight)).
		Add(style.MulScalar(float32(c.styleWeight)))

	return &Losses[B]{Content: content, Style: style, Total: total}, nil
}

func (c *Composer[B]) contentLoss(
	targetFeatures map[string]*tensor.Tensor[float32, B],
) (*tensor.Tensor[float32, B], error) {
	target := targetFeatures[ContentLayer]
	if target == nil {
		return nil, fmt.Errorf("transfer: target features missing %q: %w",
			ContentLayer, ErrConfiguration)
	}
	if !target.Shape().Equal(c.contentFeature.Shape()) {
		return nil, fmt.Errorf("transfer: content feature shapes differ, target %v vs content %v: %w",
			target.Shape(), c.contentFeature.Shape(), ErrShapeMismatch)
	}

	diff := target.Sub(c.contentFeature)
	return diff.Mul(diff).Mean(), nil
}

func (c *Composer[B]) styleLoss(
	targetFeatures map[string]*tensor.Tensor[float32, B],
) (*tensor.Tensor[float32, B], error) {
	var style *tensor.Tensor[float32, B]
	for _, layer := range c.styleLayers {
		target := targetFeatures[layer]
		if target == nil {
			return nil, fmt.Errorf("transfer: target features missing style layer %q: %w",
				layer, ErrConfiguration)
		}

		gram, err := Gram(target)
		if err != nil {
			return nil, fmt.Errorf("transfer: gram of %q: %w", layer, err)
		}
		ref := c.styleGrams[layer]
		if !gram.Shape().Equal(ref.Shape()) {
			return nil, fmt.Errorf("transfer: style gram shapes differ at %q, target %v vs style %v: %w",
				layer, gram.Shape(), ref.Shape(), ErrShapeMismatch)
		}

		diff := gram.Sub(ref)
		mse := diff.Mul(diff).Mean()

		// Normalize by the feature map size (d·h·w), never the Gram size.
		shape := target.Shape()
		size := shape[1] * shape[2] * shape[3]
		weighted := mse.MulScalar(float32(c.weights[layer])).DivScalar(float32(size))

		if style == nil {
			style = weighted
		} else {
			style = style.Add(weighted)
		}
	}
	return style, nil
}
