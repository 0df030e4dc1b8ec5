package transfer

import (
	"fmt"

	"github.com/elvinmirzazada/StyleTransfer-NerualNet/internal/tensor"
)

// Gram computes the channel correlation matrix of a single-image activation.
//
// The (1, d, h, w) activation is flattened to (d, h·w), one row of spatial
// values per channel, and multiplied with its own transpose. The (d, d)
// result keeps pairwise channel correlations and discards all spatial
// arrangement, which is what makes it a texture statistic rather than a
// content statistic.
//
// Every step is a backend op, so with a recording backend the statistic is
// differentiable end to end.
//
// Returns ErrShapeMismatch for non-4-D input or a batch dimension other
// than 1; the whole design assumes single-image batches.
func Gram[B tensor.Backend](activation *tensor.Tensor[float32, B]) (*tensor.Tensor[float32, B], error) {
	shape := activation.Shape()
	if len(shape) != 4 {
		return nil, fmt.Errorf("transfer: gram wants a (1, d, h, w) activation, got %v: %w",
			shape, ErrShapeMismatch)
	}
	if shape[0] != 1 {
		return nil, fmt.Errorf("transfer: gram wants batch 1, got batch %d: %w",
			shape[0], ErrShapeMismatch)
	}

	depth := shape[1]
	spatial := shape[2] * shape[3]
	flat := activation.Reshape(depth, spatial)
	return flat.MatMul(flat.T()), nil
}
