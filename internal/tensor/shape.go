package tensor

import (
	"fmt"
	"slices"
)

// Shape holds tensor dimensions, outermost first.
type Shape []int

// NumElements returns the element count. A rank-0 shape is a scalar
// with one element.
func (s Shape) NumElements() int {
	n := 1
	for _, dim := range s {
		n *= dim
	}
	return n
}

// Validate rejects non-positive dimensions.
func (s Shape) Validate() error {
	for i, dim := range s {
		if dim <= 0 {
			return fmt.Errorf("invalid dimension at index %d: %d (must be > 0)", i, dim)
		}
	}
	return nil
}

// Equal reports whether s and other match exactly.
func (s Shape) Equal(other Shape) bool {
	return slices.Equal(s, other)
}

// Clone returns an independent copy of the shape.
func (s Shape) Clone() Shape {
	return slices.Clone(s)
}

// ComputeStrides returns row-major strides: stride[i] is the flat
// distance between neighbors along dimension i.
func (s Shape) ComputeStrides() []int {
	strides := make([]int, len(s))
	step := 1
	for i := len(s) - 1; i >= 0; i-- {
		strides[i] = step
		step *= s[i]
	}
	return strides
}

// dimAt reads the i-th dimension counted from the right, treating
// missing dimensions as size 1.
func dimAt(s Shape, i int) int {
	if i >= len(s) {
		return 1
	}
	return s[len(s)-1-i]
}

// BroadcastShapes applies NumPy broadcasting to a pair of shapes:
// aligned from the right, two dimensions combine when they are equal or
// one of them is 1, and the shorter shape is padded with leading ones.
//
// The flag reports whether any dimension actually stretches, which lets
// callers keep a dense fast path:
//
//	(3, 1) + (3, 5) gives (3, 5), true
//	(3, 5) + (3, 5) gives (3, 5), false
func BroadcastShapes(a, b Shape) (Shape, bool, error) {
	rank := max(len(a), len(b))
	out := make(Shape, rank)
	stretched := false

	for i := 0; i < rank; i++ {
		ad, bd := dimAt(a, i), dimAt(b, i)
		switch {
		case ad == bd:
			out[rank-1-i] = ad
		case ad == 1:
			out[rank-1-i] = bd
			stretched = true
		case bd == 1:
			out[rank-1-i] = ad
			stretched = true
		default:
			return nil, false, fmt.Errorf("shapes not compatible for broadcasting: %v vs %v (dimension %d: %d vs %d)",
				a, b, rank-1-i, ad, bd)
		}
	}
	return out, stretched, nil
}
