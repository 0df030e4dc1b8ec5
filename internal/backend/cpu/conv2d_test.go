package cpu

import (
	"testing"

	"github.com/elvinmirzazada/StyleTransfer-NerualNet/internal/tensor"
)

func TestConv2D(t *testing.T) {
	cases := []struct {
		name        string
		inShape     tensor.Shape
		in          []float32
		kShape      tensor.Shape
		k           []float32
		stride, pad int
		outShape    tensor.Shape
		want        []float32
	}{
		{
			// A diagonal 2x2 kernel sums x[r][c] and x[r+1][c+1] per window:
			// windows over 1..9 give 1+5, 2+6, 4+8, 5+9.
			name:     "diagonal taps",
			inShape:  tensor.Shape{1, 1, 3, 3},
			in:       seq(9),
			kShape:   tensor.Shape{1, 1, 2, 2},
			k:        []float32{1, 0, 0, 1},
			stride:   1,
			outShape: tensor.Shape{1, 1, 2, 2},
			want:     []float32{6, 8, 12, 14},
		},
		{
			// All-ones input and kernel with padding 1 counts the in-bounds
			// taps per position: 4 at corners, 6 on edges, 9 in the center.
			name:     "same padding",
			inShape:  tensor.Shape{1, 1, 3, 3},
			in:       rep(1, 9),
			kShape:   tensor.Shape{1, 1, 3, 3},
			k:        rep(1, 9),
			stride:   1,
			pad:      1,
			outShape: tensor.Shape{1, 1, 3, 3},
			want:     []float32{4, 6, 4, 6, 9, 6, 4, 6, 4},
		},
		{
			// Stride 2 lands windows on the four disjoint 2x2 corners of a
			// 4x4 grid of 1..16; a ones kernel sums each corner.
			name:     "stride two",
			inShape:  tensor.Shape{1, 1, 4, 4},
			in:       seq(16),
			kShape:   tensor.Shape{1, 1, 2, 2},
			k:        rep(1, 4),
			stride:   2,
			outShape: tensor.Shape{1, 1, 2, 2},
			want:     []float32{14, 22, 46, 54},
		},
		{
			// Two input channels holding constants 1 and 2. Out channel 0
			// uses all-ones taps (4*1 + 4*2 = 12), out channel 1 halves that.
			name:     "channel mixing",
			inShape:  tensor.Shape{1, 2, 3, 3},
			in:       append(rep(1, 9), rep(2, 9)...),
			kShape:   tensor.Shape{2, 2, 2, 2},
			k:        append(rep(1, 8), rep(0.5, 8)...),
			stride:   1,
			outShape: tensor.Shape{1, 2, 2, 2},
			want:     []float32{12, 12, 12, 12, 6, 6, 6, 6},
		},
		{
			// Each batch element convolves independently: a ones kernel over
			// [1..4] and [5..8] sums to 10 and 26.
			name:     "batched",
			inShape:  tensor.Shape{2, 1, 2, 2},
			in:       seq(8),
			kShape:   tensor.Shape{1, 1, 2, 2},
			k:        rep(1, 4),
			stride:   1,
			outShape: tensor.Shape{2, 1, 1, 1},
			want:     []float32{10, 26},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := raw32(t, tc.inShape, tc.in...)
			k := raw32(t, tc.kShape, tc.k...)

			out := New().Conv2D(in, k, tc.stride, tc.pad)

			checkShape(t, out, tc.outShape)
			checkFloats(t, out.AsFloat32(), tc.want, 0)
		})
	}
}

func TestConv2DFloat64(t *testing.T) {
	backend := New()

	in := raw64(t, tensor.Shape{1, 1, 3, 3}, 1, 2, 3, 4, 5, 6, 7, 8, 9)
	k := raw64(t, tensor.Shape{1, 1, 2, 2}, 1, 0, 0, 1)

	out := backend.Conv2D(in, k, 1, 0)
	for i, want := range []float64{6, 8, 12, 14} {
		if got := out.AsFloat64()[i]; got != want {
			t.Errorf("output[%d] = %v, want %v", i, got, want)
		}
	}

	grad := raw64(t, tensor.Shape{1, 1, 2, 2}, 1, 1, 1, 1)
	kGrad := backend.Conv2DKernelBackward(in, k, grad, 1, 0)
	for i, want := range []float64{12, 16, 24, 28} {
		if got := kGrad.AsFloat64()[i]; got != want {
			t.Errorf("kernel grad[%d] = %v, want %v", i, got, want)
		}
	}
}

func TestConv2DInputBackward(t *testing.T) {
	in := raw32(t, tensor.Shape{1, 1, 3, 3}, seq(9)...)
	k := raw32(t, tensor.Shape{1, 1, 2, 2}, 1, 0, 0, 1)
	grad := raw32(t, tensor.Shape{1, 1, 2, 2}, rep(1, 4)...)

	got := New().Conv2DInputBackward(in, k, grad, 1, 0)

	// A unit upstream gradient scatters the kernel taps back through every
	// window. Only the diagonal taps are non-zero, so the center cell,
	// covered by a live tap of two windows, accumulates 2, and the corners
	// on the anti-diagonal stay 0.
	want := []float32{
		1, 1, 0,
		1, 2, 1,
		0, 1, 1,
	}
	checkShape(t, got, in.Shape())
	checkFloats(t, got.AsFloat32(), want, 0)
}

func TestConv2DKernelBackward(t *testing.T) {
	in := raw32(t, tensor.Shape{1, 1, 3, 3}, seq(9)...)
	k := raw32(t, tensor.Shape{1, 1, 2, 2})
	grad := raw32(t, tensor.Shape{1, 1, 2, 2}, rep(1, 4)...)

	got := New().Conv2DKernelBackward(in, k, grad, 1, 0)

	// Under a unit upstream gradient each tap collects the sum of the
	// inputs it slides over: top-left sees {1,2,4,5}, top-right {2,3,5,6},
	// bottom-left {4,5,7,8}, bottom-right {5,6,8,9}.
	want := []float32{12, 16, 24, 28}
	checkShape(t, got, k.Shape())
	checkFloats(t, got.AsFloat32(), want, 0)
}

// TestConv2DAgainstReference checks the im2col+GEMM forward path against
// the naive reference backend, with the worker pool forced on.
func TestConv2DAgainstReference(t *testing.T) {
	fast := eagerParallel()
	ref := tensor.NewMockBackend()

	in := noisy32(t, tensor.Shape{2, 3, 6, 5}, 11)
	k := noisy32(t, tensor.Shape{4, 3, 3, 3}, 12)

	for _, cfg := range []struct{ stride, pad int }{
		{1, 0},
		{1, 1},
		{2, 1},
	} {
		got := fast.Conv2D(in, k, cfg.stride, cfg.pad)
		want := ref.Conv2D(in, k, cfg.stride, cfg.pad)
		checkRawsClose(t, got, want, 1e-4)
	}
}

// TestConv2DBackwardAgainstReference cross-checks both backward kernels
// against the naive reference backend over several geometries.
func TestConv2DBackwardAgainstReference(t *testing.T) {
	fast := eagerParallel()
	ref := tensor.NewMockBackend()

	in := noisy32(t, tensor.Shape{2, 3, 5, 5}, 21)
	k := noisy32(t, tensor.Shape{4, 3, 3, 3}, 22)

	for _, cfg := range []struct{ stride, pad int }{
		{1, 0},
		{1, 1},
		{2, 1},
	} {
		// Upstream gradient shaped like the forward output.
		out := ref.Conv2D(in, k, cfg.stride, cfg.pad)
		grad := noisy32(t, out.Shape(), 23)

		gotIn := fast.Conv2DInputBackward(in, k, grad, cfg.stride, cfg.pad)
		wantIn := ref.Conv2DInputBackward(in, k, grad, cfg.stride, cfg.pad)
		checkRawsClose(t, gotIn, wantIn, 1e-4)

		gotK := fast.Conv2DKernelBackward(in, k, grad, cfg.stride, cfg.pad)
		wantK := ref.Conv2DKernelBackward(in, k, grad, cfg.stride, cfg.pad)
		checkRawsClose(t, gotK, wantK, 1e-4)
	}
}
