package cpu

import (
	"testing"

	"github.com/elvinmirzazada/StyleTransfer-NerualNet/internal/tensor"
)

// argmaxPerWindow records the flat input index of the winner in every
// pooling window, matching the bookkeeping the forward pass hands to
// the backward pass.
func argmaxPerWindow(in *tensor.RawTensor, kernel, stride int) []int {
	s := in.Shape()
	batch, chans, h, w := s[0], s[1], s[2], s[3]
	outH := (h-kernel)/stride + 1
	outW := (w-kernel)/stride + 1
	data := in.AsFloat32()

	winners := make([]int, 0, batch*chans*outH*outW)
	for img := 0; img < batch*chans; img++ {
		base := img * h * w
		for oy := 0; oy < outH; oy++ {
			for ox := 0; ox < outW; ox++ {
				best := base + oy*stride*w + ox*stride
				for dy := 0; dy < kernel; dy++ {
					row := base + (oy*stride+dy)*w + ox*stride
					for dx := 0; dx < kernel; dx++ {
						if data[row+dx] > data[best] {
							best = row + dx
						}
					}
				}
				winners = append(winners, best)
			}
		}
	}
	return winners
}

func TestMaxPool2D(t *testing.T) {
	cases := []struct {
		name           string
		inShape        tensor.Shape
		in             []float32
		kernel, stride int
		outShape       tensor.Shape
		want           []float32
	}{
		{
			// Disjoint 2x2 windows over 1..16 each keep their bottom-right
			// value.
			name:     "disjoint windows",
			inShape:  tensor.Shape{1, 1, 4, 4},
			in:       seq(16),
			kernel:   2,
			stride:   2,
			outShape: tensor.Shape{1, 1, 2, 2},
			want:     []float32{6, 8, 14, 16},
		},
		{
			// 3x3 windows sliding one step at a time over 1..25: the
			// bottom-right corner of each window wins.
			name:     "overlapping windows",
			inShape:  tensor.Shape{1, 1, 5, 5},
			in:       seq(25),
			kernel:   3,
			stride:   1,
			outShape: tensor.Shape{1, 1, 3, 3},
			want:     []float32{13, 14, 15, 18, 19, 20, 23, 24, 25},
		},
		{
			// Constant planes pool to themselves, channel by channel.
			name:     "per channel",
			inShape:  tensor.Shape{1, 3, 4, 4},
			in:       append(append(rep(1, 16), rep(2, 16)...), rep(3, 16)...),
			kernel:   2,
			stride:   2,
			outShape: tensor.Shape{1, 3, 2, 2},
			want:     []float32{1, 1, 1, 1, 2, 2, 2, 2, 3, 3, 3, 3},
		},
		{
			// Batch elements pool independently: 1..16 and 17..32.
			name:     "batched",
			inShape:  tensor.Shape{2, 1, 4, 4},
			in:       seq(32),
			kernel:   2,
			stride:   2,
			outShape: tensor.Shape{2, 1, 2, 2},
			want:     []float32{6, 8, 14, 16, 22, 24, 30, 32},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := raw32(t, tc.inShape, tc.in...)

			out := New().MaxPool2D(in, tc.kernel, tc.stride)

			checkShape(t, out, tc.outShape)
			checkFloats(t, out.AsFloat32(), tc.want, 0)
		})
	}
}

func TestMaxPool2DFloat64(t *testing.T) {
	in := raw64(t, tensor.Shape{1, 1, 4, 4},
		1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16)

	out := New().MaxPool2D(in, 2, 2)

	for i, want := range []float64{6, 8, 14, 16} {
		if got := out.AsFloat64()[i]; got != want {
			t.Errorf("output[%d] = %v, want %v", i, got, want)
		}
	}
}

func TestMaxPool2DNegativeInput(t *testing.T) {
	// Every value below zero; the window max must still be found rather
	// than defaulting to zero.
	in := raw32(t, tensor.Shape{1, 1, 2, 2}, -7, -3, -5, -9)

	out := New().MaxPool2D(in, 2, 2)

	checkFloats(t, out.AsFloat32(), []float32{-3}, 0)
}

func TestMaxPool2DBackward(t *testing.T) {
	in := raw32(t, tensor.Shape{1, 1, 4, 4}, seq(16)...)
	winners := argmaxPerWindow(in, 2, 2)
	grad := raw32(t, tensor.Shape{1, 1, 2, 2}, 10, 20, 30, 40)

	got := New().MaxPool2DBackward(in, grad, winners, 2, 2)

	// The 2x2/stride-2 maxima of 1..16 sit at flat indices 5, 7, 13 and
	// 15; each upstream value lands there and nowhere else.
	want := []float32{
		0, 0, 0, 0,
		0, 10, 0, 20,
		0, 0, 0, 0,
		0, 30, 0, 40,
	}
	checkShape(t, got, in.Shape())
	checkFloats(t, got.AsFloat32(), want, 0)
}

func TestMaxPool2DBackwardAccumulates(t *testing.T) {
	// A single dominant cell at flat index 5 wins all four overlapping
	// 3x3/stride-1 windows, so every upstream value piles up there.
	in := raw32(t, tensor.Shape{1, 1, 4, 4}, rep(1, 16)...)
	in.AsFloat32()[5] = 9

	winners := argmaxPerWindow(in, 3, 1)
	grad := raw32(t, tensor.Shape{1, 1, 2, 2}, 1, 2, 3, 4)

	got := New().MaxPool2DBackward(in, grad, winners, 3, 1).AsFloat32()

	for i, v := range got {
		want := float32(0)
		if i == 5 {
			want = 10
		}
		if v != want {
			t.Errorf("gradient[%d] = %v, want %v", i, v, want)
		}
	}
}

// TestMaxPool2DAgainstReference checks the pooling kernels against the
// naive reference backend, with the worker pool forced on.
func TestMaxPool2DAgainstReference(t *testing.T) {
	fast := eagerParallel()
	ref := tensor.NewMockBackend()

	in := noisy32(t, tensor.Shape{2, 3, 6, 6}, 31)

	got := fast.MaxPool2D(in, 3, 2)
	want := ref.MaxPool2D(in, 3, 2)
	checkRawsClose(t, got, want, 0)
}

func TestMaxPool2DBackwardAgainstReference(t *testing.T) {
	fast := eagerParallel()
	ref := tensor.NewMockBackend()

	in := noisy32(t, tensor.Shape{2, 3, 6, 6}, 41)
	winners := argmaxPerWindow(in, 2, 2)
	grad := noisy32(t, tensor.Shape{2, 3, 3, 3}, 42)

	got := fast.MaxPool2DBackward(in, grad, winners, 2, 2)
	want := ref.MaxPool2DBackward(in, grad, winners, 2, 2)
	checkRawsClose(t, got, want, 0)
}
