package ops

import (
	"testing"

	"github.com/elvinmirzazada/StyleTransfer-NerualNet/internal/tensor"
)

func TestMaxPool2DOpRoutesGradientToWinners(t *testing.T) {
	backend := tensor.NewMockBackend()

	input := rawSeq(t, tensor.Shape{1, 1, 4, 4})
	output := backend.MaxPool2D(input, 2, 2)

	op := NewMaxPool2DOp(input, output, 2, 2)
	grads := op.Backward(onesGrad(t, output), backend)

	if len(grads) != 1 {
		t.Fatalf("got %d gradients, want 1 (pooling has no parameters)", len(grads))
	}
	got := grads[0]
	if !got.Shape().Equal(input.Shape()) {
		t.Fatalf("gradient shape = %v, want %v", got.Shape(), input.Shape())
	}

	// Rising values put each window's max at its bottom-right corner:
	// flat positions 5, 7, 13 and 15. Everything else stays zero.
	winners := map[int]bool{5: true, 7: true, 13: true, 15: true}
	for i, g := range got.AsFloat32() {
		want := float32(0)
		if winners[i] {
			want = 1
		}
		if g != want {
			t.Errorf("grad[%d] = %v, want %v", i, g, want)
		}
	}
}

func TestMaxPool2DOpAccumulatesOverlappingWindows(t *testing.T) {
	backend := tensor.NewMockBackend()

	// Constant input with 3x3 windows at stride 1: windows overlap, each
	// resolves its tie to some winner, and the routed gradient must add
	// up to one unit per window.
	input := rawFill(t, tensor.Shape{1, 1, 5, 5}, 1)
	output := backend.MaxPool2D(input, 3, 1)

	op := NewMaxPool2DOp(input, output, 3, 1)
	grads := op.Backward(onesGrad(t, output), backend)

	var total float32
	for _, g := range grads[0].AsFloat32() {
		total += g
	}
	if want := float32(output.NumElements()); total != want {
		t.Errorf("total routed gradient = %v, want %v", total, want)
	}
}

// Pooling treats every image plane independently, whether the planes are
// channels of one image or images of a batch.
func TestMaxPool2DOpPoolsPlanesIndependently(t *testing.T) {
	tests := []struct {
		name  string
		shape tensor.Shape
	}{
		{"two channels", tensor.Shape{1, 2, 4, 4}},
		{"two batches", tensor.Shape{2, 1, 4, 4}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			backend := tensor.NewMockBackend()

			input := rawSeq(t, tt.shape)
			output := backend.MaxPool2D(input, 2, 2)

			op := NewMaxPool2DOp(input, output, 2, 2)
			grads := op.Backward(onesGrad(t, output), backend)

			// Each 4x4 plane pools to four windows, so each half of the
			// flat buffer carries exactly four hits.
			var hits [2]int
			for i, g := range grads[0].AsFloat32() {
				if g != 0 {
					hits[i/16]++
				}
			}
			if hits[0] != 4 || hits[1] != 4 {
				t.Errorf("non-zero gradients per plane = %d and %d, want 4 and 4",
					hits[0], hits[1])
			}
		})
	}
}

func TestMaxPool2DOpFloat64(t *testing.T) {
	backend := tensor.NewMockBackend()

	input, err := tensor.NewRaw(tensor.Shape{1, 1, 4, 4}, tensor.Float64, tensor.CPU)
	if err != nil {
		t.Fatalf("NewRaw: %v", err)
	}
	buf := input.AsFloat64()
	for i := range buf {
		buf[i] = float64(i + 1)
	}
	output := backend.MaxPool2D(input, 2, 2)

	seed, err := tensor.NewRaw(output.Shape(), tensor.Float64, tensor.CPU)
	if err != nil {
		t.Fatalf("NewRaw: %v", err)
	}
	for i := range seed.AsFloat64() {
		seed.AsFloat64()[i] = 1
	}

	op := NewMaxPool2DOp(input, output, 2, 2)
	grads := op.Backward(seed, backend)

	winners := map[int]bool{5: true, 7: true, 13: true, 15: true}
	for i, g := range grads[0].AsFloat64() {
		want := 0.0
		if winners[i] {
			want = 1.0
		}
		if g != want {
			t.Errorf("grad[%d] = %v, want %v", i, g, want)
		}
	}
}
