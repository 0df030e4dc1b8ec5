package nn

import (
	"testing"

	"github.com/elvinmirzazada/StyleTransfer-NerualNet/internal/autodiff"
	"github.com/elvinmirzazada/StyleTransfer-NerualNet/internal/backend/cpu"
	"github.com/elvinmirzazada/StyleTransfer-NerualNet/internal/tensor"
)

// gradBackend is the backend stack the training loop runs on.
type gradBackend = autodiff.AutodiffBackend[*cpu.CPUBackend]

// recording builds an autodiff backend with the tape already running.
func recording(tb testing.TB) *gradBackend {
	tb.Helper()
	b := autodiff.New(cpu.New())
	b.Tape().StartRecording()
	return b
}

// seqTensor fills a tensor with 1..n in row-major order.
func seqTensor[B tensor.Backend](tb testing.TB, shape tensor.Shape, b B) *tensor.Tensor[float32, B] {
	tb.Helper()
	data := make([]float32, shape.NumElements())
	for i := range data {
		data[i] = float32(i + 1)
	}
	tr, err := tensor.FromSlice(data, shape, b)
	if err != nil {
		tb.Fatal(err)
	}
	return tr
}

// checkShape fails the test when got differs from want.
func checkShape(tb testing.TB, got, want tensor.Shape) {
	tb.Helper()
	if !got.Equal(want) {
		tb.Fatalf("shape = %v, want %v", got, want)
	}
}

// countNonZero reports how many elements of a float32 raw tensor are
// non-zero.
func countNonZero(raw *tensor.RawTensor) int {
	n := 0
	for _, v := range raw.AsFloat32() {
		if v != 0 {
			n++
		}
	}
	return n
}
