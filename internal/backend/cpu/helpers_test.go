package cpu

import (
	"math"
	"math/rand"
	"testing"

	"github.com/elvinmirzazada/StyleTransfer-NerualNet/internal/parallel"
	"github.com/elvinmirzazada/StyleTransfer-NerualNet/internal/tensor"
)

// eagerParallel builds a backend whose worker pool engages even for the
// tiny tensors used in tests; the default config stays sequential below
// its chunk threshold.
func eagerParallel() *CPUBackend {
	return &CPUBackend{
		device: tensor.CPU,
		par:    parallel.Config{Enabled: true, NumWorkers: 4, MinChunkSize: 1},
	}
}

// raw32 allocates a float32 tensor on the CPU device, filled with vals
// when given. vals must be empty or cover the tensor exactly.
func raw32(t *testing.T, shape tensor.Shape, vals ...float32) *tensor.RawTensor {
	t.Helper()
	r, err := tensor.NewRaw(shape, tensor.Float32, tensor.CPU)
	if err != nil {
		t.Fatalf("NewRaw(%v): %v", shape, err)
	}
	if len(vals) == 0 {
		return r
	}
	data := r.AsFloat32()
	if len(vals) != len(data) {
		t.Fatalf("raw32: %d values for %d elements", len(vals), len(data))
	}
	copy(data, vals)
	return r
}

// raw64 is raw32 for float64 tensors.
func raw64(t *testing.T, shape tensor.Shape, vals ...float64) *tensor.RawTensor {
	t.Helper()
	r, err := tensor.NewRaw(shape, tensor.Float64, tensor.CPU)
	if err != nil {
		t.Fatalf("NewRaw(%v): %v", shape, err)
	}
	if len(vals) == 0 {
		return r
	}
	data := r.AsFloat64()
	if len(vals) != len(data) {
		t.Fatalf("raw64: %d values for %d elements", len(vals), len(data))
	}
	copy(data, vals)
	return r
}

// noisy32 fills a tensor with deterministic pseudo-random values in [-1, 1).
func noisy32(t *testing.T, shape tensor.Shape, seed int64) *tensor.RawTensor {
	t.Helper()
	r := raw32(t, shape)
	rng := rand.New(rand.NewSource(seed)) //nolint:gosec // G404: test data, not crypto
	data := r.AsFloat32()
	for i := range data {
		data[i] = rng.Float32()*2 - 1
	}
	return r
}

// seq returns 1, 2, ..., n so window sums stay easy to verify by hand.
func seq(n int) []float32 {
	out := make([]float32, n)
	for i := range out {
		out[i] = float32(i + 1)
	}
	return out
}

// rep returns v repeated n times.
func rep(v float32, n int) []float32 {
	out := make([]float32, n)
	for i := range out {
		out[i] = v
	}
	return out
}

// checkShape fails the test when got's shape differs from want.
func checkShape(t *testing.T, got *tensor.RawTensor, want tensor.Shape) {
	t.Helper()
	if !got.Shape().Equal(want) {
		t.Fatalf("shape = %v, want %v", got.Shape(), want)
	}
}

// checkFloats compares float32 slices element by element within tol.
// A tol of zero demands exact equality.
func checkFloats(t *testing.T, got, want []float32, tol float64) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("length = %d, want %d", len(got), len(want))
	}
	for i := range got {
		if math.Abs(float64(got[i])-float64(want[i])) > tol {
			t.Errorf("element %d = %v, want %v", i, got[i], want[i])
		}
	}
}

// checkRawsClose compares two tensors of the same shape within tol.
func checkRawsClose(t *testing.T, got, want *tensor.RawTensor, tol float64) {
	t.Helper()
	checkShape(t, got, want.Shape())
	checkFloats(t, got.AsFloat32(), want.AsFloat32(), tol)
}
