package ops

import (
	"math"
	"testing"

	"github.com/elvinmirzazada/StyleTransfer-NerualNet/internal/backend/cpu"
	"github.com/elvinmirzazada/StyleTransfer-NerualNet/internal/tensor"
)

// Fixture helpers shared by the op tests in this package. All of them
// build CPU-resident float32 tensors and fail the test on allocation
// errors.

// rawOf builds a tensor of the given shape from explicit values.
func rawOf(tb testing.TB, shape tensor.Shape, vals ...float32) *tensor.RawTensor {
	tb.Helper()
	raw, err := tensor.NewRaw(shape, tensor.Float32, tensor.CPU)
	if err != nil {
		tb.Fatalf("NewRaw(%v): %v", shape, err)
	}
	buf := raw.AsFloat32()
	if len(vals) != len(buf) {
		tb.Fatalf("shape %v needs %d values, got %d", shape, len(buf), len(vals))
	}
	copy(buf, vals)
	return raw
}

// rawSeq builds a tensor holding 1..n in row-major order.
func rawSeq(tb testing.TB, shape tensor.Shape) *tensor.RawTensor {
	tb.Helper()
	raw, err := tensor.NewRaw(shape, tensor.Float32, tensor.CPU)
	if err != nil {
		tb.Fatalf("NewRaw(%v): %v", shape, err)
	}
	buf := raw.AsFloat32()
	for i := range buf {
		buf[i] = float32(i + 1)
	}
	return raw
}

// rawFill builds a tensor with every element set to v.
func rawFill(tb testing.TB, shape tensor.Shape, v float32) *tensor.RawTensor {
	tb.Helper()
	raw, err := tensor.NewRaw(shape, tensor.Float32, tensor.CPU)
	if err != nil {
		tb.Fatalf("NewRaw(%v): %v", shape, err)
	}
	buf := raw.AsFloat32()
	for i := range buf {
		buf[i] = v
	}
	return raw
}

// scalarSeed builds the zero-rank gradient Backward receives when the
// loss is a scalar.
func scalarSeed(tb testing.TB, v float32) *tensor.RawTensor {
	tb.Helper()
	return rawOf(tb, tensor.Shape{}, v)
}

// onesGrad builds the usual all-ones seed gradient shaped like out.
func onesGrad(tb testing.TB, out *tensor.RawTensor) *tensor.RawTensor {
	tb.Helper()
	return rawFill(tb, out.Shape(), 1)
}

// countNonZero reports how many elements differ from zero.
func countNonZero(raw *tensor.RawTensor) int {
	n := 0
	for _, v := range raw.AsFloat32() {
		if v != 0 {
			n++
		}
	}
	return n
}

// A backward pass that starts from a scalar loss hands every op a
// single-element gradient; reduceBroadcast must stretch it over the
// operand shape.
func TestReduceBroadcastStretchesScalar(t *testing.T) {
	backend := cpu.New()

	tests := []struct {
		name   string
		target tensor.Shape
		seed   float32
	}{
		{"vector", tensor.Shape{5}, 1},
		{"matrix", tensor.Shape{3, 4}, 2.5},
		{"rank three", tensor.Shape{2, 3, 4}, 0.5},
		{"feature map", tensor.Shape{2, 3, 4, 5}, 1.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := reduceBroadcast(scalarSeed(t, tt.seed), tt.target, backend)

			if !got.Shape().Equal(tt.target) {
				t.Fatalf("shape = %v, want %v", got.Shape(), tt.target)
			}
			for i, v := range got.AsFloat32() {
				if v != tt.seed {
					t.Fatalf("element %d = %v, want %v", i, v, tt.seed)
				}
			}
		})
	}
}

func TestReduceBroadcastStretchesScalarFloat64(t *testing.T) {
	backend := cpu.New()

	seed, err := tensor.NewRaw(tensor.Shape{}, tensor.Float64, tensor.CPU)
	if err != nil {
		t.Fatalf("NewRaw: %v", err)
	}
	seed.AsFloat64()[0] = 3.14159

	got := reduceBroadcast(seed, tensor.Shape{2, 3}, backend)

	if !got.Shape().Equal(tensor.Shape{2, 3}) {
		t.Fatalf("shape = %v, want [2 3]", got.Shape())
	}
	for i, v := range got.AsFloat64() {
		if math.Abs(v-3.14159) > 1e-12 {
			t.Fatalf("element %d = %v, want 3.14159", i, v)
		}
	}
}

// Matching shapes still produce a fresh tensor: the tape accumulates
// gradients by identity, so handing back the input would alias.
func TestReduceBroadcastMatchingShapeCopies(t *testing.T) {
	backend := cpu.New()
	grad := rawSeq(t, tensor.Shape{2, 3})

	got := reduceBroadcast(grad, tensor.Shape{2, 3}, backend)

	if got == grad {
		t.Fatal("returned the input tensor instead of a copy")
	}
	for i, v := range got.AsFloat32() {
		if want := grad.AsFloat32()[i]; v != want {
			t.Fatalf("element %d = %v, want %v", i, v, want)
		}
	}
}

func TestReduceBroadcastSumsToScalar(t *testing.T) {
	backend := cpu.New()
	grad := rawFill(t, tensor.Shape{2, 3}, 1)

	got := reduceBroadcast(grad, tensor.Shape{}, backend)

	if len(got.Shape()) != 0 {
		t.Fatalf("shape = %v, want scalar", got.Shape())
	}
	if v := got.AsFloat32()[0]; v != 6 {
		t.Fatalf("sum = %v, want 6", v)
	}
}

// Forward stretched [3,1] across four columns; backward folds the
// columns back into each row slot.
func TestReduceBroadcastCollapsesStretchedAxis(t *testing.T) {
	backend := cpu.New()
	grad := rawFill(t, tensor.Shape{3, 4}, 1)

	got := reduceBroadcast(grad, tensor.Shape{3, 1}, backend)

	if !got.Shape().Equal(tensor.Shape{3, 1}) {
		t.Fatalf("shape = %v, want [3 1]", got.Shape())
	}
	for i, v := range got.AsFloat32() {
		if v != 4 {
			t.Fatalf("row %d = %v, want 4", i, v)
		}
	}
}

func TestReduceBroadcastDropsLeadingAxis(t *testing.T) {
	backend := cpu.New()
	grad := rawSeq(t, tensor.Shape{2, 3}) // rows {1,2,3} and {4,5,6}

	got := reduceBroadcast(grad, tensor.Shape{3}, backend)

	if !got.Shape().Equal(tensor.Shape{3}) {
		t.Fatalf("shape = %v, want [3]", got.Shape())
	}
	for i, want := range []float32{5, 7, 9} {
		if v := got.AsFloat32()[i]; v != want {
			t.Fatalf("column %d = %v, want %v", i, v, want)
		}
	}
}

// The binary ops route their seeds through reduceBroadcast, so a
// zero-rank upstream gradient must reach each operand stretched to the
// operand's shape.
func TestBinaryBackwardAcceptsScalarSeed(t *testing.T) {
	backend := cpu.New()

	a := rawSeq(t, tensor.Shape{2, 3})
	b := rawFill(t, tensor.Shape{2, 3}, 2)

	t.Run("add", func(t *testing.T) {
		out := backend.Add(a, b)
		grads := NewAddOp(a, b, out).Backward(scalarSeed(t, 2), backend)

		if !grads[0].Shape().Equal(a.Shape()) || !grads[1].Shape().Equal(b.Shape()) {
			t.Fatalf("gradient shapes %v and %v, want %v twice",
				grads[0].Shape(), grads[1].Shape(), a.Shape())
		}
		for i := range a.AsFloat32() {
			if grads[0].AsFloat32()[i] != 2 || grads[1].AsFloat32()[i] != 2 {
				t.Fatalf("element %d = %v and %v, want 2 and 2",
					i, grads[0].AsFloat32()[i], grads[1].AsFloat32()[i])
			}
		}
	})

	t.Run("sub", func(t *testing.T) {
		out := backend.Sub(a, b)
		grads := NewSubOp(a, b, out).Backward(scalarSeed(t, 1), backend)

		for i := range a.AsFloat32() {
			if grads[0].AsFloat32()[i] != 1 || grads[1].AsFloat32()[i] != -1 {
				t.Fatalf("element %d = %v and %v, want 1 and -1",
					i, grads[0].AsFloat32()[i], grads[1].AsFloat32()[i])
			}
		}
	})

	t.Run("mul", func(t *testing.T) {
		out := backend.Mul(a, b)
		grads := NewMulOp(a, b, out).Backward(scalarSeed(t, 1), backend)

		// With a unit seed each operand's gradient is the other operand.
		for i := range a.AsFloat32() {
			if got, want := grads[0].AsFloat32()[i], b.AsFloat32()[i]; got != want {
				t.Fatalf("grad a[%d] = %v, want %v", i, got, want)
			}
			if got, want := grads[1].AsFloat32()[i], a.AsFloat32()[i]; got != want {
				t.Fatalf("grad b[%d] = %v, want %v", i, got, want)
			}
		}
	})
}
