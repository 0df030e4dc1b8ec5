package cpu

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/elvinmirzazada/StyleTransfer-NerualNet/internal/tensor"
)

// benchRaw fills a float32 tensor with seeded noise so runs compare
// like with like.
func benchRaw(b *testing.B, shape tensor.Shape) *tensor.RawTensor {
	b.Helper()
	r, err := tensor.NewRaw(shape, tensor.Float32, tensor.CPU)
	if err != nil {
		b.Fatal(err)
	}
	rng := rand.New(rand.NewSource(7))
	data := r.AsFloat32()
	for i := range data {
		data[i] = rng.Float32()*2 - 1
	}
	return r
}

type benchMode struct {
	name    string
	backend *CPUBackend
}

// modes pairs the pooled backend with the sequential one so each
// benchmark reports the parallel speedup directly.
func modes() []benchMode {
	return []benchMode{
		{"parallel", New()},
		{"sequential", NewSequential()},
	}
}

func BenchmarkConv2D(b *testing.B) {
	input := benchRaw(b, tensor.Shape{1, 32, 64, 64})
	kernel := benchRaw(b, tensor.Shape{32, 32, 3, 3})

	for _, m := range modes() {
		b.Run(m.name, func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				_ = m.backend.Conv2D(input, kernel, 1, 1)
			}
		})
	}
}

func BenchmarkConv2DBackward(b *testing.B) {
	input := benchRaw(b, tensor.Shape{1, 32, 64, 64})
	kernel := benchRaw(b, tensor.Shape{32, 32, 3, 3})
	seed := benchRaw(b, tensor.Shape{1, 32, 64, 64})

	for _, m := range modes() {
		b.Run("input/"+m.name, func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				_ = m.backend.Conv2DInputBackward(input, kernel, seed, 1, 1)
			}
		})
		b.Run("kernel/"+m.name, func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				_ = m.backend.Conv2DKernelBackward(input, kernel, seed, 1, 1)
			}
		})
	}
}

func BenchmarkMaxPool2D(b *testing.B) {
	input := benchRaw(b, tensor.Shape{1, 64, 112, 112})

	for _, m := range modes() {
		b.Run(m.name, func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				_ = m.backend.MaxPool2D(input, 2, 2)
			}
		})
	}
}

func BenchmarkMatMul(b *testing.B) {
	backend := New()

	// Gram-product shapes: channel count by flattened spatial extent.
	for _, size := range []struct{ m, k int }{{64, 4096}, {256, 1024}} {
		x := benchRaw(b, tensor.Shape{size.m, size.k})
		y := benchRaw(b, tensor.Shape{size.k, size.m})

		b.Run(fmt.Sprintf("%dx%d", size.m, size.k), func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				_ = backend.MatMul(x, y)
			}
		})
	}
}

func BenchmarkReLU(b *testing.B) {
	backend := New()
	x := benchRaw(b, tensor.Shape{1, 64, 112, 112})

	for i := 0; i < b.N; i++ {
		_ = backend.ReLU(x)
	}
}
