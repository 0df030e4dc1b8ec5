// Package cpu implements the CPU backend: BLAS-backed matrix products,
// parallel convolution kernels, and plain loops for the rest.
package cpu

import (
	"fmt"

	"github.com/elvinmirzazada/StyleTransfer-NerualNet/internal/parallel"
	"github.com/elvinmirzazada/StyleTransfer-NerualNet/internal/tensor"
)

// CPUBackend implements tensor operations on the host CPU.
//
// MatMul and the im2col convolution delegate to gonum's BLAS; the
// convolution and pooling kernels split their outer loops across
// goroutines. Element-wise operations are straight loops.
type CPUBackend struct {
	device tensor.Device
	par    parallel.Config
}

// New creates a CPU backend with default parallelism.
func New() *CPUBackend {
	return &CPUBackend{device: tensor.CPU, par: parallel.DefaultConfig()}
}

// NewSequential creates a CPU backend that runs every kernel on the
// calling goroutine. Useful for profiling and deterministic tests.
func NewSequential() *CPUBackend {
	return &CPUBackend{device: tensor.CPU, par: parallel.Config{Enabled: false}}
}

// Name returns the backend name.
func (c *CPUBackend) Name() string { return "CPU" }

// Device returns the compute device.
func (c *CPUBackend) Device() tensor.Device { return c.device }

// binKernels bundles one operator's dense and broadcast kernels for
// both element types.
type binKernels struct {
	dense32 func(dst, a, b []float32)
	dense64 func(dst, a, b []float64)
	bcast32 func(dst, a, b []float32, plan broadcastPlan)
	bcast64 func(dst, a, b []float64, plan broadcastPlan)
}

var (
	addKernels = binKernels{addSpans[float32], addSpans[float64], addBroadcast[float32], addBroadcast[float64]}
	subKernels = binKernels{subSpans[float32], subSpans[float64], subBroadcast[float32], subBroadcast[float64]}
	mulKernels = binKernels{mulSpans[float32], mulSpans[float64], mulBroadcast[float32], mulBroadcast[float64]}
	divKernels = binKernels{divSpans[float32], divSpans[float64], divBroadcast[float32], divBroadcast[float64]}
)

// Add returns a + b with NumPy-style broadcasting.
//
// Binary ops always allocate a fresh result. Returning an input buffer,
// even a uniquely owned one, would alias an operation's input and
// output, which corrupts gradient accumulation on a recording tape.
func (c *CPUBackend) Add(a, b *tensor.RawTensor) *tensor.RawTensor {
	return c.binary("add", a, b, addKernels)
}

// Sub returns a - b with broadcasting.
func (c *CPUBackend) Sub(a, b *tensor.RawTensor) *tensor.RawTensor {
	return c.binary("sub", a, b, subKernels)
}

// Mul returns a * b element-wise with broadcasting.
func (c *CPUBackend) Mul(a, b *tensor.RawTensor) *tensor.RawTensor {
	return c.binary("mul", a, b, mulKernels)
}

// Div returns a / b element-wise with broadcasting.
func (c *CPUBackend) Div(a, b *tensor.RawTensor) *tensor.RawTensor {
	return c.binary("div", a, b, divKernels)
}

func (c *CPUBackend) binary(name string, a, b *tensor.RawTensor, k binKernels) *tensor.RawTensor {
	outShape, broadcast, err := tensor.BroadcastShapes(a.Shape(), b.Shape())
	if err != nil {
		panic(fmt.Sprintf("%s: %v", name, err))
	}

	out, err := tensor.NewRaw(outShape, a.DType(), c.device)
	if err != nil {
		panic(fmt.Sprintf("%s: allocating result: %v", name, err))
	}

	dense := !broadcast && a.Shape().Equal(b.Shape())
	switch a.DType() {
	case tensor.Float32:
		if dense {
			k.dense32(out.AsFloat32(), a.AsFloat32(), b.AsFloat32())
		} else {
			k.bcast32(out.AsFloat32(), a.AsFloat32(), b.AsFloat32(), planBroadcast(a.Shape(), b.Shape(), outShape))
		}
	case tensor.Float64:
		if dense {
			k.dense64(out.AsFloat64(), a.AsFloat64(), b.AsFloat64())
		} else {
			k.bcast64(out.AsFloat64(), a.AsFloat64(), b.AsFloat64(), planBroadcast(a.Shape(), b.Shape(), outShape))
		}
	default:
		panic(fmt.Sprintf("%s: unsupported dtype %s", name, a.DType()))
	}

	return out
}

// newLike allocates a zeroed result with x's shape and dtype.
func (c *CPUBackend) newLike(x *tensor.RawTensor, op string) *tensor.RawTensor {
	out, err := tensor.NewRaw(x.Shape(), x.DType(), c.device)
	if err != nil {
		panic(fmt.Sprintf("%s: allocating result: %v", op, err))
	}
	return out
}

// Reshape returns a copy of t carrying the same elements in newShape.
func (c *CPUBackend) Reshape(t *tensor.RawTensor, newShape tensor.Shape) *tensor.RawTensor {
	if err := newShape.Validate(); err != nil {
		panic(fmt.Sprintf("reshape: invalid shape: %v", err))
	}
	if t.NumElements() != newShape.NumElements() {
		panic(fmt.Sprintf("reshape: incompatible shapes: %v -> %v (different number of elements)",
			t.Shape(), newShape))
	}

	out, err := tensor.NewRaw(newShape, t.DType(), t.Device())
	if err != nil {
		panic(fmt.Sprintf("reshape: %v", err))
	}
	copy(out.Data(), t.Data())
	return out
}

// Transpose permutes the tensor's dimensions. With no axes it reverses
// them all.
func (c *CPUBackend) Transpose(t *tensor.RawTensor, axes ...int) *tensor.RawTensor {
	shape := t.Shape()
	ndim := len(shape)

	if len(axes) == 0 {
		axes = make([]int, ndim)
		for i := range axes {
			axes[i] = ndim - 1 - i
		}
	}
	if len(axes) != ndim {
		panic(fmt.Sprintf("transpose: axes length %d != ndim %d", len(axes), ndim))
	}

	seen := make([]bool, ndim)
	outShape := make(tensor.Shape, ndim)
	for d, ax := range axes {
		if ax < 0 || ax >= ndim {
			panic(fmt.Sprintf("transpose: invalid axis %d for %dD tensor", ax, ndim))
		}
		if seen[ax] {
			panic(fmt.Sprintf("transpose: duplicate axis %d", ax))
		}
		seen[ax] = true
		outShape[d] = shape[ax]
	}

	out, err := tensor.NewRaw(outShape, t.DType(), t.Device())
	if err != nil {
		panic(fmt.Sprintf("transpose: %v", err))
	}

	switch t.DType() {
	case tensor.Float32:
		transposeSpan(out.AsFloat32(), t.AsFloat32(), shape, axes)
	case tensor.Float64:
		transposeSpan(out.AsFloat64(), t.AsFloat64(), shape, axes)
	default:
		panic(fmt.Sprintf("transpose: unsupported dtype %s", t.DType()))
	}

	return out
}
