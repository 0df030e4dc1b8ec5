// Package autodiff layers reverse-mode automatic differentiation over
// any tensor.Backend.
//
// AutodiffBackend intercepts each forward operation, delegates the
// arithmetic to the inner backend, and logs an ops.Operation carrying
// whatever state the backward pass will need. Backward then walks the
// log in reverse, applying the chain rule and accumulating gradients
// per tensor.
//
// Tensors marked constant on the tape accumulate no gradient. Gradients
// still flow through them, which is what lets a frozen network guide
// the optimization of its input while its own weights stay untouched.
//
//	ad := autodiff.New(cpu.New())
//	x, _ := tensor.FromSlice([]float32{2}, tensor.Shape{1}, ad)
//	ad.Tape().StartRecording()
//	y := x.Mul(x)
//	grads := autodiff.Backward(y, ad) // dy/dx = 2x = [4]
package autodiff

import (
	"fmt"

	"github.com/elvinmirzazada/StyleTransfer-NerualNet/internal/autodiff/ops"
	"github.com/elvinmirzazada/StyleTransfer-NerualNet/internal/tensor"
)

// AutodiffBackend decorates an inner Backend with operation recording.
// It satisfies tensor.Backend itself, so tensors built on it route every
// operation through the tape.
type AutodiffBackend[B tensor.Backend] struct {
	inner B
	tape  *GradientTape
}

// New wraps the given backend with a fresh gradient tape.
func New[B tensor.Backend](backend B) *AutodiffBackend[B] {
	return &AutodiffBackend[B]{inner: backend, tape: NewGradientTape()}
}

// Tape exposes the gradient tape: start or stop recording, clear it
// between iterations, mark frozen weights constant.
func (ad *AutodiffBackend[B]) Tape() *GradientTape { return ad.tape }

// Inner returns the wrapped backend.
func (ad *AutodiffBackend[B]) Inner() B { return ad.inner }

// NoGrad runs fn with recording suspended and restores the previous
// recording state afterwards, also on panic. Nesting is safe. Meant for
// work that must stay off the tape, like denormalizing a snapshot of
// the image being optimized in the middle of a training loop.
func (ad *AutodiffBackend[B]) NoGrad(fn func()) {
	if !ad.tape.IsRecording() {
		fn()
		return
	}
	ad.tape.StopRecording()
	defer ad.tape.StartRecording()
	fn()
}

// Name returns the backend name.
func (ad *AutodiffBackend[B]) Name() string {
	return "Autodiff(" + ad.inner.Name() + ")"
}

// Device returns the compute device.
func (ad *AutodiffBackend[B]) Device() tensor.Device {
	return ad.inner.Device()
}

// traceUnary runs apply with x's refcount pinned and logs the operation
// built by describe when the tape is recording.
//
// The pin matters: the tape keys gradients by tensor identity, and a
// pinned refcount makes IsUnique report false during the inner call,
// which blocks any in-place path that would alias input and output.
func (ad *AutodiffBackend[B]) traceUnary(
	x *tensor.RawTensor,
	apply func() *tensor.RawTensor,
	describe func(out *tensor.RawTensor) ops.Operation,
) *tensor.RawTensor {
	defer x.ForceNonUnique()()

	out := apply()
	if ad.tape.IsRecording() {
		ad.tape.Record(describe(out))
	}
	return out
}

// traceBinary is traceUnary for operations with two operands.
func (ad *AutodiffBackend[B]) traceBinary(
	x, y *tensor.RawTensor,
	apply func() *tensor.RawTensor,
	describe func(out *tensor.RawTensor) ops.Operation,
) *tensor.RawTensor {
	defer x.ForceNonUnique()()
	defer y.ForceNonUnique()()

	out := apply()
	if ad.tape.IsRecording() {
		ad.tape.Record(describe(out))
	}
	return out
}

// Add returns a + b and records the operation.
func (ad *AutodiffBackend[B]) Add(a, b *tensor.RawTensor) *tensor.RawTensor {
	return ad.traceBinary(a, b,
		func() *tensor.RawTensor { return ad.inner.Add(a, b) },
		func(out *tensor.RawTensor) ops.Operation { return ops.NewAddOp(a, b, out) })
}

// Sub returns a - b and records the operation.
func (ad *AutodiffBackend[B]) Sub(a, b *tensor.RawTensor) *tensor.RawTensor {
	return ad.traceBinary(a, b,
		func() *tensor.RawTensor { return ad.inner.Sub(a, b) },
		func(out *tensor.RawTensor) ops.Operation { return ops.NewSubOp(a, b, out) })
}

// Mul returns a * b element-wise and records the operation.
func (ad *AutodiffBackend[B]) Mul(a, b *tensor.RawTensor) *tensor.RawTensor {
	return ad.traceBinary(a, b,
		func() *tensor.RawTensor { return ad.inner.Mul(a, b) },
		func(out *tensor.RawTensor) ops.Operation { return ops.NewMulOp(a, b, out) })
}

// Div returns a / b element-wise and records the operation.
func (ad *AutodiffBackend[B]) Div(a, b *tensor.RawTensor) *tensor.RawTensor {
	return ad.traceBinary(a, b,
		func() *tensor.RawTensor { return ad.inner.Div(a, b) },
		func(out *tensor.RawTensor) ops.Operation { return ops.NewDivOp(a, b, out) })
}

// MatMul returns a @ b and records the operation.
func (ad *AutodiffBackend[B]) MatMul(a, b *tensor.RawTensor) *tensor.RawTensor {
	return ad.traceBinary(a, b,
		func() *tensor.RawTensor { return ad.inner.MatMul(a, b) },
		func(out *tensor.RawTensor) ops.Operation { return ops.NewMatMulOp(a, b, out) })
}

// Conv2D convolves input with kernel and records the operation.
//
// A kernel marked constant records a kernel-fixed operation whose
// backward pass produces only the input gradient. For a frozen network
// this skips the most expensive backward kernel entirely.
func (ad *AutodiffBackend[B]) Conv2D(input, kernel *tensor.RawTensor, stride, padding int) *tensor.RawTensor {
	return ad.traceBinary(input, kernel,
		func() *tensor.RawTensor { return ad.inner.Conv2D(input, kernel, stride, padding) },
		func(out *tensor.RawTensor) ops.Operation {
			return ops.NewConv2DOp(input, kernel, out, stride, padding, ad.tape.IsConstant(kernel))
		})
}

// MaxPool2D pools input and records the operation. The operation
// captures the argmax positions up front; the backward pass routes
// gradients only to those positions.
func (ad *AutodiffBackend[B]) MaxPool2D(input *tensor.RawTensor, kernelSize, stride int) *tensor.RawTensor {
	return ad.traceUnary(input,
		func() *tensor.RawTensor { return ad.inner.MaxPool2D(input, kernelSize, stride) },
		func(out *tensor.RawTensor) ops.Operation {
			return ops.NewMaxPool2DOp(input, out, kernelSize, stride)
		})
}

// Conv2DInputBackward delegates to the wrapped backend. Backward kernels
// are gradient computations themselves and never land on the tape.
func (ad *AutodiffBackend[B]) Conv2DInputBackward(input, kernel, grad *tensor.RawTensor, stride, padding int) *tensor.RawTensor {
	return ad.inner.Conv2DInputBackward(input, kernel, grad, stride, padding)
}

// Conv2DKernelBackward delegates to the wrapped backend.
func (ad *AutodiffBackend[B]) Conv2DKernelBackward(input, kernel, grad *tensor.RawTensor, stride, padding int) *tensor.RawTensor {
	return ad.inner.Conv2DKernelBackward(input, kernel, grad, stride, padding)
}

// MaxPool2DBackward delegates to the wrapped backend.
func (ad *AutodiffBackend[B]) MaxPool2DBackward(input, grad *tensor.RawTensor, maxIndices []int, kernelSize, stride int) *tensor.RawTensor {
	return ad.inner.MaxPool2DBackward(input, grad, maxIndices, kernelSize, stride)
}

// ReLU applies max(x, 0) and records the operation.
func (ad *AutodiffBackend[B]) ReLU(x *tensor.RawTensor) *tensor.RawTensor {
	return ad.traceUnary(x,
		func() *tensor.RawTensor { return ad.inner.ReLU(x) },
		func(out *tensor.RawTensor) ops.Operation { return ops.NewReLUOp(x, out) })
}

// Reshape changes the shape and records the operation. The backend hands
// back a new tensor identity, so without recording, a gradient computed
// for the reshaped tensor would never reach the original.
func (ad *AutodiffBackend[B]) Reshape(t *tensor.RawTensor, newShape tensor.Shape) *tensor.RawTensor {
	return ad.traceUnary(t,
		func() *tensor.RawTensor { return ad.inner.Reshape(t, newShape) },
		func(out *tensor.RawTensor) ops.Operation { return ops.NewReshapeOp(t, out) })
}

// Transpose permutes axes and records the operation. Recording is what
// lets the gradient of the permuted tensor propagate to the original,
// as in the Gram product
//
//	features -> Transpose -> MatMul(features, featuresT)
func (ad *AutodiffBackend[B]) Transpose(t *tensor.RawTensor, axes ...int) *tensor.RawTensor {
	if len(axes) == 0 {
		// Default permutation reverses the axes.
		axes = make([]int, len(t.Shape()))
		for i := range axes {
			axes[i] = len(axes) - 1 - i
		}
	}
	return ad.traceUnary(t,
		func() *tensor.RawTensor { return ad.inner.Transpose(t, axes...) },
		func(out *tensor.RawTensor) ops.Operation { return ops.NewTransposeOp(t, out, axes) })
}

// MulScalar scales x and records the factor.
func (ad *AutodiffBackend[B]) MulScalar(x *tensor.RawTensor, scalar any) *tensor.RawTensor {
	return ad.traceUnary(x,
		func() *tensor.RawTensor { return ad.inner.MulScalar(x, scalar) },
		func(out *tensor.RawTensor) ops.Operation { return ops.NewScaleOp(x, out, factorOf(scalar)) })
}

// AddScalar shifts x by a constant. A shift passes the gradient through
// unchanged, hence the factor-1 record.
func (ad *AutodiffBackend[B]) AddScalar(x *tensor.RawTensor, scalar any) *tensor.RawTensor {
	return ad.traceUnary(x,
		func() *tensor.RawTensor { return ad.inner.AddScalar(x, scalar) },
		func(out *tensor.RawTensor) ops.Operation { return ops.NewScaleOp(x, out, 1) })
}

// SubScalar shifts x by a negated constant, recorded like AddScalar.
func (ad *AutodiffBackend[B]) SubScalar(x *tensor.RawTensor, scalar any) *tensor.RawTensor {
	return ad.traceUnary(x,
		func() *tensor.RawTensor { return ad.inner.SubScalar(x, scalar) },
		func(out *tensor.RawTensor) ops.Operation { return ops.NewScaleOp(x, out, 1) })
}

// DivScalar scales x by a reciprocal and records that factor.
func (ad *AutodiffBackend[B]) DivScalar(x *tensor.RawTensor, scalar any) *tensor.RawTensor {
	return ad.traceUnary(x,
		func() *tensor.RawTensor { return ad.inner.DivScalar(x, scalar) },
		func(out *tensor.RawTensor) ops.Operation { return ops.NewScaleOp(x, out, 1/factorOf(scalar)) })
}

// Sum reduces x to one element and records the operation.
func (ad *AutodiffBackend[B]) Sum(x *tensor.RawTensor) *tensor.RawTensor {
	return ad.traceUnary(x,
		func() *tensor.RawTensor { return ad.inner.Sum(x) },
		func(out *tensor.RawTensor) ops.Operation { return ops.NewSumOp(x, out) })
}

// Mean reduces x to one element and records the operation.
func (ad *AutodiffBackend[B]) Mean(x *tensor.RawTensor) *tensor.RawTensor {
	return ad.traceUnary(x,
		func() *tensor.RawTensor { return ad.inner.Mean(x) },
		func(out *tensor.RawTensor) ops.Operation { return ops.NewMeanOp(x, out) })
}

// factorOf widens a backend scalar argument into a ScaleOp factor.
func factorOf(scalar any) float64 {
	switch v := scalar.(type) {
	case float32:
		return float64(v)
	case float64:
		return v
	default:
		panic(fmt.Sprintf("autodiff: unsupported scalar type %T", scalar))
	}
}
