package cpu

import (
	"github.com/elvinmirzazada/StyleTransfer-NerualNet/internal/tensor"
)

// floatN constrains kernels to the element types tensors can hold.
// Each instantiation compiles to a specialized loop, so the generic
// kernels cost nothing over hand-written float32/float64 twins.
type floatN interface {
	float32 | float64
}

// Dense kernels. Operands share one shape, so the loops run straight
// through the backing slices.

func addSpans[F floatN](dst, a, b []F) {
	for i := range dst {
		dst[i] = a[i] + b[i]
	}
}

func subSpans[F floatN](dst, a, b []F) {
	for i := range dst {
		dst[i] = a[i] - b[i]
	}
}

func mulSpans[F floatN](dst, a, b []F) {
	for i := range dst {
		dst[i] = a[i] * b[i]
	}
}

func divSpans[F floatN](dst, a, b []F) {
	for i := range dst {
		dst[i] = a[i] / b[i]
	}
}

// Broadcast kernels. The plan maps each flat output index onto both
// operands in a single stride walk.

func addBroadcast[F floatN](dst, a, b []F, plan broadcastPlan) {
	for i := range dst {
		ai, bi := plan.source(i)
		dst[i] = a[ai] + b[bi]
	}
}

func subBroadcast[F floatN](dst, a, b []F, plan broadcastPlan) {
	for i := range dst {
		ai, bi := plan.source(i)
		dst[i] = a[ai] - b[bi]
	}
}

func mulBroadcast[F floatN](dst, a, b []F, plan broadcastPlan) {
	for i := range dst {
		ai, bi := plan.source(i)
		dst[i] = a[ai] * b[bi]
	}
}

func divBroadcast[F floatN](dst, a, b []F, plan broadcastPlan) {
	for i := range dst {
		ai, bi := plan.source(i)
		dst[i] = a[ai] / b[bi]
	}
}

// Scalar kernels.

func mulScalarSpan[F floatN](dst, src []F, s F) {
	for i, v := range src {
		dst[i] = v * s
	}
}

func addScalarSpan[F floatN](dst, src []F, s F) {
	for i, v := range src {
		dst[i] = v + s
	}
}

func subScalarSpan[F floatN](dst, src []F, s F) {
	for i, v := range src {
		dst[i] = v - s
	}
}

func divScalarSpan[F floatN](dst, src []F, s F) {
	for i, v := range src {
		dst[i] = v / s
	}
}

// reluSpan writes max(0, v). dst starts zeroed, so only positive
// entries need a store.
func reluSpan[F floatN](dst, src []F) {
	for i, v := range src {
		if v > 0 {
			dst[i] = v
		}
	}
}

// sumSpan accumulates in the element type, matching what a caller
// doing the same reduction by hand would get.
func sumSpan[F floatN](src []F) F {
	var total F
	for _, v := range src {
		total += v
	}
	return total
}

// transposeSpan copies src into dst with dimensions permuted by axes.
// The source coordinate advances like an odometer; the destination
// index is recomposed through the permuted strides.
func transposeSpan[F floatN](dst, src []F, shape tensor.Shape, axes []int) {
	outShape := make(tensor.Shape, len(shape))
	for d, ax := range axes {
		outShape[d] = shape[ax]
	}
	outStrides := outShape.ComputeStrides()

	coord := make([]int, len(shape))
	for _, v := range src {
		at := 0
		for d, ax := range axes {
			at += coord[ax] * outStrides[d]
		}
		dst[at] = v
		advance(coord, shape)
	}
}

// advance steps coord to the next position in row-major order.
func advance(coord []int, shape tensor.Shape) {
	for d := len(coord) - 1; d >= 0; d-- {
		coord[d]++
		if coord[d] < shape[d] {
			return
		}
		coord[d] = 0
	}
}
