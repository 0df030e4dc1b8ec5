package ops

import (
	"fmt"

	"github.com/elvinmirzazada/StyleTransfer-NerualNet/internal/tensor"
)

// reduceBroadcast conforms a gradient tensor to the target shape. Needed when
// broadcasting was used in the forward pass: the gradient of a broadcast input
// is the output gradient summed over the broadcast dimensions. A scalar
// gradient goes the other way and is replicated across the target.
//
// Example:
//
//	Forward: a[1,C,1,1] + b[1,C,H,W] -> c[1,C,H,W]  (a broadcast over H,W)
//	Backward: grad_c[1,C,H,W] -> grad_a[1,C,1,1]    (sum over H and W)
func reduceBroadcast(grad *tensor.RawTensor, targetShape tensor.Shape, backend tensor.Backend) *tensor.RawTensor {
	gradShape := grad.Shape()

	// Shapes already match: clone so the returned gradient is a distinct
	// tensor identity (the tape keys gradients by identity).
	if gradShape.Equal(targetShape) {
		return grad.Clone()
	}

	result, err := tensor.NewRaw(targetShape, grad.DType(), grad.Device())
	if err != nil {
		panic(fmt.Sprintf("reduce broadcast: %v", err))
	}

	// A single-element gradient fills the target.
	if grad.NumElements() == 1 {
		switch grad.DType() {
		case tensor.Float32:
			v := grad.AsFloat32()[0]
			dst := result.AsFloat32()
			for i := range dst {
				dst[i] = v
			}
		case tensor.Float64:
			v := grad.AsFloat64()[0]
			dst := result.AsFloat64()
			for i := range dst {
				dst[i] = v
			}
		default:
			panic(fmt.Sprintf("reduce broadcast: unsupported dtype %s", grad.DType()))
		}
		return result
	}

	// Map every gradient element onto its target slot. Dimensions the target
	// lacks, or holds with size 1, contribute stride 0: their coordinates
	// collapse and the elements accumulate.
	gradStrides := gradShape.ComputeStrides()
	targetStrides := targetShape.ComputeStrides()
	offset := len(gradShape) - len(targetShape)

	collapse := make([]int, len(gradShape))
	for d := range gradShape {
		td := d - offset
		if td >= 0 && targetShape[td] != 1 {
			collapse[d] = targetStrides[td]
		}
	}

	switch grad.DType() {
	case tensor.Float32:
		accumulateCollapsedFloat32(result.AsFloat32(), grad.AsFloat32(), gradStrides, collapse)
	case tensor.Float64:
		accumulateCollapsedFloat64(result.AsFloat64(), grad.AsFloat64(), gradStrides, collapse)
	default:
		panic(fmt.Sprintf("reduce broadcast: unsupported dtype %s", grad.DType()))
	}

	return result
}

func accumulateCollapsedFloat32(dst, src []float32, srcStrides, collapse []int) {
	for i, v := range src {
		rem := i
		dstIdx := 0
		for d, stride := range srcStrides {
			coord := rem / stride
			rem %= stride
			dstIdx += coord * collapse[d]
		}
		dst[dstIdx] += v
	}
}

//nolint:dupl // float64 twin of the float32 kernel
func accumulateCollapsedFloat64(dst, src []float64, srcStrides, collapse []int) {
	for i, v := range src {
		rem := i
		dstIdx := 0
		for d, stride := range srcStrides {
			coord := rem / stride
			rem %= stride
			dstIdx += coord * collapse[d]
		}
		dst[dstIdx] += v
	}
}

// negate returns -grad.
func negate(grad *tensor.RawTensor, backend tensor.Backend) *tensor.RawTensor {
	switch grad.DType() {
	case tensor.Float32:
		return backend.MulScalar(grad, float32(-1))
	case tensor.Float64:
		return backend.MulScalar(grad, float64(-1))
	default:
		panic(fmt.Sprintf("negate: unsupported dtype %s", grad.DType()))
	}
}

// scalarFor converts a float64 factor to the scalar type the backend expects
// for the given dtype.
func scalarFor(dtype tensor.DataType, v float64) any {
	switch dtype {
	case tensor.Float32:
		return float32(v)
	case tensor.Float64:
		return v
	default:
		panic(fmt.Sprintf("scalar conversion: unsupported dtype %s", dtype))
	}
}
