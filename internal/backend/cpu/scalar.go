package cpu

import (
	"fmt"

	"github.com/elvinmirzazada/StyleTransfer-NerualNet/internal/tensor"
)

// Scalar operations. The scalar's Go type must match the tensor dtype;
// a mismatch is a programming error and fails the type assertion.

// MulScalar returns x * scalar element-wise.
func (c *CPUBackend) MulScalar(x *tensor.RawTensor, scalar any) *tensor.RawTensor {
	out := c.newLike(x, "mulScalar")
	switch x.DType() {
	case tensor.Float32:
		mulScalarSpan(out.AsFloat32(), x.AsFloat32(), scalar.(float32))
	case tensor.Float64:
		mulScalarSpan(out.AsFloat64(), x.AsFloat64(), scalar.(float64))
	default:
		panic(fmt.Sprintf("mulScalar: unsupported dtype %v", x.DType()))
	}
	return out
}

// AddScalar returns x + scalar element-wise.
func (c *CPUBackend) AddScalar(x *tensor.RawTensor, scalar any) *tensor.RawTensor {
	out := c.newLike(x, "addScalar")
	switch x.DType() {
	case tensor.Float32:
		addScalarSpan(out.AsFloat32(), x.AsFloat32(), scalar.(float32))
	case tensor.Float64:
		addScalarSpan(out.AsFloat64(), x.AsFloat64(), scalar.(float64))
	default:
		panic(fmt.Sprintf("addScalar: unsupported dtype %v", x.DType()))
	}
	return out
}

// SubScalar returns x - scalar element-wise.
func (c *CPUBackend) SubScalar(x *tensor.RawTensor, scalar any) *tensor.RawTensor {
	out := c.newLike(x, "subScalar")
	switch x.DType() {
	case tensor.Float32:
		subScalarSpan(out.AsFloat32(), x.AsFloat32(), scalar.(float32))
	case tensor.Float64:
		subScalarSpan(out.AsFloat64(), x.AsFloat64(), scalar.(float64))
	default:
		panic(fmt.Sprintf("subScalar: unsupported dtype %v", x.DType()))
	}
	return out
}

// DivScalar returns x / scalar element-wise.
func (c *CPUBackend) DivScalar(x *tensor.RawTensor, scalar any) *tensor.RawTensor {
	out := c.newLike(x, "divScalar")
	switch x.DType() {
	case tensor.Float32:
		divScalarSpan(out.AsFloat32(), x.AsFloat32(), scalar.(float32))
	case tensor.Float64:
		divScalarSpan(out.AsFloat64(), x.AsFloat64(), scalar.(float64))
	default:
		panic(fmt.Sprintf("divScalar: unsupported dtype %v", x.DType()))
	}
	return out
}
