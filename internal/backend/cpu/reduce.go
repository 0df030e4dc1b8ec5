package cpu

import (
	"fmt"

	"github.com/elvinmirzazada/StyleTransfer-NerualNet/internal/tensor"
)

// Sum reduces x to its total, returned as a shape {1} tensor.
func (c *CPUBackend) Sum(x *tensor.RawTensor) *tensor.RawTensor {
	out, err := tensor.NewRaw(tensor.Shape{1}, x.DType(), c.device)
	if err != nil {
		panic(fmt.Sprintf("sum: %v", err))
	}

	switch x.DType() {
	case tensor.Float32:
		out.AsFloat32()[0] = sumSpan(x.AsFloat32())
	case tensor.Float64:
		out.AsFloat64()[0] = sumSpan(x.AsFloat64())
	default:
		panic(fmt.Sprintf("sum: unsupported dtype %s", x.DType()))
	}

	return out
}

// Mean reduces x to its average, returned as a shape {1} tensor.
func (c *CPUBackend) Mean(x *tensor.RawTensor) *tensor.RawTensor {
	n := x.NumElements()
	if n == 0 {
		panic("mean: empty tensor")
	}

	out := c.Sum(x)
	switch out.DType() {
	case tensor.Float32:
		out.AsFloat32()[0] /= float32(n)
	case tensor.Float64:
		out.AsFloat64()[0] /= float64(n)
	}
	return out
}
