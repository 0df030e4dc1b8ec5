package cpu

import (
	"fmt"

	"github.com/elvinmirzazada/StyleTransfer-NerualNet/internal/tensor"
)

// ReLU returns max(0, x) element-wise.
func (c *CPUBackend) ReLU(x *tensor.RawTensor) *tensor.RawTensor {
	out := c.newLike(x, "relu")
	switch x.DType() {
	case tensor.Float32:
		reluSpan(out.AsFloat32(), x.AsFloat32())
	case tensor.Float64:
		reluSpan(out.AsFloat64(), x.AsFloat64())
	default:
		panic(fmt.Sprintf("relu: unsupported dtype %s", x.DType()))
	}
	return out
}
