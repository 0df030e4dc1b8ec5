package cpu

import (
	"fmt"

	"github.com/elvinmirzazada/StyleTransfer-NerualNet/internal/parallel"
	"github.com/elvinmirzazada/StyleTransfer-NerualNet/internal/tensor"
)

// MaxPool2DBackward routes gradients back through max pooling.
//
// Only the position that won each window receives gradient; the rest
// of the window gets zero. maxIndices holds the flat input index of
// the winner for every output position, recorded in the forward pass.
// A winner always lies in the same (batch, channel) plane as its
// output, so planes are routed in parallel without write conflicts.
func (c *CPUBackend) MaxPool2DBackward(input, grad *tensor.RawTensor, maxIndices []int, kernelSize, stride int) *tensor.RawTensor {
	in, gs := input.Shape(), grad.Shape()
	batch, chans := in[0], in[1]
	plane := gs[2] * gs[3]

	out, err := tensor.NewRaw(in, grad.DType(), c.device)
	if err != nil {
		panic(fmt.Sprintf("MaxPool2DBackward: allocating gradient: %v", err))
	}

	if want := batch * chans * plane; len(maxIndices) != want {
		panic(fmt.Sprintf("MaxPool2DBackward: maxIndices length %d != expected %d", len(maxIndices), want))
	}

	switch grad.DType() {
	case tensor.Float32:
		poolBackward(out.AsFloat32(), grad.AsFloat32(), maxIndices, c.par, batch, chans, plane)
	case tensor.Float64:
		poolBackward(out.AsFloat64(), grad.AsFloat64(), maxIndices, c.par, batch, chans, plane)
	default:
		panic("MaxPool2DBackward: unsupported dtype")
	}

	return out
}

func poolBackward[F floatN](dst, gradv []F, winners []int, par parallel.Config, batch, chans, plane int) {
	parallel.ForBatch(batch, chans, func(n, ch int) {
		base := (n*chans + ch) * plane
		for i := base; i < base+plane; i++ {
			dst[winners[i]] += gradv[i]
		}
	}, par)
}
