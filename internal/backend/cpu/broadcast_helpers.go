package cpu

import (
	"github.com/elvinmirzazada/StyleTransfer-NerualNet/internal/tensor"
)

// broadcastPlan precomputes the stride tables that map a flat output
// index onto two broadcast operands.
type broadcastPlan struct {
	out []int // output strides
	a   []int // operand strides, 0 where the operand repeats
	b   []int
}

func planBroadcast(aShape, bShape, outShape tensor.Shape) broadcastPlan {
	return broadcastPlan{
		out: outShape.ComputeStrides(),
		a:   broadcastStrides(aShape, outShape),
		b:   broadcastStrides(bShape, outShape),
	}
}

// source decomposes a flat output index and recomposes it against each
// operand's stride table in the same pass.
func (p broadcastPlan) source(i int) (ai, bi int) {
	for d, stride := range p.out {
		c := i / stride
		i %= stride
		ai += c * p.a[d]
		bi += c * p.b[d]
	}
	return ai, bi
}

// broadcastStrides returns strides at the output rank for in. A
// dimension contributes stride 0 when the operand repeats along it,
// either because its size there is 1 or because the dimension was
// left-padded on.
func broadcastStrides(in, out tensor.Shape) []int {
	strides := make([]int, len(out))
	pad := len(out) - len(in)
	inStrides := in.ComputeStrides()

	for d := range out {
		src := d - pad
		if src < 0 || in[src] == 1 {
			continue
		}
		strides[d] = inStrides[src]
	}
	return strides
}
