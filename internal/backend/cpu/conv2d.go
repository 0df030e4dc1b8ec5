package cpu

import (
	"fmt"

	"gonum.org/v1/gonum/blas"
	"gonum.org/v1/gonum/blas/blas32"
	"gonum.org/v1/gonum/blas/blas64"

	"github.com/elvinmirzazada/StyleTransfer-NerualNet/internal/parallel"
	"github.com/elvinmirzazada/StyleTransfer-NerualNet/internal/tensor"
)

// convGeom carries the dimensions of one convolution call.
type convGeom struct {
	batch, inC, h, w int // input  [batch, inC, h, w]
	outC, kh, kw     int // kernel [outC, inC, kh, kw]
	outH, outW       int
	stride, padding  int
}

// Conv2D performs 2D convolution with the im2col algorithm.
//
// Input patches are laid out as rows of a column matrix (in parallel),
// the flattened kernel is multiplied against it with a single GEMM, and
// the product is rearranged into [N, C_out, H_out, W_out]. Turning the
// convolution into one large matrix product is what lets BLAS do the
// heavy lifting.
//
// Reference: "High Performance Convolutional Neural Networks for
// Document Processing" (Chellapilla et al., 2006).
func (c *CPUBackend) Conv2D(input, kernel *tensor.RawTensor, stride, padding int) *tensor.RawTensor {
	g := convGeometry(input, kernel, stride, padding)

	out, err := tensor.NewRaw(tensor.Shape{g.batch, g.outC, g.outH, g.outW}, input.DType(), c.device)
	if err != nil {
		panic(fmt.Sprintf("conv2d: allocating output: %v", err))
	}

	switch input.DType() {
	case tensor.Float32:
		convForward(out.AsFloat32(), input.AsFloat32(), kernel.AsFloat32(), c.par, g, gemmT32)
	case tensor.Float64:
		convForward(out.AsFloat64(), input.AsFloat64(), kernel.AsFloat64(), c.par, g, gemmT64)
	default:
		panic(fmt.Sprintf("conv2d: unsupported dtype %s", input.DType()))
	}

	return out
}

// convGeometry validates the operand shapes and derives the output
// dimensions.
func convGeometry(input, kernel *tensor.RawTensor, stride, padding int) convGeom {
	in, kn := input.Shape(), kernel.Shape()
	if len(in) != 4 {
		panic(fmt.Sprintf("conv2d: input must be 4D [N,C,H,W], got %dD", len(in)))
	}
	if len(kn) != 4 {
		panic(fmt.Sprintf("conv2d: kernel must be 4D [C_out,C_in,K_h,K_w], got %dD", len(kn)))
	}
	if in[1] != kn[1] {
		panic(fmt.Sprintf("conv2d: input channels %d != kernel channels %d", in[1], kn[1]))
	}

	g := convGeom{
		batch: in[0], inC: in[1], h: in[2], w: in[3],
		outC: kn[0], kh: kn[2], kw: kn[3],
		stride: stride, padding: padding,
	}
	g.outH = (g.h+2*padding-g.kh)/stride + 1
	g.outW = (g.w+2*padding-g.kw)/stride + 1

	if g.outH <= 0 || g.outW <= 0 {
		panic(fmt.Sprintf("conv2d: invalid output dimensions: out_h=%d, out_w=%d (check stride/padding)",
			g.outH, g.outW))
	}
	return g
}

// convForward runs im2col, one GEMM, and the layout fix-up. gemmT
// computes dst = a @ b^T for the element type in use.
func convForward[F floatN](dst, src, kernel []F, par parallel.Config, g convGeom, gemmT func(dst, a, b []F, m, k, n int)) {
	colW := g.inC * g.kh * g.kw
	colH := g.batch * g.outH * g.outW
	col := make([]F, colH*colW)
	im2col(col, src, par, g)

	// kernel is [outC, colW] row-major and col^T is [colW, colH], so
	// dst doubles as GEMM scratch in [outC, batch*outH*outW] layout.
	gemmT(dst, kernel, col, g.outC, colW, colH)

	// Swap to [batch, outC, outH, outW]. For a fixed (channel, sample)
	// pair both layouts are contiguous over the spatial plane, so each
	// plane moves with one copy.
	scratch := make([]F, len(dst))
	copy(scratch, dst)

	plane := g.outH * g.outW
	for n := 0; n < g.batch; n++ {
		for oc := 0; oc < g.outC; oc++ {
			from := scratch[oc*colH+n*plane : oc*colH+(n+1)*plane]
			to := dst[(n*g.outC+oc)*plane : (n*g.outC+oc+1)*plane]
			copy(to, from)
		}
	}
}

// im2col lays the input patch of every output position out as one row
// of col. Rows are independent, so chunks of them fill in parallel.
// Out-of-bounds positions read as zero padding.
func im2col[F floatN](col, src []F, par parallel.Config, g convGeom) {
	colW := g.inC * g.kh * g.kw
	rows := g.batch * g.outH * g.outW

	parallel.For(rows, func(row int) {
		n := row / (g.outH * g.outW)
		rem := row % (g.outH * g.outW)
		oy := rem / g.outW
		ox := rem % g.outW

		top := oy*g.stride - g.padding
		left := ox*g.stride - g.padding

		at := row * colW
		for ic := 0; ic < g.inC; ic++ {
			for ky := 0; ky < g.kh; ky++ {
				for kx := 0; kx < g.kw; kx++ {
					y, x := top+ky, left+kx
					if y >= 0 && y < g.h && x >= 0 && x < g.w {
						col[at] = src[((n*g.inC+ic)*g.h+y)*g.w+x]
					} else {
						col[at] = 0
					}
					at++
				}
			}
		}
	}, par)
}

// gemmT32 computes dst = a @ b^T with SGEMM, a [m×k] and b [n×k] both
// dense row-major.
func gemmT32(dst, a, b []float32, m, k, n int) {
	blas32.Gemm(blas.NoTrans, blas.Trans, 1,
		blas32.General{Rows: m, Cols: k, Stride: k, Data: a},
		blas32.General{Rows: n, Cols: k, Stride: k, Data: b},
		0,
		blas32.General{Rows: m, Cols: n, Stride: n, Data: dst})
}

func gemmT64(dst, a, b []float64, m, k, n int) {
	blas64.Gemm(blas.NoTrans, blas.Trans, 1,
		blas64.General{Rows: m, Cols: k, Stride: k, Data: a},
		blas64.General{Rows: n, Cols: k, Stride: k, Data: b},
		0,
		blas64.General{Rows: m, Cols: n, Stride: n, Data: dst})
}
