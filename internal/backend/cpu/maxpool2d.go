package cpu

import (
	"fmt"

	"github.com/elvinmirzazada/StyleTransfer-NerualNet/internal/parallel"
	"github.com/elvinmirzazada/StyleTransfer-NerualNet/internal/tensor"
)

// poolGeom carries the dimensions of one pooling call.
type poolGeom struct {
	batch, chans, h, w int
	outH, outW         int
	kernel, stride     int
}

// MaxPool2D reduces the spatial dimensions by taking the maximum of
// each window:
//
//	out_h = (h - kernelSize) / stride + 1
//	out_w = (w - kernelSize) / stride + 1
//
// Windows never cross (batch, channel) planes, so planes are processed
// in parallel.
//
// Example (2x2 window, stride 2):
//
//	[[1,2,3,4],          [[6,8],
//	 [5,6,7,8],      ->   [14,16]]
//	 [9,10,11,12],
//	 [13,14,15,16]]
func (c *CPUBackend) MaxPool2D(input *tensor.RawTensor, kernelSize, stride int) *tensor.RawTensor {
	in := input.Shape()
	if len(in) != 4 {
		panic(fmt.Sprintf("maxpool2d: expected 4D input [N,C,H,W], got %dD", len(in)))
	}
	if kernelSize <= 0 {
		panic(fmt.Sprintf("maxpool2d: invalid kernel size %d", kernelSize))
	}
	if stride <= 0 {
		panic(fmt.Sprintf("maxpool2d: invalid stride %d", stride))
	}
	if kernelSize > in[2] || kernelSize > in[3] {
		panic(fmt.Sprintf("maxpool2d: kernel size %d too large for input %dx%d", kernelSize, in[2], in[3]))
	}

	g := poolGeom{
		batch: in[0], chans: in[1], h: in[2], w: in[3],
		kernel: kernelSize, stride: stride,
	}
	g.outH = (g.h-kernelSize)/stride + 1
	g.outW = (g.w-kernelSize)/stride + 1

	out, err := tensor.NewRaw(tensor.Shape{g.batch, g.chans, g.outH, g.outW}, input.DType(), c.device)
	if err != nil {
		panic(fmt.Sprintf("maxpool2d: allocating output: %v", err))
	}

	switch input.DType() {
	case tensor.Float32:
		poolForward(out.AsFloat32(), input.AsFloat32(), c.par, g)
	case tensor.Float64:
		poolForward(out.AsFloat64(), input.AsFloat64(), c.par, g)
	default:
		panic(fmt.Sprintf("maxpool2d: unsupported dtype %v", input.DType()))
	}

	return out
}

// poolForward scans each window for its maximum. The running best is
// seeded from the window's first element, so no sentinel value is
// needed and arbitrarily negative inputs pool correctly.
func poolForward[F floatN](dst, src []F, par parallel.Config, g poolGeom) {
	parallel.ForBatch(g.batch, g.chans, func(n, ch int) {
		srcAt := (n*g.chans + ch) * g.h * g.w
		plane := src[srcAt : srcAt+g.h*g.w]

		dstAt := (n*g.chans + ch) * g.outH * g.outW
		outPlane := dst[dstAt : dstAt+g.outH*g.outW]

		for oy := 0; oy < g.outH; oy++ {
			top := oy * g.stride

			for ox := 0; ox < g.outW; ox++ {
				left := ox * g.stride

				best := plane[top*g.w+left]
				for ky := 0; ky < g.kernel; ky++ {
					row := plane[(top+ky)*g.w : (top+ky)*g.w+g.w]
					for kx := 0; kx < g.kernel; kx++ {
						if v := row[left+kx]; v > best {
							best = v
						}
					}
				}

				outPlane[oy*g.outW+ox] = best
			}
		}
	}, par)
}
