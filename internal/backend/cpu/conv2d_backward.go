package cpu

import (
	"fmt"

	"github.com/elvinmirzazada/StyleTransfer-NerualNet/internal/parallel"
	"github.com/elvinmirzazada/StyleTransfer-NerualNet/internal/tensor"
)

// Conv2DInputBackward computes the gradient with respect to the
// convolution input (a transposed convolution).
//
// Each output gradient is scattered back across the receptive field it
// came from, weighted by the kernel. Goroutines own whole (batch,
// input-channel) planes of the result, so the scatters never collide;
// with batch size 1 the channel dimension still provides plenty of
// parallelism.
//
// Reference: "A guide to convolution arithmetic for deep learning"
// (Dumoulin & Visin, 2016).
func (c *CPUBackend) Conv2DInputBackward(input, kernel, grad *tensor.RawTensor, stride, padding int) *tensor.RawTensor {
	g := backwardGeometry(input, kernel, grad, stride, padding)

	out, err := tensor.NewRaw(input.Shape(), grad.DType(), c.device)
	if err != nil {
		panic(fmt.Sprintf("Conv2DInputBackward: allocating gradient: %v", err))
	}

	switch grad.DType() {
	case tensor.Float32:
		convInputBackward(out.AsFloat32(), grad.AsFloat32(), kernel.AsFloat32(), c.par, g)
	case tensor.Float64:
		convInputBackward(out.AsFloat64(), grad.AsFloat64(), kernel.AsFloat64(), c.par, g)
	default:
		panic("Conv2DInputBackward: unsupported dtype")
	}

	return out
}

// Conv2DKernelBackward computes the gradient with respect to the
// convolution kernel.
//
// For every kernel weight it accumulates input[h, w] * grad[oy, ox]
// over all samples and output positions that touched the weight.
// Goroutines own whole output-channel slabs of the result.
func (c *CPUBackend) Conv2DKernelBackward(input, kernel, grad *tensor.RawTensor, stride, padding int) *tensor.RawTensor {
	g := backwardGeometry(input, kernel, grad, stride, padding)

	out, err := tensor.NewRaw(kernel.Shape(), grad.DType(), c.device)
	if err != nil {
		panic(fmt.Sprintf("Conv2DKernelBackward: allocating gradient: %v", err))
	}

	switch grad.DType() {
	case tensor.Float32:
		convKernelBackward(out.AsFloat32(), grad.AsFloat32(), input.AsFloat32(), c.par, g)
	case tensor.Float64:
		convKernelBackward(out.AsFloat64(), grad.AsFloat64(), input.AsFloat64(), c.par, g)
	default:
		panic("Conv2DKernelBackward: unsupported dtype")
	}

	return out
}

// backwardGeometry reads the output dimensions off the gradient shape;
// the forward pass already validated the operands.
func backwardGeometry(input, kernel, grad *tensor.RawTensor, stride, padding int) convGeom {
	in, kn, gs := input.Shape(), kernel.Shape(), grad.Shape()
	return convGeom{
		batch: in[0], inC: in[1], h: in[2], w: in[3],
		outC: kn[0], kh: kn[2], kw: kn[3],
		outH: gs[2], outW: gs[3],
		stride: stride, padding: padding,
	}
}

//nolint:gocognit // loop nest inherent to convolution backprop
func convInputBackward[F floatN](dst, gradv, kernel []F, par parallel.Config, g convGeom) {
	parallel.ForBatch(g.batch, g.inC, func(n, ic int) {
		planeAt := (n*g.inC + ic) * g.h * g.w
		plane := dst[planeAt : planeAt+g.h*g.w]

		for oc := 0; oc < g.outC; oc++ {
			gradAt := (n*g.outC + oc) * g.outH * g.outW
			gplane := gradv[gradAt : gradAt+g.outH*g.outW]

			kernAt := (oc*g.inC + ic) * g.kh * g.kw
			win := kernel[kernAt : kernAt+g.kh*g.kw]

			for oy := 0; oy < g.outH; oy++ {
				for ox := 0; ox < g.outW; ox++ {
					gv := gplane[oy*g.outW+ox]
					if gv == 0 {
						continue
					}

					for ky := 0; ky < g.kh; ky++ {
						y := oy*g.stride - g.padding + ky
						if y < 0 || y >= g.h {
							continue
						}
						for kx := 0; kx < g.kw; kx++ {
							x := ox*g.stride - g.padding + kx
							if x < 0 || x >= g.w {
								continue
							}
							plane[y*g.w+x] += gv * win[ky*g.kw+kx]
						}
					}
				}
			}
		}
	}, par)
}

//nolint:gocognit // loop nest inherent to convolution backprop
func convKernelBackward[F floatN](dst, gradv, src []F, par parallel.Config, g convGeom) {
	parallel.For(g.outC, func(oc int) {
		slabAt := oc * g.inC * g.kh * g.kw
		slab := dst[slabAt : slabAt+g.inC*g.kh*g.kw]

		for n := 0; n < g.batch; n++ {
			gradAt := (n*g.outC + oc) * g.outH * g.outW
			gplane := gradv[gradAt : gradAt+g.outH*g.outW]

			for ic := 0; ic < g.inC; ic++ {
				srcAt := (n*g.inC + ic) * g.h * g.w
				plane := src[srcAt : srcAt+g.h*g.w]

				for ky := 0; ky < g.kh; ky++ {
					for kx := 0; kx < g.kw; kx++ {
						var sum F

						for oy := 0; oy < g.outH; oy++ {
							y := oy*g.stride - g.padding + ky
							if y < 0 || y >= g.h {
								continue
							}
							for ox := 0; ox < g.outW; ox++ {
								x := ox*g.stride - g.padding + kx
								if x < 0 || x >= g.w {
									continue
								}
								sum += plane[y*g.w+x] * gplane[oy*g.outW+ox]
							}
						}

						slab[ic*g.kh*g.kw+ky*g.kw+kx] += sum
					}
				}
			}
		}
	}, par)
}
