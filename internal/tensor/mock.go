package tensor

import (
	"fmt"
	"math"
)

// MockBackend is a reference implementation of Backend for tests.
// Every operation is written as plainly as possible and promotes values
// to float64 internally, so results can be cross-checked against the
// optimized kernels without sharing any code with them.
type MockBackend struct{}

var _ Backend = (*MockBackend)(nil)

// NewMockBackend creates a new MockBackend.
func NewMockBackend() *MockBackend {
	return &MockBackend{}
}

// Name returns the backend name.
func (m *MockBackend) Name() string { return "mock" }

// Device returns the device type.
func (m *MockBackend) Device() Device { return CPU }

// Add returns a + b with broadcasting.
func (m *MockBackend) Add(a, b *RawTensor) *RawTensor {
	return m.zip(a, b, func(x, y float64) float64 { return x + y })
}

// Sub returns a - b with broadcasting.
func (m *MockBackend) Sub(a, b *RawTensor) *RawTensor {
	return m.zip(a, b, func(x, y float64) float64 { return x - y })
}

// Mul returns a * b element-wise with broadcasting.
func (m *MockBackend) Mul(a, b *RawTensor) *RawTensor {
	return m.zip(a, b, func(x, y float64) float64 { return x * y })
}

// Div returns a / b element-wise with broadcasting.
func (m *MockBackend) Div(a, b *RawTensor) *RawTensor {
	return m.zip(a, b, func(x, y float64) float64 { return x / y })
}

// zip applies op pairwise over the broadcast of a and b. The output
// coordinate is walked like an odometer and mapped onto each operand.
func (m *MockBackend) zip(a, b *RawTensor, op func(x, y float64) float64) *RawTensor {
	shape, _, err := BroadcastShapes(a.Shape(), b.Shape())
	if err != nil {
		panic(err)
	}
	out, err := NewRaw(shape, a.DType(), CPU)
	if err != nil {
		panic(err)
	}

	as, bs := a.Shape(), b.Shape()
	aStrides, bStrides := as.ComputeStrides(), bs.ComputeStrides()
	av, bv := m.widen(a), m.widen(b)
	dst := make([]float64, shape.NumElements())

	coord := make([]int, len(shape))
	for i := range dst {
		dst[i] = op(pick(av, coord, as, aStrides), pick(bv, coord, bs, bStrides))
		stepCoord(coord, shape)
	}

	m.narrow(dst, out)
	return out
}

// MulScalar multiplies every element by scalar.
func (m *MockBackend) MulScalar(x *RawTensor, scalar any) *RawTensor {
	s := widenScalar(scalar)
	return m.mapEach(x, func(v float64) float64 { return v * s })
}

// AddScalar adds scalar to every element.
func (m *MockBackend) AddScalar(x *RawTensor, scalar any) *RawTensor {
	s := widenScalar(scalar)
	return m.mapEach(x, func(v float64) float64 { return v + s })
}

// SubScalar subtracts scalar from every element.
func (m *MockBackend) SubScalar(x *RawTensor, scalar any) *RawTensor {
	s := widenScalar(scalar)
	return m.mapEach(x, func(v float64) float64 { return v - s })
}

// DivScalar divides every element by scalar.
func (m *MockBackend) DivScalar(x *RawTensor, scalar any) *RawTensor {
	s := widenScalar(scalar)
	return m.mapEach(x, func(v float64) float64 { return v / s })
}

// mapEach applies op to every element of x.
func (m *MockBackend) mapEach(x *RawTensor, op func(float64) float64) *RawTensor {
	out, err := NewRaw(x.Shape(), x.DType(), CPU)
	if err != nil {
		panic(err)
	}

	vals := m.widen(x)
	for i, v := range vals {
		vals[i] = op(v)
	}

	m.narrow(vals, out)
	return out
}

// ReLU clamps negative entries to zero.
func (m *MockBackend) ReLU(x *RawTensor) *RawTensor {
	return m.mapEach(x, func(v float64) float64 { return math.Max(v, 0) })
}

// Sum reduces the whole tensor to its total, returned with shape {1}.
func (m *MockBackend) Sum(x *RawTensor) *RawTensor {
	out, err := NewRaw(Shape{1}, x.DType(), CPU)
	if err != nil {
		panic(err)
	}

	total := 0.0
	for _, v := range m.widen(x) {
		total += v
	}

	m.narrow([]float64{total}, out)
	return out
}

// Mean reduces the whole tensor to its average, returned with shape {1}.
func (m *MockBackend) Mean(x *RawTensor) *RawTensor {
	out, err := NewRaw(Shape{1}, x.DType(), CPU)
	if err != nil {
		panic(err)
	}

	vals := m.widen(x)
	total := 0.0
	for _, v := range vals {
		total += v
	}

	m.narrow([]float64{total / float64(len(vals))}, out)
	return out
}

// MatMul multiplies two 2D matrices.
func (m *MockBackend) MatMul(a, b *RawTensor) *RawTensor {
	as, bs := a.Shape(), b.Shape()
	if len(as) != 2 || len(bs) != 2 {
		panic("mock MatMul handles 2D operands only")
	}
	if as[1] != bs[0] {
		panic(fmt.Sprintf("mock MatMul: shapes %v and %v do not chain", as, bs))
	}

	rows, inner, cols := as[0], as[1], bs[1]
	out, err := NewRaw(Shape{rows, cols}, a.DType(), CPU)
	if err != nil {
		panic(err)
	}

	av, bv := m.widen(a), m.widen(b)
	dst := make([]float64, rows*cols)

	for i := 0; i < rows; i++ {
		row := dst[i*cols : (i+1)*cols]
		for k := 0; k < inner; k++ {
			f := av[i*inner+k]
			brow := bv[k*cols : (k+1)*cols]
			for j, v := range brow {
				row[j] += f * v
			}
		}
	}

	m.narrow(dst, out)
	return out
}

// Conv2D performs a direct 2D convolution with zero padding.
func (m *MockBackend) Conv2D(input, kernel *RawTensor, stride, padding int) *RawTensor {
	in, kn := input.Shape(), kernel.Shape()
	if len(in) != 4 || len(kn) != 4 {
		panic("mock Conv2D wants a [N,C,H,W] input and [Cout,Cin,KH,KW] kernel")
	}
	if in[1] != kn[1] {
		panic(fmt.Sprintf("mock Conv2D: %d input channels, kernel expects %d", in[1], kn[1]))
	}

	batch, chans, height, width := in[0], in[1], in[2], in[3]
	outChans, kh, kw := kn[0], kn[2], kn[3]
	outH := (height+2*padding-kh)/stride + 1
	outW := (width+2*padding-kw)/stride + 1

	out, err := NewRaw(Shape{batch, outChans, outH, outW}, input.DType(), CPU)
	if err != nil {
		panic(err)
	}

	src, wts := m.widen(input), m.widen(kernel)
	dst := make([]float64, out.NumElements())

	di := 0
	for n := 0; n < batch; n++ {
		for oc := 0; oc < outChans; oc++ {
			for oy := 0; oy < outH; oy++ {
				for ox := 0; ox < outW; ox++ {
					acc := 0.0
					for ic := 0; ic < chans; ic++ {
						srcBase := (n*chans + ic) * height * width
						wBase := (oc*chans + ic) * kh * kw
						for ky := 0; ky < kh; ky++ {
							y := oy*stride + ky - padding
							if y < 0 || y >= height {
								continue
							}
							for kx := 0; kx < kw; kx++ {
								x := ox*stride + kx - padding
								if x < 0 || x >= width {
									continue
								}
								acc += src[srcBase+y*width+x] * wts[wBase+ky*kw+kx]
							}
						}
					}
					dst[di] = acc
					di++
				}
			}
		}
	}

	m.narrow(dst, out)
	return out
}

// Conv2DInputBackward scatters output gradients back across each
// receptive field, weighted by the kernel.
func (m *MockBackend) Conv2DInputBackward(input, kernel, grad *RawTensor, stride, padding int) *RawTensor {
	in, kn, gs := input.Shape(), kernel.Shape(), grad.Shape()
	batch, chans, height, width := in[0], in[1], in[2], in[3]
	outChans, kh, kw := kn[0], kn[2], kn[3]
	outH, outW := gs[2], gs[3]

	out, err := NewRaw(in, input.DType(), CPU)
	if err != nil {
		panic(err)
	}

	wts, gv := m.widen(kernel), m.widen(grad)
	dst := make([]float64, input.NumElements())

	gi := 0
	for n := 0; n < batch; n++ {
		for oc := 0; oc < outChans; oc++ {
			for oy := 0; oy < outH; oy++ {
				for ox := 0; ox < outW; ox++ {
					g := gv[gi]
					gi++
					for ic := 0; ic < chans; ic++ {
						dstBase := (n*chans + ic) * height * width
						wBase := (oc*chans + ic) * kh * kw
						for ky := 0; ky < kh; ky++ {
							y := oy*stride + ky - padding
							if y < 0 || y >= height {
								continue
							}
							for kx := 0; kx < kw; kx++ {
								x := ox*stride + kx - padding
								if x < 0 || x >= width {
									continue
								}
								dst[dstBase+y*width+x] += wts[wBase+ky*kw+kx] * g
							}
						}
					}
				}
			}
		}
	}

	m.narrow(dst, out)
	return out
}

// Conv2DKernelBackward accumulates, for every kernel weight, the input
// values it touched scaled by the matching output gradients.
func (m *MockBackend) Conv2DKernelBackward(input, kernel, grad *RawTensor, stride, padding int) *RawTensor {
	in, kn, gs := input.Shape(), kernel.Shape(), grad.Shape()
	batch, chans, height, width := in[0], in[1], in[2], in[3]
	outChans, kh, kw := kn[0], kn[2], kn[3]
	outH, outW := gs[2], gs[3]

	out, err := NewRaw(kn, kernel.DType(), CPU)
	if err != nil {
		panic(err)
	}

	src, gv := m.widen(input), m.widen(grad)
	dst := make([]float64, kernel.NumElements())

	gi := 0
	for n := 0; n < batch; n++ {
		for oc := 0; oc < outChans; oc++ {
			for oy := 0; oy < outH; oy++ {
				for ox := 0; ox < outW; ox++ {
					g := gv[gi]
					gi++
					for ic := 0; ic < chans; ic++ {
						srcBase := (n*chans + ic) * height * width
						wBase := (oc*chans + ic) * kh * kw
						for ky := 0; ky < kh; ky++ {
							y := oy*stride + ky - padding
							if y < 0 || y >= height {
								continue
							}
							for kx := 0; kx < kw; kx++ {
								x := ox*stride + kx - padding
								if x < 0 || x >= width {
									continue
								}
								dst[wBase+ky*kw+kx] += src[srcBase+y*width+x] * g
							}
						}
					}
				}
			}
		}
	}

	m.narrow(dst, out)
	return out
}

// MaxPool2D takes the maximum over each window.
func (m *MockBackend) MaxPool2D(input *RawTensor, kernelSize, stride int) *RawTensor {
	in := input.Shape()
	if len(in) != 4 {
		panic(fmt.Sprintf("mock MaxPool2D wants a 4D input, got %dD", len(in)))
	}

	batch, chans, height, width := in[0], in[1], in[2], in[3]
	outH := (height-kernelSize)/stride + 1
	outW := (width-kernelSize)/stride + 1

	out, err := NewRaw(Shape{batch, chans, outH, outW}, input.DType(), CPU)
	if err != nil {
		panic(err)
	}

	src := m.widen(input)
	dst := make([]float64, out.NumElements())

	di := 0
	for n := 0; n < batch; n++ {
		for c := 0; c < chans; c++ {
			plane := src[(n*chans+c)*height*width:]
			for oy := 0; oy < outH; oy++ {
				for ox := 0; ox < outW; ox++ {
					best := math.Inf(-1)
					for ky := 0; ky < kernelSize; ky++ {
						row := (oy*stride + ky) * width
						for kx := 0; kx < kernelSize; kx++ {
							if v := plane[row+ox*stride+kx]; v > best {
								best = v
							}
						}
					}
					dst[di] = best
					di++
				}
			}
		}
	}

	m.narrow(dst, out)
	return out
}

// MaxPool2DBackward routes each output gradient to the input position
// recorded in maxIndices during the forward pass.
func (m *MockBackend) MaxPool2DBackward(input, grad *RawTensor, maxIndices []int, kernelSize, stride int) *RawTensor {
	out, err := NewRaw(input.Shape(), input.DType(), CPU)
	if err != nil {
		panic(err)
	}

	gv := m.widen(grad)
	dst := make([]float64, input.NumElements())
	for i, at := range maxIndices {
		dst[at] += gv[i]
	}

	m.narrow(dst, out)
	return out
}

// Reshape returns a copy of t carrying the same elements in newShape.
func (m *MockBackend) Reshape(t *RawTensor, newShape Shape) *RawTensor {
	if err := newShape.Validate(); err != nil {
		panic(err)
	}
	if newShape.NumElements() != t.NumElements() {
		panic(fmt.Sprintf("mock Reshape: shape %v cannot hold %d elements",
			newShape, t.NumElements()))
	}

	out, err := NewRaw(newShape, t.DType(), CPU)
	if err != nil {
		panic(err)
	}
	copy(out.Data(), t.Data())
	return out
}

// Transpose permutes dimensions. With no axes it reverses them all.
func (m *MockBackend) Transpose(t *RawTensor, axes ...int) *RawTensor {
	shape := t.Shape()
	if len(axes) == 0 {
		for d := len(shape) - 1; d >= 0; d-- {
			axes = append(axes, d)
		}
	}
	if len(axes) != len(shape) {
		panic(fmt.Sprintf("mock Transpose: %d axes for a %dD tensor", len(axes), len(shape)))
	}

	outShape := make(Shape, len(shape))
	for d, ax := range axes {
		if ax < 0 || ax >= len(shape) {
			panic(fmt.Sprintf("mock Transpose: axis %d out of range", ax))
		}
		outShape[d] = shape[ax]
	}

	out, err := NewRaw(outShape, t.DType(), CPU)
	if err != nil {
		panic(err)
	}

	src := m.widen(t)
	dst := make([]float64, len(src))
	outStrides := outShape.ComputeStrides()

	coord := make([]int, len(shape))
	for _, v := range src {
		at := 0
		for d, ax := range axes {
			at += coord[ax] * outStrides[d]
		}
		dst[at] = v
		stepCoord(coord, shape)
	}

	m.narrow(dst, out)
	return out
}

// widen copies t's elements into a fresh float64 slice.
func (m *MockBackend) widen(t *RawTensor) []float64 {
	switch t.DType() {
	case Float32:
		src := t.AsFloat32()
		dst := make([]float64, len(src))
		for i, v := range src {
			dst[i] = float64(v)
		}
		return dst
	case Float64:
		src := t.AsFloat64()
		dst := make([]float64, len(src))
		copy(dst, src)
		return dst
	default:
		panic(fmt.Sprintf("mock backend does not handle dtype %s", t.DType()))
	}
}

// narrow writes float64 values back into t, converting as needed.
func (m *MockBackend) narrow(src []float64, t *RawTensor) {
	switch t.DType() {
	case Float32:
		dst := t.AsFloat32()
		for i, v := range src {
			dst[i] = float32(v)
		}
	case Float64:
		copy(t.AsFloat64(), src)
	}
}

// widenScalar accepts the scalar types Backend permits.
func widenScalar(scalar any) float64 {
	switch v := scalar.(type) {
	case float32:
		return float64(v)
	case float64:
		return v
	default:
		panic(fmt.Sprintf("mock backend does not handle scalar type %T", scalar))
	}
}

// pick reads the value an operand contributes at an output coordinate.
// Size-1 dimensions repeat their only entry; missing leading dimensions
// broadcast the whole operand.
func pick(vals []float64, coord []int, shape Shape, strides []int) float64 {
	skip := len(coord) - len(shape)
	idx := 0
	for d, size := range shape {
		if size > 1 {
			idx += coord[skip+d] * strides[d]
		}
	}
	return vals[idx]
}

// stepCoord advances coord to the next position in row-major order.
func stepCoord(coord []int, shape Shape) {
	for d := len(coord) - 1; d >= 0; d-- {
		coord[d]++
		if coord[d] < shape[d] {
			return
		}
		coord[d] = 0
	}
}
