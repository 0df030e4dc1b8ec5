package nn

import (
	"fmt"

	"github.com/elvinmirzazada/StyleTransfer-NerualNet/internal/tensor"
)

// Conv2D is a square-kernel 2D convolution layer.
//
// Shapes follow the NCHW convention throughout:
//
//	input  [batch, inC, h, w]
//	weight [outC, inC, kernel, kernel]
//	bias   [1, outC, 1, 1]
//	output [batch, outC, (h+2*pad-kernel)/stride+1, (w+2*pad-kernel)/stride+1]
//
// A fresh layer starts with Xavier-initialized weights and a zero bias;
// pretrained values are installed afterwards with SetWeights:
//
//	// First VGG block: 3 channels in, 64 out, 3x3 kernel, same padding.
//	conv := nn.NewConv2D(3, 64, 3, 1, 1, true, backend)
//	err := conv.SetWeights(pretrainedW, pretrainedB)
type Conv2D[B tensor.Backend] struct {
	inC     int
	outC    int
	kernel  int
	stride  int
	pad     int
	hasBias bool

	weight *Parameter[B]
	bias   *Parameter[B] // nil when built without bias

	backend B
}

// NewConv2D builds a convolution layer. Panics on non-positive channel,
// kernel or stride values and on negative padding.
func NewConv2D[B tensor.Backend](
	inChannels, outChannels int,
	kernelSize int,
	stride, padding int,
	useBias bool,
	backend B,
) *Conv2D[B] {
	if inChannels <= 0 || outChannels <= 0 {
		panic(fmt.Sprintf("conv2d: invalid channels in=%d, out=%d", inChannels, outChannels))
	}
	if kernelSize <= 0 {
		panic(fmt.Sprintf("conv2d: invalid kernel size %d", kernelSize))
	}
	if stride <= 0 {
		panic(fmt.Sprintf("conv2d: invalid stride %d", stride))
	}
	if padding < 0 {
		panic(fmt.Sprintf("conv2d: invalid padding %d", padding))
	}

	c := &Conv2D[B]{
		inC:     inChannels,
		outC:    outChannels,
		kernel:  kernelSize,
		stride:  stride,
		pad:     padding,
		hasBias: useBias,
		backend: backend,
	}

	// Xavier fans for a convolution count the kernel taps, not just the
	// channel counts.
	fanIn := inChannels * kernelSize * kernelSize
	fanOut := outChannels * kernelSize * kernelSize
	shape := tensor.Shape{outChannels, inChannels, kernelSize, kernelSize}
	c.weight = NewParameter("conv2d.weight", Xavier(fanIn, fanOut, shape, backend))

	if useBias {
		// Stored broadcast-ready so Forward can add it without a reshape.
		c.bias = NewParameter("conv2d.bias", Zeros(tensor.Shape{1, outChannels, 1, 1}, backend))
	}
	return c
}

// SetWeights copies pretrained tensors into the layer.
//
// weight must be [outC, inC, kernel, kernel]. bias accepts either the
// flat [outC] form checkpoints store or the broadcast [1, outC, 1, 1]
// form, and must be nil for a layer built without bias. Values are
// copied into the existing parameter buffers, so tensor identities stay
// stable across a weight load.
func (c *Conv2D[B]) SetWeights(weight, bias *tensor.Tensor[float32, B]) error {
	if weight == nil {
		return fmt.Errorf("conv2d: nil weight for %s", c.String())
	}
	want := tensor.Shape{c.outC, c.inC, c.kernel, c.kernel}
	if !weight.Shape().Equal(want) {
		return fmt.Errorf("conv2d: weight shape %v, want %v", weight.Shape(), want)
	}
	copy(c.weight.Tensor().Raw().AsFloat32(), weight.Raw().AsFloat32())

	switch {
	case !c.hasBias:
		if bias != nil {
			return fmt.Errorf("conv2d: bias given for layer built without one")
		}
		return nil
	case bias == nil:
		return fmt.Errorf("conv2d: nil bias for %s", c.String())
	case bias.NumElements() != c.outC:
		return fmt.Errorf("conv2d: bias shape %v, want %d elements", bias.Shape(), c.outC)
	}
	copy(c.bias.Tensor().Raw().AsFloat32(), bias.Raw().AsFloat32())
	return nil
}

// Forward convolves a [batch, inC, h, w] input into
// [batch, outC, outH, outW], adding the bias when the layer has one.
func (c *Conv2D[B]) Forward(input *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	shape := input.Shape()
	if len(shape) != 4 {
		panic(fmt.Sprintf("conv2d: expected 4D input [N,C,H,W], got %dD", len(shape)))
	}
	if shape[1] != c.inC {
		panic(fmt.Sprintf("conv2d: input channels %d != expected %d", shape[1], c.inC))
	}

	raw := c.backend.Conv2D(input.Raw(), c.weight.Tensor().Raw(), c.stride, c.pad)
	out := tensor.New[float32, B](raw, c.backend)
	if c.hasBias {
		// Broadcasts over batch and spatial dims. Recorded on the tape
		// like any other Add when the backend is tracing.
		out = out.Add(c.bias.Tensor())
	}
	return out
}

// Parameters returns the trainable parameters, weight first.
func (c *Conv2D[B]) Parameters() []*Parameter[B] {
	if c.hasBias {
		return []*Parameter[B]{c.weight, c.bias}
	}
	return []*Parameter[B]{c.weight}
}

func (c *Conv2D[B]) String() string {
	return fmt.Sprintf("Conv2D(in_channels=%d, out_channels=%d, kernel_size=%d, stride=%d, padding=%d, bias=%v)",
		c.inC, c.outC, c.kernel, c.stride, c.pad, c.hasBias)
}

// OutChannels returns the number of filters.
func (c *Conv2D[B]) OutChannels() int { return c.outC }

// InChannels returns the expected input channel count.
func (c *Conv2D[B]) InChannels() int { return c.inC }

// KernelSize returns the square kernel dimension.
func (c *Conv2D[B]) KernelSize() int { return c.kernel }

// Stride returns the stride.
func (c *Conv2D[B]) Stride() int { return c.stride }

// Padding returns the zero padding applied to each border.
func (c *Conv2D[B]) Padding() int { return c.pad }

// ComputeOutputSize returns the output height and width for an input of
// the given spatial size.
func (c *Conv2D[B]) ComputeOutputSize(inputH, inputW int) [2]int {
	return [2]int{
		(inputH+2*c.pad-c.kernel)/c.stride + 1,
		(inputW+2*c.pad-c.kernel)/c.stride + 1,
	}
}
