package nn

import (
	"testing"

	"github.com/elvinmirzazada/StyleTransfer-NerualNet/internal/autodiff"
	"github.com/elvinmirzazada/StyleTransfer-NerualNet/internal/backend/cpu"
	"github.com/elvinmirzazada/StyleTransfer-NerualNet/internal/tensor"
)

func TestMaxPool2DConfig(t *testing.T) {
	pool := NewMaxPool2D(2, 2, cpu.New())

	if pool.KernelSize() != 2 || pool.Stride() != 2 {
		t.Errorf("layer reports kernel %d stride %d, want 2 and 2", pool.KernelSize(), pool.Stride())
	}
	if n := len(pool.Parameters()); n != 0 {
		t.Errorf("pooling claims %d trainable parameters", n)
	}
	if got, want := pool.String(), "MaxPool2D(kernel_size=2, stride=2)"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestNewMaxPool2DRejectsBadConfig(t *testing.T) {
	tests := []struct {
		name               string
		kernelSize, stride int
	}{
		{"zero kernel", 0, 2},
		{"negative stride", 2, -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Error("constructor accepted the config")
				}
			}()
			NewMaxPool2D(tt.kernelSize, tt.stride, cpu.New())
		})
	}
}

func TestMaxPool2DForward(t *testing.T) {
	backend := cpu.New()

	t.Run("halves spatial dimensions", func(t *testing.T) {
		pool := NewMaxPool2D(2, 2, backend)
		out := pool.Forward(tensor.Zeros[float32](tensor.Shape{2, 3, 28, 28}, backend))
		checkShape(t, out.Shape(), tensor.Shape{2, 3, 14, 14})
	})

	t.Run("picks each window maximum", func(t *testing.T) {
		pool := NewMaxPool2D(2, 2, backend)
		out := pool.Forward(seqTensor(t, tensor.Shape{1, 1, 4, 4}, backend))

		want := []float32{6, 8, 14, 16}
		for i, v := range out.Raw().AsFloat32() {
			if v != want[i] {
				t.Errorf("output[%d] = %v, want %v", i, v, want[i])
			}
		}
	})

	t.Run("overlapping windows", func(t *testing.T) {
		pool := NewMaxPool2D(3, 2, backend)
		out := pool.Forward(tensor.Ones[float32](tensor.Shape{1, 1, 7, 7}, backend))

		checkShape(t, out.Shape(), tensor.Shape{1, 1, 3, 3})
		for i, v := range out.Raw().AsFloat32() {
			if v != 1 {
				t.Errorf("output[%d] = %v, want 1", i, v)
			}
		}
	})

	t.Run("rejects non-4D input", func(t *testing.T) {
		pool := NewMaxPool2D(2, 2, backend)
		defer func() {
			if recover() == nil {
				t.Error("Forward accepted a 2D input")
			}
		}()
		pool.Forward(tensor.Ones[float32](tensor.Shape{4, 4}, backend))
	})
}

func TestMaxPool2DOutputSize(t *testing.T) {
	tests := []struct {
		kernelSize, stride int
		inH, inW           int
		want               [2]int
	}{
		{2, 2, 28, 28, [2]int{14, 14}},
		{2, 2, 224, 224, [2]int{112, 112}},
		{3, 2, 28, 28, [2]int{13, 13}},
		{2, 1, 5, 5, [2]int{4, 4}},
	}
	backend := cpu.New()
	for _, tt := range tests {
		pool := NewMaxPool2D(tt.kernelSize, tt.stride, backend)
		if got := pool.ComputeOutputSize(tt.inH, tt.inW); got != tt.want {
			t.Errorf("kernel %d stride %d on %dx%d: got %v, want %v",
				tt.kernelSize, tt.stride, tt.inH, tt.inW, got, tt.want)
		}
	}
}

func TestMaxPool2DBackwardRoutesToWinners(t *testing.T) {
	backend := recording(t)
	pool := NewMaxPool2D(2, 2, backend)

	input := tensor.Randn[float32](tensor.Shape{1, 2, 4, 4}, backend)
	out := pool.Forward(input)
	checkShape(t, out.Shape(), tensor.Shape{1, 2, 2, 2})

	grads := autodiff.Backward(out, backend)
	inputGrad, ok := grads[input.Raw()]
	if !ok {
		t.Fatal("no gradient reached the input")
	}
	checkShape(t, inputGrad.Shape(), input.Shape())

	// One winner per window, four windows in each of the two channels.
	if n := countNonZero(inputGrad); n != 8 {
		t.Errorf("%d input positions received gradient, want 8", n)
	}
}

func TestMaxPool2DStacksAfterConv2D(t *testing.T) {
	backend := recording(t)

	conv := NewConv2D(1, 6, 5, 1, 0, true, backend)
	pool := NewMaxPool2D(2, 2, backend)

	input := tensor.Randn[float32](tensor.Shape{2, 1, 28, 28}, backend)
	convOut := conv.Forward(input)
	poolOut := pool.Forward(convOut)
	checkShape(t, poolOut.Shape(), tensor.Shape{2, 6, 12, 12})

	grads := autodiff.Backward(poolOut, backend)
	for name, raw := range map[string]*tensor.RawTensor{
		"weight": conv.weight.Tensor().Raw(),
		"bias":   conv.bias.Tensor().Raw(),
		"input":  input.Raw(),
	} {
		if _, ok := grads[raw]; !ok {
			t.Errorf("no gradient for the %s", name)
		}
	}
}
