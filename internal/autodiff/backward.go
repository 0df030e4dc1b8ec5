package autodiff

import (
	"fmt"

	"github.com/elvinmirzazada/StyleTransfer-NerualNet/internal/tensor"
)

// BackwardCapable matches backends that carry a gradient tape.
// AutodiffBackend is the implementation; the indirection keeps Backward
// generic over the inner backend type.
type BackwardCapable interface {
	tensor.Backend
	// GetTape returns the tape to walk during the backward pass.
	GetTape() *GradientTape
}

// GetTape implements BackwardCapable.
func (ad *AutodiffBackend[B]) GetTape() *GradientTape { return ad.tape }

// Backward seeds t's gradient with ones and walks the backend's tape,
// returning the gradient accumulated for every tensor the walk reached.
//
//	backend := autodiff.New(cpu.New())
//	backend.Tape().StartRecording()
//	x := tensor.Ones[float32](tensor.Shape{2}, backend)
//	y := x.Mul(x)
//	grads := autodiff.Backward(y, backend)
//	dx := grads[x.Raw()]
func Backward[T tensor.DType, B BackwardCapable](t *tensor.Tensor[T, B], backend B) map[*tensor.RawTensor]*tensor.RawTensor {
	tape := backend.GetTape()
	if tape.NumOps() == 0 {
		panic("backward: no operations recorded (did you forget to call Tape().StartRecording()?)")
	}

	seed, err := tensor.NewRaw(t.Shape(), t.DType(), backend.Device())
	if err != nil {
		panic(fmt.Sprintf("backward: failed to create output gradient: %v", err))
	}
	switch t.DType() {
	case tensor.Float32:
		fillOnes(seed.AsFloat32())
	case tensor.Float64:
		fillOnes(seed.AsFloat64())
	default:
		panic(fmt.Sprintf("backward: unsupported dtype %s (only float32/float64 supported)", t.DType()))
	}

	return tape.Backward(t.Raw(), seed, backend)
}

func fillOnes[F tensor.DType](dst []F) {
	for i := range dst {
		dst[i] = 1
	}
}
