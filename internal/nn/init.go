package nn

import (
	"math"
	"math/rand"

	"github.com/elvinmirzazada/StyleTransfer-NerualNet/internal/tensor"
)

// Xavier returns a weight tensor drawn from the Glorot uniform
// distribution U(-b, b) with b = sqrt(6 / (fanIn + fanOut)), which keeps
// activation variance steady across layers. For a square-kernel
// convolution the fans are C_in*K*K and C_out*K*K.
//
// Only the random construction path uses this; pretrained weights
// replace it through Conv2D.SetWeights.
func Xavier[B tensor.Backend](fanIn, fanOut int, shape tensor.Shape, backend B) *tensor.Tensor[float32, B] {
	bound := math.Sqrt(6.0 / float64(fanIn+fanOut))

	raw, err := tensor.NewRaw(shape, tensor.Float32, backend.Device())
	if err != nil {
		panic(err)
	}
	data := raw.AsFloat32()
	for i := range data {
		//nolint:gosec // Weight initialization, not security-critical.
		data[i] = float32((rand.Float64()*2 - 1) * bound)
	}
	return tensor.New[float32, B](raw, backend)
}

// Zeros returns a zero-filled tensor, the bias initialization.
func Zeros[B tensor.Backend](shape tensor.Shape, backend B) *tensor.Tensor[float32, B] {
	return tensor.Zeros[float32](shape, backend)
}

// Ones returns a tensor filled with ones.
func Ones[B tensor.Backend](shape tensor.Shape, backend B) *tensor.Tensor[float32, B] {
	return tensor.Ones[float32](shape, backend)
}

// Randn returns a tensor drawn from the standard normal distribution,
// used by tests that need nonzero activations.
func Randn[B tensor.Backend](shape tensor.Shape, backend B) *tensor.Tensor[float32, B] {
	return tensor.Randn[float32](shape, backend)
}
