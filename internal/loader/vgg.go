package loader

import (
	"fmt"

	"github.com/elvinmirzazada/StyleTransfer-NerualNet/internal/tensor"
	"github.com/elvinmirzazada/StyleTransfer-NerualNet/internal/transfer"
	"github.com/elvinmirzazada/StyleTransfer-NerualNet/internal/vgg"
)

// Option configures a VGG-19 load.
type Option func(*options)

type options struct {
	checksum string
}

// WithChecksum verifies the hex-encoded SHA-256 digest of the file's
// tensor payload before any weights are read.
func WithChecksum(digest string) Option {
	return func(o *options) {
		o.checksum = digest
	}
}

// LoadVGG19 builds a VGG-19 feature stack and fills it with pretrained
// weights from a safetensors file.
//
// Tensor names follow the torchvision convention: "features.{i}.weight"
// and "features.{i}.bias" for every convolution index i. A missing entry
// wraps transfer.ErrConfiguration; a tensor whose shape disagrees with the
// architecture wraps transfer.ErrShapeMismatch.
//
// The returned network is not frozen; callers that train against it mark
// its parameters constant on their tape first.
func LoadVGG19[B tensor.Backend](path string, backend B, opts ...Option) (*vgg.Network[B], error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	f, err := Open(path)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}
	defer func() {
		_ = f.Close()
	}()

	if o.checksum != "" {
		if err := f.VerifyChecksum(o.checksum); err != nil {
			return nil, fmt.Errorf("loading %s: %w", path, err)
		}
	}

	net := vgg.New(backend)
	for _, layer := range vgg.Architecture() {
		if layer.Kind != vgg.Conv {
			continue
		}
		if err := loadConv(f, net, layer, backend); err != nil {
			return nil, fmt.Errorf("loading %s: %w", path, err)
		}
	}

	return net, nil
}

// loadConv copies one convolution's weight and bias out of the file into
// the network.
func loadConv[B tensor.Backend](f *File, net *vgg.Network[B], layer vgg.Layer, backend B) error {
	conv, err := net.Conv(layer.Index)
	if err != nil {
		return err
	}

	weight, err := convTensor(f, layer, "weight", backend)
	if err != nil {
		return err
	}
	bias, err := convTensor(f, layer, "bias", backend)
	if err != nil {
		return err
	}

	if err := conv.SetWeights(weight, bias); err != nil {
		return fmt.Errorf("%s: %w: %w", layer.Name, transfer.ErrShapeMismatch, err)
	}
	return nil
}

// convTensor fetches "features.{index}.{kind}" as a float32 tensor. A
// missing entry means the file does not hold this network.
func convTensor[B tensor.Backend](f *File, layer vgg.Layer, kind string, backend B) (*tensor.Tensor[float32, B], error) {
	name := fmt.Sprintf("features.%d.%s", layer.Index, kind)

	info, err := f.Info(name)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %w", layer.Name, transfer.ErrConfiguration, err)
	}

	data, err := f.Float32s(name)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", layer.Name, err)
	}

	t, err := tensor.FromSlice(data, tensor.Shape(info.Shape), backend)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", layer.Name, err)
	}
	return t, nil
}
