// Package imageio converts between image files and the normalized tensor
// form the optimization works on.
//
// Images become (1, 3, H, W) float32 tensors, each channel shifted and
// scaled by the fixed ImageNet statistics the feature stack was trained
// with. Everything here is plain pixel arithmetic over decoded bytes;
// nothing touches a gradient tape.
package imageio

import (
	"fmt"
	"image"
	"image/jpeg" // imported for Encode; registers JPEG decoding as a side effect
	"image/png"  // imported for Encode; registers PNG decoding as a side effect
	"math"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/draw"

	"github.com/elvinmirzazada/StyleTransfer-NerualNet/internal/tensor"
)

// DefaultMaxSide is the longest image side the pipeline keeps by default.
// Larger inputs are shrunk to fit; optimization cost grows with pixel
// count, not with source resolution.
const DefaultMaxSide = 400

const jpegQuality = 95

// Per-channel normalization constants (channel order R, G, B), the
// ImageNet statistics of the pretrained stack.
var (
	channelMean = [3]float32{0.485, 0.456, 0.406}
	channelStd  = [3]float32{0.229, 0.224, 0.225}
)

// Load reads an image file into normalized tensor form, shrinking it
// proportionally if its longer side exceeds maxSide. Images already
// within the cap keep their size; nothing is ever upscaled.
func Load[B tensor.Backend](path string, maxSide int, backend B) (*tensor.Tensor[float32, B], error) {
	if maxSide <= 0 {
		return nil, fmt.Errorf("max side must be positive, got %d", maxSide)
	}

	src, err := decode(path)
	if err != nil {
		return nil, err
	}

	w, h := capSide(src.Bounds(), maxSide)
	return ToTensor(scale(src, w, h), backend)
}

// LoadMatching reads an image file and resizes it to exactly
// height×width. Style images go through this so their feature maps line
// up with the content's at every layer.
func LoadMatching[B tensor.Backend](path string, height, width int, backend B) (*tensor.Tensor[float32, B], error) {
	if height <= 0 || width <= 0 {
		return nil, fmt.Errorf("target size %dx%d, want positive dimensions", width, height)
	}

	src, err := decode(path)
	if err != nil {
		return nil, err
	}

	return ToTensor(scale(src, width, height), backend)
}

// ToTensor normalizes a decoded image into a (1, 3, H, W) tensor. The
// alpha channel, if any, is dropped: pixel values are taken straight, not
// composited onto a background.
func ToTensor[B tensor.Backend](img image.Image, backend B) (*tensor.Tensor[float32, B], error) {
	nrgba, ok := img.(*image.NRGBA)
	if !ok {
		// Normalize the pixel format without resampling. NRGBA keeps
		// straight (non-premultiplied) values, which is what dropping
		// alpha means.
		b := img.Bounds()
		nrgba = image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
		draw.Draw(nrgba, nrgba.Bounds(), img, b.Min, draw.Src)
	}

	b := nrgba.Bounds()
	w, h := b.Dx(), b.Dy()
	if w == 0 || h == 0 {
		return nil, fmt.Errorf("empty image %dx%d", w, h)
	}

	plane := h * w
	data := make([]float32, 3*plane)
	i := 0
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			off := nrgba.PixOffset(b.Min.X+x, b.Min.Y+y)
			px := nrgba.Pix[off : off+4 : off+4]
			data[i] = (float32(px[0])/255 - channelMean[0]) / channelStd[0]
			data[plane+i] = (float32(px[1])/255 - channelMean[1]) / channelStd[1]
			data[2*plane+i] = (float32(px[2])/255 - channelMean[2]) / channelStd[2]
			i++
		}
	}

	return tensor.FromSlice(data, tensor.Shape{1, 3, h, w}, backend)
}

// FromTensor denormalizes a (1, 3, H, W) tensor back into pixels,
// clamping each value to [0, 1] before quantizing. The optimizer is free
// to push pixels outside the displayable range; rendering clips them.
func FromTensor[B tensor.Backend](t *tensor.Tensor[float32, B]) (*image.NRGBA, error) {
	shape := t.Shape()
	if len(shape) != 4 || shape[0] != 1 || shape[1] != 3 {
		return nil, fmt.Errorf("tensor shape %v, want [1, 3, H, W]", shape)
	}

	h, w := shape[2], shape[3]
	plane := h * w
	data := t.Data()

	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	i := 0
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			off := img.PixOffset(x, y)
			img.Pix[off+0] = quantize(data[i]*channelStd[0] + channelMean[0])
			img.Pix[off+1] = quantize(data[plane+i]*channelStd[1] + channelMean[1])
			img.Pix[off+2] = quantize(data[2*plane+i]*channelStd[2] + channelMean[2])
			img.Pix[off+3] = 0xFF
			i++
		}
	}

	return img, nil
}

// Save encodes an image by file extension: .png, .jpg or .jpeg.
func Save(path string, img image.Image) error {
	var encode func(f *os.File) error
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		encode = func(f *os.File) error { return png.Encode(f, img) }
	case ".jpg", ".jpeg":
		encode = func(f *os.File) error { return jpeg.Encode(f, img, &jpeg.Options{Quality: jpegQuality}) }
	default:
		return fmt.Errorf("unsupported image format %q", filepath.Ext(path))
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}

	err = encode(f)
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}
	return nil
}

func decode(path string) (image.Image, error) {
	//nolint:gosec // G304: file path comes from user input, which is expected for image loading
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	defer func() {
		_ = f.Close()
	}()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return img, nil
}

// capSide shrinks (w, h) proportionally until the longer side fits
// maxSide.
func capSide(bounds image.Rectangle, maxSide int) (int, int) {
	w, h := bounds.Dx(), bounds.Dy()
	longer := max(w, h)
	if longer <= maxSide {
		return w, h
	}

	ratio := float64(maxSide) / float64(longer)
	w = max(int(math.Round(float64(w)*ratio)), 1)
	h = max(int(math.Round(float64(h)*ratio)), 1)
	return w, h
}

// scale resamples src to exactly width×height with the Catmull-Rom
// kernel, converting to straight-alpha pixels along the way.
func scale(src image.Image, width, height int) *image.NRGBA {
	dst := image.NewNRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Rect, src, src.Bounds(), draw.Src, nil)
	return dst
}

func quantize(v float32) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 0xFF
	}
	return uint8(v*255 + 0.5)
}
