// Copyright 2025 StyleTransfer-NerualNet. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package imageio converts between image files and the normalized tensor
// form the optimization works on.
//
// This package wraps the internal conversion routines and exports a clean
// public API. Images become (1, 3, H, W) float32 tensors, each channel
// shifted and scaled by the fixed ImageNet statistics the feature stack
// was trained with. PNG and JPEG are supported on both ends.
//
// Example usage:
//
//	import "github.com/elvinmirzazada/StyleTransfer-NerualNet/imageio"
//
//	content, err := imageio.Load("content.png", imageio.DefaultMaxSide, backend)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	shape := content.Shape()
//	style, err := imageio.LoadMatching("style.jpg", shape[2], shape[3], backend)
//
//	// ... optimize ...
//
//	img, err := imageio.FromTensor(result.Target)
//	err = imageio.Save("out.png", img)
package imageio

import (
	"image"

	"github.com/elvinmirzazada/StyleTransfer-NerualNet/internal/imageio"
	"github.com/elvinmirzazada/StyleTransfer-NerualNet/internal/tensor"
)

// DefaultMaxSide is the longest image side the pipeline keeps by default.
// Larger inputs are shrunk to fit; optimization cost grows with pixel
// count, not with source resolution.
const DefaultMaxSide = imageio.DefaultMaxSide

// Load reads an image file into normalized tensor form, shrinking it
// proportionally if its longer side exceeds maxSide. Nothing is ever
// upscaled.
//
// Example:
//
//	content, err := imageio.Load("content.png", 400, backend)
func Load[B tensor.Backend](path string, maxSide int, backend B) (*tensor.Tensor[float32, B], error) {
	return imageio.Load(path, maxSide, backend)
}

// LoadMatching reads an image file and resizes it to exactly
// height×width. Style images go through this so their feature maps line
// up with the content's at every layer.
//
// Example:
//
//	shape := content.Shape()
//	style, err := imageio.LoadMatching("style.png", shape[2], shape[3], backend)
func LoadMatching[B tensor.Backend](path string, height, width int, backend B) (*tensor.Tensor[float32, B], error) {
	return imageio.LoadMatching(path, height, width, backend)
}

// ToTensor normalizes a decoded image into a (1, 3, H, W) tensor. The
// alpha channel, if any, is dropped.
func ToTensor[B tensor.Backend](img image.Image, backend B) (*tensor.Tensor[float32, B], error) {
	return imageio.ToTensor(img, backend)
}

// FromTensor denormalizes a (1, 3, H, W) tensor back into an image,
// clamping each channel to displayable range.
//
// Example:
//
//	img, err := imageio.FromTensor(result.Target)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	imageio.Save("out.png", img)
func FromTensor[B tensor.Backend](t *tensor.Tensor[float32, B]) (*image.NRGBA, error) {
	return imageio.FromTensor(t)
}

// Save writes an image to path, choosing the format from the file
// extension: .png, .jpg or .jpeg.
func Save(path string, img image.Image) error {
	return imageio.Save(path, img)
}
