// Package imaging normalises uploaded photos: any supported format in, bounded
// JPEG out.
package imaging

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"net/http"

	"golang.org/x/image/draw"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

const (
	DefaultMaxDimension = 1024
	JPEGQuality         = 85
	OutputMIME          = "image/jpeg"
)

var ErrUnsupportedImage = errors.New("unsupported image format")

// Result is the re-encoded image.
type Result struct {
	Data         []byte
	MIME         string
	SourceFormat string
	Width        int
	Height       int
}

// Process validates data by decoding it (client headers are not trusted),
// downscales so neither side exceeds maxDim, and re-encodes as JPEG.
func Process(data []byte, maxDim int) (*Result, error) {
	if maxDim <= 0 {
		maxDim = DefaultMaxDimension
	}

	if _, format, err := image.DecodeConfig(bytes.NewReader(data)); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedImage, http.DetectContentType(data))
	} else if format == "" {
		return nil, ErrUnsupportedImage
	}

	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decoding image: %w", err)
	}

	img = Downscale(img, maxDim)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, flatten(img), &jpeg.Options{Quality: JPEGQuality}); err != nil {
		return nil, fmt.Errorf("encoding JPEG: %w", err)
	}

	bounds := img.Bounds()
	return &Result{
		Data:         buf.Bytes(),
		MIME:         OutputMIME,
		SourceFormat: format,
		Width:        bounds.Dx(),
		Height:       bounds.Dy(),
	}, nil
}

// Downscale resizes img so neither dimension exceeds maxDim, keeping the aspect
// ratio. Smaller images are returned as is.
func Downscale(img image.Image, maxDim int) image.Image {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w <= maxDim && h <= maxDim {
		return img
	}

	newW, newH := w, h
	if w > h {
		newW = maxDim
		newH = int(float64(h) * float64(maxDim) / float64(w))
	} else {
		newH = maxDim
		newW = int(float64(w) * float64(maxDim) / float64(h))
	}
	newW = max(newW, 1)
	newH = max(newH, 1)

	dst := image.NewRGBA(image.Rect(0, 0, newW, newH))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
	return dst
}

// flatten paints img over white so transparent PNG/GIF areas do not turn black in JPEG.
func flatten(img image.Image) image.Image {
	bounds := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(dst, dst.Bounds(), image.White, image.Point{}, draw.Src)
	draw.Draw(dst, dst.Bounds(), img, bounds.Min, draw.Over)
	return dst
}
