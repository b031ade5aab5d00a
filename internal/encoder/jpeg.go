// Package encoder turns captured frames into downscaled JPEG buffers.
package encoder

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/jpeg"

	xdraw "golang.org/x/image/draw"
)

const (
	// DefaultMaxWidth is the widest frame pushed to clients.
	DefaultMaxWidth = 1280
	// DefaultQuality is the JPEG quality factor.
	DefaultQuality = 60
)

// JPEG encodes frames no wider than MaxWidth at a fixed quality.
type JPEG struct {
	MaxWidth int
	Quality  int
}

// NewJPEG returns an encoder, substituting defaults for out-of-range values.
func NewJPEG(maxWidth, quality int) JPEG {
	if maxWidth <= 0 {
		maxWidth = DefaultMaxWidth
	}
	if quality <= 0 || quality > 100 {
		quality = DefaultQuality
	}
	return JPEG{MaxWidth: maxWidth, Quality: quality}
}

// Encode downscales img if needed and returns the JPEG bytes.
func (e JPEG) Encode(img image.Image) ([]byte, error) {
	if img == nil {
		return nil, errors.New("nil image")
	}
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, Downscale(img, e.MaxWidth), &jpeg.Options{Quality: e.Quality}); err != nil {
		return nil, fmt.Errorf("jpeg encode: %w", err)
	}
	return buf.Bytes(), nil
}

// Downscale shrinks img to maxWidth preserving the aspect ratio. Images that
// already fit are returned unchanged.
func Downscale(img image.Image, maxWidth int) image.Image {
	b := img.Bounds()
	w, h := ScaledSize(b.Dx(), b.Dy(), maxWidth)
	if w == b.Dx() {
		return img
	}
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	xdraw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, b, xdraw.Src, nil)
	return dst
}

// ScaledSize reports the dimensions Downscale would produce.
func ScaledSize(w, h, maxWidth int) (int, int) {
	if maxWidth <= 0 || w <= maxWidth {
		return w, h
	}
	sh := h * maxWidth / w
	if sh < 1 {
		sh = 1
	}
	return maxWidth, sh
}
