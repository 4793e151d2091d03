// Package imaging decodes, resizes and re-encodes raster images.
package imaging

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	"image/jpeg"
	"image/png"
	"math"
	"strings"

	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Format is an output encoding
type Format string

const (
	FormatJPEG Format = "jpeg"
	FormatPNG  Format = "png"
)

// DefaultQuality is the JPEG quality used when none is given
const DefaultQuality = 90

// ErrUnsupportedFormat is returned for output formats other than jpeg and png
var ErrUnsupportedFormat = errors.New("unsupported output format")

// ParseFormat accepts jpeg, jpg and png in any case
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "jpeg", "jpg":
		return FormatJPEG, nil
	case "png":
		return FormatPNG, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
	}
}

// Extension returns the file extension written for f
func (f Format) Extension() string {
	if f == FormatPNG {
		return ".png"
	}
	return ".jpg"
}

// DecodeError reports an input that is not a readable image
type DecodeError struct {
	Name string
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode image %s: %v", e.Name, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// Decode reads a jpeg, png, gif, webp, bmp or tiff image and returns its format name
func Decode(name string, data []byte) (image.Image, string, error) {
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, "", &DecodeError{Name: name, Err: err}
	}
	return img, format, nil
}

// FitSize computes the output size for a resize request. Zero or negative
// targets fall back to the source size. With keepAspect the result fits inside
// the target box without distortion.
func FitSize(srcW, srcH, width, height int, keepAspect bool) (int, int) {
	if width <= 0 {
		width = srcW
	}
	if height <= 0 {
		height = srcH
	}
	if !keepAspect || srcW <= 0 || srcH <= 0 {
		return width, height
	}

	ratio := math.Min(float64(width)/float64(srcW), float64(height)/float64(srcH))
	w := int(math.Round(float64(srcW) * ratio))
	h := int(math.Round(float64(srcH) * ratio))
	return max(w, 1), max(h, 1)
}

// Resize scales img to width x height with Catmull-Rom resampling.
// The image is returned unchanged when it already has that size.
func Resize(img image.Image, width, height int) image.Image {
	b := img.Bounds()
	if b.Dx() == width && b.Dy() == height {
		return img
	}
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Over, nil)
	return dst
}

// Encode writes img in the given format. Quality applies to JPEG only and is
// clamped to 1-100; zero selects DefaultQuality.
func Encode(img image.Image, format Format, quality int) ([]byte, error) {
	var buf bytes.Buffer
	switch format {
	case FormatPNG:
		if err := png.Encode(&buf, img); err != nil {
			return nil, fmt.Errorf("encode png: %w", err)
		}
	case FormatJPEG:
		if err := jpeg.Encode(&buf, flatten(img), &jpeg.Options{Quality: clampQuality(quality)}); err != nil {
			return nil, fmt.Errorf("encode jpeg: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	return buf.Bytes(), nil
}

func clampQuality(quality int) int {
	switch {
	case quality == 0:
		return DefaultQuality
	case quality < 1:
		return 1
	case quality > 100:
		return 100
	default:
		return quality
	}
}

// flatten composites transparent pixels onto white, since JPEG has no alpha
func flatten(img image.Image) image.Image {
	if opaque, ok := img.(interface{ Opaque() bool }); ok && opaque.Opaque() {
		return img
	}
	b := img.Bounds()
	dst := image.NewRGBA(b)
	draw.Draw(dst, b, image.NewUniform(color.White), image.Point{}, draw.Src)
	draw.Draw(dst, b, img, b.Min, draw.Over)
	return dst
}
