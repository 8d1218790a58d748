package output

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"

	"github.com/df07/go-sphere-raytracer/pkg/renderer"
)

// Format identifies an output image encoding
type Format string

const (
	FormatPPM  Format = "ppm"
	FormatPNG  Format = "png"
	FormatBMP  Format = "bmp"
	FormatTIFF Format = "tiff"
)

// FormatFromPath picks the output format from a file extension
func FormatFromPath(path string) (Format, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	switch ext {
	case "ppm":
		return FormatPPM, nil
	case "png":
		return FormatPNG, nil
	case "bmp":
		return FormatBMP, nil
	case "tif", "tiff":
		return FormatTIFF, nil
	default:
		return "", fmt.Errorf("unsupported output format %q", ext)
	}
}

// Write encodes the framebuffer in the given format
func Write(w io.Writer, fb *renderer.Framebuffer, format Format) error {
	if format == FormatPPM {
		return WritePPM(w, fb)
	}
	return Encode(w, ToImage(fb), format)
}

// WriteCaptioned encodes the framebuffer with a caption drawn over its bottom edge.
// PPM output is written without overlays.
func WriteCaptioned(w io.Writer, fb *renderer.Framebuffer, format Format, caption string) error {
	if format == FormatPPM {
		if caption != "" {
			return fmt.Errorf("captions are not supported for %s output", format)
		}
		return WritePPM(w, fb)
	}
	return Encode(w, Caption(ToImage(fb), caption), format)
}

// Encode writes an already quantized image in one of the binary formats
func Encode(w io.Writer, img image.Image, format Format) error {
	switch format {
	case FormatPNG:
		if err := png.Encode(w, img); err != nil {
			return fmt.Errorf("failed to encode PNG: %w", err)
		}
	case FormatBMP:
		if err := bmp.Encode(w, img); err != nil {
			return fmt.Errorf("failed to encode BMP: %w", err)
		}
	case FormatTIFF:
		if err := tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate}); err != nil {
			return fmt.Errorf("failed to encode TIFF: %w", err)
		}
	default:
		return fmt.Errorf("unsupported output format %q", format)
	}
	return nil
}

// WritePNG encodes the framebuffer as a PNG image
func WritePNG(w io.Writer, fb *renderer.Framebuffer) error {
	return Encode(w, ToImage(fb), FormatPNG)
}
