package output

import (
	"image"
	"image/color"
	"math"

	"github.com/df07/go-sphere-raytracer/pkg/core"
	"github.com/df07/go-sphere-raytracer/pkg/renderer"
)

// QuantizeComponent converts a linear color component to an 8-bit value.
// It applies gamma 2, clamps to [0, 0.999] and scales by 256.
// Negative and NaN inputs map to 0.
func QuantizeComponent(c float64) uint8 {
	return quantizeGamma(math.Sqrt(c))
}

// QuantizeColor converts a linear color to 8-bit RGB
func QuantizeColor(c core.Vec3) (r, g, b uint8) {
	gamma := c.Sqrt()
	return quantizeGamma(gamma.X), quantizeGamma(gamma.Y), quantizeGamma(gamma.Z)
}

// quantizeGamma scales an already gamma-corrected component to 8 bits
func quantizeGamma(g float64) uint8 {
	if !(g > 0) {
		return 0
	}
	return uint8(256 * min(g, 0.999))
}

// ToImage converts a framebuffer to an opaque RGBA image
func ToImage(fb *renderer.Framebuffer) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, fb.Width, fb.Height))
	for y := 0; y < fb.Height; y++ {
		for x := 0; x < fb.Width; x++ {
			r, g, b := QuantizeColor(fb.At(x, y))
			img.SetRGBA(x, y, color.RGBA{R: r, G: g, B: b, A: 255})
		}
	}
	return img
}
