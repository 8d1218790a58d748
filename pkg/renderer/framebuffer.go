package renderer

import "github.com/df07/go-sphere-raytracer/pkg/core"

// Framebuffer holds the averaged linear color of every pixel.
// Row 0 is the top of the image.
type Framebuffer struct {
	Width  int
	Height int
	Pixels []core.Vec3
}

// NewFramebuffer creates a black framebuffer of the given size
func NewFramebuffer(width, height int) *Framebuffer {
	return &Framebuffer{
		Width:  width,
		Height: height,
		Pixels: make([]core.Vec3, width*height),
	}
}

// At returns the color at column x, row y
func (fb *Framebuffer) At(x, y int) core.Vec3 {
	return fb.Pixels[y*fb.Width+x]
}

// Set stores the color at column x, row y
func (fb *Framebuffer) Set(x, y int, color core.Vec3) {
	fb.Pixels[y*fb.Width+x] = color
}
