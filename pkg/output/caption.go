package output

import (
	"image"

	"github.com/fogleman/gg"
)

const captionPadding = 4

// Caption draws text in a translucent band along the bottom edge of img.
// The image is modified in place and returned.
func Caption(img *image.RGBA, text string) *image.RGBA {
	if text == "" {
		return img
	}

	dc := gg.NewContextForRGBA(img)
	width := float64(img.Bounds().Dx())
	height := float64(img.Bounds().Dy())
	_, textHeight := dc.MeasureString(text)
	band := textHeight + 2*captionPadding

	dc.SetRGBA(0, 0, 0, 0.6)
	dc.DrawRectangle(0, height-band, width, band)
	dc.Fill()

	dc.SetRGB(1, 1, 1)
	dc.DrawStringAnchored(text, captionPadding, height-band/2, 0, 0.5)
	return img
}
