package icons

import (
	"image"

	"github.com/fogleman/gg"
)

// drawPlaceholder renders a square filled with background and a circle of
// radius size/3 centered at (size/2, size/2) filled with foreground.
func drawPlaceholder(size int, background, foreground string) image.Image {
	dc := gg.NewContext(size, size)
	dc.SetHexColor(background)
	dc.Clear()

	center := float64(size / 2)
	radius := float64(size / 3)
	if radius > 0 {
		dc.DrawCircle(center, center, radius)
		dc.SetHexColor(foreground)
		dc.Fill()
	}

	return dc.Image()
}
