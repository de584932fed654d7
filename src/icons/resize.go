package icons

import (
	"image"
	"image/color"

	"github.com/disintegration/imaging"

	"iconforge/src/config"
)

var resampleFilters = map[string]imaging.ResampleFilter{
	"lanczos":    imaging.Lanczos,
	"catmullrom": imaging.CatmullRom,
	"mitchell":   imaging.MitchellNetravali,
	"linear":     imaging.Linear,
	"box":        imaging.Box,
	"nearest":    imaging.NearestNeighbor,
}

// resampleFilter falls back to Lanczos for names config validation
// would have rejected.
func resampleFilter(name string) imaging.ResampleFilter {
	if f, ok := resampleFilters[name]; ok {
		return f
	}
	return imaging.Lanczos
}

// resizeSquare scales src to a size×size raster. Stretch ignores the
// aspect ratio; contain letterboxes onto a transparent canvas.
func resizeSquare(src image.Image, size int, filter imaging.ResampleFilter, fit string) *image.NRGBA {
	if fit != config.FitContain {
		return imaging.Resize(src, size, size, filter)
	}

	b := src.Bounds()
	w, h := size, size
	if b.Dx() > b.Dy() {
		h = scaled(size, b.Dy(), b.Dx())
	} else if b.Dy() > b.Dx() {
		w = scaled(size, b.Dx(), b.Dy())
	}

	fitted := imaging.Resize(src, w, h, filter)
	return imaging.PasteCenter(imaging.New(size, size, color.Transparent), fitted)
}

// scaled returns round(size*num/den), never less than one pixel
func scaled(size, num, den int) int {
	v := (size*num + den/2) / den
	if v < 1 {
		return 1
	}
	return v
}
