package render

import (
	"image"

	"gonum.org/v1/gonum/mat"
)

// Image colours mag one pixel per entry: time runs left to right and
// frequency bottom to top, so row 0 of mag is the bottom pixel row.
func Image(mag *mat.Dense, norm LogNorm, p Palette) *image.RGBA {
	bins, spectra := mag.Dims()
	img := image.NewRGBA(image.Rect(0, 0, spectra, bins))
	for i := 0; i < bins; i++ {
		y := bins - 1 - i
		for j, v := range mag.RawRowView(i) {
			img.SetRGBA(j, y, p.At(norm.At(v)))
		}
	}
	return img
}

// Render normalises mag over its own range and colours it with p.
func Render(mag *mat.Dense, p Palette) (*image.RGBA, LogNorm) {
	norm := NewLogNorm(mag)
	return Image(mag, norm, p), norm
}
