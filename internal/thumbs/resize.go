package thumbs

import (
	"image"

	"golang.org/x/image/draw"
)

// ResizeKeepRatio scales src down so neither side exceeds maxSide, keeping
// the aspect ratio. It returns src unchanged and false if it already fits.
func ResizeKeepRatio(src image.Image, maxSide int) (image.Image, bool) {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	if maxSide <= 0 || (w <= maxSide && h <= maxSide) {
		return src, false
	}

	fw, fh := float64(w), float64(h)
	if fw > float64(maxSide) {
		f := float64(maxSide) / fw
		fw, fh = float64(int(fw*f)), float64(int(fh*f))
	}
	if fh > float64(maxSide) {
		f := float64(maxSide) / fh
		fw, fh = float64(int(fw*f)), float64(int(fh*f))
	}

	nw, nh := max(int(fw), 1), max(int(fh), 1)
	dst := image.NewRGBA(image.Rect(0, 0, nw, nh))
	draw.BiLinear.Scale(dst, dst.Bounds(), src, b, draw.Src, nil)
	return dst, true
}

// Fits reports whether img has the size produced for maxSide, that is one
// of its sides equals maxSide and neither exceeds it
func Fits(img image.Image, maxSide int) bool {
	b := img.Bounds()
	if b.Dx() > maxSide || b.Dy() > maxSide {
		return false
	}
	return b.Dx() == maxSide || b.Dy() == maxSide
}
