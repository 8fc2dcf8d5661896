package thumbs

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"
)

var (
	badgeBackground = color.RGBA{R: 0x30, G: 0x30, B: 0x30, A: 0xe0}
	badgeForeground = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
)

// PausedOverlay returns a desaturated copy of src with a pause badge in the
// bottom right corner. src is not modified.
func PausedOverlay(src image.Image) *image.RGBA {
	b := src.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Src)

	Desaturate(dst)
	drawPauseBadge(dst)
	return dst
}

// Desaturate converts img to grayscale in place, keeping alpha
func Desaturate(img *image.RGBA) {
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			i := img.PixOffset(x, y)
			r, g, bl := uint32(img.Pix[i]), uint32(img.Pix[i+1]), uint32(img.Pix[i+2])
			lum := uint8((299*r + 587*g + 114*bl) / 1000)
			img.Pix[i], img.Pix[i+1], img.Pix[i+2] = lum, lum, lum
		}
	}
}

// drawPauseBadge paints a half-size square badge with two vertical bars
func drawPauseBadge(img *image.RGBA) {
	b := img.Bounds()
	side := min(b.Dx(), b.Dy()) / 2
	if side < 4 {
		return
	}

	badge := image.Rect(b.Max.X-side, b.Max.Y-side, b.Max.X, b.Max.Y)
	draw.Draw(img, badge, image.NewUniform(badgeBackground), image.Point{}, draw.Over)

	barW := max(side/5, 1)
	barH := side * 3 / 5
	top := badge.Min.Y + (side-barH)/2
	left := badge.Min.X + side/2 - barW - max(barW/2, 1)
	right := badge.Min.X + side/2 + max(barW/2, 1)

	fg := image.NewUniform(badgeForeground)
	draw.Draw(img, image.Rect(left, top, left+barW, top+barH), fg, image.Point{}, draw.Src)
	draw.Draw(img, image.Rect(right, top, right+barW, top+barH), fg, image.Point{}, draw.Src)
}
