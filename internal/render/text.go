package render

import (
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// DrawText draws s with its top-left corner at (x, y).
func DrawText(dst draw.Image, face font.Face, x, y int, s string, col color.Color) {
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(col),
		Face: face,
		Dot: fixed.Point26_6{
			X: fixed.I(x),
			Y: fixed.I(y) + face.Metrics().Ascent,
		},
	}
	d.DrawString(s)
}

// DrawTextCentered draws s horizontally centred on cx with its top at y.
func DrawTextCentered(dst draw.Image, face font.Face, cx, y int, s string, col color.Color) {
	w := TextWidth(face, s)
	DrawText(dst, face, cx-w/2, y, s, col)
}

// TextWidth returns the advance width of s in pixels.
func TextWidth(face font.Face, s string) int {
	return font.MeasureString(face, s).Ceil()
}

// LineHeight returns the face's recommended line spacing in pixels.
func LineHeight(face font.Face) int {
	return face.Metrics().Height.Ceil()
}

// Fill paints r on dst with a solid colour.
func Fill(dst draw.Image, r image.Rectangle, col color.Color) {
	draw.Draw(dst, r, image.NewUniform(col), image.Point{}, draw.Src)
}

// Canvas returns a new RGBA image of w×h filled with bg.
func Canvas(w, h int, bg color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	Fill(img, img.Bounds(), bg)
	return img
}

// Clone copies src into a fresh RGBA image with origin (0,0).
func Clone(src image.Image) *image.RGBA {
	b := src.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Src)
	return dst
}
