package render

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Hex parses "#rrggbb" (or "#rgb") into an opaque colour.
func Hex(s string) (color.RGBA, error) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "#") {
		s = "#" + s
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("colour %q: %w", s, err)
	}
	r, g, b := c.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}, nil
}

// MustHex is Hex for package-level palette literals.
func MustHex(s string) color.RGBA {
	c, err := Hex(s)
	if err != nil {
		panic(err)
	}
	return c
}

// ToHex formats c as "#rrggbb", ignoring alpha.
func ToHex(c color.Color) string {
	cf, _ := colorful.MakeColor(opaque(c))
	return cf.Hex()
}

func opaque(c color.Color) color.Color {
	r, g, b, _ := c.RGBA()
	return color.RGBA64{R: uint16(r), G: uint16(g), B: uint16(b), A: 0xffff}
}

// Palette of the landing figure.
var (
	FaceColor  = MustHex("#07000d")
	SpineColor = MustHex("#5998ff")
	White      = color.RGBA{255, 255, 255, 255}
	Black      = color.RGBA{0, 0, 0, 255}
)
