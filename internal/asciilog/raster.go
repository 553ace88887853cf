package asciilog

import (
	"image"
	"image/gif"
	"strings"

	"golang.org/x/image/font"

	"github.com/Garsondee/lem-analysis/internal/anim"
	"github.com/Garsondee/lem-analysis/internal/render"
)

const (
	minSide = 50
	margin  = 10
)

// Rasterizer draws board text on a fixed character grid.
type Rasterizer struct {
	face    font.Face
	palette Palette
	cellW   int
	cellH   int
}

// NewRasterizer uses Go Mono at size pixels.
func NewRasterizer(size float64, p Palette) (*Rasterizer, error) {
	face, err := render.Face(render.Mono, size)
	if err != nil {
		return nil, err
	}
	adv, _ := face.GlyphAdvance('W')
	return &Rasterizer{
		face:    face,
		palette: p,
		cellW:   adv.Ceil(),
		cellH:   render.LineHeight(face),
	}, nil
}

// Size returns the image size for a frame.
func (r *Rasterizer) Size(frame string) (w, h int) {
	lines := strings.Split(frame, "\n")
	w = max(minSide, r.cellW*(6+len([]rune(lines[0]))))
	h = max(minSide, r.cellH*(3+len(lines)))
	return w, h
}

// Render draws one frame on the palette background.
func (r *Rasterizer) Render(frame string) *image.RGBA {
	w, h := r.Size(frame)
	img := render.Canvas(w, h, r.palette.Background)

	y := margin
	for _, line := range strings.Split(frame, "\n") {
		x := margin
		for _, ch := range line {
			adv := r.cellW
			if a, ok := r.face.GlyphAdvance(ch); ok {
				adv = a.Ceil()
			}
			off := 0
			if adv < r.cellW {
				off = (r.cellW - adv) / 2
			}
			if ch != ' ' {
				render.DrawText(img, r.face, x+off, y, string(ch), r.palette.Color(ch))
			}
			x += max(adv, r.cellW)
		}
		y += r.cellH
	}
	return img
}

// Animate renders the frames and pads them to the largest one.
func (r *Rasterizer) Animate(frames []string, delayMS int) (*gif.GIF, error) {
	if len(frames) == 0 {
		return nil, anim.ErrNoFrames
	}
	imgs := make([]image.Image, len(frames))
	for i, f := range frames {
		imgs[i] = r.Render(f)
	}
	opts := anim.DefaultOptions()
	opts.DelayMS = delayMS
	opts.Fit = anim.FitPad
	opts.Background = r.palette.Background
	return anim.Assemble(imgs, opts)
}
