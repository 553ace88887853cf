// Package anim stitches still frames into a looping GIF with a label
// burned into each frame.
package anim

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/color/palette"
	"image/draw"
	"image/gif"
	"os"

	"github.com/disintegration/gift"

	"github.com/Garsondee/lem-analysis/internal/render"
)

// ErrNoFrames is returned when there is nothing to animate.
var ErrNoFrames = errors.New("no frames to create GIF")

// Fit decides how frames of a different size are brought to the GIF size.
type Fit int

const (
	FitResize Fit = iota // scale to the first frame
	FitPad               // centre on a canvas as large as the largest frame
)

// Options for building an animation.
type Options struct {
	DelayMS    int
	Dither     bool
	Fit        Fit
	Background color.Color

	LabelColor color.Color
	LabelSize  float64
	LabelAt    image.Point
}

// DefaultOptions are the settings of the PNG animator.
func DefaultOptions() Options {
	return Options{
		DelayMS:    550,
		Fit:        FitResize,
		Background: render.Black,
		LabelColor: color.RGBA{0, 0, 255, 255},
		LabelSize:  30,
		LabelAt:    image.Pt(10, 10),
	}
}

// Overlay returns a copy of img with text drawn at opts.LabelAt.
func Overlay(img image.Image, text string, opts Options) (*image.RGBA, error) {
	face, err := render.Face(render.Regular, opts.LabelSize)
	if err != nil {
		return nil, err
	}
	out := render.Clone(img)
	render.DrawText(out, face, opts.LabelAt.X, opts.LabelAt.Y, text, opts.LabelColor)
	return out, nil
}

// LoadLabelled reads each frame, resolving CSV entries to their heatmaps,
// and overlays its episode label. report is called with every label.
func LoadLabelled(paths []string, opts Options, report func(label string)) ([]image.Image, error) {
	frames := make([]image.Image, 0, len(paths))
	for i, p := range paths {
		p = ResolveFrame(p)
		img, err := render.LoadImage(p)
		if err != nil {
			return nil, err
		}
		label := EpisodeLabel(p, i)
		if report != nil {
			report(label)
		}
		labelled, err := Overlay(img, label, opts)
		if err != nil {
			return nil, err
		}
		frames = append(frames, labelled)
	}
	return frames, nil
}

// Assemble quantizes the frames to the Plan 9 palette and builds an
// endlessly looping GIF.
func Assemble(frames []image.Image, opts Options) (*gif.GIF, error) {
	if len(frames) == 0 {
		return nil, ErrNoFrames
	}
	size := targetSize(frames, opts.Fit)
	if size.Dx() == 0 || size.Dy() == 0 {
		return nil, fmt.Errorf("empty frame size %v", size)
	}

	out := &gif.GIF{
		Image:     make([]*image.Paletted, 0, len(frames)),
		Delay:     make([]int, 0, len(frames)),
		LoopCount: 0,
	}
	delay := Centiseconds(opts.DelayMS)
	for _, f := range frames {
		rgba := fit(f, size, opts)
		pimg := image.NewPaletted(size, palette.Plan9)
		if opts.Dither {
			draw.FloydSteinberg.Draw(pimg, pimg.Bounds(), rgba, image.Point{})
		} else {
			draw.Draw(pimg, pimg.Bounds(), rgba, image.Point{}, draw.Src)
		}
		out.Image = append(out.Image, pimg)
		out.Delay = append(out.Delay, delay)
	}
	return out, nil
}

// Centiseconds converts a frame duration to GIF delay units.
func Centiseconds(ms int) int {
	if ms <= 0 {
		return 0
	}
	return (ms + 5) / 10
}

// Save writes g to path.
func Save(path string, g *gif.GIF) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := gif.EncodeAll(f, g); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}

func targetSize(frames []image.Image, mode Fit) image.Rectangle {
	if mode == FitResize {
		b := frames[0].Bounds()
		return image.Rect(0, 0, b.Dx(), b.Dy())
	}
	w, h := 0, 0
	for _, f := range frames {
		b := f.Bounds()
		w = max(w, b.Dx())
		h = max(h, b.Dy())
	}
	return image.Rect(0, 0, w, h)
}

func fit(src image.Image, size image.Rectangle, opts Options) *image.RGBA {
	b := src.Bounds()
	if b.Dx() == size.Dx() && b.Dy() == size.Dy() {
		return render.Clone(src)
	}
	if opts.Fit == FitResize {
		g := gift.New(gift.Resize(size.Dx(), size.Dy(), gift.LanczosResampling))
		dst := image.NewRGBA(g.Bounds(b))
		g.Draw(dst, src)
		return dst
	}
	bg := opts.Background
	if bg == nil {
		bg = render.Black
	}
	dst := render.Canvas(size.Dx(), size.Dy(), bg)
	off := image.Pt((size.Dx()-b.Dx())/2, (size.Dy()-b.Dy())/2)
	draw.Draw(dst, b.Sub(b.Min).Add(off), src, b.Min, draw.Over)
	return dst
}
