package heatmap

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"sort"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// ErrUnknownColormap is returned by Lookup for names it does not know.
var ErrUnknownColormap = errors.New("unknown colormap")

// Colormap maps t in [0,1] to a colour.
type Colormap func(t float64) color.RGBA

// ColorBrewer RdBu, red for low values and blue for high ones.
var rdbuStops = []string{
	"#67001f", "#b2182b", "#d6604d", "#f4a582", "#fddbc7", "#f7f7f7",
	"#d1e5f0", "#92c5de", "#4393c3", "#2166ac", "#053061",
}

var colormaps = map[string]Colormap{
	"rdbu":    gradient(rdbuStops),
	"viridis": fromChart(chart.Viridis),
	"jet":     fromChart(chart.Jet),
}

// Lookup returns the colormap registered under name, ignoring case.
func Lookup(name string) (Colormap, error) {
	cm, ok := colormaps[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, fmt.Errorf("%w %q (have %s)", ErrUnknownColormap, name, strings.Join(Names(), ", "))
	}
	return cm, nil
}

// Names lists the registered colormaps.
func Names() []string {
	out := make([]string, 0, len(colormaps))
	for k := range colormaps {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// gradient blends evenly spaced hex stops in CIE-Lab.
func gradient(hexes []string) Colormap {
	stops := make([]colorful.Color, len(hexes))
	for i, h := range hexes {
		c, err := colorful.Hex(h)
		if err != nil {
			panic(err)
		}
		stops[i] = c
	}
	return func(t float64) color.RGBA {
		t = clamp01(t)
		pos := t * float64(len(stops)-1)
		i := int(pos)
		if i >= len(stops)-1 {
			return rgba(stops[len(stops)-1])
		}
		return rgba(stops[i].BlendLab(stops[i+1], pos-float64(i)).Clamped())
	}
}

func fromChart(f func(v, vmin, vmax float64) drawing.Color) Colormap {
	return func(t float64) color.RGBA {
		c := f(clamp01(t), 0, 1)
		return color.RGBA{R: c.R, G: c.G, B: c.B, A: 255}
	}
}

func rgba(c colorful.Color) color.RGBA {
	r, g, b := c.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}
}

func clamp01(t float64) float64 {
	if math.IsNaN(t) {
		return 0.5
	}
	return math.Max(0, math.Min(1, t))
}
