package landing

import (
	"fmt"
	"image"
	"image/draw"
	"math"
	"strconv"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/Garsondee/lem-analysis/internal/render"
	"github.com/Garsondee/lem-analysis/internal/telemetry"
)

// DefaultTitle is the figure's super-title.
const DefaultTitle = "Rocket2 (LEM) Landing Performance"

// Line colours of the figure.
var (
	topGraphColor    = drawing.ColorFromHex("386d13")
	topLineColor     = drawing.ColorFromHex("f49842")
	middleGraphColor = drawing.ColorFromHex("f442d9")
	middleLineColor  = drawing.ColorFromHex("5642f4")
	bottomGraphColor = drawing.ColorFromHex("f4b942")
	bottomLineColor  = drawing.ColorFromHex("5642f4")
	hLineColor       = drawing.ColorFromHex("e0e0e0")
)

// Options controls figure geometry.
type Options struct {
	Width  int
	Height int
	Window int // rolling window size in samples
	Title  string
}

// DefaultOptions matches the 22x8 inch notebook figure at 100 DPI.
func DefaultOptions() Options {
	return Options{
		Width:  2200,
		Height: 800,
		Window: 100,
		Title:  DefaultTitle,
	}
}

// line is one trace of a panel.
type line struct {
	name  string
	data  telemetry.Series
	color drawing.Color
	width float64
}

// Panel is one horizontal strip of the figure.
type Panel struct {
	Label     string
	GridRows  int // share of the 8-row grid
	Primary   line
	Secondary line
	RefLine   bool // horizontal reference at y=1
}

// Panels builds the four strips of the landing figure, top to bottom.
func Panels(surface []telemetry.Sample, window int) []Panel {
	vel := telemetry.Extract(surface, telemetry.Velocity)
	rew := telemetry.Extract(surface, telemetry.Reward)
	avg := telemetry.Extract(surface, telemetry.AvgReward)
	fuel := telemetry.Extract(surface, telemetry.Fuel)

	spread := telemetry.Series{X: rew.X, Y: telemetry.Spread(rew.Y, window)}

	return []Panel{
		{
			Label:     "V_z",
			GridRows:  2,
			Primary:   line{"Velocity", vel, topGraphColor, 1.1},
			Secondary: line{"Running Avg", telemetry.Series{X: vel.X, Y: telemetry.RollingMean(vel.Y, window)}, topLineColor, 1.25},
			RefLine:   true,
		},
		{
			Label:     "Reward",
			GridRows:  4,
			Primary:   line{"Surface Hits Reward", rew, middleGraphColor, 1.5},
			Secondary: line{"Running Avg", avg, middleLineColor, 1.5},
		},
		{
			Label:     "Spread",
			GridRows:  1,
			Primary:   line{"Spread", spread, topGraphColor, 1.1},
			Secondary: line{"Running Avg", telemetry.Series{X: spread.X, Y: telemetry.ExpandingMean(spread.Y)}, topLineColor, 1.25},
			RefLine:   true,
		},
		{
			Label:     "Fuel",
			GridRows:  1,
			Primary:   line{"Fuel", fuel, bottomGraphColor, 1.1},
			Secondary: line{"Running Avg", telemetry.Series{X: fuel.X, Y: telemetry.RollingMean(fuel.Y, window)}, bottomLineColor, 1.25},
			RefLine:   true,
		},
	}
}

// Render draws the multi-panel landing figure for the surface-hit samples.
func Render(surface []telemetry.Sample, opts Options) (image.Image, error) {
	if opts.Window <= 0 {
		return nil, fmt.Errorf("window must be > 0, got %d", opts.Window)
	}
	if opts.Width <= 0 || opts.Height <= 0 {
		return nil, fmt.Errorf("invalid figure size %dx%d", opts.Width, opts.Height)
	}

	canvas := render.Canvas(opts.Width, opts.Height, render.FaceColor)

	titleFace, err := render.Face(render.Regular, 22)
	if err != nil {
		return nil, err
	}
	titleH := render.LineHeight(titleFace) + 16
	render.DrawTextCentered(canvas, titleFace, opts.Width/2, 8, opts.Title, render.White)

	panels := Panels(surface, opts.Window)
	xr := sharedXRange(surface)

	totalRows := 0
	for _, p := range panels {
		totalRows += p.GridRows
	}
	avail := opts.Height - titleH
	y := titleH
	for i, p := range panels {
		h := avail * p.GridRows / totalRows
		if i == len(panels)-1 {
			h = opts.Height - y
		}
		img, err := renderPanel(p, opts.Width, h, xr, i == len(panels)-1)
		if err != nil {
			return nil, fmt.Errorf("panel %s: %w", p.Label, err)
		}
		r := image.Rect(0, y, opts.Width, y+h)
		draw.Draw(canvas, r, img, img.Bounds().Min, draw.Src)
		y += h
	}
	return canvas, nil
}

func sharedXRange(samples []telemetry.Sample) *chart.ContinuousRange {
	if len(samples) < 2 {
		return nil
	}
	lo := float64(samples[0].Index)
	hi := float64(samples[len(samples)-1].Index)
	if lo == hi {
		return nil
	}
	return &chart.ContinuousRange{Min: lo, Max: hi}
}

func renderPanel(p Panel, w, h int, xr *chart.ContinuousRange, showX bool) (image.Image, error) {
	c, ok := stripChart(p, w, h, xr, showX)
	if !ok {
		return emptyPanel(p.Label, w, h)
	}
	cf, err := render.ChartFont()
	if err != nil {
		return nil, err
	}
	c.Font = cf

	iw := &chart.ImageWriter{}
	if err := c.Render(chart.PNG, iw); err != nil {
		return nil, err
	}
	return iw.Image()
}

// stripChart lays out one strip. ok is false when there is too little
// finite data to draw.
func stripChart(p Panel, w, h int, xr *chart.ContinuousRange, showX bool) (c chart.Chart, ok bool) {
	prim := finiteSeries(p.Primary.data)
	sec := finiteSeries(p.Secondary.data)
	if len(prim.X) < 2 || xr == nil {
		return c, false
	}

	// go-chart draws its secondary axis on the left, so the raw trace goes
	// there and the running average takes the right-hand axis.
	series := []chart.Series{
		chart.ContinuousSeries{
			Name:    p.Primary.name,
			YAxis:   chart.YAxisSecondary,
			XValues: prim.X,
			YValues: prim.Y,
			Style:   chart.Style{StrokeColor: p.Primary.color, StrokeWidth: p.Primary.width},
		},
	}
	if p.RefLine {
		series = append(series, chart.ContinuousSeries{
			Name:    "ref",
			YAxis:   chart.YAxisSecondary,
			XValues: []float64{xr.Min, xr.Max},
			YValues: []float64{1, 1},
			Style:   chart.Style{StrokeColor: hLineColor, StrokeWidth: 1},
		})
	}
	hasAvg := len(sec.X) >= 2
	if hasAvg {
		series = append(series, chart.ContinuousSeries{
			Name:    p.Secondary.name,
			XValues: sec.X,
			YValues: sec.Y,
			Style:   chart.Style{StrokeColor: p.Secondary.color, StrokeWidth: p.Secondary.width},
		})
	}

	axisStyle := chart.Style{FontColor: drawing.ColorWhite, StrokeColor: spine, FontSize: 9}
	c = chart.Chart{
		Width:        w,
		Height:       h,
		ColorPalette: darkPalette{},
		Background: chart.Style{
			Padding: chart.Box{Top: 6, Left: 20, Right: 20, Bottom: 4, IsSet: true},
		},
		Canvas: chart.Style{StrokeColor: spine, StrokeWidth: 1},
		XAxis: chart.XAxis{
			Style: axisStyle,
			Range: &chart.ContinuousRange{Min: xr.Min, Max: xr.Max},
		},
		YAxisSecondary: chart.YAxis{
			Name:      p.Label,
			NameStyle: chart.Style{FontColor: drawing.ColorWhite, FontSize: 10},
			Style:     axisStyle,
			Range:     paddedRange(prim.Y, p.RefLine),
		},
		Series: series,
	}
	if showX {
		c.XAxis.Ticks = xTicks(xr, w-plotInset)
	} else {
		c.XAxis.Style.Hidden = true
	}
	if hasAvg {
		c.YAxis = chart.YAxis{
			Style: chart.Style{FontColor: p.Secondary.color, StrokeColor: p.Secondary.color, FontSize: 9},
			Range: paddedRange(sec.Y, false),
		}
	} else {
		// nothing is mapped to the right axis; give it a range so go-chart
		// does not derive an infinite one
		c.YAxis = chart.YAxis{
			Style: chart.Style{Hidden: true},
			Range: &chart.ContinuousRange{Min: 0, Max: 1},
		}
	}
	return c, true
}

const (
	minTickSpacing = 90  // narrowest gap between x tick labels, in pixels
	plotInset      = 140 // padding plus both y-axis label columns
)

// xTicks labels the shared index axis with round values spaced to fit
// width pixels. The range ends get unlabelled ticks so go-chart keeps the
// full range.
func xTicks(xr *chart.ContinuousRange, width int) []chart.Tick {
	limit := max(2, width/minTickSpacing)
	var vals []float64
	for n := limit; n >= 2; n-- {
		vals = render.NiceTicks(xr.Min, xr.Max, n)
		if len(vals) <= limit {
			break
		}
	}
	if len(vals) < 2 {
		vals = []float64{xr.Min, xr.Max}
	}
	ticks := make([]chart.Tick, 0, len(vals)+2)
	if vals[0] > xr.Min {
		ticks = append(ticks, chart.Tick{Value: xr.Min})
	}
	for _, v := range vals {
		ticks = append(ticks, chart.Tick{Value: v, Label: strconv.Itoa(int(math.Round(v)))})
	}
	if vals[len(vals)-1] < xr.Max {
		ticks = append(ticks, chart.Tick{Value: xr.Max})
	}
	return ticks
}

// paddedRange returns an explicit y-range when the values would otherwise
// collapse to a zero delta; nil lets go-chart pick its own.
func paddedRange(ys []float64, includeOne bool) chart.Range {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, y := range ys {
		lo = math.Min(lo, y)
		hi = math.Max(hi, y)
	}
	if includeOne {
		lo = math.Min(lo, 1)
		hi = math.Max(hi, 1)
	}
	if hi > lo {
		return nil
	}
	pad := math.Max(math.Abs(lo)*0.1, 1)
	return &chart.ContinuousRange{Min: lo - pad, Max: hi + pad}
}

func finiteSeries(s telemetry.Series) telemetry.Series {
	out := telemetry.Series{}
	for i, y := range s.Y {
		if math.IsNaN(y) || math.IsInf(y, 0) {
			continue
		}
		out.X = append(out.X, s.X[i])
		out.Y = append(out.Y, y)
	}
	return out
}

func emptyPanel(label string, w, h int) (image.Image, error) {
	img := render.Canvas(w, h, render.FaceColor)
	face, err := render.Face(render.Regular, 12)
	if err != nil {
		return nil, err
	}
	inner := image.Rect(20, 6, w-20, h-4)
	strokeRect(img, inner)
	render.DrawText(img, face, inner.Min.X+6, inner.Min.Y+4, label, render.White)
	render.DrawTextCentered(img, face, w/2, h/2-render.LineHeight(face)/2, "no data", render.White)
	return img, nil
}

func strokeRect(img draw.Image, r image.Rectangle) {
	render.Fill(img, image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+1), render.SpineColor)
	render.Fill(img, image.Rect(r.Min.X, r.Max.Y-1, r.Max.X, r.Max.Y), render.SpineColor)
	render.Fill(img, image.Rect(r.Min.X, r.Min.Y, r.Min.X+1, r.Max.Y), render.SpineColor)
	render.Fill(img, image.Rect(r.Max.X-1, r.Min.Y, r.Max.X, r.Max.Y), render.SpineColor)
}

// SavePNG writes the rendered figure to path.
func SavePNG(path string, img image.Image) error {
	return render.SavePNG(path, img)
}
