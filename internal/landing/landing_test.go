package landing

import (
	"bytes"
	"math"
	"path/filepath"
	"strings"
	"testing"

	"github.com/wcharczuk/go-chart/v2"

	"github.com/Garsondee/lem-analysis/internal/render"
	"github.com/Garsondee/lem-analysis/internal/telemetry"
)

func surfaceSamples(n int) []telemetry.Sample {
	out := make([]telemetry.Sample, n)
	for i := range out {
		out[i] = telemetry.Sample{
			Index:     i * 2,
			Velocity:  -float64(i%7) - 0.5,
			Reward:    float64((i*37)%50) - 25,
			AvgReward: float64(i) / 10,
			Fuel:      float64(800 - i*3),
		}
	}
	return out
}

func smallOptions() Options {
	o := DefaultOptions()
	o.Width = 900
	o.Height = 420
	o.Window = 3
	return o
}

func TestDefaultOptions(t *testing.T) {
	o := DefaultOptions()
	if o.Width != 2200 || o.Height != 800 || o.Window != 100 {
		t.Fatalf("unexpected defaults: %+v", o)
	}
	if o.Title != "Rocket2 (LEM) Landing Performance" {
		t.Fatalf("unexpected title: %q", o.Title)
	}
}

func TestPanels_OrderAndWeights(t *testing.T) {
	panels := Panels(surfaceSamples(10), 3)
	if len(panels) != 4 {
		t.Fatalf("expected 4 panels, got %d", len(panels))
	}
	labels := []string{"V_z", "Reward", "Spread", "Fuel"}
	rows := []int{2, 4, 1, 1}
	for i, p := range panels {
		if p.Label != labels[i] || p.GridRows != rows[i] {
			t.Fatalf("panel %d: expected %s/%d, got %s/%d", i, labels[i], rows[i], p.Label, p.GridRows)
		}
	}
	if panels[1].RefLine {
		t.Fatal("reward panel must not carry the y=1 reference line")
	}
}

func TestPanels_SpreadUsesRewardWindow(t *testing.T) {
	s := []telemetry.Sample{{Reward: 1}, {Reward: 5}, {Reward: 2}}
	spread := Panels(s, 2)[2].Primary.data.Y
	if !math.IsNaN(spread[0]) || spread[1] != 4 || spread[2] != 3 {
		t.Fatalf("unexpected spread: %v", spread)
	}
}

func TestRender_Size(t *testing.T) {
	o := smallOptions()
	img, err := Render(surfaceSamples(40), o)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if img.Bounds().Dx() != o.Width || img.Bounds().Dy() != o.Height {
		t.Fatalf("expected %dx%d, got %v", o.Width, o.Height, img.Bounds())
	}
}

func TestRender_NoSurfaceHits(t *testing.T) {
	img, err := Render(nil, smallOptions())
	if err != nil {
		t.Fatalf("empty input should still render, got %v", err)
	}
	// top-left corner stays the face colour
	r, g, b, _ := img.At(0, 0).RGBA()
	fr, fg, fb, _ := render.FaceColor.RGBA()
	if r != fr || g != fg || b != fb {
		t.Fatalf("expected face colour background, got %v", img.At(0, 0))
	}
}

func TestRender_ConstantSeries(t *testing.T) {
	s := surfaceSamples(10)
	for i := range s {
		s[i].Fuel = 0
		s[i].Velocity = 1
	}
	if _, err := Render(s, smallOptions()); err != nil {
		t.Fatalf("constant series should render, got %v", err)
	}
}

func TestRender_RejectsBadWindow(t *testing.T) {
	o := smallOptions()
	o.Window = 0
	if _, err := Render(surfaceSamples(5), o); err == nil {
		t.Fatal("expected error for window 0")
	}
}

func TestStripChart_RawSeriesOnLeftAxis(t *testing.T) {
	p := Panels(surfaceSamples(20), 3)[1]
	c, ok := stripChart(p, 900, 200, &chart.ContinuousRange{Min: 0, Max: 38}, false)
	if !ok {
		t.Fatal("expected a chart")
	}
	raw := c.Series[0].(chart.ContinuousSeries)
	if raw.Name != "Surface Hits Reward" || raw.YAxis != chart.YAxisSecondary {
		t.Fatalf("raw series should sit on the left axis, got %q on %v", raw.Name, raw.YAxis)
	}
	avg := c.Series[len(c.Series)-1].(chart.ContinuousSeries)
	if avg.Name != "Running Avg" || avg.YAxis != chart.YAxisPrimary {
		t.Fatalf("running average should sit on the right axis, got %q on %v", avg.Name, avg.YAxis)
	}
	if c.YAxisSecondary.Name != "Reward" {
		t.Fatalf("expected panel label on the left axis, got %q", c.YAxisSecondary.Name)
	}
}

func TestRender_WindowLongerThanSeries(t *testing.T) {
	// running averages are all NaN so only the left axis carries data
	o := smallOptions()
	o.Window = 50
	if _, err := Render(surfaceSamples(10), o); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestXTicks_SpacedForWidth(t *testing.T) {
	xr := &chart.ContinuousRange{Min: 0, Max: 8997}
	for _, width := range []int{2060, 760, 200} {
		ticks := xTicks(xr, width)
		if ticks[0].Value != xr.Min || ticks[len(ticks)-1].Value != xr.Max {
			t.Fatalf("width %d: ticks must span the range, got %v", width, ticks)
		}
		var labelled []float64
		for _, tk := range ticks {
			if tk.Label != "" {
				labelled = append(labelled, tk.Value)
			}
		}
		if len(labelled) < 2 || len(labelled) > max(2, width/minTickSpacing) {
			t.Fatalf("width %d: unexpected label count %d", width, len(labelled))
		}
		gap := (labelled[1] - labelled[0]) / (xr.Max - xr.Min) * float64(width)
		if width >= 2*minTickSpacing && gap < minTickSpacing*0.9 {
			t.Fatalf("width %d: labels %.0fpx apart", width, gap)
		}
	}
}

func TestXTicks_LabelsAreIntegers(t *testing.T) {
	ticks := xTicks(&chart.ContinuousRange{Min: 0, Max: 38}, 900)
	for _, tk := range ticks {
		if strings.Contains(tk.Label, ".") {
			t.Fatalf("expected integer label, got %q", tk.Label)
		}
	}
}

func TestPaddedRange(t *testing.T) {
	if r := paddedRange([]float64{1, 2}, false); r != nil {
		t.Fatalf("expected automatic range, got %v", r)
	}
	r := paddedRange([]float64{5, 5}, false)
	cr, ok := r.(*chart.ContinuousRange)
	if !ok || cr.Min >= 5 || cr.Max <= 5 {
		t.Fatalf("expected padded range around 5, got %v", r)
	}
	if r := paddedRange([]float64{5, 5}, true); r != nil {
		t.Fatalf("reference line should widen the range, got %v", r)
	}
}

func TestFiniteSeries(t *testing.T) {
	got := finiteSeries(telemetry.Series{
		X: []float64{0, 1, 2, 3},
		Y: []float64{math.NaN(), 1, math.Inf(1), 2},
	})
	if len(got.X) != 2 || got.X[0] != 1 || got.X[1] != 3 {
		t.Fatalf("unexpected finite series: %+v", got)
	}
}

// --- HTML ---

func TestWriteHTML(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteHTML(&buf, surfaceSamples(12), smallOptions()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"Rocket2 (LEM) Landing Performance", "Surface Hits Reward", "echarts"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected html to contain %q", want)
		}
	}
}

func TestLineData_GapsForNaN(t *testing.T) {
	d := lineData([]float64{math.NaN(), 2})
	if d[0].Value != "-" {
		t.Fatalf("expected gap marker, got %v", d[0].Value)
	}
	if d[1].Value != 2.0 {
		t.Fatalf("expected 2, got %v", d[1].Value)
	}
}

func TestSaveHTML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.html")
	if err := SaveHTML(path, surfaceSamples(5), smallOptions()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
