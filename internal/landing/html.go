package landing

import (
	"fmt"
	"io"
	"math"
	"os"
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/Garsondee/lem-analysis/internal/render"
	"github.com/Garsondee/lem-analysis/internal/telemetry"
)

// WriteHTML writes an interactive page with one zoomable line chart per
// panel of the landing figure.
func WriteHTML(w io.Writer, surface []telemetry.Sample, o Options) error {
	if o.Window <= 0 {
		return fmt.Errorf("window must be > 0, got %d", o.Window)
	}
	page := components.NewPage()
	page.SetPageTitle(o.Title)

	for i, p := range Panels(surface, o.Window) {
		page.AddCharts(panelChart(p, o, i == 0))
	}
	return page.Render(w)
}

// SaveHTML is WriteHTML to a file.
func SaveHTML(path string, surface []telemetry.Sample, o Options) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WriteHTML(f, surface, o); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}

func panelChart(p Panel, o Options, first bool) *charts.Line {
	height := 120 * p.GridRows
	title := opts.Title{Title: p.Label}
	if first {
		title = opts.Title{Title: o.Title, Subtitle: p.Label}
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle:       o.Title,
			Width:           fmt.Sprintf("%dpx", o.Width/2),
			Height:          fmt.Sprintf("%dpx", height+60),
			BackgroundColor: render.ToHex(render.FaceColor),
		}),
		charts.WithTitleOpts(title),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true), Top: "bottom"}),
		charts.WithDataZoomOpts(opts.DataZoom{Type: "slider", Start: 0, End: 100}),
		charts.WithYAxisOpts(opts.YAxis{Name: p.Label, Scale: opts.Bool(true)}),
	)

	line.SetXAxis(axisLabels(p.Primary.data.X))
	line.AddSeries(p.Primary.name, lineData(p.Primary.data.Y),
		charts.WithLineStyleOpts(opts.LineStyle{Color: hex(p.Primary.color), Width: float32(p.Primary.width)}))
	line.AddSeries(p.Secondary.name, lineData(p.Secondary.data.Y),
		charts.WithLineStyleOpts(opts.LineStyle{Color: hex(p.Secondary.color), Width: float32(p.Secondary.width)}))
	return line
}

func axisLabels(xs []float64) []string {
	out := make([]string, len(xs))
	for i, x := range xs {
		out[i] = strconv.Itoa(int(x))
	}
	return out
}

// lineData maps non-finite values to "-", which echarts draws as a gap.
func lineData(ys []float64) []opts.LineData {
	out := make([]opts.LineData, len(ys))
	for i, y := range ys {
		if math.IsNaN(y) || math.IsInf(y, 0) {
			out[i] = opts.LineData{Value: "-"}
			continue
		}
		out[i] = opts.LineData{Value: y}
	}
	return out
}

func hex(c drawing.Color) string {
	return render.ToHex(c)
}
