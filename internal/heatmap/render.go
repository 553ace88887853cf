package heatmap

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"path/filepath"
	"strings"

	"github.com/fogleman/gg"

	"github.com/Garsondee/lem-analysis/internal/render"
)

// Annotate controls whether cell values are written into the grid.
type Annotate int

const (
	AnnotateAuto Annotate = iota // only when the text fits its cell
	AnnotateOn
	AnnotateOff
)

func (a Annotate) String() string {
	switch a {
	case AnnotateOn:
		return "on"
	case AnnotateOff:
		return "off"
	default:
		return "auto"
	}
}

// ParseAnnotate accepts "auto", "on" or "off".
func ParseAnnotate(s string) (Annotate, error) {
	switch strings.ToLower(s) {
	case "auto", "":
		return AnnotateAuto, nil
	case "on", "true", "yes":
		return AnnotateOn, nil
	case "off", "false", "no":
		return AnnotateOff, nil
	}
	return AnnotateAuto, fmt.Errorf("annotate must be auto, on or off, got %q", s)
}

// Options controls the heatmap figure.
type Options struct {
	Width       int
	Height      int
	Colormap    string
	Annotate    Annotate
	Threshold   *float64 // in data units; nil uses half the normalized max
	CbarLabel   string
	ValueFormat string
	Background  color.Color
}

// DefaultOptions is an 11x8 inch figure at 100 DPI.
func DefaultOptions() Options {
	return Options{
		Width:       1100,
		Height:      800,
		Colormap:    "RdBu",
		Annotate:    AnnotateAuto,
		CbarLabel:   "Q Value",
		ValueFormat: "%.2f",
		Background:  render.White,
	}
}

// Panel is one heatmap: rows are drawn top to bottom.
type Panel struct {
	Title     string
	Data      Matrix
	RowLabels []string
	ColLabels []string // nil draws numeric index ticks
}

// ActionLabels returns "Action 0" .. "Action n-1".
func ActionLabels(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf("Action %d", i)
	}
	return out
}

// NewPanel lays a Q-table out with one row per action and one column per
// state.
func NewPanel(title string, q Matrix) Panel {
	t := q.T()
	return Panel{Title: title, Data: t, RowLabels: ActionLabels(t.Rows())}
}

// Titles names the panels for a single or a side-by-side comparison plot.
func Titles(n int) []string {
	if n == 1 {
		return []string{"Q Heatmap"}
	}
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf("Q%d Heatmap", i+1)
	}
	return out
}

// OutputName derives the image name for a Q-table CSV.
func OutputName(csvPath string) string {
	if strings.Contains(csvPath, ".csv") {
		return strings.ReplaceAll(csvPath, ".csv", "_heatmap.png")
	}
	return csvPath + "_heatmap.png"
}

// norm maps values linearly onto [0,1]; a flat matrix maps to 0.5.
type norm struct{ lo, hi float64 }

func (n norm) at(v float64) float64 {
	if math.IsNaN(n.lo) || n.hi <= n.lo {
		return 0.5
	}
	return (v - n.lo) / (n.hi - n.lo)
}

// textColor picks black below the threshold and white above it.
func textColor(normalized, threshold float64) color.Color {
	if normalized > threshold {
		return render.White
	}
	return render.Black
}

// Render draws the panels stacked vertically.
func Render(panels []Panel, opts Options) (image.Image, error) {
	if len(panels) == 0 {
		return nil, fmt.Errorf("no panels to render")
	}
	cmap, err := Lookup(opts.Colormap)
	if err != nil {
		return nil, err
	}
	if opts.Width <= 0 || opts.Height <= 0 {
		return nil, fmt.Errorf("invalid figure size %dx%d", opts.Width, opts.Height)
	}
	if opts.ValueFormat == "" {
		opts.ValueFormat = "%.2f"
	}
	if opts.Background == nil {
		opts.Background = render.White
	}

	dc := gg.NewContext(opts.Width, opts.Height)
	dc.SetColor(opts.Background)
	dc.Clear()

	ph := float64(opts.Height) / float64(len(panels))
	for i, p := range panels {
		if p.Data.Rows() == 0 || p.Data.Cols() == 0 {
			return nil, fmt.Errorf("panel %q: empty matrix", p.Title)
		}
		box := rect{x: 0, y: ph * float64(i), w: float64(opts.Width), h: ph}
		if err := drawPanel(dc, box, p, cmap, opts); err != nil {
			return nil, fmt.Errorf("panel %q: %w", p.Title, err)
		}
	}
	return dc.Image(), nil
}

// Save renders the panels and writes them as PNG.
func Save(path string, panels []Panel, opts Options) error {
	img, err := Render(panels, opts)
	if err != nil {
		return err
	}
	return render.SavePNG(filepath.Clean(path), img)
}

type rect struct{ x, y, w, h float64 }

const (
	cbarGap   = 24.0
	cbarWidth = 22.0
	tickLen   = 4.0
	gridLine  = 3.0
)

func drawPanel(dc *gg.Context, box rect, p Panel, cmap Colormap, opts Options) error {
	titleFace, err := render.Face(render.Regular, 16)
	if err != nil {
		return err
	}
	labelFace, err := render.Face(render.Regular, 12)
	if err != nil {
		return err
	}

	lo, hi := p.Data.Bounds()
	n := norm{lo, hi}
	cbTicks := render.NiceTicks(lo, hi, 6)

	// Measure the margins the labels need.
	dc.SetFontFace(labelFace)
	left := 12.0
	for _, l := range p.RowLabels {
		w, _ := dc.MeasureString(l)
		left = math.Max(left, w+tickLen+16)
	}
	cbLabelW := 0.0
	for _, v := range cbTicks {
		w, _ := dc.MeasureString(formatTick(v, cbTicks))
		cbLabelW = math.Max(cbLabelW, w)
	}
	right := cbarGap + cbarWidth + tickLen + 6 + cbLabelW + 34
	top := 34.0 + 40.0
	bottom := 16.0

	grid := rect{
		x: box.x + left,
		y: box.y + top,
		w: box.w - left - right,
		h: box.h - top - bottom,
	}
	if grid.w < 10 || grid.h < 10 {
		return fmt.Errorf("figure too small for %dx%d grid", p.Data.Rows(), p.Data.Cols())
	}

	rows, cols := p.Data.Rows(), p.Data.Cols()
	cw, ch := grid.w/float64(cols), grid.h/float64(rows)

	// Title.
	dc.SetFontFace(titleFace)
	dc.SetColor(render.Black)
	dc.DrawStringAnchored(p.Title, grid.x+grid.w/2, box.y+8, 0.5, 1)

	// Cells, sampled nearest like an image.
	dc.DrawImage(cellImage(p.Data, n, cmap, grid), int(math.Round(grid.x)), int(math.Round(grid.y)))

	// Separators between labelled rows and columns.
	dc.SetColor(render.White)
	dc.SetLineWidth(gridLine)
	if len(p.RowLabels) > 0 {
		for i := 1; i < rows; i++ {
			y := grid.y + float64(i)*ch
			dc.DrawLine(grid.x, y, grid.x+grid.w, y)
		}
	}
	if len(p.ColLabels) > 0 {
		for j := 1; j < cols; j++ {
			x := grid.x + float64(j)*cw
			dc.DrawLine(x, grid.y, x, grid.y+grid.h)
		}
	}
	dc.Stroke()

	// Row labels and ticks on the left.
	dc.SetFontFace(labelFace)
	dc.SetColor(render.Black)
	dc.SetLineWidth(1)
	for i, l := range p.RowLabels {
		if i >= rows {
			break
		}
		y := grid.y + (float64(i)+0.5)*ch
		dc.DrawLine(grid.x-tickLen, y, grid.x, y)
		dc.Stroke()
		dc.DrawStringAnchored(l, grid.x-tickLen-4, y, 1, 0.5)
	}

	// Column ticks on top, rotated.
	for _, t := range columnTicks(p, cols) {
		x := grid.x + (float64(t.index)+0.5)*cw
		dc.DrawLine(x, grid.y-tickLen, x, grid.y)
		dc.Stroke()
		dc.Push()
		dc.RotateAbout(gg.Radians(30), x, grid.y-tickLen-2)
		dc.DrawStringAnchored(t.label, x, grid.y-tickLen-2, 1, 0)
		dc.Pop()
	}

	if opts.Annotate != AnnotateOff {
		if err := annotate(dc, p.Data, n, grid, opts); err != nil {
			return err
		}
	}

	dc.SetFontFace(labelFace)
	drawColorbar(dc, grid, n, cmap, cbTicks, opts.CbarLabel)
	return nil
}

func cellImage(m Matrix, n norm, cmap Colormap, grid rect) *image.RGBA {
	w, h := int(math.Round(grid.w)), int(math.Round(grid.h))
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	rows, cols := m.Rows(), m.Cols()
	for y := 0; y < h; y++ {
		i := min(y*rows/h, rows-1)
		for x := 0; x < w; x++ {
			j := min(x*cols/w, cols-1)
			img.SetRGBA(x, y, cmap(n.at(m.At(i, j))))
		}
	}
	return img
}

func annotate(dc *gg.Context, m Matrix, n norm, grid rect, opts Options) error {
	rows, cols := m.Rows(), m.Cols()
	cw, ch := grid.w/float64(cols), grid.h/float64(rows)

	size := math.Round(math.Min(12, ch*0.45))
	if size < 6 {
		if opts.Annotate == AnnotateAuto {
			return nil
		}
		size = 6
	}
	face, err := render.Face(render.Regular, size)
	if err != nil {
		return err
	}
	dc.SetFontFace(face)

	threshold := n.at(n.hi) / 2
	if opts.Threshold != nil {
		threshold = n.at(*opts.Threshold)
	}

	texts := make([][]string, rows)
	for i := range texts {
		texts[i] = make([]string, cols)
		for j := range texts[i] {
			texts[i][j] = fmt.Sprintf(opts.ValueFormat, m.At(i, j))
			if opts.Annotate != AnnotateAuto {
				continue
			}
			if w, _ := dc.MeasureString(texts[i][j]); w+4 > cw {
				return nil
			}
		}
	}

	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			dc.SetColor(textColor(n.at(m.At(i, j)), threshold))
			dc.DrawStringAnchored(texts[i][j], grid.x+(float64(j)+0.5)*cw, grid.y+(float64(i)+0.5)*ch, 0.5, 0.5)
		}
	}
	return nil
}

func drawColorbar(dc *gg.Context, grid rect, n norm, cmap Colormap, ticks []float64, label string) {
	x := grid.x + grid.w + cbarGap
	h := int(math.Round(grid.h))
	bar := image.NewRGBA(image.Rect(0, 0, int(cbarWidth), h))
	for y := 0; y < h; y++ {
		c := cmap(1 - float64(y)/float64(max(h-1, 1)))
		for bx := 0; bx < int(cbarWidth); bx++ {
			bar.SetRGBA(bx, y, c)
		}
	}
	dc.DrawImage(bar, int(math.Round(x)), int(math.Round(grid.y)))

	dc.SetColor(render.Black)
	dc.SetLineWidth(1)
	dc.DrawRectangle(x, grid.y, cbarWidth, grid.h)
	dc.Stroke()

	labelW := 0.0
	for _, v := range ticks {
		y := grid.y + (1-n.at(v))*grid.h
		dc.DrawLine(x+cbarWidth, y, x+cbarWidth+tickLen, y)
		dc.Stroke()
		s := formatTick(v, ticks)
		w, _ := dc.MeasureString(s)
		labelW = math.Max(labelW, w)
		dc.DrawStringAnchored(s, x+cbarWidth+tickLen+3, y, 0, 0.5)
	}

	if label == "" {
		return
	}
	lx := x + cbarWidth + tickLen + 6 + labelW + 18
	ly := grid.y + grid.h/2
	dc.Push()
	dc.RotateAbout(gg.Radians(90), lx, ly)
	dc.DrawStringAnchored(label, lx, ly, 0.5, 0.5)
	dc.Pop()
}

type colTick struct {
	index int
	label string
}

func columnTicks(p Panel, cols int) []colTick {
	if len(p.ColLabels) > 0 {
		out := make([]colTick, 0, cols)
		for j := 0; j < cols && j < len(p.ColLabels); j++ {
			out = append(out, colTick{j, p.ColLabels[j]})
		}
		return out
	}
	var out []colTick
	last := -1
	for _, v := range render.NiceTicks(0, float64(cols-1), 10) {
		j := int(math.Round(v))
		if j <= last || j >= cols {
			continue
		}
		last = j
		out = append(out, colTick{j, fmt.Sprintf("%d", j)})
	}
	return out
}
