package landing

import (
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

var (
	face  = drawing.ColorFromHex("07000d")
	spine = drawing.ColorFromHex("5998ff")
)

// darkPalette paints every panel on the dark face colour with blue spines.
type darkPalette struct{}

var _ chart.ColorPalette = darkPalette{}

func (darkPalette) BackgroundColor() drawing.Color { return face }
func (darkPalette) BackgroundStrokeColor() drawing.Color { return face }
func (darkPalette) CanvasColor() drawing.Color { return face }
func (darkPalette) CanvasStrokeColor() drawing.Color { return spine }
func (darkPalette) AxisStrokeColor() drawing.Color { return spine }
func (darkPalette) TextColor() drawing.Color { return drawing.ColorWhite }

func (darkPalette) GetSeriesColor(index int) drawing.Color {
	return chart.GetAlternateColor(index)
}
