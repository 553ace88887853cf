package render

import (
	"fmt"
	"sync"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// Family selects one of the embedded Go fonts.
type Family int

const (
	Regular Family = iota
	Bold
	Mono
)

func (f Family) String() string {
	switch f {
	case Regular:
		return "regular"
	case Bold:
		return "bold"
	case Mono:
		return "mono"
	default:
		return "unknown"
	}
}

func (f Family) ttf() []byte {
	switch f {
	case Bold:
		return gobold.TTF
	case Mono:
		return gomono.TTF
	default:
		return goregular.TTF
	}
}

type faceKey struct {
	family Family
	size   float64
}

var (
	fontMu    sync.Mutex
	parsed    = map[Family]*opentype.Font{}
	faceCache = map[faceKey]font.Face{}

	chartFontOnce sync.Once
	chartFont     *truetype.Font
	chartFontErr  error
)

// Face returns a cached face of the given family at size pixels (72 DPI).
func Face(family Family, size float64) (font.Face, error) {
	fontMu.Lock()
	defer fontMu.Unlock()

	key := faceKey{family, size}
	if f, ok := faceCache[key]; ok {
		return f, nil
	}
	otf, ok := parsed[family]
	if !ok {
		var err error
		otf, err = opentype.Parse(family.ttf())
		if err != nil {
			return nil, fmt.Errorf("parse %s font: %w", family, err)
		}
		parsed[family] = otf
	}
	face, err := opentype.NewFace(otf, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("%s face @%.0f: %w", family, size, err)
	}
	faceCache[key] = face
	return face, nil
}

// ChartFont returns Go Regular as a truetype font for go-chart, so chart
// text matches the labels drawn with Face.
func ChartFont() (*truetype.Font, error) {
	chartFontOnce.Do(func() {
		chartFont, chartFontErr = truetype.Parse(goregular.TTF)
	})
	return chartFont, chartFontErr
}
