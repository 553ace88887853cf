package asciilog

import (
	"fmt"
	"image/color"
	"os"
	"unicode/utf8"

	"gopkg.in/yaml.v3"

	"github.com/Garsondee/lem-analysis/internal/render"
)

// Palette colours individual board characters.
type Palette struct {
	Colors     map[rune]color.RGBA
	Default    color.RGBA
	Background color.RGBA
}

// DefaultPalette is the board legend of the Wumpus runs.
func DefaultPalette() Palette {
	return Palette{
		Colors: map[rune]color.RGBA{
			'@': {255, 255, 255, 255},
			'$': {255, 215, 0, 255},
			'W': {255, 0, 0, 255},
			'#': {153, 101, 21, 255},
			'O': {230, 190, 138, 255},
			'+': {0, 255, 0, 255},
			'=': {205, 133, 63, 255},
		},
		Default:    render.White,
		Background: render.Black,
	}
}

// Color returns the colour of r.
func (p Palette) Color(r rune) color.RGBA {
	if c, ok := p.Colors[r]; ok {
		return c
	}
	return p.Default
}

// Config is the optional YAML settings file of the ASCII animator.
type Config struct {
	Marker     string            `yaml:"marker"`
	DelayMS    int               `yaml:"delay_ms"`
	FontSize   float64           `yaml:"font_size"`
	Background string            `yaml:"background"`
	Default    string            `yaml:"default"`
	Palette    map[string]string `yaml:"palette"`
}

// DefaultConfig holds the built-in settings.
func DefaultConfig() Config {
	return Config{
		Marker:   DefaultMarker,
		DelayMS:  350,
		FontSize: 24,
	}
}

// LoadConfig reads a YAML file over DefaultConfig.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}
	if cfg.DelayMS < 0 {
		return cfg, fmt.Errorf("%s: delay_ms must be >= 0", path)
	}
	if cfg.FontSize <= 0 {
		return cfg, fmt.Errorf("%s: font_size must be > 0", path)
	}
	return cfg, nil
}

// BuildPalette applies the config's colour overrides to DefaultPalette.
func (c Config) BuildPalette() (Palette, error) {
	p := DefaultPalette()
	var err error
	if c.Background != "" {
		if p.Background, err = render.Hex(c.Background); err != nil {
			return p, fmt.Errorf("background: %w", err)
		}
	}
	if c.Default != "" {
		if p.Default, err = render.Hex(c.Default); err != nil {
			return p, fmt.Errorf("default: %w", err)
		}
	}
	for k, v := range c.Palette {
		if utf8.RuneCountInString(k) != 1 {
			return p, fmt.Errorf("palette key %q must be a single character", k)
		}
		r, _ := utf8.DecodeRuneInString(k)
		col, err := render.Hex(v)
		if err != nil {
			return p, fmt.Errorf("palette %q: %w", k, err)
		}
		p.Colors[r] = col
	}
	return p, nil
}
