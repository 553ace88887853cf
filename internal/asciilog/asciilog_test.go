package asciilog

import (
	"errors"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/Garsondee/lem-analysis/internal/anim"
)

const sampleLog = `episode 1 starting
>>frame
|@ . W|
|. $ .|
>>frame
no board here
>>frame
|@ . W|
|. $ .|
>>frame
|. @ W|
|. $ .|
>>frame

`

func TestParseFrames_KeepsBoards(t *testing.T) {
	frames, err := ParseFrames(strings.NewReader(sampleLog), DefaultMarker)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(frames) != 3 {
		t.Fatalf("expected 3 board frames, got %d: %q", len(frames), frames)
	}
	if frames[0] != "|@ . W|\n|. $ .|" {
		t.Fatalf("expected trimmed frame, got %q", frames[0])
	}
}

func TestParseFrames_CustomMarker(t *testing.T) {
	frames, err := ParseFrames(strings.NewReader("--|a|--|b|--"), "--")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if diff := cmp.Diff([]string{"|a|", "|b|"}, frames); diff != "" {
		t.Fatalf("frames mismatch (-want +got):\n%s", diff)
	}
}

func TestParseFrames_CRLF(t *testing.T) {
	lf, err := ParseFrames(strings.NewReader(sampleLog), DefaultMarker)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	crlfLog := strings.ReplaceAll(sampleLog, "\n", "\r\n")
	crlf, err := ParseFrames(strings.NewReader(crlfLog), DefaultMarker)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if diff := cmp.Diff(lf, crlf); diff != "" {
		t.Fatalf("CRLF frames differ (-lf +crlf):\n%s", diff)
	}
	for _, f := range crlf {
		if strings.Contains(f, "\r") {
			t.Fatalf("carriage return left in frame %q", f)
		}
	}

	r, err := NewRasterizer(24, DefaultPalette())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	lw, lh := r.Size(lf[0])
	cw, ch := r.Size(crlf[0])
	if lw != cw || lh != ch {
		t.Fatalf("expected %dx%d for CRLF frame, got %dx%d", lw, lh, cw, ch)
	}
}

func TestParseFrames_EmptyMarker(t *testing.T) {
	if _, err := ParseFrames(strings.NewReader("x"), ""); err == nil {
		t.Fatal("expected error for empty marker")
	}
}

func TestDedupe_ConsecutiveOnly(t *testing.T) {
	got := Dedupe([]string{"a", "a", "b", "a", "a"})
	if diff := cmp.Diff([]string{"a", "b", "a"}, got); diff != "" {
		t.Fatalf("dedupe mismatch (-want +got):\n%s", diff)
	}
	if len(Dedupe(nil)) != 0 {
		t.Fatal("expected empty result for no frames")
	}
}

// --- Palette / config ---

func TestDefaultPalette(t *testing.T) {
	p := DefaultPalette()
	if p.Color('$') != (color.RGBA{255, 215, 0, 255}) {
		t.Fatalf("unexpected gold: %v", p.Color('$'))
	}
	if p.Color('?') != p.Default {
		t.Fatal("unmapped characters use the default colour")
	}
}

func TestLoadConfig_Overrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ascii.yaml")
	body := `marker: "==frame"
delay_ms: 200
palette:
  "W": "#00ff00"
  "X": "123456"
background: "#101010"
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Marker != "==frame" || cfg.DelayMS != 200 || cfg.FontSize != 24 {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	p, err := cfg.BuildPalette()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Color('W') != (color.RGBA{0, 255, 0, 255}) {
		t.Fatalf("expected W overridden to green, got %v", p.Color('W'))
	}
	if p.Color('X') != (color.RGBA{0x12, 0x34, 0x56, 255}) {
		t.Fatalf("expected X added, got %v", p.Color('X'))
	}
	if p.Color('$') != (color.RGBA{255, 215, 0, 255}) {
		t.Fatal("entries not in the file keep their defaults")
	}
	if p.Background != (color.RGBA{16, 16, 16, 255}) {
		t.Fatalf("unexpected background: %v", p.Background)
	}
}

func TestBuildPalette_Errors(t *testing.T) {
	bad := []Config{
		{Palette: map[string]string{"ab": "#ffffff"}},
		{Palette: map[string]string{"a": "zzz"}},
		{Background: "nope"},
	}
	for i, c := range bad {
		if _, err := c.BuildPalette(); err == nil {
			t.Fatalf("case %d: expected error", i)
		}
	}
}

func TestLoadConfig_BadFontSize(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ascii.yaml")
	if err := os.WriteFile(path, []byte("font_size: 0\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Fatal("expected error for zero font size")
	}
}

// --- Raster ---

func TestRasterizer_Size(t *testing.T) {
	r, err := NewRasterizer(24, DefaultPalette())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	cw, ch := r.cellW, r.cellH
	w, h := r.Size("|ab|\n|cd|")
	if w != max(50, cw*(6+4)) || h != max(50, ch*(3+2)) {
		t.Fatalf("unexpected size %dx%d for cell %dx%d", w, h, cw, ch)
	}
	w, h = r.Size("")
	if w < 50 || h < 50 {
		t.Fatalf("images are at least 50x50, got %dx%d", w, h)
	}
}

func TestRasterizer_RenderColours(t *testing.T) {
	r, err := NewRasterizer(24, DefaultPalette())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	img := r.Render("WW")
	if img.RGBAAt(0, 0) != (color.RGBA{0, 0, 0, 255}) {
		t.Fatalf("expected black background, got %v", img.RGBAAt(0, 0))
	}
	red := 0
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := img.RGBAAt(x, y)
			if c.R > 200 && c.G < 50 && c.B < 50 {
				red++
			}
		}
	}
	if red == 0 {
		t.Fatal("expected red pixels for 'W'")
	}
}

func TestRasterizer_Animate(t *testing.T) {
	r, _ := NewRasterizer(12, DefaultPalette())
	g, err := r.Animate([]string{"|a|", "|abc|\n|def|"}, 350)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	w2, h2 := r.Size("|abc|\n|def|")
	if g.Image[0].Bounds().Dx() != w2 || g.Image[0].Bounds().Dy() != h2 {
		t.Fatalf("frames should be padded to the largest, got %v", g.Image[0].Bounds())
	}
	if g.Delay[0] != 35 {
		t.Fatalf("expected 35cs delay, got %d", g.Delay[0])
	}
	if _, err := r.Animate(nil, 350); !errors.Is(err, anim.ErrNoFrames) {
		t.Fatalf("expected ErrNoFrames, got %v", err)
	}
}
