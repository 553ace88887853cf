package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/fatih/color"

	"github.com/Garsondee/lem-analysis/internal/anim"
	"github.com/Garsondee/lem-analysis/internal/asciilog"
)

func main() {
	var marker string
	var delay int
	var fontSize float64
	var configPath string

	def := asciilog.DefaultConfig()
	flag.StringVar(&marker, "marker", def.Marker, "text separating frames in the log")
	flag.IntVar(&delay, "delay", def.DelayMS, "frame duration in milliseconds")
	flag.Float64Var(&fontSize, "font-size", def.FontSize, "glyph size in pixels")
	flag.StringVar(&configPath, "config", "", "yaml file with palette and defaults")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: ascii-animate [flags] LOGFILE OUT.gif\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	args := flag.Args()
	if len(args) != 2 {
		fmt.Println("error: expected LOGFILE and OUT.gif")
		flag.Usage()
		os.Exit(2)
	}

	cfg := def
	if configPath != "" {
		var err error
		if cfg, err = asciilog.LoadConfig(configPath); err != nil {
			log.Fatal(err)
		}
	}
	cfg = applyFlags(cfg, setFlags(), marker, delay, fontSize)
	if cfg.DelayMS < 0 || cfg.FontSize <= 0 || cfg.Marker == "" {
		fmt.Println("error: -delay must be >= 0, -font-size > 0 and -marker non-empty")
		os.Exit(2)
	}

	pal, err := cfg.BuildPalette()
	if err != nil {
		log.Fatal(err)
	}
	r, err := asciilog.NewRasterizer(cfg.FontSize, pal)
	if err != nil {
		log.Fatal(err)
	}

	frames, err := asciilog.LoadFrames(args[0], cfg.Marker)
	if err != nil {
		log.Fatal(err)
	}
	kept := asciilog.Dedupe(frames)
	fmt.Printf("frames=%d unique=%d\n", len(frames), len(kept))

	g, err := r.Animate(kept, cfg.DelayMS)
	if err != nil {
		log.Fatal(err)
	}
	if err := anim.Save(args[1], g); err != nil {
		log.Fatal(err)
	}
	color.Green("Animated GIF created at %s", args[1])
}

func setFlags() map[string]bool {
	set := map[string]bool{}
	flag.Visit(func(f *flag.Flag) { set[f.Name] = true })
	return set
}

// applyFlags lets flags given on the command line override the config file.
func applyFlags(cfg asciilog.Config, set map[string]bool, marker string, delay int, fontSize float64) asciilog.Config {
	if set["marker"] {
		cfg.Marker = marker
	}
	if set["delay"] {
		cfg.DelayMS = delay
	}
	if set["font-size"] {
		cfg.FontSize = fontSize
	}
	return cfg
}
