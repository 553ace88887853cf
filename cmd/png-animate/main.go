package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/fatih/color"

	"github.com/Garsondee/lem-analysis/internal/anim"
	"github.com/Garsondee/lem-analysis/internal/heatmap"
)

func main() {
	var out string
	var delay int
	var dither bool
	var renderMissing bool

	flag.StringVar(&out, "out", "hunt_learner.gif", "output gif")
	flag.IntVar(&delay, "delay", 550, "frame duration in milliseconds")
	flag.BoolVar(&dither, "dither", false, "Floyd-Steinberg dither when quantizing")
	flag.BoolVar(&renderMissing, "render-missing", false, "render heatmaps for listed csv files that have none yet")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: png-animate [flags] FOLDER [LISTFILE]\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	args := flag.Args()
	if len(args) < 1 || len(args) > 2 {
		fmt.Println("error: expected FOLDER and an optional LISTFILE")
		flag.Usage()
		os.Exit(2)
	}
	if delay < 0 {
		fmt.Println("error: -delay must be >= 0")
		os.Exit(2)
	}

	paths, err := framePaths(args)
	if err != nil {
		log.Fatal(err)
	}
	if renderMissing {
		if err := renderHeatmaps(paths); err != nil {
			log.Fatal(err)
		}
	}

	opts := anim.DefaultOptions()
	opts.DelayMS = delay
	opts.Dither = dither

	frames, err := anim.LoadLabelled(paths, opts, func(label string) { fmt.Println(label) })
	if err != nil {
		log.Fatal(err)
	}
	g, err := anim.Assemble(frames, opts)
	if errors.Is(err, anim.ErrNoFrames) {
		color.Yellow("%v in %s", err, args[0])
		os.Exit(1)
	}
	if err != nil {
		log.Fatal(err)
	}
	if err := anim.Save(out, g); err != nil {
		log.Fatal(err)
	}
	color.Green("Animated GIF saved at %s", out)
}

// framePaths lists the folder's PNGs, or the list file's entries when one
// is given.
func framePaths(args []string) ([]string, error) {
	if len(args) == 2 {
		return anim.ReadListFile(args[1])
	}
	return anim.CollectPNGs(args[0])
}

func renderHeatmaps(paths []string) error {
	for _, p := range paths {
		if !strings.HasSuffix(p, ".csv") {
			continue
		}
		img := anim.ResolveFrame(p)
		if _, err := os.Stat(img); err == nil {
			continue
		}
		q, err := heatmap.LoadMatrix(p, heatmap.DefaultActions)
		if err != nil {
			return err
		}
		panel := heatmap.NewPanel(heatmap.Titles(1)[0], q)
		if err := heatmap.Save(img, []heatmap.Panel{panel}, heatmap.DefaultOptions()); err != nil {
			return err
		}
		fmt.Printf("rendered %s\n", img)
	}
	return nil
}
