package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/fatih/color"

	"github.com/Garsondee/lem-analysis/internal/heatmap"
)

func main() {
	var cols int
	var cmap string
	var annotate string
	var out string

	flag.IntVar(&cols, "cols", heatmap.DefaultActions, "action columns to keep from each Q table (0 keeps all)")
	flag.StringVar(&cmap, "cmap", "RdBu", "colormap: rdbu, viridis or jet")
	flag.StringVar(&annotate, "annotate", "auto", "write cell values: auto, on or off")
	flag.StringVar(&out, "out", "", "output image (default: first csv with _heatmap.png)")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: qheatmap [flags] Q1.csv [Q2.csv]\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	args := flag.Args()
	if len(args) < 1 || len(args) > 2 {
		fmt.Println("error: expected one or two Q table csv files")
		flag.Usage()
		os.Exit(2)
	}
	if cols < 0 {
		fmt.Println("error: -cols must be >= 0")
		os.Exit(2)
	}
	mode, err := heatmap.ParseAnnotate(annotate)
	if err != nil {
		fmt.Println("error: " + err.Error())
		os.Exit(2)
	}
	if _, err := heatmap.Lookup(cmap); err != nil {
		fmt.Println("error: " + err.Error())
		os.Exit(2)
	}

	panels, err := loadPanels(args, cols)
	if err != nil {
		log.Fatal(err)
	}

	opts := heatmap.DefaultOptions()
	opts.Colormap = cmap
	opts.Annotate = mode

	if out == "" {
		out = heatmap.OutputName(args[0])
	}
	if err := heatmap.Save(out, panels, opts); err != nil {
		log.Fatal(err)
	}
	color.Green("heatmap saved at %s", out)
}

func loadPanels(paths []string, cols int) ([]heatmap.Panel, error) {
	titles := heatmap.Titles(len(paths))
	panels := make([]heatmap.Panel, 0, len(paths))
	for i, p := range paths {
		q, err := heatmap.LoadMatrix(p, cols)
		if err != nil {
			return nil, err
		}
		panels = append(panels, heatmap.NewPanel(titles[i], q))
	}
	return panels, nil
}
