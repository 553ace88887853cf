package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/fatih/color"

	"github.com/Garsondee/lem-analysis/internal/landing"
	"github.com/Garsondee/lem-analysis/internal/telemetry"
)

type config struct {
	inCSV     string
	window    int
	outFile   string
	htmlFile  string
	report    string
	clipboard bool
	title     string
}

func main() {
	var cfg config

	flag.StringVar(&cfg.inCSV, "incsv", "", "the csv file to process")
	flag.IntVar(&cfg.window, "window", 100, "rolling window size")
	flag.StringVar(&cfg.outFile, "outfile", "surface_hits.png", "name of the output graph file")
	flag.StringVar(&cfg.htmlFile, "html", "", "also write an interactive html page")
	flag.StringVar(&cfg.report, "report", "", "also write the summary report to this file")
	flag.BoolVar(&cfg.clipboard, "clipboard", false, "copy the summary report to the clipboard")
	flag.StringVar(&cfg.title, "title", landing.DefaultTitle, "figure title")
	flag.Parse()

	if msg := validate(cfg); msg != "" {
		fmt.Println("error: " + msg)
		os.Exit(2)
	}

	samples, err := telemetry.LoadSamples(cfg.inCSV)
	if err != nil {
		log.Fatal(err)
	}
	surface, outages := telemetry.Partition(samples)

	rep := telemetry.BuildReport(surface, outages)
	text := strings.Join(rep.Lines(), "\n") + "\n"
	fmt.Print(text)

	if cfg.report != "" {
		if err := os.WriteFile(cfg.report, []byte(text), 0o644); err != nil {
			log.Fatal(err)
		}
		saved("report", cfg.report)
	}
	if cfg.clipboard {
		if err := clipboard.WriteAll(rep.String()); err != nil {
			color.Yellow("warning: clipboard unavailable: %v", err)
		}
	}

	opts := landing.DefaultOptions()
	opts.Window = cfg.window
	opts.Title = cfg.title

	img, err := landing.Render(surface, opts)
	if err != nil {
		log.Fatal(err)
	}
	if err := landing.SavePNG(cfg.outFile, img); err != nil {
		log.Fatal(err)
	}
	saved("graph", cfg.outFile)

	if cfg.htmlFile != "" {
		if err := landing.SaveHTML(cfg.htmlFile, surface, opts); err != nil {
			log.Fatal(err)
		}
		saved("html", cfg.htmlFile)
	}
}

func validate(cfg config) string {
	switch {
	case cfg.inCSV == "":
		return "-incsv is required"
	case cfg.window <= 0:
		return "-window must be > 0"
	case cfg.outFile == "":
		return "-outfile must not be empty"
	}
	return ""
}

func saved(kind, path string) {
	color.Green("%s saved at %s", kind, path)
}
