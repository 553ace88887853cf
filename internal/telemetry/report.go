package telemetry

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ReportTag prefixes every tagged report line.
const ReportTag = "[LEM] "

// Report holds the landing statistics printed after a graph run.
type Report struct {
	SurfaceHits   int
	FuelOutages   int
	SurfaceReward Summary
	SurfaceSpeed  Summary
	OutageReward  Summary
}

// BuildReport summarizes the two partitions produced by Partition.
func BuildReport(surface, outages []Sample) Report {
	return Report{
		SurfaceHits:   len(surface),
		FuelOutages:   len(outages),
		SurfaceReward: Summarize(Extract(surface, Reward).Y),
		SurfaceSpeed:  Summarize(Extract(surface, Velocity).Y),
		OutageReward:  Summarize(Extract(outages, Reward).Y),
	}
}

// Lines returns the report in console form.
func (r Report) Lines() []string {
	return []string{
		fmt.Sprintf("Average reward from hitting the surface: %s +/- %s", FormatFloat(r.SurfaceReward.Mean), FormatFloat(r.SurfaceReward.Std)),
		fmt.Sprintf("Bounds of reward from hitting the surface: [%s , %s]", FormatFloat(r.SurfaceReward.Min), FormatFloat(r.SurfaceReward.Max)),
		fmt.Sprintf("Average speed at surface impact: %s +/- %s", FormatFloat(r.SurfaceSpeed.Mean), FormatFloat(r.SurfaceSpeed.Std)),
		fmt.Sprintf("Average reward from fuel outage: %s +/- %s", FormatFloat(r.OutageReward.Mean), FormatFloat(r.OutageReward.Std)),
		fmt.Sprintf("Bounds of reward from fuel outage: [%s , %s]", FormatFloat(r.OutageReward.Min), FormatFloat(r.OutageReward.Max)),
	}
}

// Tagged returns Lines with ReportTag prepended to each.
func (r Report) Tagged() []string {
	lines := r.Lines()
	for i, l := range lines {
		lines[i] = ReportTag + l
	}
	return lines
}

// String joins the tagged lines, one per line.
func (r Report) String() string {
	return strings.Join(r.Tagged(), "\n") + "\n"
}

// FormatFloat renders v the way the analysis notebooks print floats:
// shortest round-trip digits, a trailing ".0" on whole numbers, and
// lower-case nan/inf.
func FormatFloat(v float64) string {
	switch {
	case math.IsNaN(v):
		return "nan"
	case math.IsInf(v, 1):
		return "inf"
	case math.IsInf(v, -1):
		return "-inf"
	}
	if abs := math.Abs(v); v != 0 && (abs < 1e-4 || abs >= 1e16) {
		return strconv.FormatFloat(v, 'e', -1, 64)
	}
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
