package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadPanels_CompareTitles(t *testing.T) {
	dir := t.TempDir()
	q1 := filepath.Join(dir, "Q1.csv")
	q2 := filepath.Join(dir, "Q2.csv")
	for _, p := range []string{q1, q2} {
		if err := os.WriteFile(p, []byte("1,2,3\n4,5,6\n"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	panels, err := loadPanels([]string{q1, q2}, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(panels) != 2 || panels[0].Title != "Q1 Heatmap" || panels[1].Title != "Q2 Heatmap" {
		t.Fatalf("unexpected panels: %+v", panels)
	}
	if panels[1].Data.Rows() != 2 {
		t.Fatalf("column limit applies to both tables, got %d action rows", panels[1].Data.Rows())
	}
}

func TestLoadPanels_MissingFile(t *testing.T) {
	if _, err := loadPanels([]string{filepath.Join(t.TempDir(), "nope.csv")}, 8); err == nil {
		t.Fatal("expected error for missing file")
	}
}
