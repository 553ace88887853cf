package main

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/Garsondee/lem-analysis/internal/asciilog"
)

func TestApplyFlags_OnlyExplicitFlagsOverride(t *testing.T) {
	cfg := asciilog.Config{Marker: "==", DelayMS: 200, FontSize: 18}

	got := applyFlags(cfg, map[string]bool{}, ">>frame", 350, 24)
	if diff := cmp.Diff(cfg, got); diff != "" {
		t.Fatalf("expected config untouched (-want +got):\n%s", diff)
	}

	got = applyFlags(cfg, map[string]bool{"delay": true}, ">>frame", 100, 24)
	if got.DelayMS != 100 || got.Marker != "==" || got.FontSize != 18 {
		t.Fatalf("expected only delay overridden, got %+v", got)
	}
}
