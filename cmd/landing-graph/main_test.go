package main

import "testing"

func TestValidate(t *testing.T) {
	ok := config{inCSV: "run.csv", window: 100, outFile: "surface_hits.png"}
	if msg := validate(ok); msg != "" {
		t.Fatalf("expected valid config, got %q", msg)
	}

	noCSV := ok
	noCSV.inCSV = ""
	if msg := validate(noCSV); msg != "-incsv is required" {
		t.Fatalf("unexpected message: %q", msg)
	}

	badWindow := ok
	badWindow.window = 0
	if msg := validate(badWindow); msg != "-window must be > 0" {
		t.Fatalf("unexpected message: %q", msg)
	}

	noOut := ok
	noOut.outFile = ""
	if msg := validate(noOut); msg == "" {
		t.Fatal("expected error for empty -outfile")
	}
}
