package anim

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
)

// CollectPNGs lists the .png files directly inside dir in lexical order.
func CollectPNGs(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var out []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".png") {
			continue
		}
		out = append(out, filepath.Join(dir, e.Name()))
	}
	sort.Strings(out)
	return out, nil
}

// ReadListFile reads one frame path per line. Blank lines and lines
// starting with '#' are skipped.
func ReadListFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var out []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		s := strings.TrimSpace(sc.Text())
		if s == "" || s[0] == '#' {
			continue
		}
		out = append(out, s)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return out, nil
}

// ResolveFrame maps a Q-table CSV entry to the heatmap image rendered from it.
func ResolveFrame(path string) string {
	if strings.HasSuffix(path, ".csv") {
		return strings.TrimSuffix(path, ".csv") + "_heatmap.png"
	}
	return path
}

var digits = regexp.MustCompile(`\d+`)

// EpisodeLabel names frame i after the first number in the file name.
func EpisodeLabel(path string, i int) string {
	if n := digits.FindString(filepath.Base(path)); n != "" {
		return "Episode " + n
	}
	return fmt.Sprintf("Frame %d", i+1)
}
