// Package asciilog turns ASCII board dumps from a training log into
// animation frames.
package asciilog

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// DefaultMarker separates frames in a log.
const DefaultMarker = ">>frame"

// ParseFrames splits the log on marker and keeps the trimmed chunks that
// look like a board, i.e. contain a '|'. CRLF line endings are read as LF.
func ParseFrames(r io.Reader, marker string) ([]string, error) {
	if marker == "" {
		return nil, fmt.Errorf("empty frame marker")
	}
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	text := strings.ReplaceAll(string(b), "\r\n", "\n")
	var out []string
	for _, chunk := range strings.Split(text, marker) {
		chunk = strings.TrimSpace(chunk)
		if chunk == "" || !strings.Contains(chunk, "|") {
			continue
		}
		out = append(out, chunk)
	}
	return out, nil
}

// LoadFrames is ParseFrames on a file.
func LoadFrames(path, marker string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ParseFrames(f, marker)
}

// Dedupe drops frames equal to the frame kept just before them.
func Dedupe(frames []string) []string {
	out := make([]string, 0, len(frames))
	for i, f := range frames {
		if i > 0 && f == out[len(out)-1] {
			continue
		}
		out = append(out, f)
	}
	return out
}
