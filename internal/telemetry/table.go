package telemetry

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// ErrMissingColumn is returned when a requested column is not in the header.
var ErrMissingColumn = errors.New("missing column")

// Table is a header-addressed CSV. Row i is data row i (header excluded).
type Table struct {
	Header []string
	Rows   [][]string
	index  map[string]int
}

// ReadTable parses CSV with a header row from r.
func ReadTable(r io.Reader) (*Table, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, errors.New("empty csv: no header row")
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	t := &Table{Header: make([]string, len(header)), index: make(map[string]int, len(header))}
	for i, h := range header {
		name := strings.TrimSpace(h)
		t.Header[i] = name
		if _, dup := t.index[name]; !dup {
			t.index[name] = i
		}
	}

	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			// csv.ParseError carries the line number already.
			return nil, fmt.Errorf("read row %d: %w", len(t.Rows), err)
		}
		t.Rows = append(t.Rows, rec)
	}
	return t, nil
}

// LoadTable opens path and parses it with ReadTable.
func LoadTable(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	t, err := ReadTable(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

// Has reports whether the header contains name.
func (t *Table) Has(name string) bool {
	_, ok := t.index[name]
	return ok
}

// Len returns the number of data rows.
func (t *Table) Len() int {
	return len(t.Rows)
}

// Floats parses the named column as float64 values.
func (t *Table) Floats(name string) ([]float64, error) {
	col, ok := t.index[name]
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrMissingColumn, name)
	}
	out := make([]float64, len(t.Rows))
	for i, row := range t.Rows {
		v, err := parseFloat(row[col])
		if err != nil {
			return nil, fmt.Errorf("row %d column %q: %w", i, name, err)
		}
		out[i] = v
	}
	return out, nil
}

// parseFloat accepts the spellings the simulator and pandas emit for
// non-finite values in addition to plain decimals.
func parseFloat(s string) (float64, error) {
	s = strings.TrimSpace(s)
	switch strings.ToLower(s) {
	case "nan", "":
		return nan(), nil
	case "∞", "infinity":
		return inf(1), nil
	case "-∞", "-infinity":
		return inf(-1), nil
	}
	return strconv.ParseFloat(s, 64)
}
