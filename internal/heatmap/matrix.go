package heatmap

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
)

// DefaultActions is the number of action columns kept from a Q-table dump.
const DefaultActions = 8

// Matrix is a dense row-major table of Q-values.
type Matrix struct {
	Data [][]float64
}

// Rows returns the number of rows.
func (m Matrix) Rows() int { return len(m.Data) }

// Cols returns the number of columns.
func (m Matrix) Cols() int {
	if len(m.Data) == 0 {
		return 0
	}
	return len(m.Data[0])
}

// At returns the value at row i, column j.
func (m Matrix) At(i, j int) float64 { return m.Data[i][j] }

// T returns the transpose of m.
func (m Matrix) T() Matrix {
	rows, cols := m.Rows(), m.Cols()
	out := make([][]float64, cols)
	for j := range out {
		out[j] = make([]float64, rows)
		for i := 0; i < rows; i++ {
			out[j][i] = m.Data[i][j]
		}
	}
	return Matrix{Data: out}
}

// Bounds returns the smallest and largest finite values. Both are NaN when
// the matrix holds no finite value.
func (m Matrix) Bounds() (lo, hi float64) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, row := range m.Data {
		for _, v := range row {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				continue
			}
			lo = math.Min(lo, v)
			hi = math.Max(hi, v)
		}
	}
	if lo > hi {
		return math.NaN(), math.NaN()
	}
	return lo, hi
}

// ReadMatrix parses a headerless comma-separated numeric matrix. When
// maxCols > 0 only the first maxCols columns of each row are kept.
func ReadMatrix(r io.Reader, maxCols int) (Matrix, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.Comment = '#'

	var m Matrix
	for line := 1; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return Matrix{}, err
		}
		if maxCols > 0 {
			if len(rec) < maxCols {
				return Matrix{}, fmt.Errorf("row %d: %d columns, want at least %d", line, len(rec), maxCols)
			}
			rec = rec[:maxCols]
		}
		row := make([]float64, len(rec))
		for j, cell := range rec {
			v, err := strconv.ParseFloat(strings.TrimSpace(cell), 64)
			if err != nil {
				return Matrix{}, fmt.Errorf("row %d column %d: %w", line, j, err)
			}
			row[j] = v
		}
		m.Data = append(m.Data, row)
	}
	if m.Rows() == 0 {
		return Matrix{}, errors.New("empty matrix")
	}
	return m, nil
}

// LoadMatrix reads a matrix from path.
func LoadMatrix(path string, maxCols int) (Matrix, error) {
	f, err := os.Open(path)
	if err != nil {
		return Matrix{}, err
	}
	defer f.Close()
	m, err := ReadMatrix(f, maxCols)
	if err != nil {
		return Matrix{}, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}
