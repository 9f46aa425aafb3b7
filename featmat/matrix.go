// SPDX-License-Identifier: MIT
// Package featmat provides the dense feature matrix shared by the fairground
// model: attraction features and patron features are both [n, Width] row-major
// float64 buffers.
//
// Matrix stores its elements in one flat slice for cache friendliness; a row
// is a contiguous window of that slice. Zero rows is a valid shape (an empty
// fairground or population), zero columns is not.
package featmat

import (
	"fmt"
	"math"
	"strings"
)

// Width is the feature-vector length of every attraction and patron.
const Width = 10

// Matrix is a row-major matrix of float64 values.
// r is rows, c is columns, and data holds r*c elements in row-major order.
type Matrix struct {
	r, c int       // number of rows and columns
	data []float64 // flat backing storage, length == r*c
}

// New creates an r×c Matrix initialized to zeros.
// Stage 1 (Validate): rows >= 0 and cols > 0.
// Stage 2 (Prepare): allocate flat backing slice.
// Complexity: O(r*c) time and memory.
func New(rows, cols int) (*Matrix, error) {
	if rows < 0 || cols <= 0 {
		return nil, fmt.Errorf("New(%d,%d): %w", rows, cols, ErrBadShape)
	}

	return &Matrix{r: rows, c: cols, data: make([]float64, rows*cols)}, nil
}

// NewFeatures creates a rows×Width Matrix initialized to zeros.
func NewFeatures(rows int) (*Matrix, error) {
	return New(rows, Width)
}

// FromRows builds a Matrix by copying rows; every row must have length cols
// and contain only finite values.
// Complexity: O(r*c).
func FromRows(cols int, rows [][]float64) (*Matrix, error) {
	m, err := New(len(rows), cols)
	if err != nil {
		return nil, err
	}
	var i int
	for i = range rows {
		if len(rows[i]) != cols {
			return nil, fmt.Errorf("FromRows: row %d has %d values, want %d: %w", i, len(rows[i]), cols, ErrBadShape)
		}
		if err = m.SetRow(i, rows[i]); err != nil {
			return nil, err
		}
	}

	return m, nil
}

// Rows returns the number of rows in the matrix.
// Complexity: O(1).
func (m *Matrix) Rows() int {
	return m.r
}

// Cols returns the number of columns in the matrix.
// Complexity: O(1).
func (m *Matrix) Cols() int {
	return m.c
}

// indexOf computes the flat index for (row, col) or returns ErrOutOfRange.
// Complexity: O(1).
func (m *Matrix) indexOf(method string, row, col int) (int, error) {
	if row < 0 || row >= m.r || col < 0 || col >= m.c {
		return 0, matrixErrorf(method, row, col, ErrOutOfRange)
	}

	return row*m.c + col, nil
}

// At retrieves the element at (row, col).
// Complexity: O(1).
func (m *Matrix) At(row, col int) (float64, error) {
	idx, err := m.indexOf("At", row, col)
	if err != nil {
		return 0, err
	}

	return m.data[idx], nil
}

// Set assigns value v at (row, col). NaN and ±Inf are rejected with ErrNaNInf.
// Complexity: O(1).
func (m *Matrix) Set(row, col int, v float64) error {
	idx, err := m.indexOf("Set", row, col)
	if err != nil {
		return err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return matrixErrorf("Set", row, col, ErrNaNInf)
	}
	m.data[idx] = v

	return nil
}

// SetRow copies vals into row i. len(vals) must equal Cols() and every value
// must be finite; on error the row is left unchanged.
// Complexity: O(c).
func (m *Matrix) SetRow(i int, vals []float64) error {
	if i < 0 || i >= m.r {
		return matrixErrorf("SetRow", i, 0, ErrOutOfRange)
	}
	if len(vals) != m.c {
		return fmt.Errorf("Matrix.SetRow(%d): %d values for %d columns: %w", i, len(vals), m.c, ErrBadShape)
	}
	var j int
	for j = range vals {
		if math.IsNaN(vals[j]) || math.IsInf(vals[j], 0) {
			return matrixErrorf("SetRow", i, j, ErrNaNInf)
		}
	}
	copy(m.data[i*m.c:(i+1)*m.c], vals)

	return nil
}

// Row returns a copy of row i.
// Complexity: O(c).
func (m *Matrix) Row(i int) ([]float64, error) {
	view, err := m.RowView(i)
	if err != nil {
		return nil, err
	}
	out := make([]float64, len(view))
	copy(out, view)

	return out, nil
}

// RowView returns row i as a window into the backing storage.
// Callers must treat it as read-only; it aliases the matrix.
// Complexity: O(1).
func (m *Matrix) RowView(i int) ([]float64, error) {
	if i < 0 || i >= m.r {
		return nil, matrixErrorf("RowView", i, 0, ErrOutOfRange)
	}

	return m.data[i*m.c : (i+1)*m.c : (i+1)*m.c], nil
}

// Data exposes the row-major backing slice for fast paths inside this module.
// It aliases the matrix; callers must not retain it across mutations.
func (m *Matrix) Data() []float64 {
	return m.data
}

// Clone returns a deep copy of the matrix.
// Complexity: O(r*c) time and memory.
func (m *Matrix) Clone() *Matrix {
	cp := make([]float64, len(m.data))
	copy(cp, m.data)

	return &Matrix{r: m.r, c: m.c, data: cp}
}

// Validate reports ErrNaNInf for the first non-finite element, if any.
// Complexity: O(r*c).
func (m *Matrix) Validate() error {
	if m == nil {
		return ErrNilMatrix
	}
	var k int
	for k = range m.data {
		if math.IsNaN(m.data[k]) || math.IsInf(m.data[k], 0) {
			return matrixErrorf("Validate", k/m.c, k%m.c, ErrNaNInf)
		}
	}

	return nil
}

// String implements fmt.Stringer for easy debugging.
// Complexity: O(r*c).
func (m *Matrix) String() string {
	var sb strings.Builder
	var i, j int
	for i = 0; i < m.r; i++ {
		sb.WriteByte('[')
		for j = 0; j < m.c; j++ {
			if j > 0 {
				sb.WriteString(", ")
			}
			fmt.Fprintf(&sb, "%g", m.data[i*m.c+j])
		}
		sb.WriteString("]\n")
	}

	return sb.String()
}
