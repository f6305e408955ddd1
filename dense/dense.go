// SPDX-License-Identifier: MIT

package dense

import (
	"fmt"
	"math"
)

// Dense is a row-major matrix of float64 values.
// r is rows, c is columns, and data holds r*c elements in row-major order.
type Dense struct {
	r, c int
	data []float64
}

// New creates an r×c Dense matrix initialized to zeros.
// Returns ErrBadShape if rows<=0 or cols<=0.
// Complexity: O(r*c) time and memory.
func New(rows, cols int) (*Dense, error) {
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("New(%d,%d): %w", rows, cols, ErrBadShape)
	}

	return &Dense{r: rows, c: cols, data: make([]float64, rows*cols)}, nil
}

// FromFlat creates an r×c Dense from values in row-major flattened order.
// The slice is copied; the caller keeps ownership of values.
// Returns ErrBadShape if the shape is invalid or len(values) != rows*cols.
func FromFlat(rows, cols int, values []float64) (*Dense, error) {
	if rows <= 0 || cols <= 0 || len(values) != rows*cols {
		return nil, fmt.Errorf("FromFlat(%d,%d): %w", rows, cols, ErrBadShape)
	}
	data := make([]float64, len(values))
	copy(data, values)

	return &Dense{r: rows, c: cols, data: data}, nil
}

// FromRows creates a Dense from a slice of equally-long row vectors.
func FromRows(rows [][]float64) (*Dense, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, fmt.Errorf("FromRows: %w", ErrBadShape)
	}
	c := len(rows[0])
	out, err := New(len(rows), c)
	if err != nil {
		return nil, err
	}
	for i, row := range rows {
		if len(row) != c {
			return nil, fmt.Errorf("FromRows: row %d: %w", i, ErrBadShape)
		}
		copy(out.data[i*c:(i+1)*c], row)
	}

	return out, nil
}

// Identity creates the n×n identity matrix.
func Identity(n int) (*Dense, error) {
	m, err := New(n, n)
	if err != nil {
		return nil, err
	}
	for i := 0; i < n; i++ {
		m.data[i*n+i] = 1
	}

	return m, nil
}

// Rows returns the number of rows. Complexity: O(1).
func (m *Dense) Rows() int { return m.r }

// Cols returns the number of columns. Complexity: O(1).
func (m *Dense) Cols() int { return m.c }

// At retrieves the element at (row, col).
// Returns ErrOutOfRange on invalid indices.
func (m *Dense) At(row, col int) (float64, error) {
	if row < 0 || row >= m.r || col < 0 || col >= m.c {
		return 0, fmt.Errorf("At(%d,%d): %w", row, col, ErrOutOfRange)
	}

	return m.data[row*m.c+col], nil
}

// Set assigns v at (row, col).
// Returns ErrOutOfRange on invalid indices.
func (m *Dense) Set(row, col int, v float64) error {
	if row < 0 || row >= m.r || col < 0 || col >= m.c {
		return fmt.Errorf("Set(%d,%d): %w", row, col, ErrOutOfRange)
	}
	m.data[row*m.c+col] = v

	return nil
}

// Row returns a copy of row i.
func (m *Dense) Row(i int) ([]float64, error) {
	if i < 0 || i >= m.r {
		return nil, fmt.Errorf("Row(%d): %w", i, ErrOutOfRange)
	}
	out := make([]float64, m.c)
	copy(out, m.data[i*m.c:(i+1)*m.c])

	return out, nil
}

// Flat returns a copy of the backing values in row-major order.
func (m *Dense) Flat() []float64 {
	out := make([]float64, len(m.data))
	copy(out, m.data)

	return out
}

// Clone returns a deep copy, independent of the original.
// Complexity: O(r*c).
func (m *Dense) Clone() *Dense {
	out := &Dense{r: m.r, c: m.c, data: make([]float64, len(m.data))}
	copy(out.data, m.data)

	return out
}

// Sum returns the sum of all entries.
func (m *Dense) Sum() float64 {
	var s float64
	for _, v := range m.data {
		s += v
	}

	return s
}

// EqualApprox reports whether m and o have identical shape and all entries
// within eps of each other (absolute difference).
func (m *Dense) EqualApprox(o *Dense, eps float64) bool {
	if o == nil || m.r != o.r || m.c != o.c {
		return false
	}
	for i, v := range m.data {
		if math.Abs(v-o.data[i]) > eps {
			return false
		}
	}

	return true
}

// Slice returns a copy of the rectangular region of numRows×numCols entries
// starting at (row, col). Returns ErrOutOfRange if the region exceeds bounds,
// ErrBadShape if numRows<=0 or numCols<=0.
// Complexity: O(numRows*numCols).
func (m *Dense) Slice(row, col, numRows, numCols int) (*Dense, error) {
	if numRows <= 0 || numCols <= 0 {
		return nil, fmt.Errorf("Slice(%d,%d,%d,%d): %w", row, col, numRows, numCols, ErrBadShape)
	}
	if row < 0 || col < 0 || row+numRows > m.r || col+numCols > m.c {
		return nil, fmt.Errorf("Slice(%d,%d,%d,%d): %w", row, col, numRows, numCols, ErrOutOfRange)
	}
	out := &Dense{r: numRows, c: numCols, data: make([]float64, numRows*numCols)}
	for i := 0; i < numRows; i++ {
		copy(out.data[i*numCols:(i+1)*numCols], m.data[(row+i)*m.c+col:(row+i)*m.c+col+numCols])
	}

	return out, nil
}

// CopyInto writes o's entries into m starting at (row, col), in place.
// It is the only mutating operation in the package and exists so that a
// freshly allocated block can be assembled from slices before publication.
func (m *Dense) CopyInto(row, col int, o *Dense) error {
	if o == nil {
		return fmt.Errorf("CopyInto: %w", ErrNilMatrix)
	}
	if row < 0 || col < 0 || row+o.r > m.r || col+o.c > m.c {
		return fmt.Errorf("CopyInto(%d,%d): %w", row, col, ErrOutOfRange)
	}
	for i := 0; i < o.r; i++ {
		copy(m.data[(row+i)*m.c+col:(row+i)*m.c+col+o.c], o.data[i*o.c:(i+1)*o.c])
	}

	return nil
}
