// SPDX-License-Identifier: MIT

package rowmat

import (
	"fmt"

	"github.com/katalvlaran/gridmat/dense"
	"github.com/katalvlaran/gridmat/dist"
)

// RowMatrix is an immutable matrix distributed one dense row per element,
// keyed by row index.
type RowMatrix struct {
	rows *dist.Collection[int, []float64]
	n    int // number of rows
	cols int
}

// FromCollection wraps rows into a RowMatrix of the declared shape.
// The collection must hold exactly numRows elements; full index-set and
// length validation is available via Validate.
func FromCollection(rows *dist.Collection[int, []float64], numRows, cols int) (*RowMatrix, error) {
	if rows == nil {
		return nil, ErrNilMatrix
	}
	if numRows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("FromCollection(%d,%d): %w", numRows, cols, ErrBadShape)
	}
	if got := rows.Count(); got != numRows {
		return nil, fmt.Errorf("FromCollection: %d rows, want %d: %w", got, numRows, ErrRowGap)
	}

	return &RowMatrix{rows: rows, n: numRows, cols: cols}, nil
}

// FromDense distributes d row by row over numPartitions partitions.
func FromDense(runner dist.Runner, d *dense.Dense, numPartitions int) (*RowMatrix, error) {
	if d == nil {
		return nil, ErrNilMatrix
	}
	pairs := make([]dist.Pair[int, []float64], d.Rows())
	for i := 0; i < d.Rows(); i++ {
		row, err := d.Row(i)
		if err != nil {
			return nil, err
		}
		pairs[i] = dist.Pair[int, []float64]{Key: i, Value: row}
	}
	rows, err := dist.New(runner, pairs, numPartitions)
	if err != nil {
		return nil, err
	}

	return FromCollection(rows, d.Rows(), d.Cols())
}

// Rows returns the underlying row collection.
func (m *RowMatrix) Rows() *dist.Collection[int, []float64] { return m.rows }

// NumRows returns the number of rows. Complexity: O(1).
func (m *RowMatrix) NumRows() int { return m.n }

// Cols returns the number of columns. Complexity: O(1).
func (m *RowMatrix) Cols() int { return m.cols }

// Validate checks that the row index set is exactly {0..n-1} and every row
// vector has the declared length.
func (m *RowMatrix) Validate() error {
	seen := make([]bool, m.n)
	for _, kv := range m.rows.Collect() {
		if kv.Key < 0 || kv.Key >= m.n || seen[kv.Key] {
			return fmt.Errorf("Validate: row %d: %w", kv.Key, ErrRowGap)
		}
		seen[kv.Key] = true
		if len(kv.Value) != m.cols {
			return fmt.Errorf("Validate: row %d has %d entries, want %d: %w", kv.Key, len(kv.Value), m.cols, ErrBadShape)
		}
	}
	for i, ok := range seen {
		if !ok {
			return fmt.Errorf("Validate: missing row %d: %w", i, ErrRowGap)
		}
	}

	return nil
}

// ToDense assembles the matrix into local memory.
func (m *RowMatrix) ToDense() (*dense.Dense, error) {
	out, err := dense.New(m.n, m.cols)
	if err != nil {
		return nil, err
	}
	for _, kv := range m.rows.Collect() {
		if len(kv.Value) != m.cols {
			return nil, fmt.Errorf("ToDense: row %d has %d entries, want %d: %w", kv.Key, len(kv.Value), m.cols, ErrBadShape)
		}
		for j, v := range kv.Value {
			if err = out.Set(kv.Key, j, v); err != nil {
				return nil, err
			}
		}
	}

	return out, nil
}
