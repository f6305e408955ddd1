// SPDX-License-Identifier: MIT
// Package rowmat: elementwise algebra via a join on row index.
package rowmat

import (
	"fmt"

	"github.com/katalvlaran/gridmat/dist"
)

// combine joins m and o on row index and applies fn entrywise.
func (m *RowMatrix) combine(name string, o *RowMatrix, fn func(a, b float64) (float64, error)) (*RowMatrix, error) {
	if o == nil {
		return nil, fmt.Errorf("%s: %w", name, ErrNilMatrix)
	}
	if m.n != o.n || m.cols != o.cols {
		return nil, fmt.Errorf("%s: %dx%d vs %dx%d: %w", name, m.n, m.cols, o.n, o.cols, ErrDimensionMismatch)
	}
	joined, err := dist.Join(m.rows, o.rows)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	rows, err := dist.MapValues(joined, func(i int, j dist.Joined[[]float64, []float64]) ([]float64, error) {
		if len(j.Left) != len(j.Right) {
			return nil, fmt.Errorf("%s: row %d: %w", name, i, ErrDimensionMismatch)
		}
		out := make([]float64, len(j.Left))
		for k, a := range j.Left {
			v, ferr := fn(a, j.Right[k])
			if ferr != nil {
				return nil, fmt.Errorf("%s: row %d: %w", name, i, ferr)
			}
			out[k] = v
		}

		return out, nil
	})
	if err != nil {
		return nil, err
	}

	return FromCollection(rows, m.n, m.cols)
}

// Add returns m + o elementwise.
func (m *RowMatrix) Add(o *RowMatrix) (*RowMatrix, error) {
	return m.combine("Add", o, func(a, b float64) (float64, error) { return a + b, nil })
}

// Sub returns m - o elementwise.
func (m *RowMatrix) Sub(o *RowMatrix) (*RowMatrix, error) {
	return m.combine("Sub", o, func(a, b float64) (float64, error) { return a - b, nil })
}

// ReverseSub returns o - m elementwise.
func (m *RowMatrix) ReverseSub(o *RowMatrix) (*RowMatrix, error) {
	return m.combine("ReverseSub", o, func(a, b float64) (float64, error) { return b - a, nil })
}

// Hadamard returns the elementwise product m ∘ o.
func (m *RowMatrix) Hadamard(o *RowMatrix) (*RowMatrix, error) {
	return m.combine("Hadamard", o, func(a, b float64) (float64, error) { return a * b, nil })
}

// ElemDiv returns m / o elementwise; zero divisors fail fast.
func (m *RowMatrix) ElemDiv(o *RowMatrix) (*RowMatrix, error) {
	return m.combine("ElemDiv", o, func(a, b float64) (float64, error) {
		if b == 0 {
			return 0, ErrDivisionByZero
		}

		return a / b, nil
	})
}

// ReverseDiv returns o / m elementwise; zero divisors fail fast.
func (m *RowMatrix) ReverseDiv(o *RowMatrix) (*RowMatrix, error) {
	return m.combine("ReverseDiv", o, func(a, b float64) (float64, error) {
		if a == 0 {
			return 0, ErrDivisionByZero
		}

		return b / a, nil
	})
}

// Scale returns s * m.
func (m *RowMatrix) Scale(s float64) (*RowMatrix, error) {
	rows, err := dist.MapValues(m.rows, func(_ int, row []float64) ([]float64, error) {
		out := make([]float64, len(row))
		for i, v := range row {
			out[i] = s * v
		}

		return out, nil
	})
	if err != nil {
		return nil, err
	}

	return FromCollection(rows, m.n, m.cols)
}
