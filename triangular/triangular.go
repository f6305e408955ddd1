// SPDX-License-Identifier: MIT

package triangular

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/gridmat/dist"
)

// Sentinel errors; match with errors.Is.
var (
	// ErrBadShape is returned when a row's coefficient count violates the
	// triangular length invariant, or the row index set has gaps.
	ErrBadShape = errors.New("triangular: invalid triangular shape")

	// ErrDimensionMismatch indicates a right-hand side of the wrong length.
	ErrDimensionMismatch = errors.New("triangular: dimension mismatch")

	// ErrZeroDiagonal is returned when substitution meets a zero diagonal
	// coefficient; the system has no unique solution.
	ErrZeroDiagonal = errors.New("triangular: zero diagonal coefficient")
)

// Kind selects the triangular orientation.
type Kind int

const (
	// Upper marks an upper triangular matrix (row i holds columns i..n-1).
	Upper Kind = iota

	// Lower marks a lower triangular matrix (row i holds columns 0..i).
	Lower
)

// String names the orientation for diagnostics.
func (k Kind) String() string {
	if k == Upper {
		return "upper"
	}

	return "lower"
}

// Triangular is an immutable triangular matrix of order n, stored as a
// distributed collection of per-row coefficient vectors.
type Triangular struct {
	kind Kind
	n    int
	rows *dist.Collection[int, []float64]
}

// rowWidth returns the required coefficient count of row i.
func rowWidth(kind Kind, n, i int) int {
	if kind == Upper {
		return n - i
	}

	return i + 1
}

// New validates rows against the length invariant of kind and wraps them.
// The rows map is copied into a collection with numPartitions partitions.
func New(runner dist.Runner, kind Kind, rows map[int][]float64, numPartitions int) (*Triangular, error) {
	n := len(rows)
	if n == 0 {
		return nil, fmt.Errorf("New: no rows: %w", ErrBadShape)
	}
	for i := 0; i < n; i++ {
		coeffs, ok := rows[i]
		if !ok {
			return nil, fmt.Errorf("New: missing row %d: %w", i, ErrBadShape)
		}
		if want := rowWidth(kind, n, i); len(coeffs) != want {
			return nil, fmt.Errorf("New: %s row %d has %d coefficients, want %d: %w",
				kind, i, len(coeffs), want, ErrBadShape)
		}
	}
	c, err := dist.FromMap(runner, rows, numPartitions)
	if err != nil {
		return nil, err
	}

	return &Triangular{kind: kind, n: n, rows: c}, nil
}

// NewUpper builds an upper triangular matrix; see New.
func NewUpper(runner dist.Runner, rows map[int][]float64, numPartitions int) (*Triangular, error) {
	return New(runner, Upper, rows, numPartitions)
}

// NewLower builds a lower triangular matrix; see New.
func NewLower(runner dist.Runner, rows map[int][]float64, numPartitions int) (*Triangular, error) {
	return New(runner, Lower, rows, numPartitions)
}

// Kind returns the orientation.
func (t *Triangular) Kind() Kind { return t.kind }

// Order returns n, the number of rows and columns.
func (t *Triangular) Order() int { return t.n }

// Rows returns the underlying coefficient collection.
func (t *Triangular) Rows() *dist.Collection[int, []float64] { return t.rows }

// Row returns a copy of row i's coefficient vector.
func (t *Triangular) Row(i int) ([]float64, error) {
	if i < 0 || i >= t.n {
		return nil, fmt.Errorf("Row(%d): %w", i, ErrBadShape)
	}
	coeffs := t.rows.CollectMap()[i]
	out := make([]float64, len(coeffs))
	copy(out, coeffs)

	return out, nil
}

// MulVec computes t · x, used for solve round-trip verification.
func (t *Triangular) MulVec(x []float64) ([]float64, error) {
	if len(x) != t.n {
		return nil, fmt.Errorf("MulVec: len %d, want %d: %w", len(x), t.n, ErrDimensionMismatch)
	}
	out := make([]float64, t.n)
	for i, coeffs := range t.rows.CollectMap() {
		start := 0
		if t.kind == Upper {
			start = i
		}
		var s float64
		for j, c := range coeffs {
			s += c * x[start+j]
		}
		out[i] = s
	}

	return out, nil
}
