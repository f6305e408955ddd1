// SPDX-License-Identifier: MIT

package decomp

import (
	"fmt"
	"math"

	"github.com/katalvlaran/gridmat/dense"
	"github.com/katalvlaran/gridmat/dist"
	"github.com/katalvlaran/gridmat/triangular"
)

// qrCol is the per-column state: the working column vector and its
// accumulated column of the R factor. Column j collects R[0][j]..R[j][j]
// across rounds 0..j, one entry per round it participates in.
type qrCol struct {
	vec  []float64
	rcol []float64
}

// qrPivot is the broadcast payload of one Gram–Schmidt round.
type qrPivot struct {
	vec     []float64 // the still-unnormalized pivot column
	sqNorm  float64   // Σ vec[t]²
	invNorm float64   // 1/√sqNorm
}

// QR decomposes a matrix, supplied column-major as a row-indexed collection
// of dense column vectors, into Q·R with Q's columns orthonormal and R
// upper triangular of order numColumns.
//
// Round i of classical Gram–Schmidt broadcasts column i's current vector
// with its squared norm. Column i normalizes itself into the i-th column of
// Q and records the norm as R[i][i]; every column j > i records
// dot(col_j, pivot)/norm as R[i][j] and subtracts (dot/sqNorm)·pivot, the
// projection of col_j onto the pivot direction.
func QR(cols *dist.Collection[int, []float64]) (*dense.Dense, *triangular.Triangular, error) {
	n, m, err := validateColumns(cols)
	if err != nil {
		return nil, nil, fmt.Errorf("QR: %w", err)
	}

	state, err := dist.MapValues(cols, func(_ int, vec []float64) (qrCol, error) {
		kept := make([]float64, len(vec))
		copy(kept, vec)

		return qrCol{vec: kept}, nil
	})
	if err != nil {
		return nil, nil, err
	}

	for i := 0; i < n; i++ {
		sel, err := state.Filter(func(j int, _ qrCol) bool { return j == i })
		if err != nil {
			return nil, nil, err
		}
		pc, ok := sel.CollectMap()[i]
		if !ok {
			return nil, nil, fmt.Errorf("QR: round %d: missing column %d: %w", i, i, ErrBadShape)
		}
		var sq float64
		for _, v := range pc.vec {
			sq += v * v
		}
		if sq == 0 {
			return nil, nil, fmt.Errorf("QR: column %d: %w", i, ErrSingularPivot)
		}
		norm := math.Sqrt(sq)
		pivot := dist.NewBroadcast(qrPivot{vec: pc.vec, sqNorm: sq, invNorm: 1 / norm})

		state, err = dist.MapValues(state, func(j int, col qrCol) (qrCol, error) {
			p := pivot.Value()
			switch {
			case j < i:
				return col, nil // already orthonormalized
			case j == i:
				return qrCol{
					vec:  dense.ScaleVec(p.invNorm, col.vec),
					rcol: append(col.rcol[:len(col.rcol):len(col.rcol)], norm),
				}, nil
			default:
				dot, err := dense.Dot(col.vec, p.vec)
				if err != nil {
					return qrCol{}, fmt.Errorf("QR: column %d: %w", j, err)
				}
				next, err := dense.AXPY(-dot/p.sqNorm, p.vec, col.vec)
				if err != nil {
					return qrCol{}, fmt.Errorf("QR: column %d: %w", j, err)
				}

				return qrCol{
					vec:  next,
					rcol: append(col.rcol[:len(col.rcol):len(col.rcol)], dot*p.invNorm),
				}, nil
			}
		})
		if err != nil {
			return nil, nil, err
		}
	}

	// Assemble Q from the orthonormal columns and R from the per-column
	// coefficient lists (entry i of column j's list is R[i][j]).
	final := state.CollectMap()
	q, err := dense.New(m, n)
	if err != nil {
		return nil, nil, err
	}
	upRows := make(map[int][]float64, n)
	for i := 0; i < n; i++ {
		upRows[i] = make([]float64, n-i)
	}
	for j := 0; j < n; j++ {
		col, ok := final[j]
		if !ok || len(col.rcol) != j+1 {
			return nil, nil, fmt.Errorf("QR: column %d state: %w", j, ErrBadShape)
		}
		for t, v := range col.vec {
			if err = q.Set(t, j, v); err != nil {
				return nil, nil, err
			}
		}
		for i, v := range col.rcol {
			upRows[i][j-i] = v
		}
	}
	r, err := triangular.NewUpper(cols.Runner(), upRows, cols.NumPartitions())
	if err != nil {
		return nil, nil, fmt.Errorf("QR: assembling R: %w", err)
	}

	return q, r, nil
}

// validateColumns checks the gap-free column index set and uniform column
// length; returns (numColumns, columnLength).
func validateColumns(cols *dist.Collection[int, []float64]) (n, m int, err error) {
	all := cols.CollectMap()
	n = len(all)
	if n == 0 {
		return 0, 0, ErrBadShape
	}
	first, ok := all[0]
	if !ok {
		return 0, 0, fmt.Errorf("missing column 0: %w", ErrBadShape)
	}
	m = len(first)
	if m == 0 || m < n {
		return 0, 0, fmt.Errorf("%d columns of length %d: %w", n, m, ErrBadShape)
	}
	for i := 1; i < n; i++ {
		vec, ok := all[i]
		if !ok {
			return 0, 0, fmt.Errorf("missing column %d: %w", i, ErrBadShape)
		}
		if len(vec) != m {
			return 0, 0, fmt.Errorf("column %d has %d entries, want %d: %w", i, len(vec), m, ErrBadShape)
		}
	}

	return n, m, nil
}
