// SPDX-License-Identifier: MIT

package decomp

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/gridmat/dist"
	"github.com/katalvlaran/gridmat/triangular"
)

// Sentinel errors; match with errors.Is.
var (
	// ErrNonSquare is returned when LU is given a non-square matrix.
	ErrNonSquare = errors.New("decomp: matrix is not square")

	// ErrBadShape is returned when the row index set has gaps or row
	// lengths are inconsistent.
	ErrBadShape = errors.New("decomp: invalid input shape")

	// ErrSingularPivot is returned when an elimination pivot is exactly
	// zero. No pivoting strategy is applied; this is a hard failure.
	ErrSingularPivot = errors.New("decomp: singular pivot")
)

// luRow is the per-row elimination state: the shrinking active vector and
// the accumulated lower-triangular ratio list.
type luRow struct {
	vec []float64
	low []float64
}

// LU decomposes a square matrix, given as a row-indexed collection of dense
// row vectors, into L·U with L unit lower triangular and U upper triangular.
//
// Round i broadcasts row i's current vector as the pivot. Every row j > i
// computes ratio = vec[0]/pivot[0], appends the ratio to its running
// lower-triangular list, and replaces its vector with vec − ratio·pivot,
// dropping the leading (now zero) entry so the working set shrinks each
// round. Row i itself appends the unit diagonal and freezes. The accumulated
// ratio lists form L; the frozen shrinking vectors form U.
func LU(rows *dist.Collection[int, []float64]) (*triangular.Triangular, *triangular.Triangular, error) {
	n, err := validateSquare(rows)
	if err != nil {
		return nil, nil, fmt.Errorf("LU: %w", err)
	}

	state, err := dist.MapValues(rows, func(_ int, vec []float64) (luRow, error) {
		kept := make([]float64, len(vec))
		copy(kept, vec)

		return luRow{vec: kept}, nil
	})
	if err != nil {
		return nil, nil, err
	}

	for i := 0; i < n; i++ {
		// Collect and broadcast the pivot row's current vector.
		sel, err := state.Filter(func(j int, _ luRow) bool { return j == i })
		if err != nil {
			return nil, nil, err
		}
		pr, ok := sel.CollectMap()[i]
		if !ok || len(pr.vec) != n-i {
			return nil, nil, fmt.Errorf("LU: round %d: pivot row %d: %w", i, i, ErrBadShape)
		}
		if pr.vec[0] == 0 {
			return nil, nil, fmt.Errorf("LU: row %d: %w", i, ErrSingularPivot)
		}
		pivot := dist.NewBroadcast(pr.vec)

		// One parallel elimination pass over the rows below the pivot.
		state, err = dist.MapValues(state, func(j int, row luRow) (luRow, error) {
			switch {
			case j < i:
				return row, nil // frozen in an earlier round
			case j == i:
				return luRow{vec: row.vec, low: append(row.low[:len(row.low):len(row.low)], 1)}, nil
			default:
				p := pivot.Value()
				ratio := row.vec[0] / p[0]
				next := make([]float64, len(row.vec)-1)
				for t := range next {
					next[t] = row.vec[t+1] - ratio*p[t+1]
				}

				return luRow{vec: next, low: append(row.low[:len(row.low):len(row.low)], ratio)}, nil
			}
		})
		if err != nil {
			return nil, nil, err
		}
	}

	// The ratio lists form L, the frozen vectors form U.
	lowRows := make(map[int][]float64, n)
	upRows := make(map[int][]float64, n)
	for i, row := range state.CollectMap() {
		lowRows[i] = row.low
		upRows[i] = row.vec
	}
	lower, err := triangular.NewLower(rows.Runner(), lowRows, rows.NumPartitions())
	if err != nil {
		return nil, nil, fmt.Errorf("LU: assembling L: %w", err)
	}
	upper, err := triangular.NewUpper(rows.Runner(), upRows, rows.NumPartitions())
	if err != nil {
		return nil, nil, fmt.Errorf("LU: assembling U: %w", err)
	}

	return lower, upper, nil
}

// validateSquare checks the gap-free row index set and square shape, and
// returns the order.
func validateSquare(rows *dist.Collection[int, []float64]) (int, error) {
	all := rows.CollectMap()
	n := len(all)
	if n == 0 {
		return 0, ErrBadShape
	}
	for i := 0; i < n; i++ {
		vec, ok := all[i]
		if !ok {
			return 0, fmt.Errorf("missing row %d: %w", i, ErrBadShape)
		}
		if len(vec) != n {
			return 0, fmt.Errorf("row %d has %d entries for %d rows: %w", i, len(vec), n, ErrNonSquare)
		}
	}

	return n, nil
}
