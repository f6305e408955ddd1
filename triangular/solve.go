// SPDX-License-Identifier: MIT

package triangular

import (
	"fmt"

	"github.com/katalvlaran/gridmat/dist"
)

// solveRow is the per-row state carried between substitution rounds.
// Unresolved rows hold their remaining coefficients and running right-hand
// side; a resolved row has coeffs == nil and its solution stored in rhs.
type solveRow struct {
	coeffs []float64
	rhs    float64
}

// Solve computes x with t·x = rhs by back substitution (upper) or forward
// substitution (lower).
//
// Round i — iterating from the matrix's near end toward its far end — finds
// row i reduced to its diagonal coefficient, divides to obtain x[i],
// broadcasts that scalar, and every remaining row subtracts its column-i
// contribution and drops the column from its stored coefficients. After n
// rounds every row holds exactly its solved value.
func (t *Triangular) Solve(rhs []float64) ([]float64, error) {
	if len(rhs) != t.n {
		return nil, fmt.Errorf("Solve: rhs len %d, want %d: %w", len(rhs), t.n, ErrDimensionMismatch)
	}

	// Pair every row with its right-hand-side entry.
	state, err := dist.MapValues(t.rows, func(i int, coeffs []float64) (solveRow, error) {
		kept := make([]float64, len(coeffs))
		copy(kept, coeffs)

		return solveRow{coeffs: kept, rhs: rhs[i]}, nil
	})
	if err != nil {
		return nil, err
	}

	for round := 0; round < t.n; round++ {
		// Upper solves last-to-first, lower first-to-last.
		i := round
		if t.kind == Upper {
			i = t.n - 1 - round
		}

		// The pivot row has been reduced to its single diagonal coefficient.
		pivot, err := state.Filter(func(j int, _ solveRow) bool { return j == i })
		if err != nil {
			return nil, err
		}
		pr, ok := pivot.CollectMap()[i]
		if !ok || len(pr.coeffs) != 1 {
			return nil, fmt.Errorf("Solve: round %d: pivot row %d not reduced: %w", round, i, ErrBadShape)
		}
		if pr.coeffs[0] == 0 {
			return nil, fmt.Errorf("Solve: row %d: %w", i, ErrZeroDiagonal)
		}
		solved := dist.NewBroadcast(pr.rhs / pr.coeffs[0])

		// One parallel pass: freeze the pivot row, update the unresolved.
		state, err = dist.MapValues(state, func(j int, row solveRow) (solveRow, error) {
			x := solved.Value()
			switch {
			case j == i:
				return solveRow{rhs: x}, nil
			case row.coeffs == nil:
				return row, nil // already resolved in an earlier round
			case t.kind == Upper:
				// Row j < i stores columns j..; column i is its last kept
				// coefficient.
				last := len(row.coeffs) - 1

				return solveRow{coeffs: row.coeffs[:last], rhs: row.rhs - row.coeffs[last]*x}, nil
			default:
				// Lower: column i is the first kept coefficient of row j > i.
				return solveRow{coeffs: row.coeffs[1:], rhs: row.rhs - row.coeffs[0]*x}, nil
			}
		})
		if err != nil {
			return nil, err
		}
	}

	// Collect and order the per-row solutions.
	x := make([]float64, t.n)
	for i, row := range state.CollectMap() {
		x[i] = row.rhs
	}

	return x, nil
}
