// SPDX-License-Identifier: MIT

package triangular_test

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/gridmat/dist"
	"github.com/katalvlaran/gridmat/triangular"
)

const eps = 1e-9

// randomSystem builds a well-conditioned triangular matrix of order n with
// diagonal entries bounded away from zero.
func randomSystem(t *testing.T, r dist.Runner, kind triangular.Kind, n int, seed uint64) *triangular.Triangular {
	t.Helper()
	rng := rand.New(rand.NewPCG(seed, seed^0xABCD))
	rows := make(map[int][]float64, n)
	for i := 0; i < n; i++ {
		width := i + 1
		if kind == triangular.Upper {
			width = n - i
		}
		coeffs := make([]float64, width)
		for j := range coeffs {
			coeffs[j] = rng.Float64()*2 - 1
		}
		// The diagonal is the first stored coefficient of an upper row and
		// the last of a lower row.
		di := 0
		if kind == triangular.Lower {
			di = width - 1
		}
		coeffs[di] = 2 + rng.Float64()
		rows[i] = coeffs
	}
	tri, err := triangular.New(r, kind, rows, 3)
	require.NoError(t, err)

	return tri
}

func TestSolveUpperTwoByTwo(t *testing.T) {
	u, err := triangular.NewUpper(dist.SeqRunner{}, map[int][]float64{
		0: {2, 1},
		1: {3},
	}, 1)
	require.NoError(t, err)

	x, err := u.Solve([]float64{5, 6})
	require.NoError(t, err)
	require.InDelta(t, 1.5, x[0], eps)
	require.InDelta(t, 2.0, x[1], eps)
}

func TestSolveRoundTrip(t *testing.T) {
	for _, kind := range []triangular.Kind{triangular.Upper, triangular.Lower} {
		t.Run(kind.String(), func(t *testing.T) {
			r := dist.NewPoolRunner(4)
			tri := randomSystem(t, r, kind, 7, 42)

			rng := rand.New(rand.NewPCG(7, 7))
			b := make([]float64, 7)
			for i := range b {
				b[i] = rng.Float64()*2 - 1
			}

			x, err := tri.Solve(b)
			require.NoError(t, err)

			back, err := tri.MulVec(x)
			require.NoError(t, err)
			for i := range b {
				require.InDelta(t, b[i], back[i], eps)
			}
		})
	}
}

func TestNewValidatesLengthInvariant(t *testing.T) {
	r := dist.SeqRunner{}

	_, err := triangular.New(r, triangular.Upper, nil, 1)
	require.ErrorIs(t, err, triangular.ErrBadShape)

	// Upper row 1 of a 2x2 system must hold exactly one coefficient.
	_, err = triangular.NewUpper(r, map[int][]float64{
		0: {1, 2},
		1: {3, 4},
	}, 1)
	require.ErrorIs(t, err, triangular.ErrBadShape)

	// Lower row 0 must hold exactly one coefficient.
	_, err = triangular.NewLower(r, map[int][]float64{
		0: {},
		1: {1, 2},
	}, 1)
	require.ErrorIs(t, err, triangular.ErrBadShape)

	// Missing row index.
	_, err = triangular.NewUpper(r, map[int][]float64{
		0: {1, 2},
		2: {3},
	}, 1)
	require.ErrorIs(t, err, triangular.ErrBadShape)
}

func TestSolveZeroDiagonal(t *testing.T) {
	u, err := triangular.NewUpper(dist.SeqRunner{}, map[int][]float64{
		0: {1, 4},
		1: {0},
	}, 1)
	require.NoError(t, err)

	_, err = u.Solve([]float64{1, 1})
	require.ErrorIs(t, err, triangular.ErrZeroDiagonal)
}

func TestSolveRHSLength(t *testing.T) {
	u, err := triangular.NewUpper(dist.SeqRunner{}, map[int][]float64{
		0: {2, 1},
		1: {3},
	}, 1)
	require.NoError(t, err)

	_, err = u.Solve([]float64{1})
	require.ErrorIs(t, err, triangular.ErrDimensionMismatch)
}

func TestRowAndAccessors(t *testing.T) {
	l, err := triangular.NewLower(dist.SeqRunner{}, map[int][]float64{
		0: {2},
		1: {1, 3},
	}, 1)
	require.NoError(t, err)
	require.Equal(t, triangular.Lower, l.Kind())
	require.Equal(t, 2, l.Order())

	row, err := l.Row(1)
	require.NoError(t, err)
	require.Equal(t, []float64{1, 3}, row)

	// Row hands out a copy.
	row[0] = 99
	again, err := l.Row(1)
	require.NoError(t, err)
	require.Equal(t, []float64{1, 3}, again)

	_, err = l.Row(2)
	require.ErrorIs(t, err, triangular.ErrBadShape)
}
