// SPDX-License-Identifier: MIT

package decomp_test

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/gridmat/decomp"
	"github.com/katalvlaran/gridmat/dense"
	"github.com/katalvlaran/gridmat/dist"
	"github.com/katalvlaran/gridmat/triangular"
)

const eps = 1e-9

// rowCollection distributes a dense matrix one row vector per element.
func rowCollection(t *testing.T, r dist.Runner, d *dense.Dense) *dist.Collection[int, []float64] {
	t.Helper()
	pairs := make([]dist.Pair[int, []float64], d.Rows())
	for i := 0; i < d.Rows(); i++ {
		row, err := d.Row(i)
		require.NoError(t, err)
		pairs[i] = dist.Pair[int, []float64]{Key: i, Value: row}
	}
	c, err := dist.New(r, pairs, 3)
	require.NoError(t, err)

	return c
}

// triToDense expands a triangular factor into a full square matrix.
func triToDense(t *testing.T, tri *triangular.Triangular) *dense.Dense {
	t.Helper()
	n := tri.Order()
	out, err := dense.New(n, n)
	require.NoError(t, err)
	for i := 0; i < n; i++ {
		row, err := tri.Row(i)
		require.NoError(t, err)
		start := 0
		if tri.Kind() == triangular.Upper {
			start = i
		}
		for j, v := range row {
			require.NoError(t, out.Set(i, start+j, v))
		}
	}

	return out
}

// diagonallyDominant builds an n×n matrix whose elimination never needs
// pivoting.
func diagonallyDominant(t *testing.T, n int, seed uint64) *dense.Dense {
	t.Helper()
	rng := rand.New(rand.NewPCG(seed, seed^0xABCD))
	out, err := dense.New(n, n)
	require.NoError(t, err)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			v := rng.Float64()*2 - 1
			if i == j {
				v = float64(n) + rng.Float64()
			}
			require.NoError(t, out.Set(i, j, v))
		}
	}

	return out
}

func TestLUIdentity(t *testing.T) {
	id, err := dense.Identity(4)
	require.NoError(t, err)
	rows := rowCollection(t, dist.SeqRunner{}, id)

	lower, upper, err := decomp.LU(rows)
	require.NoError(t, err)
	require.Equal(t, triangular.Lower, lower.Kind())
	require.Equal(t, triangular.Upper, upper.Kind())

	require.True(t, id.EqualApprox(triToDense(t, lower), eps))
	require.True(t, id.EqualApprox(triToDense(t, upper), eps))
}

func TestLUReconstructsInput(t *testing.T) {
	for _, n := range []int{2, 3, 6} {
		r := dist.NewPoolRunner(4)
		a := diagonallyDominant(t, n, uint64(n))
		lower, upper, err := decomp.LU(rowCollection(t, r, a))
		require.NoError(t, err)

		prod, err := triToDense(t, lower).Mul(triToDense(t, upper))
		require.NoError(t, err)
		require.True(t, a.EqualApprox(prod, 1e-8), "order %d", n)

		// L carries a unit diagonal.
		for i := 0; i < n; i++ {
			row, err := lower.Row(i)
			require.NoError(t, err)
			require.InDelta(t, 1.0, row[len(row)-1], eps)
		}
	}
}

func TestLUSolvePipeline(t *testing.T) {
	r := dist.SeqRunner{}
	a := diagonallyDominant(t, 5, 99)
	lower, upper, err := decomp.LU(rowCollection(t, r, a))
	require.NoError(t, err)

	rng := rand.New(rand.NewPCG(5, 5))
	b := make([]float64, 5)
	for i := range b {
		b[i] = rng.Float64()*2 - 1
	}

	// A·x = b via L·y = b then U·x = y.
	y, err := lower.Solve(b)
	require.NoError(t, err)
	x, err := upper.Solve(y)
	require.NoError(t, err)

	back, err := a.MulVec(x)
	require.NoError(t, err)
	for i := range b {
		require.InDelta(t, b[i], back[i], 1e-8)
	}
}

func TestLUNonSquare(t *testing.T) {
	d, err := dense.FromFlat(2, 3, []float64{1, 2, 3, 4, 5, 6})
	require.NoError(t, err)
	_, _, err = decomp.LU(rowCollection(t, dist.SeqRunner{}, d))
	require.ErrorIs(t, err, decomp.ErrNonSquare)
}

func TestLUSingularPivot(t *testing.T) {
	// Zero leading entry with no pivoting applied.
	d, err := dense.FromFlat(2, 2, []float64{0, 1, 1, 0})
	require.NoError(t, err)
	_, _, err = decomp.LU(rowCollection(t, dist.SeqRunner{}, d))
	require.ErrorIs(t, err, decomp.ErrSingularPivot)
}

func TestLUEmptyInput(t *testing.T) {
	rows, err := dist.New[int, []float64](dist.SeqRunner{}, nil, 1)
	require.NoError(t, err)
	_, _, err = decomp.LU(rows)
	require.ErrorIs(t, err, decomp.ErrBadShape)
}

func TestQREmptyInput(t *testing.T) {
	cols, err := dist.New[int, []float64](dist.SeqRunner{}, nil, 1)
	require.NoError(t, err)
	_, _, err = decomp.QR(cols)
	require.ErrorIs(t, err, decomp.ErrBadShape)
}
