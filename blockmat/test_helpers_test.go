// SPDX-License-Identifier: MIT

package blockmat_test

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/gridmat/blockmat"
	"github.com/katalvlaran/gridmat/dense"
	"github.com/katalvlaran/gridmat/dist"
)

const eps = 1e-9

// mustDense builds a dense matrix from row-major values.
func mustDense(t *testing.T, rows, cols int, values []float64) *dense.Dense {
	t.Helper()
	d, err := dense.FromFlat(rows, cols, values)
	require.NoError(t, err)

	return d
}

// mustBlock splits values into a block matrix on the given grid.
func mustBlock(t *testing.T, r dist.Runner, rows, cols, gridRows, gridCols int, values []float64) *blockmat.BlockMatrix {
	t.Helper()
	m, err := blockmat.FromDense(r, mustDense(t, rows, cols, values), gridRows, gridCols, 4)
	require.NoError(t, err)

	return m
}

// randomValues yields deterministic pseudo-random entries.
func randomValues(seed uint64, n int) []float64 {
	rng := rand.New(rand.NewPCG(seed, seed^0xABCD))
	out := make([]float64, n)
	for i := range out {
		out[i] = rng.Float64()*2 - 1
	}

	return out
}

// requireSameValues asserts both matrices assemble to equal content.
func requireSameValues(t *testing.T, want, got *blockmat.BlockMatrix, tol float64) {
	t.Helper()
	wd, err := want.ToDense()
	require.NoError(t, err)
	gd, err := got.ToDense()
	require.NoError(t, err)
	require.True(t, wd.EqualApprox(gd, tol), "assembled values differ")
}
