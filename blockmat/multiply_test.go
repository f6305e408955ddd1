// SPDX-License-Identifier: MIT

package blockmat_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/gridmat/blockmat"
	"github.com/katalvlaran/gridmat/dense"
	"github.com/katalvlaran/gridmat/dist"
)

// mulDense multiplies via the plain dense kernel, as the reference result.
func mulDense(t *testing.T, a, b *dense.Dense) *dense.Dense {
	t.Helper()
	p, err := a.Mul(b)
	require.NoError(t, err)

	return p
}

func TestMultiplySingleBlockByIdentity(t *testing.T) {
	r := dist.SeqRunner{}
	a := mustBlock(t, r, 2, 2, 1, 1, []float64{4, 3, 6, 3})
	id, err := dense.Identity(2)
	require.NoError(t, err)
	eye, err := blockmat.FromDense(r, id, 1, 1, 1)
	require.NoError(t, err)

	prod, err := a.Multiply(eye)
	require.NoError(t, err)
	pd, err := prod.ToDense()
	require.NoError(t, err)
	require.Equal(t, []float64{4, 3, 6, 3}, pd.Flat())
}

func TestMultiplyMatchesDenseKernel(t *testing.T) {
	for _, tc := range []struct {
		name                   string
		m, k, n                int
		gm, gkA, gkB, gn       int
	}{
		{"aligned", 4, 6, 4, 2, 3, 3, 2},
		{"coarse left", 4, 8, 4, 2, 2, 4, 2}, // A resplit 2 → 4
		{"coarse right", 6, 6, 6, 3, 3, 1, 3}, // B resplit 1 → 3
		{"tall thin", 9, 3, 2, 3, 1, 1, 1},
	} {
		t.Run(tc.name, func(t *testing.T) {
			r := dist.NewPoolRunner(4)
			ad := mustDense(t, tc.m, tc.k, randomValues(uint64(100+tc.m), tc.m*tc.k))
			bd := mustDense(t, tc.k, tc.n, randomValues(uint64(200+tc.n), tc.k*tc.n))

			a, err := blockmat.FromDense(r, ad, tc.gm, tc.gkA, 4)
			require.NoError(t, err)
			b, err := blockmat.FromDense(r, bd, tc.gkB, tc.gn, 4)
			require.NoError(t, err)

			prod, err := a.Multiply(b)
			require.NoError(t, err)
			require.Equal(t, tc.m, prod.Rows())
			require.Equal(t, tc.n, prod.Cols())
			require.NoError(t, prod.Validate())

			pd, err := prod.ToDense()
			require.NoError(t, err)
			require.True(t, mulDense(t, ad, bd).EqualApprox(pd, eps))
		})
	}
}

func TestMultiplyAssociativity(t *testing.T) {
	r := dist.NewPoolRunner(4)
	a := mustBlock(t, r, 4, 4, 2, 2, randomValues(300, 16))
	b := mustBlock(t, r, 4, 4, 2, 2, randomValues(301, 16))
	c := mustBlock(t, r, 4, 4, 2, 2, randomValues(302, 16))

	ab, err := a.Multiply(b)
	require.NoError(t, err)
	left, err := ab.Multiply(c)
	require.NoError(t, err)

	bc, err := b.Multiply(c)
	require.NoError(t, err)
	right, err := a.Multiply(bc)
	require.NoError(t, err)

	requireSameValues(t, left, right, eps)
}

func TestMultiplyUnsupportedGridShape(t *testing.T) {
	r := dist.SeqRunner{}
	a := mustBlock(t, r, 4, 6, 2, 2, randomValues(310, 24))
	b := mustBlock(t, r, 6, 4, 3, 2, randomValues(311, 24))

	_, err := a.Multiply(b)
	require.ErrorIs(t, err, blockmat.ErrUnsupportedGridShape)
}

func TestMultiplyDimensionMismatch(t *testing.T) {
	r := dist.SeqRunner{}
	a := mustBlock(t, r, 2, 3, 1, 1, randomValues(320, 6))
	b := mustBlock(t, r, 2, 3, 1, 1, randomValues(321, 6))

	_, err := a.Multiply(b)
	require.ErrorIs(t, err, blockmat.ErrDimensionMismatch)
}

func TestMulLocal(t *testing.T) {
	r := dist.NewPoolRunner(4)
	ad := mustDense(t, 5, 6, randomValues(330, 30))
	sm := mustDense(t, 6, 2, randomValues(331, 12))

	a, err := blockmat.FromDense(r, ad, 2, 3, 4)
	require.NoError(t, err)

	prod, err := a.MulLocal(sm)
	require.NoError(t, err)
	require.Equal(t, 5, prod.Rows())
	require.Equal(t, 2, prod.Cols())
	require.Equal(t, 2, prod.GridRows())
	require.Equal(t, 1, prod.GridCols())
	require.NoError(t, prod.Validate())

	pd, err := prod.ToDense()
	require.NoError(t, err)
	require.True(t, mulDense(t, ad, sm).EqualApprox(pd, eps))

	_, err = a.MulLocal(mustDense(t, 5, 2, randomValues(332, 10)))
	require.ErrorIs(t, err, blockmat.ErrDimensionMismatch)
}

func TestMulVector(t *testing.T) {
	r := dist.SeqRunner{}
	ad := mustDense(t, 4, 6, randomValues(340, 24))
	a, err := blockmat.FromDense(r, ad, 2, 2, 4)
	require.NoError(t, err)

	x := randomValues(341, 6)
	shards, err := dist.New(r, []dist.Pair[int, []float64]{
		{Key: 0, Value: x[:3]},
		{Key: 1, Value: x[3:]},
	}, 2)
	require.NoError(t, err)

	y, err := a.MulVector(shards)
	require.NoError(t, err)
	out := y.CollectMap()
	require.Len(t, out, 2)

	want, err := ad.MulVec(x)
	require.NoError(t, err)
	for i, w := range want {
		shard := out[i/2]
		require.InDelta(t, w, shard[i%2], eps)
	}

	// Wrong shard count for the block-column grid.
	one, err := dist.New(r, []dist.Pair[int, []float64]{{Key: 0, Value: x}}, 1)
	require.NoError(t, err)
	_, err = a.MulVector(one)
	require.ErrorIs(t, err, blockmat.ErrDimensionMismatch)
}

func TestMulDispatch(t *testing.T) {
	r := dist.SeqRunner{}
	av := randomValues(350, 16)
	a := mustBlock(t, r, 4, 4, 2, 2, av)

	byScalar, err := blockmat.Mul(a, 2.0)
	require.NoError(t, err)
	sd, err := byScalar.ToDense()
	require.NoError(t, err)
	for i := range av {
		require.InDelta(t, 2*av[i], sd.Flat()[i], eps)
	}

	byInt, err := blockmat.Mul(a, 3)
	require.NoError(t, err)
	id, err := byInt.ToDense()
	require.NoError(t, err)
	for i := range av {
		require.InDelta(t, 3*av[i], id.Flat()[i], eps)
	}

	b := mustBlock(t, r, 4, 4, 2, 2, randomValues(351, 16))
	byBlock, err := blockmat.Mul(a, b)
	require.NoError(t, err)
	viaMethod, err := a.Multiply(b)
	require.NoError(t, err)
	requireSameValues(t, viaMethod, byBlock, eps)

	small := mustDense(t, 4, 1, randomValues(352, 4))
	byLocal, err := blockmat.Mul(a, small)
	require.NoError(t, err)
	require.Equal(t, 1, byLocal.Cols())

	_, err = blockmat.Mul(a, "nope")
	require.ErrorIs(t, err, blockmat.ErrUnsupportedOperand)
	_, err = blockmat.Mul(nil, 2.0)
	require.ErrorIs(t, err, blockmat.ErrNilMatrix)
}
