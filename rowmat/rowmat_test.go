// SPDX-License-Identifier: MIT

package rowmat_test

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/gridmat/dense"
	"github.com/katalvlaran/gridmat/dist"
	"github.com/katalvlaran/gridmat/rowmat"
)

const eps = 1e-9

func mustMatrix(t *testing.T, r dist.Runner, rows, cols int, values []float64) *rowmat.RowMatrix {
	t.Helper()
	d, err := dense.FromFlat(rows, cols, values)
	require.NoError(t, err)
	m, err := rowmat.FromDense(r, d, 3)
	require.NoError(t, err)

	return m
}

func randomValues(seed uint64, n int) []float64 {
	rng := rand.New(rand.NewPCG(seed, seed^0xABCD))
	out := make([]float64, n)
	for i := range out {
		out[i] = rng.Float64()*2 - 1
	}

	return out
}

func TestFromDenseRoundTrip(t *testing.T) {
	values := randomValues(1, 12)
	m := mustMatrix(t, dist.SeqRunner{}, 4, 3, values)
	require.Equal(t, 4, m.NumRows())
	require.Equal(t, 3, m.Cols())
	require.NoError(t, m.Validate())

	d, err := m.ToDense()
	require.NoError(t, err)
	require.Equal(t, values, d.Flat())
}

func TestFromCollectionValidation(t *testing.T) {
	r := dist.SeqRunner{}

	_, err := rowmat.FromCollection(nil, 1, 1)
	require.ErrorIs(t, err, rowmat.ErrNilMatrix)

	rows, err := dist.New(r, []dist.Pair[int, []float64]{
		{Key: 0, Value: []float64{1, 2}},
	}, 1)
	require.NoError(t, err)

	_, err = rowmat.FromCollection(rows, 0, 2)
	require.ErrorIs(t, err, rowmat.ErrBadShape)
	_, err = rowmat.FromCollection(rows, 2, 2)
	require.ErrorIs(t, err, rowmat.ErrRowGap)

	m, err := rowmat.FromCollection(rows, 1, 2)
	require.NoError(t, err)
	require.NoError(t, m.Validate())
}

func TestValidateFindsGapsAndBadRows(t *testing.T) {
	r := dist.SeqRunner{}

	// Index 2 present instead of 1: both a gap and an out-of-range index.
	gapped, err := dist.New(r, []dist.Pair[int, []float64]{
		{Key: 0, Value: []float64{1}},
		{Key: 2, Value: []float64{2}},
	}, 1)
	require.NoError(t, err)
	mg, err := rowmat.FromCollection(gapped, 2, 1)
	require.NoError(t, err)
	require.ErrorIs(t, mg.Validate(), rowmat.ErrRowGap)

	short, err := dist.New(r, []dist.Pair[int, []float64]{
		{Key: 0, Value: []float64{1, 2}},
		{Key: 1, Value: []float64{3}},
	}, 1)
	require.NoError(t, err)
	ms, err := rowmat.FromCollection(short, 2, 2)
	require.NoError(t, err)
	require.ErrorIs(t, ms.Validate(), rowmat.ErrBadShape)
}

func TestElementwiseOps(t *testing.T) {
	r := dist.NewPoolRunner(4)
	av := randomValues(10, 20)
	bv := randomValues(11, 20)
	a := mustMatrix(t, r, 4, 5, av)
	b := mustMatrix(t, r, 4, 5, bv)

	check := func(m *rowmat.RowMatrix, want func(a, b float64) float64) {
		t.Helper()
		d, err := m.ToDense()
		require.NoError(t, err)
		for i := range av {
			require.InDelta(t, want(av[i], bv[i]), d.Flat()[i], eps)
		}
	}

	sum, err := a.Add(b)
	require.NoError(t, err)
	check(sum, func(x, y float64) float64 { return x + y })

	diff, err := a.Sub(b)
	require.NoError(t, err)
	check(diff, func(x, y float64) float64 { return x - y })

	rdiff, err := a.ReverseSub(b)
	require.NoError(t, err)
	check(rdiff, func(x, y float64) float64 { return y - x })

	prod, err := a.Hadamard(b)
	require.NoError(t, err)
	check(prod, func(x, y float64) float64 { return x * y })

	quot, err := a.ElemDiv(b)
	require.NoError(t, err)
	check(quot, func(x, y float64) float64 { return x / y })

	rquot, err := a.ReverseDiv(b)
	require.NoError(t, err)
	check(rquot, func(x, y float64) float64 { return y / x })
}

func TestDivisionByZero(t *testing.T) {
	r := dist.SeqRunner{}
	a := mustMatrix(t, r, 1, 3, []float64{1, 2, 3})
	z := mustMatrix(t, r, 1, 3, []float64{1, 0, 3})

	_, err := a.ElemDiv(z)
	require.ErrorIs(t, err, rowmat.ErrDivisionByZero)
	_, err = z.ReverseDiv(a)
	require.ErrorIs(t, err, rowmat.ErrDivisionByZero)
}

func TestDimensionMismatch(t *testing.T) {
	r := dist.SeqRunner{}
	a := mustMatrix(t, r, 2, 3, randomValues(20, 6))
	b := mustMatrix(t, r, 3, 2, randomValues(21, 6))

	_, err := a.Add(b)
	require.ErrorIs(t, err, rowmat.ErrDimensionMismatch)
	_, err = a.Add(nil)
	require.ErrorIs(t, err, rowmat.ErrNilMatrix)
}

func TestScale(t *testing.T) {
	values := randomValues(30, 8)
	m := mustMatrix(t, dist.SeqRunner{}, 2, 4, values)

	scaled, err := m.Scale(-3)
	require.NoError(t, err)
	d, err := scaled.ToDense()
	require.NoError(t, err)
	for i := range values {
		require.InDelta(t, -3*values[i], d.Flat()[i], eps)
	}
}
