// SPDX-License-Identifier: MIT
// Package dense_test contains unit tests for the local dense primitives.
package dense_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/gridmat/dense"
)

func TestNewZeroInitialized(t *testing.T) {
	for _, tc := range []struct{ rows, cols int }{
		{1, 1},
		{3, 5},
	} {
		m, err := dense.New(tc.rows, tc.cols)
		require.NoError(t, err)
		for i := 0; i < tc.rows; i++ {
			for j := 0; j < tc.cols; j++ {
				v, err := m.At(i, j)
				require.NoError(t, err)
				require.Zero(t, v)
			}
		}
	}
}

func TestNewRejectsBadShape(t *testing.T) {
	_, err := dense.New(0, 3)
	require.ErrorIs(t, err, dense.ErrBadShape)
	_, err = dense.New(3, -1)
	require.ErrorIs(t, err, dense.ErrBadShape)
	_, err = dense.FromFlat(2, 2, []float64{1, 2, 3})
	require.ErrorIs(t, err, dense.ErrBadShape)
}

func TestAtSetBounds(t *testing.T) {
	m, err := dense.New(2, 2)
	require.NoError(t, err)
	require.NoError(t, m.Set(1, 1, 7))
	v, err := m.At(1, 1)
	require.NoError(t, err)
	require.Equal(t, 7.0, v)

	_, err = m.At(2, 0)
	require.ErrorIs(t, err, dense.ErrOutOfRange)
	require.ErrorIs(t, m.Set(0, -1, 1), dense.ErrOutOfRange)
}

func TestFromFlatRowMajorOrder(t *testing.T) {
	m, err := dense.FromFlat(2, 3, []float64{1, 2, 3, 4, 5, 6})
	require.NoError(t, err)
	v, err := m.At(1, 2)
	require.NoError(t, err)
	require.Equal(t, 6.0, v)
	require.Equal(t, []float64{1, 2, 3, 4, 5, 6}, m.Flat())
}

func TestAddSubHadamard(t *testing.T) {
	a, err := dense.FromFlat(2, 2, []float64{1, 2, 3, 4})
	require.NoError(t, err)
	b, err := dense.FromFlat(2, 2, []float64{4, 3, 2, 1})
	require.NoError(t, err)

	sum, err := a.Add(b)
	require.NoError(t, err)
	require.Equal(t, []float64{5, 5, 5, 5}, sum.Flat())

	diff, err := a.Sub(b)
	require.NoError(t, err)
	require.Equal(t, []float64{-3, -1, 1, 3}, diff.Flat())

	had, err := a.Hadamard(b)
	require.NoError(t, err)
	require.Equal(t, []float64{4, 6, 6, 4}, had.Flat())

	wrong, err := dense.New(3, 2)
	require.NoError(t, err)
	_, err = a.Add(wrong)
	require.ErrorIs(t, err, dense.ErrDimensionMismatch)
}

func TestElemDivByZero(t *testing.T) {
	a, err := dense.FromFlat(1, 2, []float64{1, 2})
	require.NoError(t, err)
	b, err := dense.FromFlat(1, 2, []float64{1, 0})
	require.NoError(t, err)
	_, err = a.ElemDiv(b)
	require.ErrorIs(t, err, dense.ErrDivisionByZero)
}

func TestMul(t *testing.T) {
	a, err := dense.FromFlat(2, 3, []float64{1, 2, 3, 4, 5, 6})
	require.NoError(t, err)
	b, err := dense.FromFlat(3, 2, []float64{7, 8, 9, 10, 11, 12})
	require.NoError(t, err)

	c, err := a.Mul(b)
	require.NoError(t, err)
	require.Equal(t, []float64{58, 64, 139, 154}, c.Flat())

	_, err = b.Mul(c)
	require.NoError(t, err)
	_, err = a.Mul(a)
	require.ErrorIs(t, err, dense.ErrDimensionMismatch)
}

func TestMulIdentity(t *testing.T) {
	a, err := dense.FromFlat(2, 2, []float64{4, 3, 6, 3})
	require.NoError(t, err)
	id, err := dense.Identity(2)
	require.NoError(t, err)

	c, err := a.Mul(id)
	require.NoError(t, err)
	require.Equal(t, a.Flat(), c.Flat())
}

func TestTransposeInvolution(t *testing.T) {
	a, err := dense.FromFlat(2, 3, []float64{1, 2, 3, 4, 5, 6})
	require.NoError(t, err)
	tt := a.Transpose().Transpose()
	require.Equal(t, a.Flat(), tt.Flat())

	at := a.Transpose()
	require.Equal(t, 3, at.Rows())
	require.Equal(t, 2, at.Cols())
	v, err := at.At(2, 1)
	require.NoError(t, err)
	require.Equal(t, 6.0, v)
}

func TestSlice(t *testing.T) {
	a, err := dense.FromFlat(3, 3, []float64{1, 2, 3, 4, 5, 6, 7, 8, 9})
	require.NoError(t, err)

	s, err := a.Slice(1, 1, 2, 2)
	require.NoError(t, err)
	require.Equal(t, []float64{5, 6, 8, 9}, s.Flat())

	_, err = a.Slice(2, 2, 2, 2)
	require.ErrorIs(t, err, dense.ErrOutOfRange)
	_, err = a.Slice(0, 0, 0, 1)
	require.ErrorIs(t, err, dense.ErrBadShape)
}

func TestCopyInto(t *testing.T) {
	dst, err := dense.New(3, 3)
	require.NoError(t, err)
	src, err := dense.FromFlat(2, 2, []float64{1, 2, 3, 4})
	require.NoError(t, err)

	require.NoError(t, dst.CopyInto(1, 1, src))
	require.Equal(t, []float64{0, 0, 0, 0, 1, 2, 0, 3, 4}, dst.Flat())
	require.ErrorIs(t, dst.CopyInto(2, 2, src), dense.ErrOutOfRange)
}

func TestVectorKernels(t *testing.T) {
	d, err := dense.Dot([]float64{1, 2, 3}, []float64{4, 5, 6})
	require.NoError(t, err)
	require.Equal(t, 32.0, d)
	_, err = dense.Dot([]float64{1}, []float64{1, 2})
	require.ErrorIs(t, err, dense.ErrDimensionMismatch)

	require.InDelta(t, 5.0, dense.Norm2([]float64{3, 4}), 1e-12)

	y, err := dense.AXPY(2, []float64{1, 1}, []float64{1, 2})
	require.NoError(t, err)
	require.Equal(t, []float64{3, 4}, y)

	require.Equal(t, []float64{2, 4}, dense.ScaleVec(2, []float64{1, 2}))
}

func TestCloneIndependence(t *testing.T) {
	a, err := dense.FromFlat(1, 2, []float64{1, 2})
	require.NoError(t, err)
	b := a.Clone()
	require.NoError(t, b.Set(0, 0, 9))
	v, err := a.At(0, 0)
	require.NoError(t, err)
	require.Equal(t, 1.0, v)
}
