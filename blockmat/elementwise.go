// SPDX-License-Identifier: MIT
// Package blockmat: elementwise algebra over aligned block grids.
//
// When both operands share one block grid the operation is a single
// co-partitioned join followed by a local per-block kernel. When the grids
// disagree (but the matrix dimensions match) both operands are normalized to
// the row-oriented representation, combined there, and the result is
// re-blocked to the receiver's grid — values are identical either way.
package blockmat

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/gridmat/dense"
	"github.com/katalvlaran/gridmat/dist"
	"github.com/katalvlaran/gridmat/rowmat"
)

// blockKernel combines two aligned blocks; rowKernel is the same operation
// expressed over the row-oriented fallback representation.
type (
	blockKernel func(a, b *dense.Dense) (*dense.Dense, error)
	rowKernel   func(a, b *rowmat.RowMatrix) (*rowmat.RowMatrix, error)
)

// elementwise runs one elementwise operation with grid-equality fast path
// and row-oriented fallback.
func (m *BlockMatrix) elementwise(name string, o *BlockMatrix, bk blockKernel, rk rowKernel, opts ...Option) (*BlockMatrix, error) {
	if o == nil {
		return nil, fmt.Errorf("%s: %w", name, ErrNilMatrix)
	}
	if err := m.dims(); err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	if err := o.dims(); err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	if m.rows != o.rows || m.cols != o.cols {
		return nil, fmt.Errorf("%s: %dx%d vs %dx%d: %w", name, m.rows, m.cols, o.rows, o.cols, ErrDimensionMismatch)
	}
	cfg := gatherOptions(opts...)

	// Fast path: identical grids join block-for-block.
	if m.gridRows == o.gridRows && m.gridCols == o.gridCols {
		part := cfg.partitioner
		if part == nil {
			part = NewGridPartitioner(m.gridRows, m.gridCols)
		}
		left, err := m.blocks.PartitionBy(part)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		right, err := o.blocks.PartitionBy(part)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		joined, err := dist.Join(left, right)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		blocks, err := dist.MapValues(joined, func(id BlockID, j dist.Joined[*dense.Dense, *dense.Dense]) (*dense.Dense, error) {
			return bk(j.Left, j.Right)
		})
		if err != nil {
			return nil, fmt.Errorf("%s: block op: %w", name, err)
		}

		return NewWithDims(blocks, m.rows, m.cols, m.gridRows, m.gridCols)
	}

	// Fallback: normalize both operands to rows, retry there, re-block.
	ra, err := m.ToRowMatrix()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	rb, err := o.ToRowMatrix()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	rc, err := rk(ra, rb)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}

	return FromRowMatrix(rc, m.gridRows, m.gridCols)
}

// Add returns m + o elementwise. Requires equal matrix dimensions.
func (m *BlockMatrix) Add(o *BlockMatrix, opts ...Option) (*BlockMatrix, error) {
	return m.elementwise("Add", o,
		func(a, b *dense.Dense) (*dense.Dense, error) { return a.Add(b) },
		func(a, b *rowmat.RowMatrix) (*rowmat.RowMatrix, error) { return a.Add(b) },
		opts...)
}

// Sub returns m - o elementwise.
func (m *BlockMatrix) Sub(o *BlockMatrix, opts ...Option) (*BlockMatrix, error) {
	return m.elementwise("Sub", o,
		func(a, b *dense.Dense) (*dense.Dense, error) { return a.Sub(b) },
		func(a, b *rowmat.RowMatrix) (*rowmat.RowMatrix, error) { return a.Sub(b) },
		opts...)
}

// ReverseSub returns o - m elementwise, keeping m's grid on the result.
func (m *BlockMatrix) ReverseSub(o *BlockMatrix, opts ...Option) (*BlockMatrix, error) {
	return m.elementwise("ReverseSub", o,
		func(a, b *dense.Dense) (*dense.Dense, error) { return b.Sub(a) },
		func(a, b *rowmat.RowMatrix) (*rowmat.RowMatrix, error) { return a.ReverseSub(b) },
		opts...)
}

// Hadamard returns the elementwise product m ∘ o. An explicit co-location
// partitioner may be supplied with WithPartitioner to avoid an unnecessary
// shuffle when the caller already controls block placement.
func (m *BlockMatrix) Hadamard(o *BlockMatrix, opts ...Option) (*BlockMatrix, error) {
	return m.elementwise("Hadamard", o,
		func(a, b *dense.Dense) (*dense.Dense, error) { return a.Hadamard(b) },
		func(a, b *rowmat.RowMatrix) (*rowmat.RowMatrix, error) { return a.Hadamard(b) },
		opts...)
}

// divErr maps the representation-local zero-divisor sentinels onto this
// package's ErrDivisionByZero so callers match one error kind no matter
// which execution path ran.
func divErr(err error) error {
	if errors.Is(err, dense.ErrDivisionByZero) || errors.Is(err, rowmat.ErrDivisionByZero) {
		return ErrDivisionByZero
	}

	return err
}

// ElemDiv returns m / o elementwise. A zero entry in o fails with
// ErrDivisionByZero.
func (m *BlockMatrix) ElemDiv(o *BlockMatrix, opts ...Option) (*BlockMatrix, error) {
	return m.elementwise("ElemDiv", o,
		func(a, b *dense.Dense) (*dense.Dense, error) {
			q, err := a.ElemDiv(b)
			if err != nil {
				return nil, divErr(err)
			}

			return q, nil
		},
		func(a, b *rowmat.RowMatrix) (*rowmat.RowMatrix, error) {
			q, err := a.ElemDiv(b)
			if err != nil {
				return nil, divErr(err)
			}

			return q, nil
		},
		opts...)
}

// ReverseDiv returns o / m elementwise, keeping m's grid on the result.
// A zero entry in m fails with ErrDivisionByZero.
func (m *BlockMatrix) ReverseDiv(o *BlockMatrix, opts ...Option) (*BlockMatrix, error) {
	return m.elementwise("ReverseDiv", o,
		func(a, b *dense.Dense) (*dense.Dense, error) {
			q, err := b.ElemDiv(a)
			if err != nil {
				return nil, divErr(err)
			}

			return q, nil
		},
		func(a, b *rowmat.RowMatrix) (*rowmat.RowMatrix, error) {
			q, err := a.ReverseDiv(b)
			if err != nil {
				return nil, divErr(err)
			}

			return q, nil
		},
		opts...)
}

// MulScalar returns s * m.
func (m *BlockMatrix) MulScalar(s float64) (*BlockMatrix, error) {
	if err := m.dims(); err != nil {
		return nil, fmt.Errorf("MulScalar: %w", err)
	}
	blocks, err := dist.MapValues(m.blocks, func(_ BlockID, b *dense.Dense) (*dense.Dense, error) {
		return b.Scale(s), nil
	})
	if err != nil {
		return nil, fmt.Errorf("MulScalar: %w", err)
	}

	return NewWithDims(blocks, m.rows, m.cols, m.gridRows, m.gridCols)
}

// DivScalar returns m / s. Returns ErrDivisionByZero when s == 0.
func (m *BlockMatrix) DivScalar(s float64) (*BlockMatrix, error) {
	if s == 0 {
		return nil, fmt.Errorf("DivScalar: %w", ErrDivisionByZero)
	}

	return m.MulScalar(1 / s)
}
