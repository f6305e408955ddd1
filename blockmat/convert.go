// SPDX-License-Identifier: MIT
// Package blockmat: conversions to and from the row-oriented representation.
package blockmat

import (
	"fmt"

	"github.com/katalvlaran/gridmat/dense"
	"github.com/katalvlaran/gridmat/dist"
	"github.com/katalvlaran/gridmat/rowmat"
)

// rowFragment is the part of one global row contributed by a single block.
type rowFragment struct {
	off  int // starting global column
	vals []float64
}

// ToRowMatrix converts m into the row-oriented representation: every block
// emits its local rows as fragments keyed by global row index, and the
// fragments of each row are stitched together by column offset.
func (m *BlockMatrix) ToRowMatrix() (*rowmat.RowMatrix, error) {
	if err := m.dims(); err != nil {
		return nil, fmt.Errorf("ToRowMatrix: %w", err)
	}
	rows, cols, gridRows, gridCols := m.rows, m.cols, m.gridRows, m.gridCols

	frags, err := dist.FlatMap(m.blocks, func(id BlockID, blk *dense.Dense) ([]dist.Pair[int, rowFragment], error) {
		rowStart := blockOffset(rows, gridRows, id.Row)
		colStart := blockOffset(cols, gridCols, id.Col)
		out := make([]dist.Pair[int, rowFragment], blk.Rows())
		for r := 0; r < blk.Rows(); r++ {
			vals, err := blk.Row(r)
			if err != nil {
				return nil, err
			}
			out[r] = dist.Pair[int, rowFragment]{
				Key:   rowStart + r,
				Value: rowFragment{off: colStart, vals: vals},
			}
		}

		return out, nil
	})
	if err != nil {
		return nil, err
	}
	grouped, err := dist.GroupByKey(frags)
	if err != nil {
		return nil, err
	}
	assembled, err := dist.MapValues(grouped, func(r int, fs []rowFragment) ([]float64, error) {
		row := make([]float64, cols)
		for _, f := range fs {
			if f.off+len(f.vals) > cols {
				return nil, fmt.Errorf("ToRowMatrix: row %d fragment at %d overruns %d cols: %w", r, f.off, cols, ErrBadShape)
			}
			copy(row[f.off:], f.vals)
		}

		return row, nil
	})
	if err != nil {
		return nil, err
	}

	return rowmat.FromCollection(assembled, rows, cols)
}

// FromRowMatrix re-blocks a row-oriented matrix into a gridRows×gridCols
// block grid. Each row is cut at the column-split boundaries and the cuts
// are regrouped into blocks.
func FromRowMatrix(rm *rowmat.RowMatrix, gridRows, gridCols int) (*BlockMatrix, error) {
	if rm == nil {
		return nil, fmt.Errorf("FromRowMatrix: %w", ErrNilMatrix)
	}
	rows, cols := rm.NumRows(), rm.Cols()
	if !validGrid(rows, gridRows) || !validGrid(cols, gridCols) {
		return nil, fmt.Errorf("FromRowMatrix: grid %dx%d for %dx%d: %w", gridRows, gridCols, rows, cols, ErrBadGrid)
	}
	rowBase := ceilDiv(rows, gridRows)
	colBase := ceilDiv(cols, gridCols)

	pieces, err := dist.FlatMap(rm.Rows(), func(r int, vals []float64) ([]dist.Pair[BlockID, piece], error) {
		if len(vals) != cols {
			return nil, fmt.Errorf("FromRowMatrix: row %d has %d entries, want %d: %w", r, len(vals), cols, ErrBadShape)
		}
		bi := r / rowBase
		out := make([]dist.Pair[BlockID, piece], gridCols)
		for bj := 0; bj < gridCols; bj++ {
			off := bj * colBase
			width := blockDim(cols, gridCols, bj)
			sub, err := dense.FromFlat(1, width, vals[off:off+width])
			if err != nil {
				return nil, err
			}
			out[bj] = dist.Pair[BlockID, piece]{
				Key:   BlockID{Row: bi, Col: bj},
				Value: piece{rowOff: r - bi*rowBase, colOff: 0, block: sub},
			}
		}

		return out, nil
	})
	if err != nil {
		return nil, err
	}

	return assembleBlocks(pieces, rows, cols, gridRows, gridCols)
}
