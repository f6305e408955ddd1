// SPDX-License-Identifier: MIT
// Package blockmat: tiling utilities built on Reshape.
//
// Repeating first collapses the repeated axis to a single block so that
// every emitted copy has the same extent and the ceil-rule sizing of the
// result grid holds without a remainder block in the interior.
package blockmat

import (
	"fmt"

	"github.com/katalvlaran/gridmat/dense"
	"github.com/katalvlaran/gridmat/dist"
)

// RepeatCols tiles m horizontally times times: the result is
// rows × (cols*times) with one block column per copy.
func (m *BlockMatrix) RepeatCols(times int) (*BlockMatrix, error) {
	if times < 1 {
		return nil, fmt.Errorf("RepeatCols(%d): %w", times, ErrBadShape)
	}
	if err := m.dims(); err != nil {
		return nil, fmt.Errorf("RepeatCols: %w", err)
	}
	base, err := m.Reshape(m.gridRows, 1)
	if err != nil {
		return nil, fmt.Errorf("RepeatCols: %w", err)
	}
	blocks, err := dist.FlatMap(base.blocks, func(id BlockID, blk *dense.Dense) ([]dist.Pair[BlockID, *dense.Dense], error) {
		out := make([]dist.Pair[BlockID, *dense.Dense], times)
		for t := 0; t < times; t++ {
			out[t] = dist.Pair[BlockID, *dense.Dense]{Key: BlockID{Row: id.Row, Col: t}, Value: blk}
		}

		return out, nil
	})
	if err != nil {
		return nil, err
	}

	return NewWithDims(blocks, m.rows, m.cols*times, m.gridRows, times)
}

// RepeatRows tiles m vertically times times: the result is
// (rows*times) × cols with one block row per copy.
func (m *BlockMatrix) RepeatRows(times int) (*BlockMatrix, error) {
	if times < 1 {
		return nil, fmt.Errorf("RepeatRows(%d): %w", times, ErrBadShape)
	}
	if err := m.dims(); err != nil {
		return nil, fmt.Errorf("RepeatRows: %w", err)
	}
	base, err := m.Reshape(1, m.gridCols)
	if err != nil {
		return nil, fmt.Errorf("RepeatRows: %w", err)
	}
	blocks, err := dist.FlatMap(base.blocks, func(id BlockID, blk *dense.Dense) ([]dist.Pair[BlockID, *dense.Dense], error) {
		out := make([]dist.Pair[BlockID, *dense.Dense], times)
		for t := 0; t < times; t++ {
			out[t] = dist.Pair[BlockID, *dense.Dense]{Key: BlockID{Row: t, Col: id.Col}, Value: blk}
		}

		return out, nil
	})
	if err != nil {
		return nil, err
	}

	return NewWithDims(blocks, m.rows*times, m.cols, times, m.gridCols)
}
