// SPDX-License-Identifier: MIT
// Package blockmat: grid reshaping.
//
// Reshape re-derives a different block decomposition from an existing one
// without recomputing values: each old block is cut along the interval
// intersections of the old and new axis splits, and the slices are regrouped
// into freshly allocated blocks of the new grid. Multiplication alignment
// and the repeat utilities build on this primitive.
package blockmat

import (
	"fmt"

	"github.com/katalvlaran/gridmat/dense"
	"github.com/katalvlaran/gridmat/dist"
)

// piece is one slice of an old block, addressed by its offset inside the
// new block it lands in.
type piece struct {
	rowOff, colOff int
	block          *dense.Dense
}

// overlap describes the intersection of an old block's extent with one new
// block along a single axis.
type overlap struct {
	newIdx   int // index of the new block on this axis
	oldStart int // start of the intersection, local to the old block
	newStart int // start of the intersection, local to the new block
	length   int
}

// axisOverlaps computes the intersections of the old extent
// [oldStart, oldStart+oldLen) with the new axis split of total units into
// newGrid blocks. Splits are sorted and non-overlapping, so the overlapping
// new indices form the contiguous range [oldStart/base, (end-1)/base].
func axisOverlaps(total, newGrid, oldStart, oldLen int) []overlap {
	base := ceilDiv(total, newGrid)
	end := oldStart + oldLen
	first := oldStart / base
	last := (end - 1) / base
	out := make([]overlap, 0, last-first+1)
	for ni := first; ni <= last; ni++ {
		ns := ni * base
		ne := ns + blockDim(total, newGrid, ni)
		s := max(oldStart, ns)
		e := min(end, ne)
		if e <= s {
			continue
		}
		out = append(out, overlap{newIdx: ni, oldStart: s - oldStart, newStart: s - ns, length: e - s})
	}

	return out
}

// assembleBlocks groups pieces by target identifier and copies each group
// into a freshly allocated block of the target grid's size.
func assembleBlocks(pieces *dist.Collection[BlockID, piece], rows, cols, gridRows, gridCols int) (*BlockMatrix, error) {
	placed, err := pieces.PartitionBy(NewGridPartitioner(gridRows, gridCols))
	if err != nil {
		return nil, err
	}
	grouped, err := dist.GroupByKey(placed)
	if err != nil {
		return nil, err
	}
	blocks, err := dist.MapValues(grouped, func(id BlockID, ps []piece) (*dense.Dense, error) {
		out, err := dense.New(blockDim(rows, gridRows, id.Row), blockDim(cols, gridCols, id.Col))
		if err != nil {
			return nil, err
		}
		for _, p := range ps {
			if err = out.CopyInto(p.rowOff, p.colOff, p.block); err != nil {
				return nil, fmt.Errorf("assemble block %s: %w", id, err)
			}
		}

		return out, nil
	})
	if err != nil {
		return nil, err
	}

	return NewWithDims(blocks, rows, cols, gridRows, gridCols)
}

// Reshape produces an equivalent matrix with a gridRows×gridCols block grid.
// Values are untouched; only the decomposition changes.
// Returns ErrBadGrid when the requested grid would contain an empty block.
func (m *BlockMatrix) Reshape(gridRows, gridCols int) (*BlockMatrix, error) {
	if err := m.dims(); err != nil {
		return nil, fmt.Errorf("Reshape: %w", err)
	}
	if !validGrid(m.rows, gridRows) || !validGrid(m.cols, gridCols) {
		return nil, fmt.Errorf("Reshape: grid %dx%d for %dx%d: %w", gridRows, gridCols, m.rows, m.cols, ErrBadGrid)
	}
	if gridRows == m.gridRows && gridCols == m.gridCols {
		return m, nil // identical decomposition; values are immutable
	}
	rows, cols := m.rows, m.cols
	oldGR, oldGC := m.gridRows, m.gridCols

	pieces, err := dist.FlatMap(m.blocks, func(id BlockID, blk *dense.Dense) ([]dist.Pair[BlockID, piece], error) {
		rowStart := blockOffset(rows, oldGR, id.Row)
		colStart := blockOffset(cols, oldGC, id.Col)
		rOv := axisOverlaps(rows, gridRows, rowStart, blk.Rows())
		cOv := axisOverlaps(cols, gridCols, colStart, blk.Cols())
		out := make([]dist.Pair[BlockID, piece], 0, len(rOv)*len(cOv))
		for _, ro := range rOv {
			for _, co := range cOv {
				sub, err := blk.Slice(ro.oldStart, co.oldStart, ro.length, co.length)
				if err != nil {
					return nil, fmt.Errorf("Reshape: slicing block %s: %w", id, err)
				}
				out = append(out, dist.Pair[BlockID, piece]{
					Key:   BlockID{Row: ro.newIdx, Col: co.newIdx},
					Value: piece{rowOff: ro.newStart, colOff: co.newStart, block: sub},
				})
			}
		}

		return out, nil
	})
	if err != nil {
		return nil, err
	}

	return assembleBlocks(pieces, rows, cols, gridRows, gridCols)
}
