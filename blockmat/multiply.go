// SPDX-License-Identifier: MIT
// Package blockmat: the block multiplication protocol.
//
// With aligned grids A: m×k and B: k×n, every A block fans out across the n
// output column-blocks it contributes to, and every B block across the m
// output row-blocks. Each replica is tagged with a Seq value that encodes
// the (outputRow, outputCol, contractionSlice) triple, so a plain equality
// join on the full identifier matches exactly the replica pairs that
// multiply together. Joined pairs are multiplied locally and the partial
// products are summed per (Row, Col) after stripping the tag.
package blockmat

import (
	"fmt"

	"github.com/katalvlaran/gridmat/dense"
	"github.com/katalvlaran/gridmat/dist"
)

// Multiply returns the matrix product m · o.
//
// If the contraction grid counts disagree but one is an integer multiple of
// the other, the coarser operand is re-split via Reshape until they match;
// non-multiple counts fail with ErrUnsupportedGridShape.
func (m *BlockMatrix) Multiply(o *BlockMatrix, opts ...Option) (*BlockMatrix, error) {
	if o == nil {
		return nil, fmt.Errorf("Multiply: %w", ErrNilMatrix)
	}
	if err := m.dims(); err != nil {
		return nil, fmt.Errorf("Multiply: %w", err)
	}
	if err := o.dims(); err != nil {
		return nil, fmt.Errorf("Multiply: %w", err)
	}
	if m.cols != o.rows {
		return nil, fmt.Errorf("Multiply: %dx%d by %dx%d: %w", m.rows, m.cols, o.rows, o.cols, ErrDimensionMismatch)
	}

	// Align the contraction grids. One resplit reaches ratio 1 (the base
	// case), so the loop runs at most twice.
	a, b := m, o
	for a.gridCols != b.gridRows {
		ak, bk := a.gridCols, b.gridRows
		var err error
		switch {
		case bk > ak && bk%ak == 0:
			a, err = a.Reshape(a.gridRows, bk)
		case ak > bk && ak%bk == 0:
			b, err = b.Reshape(ak, b.gridCols)
		default:
			return nil, fmt.Errorf("Multiply: contraction grids %d and %d: %w", ak, bk, ErrUnsupportedGridShape)
		}
		if err != nil {
			return nil, fmt.Errorf("Multiply: aligning grids: %w", err)
		}
	}

	gm, gk, gn := a.gridRows, a.gridCols, b.gridCols
	cfg := gatherOptions(opts...)
	parts := cfg.partitions
	if parts == 0 {
		parts = gm * gn
	}

	// Fan A out across output column-blocks: block (i,j) → n replicas.
	aRep, err := dist.FlatMap(a.blocks, func(id BlockID, blk *dense.Dense) ([]dist.Pair[BlockID, *dense.Dense], error) {
		out := make([]dist.Pair[BlockID, *dense.Dense], gn)
		for t := 0; t < gn; t++ {
			out[t] = dist.Pair[BlockID, *dense.Dense]{
				Key:   BlockID{Row: id.Row, Col: t, Seq: id.Row*gn*gk + t*gk + id.Col},
				Value: blk,
			}
		}

		return out, nil
	})
	if err != nil {
		return nil, err
	}
	// Fan B out across output row-blocks: block (j,l) → m replicas.
	bRep, err := dist.FlatMap(b.blocks, func(id BlockID, blk *dense.Dense) ([]dist.Pair[BlockID, *dense.Dense], error) {
		out := make([]dist.Pair[BlockID, *dense.Dense], gm)
		for t := 0; t < gm; t++ {
			out[t] = dist.Pair[BlockID, *dense.Dense]{
				Key:   BlockID{Row: t, Col: id.Col, Seq: t*gn*gk + id.Col*gk + id.Row},
				Value: blk,
			}
		}

		return out, nil
	})
	if err != nil {
		return nil, err
	}

	// Place both replica streams by the full-triple partitioner and join.
	p := NewMulPartitioner(parts)
	if aRep, err = aRep.PartitionBy(p); err != nil {
		return nil, err
	}
	if bRep, err = bRep.PartitionBy(p); err != nil {
		return nil, err
	}
	joined, err := dist.Join(aRep, bRep)
	if err != nil {
		return nil, err
	}

	// Local multiply, then strip the tag and sum the contraction slices.
	products, err := dist.Map(joined, func(id BlockID, j dist.Joined[*dense.Dense, *dense.Dense]) (BlockID, *dense.Dense, error) {
		prod, err := j.Left.Mul(j.Right)
		if err != nil {
			return BlockID{}, nil, fmt.Errorf("Multiply: block %s: %w", id, err)
		}

		return id.StripSeq(), prod, nil
	})
	if err != nil {
		return nil, err
	}
	blocks := products
	if gk > 1 {
		if blocks, err = dist.ReduceByKey(products, addBlocks); err != nil {
			return nil, err
		}
	}

	return NewWithDims(blocks, a.rows, b.cols, gm, gn)
}

// MulLocal right-multiplies every block by the corresponding row-slice of a
// shared, read-only, broadcast small matrix. Partial products are summed by
// a reduction keyed on row-block whenever the grid has more than one column
// of blocks. The result always has a single column of blocks.
func (m *BlockMatrix) MulLocal(small *dense.Dense) (*BlockMatrix, error) {
	if small == nil {
		return nil, fmt.Errorf("MulLocal: %w", ErrNilMatrix)
	}
	if err := m.dims(); err != nil {
		return nil, fmt.Errorf("MulLocal: %w", err)
	}
	if m.cols != small.Rows() {
		return nil, fmt.Errorf("MulLocal: %dx%d by %dx%d: %w", m.rows, m.cols, small.Rows(), small.Cols(), ErrDimensionMismatch)
	}
	cols, gridCols := m.cols, m.gridCols
	shared := dist.NewBroadcast(small)

	partials, err := dist.Map(m.blocks, func(id BlockID, blk *dense.Dense) (BlockID, *dense.Dense, error) {
		sl, err := shared.Value().Slice(blockOffset(cols, gridCols, id.Col), 0, blk.Cols(), small.Cols())
		if err != nil {
			return BlockID{}, nil, fmt.Errorf("MulLocal: block %s: %w", id, err)
		}
		prod, err := blk.Mul(sl)
		if err != nil {
			return BlockID{}, nil, fmt.Errorf("MulLocal: block %s: %w", id, err)
		}

		return BlockID{Row: id.Row}, prod, nil
	})
	if err != nil {
		return nil, err
	}
	blocks := partials
	if gridCols > 1 {
		if blocks, err = dist.ReduceByKey(partials, addBlocks); err != nil {
			return nil, err
		}
	}

	return NewWithDims(blocks, m.rows, small.Cols(), m.gridRows, 1)
}

// MulVector multiplies m by a vector stored as shards keyed by column-grid
// index: shard j must match the width of block column j. The result is the
// product vector, sharded by row-grid index. Requires exactly one shard per
// block column.
func (m *BlockMatrix) MulVector(shards *dist.Collection[int, []float64]) (*dist.Collection[int, []float64], error) {
	if shards == nil {
		return nil, fmt.Errorf("MulVector: %w", ErrNilMatrix)
	}
	if err := m.dims(); err != nil {
		return nil, fmt.Errorf("MulVector: %w", err)
	}
	if got := shards.Count(); got != m.gridCols {
		return nil, fmt.Errorf("MulVector: %d shards for %d block columns: %w", got, m.gridCols, ErrDimensionMismatch)
	}

	// Key blocks by column-grid index to meet their shard in the join.
	type rowBlock struct {
		row int
		blk *dense.Dense
	}
	byCol, err := dist.Map(m.blocks, func(id BlockID, blk *dense.Dense) (int, rowBlock, error) {
		return id.Col, rowBlock{row: id.Row, blk: blk}, nil
	})
	if err != nil {
		return nil, err
	}
	joined, err := dist.Join(byCol, shards)
	if err != nil {
		return nil, err
	}
	partials, err := dist.Map(joined, func(col int, j dist.Joined[rowBlock, []float64]) (int, []float64, error) {
		y, err := j.Left.blk.MulVec(j.Right)
		if err != nil {
			return 0, nil, fmt.Errorf("MulVector: block column %d: %w", col, err)
		}

		return j.Left.row, y, nil
	})
	if err != nil {
		return nil, err
	}

	return dist.ReduceByKey(partials, func(x, y []float64) ([]float64, error) {
		return dense.AXPY(1, y, x)
	})
}
