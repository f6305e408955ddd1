// SPDX-License-Identifier: MIT

package blockmat

import (
	"fmt"
	"sync"

	"github.com/katalvlaran/gridmat/dense"
	"github.com/katalvlaran/gridmat/dist"
)

// BlockMatrix is an immutable block-partitioned matrix: a distributed
// mapping from BlockID to local dense block, tiling the full
// [0,rows)×[0,cols) coordinate space exactly once.
//
// Global dimensions may be left undetermined at construction and are then
// derived lazily from the blocks, once, on first use (sync.Once keeps the
// first concurrent access race-free). Construct with NewWithDims when the
// dimensions are already known.
type BlockMatrix struct {
	blocks *dist.Collection[BlockID, *dense.Dense]

	dimOnce  sync.Once
	dimErr   error
	rows     int
	cols     int
	gridRows int
	gridCols int
}

// New wraps blocks into a BlockMatrix with lazily derived dimensions.
func New(blocks *dist.Collection[BlockID, *dense.Dense]) (*BlockMatrix, error) {
	if blocks == nil {
		return nil, ErrNilMatrix
	}

	return &BlockMatrix{blocks: blocks}, nil
}

// NewWithDims wraps blocks into a BlockMatrix with eagerly set dimensions,
// skipping the lazy scan entirely.
func NewWithDims(blocks *dist.Collection[BlockID, *dense.Dense], rows, cols, gridRows, gridCols int) (*BlockMatrix, error) {
	if blocks == nil {
		return nil, ErrNilMatrix
	}
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("NewWithDims(%d,%d): %w", rows, cols, ErrBadShape)
	}
	if !validGrid(rows, gridRows) || !validGrid(cols, gridCols) {
		return nil, fmt.Errorf("NewWithDims: grid %dx%d for %dx%d: %w", gridRows, gridCols, rows, cols, ErrBadGrid)
	}
	m := &BlockMatrix{blocks: blocks, rows: rows, cols: cols, gridRows: gridRows, gridCols: gridCols}
	m.dimOnce.Do(func() {}) // dimensions are final; disarm the lazy scan

	return m, nil
}

// FromDense splits d into a gridRows×gridCols block grid following the ceil
// rule and distributes the blocks over numPartitions partitions.
func FromDense(runner dist.Runner, d *dense.Dense, gridRows, gridCols, numPartitions int) (*BlockMatrix, error) {
	if d == nil {
		return nil, ErrNilMatrix
	}
	rows, cols := d.Rows(), d.Cols()
	if !validGrid(rows, gridRows) || !validGrid(cols, gridCols) {
		return nil, fmt.Errorf("FromDense: grid %dx%d for %dx%d: %w", gridRows, gridCols, rows, cols, ErrBadGrid)
	}
	pairs := make([]dist.Pair[BlockID, *dense.Dense], 0, gridRows*gridCols)
	for i := 0; i < gridRows; i++ {
		for j := 0; j < gridCols; j++ {
			blk, err := d.Slice(
				blockOffset(rows, gridRows, i), blockOffset(cols, gridCols, j),
				blockDim(rows, gridRows, i), blockDim(cols, gridCols, j),
			)
			if err != nil {
				return nil, fmt.Errorf("FromDense: block (%d,%d): %w", i, j, err)
			}
			pairs = append(pairs, dist.Pair[BlockID, *dense.Dense]{Key: BlockID{Row: i, Col: j}, Value: blk})
		}
	}
	blocks, err := dist.New(runner, pairs, numPartitions)
	if err != nil {
		return nil, err
	}

	return NewWithDims(blocks, rows, cols, gridRows, gridCols)
}

// Blocks returns the underlying block collection.
func (m *BlockMatrix) Blocks() *dist.Collection[BlockID, *dense.Dense] { return m.blocks }

// runner returns the shared execution backend.
func (m *BlockMatrix) runner() dist.Runner { return m.blocks.Runner() }

// dims resolves the global dimensions, scanning the blocks at most once:
// totalRows and the row-grid count come from the blocks of column 0,
// totalCols and the column-grid count from the blocks of row 0.
func (m *BlockMatrix) dims() error {
	m.dimOnce.Do(func() {
		for _, kv := range m.blocks.Collect() {
			if kv.Key.Seq != 0 {
				m.dimErr = fmt.Errorf("dims: tagged block %s: %w", kv.Key, ErrBadTiling)
				return
			}
			if kv.Key.Col == 0 {
				m.gridRows++
				m.rows += kv.Value.Rows()
			}
			if kv.Key.Row == 0 {
				m.gridCols++
				m.cols += kv.Value.Cols()
			}
		}
		if m.gridRows == 0 || m.gridCols == 0 {
			m.dimErr = fmt.Errorf("dims: no blocks: %w", ErrBadShape)
		}
	})

	return m.dimErr
}

// Rows returns the total number of matrix rows (0 if the matrix is invalid).
func (m *BlockMatrix) Rows() int { _ = m.dims(); return m.rows }

// Cols returns the total number of matrix columns.
func (m *BlockMatrix) Cols() int { _ = m.dims(); return m.cols }

// GridRows returns the number of block rows in the grid.
func (m *BlockMatrix) GridRows() int { _ = m.dims(); return m.gridRows }

// GridCols returns the number of block columns in the grid.
func (m *BlockMatrix) GridCols() int { _ = m.dims(); return m.gridCols }

// Validate checks the tiling invariant: exactly gridRows*gridCols distinct
// untagged identifiers, each block sized by the ceil rule for its position.
func (m *BlockMatrix) Validate() error {
	if err := m.dims(); err != nil {
		return err
	}
	seen := make(map[BlockID]bool, m.gridRows*m.gridCols)
	count := 0
	for _, kv := range m.blocks.Collect() {
		id, blk := kv.Key, kv.Value
		count++
		if id.Seq != 0 || id.Row < 0 || id.Row >= m.gridRows || id.Col < 0 || id.Col >= m.gridCols {
			return fmt.Errorf("Validate: block %s outside %dx%d grid: %w", id, m.gridRows, m.gridCols, ErrBadTiling)
		}
		if seen[id] {
			return fmt.Errorf("Validate: duplicate block %s: %w", id, ErrBadTiling)
		}
		seen[id] = true
		wantR := blockDim(m.rows, m.gridRows, id.Row)
		wantC := blockDim(m.cols, m.gridCols, id.Col)
		if blk.Rows() != wantR || blk.Cols() != wantC {
			return fmt.Errorf("Validate: block %s is %dx%d, want %dx%d: %w",
				id, blk.Rows(), blk.Cols(), wantR, wantC, ErrBadTiling)
		}
	}
	if count != m.gridRows*m.gridCols {
		return fmt.Errorf("Validate: %d blocks for a %dx%d grid: %w", count, m.gridRows, m.gridCols, ErrBadTiling)
	}

	return nil
}

// ToDense assembles the full matrix into local memory.
// Intended for results small enough to materialize (tests, persistence).
func (m *BlockMatrix) ToDense() (*dense.Dense, error) {
	if err := m.dims(); err != nil {
		return nil, err
	}
	out, err := dense.New(m.rows, m.cols)
	if err != nil {
		return nil, err
	}
	for _, kv := range m.blocks.Collect() {
		off := struct{ r, c int }{
			blockOffset(m.rows, m.gridRows, kv.Key.Row),
			blockOffset(m.cols, m.gridCols, kv.Key.Col),
		}
		if err = out.CopyInto(off.r, off.c, kv.Value); err != nil {
			return nil, fmt.Errorf("ToDense: block %s: %w", kv.Key, err)
		}
	}

	return out, nil
}

// ceilDiv returns ceil(a/b) for positive a, b.
func ceilDiv(a, b int) int { return (a + b - 1) / b }

// blockDim returns the extent of block idx when total units are split into
// grid blocks by the ceil rule: ceil(total/grid) everywhere except the last
// block, which takes the remainder.
func blockDim(total, grid, idx int) int {
	base := ceilDiv(total, grid)
	if idx == grid-1 {
		return total - base*(grid-1)
	}

	return base
}

// blockOffset returns the starting global coordinate of block idx.
func blockOffset(total, grid, idx int) int {
	return idx * ceilDiv(total, grid)
}

// validGrid reports whether splitting total units into grid blocks by the
// ceil rule leaves every block non-empty.
func validGrid(total, grid int) bool {
	return grid >= 1 && grid <= total && blockDim(total, grid, grid-1) >= 1
}

// addBlocks is the reduction kernel used wherever partial product blocks
// sharing a coordinate are summed.
func addBlocks(a, b *dense.Dense) (*dense.Dense, error) {
	return a.Add(b)
}
