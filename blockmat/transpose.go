// SPDX-License-Identifier: MIT

package blockmat

import (
	"fmt"

	"github.com/katalvlaran/gridmat/dense"
	"github.com/katalvlaran/gridmat/dist"
)

// Transpose returns mᵀ: every block is rekeyed from (row, col) to
// (col, row) and locally transposed; the grid swaps with the dimensions.
// Transpose(Transpose(m)) reproduces m's values bit for bit.
func (m *BlockMatrix) Transpose() (*BlockMatrix, error) {
	if err := m.dims(); err != nil {
		return nil, fmt.Errorf("Transpose: %w", err)
	}
	blocks, err := dist.Map(m.blocks, func(id BlockID, blk *dense.Dense) (BlockID, *dense.Dense, error) {
		return BlockID{Row: id.Col, Col: id.Row}, blk.Transpose(), nil
	})
	if err != nil {
		return nil, err
	}

	return NewWithDims(blocks, m.cols, m.rows, m.gridCols, m.gridRows)
}
