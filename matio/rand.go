// SPDX-License-Identifier: MIT

package matio

import (
	"fmt"
	"math/rand/v2"

	"github.com/katalvlaran/gridmat/blockmat"
	"github.com/katalvlaran/gridmat/dense"
	"github.com/katalvlaran/gridmat/dist"
)

// Random generates a rows×cols block matrix on a gridRows×gridCols grid
// with entries uniform in [0, 1).
//
// The generator is deterministic: each block is filled by its own PCG
// stream derived from the seed and the block coordinate, so regenerating
// any block (or the whole matrix) with the same seed reproduces it exactly,
// regardless of block iteration order.
func Random(runner dist.Runner, rows, cols, gridRows, gridCols int, seed uint64, numPartitions int) (*blockmat.BlockMatrix, error) {
	if rows <= 0 || cols <= 0 || gridRows < 1 || gridCols < 1 ||
		localRows(rows, gridRows, gridRows-1) < 1 || localRows(cols, gridCols, gridCols-1) < 1 {
		return nil, fmt.Errorf("Random: grid %dx%d for %dx%d: %w", gridRows, gridCols, rows, cols, blockmat.ErrBadGrid)
	}
	ids := make([]dist.Pair[blockmat.BlockID, struct{}], 0, gridRows*gridCols)
	for i := 0; i < gridRows; i++ {
		for j := 0; j < gridCols; j++ {
			ids = append(ids, dist.Pair[blockmat.BlockID, struct{}]{Key: blockmat.BlockID{Row: i, Col: j}})
		}
	}
	coords, err := dist.New(runner, ids, numPartitions)
	if err != nil {
		return nil, err
	}

	blocks, err := dist.MapValues(coords, func(id blockmat.BlockID, _ struct{}) (*dense.Dense, error) {
		r := localRows(rows, gridRows, id.Row)
		c := localRows(cols, gridCols, id.Col)
		rng := rand.New(rand.NewPCG(seed, uint64(id.Row)<<32|uint64(uint32(id.Col))))
		values := make([]float64, r*c)
		for t := range values {
			values[t] = rng.Float64()
		}

		return dense.FromFlat(r, c, values)
	})
	if err != nil {
		return nil, err
	}

	return blockmat.NewWithDims(blocks, rows, cols, gridRows, gridCols)
}

// localRows sizes block idx of total units split into grid blocks by the
// ceil rule.
func localRows(total, grid, idx int) int {
	base := (total + grid - 1) / grid
	if idx == grid-1 {
		return total - base*(grid-1)
	}

	return base
}
