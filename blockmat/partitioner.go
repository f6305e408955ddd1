// SPDX-License-Identifier: MIT

package blockmat

import (
	"fmt"

	"github.com/katalvlaran/gridmat/dist"
)

// GridPartitioner places a block at its flattened grid coordinate
// Row*GridCols + Col, ignoring the Seq tag. It co-locates equal (Row, Col)
// coordinates, which is exactly what elementwise joins need.
//
// GridPartitioner is a value type: two instances built from equal grid
// counts compare Equal and are interchangeable in join planning.
type GridPartitioner struct {
	gridRows, gridCols int
}

// NewGridPartitioner returns a partitioner over a gridRows×gridCols grid.
// Panics if either count is not positive (programmer error).
func NewGridPartitioner(gridRows, gridCols int) GridPartitioner {
	if gridRows <= 0 || gridCols <= 0 {
		panic(fmt.Sprintf("blockmat: NewGridPartitioner(%d,%d): counts must be > 0", gridRows, gridCols))
	}

	return GridPartitioner{gridRows: gridRows, gridCols: gridCols}
}

// NumPartitions returns gridRows*gridCols.
func (p GridPartitioner) NumPartitions() int { return p.gridRows * p.gridCols }

// Partition maps id to Row*gridCols + Col, reduced modulo the bucket count
// so out-of-grid coordinates still land in range.
func (p GridPartitioner) Partition(id BlockID) int {
	n := p.NumPartitions()
	i := (id.Row*p.gridCols + id.Col) % n
	if i < 0 {
		i += n
	}

	return i
}

// Equal reports value equality of the grid parameters.
func (p GridPartitioner) Equal(other dist.Partitioner[BlockID]) bool {
	o, ok := other.(GridPartitioner)

	return ok && o.gridRows == p.gridRows && o.gridCols == p.gridCols
}

// MulPartitioner places multiplication replicas by the full identifier
// triple, including the Seq tag. Seq encodes the contraction slice that must
// line up between the two operands being joined, so hashing the whole triple
// co-locates exactly the replica pairs that multiply together.
type MulPartitioner struct {
	parts int
}

// NewMulPartitioner returns a partitioner with the given bucket count.
// Panics if parts is not positive (programmer error).
func NewMulPartitioner(parts int) MulPartitioner {
	if parts <= 0 {
		panic(fmt.Sprintf("blockmat: NewMulPartitioner(%d): count must be > 0", parts))
	}

	return MulPartitioner{parts: parts}
}

// NumPartitions returns the bucket count.
func (p MulPartitioner) NumPartitions() int { return p.parts }

// Partition hashes (Row, Col, Seq) into [0, parts).
func (p MulPartitioner) Partition(id BlockID) int {
	h := uint64(id.Row)
	h = h*31 + uint64(id.Col)
	h = h*31 + uint64(id.Seq)
	// Fibonacci multiplier scrambles the low bits left regular by the grid.
	h *= 0x9E3779B97F4A7C15

	return int(h % uint64(p.parts))
}

// Equal reports value equality of the bucket count.
func (p MulPartitioner) Equal(other dist.Partitioner[BlockID]) bool {
	o, ok := other.(MulPartitioner)

	return ok && o.parts == p.parts
}
