// SPDX-License-Identifier: MIT

package blockmat

import "fmt"

// BlockID addresses one rectangular block of a block-partitioned matrix.
//
// Row and Col are the block's grid coordinates. Seq is NOT a coordinate: it
// is a disambiguation tag used only inside the multiplication protocol,
// where it encodes the (row, col, contraction-slice) triple so that a plain
// equality join behaves as a three-way match. Identity (equality, map keys)
// is always the full triple. Every identifier exposed outside multiplication
// carries Seq == 0; see StripSeq.
type BlockID struct {
	Row int
	Col int
	Seq int
}

// StripSeq returns the identifier reduced to its stable (Row, Col)
// coordinate. Multiplication applies this before publishing result blocks.
func (id BlockID) StripSeq() BlockID {
	return BlockID{Row: id.Row, Col: id.Col}
}

// String renders the identifier for diagnostics.
func (id BlockID) String() string {
	if id.Seq == 0 {
		return fmt.Sprintf("(%d,%d)", id.Row, id.Col)
	}

	return fmt.Sprintf("(%d,%d;%d)", id.Row, id.Col, id.Seq)
}
