// SPDX-License-Identifier: MIT
// Package blockmat: sentinel error set.
// All operations return these sentinels and callers match them with
// errors.Is. Context is added via fmt.Errorf("op: %w", ErrX) at call sites.
package blockmat

import "errors"

var (
	// ErrNilMatrix indicates a nil *BlockMatrix receiver or argument.
	ErrNilMatrix = errors.New("blockmat: nil matrix")

	// ErrBadShape is returned when a matrix has no blocks or a block carries
	// an impossible shape for its grid position.
	ErrBadShape = errors.New("blockmat: invalid shape")

	// ErrBadGrid is returned when a requested block grid is invalid
	// (counts < 1 or exceeding the matrix dimensions).
	ErrBadGrid = errors.New("blockmat: invalid block grid")

	// ErrDimensionMismatch indicates incompatible operand dimensions:
	// elementwise ops on different shapes, or multiplication where the
	// contraction dimensions disagree.
	ErrDimensionMismatch = errors.New("blockmat: dimension mismatch")

	// ErrUnsupportedGridShape is returned during multiplication alignment
	// when neither operand's contraction grid count divides the other's.
	// There is deliberately no further fallback.
	ErrUnsupportedGridShape = errors.New("blockmat: unsupported block grid shapes")

	// ErrUnsupportedOperand is returned by the polymorphic entry points when
	// invoked on a combination of representations they do not implement.
	ErrUnsupportedOperand = errors.New("blockmat: unsupported operand combination")

	// ErrBadTiling is returned by Validate when the blocks do not tile the
	// matrix exactly (missing, duplicated or mis-sized blocks, or a block
	// identifier still carrying a multiplication tag).
	ErrBadTiling = errors.New("blockmat: blocks do not tile the matrix")

	// ErrDivisionByZero indicates a scalar division by zero.
	ErrDivisionByZero = errors.New("blockmat: division by zero")
)
