// SPDX-License-Identifier: MIT
// Package dense: sentinel error set.
// All operations return these sentinels (optionally wrapped with context via
// fmt.Errorf("op: %w", ErrX)); callers match with errors.Is.
package dense

import "errors"

var (
	// ErrBadShape is returned when a requested shape is invalid (rows<=0 or cols<=0),
	// or when a flat value slice does not match rows*cols.
	ErrBadShape = errors.New("dense: invalid shape")

	// ErrOutOfRange indicates a row or column index outside valid bounds.
	ErrOutOfRange = errors.New("dense: index out of range")

	// ErrDimensionMismatch indicates incompatible operand dimensions,
	// e.g. Add with different shapes, or Mul where a.Cols != b.Rows.
	ErrDimensionMismatch = errors.New("dense: dimension mismatch")

	// ErrNilMatrix indicates a nil *Dense receiver or argument.
	ErrNilMatrix = errors.New("dense: nil matrix")

	// ErrDivisionByZero indicates an elementwise division hit a zero divisor.
	ErrDivisionByZero = errors.New("dense: division by zero")
)
