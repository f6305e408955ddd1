// SPDX-License-Identifier: MIT

package rowmat

import "errors"

// Sentinel errors; match with errors.Is.
var (
	// ErrNilMatrix indicates a nil *RowMatrix receiver or argument.
	ErrNilMatrix = errors.New("rowmat: nil matrix")

	// ErrBadShape is returned when a matrix has no rows or a row vector's
	// length disagrees with the declared column count.
	ErrBadShape = errors.New("rowmat: invalid shape")

	// ErrRowGap is returned when the row index set is not exactly {0..n-1}.
	ErrRowGap = errors.New("rowmat: row index set has gaps")

	// ErrDimensionMismatch indicates incompatible operand dimensions.
	ErrDimensionMismatch = errors.New("rowmat: dimension mismatch")

	// ErrDivisionByZero indicates an elementwise division hit a zero divisor.
	ErrDivisionByZero = errors.New("rowmat: division by zero")
)
