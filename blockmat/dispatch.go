// SPDX-License-Identifier: MIT

package blockmat

import (
	"fmt"

	"github.com/katalvlaran/gridmat/dense"
)

// Mul is the polymorphic multiplication entry point. It dispatches on the
// operand's representation:
//
//   - *BlockMatrix: the full block multiplication protocol.
//   - float64 / int: per-block scalar scaling.
//   - *dense.Dense: broadcast local multiply (MulLocal).
//
// Any other combination fails with ErrUnsupportedOperand; there is no
// best-effort coercion.
func Mul(a *BlockMatrix, operand any, opts ...Option) (*BlockMatrix, error) {
	if a == nil {
		return nil, fmt.Errorf("Mul: %w", ErrNilMatrix)
	}
	switch b := operand.(type) {
	case *BlockMatrix:
		return a.Multiply(b, opts...)
	case float64:
		return a.MulScalar(b)
	case int:
		return a.MulScalar(float64(b))
	case *dense.Dense:
		return a.MulLocal(b)
	default:
		return nil, fmt.Errorf("Mul: %T: %w", operand, ErrUnsupportedOperand)
	}
}
