// SPDX-License-Identifier: MIT

package dense

import (
	"fmt"
	"math"
)

// Dot returns the dot product of a and b.
// Returns ErrDimensionMismatch if the lengths differ.
func Dot(a, b []float64) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("Dot: len %d vs %d: %w", len(a), len(b), ErrDimensionMismatch)
	}
	var s float64
	for i, v := range a {
		s += v * b[i]
	}

	return s, nil
}

// Norm2 returns the Euclidean norm of v.
func Norm2(v []float64) float64 {
	var s float64
	for _, x := range v {
		s += x * x
	}

	return math.Sqrt(s)
}

// AXPY returns a + alpha*x as a fresh slice; neither operand is mutated.
// Returns ErrDimensionMismatch if the lengths differ.
func AXPY(alpha float64, x, a []float64) ([]float64, error) {
	if len(x) != len(a) {
		return nil, fmt.Errorf("AXPY: len %d vs %d: %w", len(x), len(a), ErrDimensionMismatch)
	}
	out := make([]float64, len(a))
	for i, v := range a {
		out[i] = v + alpha*x[i]
	}

	return out, nil
}

// ScaleVec returns alpha*v as a fresh slice.
func ScaleVec(alpha float64, v []float64) []float64 {
	out := make([]float64, len(v))
	for i, x := range v {
		out[i] = alpha * x
	}

	return out
}
