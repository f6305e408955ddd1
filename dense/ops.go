// SPDX-License-Identifier: MIT
// Package dense: elementwise and multiplicative kernels.
//
// All loops run in fixed row-major order over the flat backing slice, so
// results are deterministic and cache-friendly. Every operation allocates a
// fresh output; operands are never mutated.
package dense

import "fmt"

// binary applies fn entrywise over two equally-shaped matrices.
func (m *Dense) binary(name string, o *Dense, fn func(a, b float64) float64) (*Dense, error) {
	if o == nil {
		return nil, fmt.Errorf("%s: %w", name, ErrNilMatrix)
	}
	if m.r != o.r || m.c != o.c {
		return nil, fmt.Errorf("%s: %dx%d vs %dx%d: %w", name, m.r, m.c, o.r, o.c, ErrDimensionMismatch)
	}
	out := &Dense{r: m.r, c: m.c, data: make([]float64, len(m.data))}
	for i := range m.data {
		out.data[i] = fn(m.data[i], o.data[i])
	}

	return out, nil
}

// Add returns m + o. Requires identical shapes.
func (m *Dense) Add(o *Dense) (*Dense, error) {
	return m.binary("Add", o, func(a, b float64) float64 { return a + b })
}

// Sub returns m - o. Requires identical shapes.
func (m *Dense) Sub(o *Dense) (*Dense, error) {
	return m.binary("Sub", o, func(a, b float64) float64 { return a - b })
}

// Hadamard returns the entrywise product m ∘ o. Requires identical shapes.
func (m *Dense) Hadamard(o *Dense) (*Dense, error) {
	return m.binary("Hadamard", o, func(a, b float64) float64 { return a * b })
}

// ElemDiv returns the entrywise quotient m / o. Requires identical shapes.
// Returns ErrDivisionByZero if any divisor entry is exactly zero.
func (m *Dense) ElemDiv(o *Dense) (*Dense, error) {
	if o != nil {
		for _, v := range o.data {
			if v == 0 {
				return nil, fmt.Errorf("ElemDiv: %w", ErrDivisionByZero)
			}
		}
	}

	return m.binary("ElemDiv", o, func(a, b float64) float64 { return a / b })
}

// Scale returns s * m.
func (m *Dense) Scale(s float64) *Dense {
	out := &Dense{r: m.r, c: m.c, data: make([]float64, len(m.data))}
	for i, v := range m.data {
		out.data[i] = s * v
	}

	return out
}

// Transpose returns mᵀ. Complexity: O(r*c).
func (m *Dense) Transpose() *Dense {
	out := &Dense{r: m.c, c: m.r, data: make([]float64, len(m.data))}
	for i := 0; i < m.r; i++ {
		for j := 0; j < m.c; j++ {
			out.data[j*m.r+i] = m.data[i*m.c+j]
		}
	}

	return out
}

// Mul returns the matrix product m · o.
// Requires m.Cols() == o.Rows(); returns ErrDimensionMismatch otherwise.
//
// The k-last loop order keeps both the output row and the o row contiguous
// in memory, which is the cache-friendly ordering for row-major storage.
// Complexity: O(r*k*c).
func (m *Dense) Mul(o *Dense) (*Dense, error) {
	if o == nil {
		return nil, fmt.Errorf("Mul: %w", ErrNilMatrix)
	}
	if m.c != o.r {
		return nil, fmt.Errorf("Mul: %dx%d by %dx%d: %w", m.r, m.c, o.r, o.c, ErrDimensionMismatch)
	}
	out := &Dense{r: m.r, c: o.c, data: make([]float64, m.r*o.c)}
	for i := 0; i < m.r; i++ {
		dst := out.data[i*o.c : (i+1)*o.c]
		for k := 0; k < m.c; k++ {
			a := m.data[i*m.c+k]
			if a == 0 {
				continue
			}
			src := o.data[k*o.c : (k+1)*o.c]
			for j := range dst {
				dst[j] += a * src[j]
			}
		}
	}

	return out, nil
}

// MulVec returns the matrix-vector product m · x.
// Requires len(x) == m.Cols().
func (m *Dense) MulVec(x []float64) ([]float64, error) {
	if len(x) != m.c {
		return nil, fmt.Errorf("MulVec: %dx%d by vec(%d): %w", m.r, m.c, len(x), ErrDimensionMismatch)
	}
	out := make([]float64, m.r)
	for i := 0; i < m.r; i++ {
		row := m.data[i*m.c : (i+1)*m.c]
		var s float64
		for j, v := range row {
			s += v * x[j]
		}
		out[i] = s
	}

	return out, nil
}
