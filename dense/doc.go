// SPDX-License-Identifier: MIT
// Package dense provides the local dense matrix and vector primitives that
// back every block of a distributed block-partitioned matrix.
//
// The dense package provides:
//
//   - Dense: a row-major float64 matrix with bounds-checked access.
//   - Matrix algebra: Add, Sub, Hadamard, ElemDiv, Scale, Mul, Transpose.
//   - Structural helpers: Slice, Clone, FromFlat, EqualApprox.
//   - Vector kernels: Dot, AXPY, Norm2, used by the elimination algorithms.
//
// Dense values are plain local memory; they carry no notion of distribution.
// The blockmat package stores one Dense per grid block and composes these
// local kernels into distributed operations.
package dense
