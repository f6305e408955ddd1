// SPDX-License-Identifier: MIT
// Package rowmat implements the row-oriented distributed matrix: a mapping
// from row index to dense row vector, with the row set {0..n-1} gap-free.
//
// It is the normalization target for block-matrix elementwise operations
// whose operands disagree on block grid, and the natural input shape for the
// sequential elimination algorithms in package decomp. Like blockmat, every
// operation returns a new matrix; inputs are never mutated.
package rowmat
