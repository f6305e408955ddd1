// SPDX-License-Identifier: MIT
// Package blockmat implements the distributed block-partitioned dense
// matrix: a large matrix stored as a grid of independently held rectangular
// blocks, with algebra defined over the grid.
//
// The blockmat package provides:
//
//   - BlockID and the grid/multiplication partitioners that co-locate
//     blocks which must be joined.
//   - BlockMatrix: an immutable mapping BlockID → dense block with lazily
//     memoized global dimensions.
//   - Elementwise algebra (Add, Sub, ReverseSub, Hadamard, ElemDiv,
//     ReverseDiv, scalar scale) with a row-oriented fallback when the two
//     operands' block grids disagree.
//   - Transpose, the replicate/join/reduce block multiplication protocol,
//     grid reshaping (Reshape), and the repeat-by-row/column utilities.
//
// Block grids follow the ceil rule: with total t split into g blocks, every
// block spans ceil(t/g) units except the last, which takes the remainder.
// Every operation returns a new BlockMatrix; inputs are never mutated.
package blockmat
