// SPDX-License-Identifier: MIT
// Package matio persists block-partitioned matrices in the one-line-per-
// block text layout and generates random matrices from explicit seeds.
//
// The layout is:
//
//	row-column-localRows-localCols:v0,v1,...,vk
//
// with the value list holding the block's entries in row-major flattened
// order. Load validates the tiling invariant of the assembled matrix before
// returning it; Save writes blocks in row-major block order so output is
// deterministic.
//
// The generator is a pure function of its seed — never of time or external
// state — so re-executing a failed generation task reproduces the same
// matrix.
package matio
