// SPDX-License-Identifier: MIT
// Package gridmat is a block-partitioned dense matrix engine built on a
// small distributed-collection core — from local kernels to distributed
// factorizations.
//
// 🚀 What is gridmat?
//
//	A linear-algebra toolkit where every matrix lives as a grid of dense
//	blocks spread over a partitioned keyed collection:
//		• Core primitives: row-major dense kernels, collections, runners
//		• Block algebra: add, subtract, Hadamard, elementwise division
//		• Multiplication: tag-encoded replicate / join / reduce protocol
//		• Structure ops: grid reshape, transpose, row & column tiling
//		• Solvers: distributed triangular substitution
//		• Factorizations: LU (Gaussian elimination), QR (Gram–Schmidt)
//		• I/O: line-oriented block text format + seeded random generators
//
// ✨ Why choose gridmat?
//
//   - One abstraction – every operation is a pipeline of collection
//     transformations, so swapping the sequential runner for the worker
//     pool changes throughput and nothing else
//   - Deterministic – identical inputs give identical values on any
//     runner and any partition count
//   - Pure Go – no cgo, no assembly, no hidden deps
//
// Everything is organized under focused subpackages:
//
//	dense/      — local row-major matrices and vector kernels
//	dist/       — partitioned collections, runners, partitioners, broadcast
//	blockmat/   — the block-partitioned matrix and its operations
//	rowmat/     — row-oriented representation backing the fallback paths
//	triangular/ — triangular factors and distributed substitution
//	decomp/     — LU and QR factorizations
//	matio/      — text codec and random matrix generation
//	cmd/gridmat — the command-line front end
//
// Quick ASCII example:
//
//	    ┌────┬────┐
//	    │B00 │B01 │
//	    ├────┼────┤
//	    │B10 │B11 │
//	    └────┴────┘
//
//	a 2×2 block grid: each Bij is a dense block keyed by its coordinate.
//
// Dive into README.md for full examples and the command-line reference.
//
//	go get github.com/katalvlaran/gridmat
package gridmat
