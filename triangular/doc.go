// SPDX-License-Identifier: MIT
// Package triangular implements upper and lower triangular matrices as
// row-indexed coefficient collections, and back/forward substitution over
// them.
//
// Row i of an upper triangular matrix of size n stores exactly n−i
// coefficients (columns i..n-1); row i of a lower triangular matrix stores
// exactly i+1 (columns 0..i). The length invariant is validated for every
// row at construction.
//
// Solve expresses substitution as n strictly sequential synchronization
// rounds: each round resolves one unknown, broadcasts the solved scalar, and
// runs one parallel pass in which every still-unresolved row subtracts its
// contribution and drops the resolved column. The sequential rounds are
// intrinsic to the numerical method; they cap parallel scalability at O(n)
// barriers regardless of worker count.
package triangular
