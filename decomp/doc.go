// SPDX-License-Identifier: MIT
// Package decomp implements LU and QR decomposition over row-indexed vector
// collections.
//
// Both algorithms are inherently sequential numerical processes expressed as
// n synchronization rounds over a horizontally partitioned data set: each
// round broadcasts one pivot vector and then runs exactly one parallel pass
// over the remaining rows (LU) or columns (QR). Round i+1 cannot start
// before round i's pass completes; this is a property of the elimination
// recurrences, not of the execution substrate.
//
// LU performs naive Doolittle elimination without pivoting: a zero pivot
// fails fast with ErrSingularPivot instead of producing division artifacts.
// QR is classical Gram–Schmidt over the matrix's columns.
package decomp
