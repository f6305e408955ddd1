// SPDX-License-Identifier: MIT
// Package blockmat_test provides examples demonstrating the block matrix
// operations. Each example is runnable via "go test -run Example", showing
// both code and expected output.
package blockmat_test

import (
	"fmt"

	"github.com/katalvlaran/gridmat/blockmat"
	"github.com/katalvlaran/gridmat/dense"
	"github.com/katalvlaran/gridmat/dist"
)

// ExampleBlockMatrix_Multiply demonstrates multiplying two 4×4 matrices
// split into 2×2 block grids.
func ExampleBlockMatrix_Multiply() {
	// 1) Build the operands locally, then split each into a 2×2 block grid.
	runner := dist.SeqRunner{}
	ad, _ := dense.FromFlat(4, 4, []float64{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 2,
	})
	bd, _ := dense.FromFlat(4, 4, []float64{
		1, 2, 3, 4,
		5, 6, 7, 8,
		9, 10, 11, 12,
		13, 14, 15, 16,
	})
	a, _ := blockmat.FromDense(runner, ad, 2, 2, 4)
	b, _ := blockmat.FromDense(runner, bd, 2, 2, 4)

	// 2) Multiply: blocks are replicated, joined by tag, and reduced.
	c, err := a.Multiply(b)
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	// 3) Assemble the result for printing; the last row was scaled by 2.
	cd, _ := c.ToDense()
	for i := 0; i < cd.Rows(); i++ {
		row, _ := cd.Row(i)
		fmt.Println(row)
	}
	// Output:
	// [1 2 3 4]
	// [5 6 7 8]
	// [9 10 11 12]
	// [26 28 30 32]
}

// ExampleBlockMatrix_Reshape demonstrates changing the block decomposition
// without touching any matrix value.
func ExampleBlockMatrix_Reshape() {
	runner := dist.SeqRunner{}
	d, _ := dense.FromFlat(4, 4, []float64{
		1, 2, 3, 4,
		5, 6, 7, 8,
		9, 10, 11, 12,
		13, 14, 15, 16,
	})
	m, _ := blockmat.FromDense(runner, d, 2, 2, 4)

	// Coalesce the 2×2 grid into a single block, and report the new grid.
	one, err := m.Reshape(1, 1)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Printf("grid %dx%d, %dx%d values\n", one.GridRows(), one.GridCols(), one.Rows(), one.Cols())
	// Output:
	// grid 1x1, 4x4 values
}
