// SPDX-License-Identifier: MIT
// Command gridmat drives the block-matrix engine from the command line:
// generating, multiplying, reshaping and decomposing matrices persisted in
// the one-line-per-block text layout.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/gridmat/blockmat"
	"github.com/katalvlaran/gridmat/decomp"
	"github.com/katalvlaran/gridmat/matio"
	"github.com/katalvlaran/gridmat/triangular"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		slog.Error("gridmat failed", "err", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string
	var cfg Config

	root := &cobra.Command{
		Use:           "gridmat",
		Short:         "distributed block-partitioned matrix algebra",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			var err error
			cfg, err = loadConfig(configPath)

			return err
		},
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "engine config file (yaml)")

	root.AddCommand(
		newGenCmd(&cfg),
		newMultiplyCmd(&cfg),
		newTransposeCmd(&cfg),
		newReshapeCmd(&cfg),
		newLUCmd(&cfg),
		newQRCmd(&cfg),
		newSolveCmd(&cfg),
	)

	return root
}

// loadMatrix reads one persisted block matrix.
func loadMatrix(cfg *Config, path string) (*blockmat.BlockMatrix, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return matio.Load(cfg.runner(), f, cfg.Partitions)
}

// saveMatrix writes m to path in the block text layout.
func saveMatrix(path string, m *blockmat.BlockMatrix) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err = matio.Save(f, m); err != nil {
		f.Close()

		return err
	}

	return f.Close()
}

func newGenCmd(cfg *Config) *cobra.Command {
	var rows, cols, gridRows, gridCols int
	var seed uint64
	var out string
	cmd := &cobra.Command{
		Use:   "gen",
		Short: "generate a random block matrix from a seed",
		RunE: func(*cobra.Command, []string) error {
			m, err := matio.Random(cfg.runner(), rows, cols, gridRows, gridCols, seed, cfg.Partitions)
			if err != nil {
				return err
			}
			slog.Info("generated", "rows", rows, "cols", cols, "grid", fmt.Sprintf("%dx%d", gridRows, gridCols), "seed", seed)

			return saveMatrix(out, m)
		},
	}
	cmd.Flags().IntVar(&rows, "rows", 0, "matrix rows")
	cmd.Flags().IntVar(&cols, "cols", 0, "matrix cols")
	cmd.Flags().IntVar(&gridRows, "grid-rows", 1, "block grid rows")
	cmd.Flags().IntVar(&gridCols, "grid-cols", 1, "block grid cols")
	cmd.Flags().Uint64Var(&seed, "seed", 1, "generator seed")
	cmd.Flags().StringVar(&out, "out", "", "output file")
	_ = cmd.MarkFlagRequired("rows")
	_ = cmd.MarkFlagRequired("cols")
	_ = cmd.MarkFlagRequired("out")

	return cmd
}

func newMultiplyCmd(cfg *Config) *cobra.Command {
	var aPath, bPath, out string
	cmd := &cobra.Command{
		Use:   "multiply",
		Short: "multiply two block matrices",
		RunE: func(*cobra.Command, []string) error {
			a, err := loadMatrix(cfg, aPath)
			if err != nil {
				return err
			}
			b, err := loadMatrix(cfg, bPath)
			if err != nil {
				return err
			}
			c, err := a.Multiply(b, blockmat.WithPartitions(cfg.Partitions))
			if err != nil {
				return err
			}
			slog.Info("multiplied", "result", fmt.Sprintf("%dx%d", c.Rows(), c.Cols()))

			return saveMatrix(out, c)
		},
	}
	cmd.Flags().StringVar(&aPath, "a", "", "left operand file")
	cmd.Flags().StringVar(&bPath, "b", "", "right operand file")
	cmd.Flags().StringVar(&out, "out", "", "output file")
	_ = cmd.MarkFlagRequired("a")
	_ = cmd.MarkFlagRequired("b")
	_ = cmd.MarkFlagRequired("out")

	return cmd
}

func newTransposeCmd(cfg *Config) *cobra.Command {
	var in, out string
	cmd := &cobra.Command{
		Use:   "transpose",
		Short: "transpose a block matrix",
		RunE: func(*cobra.Command, []string) error {
			m, err := loadMatrix(cfg, in)
			if err != nil {
				return err
			}
			t, err := m.Transpose()
			if err != nil {
				return err
			}

			return saveMatrix(out, t)
		},
	}
	cmd.Flags().StringVar(&in, "in", "", "input file")
	cmd.Flags().StringVar(&out, "out", "", "output file")
	_ = cmd.MarkFlagRequired("in")
	_ = cmd.MarkFlagRequired("out")

	return cmd
}

func newReshapeCmd(cfg *Config) *cobra.Command {
	var in, out string
	var gridRows, gridCols int
	cmd := &cobra.Command{
		Use:   "reshape",
		Short: "re-derive a different block decomposition",
		RunE: func(*cobra.Command, []string) error {
			m, err := loadMatrix(cfg, in)
			if err != nil {
				return err
			}
			r, err := m.Reshape(gridRows, gridCols)
			if err != nil {
				return err
			}
			slog.Info("reshaped", "grid", fmt.Sprintf("%dx%d", gridRows, gridCols))

			return saveMatrix(out, r)
		},
	}
	cmd.Flags().StringVar(&in, "in", "", "input file")
	cmd.Flags().StringVar(&out, "out", "", "output file")
	cmd.Flags().IntVar(&gridRows, "grid-rows", 1, "new block grid rows")
	cmd.Flags().IntVar(&gridCols, "grid-cols", 1, "new block grid cols")
	_ = cmd.MarkFlagRequired("in")
	_ = cmd.MarkFlagRequired("out")

	return cmd
}

// printTriangular writes a factor row per line: "i: c0,c1,...".
func printTriangular(w *os.File, name string, t *triangular.Triangular) error {
	fmt.Fprintf(w, "%s (%s, order %d)\n", name, t.Kind(), t.Order())
	for i := 0; i < t.Order(); i++ {
		coeffs, err := t.Row(i)
		if err != nil {
			return err
		}
		parts := make([]string, len(coeffs))
		for j, v := range coeffs {
			parts[j] = strconv.FormatFloat(v, 'g', -1, 64)
		}
		fmt.Fprintf(w, "%d: %s\n", i, strings.Join(parts, ","))
	}

	return nil
}

func newLUCmd(cfg *Config) *cobra.Command {
	var in string
	cmd := &cobra.Command{
		Use:   "lu",
		Short: "LU-decompose a square block matrix",
		RunE: func(*cobra.Command, []string) error {
			m, err := loadMatrix(cfg, in)
			if err != nil {
				return err
			}
			rm, err := m.ToRowMatrix()
			if err != nil {
				return err
			}
			lower, upper, err := decomp.LU(rm.Rows())
			if err != nil {
				return err
			}
			if err = printTriangular(os.Stdout, "L", lower); err != nil {
				return err
			}

			return printTriangular(os.Stdout, "U", upper)
		},
	}
	cmd.Flags().StringVar(&in, "in", "", "input file")
	_ = cmd.MarkFlagRequired("in")

	return cmd
}

func newQRCmd(cfg *Config) *cobra.Command {
	var in string
	cmd := &cobra.Command{
		Use:   "qr",
		Short: "QR-decompose a block matrix",
		RunE: func(*cobra.Command, []string) error {
			m, err := loadMatrix(cfg, in)
			if err != nil {
				return err
			}
			// The decomposition consumes columns: rows of the transpose.
			t, err := m.Transpose()
			if err != nil {
				return err
			}
			cols, err := t.ToRowMatrix()
			if err != nil {
				return err
			}
			q, r, err := decomp.QR(cols.Rows())
			if err != nil {
				return err
			}
			fmt.Printf("Q (%dx%d)\n", q.Rows(), q.Cols())
			for i := 0; i < q.Rows(); i++ {
				row, err := q.Row(i)
				if err != nil {
					return err
				}
				parts := make([]string, len(row))
				for j, v := range row {
					parts[j] = strconv.FormatFloat(v, 'g', -1, 64)
				}
				fmt.Println(strings.Join(parts, ","))
			}

			return printTriangular(os.Stdout, "R", r)
		},
	}
	cmd.Flags().StringVar(&in, "in", "", "input file")
	_ = cmd.MarkFlagRequired("in")

	return cmd
}

func newSolveCmd(cfg *Config) *cobra.Command {
	var in, rhsFlag string
	var lower bool
	cmd := &cobra.Command{
		Use:   "solve",
		Short: "solve a triangular system T·x = b",
		RunE: func(*cobra.Command, []string) error {
			m, err := loadMatrix(cfg, in)
			if err != nil {
				return err
			}
			d, err := m.ToDense()
			if err != nil {
				return err
			}
			if d.Rows() != d.Cols() {
				return fmt.Errorf("solve: %dx%d matrix is not square", d.Rows(), d.Cols())
			}
			n := d.Rows()

			// Keep only the triangular half the orientation prescribes.
			rows := make(map[int][]float64, n)
			kind := triangular.Upper
			if lower {
				kind = triangular.Lower
			}
			for i := 0; i < n; i++ {
				full, err := d.Row(i)
				if err != nil {
					return err
				}
				if lower {
					rows[i] = full[:i+1]
				} else {
					rows[i] = full[i:]
				}
			}
			t, err := triangular.New(cfg.runner(), kind, rows, cfg.Partitions)
			if err != nil {
				return err
			}

			rhs, err := parseVector(rhsFlag)
			if err != nil {
				return err
			}
			x, err := t.Solve(rhs)
			if err != nil {
				return err
			}
			parts := make([]string, len(x))
			for i, v := range x {
				parts[i] = strconv.FormatFloat(v, 'g', -1, 64)
			}
			fmt.Println(strings.Join(parts, ","))

			return nil
		},
	}
	cmd.Flags().StringVar(&in, "in", "", "matrix file")
	cmd.Flags().StringVar(&rhsFlag, "rhs", "", "right-hand side, comma separated")
	cmd.Flags().BoolVar(&lower, "lower", false, "treat the matrix as lower triangular")
	_ = cmd.MarkFlagRequired("in")
	_ = cmd.MarkFlagRequired("rhs")

	return cmd
}

// parseVector parses a comma-separated float list.
func parseVector(s string) ([]float64, error) {
	fields := strings.Split(s, ",")
	out := make([]float64, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
		if err != nil {
			return nil, fmt.Errorf("parseVector: %q: %w", f, err)
		}
		out[i] = v
	}

	return out, nil
}
