// SPDX-License-Identifier: MIT

package matio

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/katalvlaran/gridmat/blockmat"
	"github.com/katalvlaran/gridmat/dense"
	"github.com/katalvlaran/gridmat/dist"
)

// Sentinel errors; match with errors.Is.
var (
	// ErrBadFormat is returned when a line does not follow the
	// row-col-rows-cols:values layout or a field fails to parse.
	ErrBadFormat = errors.New("matio: malformed block line")

	// ErrValueCount is returned when a block's value list length disagrees
	// with its declared local shape.
	ErrValueCount = errors.New("matio: value count does not match block shape")
)

// FormatBlock renders one block as a layout line.
func FormatBlock(id blockmat.BlockID, blk *dense.Dense) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%d-%d-%d-%d:", id.Row, id.Col, blk.Rows(), blk.Cols())
	for i, v := range blk.Flat() {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(strconv.FormatFloat(v, 'g', -1, 64))
	}

	return sb.String()
}

// ParseBlock parses one layout line into an identifier and its block.
func ParseBlock(line string) (blockmat.BlockID, *dense.Dense, error) {
	head, body, found := strings.Cut(line, ":")
	if !found {
		return blockmat.BlockID{}, nil, fmt.Errorf("ParseBlock: no value separator: %w", ErrBadFormat)
	}
	fields := strings.Split(head, "-")
	if len(fields) != 4 {
		return blockmat.BlockID{}, nil, fmt.Errorf("ParseBlock: header %q: %w", head, ErrBadFormat)
	}
	nums := make([]int, 4)
	for i, f := range fields {
		v, err := strconv.Atoi(f)
		if err != nil {
			return blockmat.BlockID{}, nil, fmt.Errorf("ParseBlock: header field %q: %w", f, ErrBadFormat)
		}
		nums[i] = v
	}
	id := blockmat.BlockID{Row: nums[0], Col: nums[1]}
	localRows, localCols := nums[2], nums[3]

	raw := strings.Split(body, ",")
	if len(raw) != localRows*localCols {
		return blockmat.BlockID{}, nil, fmt.Errorf("ParseBlock: %d values for %dx%d block: %w",
			len(raw), localRows, localCols, ErrValueCount)
	}
	values := make([]float64, len(raw))
	for i, f := range raw {
		v, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
		if err != nil {
			return blockmat.BlockID{}, nil, fmt.Errorf("ParseBlock: value %q: %w", f, ErrBadFormat)
		}
		values[i] = v
	}
	blk, err := dense.FromFlat(localRows, localCols, values)
	if err != nil {
		return blockmat.BlockID{}, nil, fmt.Errorf("ParseBlock: %w", err)
	}

	return id, blk, nil
}

// Load reads a block matrix from r, one block per line, and validates the
// assembled tiling before returning it.
func Load(runner dist.Runner, r io.Reader, numPartitions int) (*blockmat.BlockMatrix, error) {
	var pairs []dist.Pair[blockmat.BlockID, *dense.Dense]
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		id, blk, err := ParseBlock(line)
		if err != nil {
			return nil, fmt.Errorf("Load: line %d: %w", lineNo, err)
		}
		pairs = append(pairs, dist.Pair[blockmat.BlockID, *dense.Dense]{Key: id, Value: blk})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("Load: %w", err)
	}
	blocks, err := dist.New(runner, pairs, numPartitions)
	if err != nil {
		return nil, err
	}
	m, err := blockmat.New(blocks)
	if err != nil {
		return nil, err
	}
	if err = m.Validate(); err != nil {
		return nil, fmt.Errorf("Load: %w", err)
	}

	return m, nil
}

// Save writes m to w in row-major block order, one layout line per block.
func Save(w io.Writer, m *blockmat.BlockMatrix) error {
	pairs := m.Blocks().Collect()
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].Key.Row != pairs[j].Key.Row {
			return pairs[i].Key.Row < pairs[j].Key.Row
		}

		return pairs[i].Key.Col < pairs[j].Key.Col
	})
	bw := bufio.NewWriter(w)
	for _, kv := range pairs {
		if _, err := bw.WriteString(FormatBlock(kv.Key, kv.Value) + "\n"); err != nil {
			return fmt.Errorf("Save: %w", err)
		}
	}

	return bw.Flush()
}
