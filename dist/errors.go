// SPDX-License-Identifier: MIT

package dist

import "errors"

// Sentinel errors for collection construction and transformation.
var (
	// ErrBadPartitions is returned when a partition count is not positive.
	ErrBadPartitions = errors.New("dist: partition count must be > 0")

	// ErrNilPartitioner is returned when a nil Partitioner is supplied.
	ErrNilPartitioner = errors.New("dist: partitioner is nil")

	// ErrNilRunner is returned when a collection is built without a runner.
	ErrNilRunner = errors.New("dist: runner is nil")

	// ErrPartitionRange is returned when a partitioner maps a key outside
	// [0, NumPartitions).
	ErrPartitionRange = errors.New("dist: partition index out of range")
)
