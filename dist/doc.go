// SPDX-License-Identifier: MIT
// Package dist provides the partitioned key/value collection the matrix
// engine is built on: an immutable, in-memory analogue of a distributed
// dataset with map, flatMap, filter, join, reduceByKey, groupByKey,
// mapPartitions, partitionBy and a read-only broadcast primitive.
//
// Execution is bulk-synchronous: every transformation runs one parallel pass
// over the collection's partitions through a pluggable Runner, and returns a
// brand-new collection. Two runners are provided:
//
//   - SeqRunner: executes partitions one by one on the calling goroutine;
//     fully deterministic, the default for tests.
//   - PoolRunner: executes partitions on a bounded errgroup worker pool,
//     propagating the first error and waiting for in-flight work.
//
// Collections never mutate; all closures passed to transformations must be
// pure functions of their inputs, which is what makes re-execution of a
// failed pass safe. Type-changing transformations (Map, FlatMap, Join, ...)
// are free functions because Go methods cannot introduce type parameters.
package dist
