// SPDX-License-Identifier: MIT

package dist

// Partitioner maps a key to a placement bucket in [0, NumPartitions).
// It must be a pure function of the key: two calls with equal keys return
// the same bucket, on any host, at any time.
//
// Equality is value equality over the partitioner's parameters, not
// identity: two partitioners built from equal parameters are interchangeable
// in join planning, and a join between two collections partitioned by equal
// partitioners skips the repartition pass entirely.
type Partitioner[K comparable] interface {
	// NumPartitions returns the number of buckets, always > 0.
	NumPartitions() int

	// Partition returns the bucket for key, in [0, NumPartitions).
	Partition(key K) int

	// Equal reports whether other partitions every key identically.
	Equal(other Partitioner[K]) bool
}

// FuncPartitioner adapts a plain hash function to the Partitioner interface.
// Two FuncPartitioners are never Equal (function identity is not comparable),
// so collections partitioned by them always repartition before a join;
// prefer a parameterized partitioner type when co-location matters.
type FuncPartitioner[K comparable] struct {
	n  int
	fn func(K) int
}

// NewFuncPartitioner wraps fn into a Partitioner with n buckets.
// Panics if n <= 0 or fn is nil (programmer error).
func NewFuncPartitioner[K comparable](n int, fn func(K) int) FuncPartitioner[K] {
	if n <= 0 || fn == nil {
		panic("dist: NewFuncPartitioner: need n > 0 and non-nil fn")
	}

	return FuncPartitioner[K]{n: n, fn: fn}
}

// NumPartitions returns the bucket count.
func (p FuncPartitioner[K]) NumPartitions() int { return p.n }

// Partition applies the wrapped function, reduced modulo the bucket count.
func (p FuncPartitioner[K]) Partition(key K) int {
	i := p.fn(key) % p.n
	if i < 0 {
		i += p.n
	}

	return i
}

// Equal always reports false; see the type comment.
func (p FuncPartitioner[K]) Equal(Partitioner[K]) bool { return false }
