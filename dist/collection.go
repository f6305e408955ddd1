// SPDX-License-Identifier: MIT

package dist

import "fmt"

// Pair is a single keyed element of a Collection.
type Pair[K comparable, V any] struct {
	Key   K
	Value V
}

// Collection is an immutable, partitioned key/value dataset.
//
// A collection owns its partitions exclusively; transformations allocate new
// partition slices and never write into an input's storage. The optional
// partitioner records how keys were last placed, enabling co-partitioned
// joins to skip the shuffle.
type Collection[K comparable, V any] struct {
	runner Runner
	parts  [][]Pair[K, V]
	part   Partitioner[K] // non-nil iff keys are placed by it
}

// New builds a collection from pairs, split contiguously into numPartitions
// slices. The pairs slice is copied.
func New[K comparable, V any](runner Runner, pairs []Pair[K, V], numPartitions int) (*Collection[K, V], error) {
	if runner == nil {
		return nil, ErrNilRunner
	}
	if numPartitions <= 0 {
		return nil, fmt.Errorf("New(%d): %w", numPartitions, ErrBadPartitions)
	}
	parts := make([][]Pair[K, V], numPartitions)
	// Contiguous chunking: ceil-sized leading chunks, possibly empty tails.
	chunk := (len(pairs) + numPartitions - 1) / numPartitions
	for i := range parts {
		lo := i * chunk
		hi := lo + chunk
		if lo > len(pairs) {
			lo = len(pairs)
		}
		if hi > len(pairs) {
			hi = len(pairs)
		}
		parts[i] = append([]Pair[K, V](nil), pairs[lo:hi]...)
	}

	return &Collection[K, V]{runner: runner, parts: parts}, nil
}

// FromMap builds a collection from m; iteration order of the source map does
// not affect the multiset of elements, only their partition placement.
func FromMap[K comparable, V any](runner Runner, m map[K]V, numPartitions int) (*Collection[K, V], error) {
	pairs := make([]Pair[K, V], 0, len(m))
	for k, v := range m {
		pairs = append(pairs, Pair[K, V]{Key: k, Value: v})
	}

	return New(runner, pairs, numPartitions)
}

// newDerived builds a result collection sharing c's runner.
func newDerived[K comparable, V any](runner Runner, parts [][]Pair[K, V], part Partitioner[K]) *Collection[K, V] {
	return &Collection[K, V]{runner: runner, parts: parts, part: part}
}

// Runner returns the execution backend shared by derived collections.
func (c *Collection[K, V]) Runner() Runner { return c.runner }

// NumPartitions returns the number of partitions.
func (c *Collection[K, V]) NumPartitions() int { return len(c.parts) }

// PartitionerOf returns the partitioner keys are currently placed by,
// or nil when placement is positional only.
func (c *Collection[K, V]) PartitionerOf() Partitioner[K] { return c.part }

// Count returns the total number of elements. Complexity: O(partitions).
func (c *Collection[K, V]) Count() int {
	var n int
	for _, p := range c.parts {
		n += len(p)
	}

	return n
}

// Collect materializes every element into a single local slice,
// partition by partition. The result is freshly allocated.
func (c *Collection[K, V]) Collect() []Pair[K, V] {
	out := make([]Pair[K, V], 0, c.Count())
	for _, p := range c.parts {
		out = append(out, p...)
	}

	return out
}

// CollectMap materializes the collection into a map. Later partitions win on
// duplicate keys; collections with unique keys are unaffected.
func (c *Collection[K, V]) CollectMap() map[K]V {
	out := make(map[K]V, c.Count())
	for _, p := range c.parts {
		for _, kv := range p {
			out[kv.Key] = kv.Value
		}
	}

	return out
}

// Filter returns the elements satisfying pred, preserving partition layout
// and placement. One parallel pass.
func (c *Collection[K, V]) Filter(pred func(key K, value V) bool) (*Collection[K, V], error) {
	parts := make([][]Pair[K, V], len(c.parts))
	err := c.runner.Run(len(c.parts), func(i int) error {
		var kept []Pair[K, V]
		for _, kv := range c.parts[i] {
			if pred(kv.Key, kv.Value) {
				kept = append(kept, kv)
			}
		}
		parts[i] = kept

		return nil
	})
	if err != nil {
		return nil, err
	}

	return newDerived(c.runner, parts, c.part), nil
}

// PartitionBy redistributes every element to the bucket p assigns its key.
// One parallel scatter pass per input partition followed by a local merge.
func (c *Collection[K, V]) PartitionBy(p Partitioner[K]) (*Collection[K, V], error) {
	if p == nil {
		return nil, ErrNilPartitioner
	}
	n := p.NumPartitions()
	if n <= 0 {
		return nil, fmt.Errorf("PartitionBy: %w", ErrBadPartitions)
	}
	// Skip the shuffle when keys are already placed by an equal partitioner.
	if c.part != nil && c.part.Equal(p) {
		return newDerived(c.runner, c.parts, p), nil
	}
	// Scatter: each input partition fills its own bucket matrix slot,
	// so tasks never share a write target.
	local := make([][][]Pair[K, V], len(c.parts))
	err := c.runner.Run(len(c.parts), func(i int) error {
		buckets := make([][]Pair[K, V], n)
		for _, kv := range c.parts[i] {
			b := p.Partition(kv.Key)
			if b < 0 || b >= n {
				return fmt.Errorf("PartitionBy: key bucket %d of %d: %w", b, n, ErrPartitionRange)
			}
			buckets[b] = append(buckets[b], kv)
		}
		local[i] = buckets

		return nil
	})
	if err != nil {
		return nil, err
	}
	// Gather: concatenate per-source buckets in source order.
	parts := make([][]Pair[K, V], n)
	for b := 0; b < n; b++ {
		for i := range local {
			parts[b] = append(parts[b], local[i][b]...)
		}
	}

	return newDerived(c.runner, parts, p), nil
}
