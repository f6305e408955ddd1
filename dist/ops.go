// SPDX-License-Identifier: MIT
// Package dist: type-changing transformations.
//
// These are free functions rather than methods because Go methods cannot
// introduce new type parameters. Each runs one parallel pass over the input
// partitions; output slot i is written only by task i.
package dist

// Map transforms every element, possibly changing both key and value types.
// Partition layout is preserved; the partitioner is dropped because the
// transformed keys need not hash alike.
func Map[K, K2 comparable, V, V2 any](
	c *Collection[K, V],
	fn func(key K, value V) (K2, V2, error),
) (*Collection[K2, V2], error) {
	parts := make([][]Pair[K2, V2], len(c.parts))
	err := c.runner.Run(len(c.parts), func(i int) error {
		out := make([]Pair[K2, V2], len(c.parts[i]))
		for j, kv := range c.parts[i] {
			k2, v2, err := fn(kv.Key, kv.Value)
			if err != nil {
				return err
			}
			out[j] = Pair[K2, V2]{Key: k2, Value: v2}
		}
		parts[i] = out

		return nil
	})
	if err != nil {
		return nil, err
	}

	return newDerived(c.runner, parts, nil), nil
}

// MapValues transforms values in place of the key space; keys are untouched,
// so partitioner placement survives.
func MapValues[K comparable, V, V2 any](
	c *Collection[K, V],
	fn func(key K, value V) (V2, error),
) (*Collection[K, V2], error) {
	parts := make([][]Pair[K, V2], len(c.parts))
	err := c.runner.Run(len(c.parts), func(i int) error {
		out := make([]Pair[K, V2], len(c.parts[i]))
		for j, kv := range c.parts[i] {
			v2, err := fn(kv.Key, kv.Value)
			if err != nil {
				return err
			}
			out[j] = Pair[K, V2]{Key: kv.Key, Value: v2}
		}
		parts[i] = out

		return nil
	})
	if err != nil {
		return nil, err
	}

	return newDerived(c.runner, parts, c.part), nil
}

// FlatMap expands every element into zero or more output pairs.
func FlatMap[K, K2 comparable, V, V2 any](
	c *Collection[K, V],
	fn func(key K, value V) ([]Pair[K2, V2], error),
) (*Collection[K2, V2], error) {
	parts := make([][]Pair[K2, V2], len(c.parts))
	err := c.runner.Run(len(c.parts), func(i int) error {
		var out []Pair[K2, V2]
		for _, kv := range c.parts[i] {
			expanded, err := fn(kv.Key, kv.Value)
			if err != nil {
				return err
			}
			out = append(out, expanded...)
		}
		parts[i] = out

		return nil
	})
	if err != nil {
		return nil, err
	}

	return newDerived(c.runner, parts, nil), nil
}

// MapPartitions transforms whole partitions at once, for operations that
// amortize setup across a partition's elements.
func MapPartitions[K, K2 comparable, V, V2 any](
	c *Collection[K, V],
	fn func(partition []Pair[K, V]) ([]Pair[K2, V2], error),
) (*Collection[K2, V2], error) {
	parts := make([][]Pair[K2, V2], len(c.parts))
	err := c.runner.Run(len(c.parts), func(i int) error {
		out, err := fn(c.parts[i])
		if err != nil {
			return err
		}
		parts[i] = out

		return nil
	})
	if err != nil {
		return nil, err
	}

	return newDerived(c.runner, parts, nil), nil
}

// GroupByKey gathers all values sharing a key into one slice.
//
// When the collection is placed by a partitioner, equal keys are co-located
// and grouping is a purely partition-local parallel pass. Otherwise the
// groups are merged through one local gather.
func GroupByKey[K comparable, V any](c *Collection[K, V]) (*Collection[K, []V], error) {
	if c.part != nil {
		parts := make([][]Pair[K, []V], len(c.parts))
		err := c.runner.Run(len(c.parts), func(i int) error {
			groups := make(map[K][]V)
			order := make([]K, 0, len(c.parts[i]))
			for _, kv := range c.parts[i] {
				if _, seen := groups[kv.Key]; !seen {
					order = append(order, kv.Key)
				}
				groups[kv.Key] = append(groups[kv.Key], kv.Value)
			}
			out := make([]Pair[K, []V], len(order))
			for j, k := range order {
				out[j] = Pair[K, []V]{Key: k, Value: groups[k]}
			}
			parts[i] = out

			return nil
		})
		if err != nil {
			return nil, err
		}

		return newDerived(c.runner, parts, c.part), nil
	}

	// Unplaced keys may repeat across partitions: gather globally in
	// first-seen order, then re-split into the same number of partitions.
	groups := make(map[K][]V)
	var order []K
	for _, p := range c.parts {
		for _, kv := range p {
			if _, seen := groups[kv.Key]; !seen {
				order = append(order, kv.Key)
			}
			groups[kv.Key] = append(groups[kv.Key], kv.Value)
		}
	}
	pairs := make([]Pair[K, []V], len(order))
	for i, k := range order {
		pairs[i] = Pair[K, []V]{Key: k, Value: groups[k]}
	}

	return New(c.runner, pairs, len(c.parts))
}

// ReduceByKey folds all values sharing a key into one, using merge.
// merge must be associative and commutative; it is applied in partition
// order, pairwise.
func ReduceByKey[K comparable, V any](
	c *Collection[K, V],
	merge func(a, b V) (V, error),
) (*Collection[K, V], error) {
	grouped, err := GroupByKey(c)
	if err != nil {
		return nil, err
	}

	return MapValues(grouped, func(_ K, values []V) (V, error) {
		acc := values[0]
		for _, v := range values[1:] {
			next, merr := merge(acc, v)
			if merr != nil {
				var zero V
				return zero, merr
			}
			acc = next
		}

		return acc, nil
	})
}

// Joined carries one matched pair of values from a Join.
type Joined[L, R any] struct {
	Left  L
	Right R
}

// Join performs an inner equality join on keys. Duplicate keys on either
// side produce the cross product of their matches.
//
// When both sides are placed by equal partitioners with equal partition
// counts, the join is partition-local. Otherwise the right side is gathered
// into a read-only index probed in parallel from the left partitions.
func Join[K comparable, L, R any](
	a *Collection[K, L],
	b *Collection[K, R],
) (*Collection[K, Joined[L, R]], error) {
	if a.part != nil && b.part != nil && a.part.Equal(b.part) && len(a.parts) == len(b.parts) {
		parts := make([][]Pair[K, Joined[L, R]], len(a.parts))
		err := a.runner.Run(len(a.parts), func(i int) error {
			parts[i] = joinSlices(a.parts[i], b.parts[i])

			return nil
		})
		if err != nil {
			return nil, err
		}

		return newDerived(a.runner, parts, a.part), nil
	}

	// General path: index the right side once, probe from the left.
	index := make(map[K][]R, b.Count())
	for _, p := range b.parts {
		for _, kv := range p {
			index[kv.Key] = append(index[kv.Key], kv.Value)
		}
	}
	parts := make([][]Pair[K, Joined[L, R]], len(a.parts))
	err := a.runner.Run(len(a.parts), func(i int) error {
		var out []Pair[K, Joined[L, R]]
		for _, kv := range a.parts[i] {
			for _, r := range index[kv.Key] {
				out = append(out, Pair[K, Joined[L, R]]{
					Key:   kv.Key,
					Value: Joined[L, R]{Left: kv.Value, Right: r},
				})
			}
		}
		parts[i] = out

		return nil
	})
	if err != nil {
		return nil, err
	}

	return newDerived(a.runner, parts, a.part), nil
}

// joinSlices inner-joins two already co-located partitions.
func joinSlices[K comparable, L, R any](left []Pair[K, L], right []Pair[K, R]) []Pair[K, Joined[L, R]] {
	index := make(map[K][]R, len(right))
	for _, kv := range right {
		index[kv.Key] = append(index[kv.Key], kv.Value)
	}
	var out []Pair[K, Joined[L, R]]
	for _, kv := range left {
		for _, r := range index[kv.Key] {
			out = append(out, Pair[K, Joined[L, R]]{
				Key:   kv.Key,
				Value: Joined[L, R]{Left: kv.Value, Right: r},
			})
		}
	}

	return out
}
