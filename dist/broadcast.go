// SPDX-License-Identifier: MIT

package dist

// Broadcast is a read-only value shared with every task of a parallel pass.
//
// In this in-process engine a broadcast is a thin immutability marker: the
// wrapped value is handed out by Value to every closure that captures the
// Broadcast, and must never be mutated by any of them. The elimination
// algorithms broadcast one pivot per synchronization round this way.
type Broadcast[T any] struct {
	value T
}

// NewBroadcast wraps v for read-only sharing across tasks.
func NewBroadcast[T any](v T) *Broadcast[T] {
	return &Broadcast[T]{value: v}
}

// Value returns the shared value. Callers must treat it as immutable.
func (b *Broadcast[T]) Value() T { return b.value }
