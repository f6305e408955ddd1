// SPDX-License-Identifier: MIT

package dist

import (
	"fmt"

	"golang.org/x/sync/errgroup"
)

// Runner executes one bulk-synchronous pass: n independent tasks, indexed
// 0..n-1, that must all complete before the pass is considered done.
// Tasks write only to slots preassigned to their index, so runners need no
// additional synchronization beyond completion.
type Runner interface {
	// Run invokes task(i) for every i in [0, n) and returns the first error.
	Run(n int, task func(i int) error) error
}

// SeqRunner executes tasks sequentially on the calling goroutine.
// Deterministic ordering makes it the runner of choice in tests.
type SeqRunner struct{}

// Run executes task(0..n-1) in order, stopping at the first error.
func (SeqRunner) Run(n int, task func(i int) error) error {
	for i := 0; i < n; i++ {
		if err := task(i); err != nil {
			return err
		}
	}

	return nil
}

// PoolRunner executes tasks on a bounded worker pool.
// The zero value is not usable; construct with NewPoolRunner.
type PoolRunner struct {
	workers int
}

// NewPoolRunner returns a PoolRunner with the given worker limit.
// Panics if workers <= 0 (programmer error, mirrors option constructors).
func NewPoolRunner(workers int) *PoolRunner {
	if workers <= 0 {
		panic(fmt.Sprintf("dist: NewPoolRunner: workers must be > 0, got %d", workers))
	}

	return &PoolRunner{workers: workers}
}

// Workers returns the configured worker limit.
func (p *PoolRunner) Workers() int { return p.workers }

// Run executes the tasks on up to Workers goroutines and waits for all of
// them. The first error is returned after in-flight tasks finish.
func (p *PoolRunner) Run(n int, task func(i int) error) error {
	var g errgroup.Group
	g.SetLimit(p.workers)
	for i := 0; i < n; i++ {
		g.Go(func() error { return task(i) })
	}

	return g.Wait()
}
