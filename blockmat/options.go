// SPDX-License-Identifier: MIT

package blockmat

import (
	"fmt"

	"github.com/katalvlaran/gridmat/dist"
)

// Option configures an individual operation via functional arguments.
// Constructors panic only on nonsensical values (programmer error); a valid
// Option never fails at application time.
type Option func(*opConfig)

// opConfig carries the per-operation knobs, gathered from defaults + opts.
type opConfig struct {
	// partitions sizes the multiplication partitioner; 0 means "derive from
	// the output grid".
	partitions int

	// partitioner, when set, co-locates both operands of an elementwise join
	// so a caller who already controls placement avoids an extra shuffle.
	partitioner dist.Partitioner[BlockID]
}

// WithPartitions sets the bucket count of the multiplication shuffle.
// Panics if n <= 0.
func WithPartitions(n int) Option {
	if n <= 0 {
		panic(fmt.Sprintf("blockmat: WithPartitions(%d): count must be > 0", n))
	}

	return func(c *opConfig) { c.partitions = n }
}

// WithPartitioner sets an explicit co-location partitioner for elementwise
// joins. Panics if p is nil.
func WithPartitioner(p dist.Partitioner[BlockID]) Option {
	if p == nil {
		panic("blockmat: WithPartitioner: partitioner is nil")
	}

	return func(c *opConfig) { c.partitioner = p }
}

// gatherOptions folds opts over the zero config.
func gatherOptions(opts ...Option) opConfig {
	var cfg opConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	return cfg
}
