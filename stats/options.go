// SPDX-License-Identifier: MIT

package stats

import "github.com/katalvlaran/fairground/preference"

// DefaultWorkers is the number of attractions evaluated concurrently.
const DefaultWorkers = 1

// Option customizes Aggregate.
type Option func(*config)

type config struct {
	workers  int
	evalOpts []preference.Option
}

// WithWorkers sets how many attractions are evaluated concurrently.
// Results do not depend on n. Panics if n < 1.
func WithWorkers(n int) Option {
	if n < 1 {
		panic("stats: WithWorkers(n<1)")
	}
	return func(c *config) {
		c.workers = n
	}
}

// WithEvaluatorOptions forwards options (noise scale) to preference.Evaluate.
func WithEvaluatorOptions(opts ...preference.Option) Option {
	return func(c *config) {
		c.evalOpts = append(c.evalOpts, opts...)
	}
}

func newConfig(opts ...Option) config {
	cfg := config{workers: DefaultWorkers}
	for _, opt := range opts {
		opt(&cfg)
	}

	return cfg
}
