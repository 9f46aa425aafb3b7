// SPDX-License-Identifier: MIT
// Package: fairground
//
// options.go — functional options for Sample.
//
// Deterministic defaults:
//   • fullSet         = false  (random half of the catalog)
//   • requireNonEmpty = false  (an empty fairground is a valid result)

package fairground

// Option customizes Sample by mutating a config before sampling begins.
// Complexity: applying N options costs O(N) time, O(1) space.
type Option func(*config)

type config struct {
	fullSet         bool
	requireNonEmpty bool
}

// WithFullSet selects every catalog entry in catalog order. No entropy is
// consumed and the random source may be nil.
func WithFullSet() Option {
	return func(c *config) {
		c.fullSet = true
	}
}

// WithFullSetIf is WithFullSet driven by a runtime flag.
func WithFullSetIf(full bool) Option {
	return func(c *config) {
		c.fullSet = full
	}
}

// WithRequireNonEmpty makes an empty catalog or an empty sample an
// ErrInvalidCatalog instead of a valid empty result. Use it when the
// downstream consumer needs at least one attraction.
func WithRequireNonEmpty() Option {
	return func(c *config) {
		c.requireNonEmpty = true
	}
}

func newConfig(opts ...Option) config {
	var cfg config
	for _, opt := range opts {
		opt(&cfg)
	}

	return cfg
}
