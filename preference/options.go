// SPDX-License-Identifier: MIT
// Package: fairground/preference
//
// options.go — functional options for Evaluate.
//
// Contract:
//   • Option constructors validate and PANIC on meaningless inputs
//     (negative or non-finite noise scale). Evaluate itself never panics.
//   • Default noise scale is DefaultNoiseScale; WithoutNoise makes Evaluate a
//     pure function of its inputs that consumes no randomness.

package preference

import "math"

// DefaultNoiseScale is the standard deviation of the Gaussian term added to
// every score.
const DefaultNoiseScale = 0.1

// Option customizes Evaluate.
type Option func(*config)

type config struct {
	noiseScale float64
}

// WithNoiseScale sets the noise standard deviation (>= 0).
// Panics on negative or non-finite sigma.
func WithNoiseScale(sigma float64) Option {
	if sigma < 0 || math.IsNaN(sigma) || math.IsInf(sigma, 0) {
		panic("preference: WithNoiseScale(sigma<0 or non-finite)")
	}
	return func(c *config) {
		c.noiseScale = sigma
	}
}

// WithoutNoise disables the noise term; no normal draws are consumed and the
// source may be nil.
func WithoutNoise() Option {
	return func(c *config) {
		c.noiseScale = 0
	}
}

func newConfig(opts ...Option) config {
	cfg := config{noiseScale: DefaultNoiseScale}
	for _, opt := range opts {
		opt(&cfg)
	}

	return cfg
}
