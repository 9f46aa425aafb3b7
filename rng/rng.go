// SPDX-License-Identifier: MIT
// Package rng - the explicit random source threaded through every stochastic
// operation of the fairground model.
//
// Goals:
//   - Determinism: same seed + same draw order ⇒ identical results on every platform.
//   - Encapsulation: one generator type; no time-based or global sources anywhere.
//   - Injectability: core packages accept the Source interface so tests can
//     substitute crafted draws (constant Beta, zero noise, ...).
//
// Concurrency:
//   - *Stream is NOT goroutine-safe. Do not share one across goroutines.
//   - Use Derive to create independent streams for parallel workers.
package rng

import (
	"math/bits"

	"gonum.org/v1/gonum/stat/distuv"
)

// DefaultSeed is the seed used when callers pass seed==0.
// The value is arbitrary but stable to keep reproducible defaults.
const DefaultSeed uint64 = 1

// SplitMix64 constants (Vigna 2014): Weyl increment and finalizer multipliers.
const (
	golden = 0x9e3779b97f4a7c15
	mixA   = 0xbf58476d1ce4e5b9
	mixB   = 0x94d049bb133111eb
)

// Source is the random-source handle consumed by the core.
//
// Draw contract:
//   - Uint64: 64 uniformly distributed bits.
//   - IntN: uniform integer in [0,n); n must be > 0.
//   - Beta: one Beta(alpha,beta) variate in [0,1].
//   - StdNormal: one N(0,1) variate.
type Source interface {
	Uint64() uint64
	IntN(n int) int
	Beta(alpha, beta float64) float64
	StdNormal() float64
}

// Stream is a SplitMix64 generator. It satisfies both Source and
// math/rand/v2.Source, so gonum distributions can draw from it directly.
type Stream struct {
	state uint64
}

// New returns a deterministic Stream.
// Policy: seed==0 ⇒ DefaultSeed; otherwise the seed is used verbatim.
//
// Complexity: O(1).
func New(seed uint64) *Stream {
	if seed == 0 {
		seed = DefaultSeed
	}
	return &Stream{state: seed}
}

// Uint64 advances the Weyl sequence and returns its mixed value.
//
// Complexity: O(1).
func (s *Stream) Uint64() uint64 {
	s.state += golden
	return mix(s.state)
}

// IntN returns a uniform integer in [0,n) using multiply-shift with
// rejection of the biased low band. Panics if n <= 0 (programmer error,
// matching math/rand).
//
// Complexity: O(1) expected.
func (s *Stream) IntN(n int) int {
	if n <= 0 {
		panic("rng: IntN(n<=0)")
	}
	bound := uint64(n)
	hi, lo := bits.Mul64(s.Uint64(), bound)
	if lo < bound {
		thresh := -bound % bound
		for lo < thresh {
			hi, lo = bits.Mul64(s.Uint64(), bound)
		}
	}
	return int(hi)
}

// Beta draws one Beta(alpha,beta) variate via gonum's Gamma-ratio sampler.
// alpha and beta must be > 0.
func (s *Stream) Beta(alpha, beta float64) float64 {
	return distuv.Beta{Alpha: alpha, Beta: beta, Src: s}.Rand()
}

// StdNormal draws one standard-normal variate.
func (s *Stream) StdNormal() float64 {
	return distuv.Normal{Mu: 0, Sigma: 1, Src: s}.Rand()
}

// mix is the SplitMix64 finalizer: strong avalanche over 64 bits.
func mix(x uint64) uint64 {
	x = (x ^ (x >> 30)) * mixA
	x = (x ^ (x >> 27)) * mixB
	return x ^ (x >> 31)
}

// DeriveSeed mixes a parent value and a stream identifier into a new seed.
// Small changes in either input produce well-distributed output changes.
//
// Complexity: O(1).
func DeriveSeed(parent, stream uint64) uint64 {
	x := parent ^ (stream + golden)
	x += golden
	return mix(x)
}

// Derive creates an independent deterministic Stream from a parent source and
// a stream identifier. If parent==nil, DefaultSeed is used as the parent value.
// Otherwise parent.Uint64() is consumed once, so deriving the same stream id
// twice from one parent still yields different children.
//
// Usage:
//   - Call during setup (not in hot loops) to create per-worker streams.
//
// Complexity: O(1).
func Derive(parent Source, stream uint64) *Stream {
	var p uint64
	if parent == nil {
		p = DefaultSeed
	} else {
		p = parent.Uint64()
	}
	return New(DeriveSeed(p, stream))
}

// Shuffle performs an in-place Fisher–Yates shuffle of a using src, walking
// from the top index down with j = IntN(i+1). Exactly len(a)-1 IntN draws are
// consumed (none for len(a) <= 1).
//
// Complexity: O(n) time, O(1) extra space.
func Shuffle(src Source, a []int) {
	var i, j int
	for i = len(a) - 1; i > 0; i-- {
		j = src.IntN(i + 1)
		a[i], a[j] = a[j], a[i]
	}
}

// Perm returns a uniformly random permutation of 0..n-1 (the identity,
// shuffled). For n <= 0 it returns an empty slice and consumes nothing.
//
// Complexity: O(n) time, O(n) space.
func Perm(src Source, n int) []int {
	if n <= 0 {
		return []int{}
	}
	p := make([]int, n)
	var i int
	for i = 0; i < n; i++ {
		p[i] = i
	}
	Shuffle(src, p)
	return p
}
