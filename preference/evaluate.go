// SPDX-License-Identifier: MIT
// Package preference decides whether a patron likes an attraction.
//
// The decision is a fixed nonlinear "personality" function of the Width-long
// assignment vector (patron half ∥ attraction half):
//
//  1. nine target values c0..c8 are derived from the attraction half;
//  2. each patron component k in 0..8 is compared with c_k through the
//     soft-saturating h1(a, c) = d / sqrt(1 + d²),
//     d = 2.5·max(a², 0.25)·(0.45 − |a − c|);
//  3. score = Σ h_k + Bias + σ·N(0,1) − patron[9];
//  4. label = 1 iff score > 0.
//
// The function is deliberately opaque: it exists to give a downstream learner
// something hard to fit. Do not simplify it.
//
// Draw order: one StdNormal per row, row-major, only when σ > 0.
package preference

import (
	"fmt"
	"math"

	"github.com/katalvlaran/fairground/rng"
)

// Bias is the constant added to every score.
const Bias = 1.5

// Pickiness is the patron component subtracted from the score.
const Pickiness = 9

// Evaluate labels every assignment vector in b. The result has b's leading
// shape and values in {0,1}.
//
// Errors:
//   - ErrInvalidShape: b is nil.
//   - rng.ErrNeedRandSource: src is nil while noise is enabled.
//   - ErrNumericDomain: negative sqrt argument or non-finite value in some row.
//
// Complexity: O(b.Len()).
func Evaluate(b *Batch, src rng.Source, opts ...Option) (*Labels, error) {
	if b == nil {
		return nil, fmt.Errorf("Evaluate: nil batch: %w", ErrInvalidShape)
	}
	cfg := newConfig(opts...)
	if cfg.noiseScale > 0 && src == nil {
		return nil, fmt.Errorf("Evaluate: %w", rng.ErrNeedRandSource)
	}

	n := b.Len()
	out := &Labels{shape: b.LeadingShape(), data: make([]int, n)}
	var (
		i   int
		s   float64
		err error
	)
	for i = 0; i < n; i++ {
		if s, err = score(b.data[i*Width : (i+1)*Width]); err != nil {
			return nil, fmt.Errorf("Evaluate: row %d: %w", i, err)
		}
		if cfg.noiseScale > 0 {
			s += cfg.noiseScale * src.StdNormal()
		}
		if !finite(s) {
			return nil, fmt.Errorf("Evaluate: row %d: score %v: %w", i, s, ErrNumericDomain)
		}
		if s > 0 {
			out.data[i] = 1
		}
	}

	return out, nil
}

// EvaluateAssignments labels a flat list of assignments.
func EvaluateAssignments(as []Assignment, src rng.Source, opts ...Option) ([]int, error) {
	labels, err := Evaluate(BatchFromAssignments(as), src, opts...)
	if err != nil {
		return nil, err
	}

	return labels.data, nil
}

// EvaluateOne labels a single assignment.
func EvaluateOne(a Assignment, src rng.Source, opts ...Option) (int, error) {
	labels, err := EvaluateAssignments([]Assignment{a}, src, opts...)
	if err != nil {
		return 0, err
	}

	return labels[0], nil
}

// Score returns the noiseless score of a: Σ h_k + Bias − patron[9].
func (a Assignment) Score() (float64, error) {
	var v [Width]float64
	a.put(v[:])

	return score(v[:])
}

// score computes the noiseless score of one Width-long vector.
func score(v []float64) (float64, error) {
	agent, t := v[:AgentWidth], v[AgentWidth:]

	if t[4] < 0 || t[6] < 0 {
		return 0, fmt.Errorf("sqrt of negative attraction component (a[14]=%v, a[16]=%v): %w",
			t[4], t[6], ErrNumericDomain)
	}

	var c [9]float64
	c[0] = t[2] + t[7] - t[1] - t[5]
	c[1] = t[7] + t[9] + 2*t[5] - 3*t[3] - t[6]
	c[2] = t[0] + t[1] + t[2] + t[3] + t[4] + t[8] - 3
	c[3] = (t[0]+t[1])/(1+t[2]) - 1
	c[4] = (1 - t[0]) * (t[5] + t[8] - t[3] - t[6])
	c[5] = t[3]*t[3] + math.Sqrt(t[6]) + t[9] - 1
	w := 0.25 * (t[1] + t[9] + 2*t[8] - 2*t[2] - 2*t[5])
	c[6] = w * w * w
	c[7] = 2*math.Sqrt(t[4]) - 1
	c[8] = 1 - 2*t[5]*t[5]

	s := Bias - agent[Pickiness]
	for k := range c {
		if !finite(c[k]) {
			return 0, fmt.Errorf("target c%d = %v: %w", k, c[k], ErrNumericDomain)
		}
		s += h1(agent[k], c[k])
	}
	if !finite(s) {
		return 0, fmt.Errorf("score %v: %w", s, ErrNumericDomain)
	}

	return s, nil
}

// h1 is the soft-saturating comparison of a patron component with a target;
// its magnitude never exceeds 1. Components large enough to overflow a*a
// saturate at ±1.
func h1(a, c float64) float64 {
	d := 2.5 * math.Max(a*a, 0.25) * (0.45 - math.Abs(a-c))
	if math.IsInf(d, 0) {
		return math.Copysign(1, d)
	}

	return d / math.Hypot(1, d)
}

func finite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
