// SPDX-License-Identifier: MIT
// Package patron generates the synthetic population: one featmat.Width-long
// preference vector per patron.
//
// Each component is drawn from Beta(2,2); every row is then centered (row sum
// zero) and scaled so its largest absolute component is exactly 1. A row that
// is all zero after centering stays all zero.
//
// Draw order: count*Width Beta draws, row-major.
package patron

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/katalvlaran/fairground/featmat"
	"github.com/katalvlaran/fairground/rng"
)

// Beta shape parameters of the per-component distribution.
const (
	BetaAlpha = 2.0
	BetaBeta  = 2.0
)

// ErrInvalidCount indicates a negative population size.
var ErrInvalidCount = errors.New("patron: invalid count")

// Generate returns a [count, featmat.Width] matrix of normalized patrons.
//
// Errors:
//   - ErrInvalidCount if count < 0.
//   - rng.ErrNeedRandSource if src is nil and count > 0.
//
// Complexity: O(count·Width).
func Generate(count int, src rng.Source) (*featmat.Matrix, error) {
	if count < 0 {
		return nil, fmt.Errorf("Generate(%d): %w", count, ErrInvalidCount)
	}
	if src == nil && count > 0 {
		return nil, fmt.Errorf("Generate(%d): %w", count, rng.ErrNeedRandSource)
	}

	m, err := featmat.NewFeatures(count)
	if err != nil {
		return nil, err
	}
	data := m.Data()
	var k int
	for k = range data {
		data[k] = src.Beta(BetaAlpha, BetaBeta)
	}
	var i int
	for i = 0; i < count; i++ {
		Normalize(data[i*featmat.Width : (i+1)*featmat.Width])
	}

	return m, nil
}

// Normalize centers row in place and divides it by its maximum absolute
// value. A zero maximum leaves the (all-zero) row unchanged.
func Normalize(row []float64) {
	if len(row) == 0 {
		return
	}
	floats.AddConst(-floats.Sum(row)/float64(len(row)), row)

	peak := floats.Norm(row, math.Inf(1))
	if peak == 0 {
		return
	}
	var j int
	for j = range row {
		row[j] /= peak
	}
}
