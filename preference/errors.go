// SPDX-License-Identifier: MIT
// Package: fairground/preference
//
// errors.go — sentinel errors for batch construction and evaluation.
// Evaluation errors are wrapped with the offending row index:
//   fmt.Errorf("Evaluate: row %d: %w", i, ErrNumericDomain)

package preference

import "errors"

var (
	// ErrInvalidShape indicates a batch whose last axis is not Width, whose
	// dimensions are negative, or whose data length disagrees with its shape.
	ErrInvalidShape = errors.New("preference: invalid batch shape")

	// ErrNumericDomain indicates a square root of a negative attraction
	// component, or any NaN/±Inf intermediate or score. Malformed attraction
	// data surfaces here instead of producing NaN labels.
	ErrNumericDomain = errors.New("preference: numeric domain error")
)
