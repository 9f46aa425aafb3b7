// SPDX-License-Identifier: MIT
// Package featmat: sentinel error set.
// All methods MUST return these sentinels (optionally %w-wrapped with method
// context) and tests MUST check them via errors.Is. Nothing here panics on
// user-triggered conditions.

package featmat

import (
	"errors"
	"fmt"
)

var (
	// ErrBadShape is returned when a requested shape is invalid
	// (rows<0, cols<=0, or a data slice whose length is not rows*cols).
	ErrBadShape = errors.New("featmat: invalid shape")

	// ErrOutOfRange indicates that a row or column index is outside valid bounds.
	// Public indexers (At/Set/Row) return this, never panic.
	ErrOutOfRange = errors.New("featmat: index out of range")

	// ErrNaNInf signals a NaN or ±Inf value where finite values are required.
	ErrNaNInf = errors.New("featmat: NaN or Inf encountered")

	// ErrNilMatrix indicates that a nil *Matrix was used.
	ErrNilMatrix = errors.New("featmat: nil matrix")
)

// matrixErrorf wraps an underlying error with Matrix method context.
func matrixErrorf(method string, row, col int, err error) error {
	return fmt.Errorf("Matrix.%s(%d,%d): %w", method, row, col, err)
}
