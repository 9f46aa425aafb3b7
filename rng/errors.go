// SPDX-License-Identifier: MIT
// Package: fairground/rng
//
// errors.go — sentinel errors shared by every package that consumes a Source.
//
// Error policy:
//   • Callers branch with errors.Is(err, ErrNeedRandSource).
//   • Implementations attach context with fmt.Errorf("Op: %w", ErrX).

package rng

import "errors"

// ErrNeedRandSource indicates that a stochastic operation was invoked with a
// nil Source. Deterministic paths (full-set sampling, noiseless evaluation)
// never return it.
var ErrNeedRandSource = errors.New("rng: random source is required")
