// SPDX-License-Identifier: MIT
// Package: fairground/catalog
//
// errors.go — sentinel errors for catalog loading and validation.
// Callers branch with errors.Is; loaders attach the record position or the
// file path with %w wrapping.

package catalog

import "errors"

var (
	// ErrInvalidRecord indicates an attraction with an empty name, a feature
	// vector of the wrong length, or a non-finite feature.
	ErrInvalidRecord = errors.New("catalog: invalid attraction record")

	// ErrDuplicateName indicates two attractions share a display name.
	ErrDuplicateName = errors.New("catalog: duplicate attraction name")

	// ErrSchema indicates a JSON document that does not match the catalog schema.
	ErrSchema = errors.New("catalog: document does not match schema")

	// ErrOutOfRange indicates a catalog position outside [0, Len()).
	ErrOutOfRange = errors.New("catalog: position out of range")
)
