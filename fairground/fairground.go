// SPDX-License-Identifier: MIT
// Package fairground selects the attractions of one fairground from a catalog
// and materializes their feature vectors.
//
// Sampling policy:
//   - full set: IndexSet = [0, 1, ..., n-1], no randomness consumed.
//   - otherwise: a uniform permutation of [0,n) via rng.Perm, truncated to its
//     first n/2 entries. The permutation order is kept; the prefix is not sorted.
//
// Draw order: exactly n-1 IntN draws for n >= 2 random samples, none otherwise.
package fairground

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/katalvlaran/fairground/featmat"
	"github.com/katalvlaran/fairground/rng"
)

// ErrInvalidCatalog indicates a missing catalog, or an empty catalog/sample
// when WithRequireNonEmpty was requested.
var ErrInvalidCatalog = errors.New("fairground: invalid catalog")

// Lookup is the read-only catalog view the sampler needs.
type Lookup interface {
	Len() int
	Features(i int) ([featmat.Width]float64, error)
}

// Namer resolves catalog positions to display names.
type Namer interface {
	Names(positions []int) ([]string, error)
}

// IndexSet holds catalog positions parallel to the rows of a feature matrix:
// IndexSet[i] is the catalog source of row i. No duplicates.
type IndexSet []int

// Fairground is a sampled subset of the catalog.
type Fairground struct {
	Features *featmat.Matrix // [len(Indices), featmat.Width]
	Indices  IndexSet
}

// Sample builds a fairground from lookup.
//
// Errors:
//   - ErrInvalidCatalog: lookup is nil (including a typed nil pointer such as
//     a nil *catalog.Catalog) or reports a negative size; or the
//     catalog/sample is empty under WithRequireNonEmpty.
//   - rng.ErrNeedRandSource: random sampling of n >= 2 with a nil src.
//   - wrapped lookup errors and featmat.ErrNaNInf for non-finite features.
//
// Complexity: O(n) time for the permutation plus O(k·Width) for the copy.
func Sample(lookup Lookup, src rng.Source, opts ...Option) (*Fairground, error) {
	cfg := newConfig(opts...)
	if isNil(lookup) {
		return nil, fmt.Errorf("Sample: nil lookup: %w", ErrInvalidCatalog)
	}
	n := lookup.Len()
	if n < 0 {
		return nil, fmt.Errorf("Sample: catalog size %d: %w", n, ErrInvalidCatalog)
	}
	if n == 0 && cfg.requireNonEmpty {
		return nil, fmt.Errorf("Sample: empty catalog: %w", ErrInvalidCatalog)
	}

	indices, err := selectIndices(n, src, cfg.fullSet)
	if err != nil {
		return nil, err
	}
	if len(indices) == 0 && cfg.requireNonEmpty {
		return nil, fmt.Errorf("Sample: catalog of %d yields an empty sample: %w", n, ErrInvalidCatalog)
	}

	features, err := featmat.NewFeatures(len(indices))
	if err != nil {
		return nil, err
	}
	var (
		row int
		fv  [featmat.Width]float64
	)
	for row = range indices {
		if fv, err = lookup.Features(indices[row]); err != nil {
			return nil, fmt.Errorf("Sample: catalog position %d: %w", indices[row], err)
		}
		if err = features.SetRow(row, fv[:]); err != nil {
			return nil, fmt.Errorf("Sample: catalog position %d: %w", indices[row], err)
		}
	}

	return &Fairground{Features: features, Indices: indices}, nil
}

// selectIndices returns the identity for a full set, or the n/2 prefix of a
// uniform permutation otherwise.
func selectIndices(n int, src rng.Source, full bool) (IndexSet, error) {
	if full {
		out := make(IndexSet, n)
		var i int
		for i = range out {
			out[i] = i
		}
		return out, nil
	}
	if n < 2 {
		return IndexSet{}, nil
	}
	if src == nil {
		return nil, fmt.Errorf("Sample: random half: %w", rng.ErrNeedRandSource)
	}
	perm := rng.Perm(src, n)

	return IndexSet(perm[:n/2:n/2]), nil
}

// isNil reports whether l is nil or an interface holding a nil pointer.
func isNil(l Lookup) bool {
	if l == nil {
		return true
	}
	v := reflect.ValueOf(l)

	return v.Kind() == reflect.Pointer && v.IsNil()
}

// Len returns the number of sampled attractions.
func (f *Fairground) Len() int {
	return len(f.Indices)
}

// Names resolves the sampled attractions to display names, in row order.
func (f *Fairground) Names(n Namer) ([]string, error) {
	return n.Names(f.Indices)
}
