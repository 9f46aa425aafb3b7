// SPDX-License-Identifier: MIT

// Package catalog holds the ordered attraction catalog that feeds the
// fairground sampler, together with its loaders (JSON, zstd-compressed JSON,
// SQLite). The catalog is read-only once built: every accessor returns copies.
package catalog

import (
	"fmt"
	"math"

	"github.com/katalvlaran/fairground/featmat"
)

// Attraction is one catalog record: a display name and its feature vector.
type Attraction struct {
	Name     string                 `json:"name"`
	Features [featmat.Width]float64 `json:"fv"`
}

// Catalog is an immutable ordered sequence of attractions.
type Catalog struct {
	items []Attraction
}

// New builds a validated Catalog from items (copied).
// Returns ErrInvalidRecord or ErrDuplicateName on bad input.
func New(items ...Attraction) (*Catalog, error) {
	c := &Catalog{items: append([]Attraction(nil), items...)}
	if err := c.Validate(); err != nil {
		return nil, err
	}

	return c, nil
}

// Validate checks every record: non-empty unique names, finite features.
// Complexity: O(n·Width).
func (c *Catalog) Validate() error {
	seen := make(map[string]int, len(c.items))
	for i, a := range c.items {
		if a.Name == "" {
			return fmt.Errorf("record %d: empty name: %w", i, ErrInvalidRecord)
		}
		if prev, ok := seen[a.Name]; ok {
			return fmt.Errorf("record %d %q (first at %d): %w", i, a.Name, prev, ErrDuplicateName)
		}
		seen[a.Name] = i
		for j, v := range a.Features {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return fmt.Errorf("record %d %q feature %d: %w", i, a.Name, j, ErrInvalidRecord)
			}
		}
	}

	return nil
}

// Len returns the number of attractions.
func (c *Catalog) Len() int {
	return len(c.items)
}

// Features returns the feature vector of the attraction at position i.
func (c *Catalog) Features(i int) ([featmat.Width]float64, error) {
	if i < 0 || i >= len(c.items) {
		return [featmat.Width]float64{}, fmt.Errorf("Features(%d): %w", i, ErrOutOfRange)
	}

	return c.items[i].Features, nil
}

// Name returns the display name of the attraction at position i.
func (c *Catalog) Name(i int) (string, error) {
	if i < 0 || i >= len(c.items) {
		return "", fmt.Errorf("Name(%d): %w", i, ErrOutOfRange)
	}

	return c.items[i].Name, nil
}

// Names resolves catalog positions to display names, in the given order.
func (c *Catalog) Names(positions []int) ([]string, error) {
	out := make([]string, len(positions))
	var err error
	for k, p := range positions {
		if out[k], err = c.Name(p); err != nil {
			return nil, err
		}
	}

	return out, nil
}

// Attractions returns a copy of every record in catalog order.
func (c *Catalog) Attractions() []Attraction {
	return append([]Attraction(nil), c.items...)
}
