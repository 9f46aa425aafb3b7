// SPDX-License-Identifier: MIT

// Package report prints the demo tables: the selected attractions, the
// distribution of "number of attractions liked" over the population, and the
// like percentage of each attraction. It is display-only.
package report

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7D56F4"))
	nameStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#6EC4F4"))
)

// Option customizes a Printer.
type Option func(*Printer)

// WithPlain disables styling (stable output for logs and tests).
func WithPlain() Option {
	return func(p *Printer) {
		p.plain = true
	}
}

// WithIndent prefixes attraction names with n spaces.
func WithIndent(n int) Option {
	return func(p *Printer) {
		p.indent = n
	}
}

// Printer writes report sections to w.
type Printer struct {
	w      io.Writer
	plain  bool
	indent int
}

// New returns a Printer writing to w.
func New(w io.Writer, opts ...Option) *Printer {
	p := &Printer{w: w}
	for _, opt := range opts {
		opt(p)
	}

	return p
}

func (p *Printer) render(s lipgloss.Style, text string) string {
	if p.plain {
		return text
	}

	return s.Render(text)
}

// Names prints one attraction name per line followed by a blank line.
func (p *Printer) Names(names []string) error {
	for _, n := range names {
		if _, err := fmt.Fprintf(p.w, "%*s%s\n", p.indent, "", p.render(nameStyle, n)); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(p.w)

	return err
}

// Histogram prints shares[k] (fraction of patrons liking exactly k
// attractions) as percentages.
func (p *Printer) Histogram(shares []float64) error {
	if _, err := fmt.Fprintln(p.w, p.render(titleStyle, "Population like distribution:")); err != nil {
		return err
	}
	for k, share := range shares {
		if _, err := fmt.Fprintf(p.w, "  % 2d likes = %.2f%%\n", k, 100*share); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(p.w)

	return err
}

// Rates prints the like percentage of each named attraction.
// names and rates must be parallel.
func (p *Printer) Rates(names []string, rates []float64) error {
	if len(names) != len(rates) {
		return fmt.Errorf("report: %d names for %d rates", len(names), len(rates))
	}
	if _, err := fmt.Fprintln(p.w, p.render(titleStyle, "Population like percentage per ride:")); err != nil {
		return err
	}
	for j, r := range rates {
		if _, err := fmt.Fprintf(p.w, "  %18s: %.2f%%\n", names[j], 100*r); err != nil {
			return err
		}
	}

	return nil
}
