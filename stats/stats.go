// SPDX-License-Identifier: MIT
// Package stats cross-products a patron population against the attractions of
// a fairground and tabulates who likes what.
//
// Random discipline:
//   - Before any evaluation, one substream per attraction is derived from the
//     caller's source, in attraction order (rng.Derive(src, j)).
//   - Attraction j draws its noise from substream j only.
//   - Consequently the Summary is identical for every worker count.
package stats

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/katalvlaran/fairground/featmat"
	"github.com/katalvlaran/fairground/preference"
	"github.com/katalvlaran/fairground/rng"
)

var (
	// ErrWidthMismatch indicates a nil matrix or one that is not featmat.Width wide.
	ErrWidthMismatch = errors.New("stats: feature width mismatch")

	// ErrOutOfRange indicates a patron or attraction index outside the summary.
	ErrOutOfRange = errors.New("stats: index out of range")
)

// Summary holds the like tables of one run.
type Summary struct {
	agentLikes      []int // per patron: number of attractions liked
	attractionLikes []int // per attraction: number of patrons who liked it
}

// Aggregate evaluates every (patron, attraction) pair and returns the tables.
// ctx is checked between attractions; cancellation returns ctx.Err().
//
// Errors:
//   - ErrWidthMismatch for nil or mis-shaped inputs.
//   - evaluation errors wrapped with the attraction row.
//
// Complexity: O(P·A) time, O(P·A) label memory before reduction.
func Aggregate(ctx context.Context, population, attractions *featmat.Matrix, src rng.Source, opts ...Option) (*Summary, error) {
	if population == nil || attractions == nil {
		return nil, fmt.Errorf("Aggregate: nil matrix: %w", ErrWidthMismatch)
	}
	if population.Cols() != featmat.Width || attractions.Cols() != featmat.Width {
		return nil, fmt.Errorf("Aggregate: widths %d/%d, want %d: %w",
			population.Cols(), attractions.Cols(), featmat.Width, ErrWidthMismatch)
	}
	cfg := newConfig(opts...)

	nAttr := attractions.Rows()
	streams := make([]rng.Source, nAttr)
	if src != nil {
		for j := range streams {
			streams[j] = rng.Derive(src, uint64(j))
		}
	}

	labels := make([][]int, nAttr)
	if err := runAttractions(ctx, cfg.workers, nAttr, func(j int) error {
		row, err := attractions.RowView(j)
		if err != nil {
			return err
		}
		batch, err := preference.CrossBatch(population, row)
		if err != nil {
			return err
		}
		out, err := preference.Evaluate(batch, streams[j], cfg.evalOpts...)
		if err != nil {
			return fmt.Errorf("Aggregate: attraction %d: %w", j, err)
		}
		labels[j] = out.Values()
		return nil
	}); err != nil {
		return nil, err
	}

	s := &Summary{
		agentLikes:      make([]int, population.Rows()),
		attractionLikes: make([]int, nAttr),
	}
	for j, ls := range labels {
		for i, v := range ls {
			s.agentLikes[i] += v
			s.attractionLikes[j] += v
		}
	}

	return s, nil
}

// runAttractions calls fn for 0..n-1 on up to workers goroutines and returns
// the first error. Remaining work is skipped once an error or cancellation
// is observed.
func runAttractions(ctx context.Context, workers, n int, fn func(j int) error) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var (
		once     sync.Once
		firstErr error
		wg       sync.WaitGroup
	)
	fail := func(err error) {
		once.Do(func() {
			firstErr = err
			cancel()
		})
	}

	jobs := make(chan int)
	if workers > n {
		workers = n
	}
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range jobs {
				if err := fn(j); err != nil {
					fail(err)
				}
			}
		}()
	}

feed:
	for j := 0; j < n; j++ {
		select {
		case <-ctx.Done():
			break feed
		case jobs <- j:
		}
	}
	close(jobs)
	wg.Wait()

	if firstErr != nil {
		return firstErr
	}

	return ctx.Err()
}

// Population returns the number of patrons.
func (s *Summary) Population() int {
	return len(s.agentLikes)
}

// Attractions returns the number of attractions.
func (s *Summary) Attractions() int {
	return len(s.attractionLikes)
}

// AgentLikes returns how many attractions patron i likes.
func (s *Summary) AgentLikes(i int) (int, error) {
	if i < 0 || i >= len(s.agentLikes) {
		return 0, fmt.Errorf("AgentLikes(%d): %w", i, ErrOutOfRange)
	}

	return s.agentLikes[i], nil
}

// AttractionLikes returns how many patrons like attraction j.
func (s *Summary) AttractionLikes(j int) (int, error) {
	if j < 0 || j >= len(s.attractionLikes) {
		return 0, fmt.Errorf("AttractionLikes(%d): %w", j, ErrOutOfRange)
	}

	return s.attractionLikes[j], nil
}

// LikeRate returns the fraction of patrons who like attraction j
// (0 for an empty population).
func (s *Summary) LikeRate(j int) (float64, error) {
	n, err := s.AttractionLikes(j)
	if err != nil || len(s.agentLikes) == 0 {
		return 0, err
	}

	return float64(n) / float64(len(s.agentLikes)), nil
}

// LikeRates returns LikeRate for every attraction, in row order.
func (s *Summary) LikeRates() []float64 {
	out := make([]float64, len(s.attractionLikes))
	for j := range out {
		out[j], _ = s.LikeRate(j)
	}

	return out
}

// LikeHistogram counts patrons by number of attractions liked: entry k is
// the number of patrons who like exactly k attractions. Its length is
// max(likes)+1, or 0 for an empty population.
func (s *Summary) LikeHistogram() []int {
	maxLikes := -1
	for _, v := range s.agentLikes {
		if v > maxLikes {
			maxLikes = v
		}
	}
	hist := make([]int, maxLikes+1)
	for _, v := range s.agentLikes {
		hist[v]++
	}

	return hist
}

// HistogramShares is LikeHistogram divided by the population size.
func (s *Summary) HistogramShares() []float64 {
	hist := s.LikeHistogram()
	out := make([]float64, len(hist))
	for k, c := range hist {
		out[k] = float64(c) / float64(len(s.agentLikes))
	}

	return out
}
