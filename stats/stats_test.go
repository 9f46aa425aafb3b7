package stats_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/katalvlaran/fairground/featmat"
	"github.com/katalvlaran/fairground/patron"
	"github.com/katalvlaran/fairground/preference"
	"github.com/katalvlaran/fairground/rng"
	"github.com/katalvlaran/fairground/stats"
)

// AggregateSuite groups tests for Aggregate.
type AggregateSuite struct {
	suite.Suite
	ctx context.Context
}

func (s *AggregateSuite) SetupTest() {
	s.ctx = context.Background()
}

// rides draws n attraction rows with components in [0,1].
func (s *AggregateSuite) rides(n int, seed uint64) *featmat.Matrix {
	src := rng.New(seed)
	m, err := featmat.NewFeatures(n)
	s.Require().NoError(err)
	for k := range m.Data() {
		m.Data()[k] = src.Beta(2, 2)
	}
	return m
}

// TestNoiselessTables: a carefree and a very picky patron against 3 blank rides.
func (s *AggregateSuite) TestNoiselessTables() {
	pop, err := featmat.NewFeatures(2)
	s.Require().NoError(err)
	s.Require().NoError(pop.Set(1, preference.Pickiness, 3))
	rides, err := featmat.NewFeatures(3)
	s.Require().NoError(err)

	sum, err := stats.Aggregate(s.ctx, pop, rides, nil,
		stats.WithEvaluatorOptions(preference.WithoutNoise()))
	s.Require().NoError(err)

	s.Require().Equal(2, sum.Population())
	s.Require().Equal(3, sum.Attractions())
	s.Require().Equal([]int{1, 0, 0, 1}, sum.LikeHistogram())
	s.Require().Equal([]float64{0.5, 0, 0, 0.5}, sum.HistogramShares())
	s.Require().Equal([]float64{0.5, 0.5, 0.5}, sum.LikeRates())

	likes, err := sum.AgentLikes(0)
	s.Require().NoError(err)
	s.Require().Equal(3, likes)
	likes, err = sum.AttractionLikes(2)
	s.Require().NoError(err)
	s.Require().Equal(1, likes)

	_, err = sum.AgentLikes(2)
	s.Require().True(errors.Is(err, stats.ErrOutOfRange))
	_, err = sum.LikeRate(-1)
	s.Require().True(errors.Is(err, stats.ErrOutOfRange))
}

// TestWorkerCountInvariance: substreams make results independent of parallelism.
func (s *AggregateSuite) TestWorkerCountInvariance() {
	pop, err := patron.Generate(500, rng.New(1))
	s.Require().NoError(err)
	rides := s.rides(7, 2)

	one, err := stats.Aggregate(s.ctx, pop, rides, rng.New(3), stats.WithWorkers(1))
	s.Require().NoError(err)
	many, err := stats.Aggregate(s.ctx, pop, rides, rng.New(3), stats.WithWorkers(4))
	s.Require().NoError(err)
	over, err := stats.Aggregate(s.ctx, pop, rides, rng.New(3), stats.WithWorkers(64))
	s.Require().NoError(err)

	s.Require().Equal(one.LikeHistogram(), many.LikeHistogram())
	s.Require().Equal(one.LikeRates(), many.LikeRates())
	s.Require().Equal(one.LikeRates(), over.LikeRates())
}

func (s *AggregateSuite) TestHistogramSumsToPopulation() {
	pop, err := patron.Generate(300, rng.New(10))
	s.Require().NoError(err)
	rides := s.rides(5, 11)

	sum, err := stats.Aggregate(s.ctx, pop, rides, rng.New(12), stats.WithWorkers(2))
	s.Require().NoError(err)

	var total, weighted, liked int
	for k, c := range sum.LikeHistogram() {
		total += c
		weighted += k * c
	}
	for j := 0; j < sum.Attractions(); j++ {
		n, _ := sum.AttractionLikes(j)
		liked += n
	}
	s.Require().Equal(300, total)
	s.Require().Equal(liked, weighted, "both tables count the same labels")
	s.Require().LessOrEqual(len(sum.LikeHistogram()), 6)
}

func (s *AggregateSuite) TestEmptyInputs() {
	pop, err := featmat.NewFeatures(0)
	s.Require().NoError(err)
	rides := s.rides(2, 1)

	sum, err := stats.Aggregate(s.ctx, pop, rides, rng.New(1))
	s.Require().NoError(err)
	s.Require().Empty(sum.LikeHistogram())
	s.Require().Equal([]float64{0, 0}, sum.LikeRates())

	noRides, err := featmat.NewFeatures(0)
	s.Require().NoError(err)
	sum, err = stats.Aggregate(s.ctx, rides, noRides, rng.New(1), stats.WithWorkers(3))
	s.Require().NoError(err)
	s.Require().Equal([]int{2}, sum.LikeHistogram(), "everyone likes zero attractions")
}

func (s *AggregateSuite) TestErrors() {
	rides := s.rides(2, 1)
	wide, err := featmat.New(2, 11)
	s.Require().NoError(err)

	_, err = stats.Aggregate(s.ctx, nil, rides, rng.New(1))
	s.Require().True(errors.Is(err, stats.ErrWidthMismatch))
	_, err = stats.Aggregate(s.ctx, wide, rides, rng.New(1))
	s.Require().True(errors.Is(err, stats.ErrWidthMismatch))

	_, err = stats.Aggregate(s.ctx, rides, rides, nil)
	s.Require().True(errors.Is(err, rng.ErrNeedRandSource))

	bad := rides.Clone()
	s.Require().NoError(bad.Set(1, 6, -0.5)) // attraction a[16] < 0
	_, err = stats.Aggregate(s.ctx, rides, bad, rng.New(1), stats.WithWorkers(2))
	s.Require().True(errors.Is(err, preference.ErrNumericDomain))
	s.Require().Contains(err.Error(), "attraction 1")

	s.Require().Panics(func() { stats.WithWorkers(0) })
}

func (s *AggregateSuite) TestCancelled() {
	ctx, cancel := context.WithCancel(s.ctx)
	cancel()
	rides := s.rides(4, 1)
	_, err := stats.Aggregate(ctx, rides, rides, rng.New(1))
	s.Require().True(errors.Is(err, context.Canceled))
}

func TestAggregateSuite(t *testing.T) {
	suite.Run(t, new(AggregateSuite))
}
