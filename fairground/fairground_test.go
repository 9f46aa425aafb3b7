package fairground_test

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/fairground/catalog"
	"github.com/katalvlaran/fairground/fairground"
	"github.com/katalvlaran/fairground/featmat"
	"github.com/katalvlaran/fairground/rng"
)

// vec builds a recognisable feature vector: every component equals id.
func vec(id float64) [featmat.Width]float64 {
	var v [featmat.Width]float64
	for i := range v {
		v[i] = id
	}
	return v
}

// sliceLookup is a minimal in-memory Lookup.
type sliceLookup struct {
	rows [][featmat.Width]float64
	err  error
}

func (s sliceLookup) Len() int { return len(s.rows) }

func (s sliceLookup) Features(i int) ([featmat.Width]float64, error) {
	if s.err != nil {
		return [featmat.Width]float64{}, s.err
	}
	return s.rows[i], nil
}

func lookupOf(n int) sliceLookup {
	rows := make([][featmat.Width]float64, n)
	for i := range rows {
		rows[i] = vec(float64(i))
	}
	return sliceLookup{rows: rows}
}

// TestSampleGoldenSeed42 pins the reproducible 2-of-4 subset for seed 42.
func TestSampleGoldenSeed42(t *testing.T) {
	c, err := catalog.New(
		catalog.Attraction{Name: "Big Wheel", Features: vec(0)},
		catalog.Attraction{Name: "Carousel", Features: vec(1)},
		catalog.Attraction{Name: "Dodgems", Features: vec(2)},
		catalog.Attraction{Name: "Ghost Train", Features: vec(3)},
	)
	require.NoError(t, err)

	fg, err := fairground.Sample(c, rng.New(42))
	require.NoError(t, err)
	require.Equal(t, fairground.IndexSet{1, 3}, fg.Indices)
	require.Equal(t, 2, fg.Features.Rows())

	row0, _ := fg.Features.Row(0)
	row1, _ := fg.Features.Row(1)
	v1, v3 := vec(1), vec(3)
	require.Equal(t, v1[:], row0)
	require.Equal(t, v3[:], row1)

	names, err := fg.Names(c)
	require.NoError(t, err)
	require.Equal(t, []string{"Carousel", "Ghost Train"}, names)
}

// TestSampleKeepsPermutationOrder: the prefix is not re-sorted.
func TestSampleKeepsPermutationOrder(t *testing.T) {
	fg, err := fairground.Sample(lookupOf(10), rng.New(42))
	require.NoError(t, err)
	require.Equal(t, fairground.IndexSet{8, 3, 6, 5, 4}, fg.Indices)
}

func TestSampleFullSet(t *testing.T) {
	fg, err := fairground.Sample(lookupOf(5), nil, fairground.WithFullSet())
	require.NoError(t, err, "full set never needs a random source")
	require.Equal(t, fairground.IndexSet{0, 1, 2, 3, 4}, fg.Indices)
	require.Equal(t, 5, fg.Features.Rows())
	for i := 0; i < 5; i++ {
		v, _ := fg.Features.At(i, 9)
		require.Equal(t, float64(i), v)
	}

	// No entropy consumed.
	src := rng.New(8)
	_, err = fairground.Sample(lookupOf(5), src, fairground.WithFullSetIf(true))
	require.NoError(t, err)
	require.Equal(t, rng.New(8).Uint64(), src.Uint64())
}

func TestSampleShapeInvariant(t *testing.T) {
	for n := 0; n < 30; n++ {
		for seed := uint64(1); seed < 6; seed++ {
			fg, err := fairground.Sample(lookupOf(n), rng.New(seed))
			require.NoError(t, err)
			require.Equal(t, n/2, fg.Len())
			require.Equal(t, n/2, fg.Features.Rows())

			seen := make(map[int]bool)
			for row, idx := range fg.Indices {
				require.False(t, seen[idx], "duplicate index %d", idx)
				require.True(t, idx >= 0 && idx < n)
				seen[idx] = true
				v, _ := fg.Features.At(row, 0)
				require.Equal(t, float64(idx), v, "row %d must copy catalog position %d", row, idx)
			}
		}
	}
}

func TestSampleDeterminism(t *testing.T) {
	a, err := fairground.Sample(lookupOf(17), rng.New(123))
	require.NoError(t, err)
	b, err := fairground.Sample(lookupOf(17), rng.New(123))
	require.NoError(t, err)
	require.Equal(t, a.Indices, b.Indices)
	require.Equal(t, a.Features.Data(), b.Features.Data())
}

func TestSampleEmpty(t *testing.T) {
	fg, err := fairground.Sample(lookupOf(0), rng.New(1))
	require.NoError(t, err, "empty result is valid by default")
	require.Equal(t, 0, fg.Len())
	require.Equal(t, 0, fg.Features.Rows())

	fg, err = fairground.Sample(lookupOf(1), rng.New(1))
	require.NoError(t, err)
	require.Equal(t, 0, fg.Len())

	_, err = fairground.Sample(lookupOf(0), rng.New(1), fairground.WithRequireNonEmpty())
	require.True(t, errors.Is(err, fairground.ErrInvalidCatalog))

	_, err = fairground.Sample(lookupOf(1), rng.New(1), fairground.WithRequireNonEmpty())
	require.True(t, errors.Is(err, fairground.ErrInvalidCatalog))

	// Fewer than two attractions need no draws, so no source either.
	for _, n := range []int{0, 1} {
		fg, err = fairground.Sample(lookupOf(n), nil)
		require.NoError(t, err, "n=%d", n)
		require.Equal(t, 0, fg.Len())
	}
	_, err = fairground.Sample(lookupOf(1), nil, fairground.WithRequireNonEmpty())
	require.True(t, errors.Is(err, fairground.ErrInvalidCatalog))

	fg, err = fairground.Sample(lookupOf(1), nil, fairground.WithFullSet(), fairground.WithRequireNonEmpty())
	require.NoError(t, err)
	require.Equal(t, 1, fg.Len())
}

func TestSampleErrors(t *testing.T) {
	_, err := fairground.Sample(nil, rng.New(1))
	require.True(t, errors.Is(err, fairground.ErrInvalidCatalog))

	var missing *catalog.Catalog
	_, err = fairground.Sample(missing, rng.New(1))
	require.True(t, errors.Is(err, fairground.ErrInvalidCatalog), "typed nil catalog: %v", err)

	_, err = fairground.Sample(lookupOf(4), nil)
	require.True(t, errors.Is(err, rng.ErrNeedRandSource))

	boom := errors.New("boom")
	l := lookupOf(4)
	l.err = boom
	_, err = fairground.Sample(l, nil, fairground.WithFullSet())
	require.True(t, errors.Is(err, boom))

	l = lookupOf(2)
	l.rows[1][3] = math.NaN()
	_, err = fairground.Sample(l, nil, fairground.WithFullSet())
	require.True(t, errors.Is(err, featmat.ErrNaNInf))
}
