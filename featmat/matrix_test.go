package featmat_test

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/fairground/featmat"
)

func TestNewShapes(t *testing.T) {
	m, err := featmat.NewFeatures(0)
	require.NoError(t, err, "zero rows is a valid empty matrix")
	require.Equal(t, 0, m.Rows())
	require.Equal(t, featmat.Width, m.Cols())
	require.Empty(t, m.Data())

	_, err = featmat.New(-1, 3)
	require.True(t, errors.Is(err, featmat.ErrBadShape))
	_, err = featmat.New(2, 0)
	require.True(t, errors.Is(err, featmat.ErrBadShape))
}

func TestAtSetBounds(t *testing.T) {
	m, err := featmat.New(2, 3)
	require.NoError(t, err)

	require.NoError(t, m.Set(1, 2, 4.5))
	v, err := m.At(1, 2)
	require.NoError(t, err)
	require.Equal(t, 4.5, v)

	_, err = m.At(2, 0)
	require.True(t, errors.Is(err, featmat.ErrOutOfRange))
	require.True(t, errors.Is(m.Set(0, -1, 1), featmat.ErrOutOfRange))
	require.True(t, errors.Is(m.Set(0, 0, math.NaN()), featmat.ErrNaNInf))
	require.True(t, errors.Is(m.Set(0, 0, math.Inf(-1)), featmat.ErrNaNInf))
}

func TestRowsAndViews(t *testing.T) {
	m, err := featmat.FromRows(2, [][]float64{{1, 2}, {3, 4}})
	require.NoError(t, err)

	row, err := m.Row(1)
	require.NoError(t, err)
	require.Equal(t, []float64{3, 4}, row)
	row[0] = 99
	v, _ := m.At(1, 0)
	require.Equal(t, 3.0, v, "Row must return a copy")

	view, err := m.RowView(0)
	require.NoError(t, err)
	require.Equal(t, []float64{1, 2}, view)
	require.Equal(t, 2, cap(view), "view capacity is clipped to the row")

	_, err = m.RowView(2)
	require.True(t, errors.Is(err, featmat.ErrOutOfRange))
}

func TestSetRowValidation(t *testing.T) {
	m, err := featmat.New(1, 2)
	require.NoError(t, err)

	require.True(t, errors.Is(m.SetRow(0, []float64{1}), featmat.ErrBadShape))
	require.True(t, errors.Is(m.SetRow(0, []float64{1, math.NaN()}), featmat.ErrNaNInf))
	require.Equal(t, []float64{0, 0}, m.Data(), "failed SetRow leaves the row unchanged")

	_, err = featmat.FromRows(2, [][]float64{{1, 2}, {3}})
	require.True(t, errors.Is(err, featmat.ErrBadShape))
}

func TestCloneAndValidate(t *testing.T) {
	m, err := featmat.FromRows(2, [][]float64{{1, 2}})
	require.NoError(t, err)
	c := m.Clone()
	require.NoError(t, c.Set(0, 0, 7))
	v, _ := m.At(0, 0)
	require.Equal(t, 1.0, v)

	require.NoError(t, m.Validate())
	m.Data()[1] = math.Inf(1)
	require.True(t, errors.Is(m.Validate(), featmat.ErrNaNInf))

	var nilM *featmat.Matrix
	require.True(t, errors.Is(nilM.Validate(), featmat.ErrNilMatrix))
	require.Equal(t, "[7, 2]\n", c.String())
}
