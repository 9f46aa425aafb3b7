// SPDX-License-Identifier: MIT

package preference

import (
	"fmt"
	"math"

	"github.com/katalvlaran/fairground/featmat"
)

// Layout of one assignment vector: patron half first, attraction half second.
const (
	AgentWidth      = featmat.Width
	AttractionWidth = featmat.Width
	Width           = AgentWidth + AttractionWidth
)

// Assignment pairs one patron with one attraction. The flat Width-long
// vector exists only inside a Batch.
type Assignment struct {
	Agent      [AgentWidth]float64
	Attraction [AttractionWidth]float64
}

// Concat builds an Assignment from a patron row and an attraction row.
func Concat(agent, attraction []float64) (Assignment, error) {
	var a Assignment
	if len(agent) != AgentWidth || len(attraction) != AttractionWidth {
		return a, fmt.Errorf("Concat: widths %d+%d, want %d+%d: %w",
			len(agent), len(attraction), AgentWidth, AttractionWidth, ErrInvalidShape)
	}
	copy(a.Agent[:], agent)
	copy(a.Attraction[:], attraction)

	return a, nil
}

// put writes a into dst (len Width).
func (a *Assignment) put(dst []float64) {
	copy(dst[:AgentWidth], a.Agent[:])
	copy(dst[AgentWidth:], a.Attraction[:])
}

// Batch is a flat row-major buffer of assignment vectors with an explicit
// shape. The last axis is always Width; the leading axes are arbitrary (an
// empty leading shape is a single vector).
type Batch struct {
	shape []int
	data  []float64
}

// NewBatch wraps data with shape. data is aliased, not copied.
//
// Errors: ErrInvalidShape for an empty shape, a last axis other than Width,
// a negative dimension, a product that overflows int, or
// len(data) != product(shape).
func NewBatch(shape []int, data []float64) (*Batch, error) {
	if len(shape) == 0 {
		return nil, fmt.Errorf("NewBatch: empty shape: %w", ErrInvalidShape)
	}
	if last := shape[len(shape)-1]; last != Width {
		return nil, fmt.Errorf("NewBatch: last axis %d, want %d: %w", last, Width, ErrInvalidShape)
	}
	size := 1
	for axis, d := range shape {
		if d < 0 {
			return nil, fmt.Errorf("NewBatch: axis %d has size %d: %w", axis, d, ErrInvalidShape)
		}
		if d != 0 && size > math.MaxInt/d {
			return nil, fmt.Errorf("NewBatch: shape %v overflows int: %w", shape, ErrInvalidShape)
		}
		size *= d
	}
	if size != len(data) {
		return nil, fmt.Errorf("NewBatch: shape %v needs %d values, got %d: %w", shape, size, len(data), ErrInvalidShape)
	}

	return &Batch{shape: append([]int(nil), shape...), data: data}, nil
}

// BatchFromAssignments lays assignments out as a [len(as), Width] batch.
func BatchFromAssignments(as []Assignment) *Batch {
	data := make([]float64, len(as)*Width)
	for i := range as {
		as[i].put(data[i*Width : (i+1)*Width])
	}

	return &Batch{shape: []int{len(as), Width}, data: data}
}

// CrossBatch pairs every patron row with one attraction row, producing a
// [agents.Rows(), Width] batch (the attraction half repeated per row).
func CrossBatch(agents *featmat.Matrix, attraction []float64) (*Batch, error) {
	if agents == nil || agents.Cols() != AgentWidth || len(attraction) != AttractionWidth {
		return nil, fmt.Errorf("CrossBatch: %w", ErrInvalidShape)
	}
	n := agents.Rows()
	src := agents.Data()
	data := make([]float64, n*Width)
	var i int
	for i = 0; i < n; i++ {
		row := data[i*Width : (i+1)*Width]
		copy(row[:AgentWidth], src[i*AgentWidth:(i+1)*AgentWidth])
		copy(row[AgentWidth:], attraction)
	}

	return &Batch{shape: []int{n, Width}, data: data}, nil
}

// Shape returns a copy of the full shape (last axis Width).
func (b *Batch) Shape() []int {
	return append([]int(nil), b.shape...)
}

// LeadingShape returns the shape without the last axis: the shape of the
// labels Evaluate produces.
func (b *Batch) LeadingShape() []int {
	return append([]int{}, b.shape[:len(b.shape)-1]...)
}

// Len returns the number of assignment vectors (product of the leading shape).
func (b *Batch) Len() int {
	return len(b.data) / Width
}

// Assignment returns row i (flat index over the leading axes) in its named form.
func (b *Batch) Assignment(i int) (Assignment, error) {
	if i < 0 || i >= b.Len() {
		return Assignment{}, fmt.Errorf("Batch.Assignment(%d): %w", i, featmat.ErrOutOfRange)
	}

	return Concat(b.data[i*Width:i*Width+AgentWidth], b.data[i*Width+AgentWidth:(i+1)*Width])
}

// Labels holds one 0/1 label per assignment with the batch's leading shape.
type Labels struct {
	shape []int
	data  []int
}

// Shape returns a copy of the label shape.
func (l *Labels) Shape() []int {
	return append([]int{}, l.shape...)
}

// Len returns the number of labels.
func (l *Labels) Len() int {
	return len(l.data)
}

// Values returns the labels in row-major order (a copy).
func (l *Labels) Values() []int {
	return append([]int(nil), l.data...)
}

// Sum returns the number of positive labels.
func (l *Labels) Sum() int {
	var s int
	for _, v := range l.data {
		s += v
	}

	return s
}

// At returns the label at a multi-index over the leading shape.
func (l *Labels) At(idx ...int) (int, error) {
	if len(idx) != len(l.shape) {
		return 0, fmt.Errorf("Labels.At%v: rank %d, want %d: %w", idx, len(idx), len(l.shape), featmat.ErrOutOfRange)
	}
	flat := 0
	for axis, k := range idx {
		if k < 0 || k >= l.shape[axis] {
			return 0, fmt.Errorf("Labels.At%v: %w", idx, featmat.ErrOutOfRange)
		}
		flat = flat*l.shape[axis] + k
	}

	return l.data[flat], nil
}
