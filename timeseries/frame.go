package timeseries

import (
	"errors"
	"fmt"
	"math"
	"time"
)

// ErrColumnNotFound reports a lookup of a column name the frame does not hold.
var ErrColumnNotFound = errors.New("column not found in frame")

// Frame is an ordered collection of named float64 columns sharing one
// time index. Column order is the order of insertion and is
// significant: consumers reshape frame rows into vectors whose layout
// must match an externally defined ordering.
type Frame struct {
	index   []time.Time
	names   []string
	columns map[string][]float64
}

// NewFrame creates an empty frame over the given time index.
func NewFrame(index []time.Time) *Frame {
	idx := make([]time.Time, len(index))
	copy(idx, index)
	return &Frame{
		index:   idx,
		names:   []string{},
		columns: make(map[string][]float64),
	}
}

// FrameOf creates a frame from one or more series sharing the same index.
// The first series provides the index; the rest must match its length.
func FrameOf(series ...*Series) (*Frame, error) {
	if len(series) == 0 {
		return nil, errors.New("at least one series is required")
	}
	f := NewFrame(series[0].Timestamps)
	for _, s := range series {
		if err := f.AddColumn(s.Name, s.Values); err != nil {
			return nil, err
		}
	}
	return f, nil
}

// Len returns the number of rows in the frame.
func (f *Frame) Len() int {
	return len(f.index)
}

// Index returns a copy of the frame's time index.
func (f *Frame) Index() []time.Time {
	idx := make([]time.Time, len(f.index))
	copy(idx, f.index)
	return idx
}

// Columns returns the ordered column names.
func (f *Frame) Columns() []string {
	names := make([]string, len(f.names))
	copy(names, f.names)
	return names
}

// AddColumn appends a named column. The column length must match the
// frame's index length and the name must be unused.
func (f *Frame) AddColumn(name string, values []float64) error {
	if len(values) != len(f.index) {
		return fmt.Errorf("column %q has length %d, but frame index has length %d: %w",
			name, len(values), len(f.index), ErrLengthMismatch)
	}
	if _, exists := f.columns[name]; exists {
		return fmt.Errorf("column %q already present in frame", name)
	}
	col := make([]float64, len(values))
	copy(col, values)
	f.names = append(f.names, name)
	f.columns[name] = col
	return nil
}

// Column returns the named column as a series on the frame's index.
func (f *Frame) Column(name string) (*Series, error) {
	col, ok := f.columns[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrColumnNotFound, name)
	}
	values := make([]float64, len(col))
	copy(values, col)
	s, err := NewWithTimestamps(f.Index(), values)
	if err != nil {
		return nil, err
	}
	s.Name = name
	return s, nil
}

// Join inner-joins two frames on their time index. Only timestamps
// present in both frames survive, in the receiver's order; the result
// holds the receiver's columns followed by the other frame's columns.
func (f *Frame) Join(other *Frame) (*Frame, error) {
	lookup := make(map[int64]int, len(other.index))
	for i, ts := range other.index {
		lookup[ts.UnixNano()] = i
	}

	var index []time.Time
	var leftRows, rightRows []int
	for i, ts := range f.index {
		j, ok := lookup[ts.UnixNano()]
		if !ok {
			continue
		}
		index = append(index, ts)
		leftRows = append(leftRows, i)
		rightRows = append(rightRows, j)
	}

	joined := NewFrame(index)
	for _, name := range f.names {
		src := f.columns[name]
		col := make([]float64, len(leftRows))
		for k, i := range leftRows {
			col[k] = src[i]
		}
		if err := joined.AddColumn(name, col); err != nil {
			return nil, err
		}
	}
	for _, name := range other.names {
		src := other.columns[name]
		col := make([]float64, len(rightRows))
		for k, j := range rightRows {
			col[k] = src[j]
		}
		if err := joined.AddColumn(name, col); err != nil {
			return nil, err
		}
	}
	return joined, nil
}

// DropNA returns a frame without any row containing a NaN entry.
// Lagged columns carry NaN padding for their first rows, so dropping
// incomplete rows trims the earliest part of the index.
func (f *Frame) DropNA() *Frame {
	keep := make([]int, 0, len(f.index))
	for i := range f.index {
		complete := true
		for _, name := range f.names {
			if math.IsNaN(f.columns[name][i]) {
				complete = false
				break
			}
		}
		if complete {
			keep = append(keep, i)
		}
	}

	index := make([]time.Time, len(keep))
	for k, i := range keep {
		index[k] = f.index[i]
	}
	trimmed := NewFrame(index)
	for _, name := range f.names {
		src := f.columns[name]
		col := make([]float64, len(keep))
		for k, i := range keep {
			col[k] = src[i]
		}
		// AddColumn cannot fail here: lengths and names are consistent.
		trimmed.AddColumn(name, col)
	}
	return trimmed
}

// Values returns the frame contents as row-major [row][column] slices,
// columns in frame order.
func (f *Frame) Values() [][]float64 {
	rows := make([][]float64, len(f.index))
	for i := range rows {
		row := make([]float64, len(f.names))
		for j, name := range f.names {
			row[j] = f.columns[name][i]
		}
		rows[i] = row
	}
	return rows
}

// LagFrame builds a frame of k lagged copies of a series, lag 1..k,
// with columns named prefix1..prefixk (for example "ar.L1".."ar.Lp").
// Each lag column carries NaN padding in its first rows.
func LagFrame(s *Series, k int, prefix string) *Frame {
	f := NewFrame(s.Timestamps)
	for lag := 1; lag <= k; lag++ {
		lagged := s.LagN(lag)
		// AddColumn cannot fail: lagged preserves the index length.
		f.AddColumn(fmt.Sprintf("%s%d", prefix, lag), lagged.Values)
	}
	return f
}
