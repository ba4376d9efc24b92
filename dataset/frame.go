package dataset

import (
	"fmt"

	"github.com/ergocortex/MLAssistant/feature"
	"github.com/pkg/errors"
)

/*
Frame is a table of columns of equal size. Its last column is the class: the
column whose values trees learn to predict from the rest, the attributes.
*/
type Frame struct {
	columns []Column
	index   map[string]int
}

/*
NewFrame takes a list of columns and returns a frame holding them in the same
order, or an error if there are no columns, their sizes differ or their names
are not unique.
*/
func NewFrame(columns ...Column) (*Frame, error) {
	if len(columns) == 0 {
		return nil, fmt.Errorf("building frame: no columns")
	}
	index := make(map[string]int, len(columns))
	for i, c := range columns {
		if c.Size() != columns[0].Size() {
			return nil, fmt.Errorf("building frame: column %s has %d rows, column %s has %d", c.Name(), c.Size(), columns[0].Name(), columns[0].Size())
		}
		if _, ok := index[c.Name()]; ok {
			return nil, fmt.Errorf("building frame: duplicate column %s", c.Name())
		}
		index[c.Name()] = i
	}
	return &Frame{columns, index}, nil
}

// Columns returns the columns of the frame in order
func (f *Frame) Columns() []Column {
	return f.columns
}

// Column returns the i-th column of the frame
func (f *Frame) Column(i int) Column {
	return f.columns[i]
}

/*
ColumnIndexByName returns the position of the column with the given name or
ErrUnknownAttribute if the frame has none.
*/
func (f *Frame) ColumnIndexByName(name string) (int, error) {
	i, ok := f.index[name]
	if !ok {
		return -1, errors.Wrapf(ErrUnknownAttribute, "column %s", name)
	}
	return i, nil
}

// ColumnByName returns the column with the given name or ErrUnknownAttribute
func (f *Frame) ColumnByName(name string) (Column, error) {
	i, err := f.ColumnIndexByName(name)
	if err != nil {
		return nil, err
	}
	return f.columns[i], nil
}

// Class returns the last column of the frame
func (f *Frame) Class() Column {
	return f.columns[len(f.columns)-1]
}

// Attributes returns the names of every column but the class, in order
func (f *Frame) Attributes() []string {
	names := make([]string, 0, len(f.columns)-1)
	for _, c := range f.columns[:len(f.columns)-1] {
		names = append(names, c.Name())
	}
	return names
}

// Features returns the features of the columns of the frame, in order
func (f *Frame) Features() []feature.Feature {
	features := make([]feature.Feature, 0, len(f.columns))
	for _, c := range f.columns {
		features = append(features, c.Feature())
	}
	return features
}

// RowCount returns the number of rows in the frame
func (f *Frame) RowCount() int {
	return f.columns[0].Size()
}

/*
SubFrame takes a slice of row indexes and returns a new frame with the same
columns holding only those rows, in the given order.
*/
func (f *Frame) SubFrame(rows []int) *Frame {
	columns := make([]Column, 0, len(f.columns))
	for _, c := range f.columns {
		columns = append(columns, c.subset(rows))
	}
	return &Frame{columns, f.index}
}

// Row returns the i-th row of the frame as a feature.Sample
func (f *Frame) Row(i int) feature.Sample {
	return frameRow{f, i}
}

type frameRow struct {
	frame *Frame
	row   int
}

func (r frameRow) ValueFor(attribute string) (feature.Value, bool) {
	i, ok := r.frame.index[attribute]
	if !ok {
		return nil, false
	}
	return r.frame.columns[i].Cell(r.row), true
}

func (r frameRow) String() string {
	values := make(map[string]string, len(r.frame.columns))
	for _, c := range r.frame.columns {
		values[c.Name()] = c.Cell(r.row).String()
	}
	return fmt.Sprintf("%v", values)
}
