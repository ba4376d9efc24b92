package dataset

import (
	"fmt"

	"github.com/ergocortex/MLAssistant/feature"
	"github.com/pkg/errors"
)

/*
Builder accumulates rows of values for a list of features and turns them into
a Frame. The class feature is always placed last.
*/
type Builder struct {
	features []feature.Feature
	values   [][]feature.Value
}

/*
NewBuilder takes a slice of features and the name of the class feature among
them and returns a Builder for frames with those features, with the class one
moved to the last position. An error is returned if no feature has the class
name.
*/
func NewBuilder(features []feature.Feature, class string) (*Builder, error) {
	ordered := make([]feature.Feature, 0, len(features))
	var classFeature feature.Feature
	for _, f := range features {
		if f.Name() == class {
			classFeature = f
			continue
		}
		ordered = append(ordered, f)
	}
	if classFeature == nil {
		return nil, errors.Wrapf(ErrUnknownAttribute, "class feature %s", class)
	}
	ordered = append(ordered, classFeature)
	return &Builder{ordered, make([][]feature.Value, len(ordered))}, nil
}

// Features returns the features of the frames built, class last
func (b *Builder) Features() []feature.Feature {
	return b.features
}

/*
Add takes a map of feature names to raw values, as read from a CSV record, a
database row or a document, converts them with feature.ValueOf and appends
them as a new row. Names not matching any feature are ignored. An error is
returned and no row is added if a feature has no value or its value cannot be
converted.
*/
func (b *Builder) Add(raw map[string]interface{}) error {
	row := make([]feature.Value, len(b.features))
	for i, f := range b.features {
		r, ok := raw[f.Name()]
		if !ok {
			return errors.Wrapf(ErrMissingValue, "feature %s", f.Name())
		}
		v, err := feature.ValueOf(f, r)
		if err != nil {
			return err
		}
		row[i] = v
	}
	for i, v := range row {
		b.values[i] = append(b.values[i], v)
	}
	return nil
}

// Len returns the number of rows added so far
func (b *Builder) Len() int {
	return len(b.values[0])
}

// Frame returns a frame with the rows added so far
func (b *Builder) Frame() (*Frame, error) {
	columns := make([]Column, 0, len(b.features))
	for i, f := range b.features {
		c, err := NewColumn(f, b.values[i])
		if err != nil {
			return nil, fmt.Errorf("building frame: %v", err)
		}
		columns = append(columns, c)
	}
	return NewFrame(columns...)
}
