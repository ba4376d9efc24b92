package feature

import (
	"fmt"

	"github.com/pkg/errors"
)

/*
Sample is an interface for something that can satisfy a Criterion.

Its ValueFor method returns the value corresponding to the attribute name
passed as parameter and whether the sample defines one.
*/
type Sample interface {
	ValueFor(attribute string) (Value, bool)
}

/*
Row is a Sample backed by a map of attribute names to values.
*/
type Row map[string]Value

// ValueFor returns the value in the row for the given attribute
func (r Row) ValueFor(attribute string) (Value, bool) {
	v, ok := r[attribute]
	return v, ok
}

/*
Criterion represents a constraint on an attribute: a sample satisfies it when
its value v for the attribute makes `v Operator Value` true.
*/
type Criterion struct {
	Attribute string
	Operator  Operator
	Value     Value
}

/*
ErrUndefinedAttribute is returned by Criterion.SatisfiedBy when the sample
does not define a value for the criterion attribute.
*/
const ErrUndefinedAttribute = Error("sample does not define attribute")

/*
SatisfiedBy receives a sample as parameter and returns a boolean indicating if
the sample satisfies the criterion. It returns ErrUndefinedAttribute if the
sample has no value for the attribute and ErrKindMismatch if the value kind
differs from the criterion's.
*/
func (c Criterion) SatisfiedBy(s Sample) (bool, error) {
	v, ok := s.ValueFor(c.Attribute)
	if !ok {
		return false, errors.Wrapf(ErrUndefinedAttribute, "attribute %s", c.Attribute)
	}
	return Evaluate(v, c.Operator, c.Value)
}

func (c Criterion) String() string {
	return fmt.Sprintf("%s %v %v", c.Attribute, c.Operator, c.Value)
}
