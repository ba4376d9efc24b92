package feature

import (
	"fmt"

	"github.com/pkg/errors"
)

/*
Feature represents a property that can be observed: a named column of a
dataset with values of a single Kind.

Discrete features are split by equality, one branch per observed value.
Continuous features are split in two at their median.
*/
type Feature interface {
	Name() string
	Kind() Kind
	Discrete() bool
	Valid(Value) error
}

/*
DiscreteFeature represents a property that can be observed and that can only
take a value among a finite set.
*/
type DiscreteFeature struct {
	name            string
	kind            Kind
	availableValues []Value
}

/*
ContinuousFeature represents a property that can be observed and that can take
a numeric value
*/
type ContinuousFeature struct {
	name string
	kind Kind
}

/*
NewDiscreteFeature takes a name string, a value kind and a slice of available
values and returns a discrete feature with them. An empty slice of available
values accepts any value of the given kind.
*/
func NewDiscreteFeature(name string, kind Kind, availableValues []Value) *DiscreteFeature {
	return &DiscreteFeature{name, kind, availableValues}
}

/*
NewContinuousFeature takes a name string and a numeric kind (IntKind or
FloatKind) and returns a continuous feature with them. Any other kind is
replaced by FloatKind.
*/
func NewContinuousFeature(name string, kind Kind) *ContinuousFeature {
	if kind != IntKind && kind != FloatKind {
		kind = FloatKind
	}
	return &ContinuousFeature{name, kind}
}

/*
Name returns a string with the name of the feature
*/
func (df *DiscreteFeature) Name() string {
	return df.name
}

// Kind returns the kind of the values of the feature
func (df *DiscreteFeature) Kind() Kind {
	return df.kind
}

// Discrete returns true
func (df *DiscreteFeature) Discrete() bool {
	return true
}

/*
Valid receives a value and returns an error when the value does not have the
kind of the feature or is not among its available values. It returns nil
otherwise.
*/
func (df *DiscreteFeature) Valid(value Value) error {
	if value == nil {
		return errors.Wrapf(ErrNilValue, "discrete feature %s", df.name)
	}
	if value.Kind() != df.kind {
		return errors.Wrapf(ErrKindMismatch, "discrete feature %s expects %s value, got %s value", df.name, df.kind, value.Kind())
	}
	if len(df.availableValues) == 0 {
		return nil
	}
	for _, av := range df.availableValues {
		if av == value {
			return nil
		}
	}
	return fmt.Errorf("discrete feature %s got unknown value %s", df.name, value)
}

/*
AvailableValues returns a slice with the values available for the feature
*/
func (df *DiscreteFeature) AvailableValues() []Value {
	return df.availableValues
}

func (df *DiscreteFeature) String() string {
	return df.name
}

/*
Name returns a string with the name of the feature
*/
func (cf *ContinuousFeature) Name() string {
	return cf.name
}

// Kind returns the kind of the values of the feature
func (cf *ContinuousFeature) Kind() Kind {
	return cf.kind
}

// Discrete returns false
func (cf *ContinuousFeature) Discrete() bool {
	return false
}

/*
Valid receives a value and returns nil when it has the numeric kind of the
feature, or an error describing why it does not.
*/
func (cf *ContinuousFeature) Valid(value Value) error {
	if value == nil {
		return errors.Wrapf(ErrNilValue, "continuous feature %s", cf.name)
	}
	if value.Kind() != cf.kind {
		return errors.Wrapf(ErrKindMismatch, "continuous feature %s expects %s value, got %s value", cf.name, cf.kind, value.Kind())
	}
	return nil
}

func (cf *ContinuousFeature) String() string {
	return cf.name
}
