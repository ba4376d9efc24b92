package feature

import "github.com/pkg/errors"

// Error represents an error on values and features
type Error string

func (e Error) Error() string {
	return string(e)
}

/*
ErrKindMismatch is returned when two values of different kinds are compared
or a value does not have the kind its feature declares.
*/
const ErrKindMismatch = Error("value kind mismatch")

// ErrNilValue is returned when a nil Value is compared.
const ErrNilValue = Error("nil value")

func mismatch(a, b Value) error {
	return errors.Wrapf(ErrKindMismatch, "comparing %s %q with %s %q", a.Kind(), a.String(), b.Kind(), b.String())
}
