package feature

import (
	"strconv"
	"strings"
)

/*
Kind identifies the variant held by a Value.
*/
type Kind int

// Value kinds
const (
	BoolKind Kind = iota
	IntKind
	FloatKind
	TextKind
)

func (k Kind) String() string {
	switch k {
	case BoolKind:
		return "bool"
	case IntKind:
		return "int"
	case FloatKind:
		return "float"
	case TextKind:
		return "text"
	}
	return "unknown"
}

/*
ParseKind takes a string and returns the Kind it names or an error
if it names none. Besides the names returned by Kind.String, the
aliases boolean, integer, continuous, string and discrete are accepted.
*/
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "bool", "boolean":
		return BoolKind, nil
	case "int", "integer":
		return IntKind, nil
	case "float", "continuous":
		return FloatKind, nil
	case "text", "string", "discrete":
		return TextKind, nil
	}
	return 0, Error("unknown value kind " + strconv.Quote(s))
}

/*
Value is a cell of a dataset or the operand of a tree edge. It is a closed
sum type: only Bool, Int, Float and Text implement it.

Values are plain comparable data, so they can be compared with == and used
as map keys. Two values of different kinds are never equal.
*/
type Value interface {
	Kind() Kind
	String() string
	value()
}

// Bool is a boolean Value
type Bool bool

// Int is an integer Value
type Int int64

// Float is a floating-point Value
type Float float64

// Text is a string Value
type Text string

func (Bool) Kind() Kind  { return BoolKind }
func (Int) Kind() Kind   { return IntKind }
func (Float) Kind() Kind { return FloatKind }
func (Text) Kind() Kind  { return TextKind }

func (Bool) value()  {}
func (Int) value()   {}
func (Float) value() {}
func (Text) value()  {}

func (b Bool) String() string {
	return strconv.FormatBool(bool(b))
}

func (i Int) String() string {
	return strconv.FormatInt(int64(i), 10)
}

func (f Float) String() string {
	return strconv.FormatFloat(float64(f), 'g', -1, 64)
}

func (t Text) String() string {
	return string(t)
}

/*
Compare takes two values and returns -1, 0 or +1 depending on whether a is
less than, equal to or greater than b. Booleans order false before true,
numbers numerically and texts lexicographically.

Comparing values of different kinds returns ErrKindMismatch.
*/
func Compare(a, b Value) (int, error) {
	if a == nil || b == nil {
		return 0, ErrNilValue
	}
	if a.Kind() != b.Kind() {
		return 0, mismatch(a, b)
	}
	switch a := a.(type) {
	case Bool:
		b := b.(Bool)
		switch {
		case a == b:
			return 0, nil
		case !bool(a):
			return -1, nil
		}
		return 1, nil
	case Int:
		return order(a < b.(Int), a == b.(Int)), nil
	case Float:
		return order(a < b.(Float), a == b.(Float)), nil
	case Text:
		return strings.Compare(string(a), string(b.(Text))), nil
	}
	return 0, mismatch(a, b)
}

/*
SortsBefore reports whether a sorts before b. Values of different kinds sort
by kind, so SortsBefore defines a total order usable for sorting mixed slices.
*/
func SortsBefore(a, b Value) bool {
	if a.Kind() != b.Kind() {
		return a.Kind() < b.Kind()
	}
	c, _ := Compare(a, b)
	return c < 0
}

func order(less, equal bool) int {
	if less {
		return -1
	}
	if equal {
		return 0
	}
	return 1
}
