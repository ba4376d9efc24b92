package feature

import "fmt"

/*
Operator is the comparison that labels a tree edge or a partition of a
column: a sample value v follows the edge when `v Operator operand` holds.
*/
type Operator int

// Comparison operators
const (
	Equal Operator = iota
	Less
	LessEqual
	GreaterEqual
	Greater
)

func (op Operator) String() string {
	switch op {
	case Equal:
		return "="
	case Less:
		return "<"
	case LessEqual:
		return "<="
	case GreaterEqual:
		return ">="
	case Greater:
		return ">"
	}
	return fmt.Sprintf("Operator(%d)", int(op))
}

/*
Evaluate takes a value, an operator and an operand and returns whether
`value op operand` holds. It returns ErrKindMismatch when value and operand
have different kinds.
*/
func Evaluate(value Value, op Operator, operand Value) (bool, error) {
	c, err := Compare(value, operand)
	if err != nil {
		return false, err
	}
	switch op {
	case Equal:
		return c == 0, nil
	case Less:
		return c < 0, nil
	case LessEqual:
		return c <= 0, nil
	case GreaterEqual:
		return c >= 0, nil
	case Greater:
		return c > 0, nil
	}
	return false, fmt.Errorf("unknown operator %v", op)
}
