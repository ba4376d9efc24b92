package feature

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

/*
Parse takes a feature and a string and returns the value of the feature's
kind the string represents, or an error if it cannot be parsed or is not
valid for the feature.
*/
func Parse(f Feature, s string) (Value, error) {
	var v Value
	s = strings.TrimSpace(s)
	switch f.Kind() {
	case BoolKind:
		b, err := strconv.ParseBool(s)
		if err != nil {
			return nil, errors.Wrapf(err, "converting %q to bool for feature %s", s, f.Name())
		}
		v = Bool(b)
	case IntKind:
		i, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return nil, errors.Wrapf(err, "converting %q to int for feature %s", s, f.Name())
		}
		v = Int(i)
	case FloatKind:
		fv, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, errors.Wrapf(err, "converting %q to float for feature %s", s, f.Name())
		}
		v = Float(fv)
	default:
		v = Text(s)
	}
	if err := f.Valid(v); err != nil {
		return nil, err
	}
	return v, nil
}

/*
ValueOf takes a feature and a native Go value as obtained from a database
driver or a decoder and returns the Value of the feature's kind it
represents. Strings and byte slices are parsed with Parse; numbers and
booleans are converted when the conversion does not lose information.
*/
func ValueOf(f Feature, raw interface{}) (Value, error) {
	var v Value
	switch r := raw.(type) {
	case nil:
		return nil, errors.Wrapf(ErrNilValue, "feature %s", f.Name())
	case Value:
		v = r
	case string:
		return Parse(f, r)
	case []byte:
		return Parse(f, string(r))
	case bool:
		v = Bool(r)
	case int:
		v = Int(r)
	case int32:
		v = Int(r)
	case int64:
		v = Int(r)
	case float32:
		v = Float(r)
	case float64:
		v = Float(r)
	default:
		return nil, fmt.Errorf("feature %s: unsupported value %v of type %T", f.Name(), raw, raw)
	}
	v = coerce(f.Kind(), v)
	if err := f.Valid(v); err != nil {
		return nil, err
	}
	return v, nil
}

func coerce(k Kind, v Value) Value {
	switch k {
	case FloatKind:
		if i, ok := v.(Int); ok {
			return Float(i)
		}
	case IntKind:
		if fv, ok := v.(Float); ok && fv == Float(math.Trunc(float64(fv))) {
			return Int(fv)
		}
	case TextKind:
		if v.Kind() != TextKind {
			return Text(v.String())
		}
	}
	return v
}
