package dataset

// Error represents an error building or querying a Frame
type Error string

func (e Error) Error() string {
	return string(e)
}

/*
ErrUnknownAttribute is returned when a frame is asked for a column it does
not have.
*/
const ErrUnknownAttribute = Error("unknown attribute")

// ErrMissingValue is returned by a Builder when a row lacks a feature value.
const ErrMissingValue = Error("missing value")
