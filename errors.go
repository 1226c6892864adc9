package sift

import (
	"errors"
	"fmt"
)

// ErrNullValue is matched by errors.Is for every failed extraction from a
// null wrapper.
var ErrNullValue = errors.New("null value")

// ErrLengthMismatch reports Zip or DictZip inputs of unequal length.
var ErrLengthMismatch = errors.New("length mismatch")

// NullValueError is returned when extracting a value from a null wrapper,
// or when an assertion (NonNull, Require) fails.
type NullValueError struct {
	Msg   string
	Cause error
}

func (e *NullValueError) Error() string {
	msg := e.Msg
	if msg == "" {
		msg = "null value"
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	return msg
}

// Is makes errors.Is(err, ErrNullValue) match any NullValueError.
func (e *NullValueError) Is(target error) bool { return target == ErrNullValue }

// Unwrap exposes the failure that produced the null, if any.
func (e *NullValueError) Unwrap() error { return e.Cause }
