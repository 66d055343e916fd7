package geo

import (
	"errors"
	"fmt"
)

// ErrEmptyTrace is returned when a trace is created from, or bounds are
// requested for, zero points.
var ErrEmptyTrace = errors.New("geo: trace may not be empty")

// RangeError indicates a value outside its physical domain: latitude,
// longitude, depth, or a non-positive spacing or length target.
type RangeError struct {
	Param string
	Value float64
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("geo: %s out of range: %g", e.Param, e.Value)
}

// FormatError indicates malformed textual coordinate input.
type FormatError struct {
	Input string
	Cause string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("geo: cannot parse %q: %s", e.Input, e.Cause)
}
