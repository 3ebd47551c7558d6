package sicoob

import (
	"errors"
	"fmt"
)

var (
	// ErrFieldOverflow is returned when an input value does not fit its printed width.
	ErrFieldOverflow = errors.New("field overflow")
	// ErrMalformedFreeField is returned for free fields too short or not laid out as expected.
	ErrMalformedFreeField = errors.New("malformed free field")
	// ErrChecksumMismatch is returned by Verify when a check digit does not match its payload.
	ErrChecksumMismatch = errors.New("free field checksum mismatch")
)

// FieldError names the agreement field that overflowed its width.
// errors.Is(err, ErrFieldOverflow) holds for every FieldError.
type FieldError struct {
	Field string
	Value int
	Width int
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s %d does not fit in %d digits", ErrFieldOverflow, e.Field, e.Value, e.Width)
}

func (e *FieldError) Unwrap() error {
	return ErrFieldOverflow
}
