// Package digits contains the padding and masking helpers used to lay out
// numeric fields of payment slip line codes.
package digits

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrOverflow is matched by every *OverflowError.
var ErrOverflow = errors.New("value does not fit in field width")

// OverflowError reports a value that cannot be rendered in the requested width.
// Negative values are reported the same way since they have no printable form.
type OverflowError struct {
	Value int
	Width int
}

func (e *OverflowError) Error() string {
	return fmt.Sprintf("value %d does not fit in %d digits", e.Value, e.Width)
}

func (e *OverflowError) Is(target error) bool {
	return target == ErrOverflow
}

// ZeroPad renders value in decimal, left-padded with '0' to exactly width characters.
// Values that would need more than width digits are rejected instead of truncated.
func ZeroPad(value, width int) (string, error) {
	if value < 0 || width <= 0 {
		return "", &OverflowError{Value: value, Width: width}
	}
	s := strconv.Itoa(value)
	if len(s) > width {
		return "", &OverflowError{Value: value, Width: width}
	}
	return strings.Repeat("0", width-len(s)) + s, nil
}

// Mask writes value into pattern, replacing each '#' with the next character of value.
// Any other pattern character is copied literally. Output stops at the first '#'
// that has no value character left to fill it; extra value characters are dropped.
func Mask(value, pattern string) string {
	var b strings.Builder
	b.Grow(len(pattern))

	next := 0
	for i := 0; i < len(pattern); i++ {
		if pattern[i] != '#' {
			b.WriteByte(pattern[i])
			continue
		}
		if next >= len(value) {
			break
		}
		b.WriteByte(value[next])
		next++
	}
	return b.String()
}

// IsNumeric reports whether s is a non-empty string of ASCII digits.
func IsNumeric(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
