package checkdigit

import "errors"

// Package checkdigit holds the check-digit algorithms used by Brazilian bank codes.
// Every institution-specific codec shares these functions instead of carrying its own copy.

var ErrNotDigits = errors.New("check digit input must be a non-empty decimal string")

const (
	minWeight = 2
	maxWeight = 9
)

// Modulo11 returns the weighted modulo-11 check digit of digits.
//
// Weights 2..9 are assigned right to left, restarting at 2 after 9. The sum of
// the products is taken modulo 11; remainders 0 and 1 yield '0', any other
// remainder r yields the digit 11-r.
func Modulo11(digits string) (byte, error) {
	if digits == "" {
		return 0, ErrNotDigits
	}

	sum := 0
	weight := minWeight
	for i := len(digits) - 1; i >= 0; i-- {
		c := digits[i]
		if c < '0' || c > '9' {
			return 0, ErrNotDigits
		}
		sum += int(c-'0') * weight
		if weight == maxWeight {
			weight = minWeight
		} else {
			weight++
		}
	}

	r := sum % 11
	if r < 2 {
		return '0', nil
	}
	return byte('0' + 11 - r), nil
}
