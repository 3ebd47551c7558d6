package sicoob

import (
	"fmt"
	"strings"

	"sicoobslip/internal/checkdigit"
	"sicoobslip/internal/digits"
)

const (
	// SequenceWidth is the printed width of the document sequence number.
	SequenceWidth = 7
	// IdentifierWidth is the width of the sequence plus its check digit.
	IdentifierWidth = SequenceWidth + 1

	identifierMask = "#######-#"
)

// DocumentIdentifier is the "nosso número": the document sequence zero-padded
// to seven digits plus its modulo-11 check digit.
type DocumentIdentifier struct {
	Sequence   string `json:"sequence"`
	CheckDigit string `json:"check_digit"`
}

// GenerateIdentifier derives the document identifier for a sequence number.
// The result depends only on sequence.
func GenerateIdentifier(sequence int) (DocumentIdentifier, error) {
	seq, err := padField("sequence", sequence, SequenceWidth)
	if err != nil {
		return DocumentIdentifier{}, err
	}
	dv, err := checkdigit.Modulo11(seq)
	if err != nil {
		return DocumentIdentifier{}, fmt.Errorf("identifier check digit: %w", err)
	}
	return DocumentIdentifier{Sequence: seq, CheckDigit: string(dv)}, nil
}

// String returns the 8-character identifier as it appears inside the free field.
func (d DocumentIdentifier) String() string {
	return d.Sequence + d.CheckDigit
}

// Display returns the identifier with a separator before the check digit, e.g. "0000777-3".
// It is meant for the printed slip only and is never accepted as codec input.
func (d DocumentIdentifier) Display() string {
	return digits.Mask(d.String(), identifierMask)
}

// normalize re-pads the sequence to its full width and checks both parts are digits.
func (d DocumentIdentifier) normalize() (DocumentIdentifier, error) {
	if !digits.IsNumeric(d.Sequence) || len(d.Sequence) > SequenceWidth {
		return DocumentIdentifier{}, fmt.Errorf("%w: identifier sequence %q is not a number of at most %d digits",
			ErrFieldOverflow, d.Sequence, SequenceWidth)
	}
	if len(d.CheckDigit) != 1 || !digits.IsNumeric(d.CheckDigit) {
		return DocumentIdentifier{}, fmt.Errorf("%w: identifier check digit %q is not a single digit",
			ErrFieldOverflow, d.CheckDigit)
	}
	return DocumentIdentifier{
		Sequence:   strings.Repeat("0", SequenceWidth-len(d.Sequence)) + d.Sequence,
		CheckDigit: d.CheckDigit,
	}, nil
}

func padField(name string, value, width int) (string, error) {
	s, err := digits.ZeroPad(value, width)
	if err != nil {
		return "", &FieldError{Field: name, Value: value, Width: width}
	}
	return s, nil
}
