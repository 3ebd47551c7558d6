// Package sicoob implements the free field ("campo livre") of Sicoob payment slips.
//
// Layout of the encoded field:
//
//	offset  width  content
//	     0      4  branch, zero-padded
//	     4      5  cooperating-member code, zero-padded
//	     9      7  document identifier sequence
//	    16      1  document identifier check digit
//	    17      1  wallet marker, always "1"
//	    18      1  modulo-11 checksum of offsets 0-17
//
// The surrounding line code reserves SegmentWidth positions for the free field;
// positions after PayloadWidth belong to the line-code assembler.
package sicoob

import (
	"fmt"

	"sicoobslip/internal/checkdigit"
	"sicoobslip/internal/digits"
	"sicoobslip/internal/model"
)

const (
	BranchWidth     = 4
	MemberCodeWidth = 5

	// Marker is the literal wallet marker that follows the identifier.
	Marker = "1"

	// PayloadWidth is the number of characters Encode produces.
	PayloadWidth = 19
	// SegmentWidth is the width reserved for the free field in the line code.
	SegmentWidth = 25
	// MinDecodeLength is the shortest input Decode accepts: everything up to
	// and including the identifier check digit.
	MinDecodeLength = 17

	branchMemberMask = "####/#####"
)

const (
	offBranch     = 0
	offMember     = offBranch + BranchWidth
	offSequence   = offMember + MemberCodeWidth
	offCheckDigit = offSequence + SequenceWidth
	offMarker     = offCheckDigit + 1
	offChecksum   = offMarker + 1
)

// Fields is the decoded content of a free field.
// Marker and Checksum are empty when the input ends before them.
type Fields struct {
	Branch     string `json:"branch"`
	MemberCode string `json:"member_code"`
	Sequence   string `json:"sequence"`
	CheckDigit string `json:"check_digit"`
	Identifier string `json:"identifier"`
	Marker     string `json:"marker,omitempty"`
	Checksum   string `json:"checksum,omitempty"`
}

// Encode builds the free field for an agreement and its document identifier.
//
// Inputs that do not fit their widths are rejected with ErrFieldOverflow rather
// than truncated. The same inputs always produce the same field.
func Encode(a model.Agreement, id DocumentIdentifier) (string, error) {
	branch, err := padField("branch", a.Branch, BranchWidth)
	if err != nil {
		return "", err
	}
	member, err := padField("member code", a.MemberCode, MemberCodeWidth)
	if err != nil {
		return "", err
	}
	id, err = id.normalize()
	if err != nil {
		return "", err
	}

	payload := branch + member + id.Sequence + id.CheckDigit + Marker
	dv, err := checkdigit.Modulo11(payload)
	if err != nil {
		return "", fmt.Errorf("free field checksum: %w", err)
	}
	return payload + string(dv), nil
}

// Decode slices a free field into its parts.
//
// Decode does not validate digits or check digits; use Verify for that.
// Input shorter than MinDecodeLength returns ErrMalformedFreeField.
func Decode(freeField string) (Fields, error) {
	if len(freeField) < MinDecodeLength {
		return Fields{}, fmt.Errorf("%w: got %d characters, need at least %d",
			ErrMalformedFreeField, len(freeField), MinDecodeLength)
	}

	f := Fields{
		Branch:     freeField[offBranch:offMember],
		MemberCode: freeField[offMember:offSequence],
		Sequence:   freeField[offSequence:offCheckDigit],
		CheckDigit: freeField[offCheckDigit:offMarker],
		Identifier: freeField[offSequence:offMarker],
	}
	if len(freeField) > offMarker {
		f.Marker = freeField[offMarker:offChecksum]
	}
	if len(freeField) > offChecksum {
		f.Checksum = freeField[offChecksum:PayloadWidth]
	}
	return f, nil
}

// Verify checks that freeField starts with a well-formed, correctly check-digited payload.
// Characters after PayloadWidth are not inspected.
func Verify(freeField string) error {
	if len(freeField) < PayloadWidth {
		return fmt.Errorf("%w: got %d characters, need at least %d",
			ErrMalformedFreeField, len(freeField), PayloadWidth)
	}
	payload := freeField[:PayloadWidth]
	if !digits.IsNumeric(payload) {
		return fmt.Errorf("%w: %q contains non-digit characters", ErrMalformedFreeField, payload)
	}
	if got := payload[offMarker:offChecksum]; got != Marker {
		return fmt.Errorf("%w: marker is %q, want %q", ErrMalformedFreeField, got, Marker)
	}

	dv, err := checkdigit.Modulo11(payload[offSequence:offCheckDigit])
	if err != nil {
		return fmt.Errorf("identifier check digit: %w", err)
	}
	if dv != payload[offCheckDigit] {
		return fmt.Errorf("%w: identifier check digit is %c, want %c",
			ErrChecksumMismatch, payload[offCheckDigit], dv)
	}

	dv, err = checkdigit.Modulo11(payload[:offChecksum])
	if err != nil {
		return fmt.Errorf("free field checksum: %w", err)
	}
	if dv != payload[offChecksum] {
		return fmt.Errorf("%w: checksum is %c, want %c", ErrChecksumMismatch, payload[offChecksum], dv)
	}
	return nil
}

// BranchMember returns the printed "agência/código do cooperado" box, e.g. "0085/00841".
func BranchMember(a model.Agreement) (string, error) {
	branch, err := padField("branch", a.Branch, BranchWidth)
	if err != nil {
		return "", err
	}
	member, err := padField("member code", a.MemberCode, MemberCodeWidth)
	if err != nil {
		return "", err
	}
	return digits.Mask(branch+member, branchMemberMask), nil
}
