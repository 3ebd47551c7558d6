package main

import (
	"encoding/json"
	"errors"
	"io"

	"sicoobslip/internal/sicoob"
)

var errInvalidArgument = errors.New("invalid argument")

// errorPayload defines the error body written to stderr.
type errorPayload struct {
	Error errorEnvelope `json:"error"`
}

type errorEnvelope struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// errorCode maps an error to a short machine-readable code.
func errorCode(err error) string {
	switch {
	case errors.Is(err, sicoob.ErrFieldOverflow):
		return "FIELD_OVERFLOW"
	case errors.Is(err, sicoob.ErrMalformedFreeField):
		return "MALFORMED_FREE_FIELD"
	case errors.Is(err, sicoob.ErrChecksumMismatch):
		return "CHECKSUM_MISMATCH"
	case errors.Is(err, errInvalidArgument):
		return "INVALID_ARGUMENT"
	default:
		return "INTERNAL_ERROR"
	}
}

// writeError writes the standardized JSON error envelope for err.
func writeError(w io.Writer, err error) {
	_ = json.NewEncoder(w).Encode(errorPayload{
		Error: errorEnvelope{
			Code:    errorCode(err),
			Message: err.Error(),
		},
	})
}
