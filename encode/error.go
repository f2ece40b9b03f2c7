package encode

import (
	"fmt"

	"golang.org/x/text/unicode/runenames"
)

// EncodingError is returned when a label cannot be converted to its ASCII-compatible form.
// Includes the offending input and, when one could be identified, the code point that could not be encoded.
type EncodingError struct {
	// The input that failed to encode.
	Input string

	// The code point that could not be encoded.
	// Zero if the failure concerns a whole label (for example its length or hyphen placement).
	Rune rune

	// The underlying error, if any.
	Err error
}

func (err *EncodingError) Error() string {
	var msg string
	if err.Rune != 0 {
		msg = fmt.Sprintf(`cannot encode "%s": code point %U (%s) is not encodable`, err.Input, err.Rune, runeName(err.Rune))
	} else {
		msg = fmt.Sprintf(`cannot encode "%s"`, err.Input)
	}
	if err.Err != nil {
		msg += ": " + err.Err.Error()
	}
	return msg
}

func (err *EncodingError) Unwrap() error {
	return err.Err
}

// NewEncodingError creates a new EncodingError instance with the specified input, offending rune and cause.
func NewEncodingError(input string, r rune, cause error) *EncodingError {
	return &EncodingError{
		Input: input,
		Rune:  r,
		Err:   cause,
	}
}

func runeName(r rune) string {
	if name := runenames.Name(r); name != "" {
		return name
	}
	return "unnamed"
}
