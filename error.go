package homograph

import (
	"errors"
	"fmt"

	"github.com/termermc/go-homograph/encode"
)

// ErrEmptyLabel is returned when an operation needs at least one code point but the label is empty.
var ErrEmptyLabel = errors.New("label is empty")

// ErrNoSubstitution is returned when the replacement code point is the same as the one it would replace.
var ErrNoSubstitution = errors.New("replacement code point equals the original, nothing would be substituted")

// ErrNilWriter is returned when a Demonstrator is created without somewhere to write its output.
var ErrNilWriter = errors.New("demonstrator output writer is nil")

// EncodingError is returned when a label contains a code point outside the encodable repertoire.
// See encode.EncodingError.
type EncodingError = encode.EncodingError

// PositionOutOfRangeError is returned when a code point index falls outside a label.
// Includes the requested position and the number of code points in the label.
type PositionOutOfRangeError struct {
	// The requested code point index.
	Position int

	// The number of code points in the label.
	Length int
}

func (err *PositionOutOfRangeError) Error() string {
	return fmt.Sprintf("code point position %d out of range for label of length %d", err.Position, err.Length)
}

// NewPositionOutOfRangeError creates a new PositionOutOfRangeError instance with the specified position and label length.
func NewPositionOutOfRangeError(pos int, length int) *PositionOutOfRangeError {
	return &PositionOutOfRangeError{
		Position: pos,
		Length:   length,
	}
}

// LengthMismatchError is returned when two labels need the same number of code points but do not have it.
type LengthMismatchError struct {
	A, B Label
}

func (err *LengthMismatchError) Error() string {
	return fmt.Sprintf(`labels "%s" and "%s" differ in code point count (%d vs %d)`, err.A, err.B, err.A.Len(), err.B.Len())
}

// NewLengthMismatchError creates a new LengthMismatchError instance with the specified labels.
func NewLengthMismatchError(a, b Label) *LengthMismatchError {
	return &LengthMismatchError{
		A: a,
		B: b,
	}
}
