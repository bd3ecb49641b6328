package pgtype

import (
	"errors"
	"fmt"
)

// ErrConversion is matched by every conversion failure. Use errors.Is(err, ErrConversion) to test for any of
// ConversionError, NullConversionError or SyntaxError.
var ErrConversion = errors.New("conversion error")

// maxErrorTextLen bounds how much of the offending text is quoted in error messages.
const maxErrorTextLen = 64

// ConversionError is returned when text cannot be converted to or from the requested type.
type ConversionError struct {
	TypeName string
	Text     string
	Err      error
}

func newConversionError(typeName string, src []byte, err error) *ConversionError {
	return &ConversionError{TypeName: typeName, Text: truncateText(string(src)), Err: err}
}

func (e *ConversionError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("cannot convert %q to %s", e.Text, e.TypeName)
	}
	return fmt.Sprintf("cannot convert %q to %s: %v", e.Text, e.TypeName, e.Err)
}

func (e *ConversionError) Unwrap() error {
	return e.Err
}

func (e *ConversionError) Is(target error) bool {
	return target == ErrConversion
}

// NullConversionError is returned when a NULL is converted into a type that has no way to represent it.
type NullConversionError struct {
	TypeName string
}

func (e *NullConversionError) Error() string {
	return fmt.Sprintf("cannot convert NULL to %s: type has no null representation", e.TypeName)
}

func (e *NullConversionError) Is(target error) bool {
	return target == ErrConversion
}

// SyntaxError is returned when an array literal is malformed. Pos is the byte offset in the literal where the problem
// was detected.
type SyntaxError struct {
	Pos int
	Msg string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("malformed array literal at byte %d: %s", e.Pos, e.Msg)
}

func (e *SyntaxError) Is(target error) bool {
	return target == ErrConversion
}

func truncateText(s string) string {
	if len(s) <= maxErrorTextLen {
		return s
	}
	return s[:maxErrorTextLen] + "..."
}
