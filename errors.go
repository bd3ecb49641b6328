package pgfield

import (
	"errors"
	"fmt"
)

// OutOfRangeError is the panic value for a row or column index outside the bounds of a Result. Indexing out of range
// is a programming error in the same way slice indexing out of range is.
type OutOfRangeError struct {
	What  string
	Index int
	Len   int
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("pgfield: %s index %d out of range [0:%d]", e.What, e.Index, e.Len)
}

// FieldError records a failure to interpret a field. Conversion failures wrap a pgtype error, so
// errors.Is(err, pgtype.ErrConversion) holds for them.
type FieldError struct {
	Row    int
	Column int
	Name   string
	Err    error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("field %q (row %d, column %d): %v", e.Name, e.Row, e.Column, e.Err)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

// ScanArgError is returned by Row.Scan when a destination cannot receive its field.
type ScanArgError struct {
	ColumnIndex int
	Err         error
}

func (e ScanArgError) Error() string {
	return fmt.Sprintf("can't scan into dest[%d]: %v", e.ColumnIndex, e.Err)
}

func (e ScanArgError) Unwrap() error {
	return e.Err
}

var (
	// ErrUnknownColumn is returned when a column name is not in the Result.
	ErrUnknownColumn = errors.New("unknown column")

	errFieldReaderSeek  = fmt.Errorf("field reader is not seekable: %w", errors.ErrUnsupported)
	errFieldReaderWrite = fmt.Errorf("field reader is read-only: %w", errors.ErrUnsupported)
)
