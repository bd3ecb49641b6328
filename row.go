package pgfield

import (
	"fmt"
	"iter"
	"reflect"
)

// Row is one row of a Result. It is a small value; copying it does not copy any data.
type Row struct {
	res *Result
	row int
}

func (r Row) Result() *Result {
	return r.res
}

// Num returns the index of the row in its Result.
func (r Row) Num() int {
	return r.row
}

// Len returns the number of fields in the row.
func (r Row) Len() int {
	return len(r.res.fields)
}

// Field returns the field in column col. It panics with *OutOfRangeError if col is not in [0, r.Len()).
func (r Row) Field(col int) Field {
	if col < 0 || col >= len(r.res.fields) {
		panic(&OutOfRangeError{What: "column", Index: col, Len: len(r.res.fields)})
	}
	return Field{res: r.res, row: r.row, col: col}
}

// FieldByName returns the field in the first column named name.
func (r Row) FieldByName(name string) (Field, error) {
	col, ok := r.res.ColumnIndex(name)
	if !ok {
		return Field{}, fmt.Errorf("%w %q", ErrUnknownColumn, name)
	}
	return Field{res: r.res, row: r.row, col: col}, nil
}

// Fields iterates over the fields of the row in column order.
func (r Row) Fields() iter.Seq2[int, Field] {
	return func(yield func(int, Field) bool) {
		for col := range r.res.fields {
			if !yield(col, Field{res: r.res, row: r.row, col: col}) {
				return
			}
		}
	}
}

// Values returns the fields converted to the default Go type of each column's data type. NULL is nil.
func (r Row) Values() ([]any, error) {
	values := make([]any, len(r.res.fields))
	for col := range r.res.fields {
		v, err := Field{res: r.res, row: r.row, col: col}.Value()
		if err != nil {
			return nil, err
		}
		values[col] = v
	}
	return values, nil
}

// Scan reads the fields into dest. There must be exactly one destination per field. A nil destination skips its
// field. NULL can only be scanned into a type that can represent it.
func (r Row) Scan(dest ...any) error {
	if len(dest) != len(r.res.fields) {
		return fmt.Errorf("number of field descriptions must equal number of destinations, got %d and %d", len(r.res.fields), len(dest))
	}

	for i, d := range dest {
		if d == nil {
			continue
		}
		f := Field{res: r.res, row: r.row, col: i}
		ok, err := f.Scan(d)
		if err == nil && !ok {
			err = f.nullError(reflect.TypeOf(d).Elem().String())
		}
		if err != nil {
			return ScanArgError{ColumnIndex: i, Err: err}
		}
	}
	return nil
}

// Equal reports whether both rows have the same number of fields and every pair of fields is Equal.
func (r Row) Equal(other Row) bool {
	if r.Len() != other.Len() {
		return false
	}
	for col := range r.res.fields {
		if !r.Field(col).Equal(other.Field(col)) {
			return false
		}
	}
	return true
}
