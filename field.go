package pgfield

import (
	"bytes"
	"errors"
	"io"
	"reflect"
	"unsafe"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pgfield/pgfield/pgtype"
)

// Field is one cell of a Result. It is a small value; copying it does not copy any data.
type Field struct {
	res *Result
	row int
	col int
}

func (f Field) span() span {
	return f.res.span(f.row, f.col)
}

// IsNull reports whether the field is SQL NULL. An empty string is not NULL.
func (f Field) IsNull() bool {
	return f.span().len == nullSpanLen
}

// Len returns the length in bytes of the field text. It is 0 for NULL.
func (f Field) Len() int {
	if s := f.span(); s.len != nullSpanLen {
		return s.len
	}
	return 0
}

// Bytes returns the field text without copying. It is nil for NULL and non-nil for every other field. The slice
// aliases the Result and must not be modified. Its capacity is limited to its length so appending to it copies.
func (f Field) Bytes() []byte {
	s := f.span()
	if s.len == nullSpanLen {
		return nil
	}
	return f.res.buf[s.off : s.off+s.len : s.off+s.len]
}

// View returns the field text as a string without copying. It is "" for NULL.
func (f Field) View() string {
	s := f.span()
	if s.len <= 0 {
		return ""
	}
	return unsafe.String(&f.res.buf[s.off], s.len)
}

// String returns the field text. It is "" for NULL.
func (f Field) String() string {
	return f.View()
}

func (f Field) description() *pgconn.FieldDescription {
	return &f.res.fields[f.col]
}

// Name returns the column name.
func (f Field) Name() string {
	return f.description().Name
}

// Type returns the OID of the column data type.
func (f Field) Type() uint32 {
	return f.description().DataTypeOID
}

// Table returns the OID of the table the column was taken from or 0 if it is not a table column.
func (f Field) Table() uint32 {
	return f.description().TableOID
}

// TableColumn returns the attribute number of the column in its table or 0 if it is not a table column.
func (f Field) TableColumn() uint16 {
	return f.description().TableAttributeNumber
}

// Row returns the row that contains the field.
func (f Field) Row() Row {
	return Row{res: f.res, row: f.row}
}

// Num returns the column index of the field.
func (f Field) Num() int {
	return f.col
}

// RowNum returns the row index of the field.
func (f Field) RowNum() int {
	return f.row
}

func (f Field) Description() pgconn.FieldDescription {
	return *f.description()
}

// Equal compares the text of two fields byte for byte. All NULL fields are equal to each other, whatever their type,
// and no NULL field is equal to a non-NULL field.
func (f Field) Equal(other Field) bool {
	fnull, onull := f.IsNull(), other.IsNull()
	if fnull || onull {
		return fnull == onull
	}
	return bytes.Equal(f.Bytes(), other.Bytes())
}

// Scan converts the field into dst, which must be a non-nil pointer. It reports whether dst was written.
//
// If the field is NULL and the type of *dst can represent NULL, that representation is written and Scan returns true.
// If it cannot, dst is left untouched and Scan returns false with a nil error. A non-NULL field is parsed with the
// Result's type map. Conversion failures are *FieldError.
func (f Field) Scan(dst any) (bool, error) {
	null := f.IsNull()
	err := f.res.typeMap.ScanEncoded(f.res.encoding, f.Bytes(), dst)

	assigned := err == nil
	var nullErr *pgtype.NullConversionError
	if null && errors.As(err, &nullErr) {
		err = nil
	}
	if err != nil {
		err = f.wrapError(err)
	}

	if f.res.convTracer != nil {
		f.res.convTracer.TraceConversion(f, TraceConversionData{
			Target:   reflect.TypeOf(dst),
			Null:     null,
			Assigned: assigned,
			Err:      err,
		})
	}

	return assigned, err
}

func (f Field) wrapError(err error) error {
	return &FieldError{Row: f.row, Column: f.col, Name: f.Name(), Err: err}
}

func (f Field) nullError(typeName string) error {
	return f.wrapError(&pgtype.NullConversionError{TypeName: typeName})
}

// To converts f into dst. It reports false and leaves dst untouched when the field is NULL and T cannot represent
// NULL.
func To[T any](f Field, dst *T) (bool, error) {
	return f.Scan(dst)
}

// ToDefault is like To but writes def into dst when the field is NULL. It reports whether the field had a value.
func ToDefault[T any](f Field, dst *T, def T) (bool, error) {
	if f.IsNull() {
		*dst = def
		return false, nil
	}
	return f.Scan(dst)
}

// As returns the field converted to T. A NULL field is T's representation of NULL, or a *FieldError wrapping a
// *pgtype.NullConversionError if T has none.
func As[T any](f Field) (T, error) {
	var v T
	ok, err := f.Scan(&v)
	if err != nil {
		return v, err
	}
	if !ok {
		return v, f.nullError(reflect.TypeFor[T]().String())
	}
	return v, nil
}

// AsDefault returns def when the field is NULL and the field converted to T otherwise.
func AsDefault[T any](f Field, def T) (T, error) {
	if f.IsNull() {
		return def, nil
	}
	return As[T](f)
}

// Get returns nil for a NULL field and a pointer to the converted value otherwise.
func Get[T any](f Field) (*T, error) {
	if f.IsNull() {
		return nil, nil
	}
	v, err := As[T](f)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// Array parses the field as an array literal in the Result's encoding. A NULL field is a token of kind
// pgtype.ArrayNull.
func (f Field) Array() (pgtype.ArrayToken, error) {
	if f.IsNull() {
		return pgtype.ArrayToken{Kind: pgtype.ArrayNull}, nil
	}
	tok, err := pgtype.ParseArray(f.View(), f.res.encoding)
	if err != nil {
		return pgtype.ArrayToken{}, f.wrapError(err)
	}
	return tok, nil
}

// Value returns the field converted to the default Go type of its column data type. NULL is nil.
func (f Field) Value() (any, error) {
	v, err := f.res.typeMap.DecodeValue(f.Type(), f.res.encoding, f.Bytes())
	if err != nil {
		return nil, f.wrapError(err)
	}
	return v, nil
}

// Decode returns the field text transcoded from the Result's client encoding to UTF-8.
func (f Field) Decode() (string, error) {
	s, err := f.res.encoding.DecodeString(f.View())
	if err != nil {
		return "", f.wrapError(err)
	}
	return s, nil
}

// WriteTo writes the field text to w. It writes nothing for NULL.
func (f Field) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(f.Bytes())
	return int64(n), err
}

// Reader returns a FieldReader over the field text.
func (f Field) Reader() *FieldReader {
	return NewFieldReader(f)
}
