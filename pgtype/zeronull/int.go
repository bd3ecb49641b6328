package zeronull

import (
	"database/sql/driver"

	"github.com/pgfield/pgfield/pgtype"
)

type Int2 int16

// DecodeText implements the pgtype.TextDecoder interface.
func (dst *Int2) DecodeText(src []byte) error {
	var nullable pgtype.Int2
	if err := nullable.DecodeText(src); err != nil {
		return err
	}
	*dst = Int2(nullable.Int16)
	return nil
}

// EncodeText implements the pgtype.TextEncoder interface.
func (src Int2) EncodeText(buf []byte) ([]byte, error) {
	if src == 0 {
		return nil, nil
	}
	return pgtype.Int2{Int16: int16(src), Valid: true}.EncodeText(buf)
}

// Scan implements the database/sql Scanner interface.
func (dst *Int2) Scan(src any) error {
	var nullable pgtype.Int2
	if err := nullable.Scan(src); err != nil {
		return err
	}
	*dst = Int2(nullable.Int16)
	return nil
}

// Value implements the database/sql/driver Valuer interface.
func (src Int2) Value() (driver.Value, error) {
	if src == 0 {
		return nil, nil
	}
	return pgtype.Int2{Int16: int16(src), Valid: true}.Value()
}

type Int4 int32

// DecodeText implements the pgtype.TextDecoder interface.
func (dst *Int4) DecodeText(src []byte) error {
	var nullable pgtype.Int4
	if err := nullable.DecodeText(src); err != nil {
		return err
	}
	*dst = Int4(nullable.Int32)
	return nil
}

// EncodeText implements the pgtype.TextEncoder interface.
func (src Int4) EncodeText(buf []byte) ([]byte, error) {
	if src == 0 {
		return nil, nil
	}
	return pgtype.Int4{Int32: int32(src), Valid: true}.EncodeText(buf)
}

// Scan implements the database/sql Scanner interface.
func (dst *Int4) Scan(src any) error {
	var nullable pgtype.Int4
	if err := nullable.Scan(src); err != nil {
		return err
	}
	*dst = Int4(nullable.Int32)
	return nil
}

// Value implements the database/sql/driver Valuer interface.
func (src Int4) Value() (driver.Value, error) {
	if src == 0 {
		return nil, nil
	}
	return pgtype.Int4{Int32: int32(src), Valid: true}.Value()
}

type Int8 int64

// DecodeText implements the pgtype.TextDecoder interface.
func (dst *Int8) DecodeText(src []byte) error {
	var nullable pgtype.Int8
	if err := nullable.DecodeText(src); err != nil {
		return err
	}
	*dst = Int8(nullable.Int64)
	return nil
}

// EncodeText implements the pgtype.TextEncoder interface.
func (src Int8) EncodeText(buf []byte) ([]byte, error) {
	if src == 0 {
		return nil, nil
	}
	return pgtype.Int8{Int64: int64(src), Valid: true}.EncodeText(buf)
}

// Scan implements the database/sql Scanner interface.
func (dst *Int8) Scan(src any) error {
	var nullable pgtype.Int8
	if err := nullable.Scan(src); err != nil {
		return err
	}
	*dst = Int8(nullable.Int64)
	return nil
}

// Value implements the database/sql/driver Valuer interface.
func (src Int8) Value() (driver.Value, error) {
	if src == 0 {
		return nil, nil
	}
	return pgtype.Int8{Int64: int64(src), Valid: true}.Value()
}
