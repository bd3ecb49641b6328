package pgtype

import (
	"database/sql/driver"
	"fmt"
	"math"
	"strconv"
)

type Int2 struct {
	Int16 int16
	Valid bool
}

// DecodeText implements the TextDecoder interface.
func (dst *Int2) DecodeText(src []byte) error {
	if src == nil {
		*dst = Int2{}
		return nil
	}

	n, err := parseInt(src, 16)
	if err != nil {
		return err
	}
	*dst = Int2{Int16: int16(n), Valid: true}
	return nil
}

// EncodeText implements the TextEncoder interface.
func (src Int2) EncodeText(buf []byte) ([]byte, error) {
	if !src.Valid {
		return nil, nil
	}
	return strconv.AppendInt(buf, int64(src.Int16), 10), nil
}

// Scan implements the database/sql Scanner interface.
func (dst *Int2) Scan(src any) error {
	n, valid, err := scanInt64(src, math.MinInt16, math.MaxInt16)
	if err != nil {
		return err
	}
	*dst = Int2{Int16: int16(n), Valid: valid}
	return nil
}

// Value implements the database/sql/driver Valuer interface.
func (src Int2) Value() (driver.Value, error) {
	if !src.Valid {
		return nil, nil
	}
	return int64(src.Int16), nil
}

func (src Int2) MarshalJSON() ([]byte, error) {
	if !src.Valid {
		return []byte("null"), nil
	}
	return []byte(strconv.FormatInt(int64(src.Int16), 10)), nil
}

type Int4 struct {
	Int32 int32
	Valid bool
}

// DecodeText implements the TextDecoder interface.
func (dst *Int4) DecodeText(src []byte) error {
	if src == nil {
		*dst = Int4{}
		return nil
	}

	n, err := parseInt(src, 32)
	if err != nil {
		return err
	}
	*dst = Int4{Int32: int32(n), Valid: true}
	return nil
}

// EncodeText implements the TextEncoder interface.
func (src Int4) EncodeText(buf []byte) ([]byte, error) {
	if !src.Valid {
		return nil, nil
	}
	return strconv.AppendInt(buf, int64(src.Int32), 10), nil
}

// Scan implements the database/sql Scanner interface.
func (dst *Int4) Scan(src any) error {
	n, valid, err := scanInt64(src, math.MinInt32, math.MaxInt32)
	if err != nil {
		return err
	}
	*dst = Int4{Int32: int32(n), Valid: valid}
	return nil
}

// Value implements the database/sql/driver Valuer interface.
func (src Int4) Value() (driver.Value, error) {
	if !src.Valid {
		return nil, nil
	}
	return int64(src.Int32), nil
}

func (src Int4) MarshalJSON() ([]byte, error) {
	if !src.Valid {
		return []byte("null"), nil
	}
	return []byte(strconv.FormatInt(int64(src.Int32), 10)), nil
}

type Int8 struct {
	Int64 int64
	Valid bool
}

// DecodeText implements the TextDecoder interface.
func (dst *Int8) DecodeText(src []byte) error {
	if src == nil {
		*dst = Int8{}
		return nil
	}

	n, err := parseInt(src, 64)
	if err != nil {
		return err
	}
	*dst = Int8{Int64: n, Valid: true}
	return nil
}

// EncodeText implements the TextEncoder interface.
func (src Int8) EncodeText(buf []byte) ([]byte, error) {
	if !src.Valid {
		return nil, nil
	}
	return strconv.AppendInt(buf, src.Int64, 10), nil
}

// Scan implements the database/sql Scanner interface.
func (dst *Int8) Scan(src any) error {
	n, valid, err := scanInt64(src, math.MinInt64, math.MaxInt64)
	if err != nil {
		return err
	}
	*dst = Int8{Int64: n, Valid: valid}
	return nil
}

// Value implements the database/sql/driver Valuer interface.
func (src Int8) Value() (driver.Value, error) {
	if !src.Valid {
		return nil, nil
	}
	return src.Int64, nil
}

func (src Int8) MarshalJSON() ([]byte, error) {
	if !src.Valid {
		return []byte("null"), nil
	}
	return []byte(strconv.FormatInt(src.Int64, 10)), nil
}

// scanInt64 implements database/sql scanning for the integer wrappers.
func scanInt64(src any, min, max int64) (n int64, valid bool, err error) {
	switch src := src.(type) {
	case nil:
		return 0, false, nil
	case int64:
		n = src
	case string:
		n, err = parseInt([]byte(src), 64)
	case []byte:
		n, err = parseInt(src, 64)
	default:
		return 0, false, fmt.Errorf("cannot scan %T", src)
	}
	if err != nil {
		return 0, false, err
	}

	if n < min {
		return 0, false, fmt.Errorf("%d is less than minimum value %d", n, min)
	}
	if n > max {
		return 0, false, fmt.Errorf("%d is greater than maximum value %d", n, max)
	}
	return n, true, nil
}
