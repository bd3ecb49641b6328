package pgtype

import (
	"database/sql/driver"
	"fmt"
)

type Float4 struct {
	Float32 float32
	Valid   bool
}

// DecodeText implements the TextDecoder interface.
func (dst *Float4) DecodeText(src []byte) error {
	if src == nil {
		*dst = Float4{}
		return nil
	}

	f, err := parseFloat(src, 32)
	if err != nil {
		return err
	}
	*dst = Float4{Float32: float32(f), Valid: true}
	return nil
}

// EncodeText implements the TextEncoder interface.
func (src Float4) EncodeText(buf []byte) ([]byte, error) {
	if !src.Valid {
		return nil, nil
	}
	return appendFloat(buf, float64(src.Float32), 32), nil
}

// Scan implements the database/sql Scanner interface.
func (dst *Float4) Scan(src any) error {
	f, valid, err := scanFloat64(src, 32)
	if err != nil {
		return err
	}
	*dst = Float4{Float32: float32(f), Valid: valid}
	return nil
}

// Value implements the database/sql/driver Valuer interface.
func (src Float4) Value() (driver.Value, error) {
	if !src.Valid {
		return nil, nil
	}
	return float64(src.Float32), nil
}

type Float8 struct {
	Float64 float64
	Valid   bool
}

// DecodeText implements the TextDecoder interface.
func (dst *Float8) DecodeText(src []byte) error {
	if src == nil {
		*dst = Float8{}
		return nil
	}

	f, err := parseFloat(src, 64)
	if err != nil {
		return err
	}
	*dst = Float8{Float64: f, Valid: true}
	return nil
}

// EncodeText implements the TextEncoder interface.
func (src Float8) EncodeText(buf []byte) ([]byte, error) {
	if !src.Valid {
		return nil, nil
	}
	return appendFloat(buf, src.Float64, 64), nil
}

// Scan implements the database/sql Scanner interface.
func (dst *Float8) Scan(src any) error {
	f, valid, err := scanFloat64(src, 64)
	if err != nil {
		return err
	}
	*dst = Float8{Float64: f, Valid: valid}
	return nil
}

// Value implements the database/sql/driver Valuer interface.
func (src Float8) Value() (driver.Value, error) {
	if !src.Valid {
		return nil, nil
	}
	return src.Float64, nil
}

func scanFloat64(src any, bitSize int) (f float64, valid bool, err error) {
	switch src := src.(type) {
	case nil:
		return 0, false, nil
	case float64:
		return src, true, nil
	case int64:
		return float64(src), true, nil
	case string:
		f, err = parseFloat([]byte(src), bitSize)
	case []byte:
		f, err = parseFloat(src, bitSize)
	default:
		return 0, false, fmt.Errorf("cannot scan %T", src)
	}
	if err != nil {
		return 0, false, err
	}
	return f, true, nil
}
