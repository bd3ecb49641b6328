package zeronull

import (
	"database/sql/driver"

	"github.com/pgfield/pgfield/pgtype"
)

type Float8 float64

// DecodeText implements the pgtype.TextDecoder interface.
func (dst *Float8) DecodeText(src []byte) error {
	var nullable pgtype.Float8
	if err := nullable.DecodeText(src); err != nil {
		return err
	}
	*dst = Float8(nullable.Float64)
	return nil
}

// EncodeText implements the pgtype.TextEncoder interface.
func (src Float8) EncodeText(buf []byte) ([]byte, error) {
	if src == 0 {
		return nil, nil
	}
	return pgtype.Float8{Float64: float64(src), Valid: true}.EncodeText(buf)
}

// Scan implements the database/sql Scanner interface.
func (dst *Float8) Scan(src any) error {
	var nullable pgtype.Float8
	if err := nullable.Scan(src); err != nil {
		return err
	}
	*dst = Float8(nullable.Float64)
	return nil
}

// Value implements the database/sql/driver Valuer interface.
func (src Float8) Value() (driver.Value, error) {
	if src == 0 {
		return nil, nil
	}
	return pgtype.Float8{Float64: float64(src), Valid: true}.Value()
}
