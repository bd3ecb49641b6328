package pgtype

import (
	"database/sql/driver"
	"fmt"
)

type Bool struct {
	Bool  bool
	Valid bool
}

// DecodeText implements the TextDecoder interface.
func (dst *Bool) DecodeText(src []byte) error {
	if src == nil {
		*dst = Bool{}
		return nil
	}

	b, err := parseBool(src)
	if err != nil {
		return err
	}
	*dst = Bool{Bool: b, Valid: true}
	return nil
}

// EncodeText implements the TextEncoder interface.
func (src Bool) EncodeText(buf []byte) ([]byte, error) {
	if !src.Valid {
		return nil, nil
	}
	return appendBool(buf, src.Bool), nil
}

// Scan implements the database/sql Scanner interface.
func (dst *Bool) Scan(src any) error {
	switch src := src.(type) {
	case nil:
		*dst = Bool{}
		return nil
	case bool:
		*dst = Bool{Bool: src, Valid: true}
		return nil
	case string:
		return dst.DecodeText([]byte(src))
	case []byte:
		return dst.DecodeText(src)
	}

	return fmt.Errorf("cannot scan %T", src)
}

// Value implements the database/sql/driver Valuer interface.
func (src Bool) Value() (driver.Value, error) {
	if !src.Valid {
		return nil, nil
	}
	return src.Bool, nil
}

func (src Bool) MarshalJSON() ([]byte, error) {
	if !src.Valid {
		return []byte("null"), nil
	}
	if src.Bool {
		return []byte("true"), nil
	}
	return []byte("false"), nil
}
