package pgtype

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

type Text struct {
	String string
	Valid  bool
}

// DecodeText implements the TextDecoder interface.
func (dst *Text) DecodeText(src []byte) error {
	if src == nil {
		*dst = Text{}
		return nil
	}
	*dst = Text{String: string(src), Valid: true}
	return nil
}

// EncodeText implements the TextEncoder interface.
func (src Text) EncodeText(buf []byte) ([]byte, error) {
	if !src.Valid {
		return nil, nil
	}
	return append(buf, src.String...), nil
}

// Scan implements the database/sql Scanner interface.
func (dst *Text) Scan(src any) error {
	switch src := src.(type) {
	case nil:
		*dst = Text{}
		return nil
	case string:
		*dst = Text{String: src, Valid: true}
		return nil
	case []byte:
		*dst = Text{String: string(src), Valid: true}
		return nil
	}

	return fmt.Errorf("cannot scan %T", src)
}

// Value implements the database/sql/driver Valuer interface.
func (src Text) Value() (driver.Value, error) {
	if !src.Valid {
		return nil, nil
	}
	return src.String, nil
}

func (src Text) MarshalJSON() ([]byte, error) {
	if !src.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(src.String)
}
