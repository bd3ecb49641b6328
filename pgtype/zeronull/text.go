package zeronull

import (
	"database/sql/driver"

	"github.com/pgfield/pgfield/pgtype"
)

type Text string

// DecodeText implements the pgtype.TextDecoder interface.
func (dst *Text) DecodeText(src []byte) error {
	var nullable pgtype.Text
	if err := nullable.DecodeText(src); err != nil {
		return err
	}
	*dst = Text(nullable.String)
	return nil
}

// EncodeText implements the pgtype.TextEncoder interface.
func (src Text) EncodeText(buf []byte) ([]byte, error) {
	if src == "" {
		return nil, nil
	}
	return pgtype.Text{String: string(src), Valid: true}.EncodeText(buf)
}

// Scan implements the database/sql Scanner interface.
func (dst *Text) Scan(src any) error {
	var nullable pgtype.Text
	if err := nullable.Scan(src); err != nil {
		return err
	}
	*dst = Text(nullable.String)
	return nil
}

// Value implements the database/sql/driver Valuer interface.
func (src Text) Value() (driver.Value, error) {
	if src == "" {
		return nil, nil
	}
	return pgtype.Text{String: string(src), Valid: true}.Value()
}
