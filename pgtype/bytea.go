package pgtype

import (
	"database/sql/driver"
	"encoding/hex"
	"errors"
	"fmt"
)

// Bytea is the decoded form of a bytea value. Unlike []byte, which receives the raw text of a field, Bytea decodes
// the hex format the server uses for bytea output.
type Bytea struct {
	Bytes []byte
	Valid bool
}

var errByteaHex = errors.New(`invalid hex format, expected leading \x`)

// DecodeText implements the TextDecoder interface.
func (dst *Bytea) DecodeText(src []byte) error {
	if src == nil {
		*dst = Bytea{}
		return nil
	}

	if len(src) < 2 || src[0] != '\\' || src[1] != 'x' {
		return errByteaHex
	}

	buf := make([]byte, (len(src)-2)/2)
	_, err := hex.Decode(buf, src[2:])
	if err != nil {
		return err
	}

	*dst = Bytea{Bytes: buf, Valid: true}
	return nil
}

// EncodeText implements the TextEncoder interface.
func (src Bytea) EncodeText(buf []byte) ([]byte, error) {
	if !src.Valid {
		return nil, nil
	}

	buf = append(buf, `\x`...)
	return hex.AppendEncode(buf, src.Bytes), nil
}

// Scan implements the database/sql Scanner interface.
func (dst *Bytea) Scan(src any) error {
	switch src := src.(type) {
	case nil:
		*dst = Bytea{}
		return nil
	case []byte:
		return dst.DecodeText(src)
	case string:
		return dst.DecodeText([]byte(src))
	}

	return fmt.Errorf("cannot scan %T", src)
}

// Value implements the database/sql/driver Valuer interface.
func (src Bytea) Value() (driver.Value, error) {
	if !src.Valid {
		return nil, nil
	}
	return src.Bytes, nil
}
