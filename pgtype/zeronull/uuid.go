package zeronull

import (
	"database/sql/driver"
	"encoding/hex"
	"fmt"
)

// UUID is a 16 byte UUID whose all-zero value is NULL.
type UUID [16]byte

// DecodeText implements the pgtype.TextDecoder interface. Hyphens are optional, as they are for PostgreSQL's uuid_in,
// and braces are accepted around the value.
func (dst *UUID) DecodeText(src []byte) error {
	if src == nil {
		*dst = UUID{}
		return nil
	}

	s := string(src)
	if len(s) >= 2 && s[0] == '{' && s[len(s)-1] == '}' {
		s = s[1 : len(s)-1]
	}

	digits := make([]byte, 0, 32)
	for i := 0; i < len(s); i++ {
		if s[i] == '-' {
			continue
		}
		digits = append(digits, s[i])
	}
	if len(digits) != 32 {
		return fmt.Errorf("invalid UUID %q", src)
	}

	var u UUID
	if _, err := hex.Decode(u[:], digits); err != nil {
		return fmt.Errorf("invalid UUID %q: %w", src, err)
	}
	*dst = u
	return nil
}

// EncodeText implements the pgtype.TextEncoder interface.
func (src UUID) EncodeText(buf []byte) ([]byte, error) {
	if src == (UUID{}) {
		return nil, nil
	}
	return src.appendText(buf), nil
}

func (src UUID) appendText(buf []byte) []byte {
	buf = hex.AppendEncode(buf, src[0:4])
	buf = append(buf, '-')
	buf = hex.AppendEncode(buf, src[4:6])
	buf = append(buf, '-')
	buf = hex.AppendEncode(buf, src[6:8])
	buf = append(buf, '-')
	buf = hex.AppendEncode(buf, src[8:10])
	buf = append(buf, '-')
	return hex.AppendEncode(buf, src[10:16])
}

// Scan implements the database/sql Scanner interface.
func (dst *UUID) Scan(src any) error {
	switch src := src.(type) {
	case nil:
		*dst = UUID{}
		return nil
	case string:
		return dst.DecodeText([]byte(src))
	case []byte:
		if len(src) == 16 {
			copy(dst[:], src)
			return nil
		}
		return dst.DecodeText(src)
	}

	return fmt.Errorf("cannot scan %T", src)
}

// Value implements the database/sql/driver Valuer interface.
func (src UUID) Value() (driver.Value, error) {
	if src == (UUID{}) {
		return nil, nil
	}
	return string(src.appendText(nil)), nil
}
