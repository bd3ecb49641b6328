package pgtype

import (
	"database/sql/driver"
	"fmt"
	"strings"
	"time"
)

type InfinityModifier int8

const (
	Infinity         InfinityModifier = 1
	Finite           InfinityModifier = 0
	NegativeInfinity InfinityModifier = -Infinity
)

func (im InfinityModifier) String() string {
	switch im {
	case Finite:
		return "finite"
	case Infinity:
		return "infinity"
	case NegativeInfinity:
		return "-infinity"
	default:
		return "invalid"
	}
}

// Timestamptz holds timestamp, timestamptz and date values including the special values infinity and -infinity,
// which time.Time cannot represent.
type Timestamptz struct {
	Time             time.Time
	InfinityModifier InfinityModifier
	Valid            bool
}

// DecodeText implements the TextDecoder interface.
func (dst *Timestamptz) DecodeText(src []byte) error {
	if src == nil {
		*dst = Timestamptz{}
		return nil
	}

	switch strings.TrimSpace(string(src)) {
	case "infinity":
		*dst = Timestamptz{InfinityModifier: Infinity, Valid: true}
		return nil
	case "-infinity":
		*dst = Timestamptz{InfinityModifier: NegativeInfinity, Valid: true}
		return nil
	}

	t, err := parseTimestamp(src)
	if err != nil {
		return err
	}
	*dst = Timestamptz{Time: t, Valid: true}
	return nil
}

// EncodeText implements the TextEncoder interface.
func (src Timestamptz) EncodeText(buf []byte) ([]byte, error) {
	if !src.Valid {
		return nil, nil
	}

	switch src.InfinityModifier {
	case Infinity:
		return append(buf, "infinity"...), nil
	case NegativeInfinity:
		return append(buf, "-infinity"...), nil
	}
	return appendTimestamp(buf, src.Time)
}

// Scan implements the database/sql Scanner interface.
func (dst *Timestamptz) Scan(src any) error {
	switch src := src.(type) {
	case nil:
		*dst = Timestamptz{}
		return nil
	case time.Time:
		*dst = Timestamptz{Time: src, Valid: true}
		return nil
	case string:
		return dst.DecodeText([]byte(src))
	case []byte:
		return dst.DecodeText(src)
	}

	return fmt.Errorf("cannot scan %T", src)
}

// Value implements the database/sql/driver Valuer interface.
func (src Timestamptz) Value() (driver.Value, error) {
	if !src.Valid {
		return nil, nil
	}
	if src.InfinityModifier != Finite {
		return src.InfinityModifier.String(), nil
	}
	return src.Time, nil
}
