package zeronull

import (
	"database/sql/driver"
	"fmt"
	"time"

	"github.com/pgfield/pgfield/pgtype"
)

// Timestamptz is a time.Time whose zero value is NULL. The infinite timestamps cannot be represented and are errors.
type Timestamptz time.Time

// DecodeText implements the pgtype.TextDecoder interface.
func (dst *Timestamptz) DecodeText(src []byte) error {
	var nullable pgtype.Timestamptz
	if err := nullable.DecodeText(src); err != nil {
		return err
	}
	return dst.set(nullable)
}

func (dst *Timestamptz) set(nullable pgtype.Timestamptz) error {
	if nullable.InfinityModifier != pgtype.Finite {
		return fmt.Errorf("cannot represent %s as zeronull.Timestamptz", nullable.InfinityModifier)
	}
	*dst = Timestamptz(nullable.Time)
	return nil
}

// EncodeText implements the pgtype.TextEncoder interface.
func (src Timestamptz) EncodeText(buf []byte) ([]byte, error) {
	if time.Time(src).IsZero() {
		return nil, nil
	}
	return pgtype.Timestamptz{Time: time.Time(src), Valid: true}.EncodeText(buf)
}

// Scan implements the database/sql Scanner interface.
func (dst *Timestamptz) Scan(src any) error {
	var nullable pgtype.Timestamptz
	if err := nullable.Scan(src); err != nil {
		return err
	}
	return dst.set(nullable)
}

// Value implements the database/sql/driver Valuer interface.
func (src Timestamptz) Value() (driver.Value, error) {
	if time.Time(src).IsZero() {
		return nil, nil
	}
	return time.Time(src), nil
}
