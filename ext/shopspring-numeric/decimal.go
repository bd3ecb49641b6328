// Package numeric adds support for github.com/shopspring/decimal to a pgtype.Map.
package numeric

import (
	"errors"

	"github.com/pgfield/pgfield/pgtype"
	"github.com/shopspring/decimal"
)

var errSpecialValue = errors.New("NaN and infinite values cannot be represented by decimal.Decimal")

// DecimalCodec converts decimal.Decimal. decimal.Decimal has no representation of NULL.
type DecimalCodec struct{}

func (DecimalCodec) DecodeText(src []byte) (decimal.Decimal, error) {
	switch string(src) {
	case "NaN", "Infinity", "-Infinity":
		return decimal.Decimal{}, errSpecialValue
	}
	return decimal.NewFromString(string(src))
}

func (DecimalCodec) EncodeText(buf []byte, value decimal.Decimal) ([]byte, error) {
	return append(buf, value.String()...), nil
}

// NullDecimalCodec converts decimal.NullDecimal. NULL is a NullDecimal with Valid false.
type NullDecimalCodec struct{}

func (NullDecimalCodec) DecodeText(src []byte) (decimal.NullDecimal, error) {
	d, err := DecimalCodec{}.DecodeText(src)
	if err != nil {
		return decimal.NullDecimal{}, err
	}
	return decimal.NullDecimal{Decimal: d, Valid: true}, nil
}

func (NullDecimalCodec) EncodeText(buf []byte, value decimal.NullDecimal) ([]byte, error) {
	return DecimalCodec{}.EncodeText(buf, value.Decimal)
}

func (NullDecimalCodec) Null() decimal.NullDecimal {
	return decimal.NullDecimal{}
}

func (NullDecimalCodec) IsNull(value decimal.NullDecimal) bool {
	return !value.Valid
}

// Register registers the decimal codecs with m and makes decimal.Decimal the default Go type for numeric columns.
func Register(m *pgtype.Map) {
	pgtype.RegisterCodec[decimal.Decimal](m, DecimalCodec{})
	pgtype.RegisterCodec[decimal.NullDecimal](m, NullDecimalCodec{})
	m.RegisterDefaultType(pgtype.NumericOID, decimal.Decimal{})
}
