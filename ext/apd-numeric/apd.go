// Package apdnumeric adds support for github.com/cockroachdb/apd to a pgtype.Map. Unlike decimal.Decimal, apd.Decimal
// can hold every numeric value PostgreSQL can produce, including NaN and the infinities.
package apdnumeric

import (
	"github.com/cockroachdb/apd"
	"github.com/pgfield/pgfield/pgtype"
)

func parse(src []byte) (*apd.Decimal, error) {
	d, _, err := apd.NewFromString(string(src))
	return d, err
}

func appendDecimal(buf []byte, d *apd.Decimal) []byte {
	return append(buf, d.Text('f')...)
}

// DecimalCodec converts apd.Decimal values. apd.Decimal has no representation of NULL.
type DecimalCodec struct{}

func (DecimalCodec) DecodeText(src []byte) (apd.Decimal, error) {
	d, err := parse(src)
	if err != nil {
		return apd.Decimal{}, err
	}
	return *d, nil
}

func (DecimalCodec) EncodeText(buf []byte, value apd.Decimal) ([]byte, error) {
	return appendDecimal(buf, &value), nil
}

// PtrCodec converts *apd.Decimal. NULL is a nil pointer.
type PtrCodec struct{}

func (PtrCodec) DecodeText(src []byte) (*apd.Decimal, error) {
	return parse(src)
}

func (PtrCodec) EncodeText(buf []byte, value *apd.Decimal) ([]byte, error) {
	return appendDecimal(buf, value), nil
}

func (PtrCodec) Null() *apd.Decimal {
	return nil
}

func (PtrCodec) IsNull(value *apd.Decimal) bool {
	return value == nil
}

// Register registers the apd codecs with m and makes *apd.Decimal the default Go type for numeric columns.
func Register(m *pgtype.Map) {
	pgtype.RegisterCodec[apd.Decimal](m, DecimalCodec{})
	pgtype.RegisterCodec[*apd.Decimal](m, PtrCodec{})
	m.RegisterDefaultType(pgtype.NumericOID, (*apd.Decimal)(nil))
}
