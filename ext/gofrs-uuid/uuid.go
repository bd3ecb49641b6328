// Package uuid adds support for github.com/gofrs/uuid to a pgtype.Map.
package uuid

import (
	"github.com/gofrs/uuid"
	"github.com/pgfield/pgfield/pgtype"
)

// UUIDCodec converts uuid.UUID. uuid.UUID has no representation of NULL; the nil UUID is a valid value.
type UUIDCodec struct{}

func (UUIDCodec) DecodeText(src []byte) (uuid.UUID, error) {
	return uuid.FromString(string(src))
}

func (UUIDCodec) EncodeText(buf []byte, value uuid.UUID) ([]byte, error) {
	return append(buf, value.String()...), nil
}

// NullUUIDCodec converts uuid.NullUUID. NULL is a NullUUID with Valid false.
type NullUUIDCodec struct{}

func (NullUUIDCodec) DecodeText(src []byte) (uuid.NullUUID, error) {
	u, err := uuid.FromString(string(src))
	if err != nil {
		return uuid.NullUUID{}, err
	}
	return uuid.NullUUID{UUID: u, Valid: true}, nil
}

func (NullUUIDCodec) EncodeText(buf []byte, value uuid.NullUUID) ([]byte, error) {
	return append(buf, value.UUID.String()...), nil
}

func (NullUUIDCodec) Null() uuid.NullUUID {
	return uuid.NullUUID{}
}

func (NullUUIDCodec) IsNull(value uuid.NullUUID) bool {
	return !value.Valid
}

// Register registers the uuid codecs with m and makes uuid.UUID the default Go type for uuid columns.
func Register(m *pgtype.Map) {
	pgtype.RegisterCodec[uuid.UUID](m, UUIDCodec{})
	pgtype.RegisterCodec[uuid.NullUUID](m, NullUUIDCodec{})
	m.RegisterDefaultType(pgtype.UUIDOID, uuid.UUID{})
}
