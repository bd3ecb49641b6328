package zeronull

import (
	"github.com/pgfield/pgfield/pgtype"
)

// Register makes the zeronull types the default Go types for their PostgreSQL types, so Map.DecodeValue returns them.
func Register(m *pgtype.Map) {
	m.RegisterDefaultType(pgtype.Float8OID, Float8(0))
	m.RegisterDefaultType(pgtype.Int2OID, Int2(0))
	m.RegisterDefaultType(pgtype.Int4OID, Int4(0))
	m.RegisterDefaultType(pgtype.Int8OID, Int8(0))
	m.RegisterDefaultType(pgtype.TextOID, Text(""))
	m.RegisterDefaultType(pgtype.VarcharOID, Text(""))
	m.RegisterDefaultType(pgtype.TimestamptzOID, Timestamptz{})
	m.RegisterDefaultType(pgtype.UUIDOID, UUID{})
}
