package pgfield_test

import (
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pgfield/pgfield"
	"github.com/pgfield/pgfield/pgtype"
	"github.com/stretchr/testify/require"
)

var testFieldDescriptions = []pgconn.FieldDescription{
	{Name: "id", TableOID: 16384, TableAttributeNumber: 1, DataTypeOID: pgtype.Int8OID, DataTypeSize: 8, TypeModifier: -1},
	{Name: "name", TableOID: 16384, TableAttributeNumber: 2, DataTypeOID: pgtype.TextOID, DataTypeSize: -1, TypeModifier: -1},
	{Name: "score", DataTypeOID: pgtype.Float8OID, DataTypeSize: 8, TypeModifier: -1},
	{Name: "tags", DataTypeOID: pgtype.TextArrayOID, DataTypeSize: -1, TypeModifier: -1},
}

var testRows = [][][]byte{
	{[]byte("1"), []byte("alice"), []byte("1.5"), []byte(`{a,"b c",NULL}`)},
	{[]byte("2"), []byte(""), nil, []byte("{}")},
	{[]byte("42x"), nil, []byte("NaN"), nil},
}

func newTestResult(t testing.TB, opts ...pgfield.ResultOption) *pgfield.Result {
	t.Helper()

	res, err := pgfield.NewResult(testFieldDescriptions, testRows, opts...)
	require.NoError(t, err)
	return res
}

// singleFieldResult returns a one row, one column result holding value.
func singleFieldResult(t testing.TB, oid uint32, value []byte, opts ...pgfield.ResultOption) *pgfield.Result {
	t.Helper()

	res, err := pgfield.NewResult(
		[]pgconn.FieldDescription{{Name: "v", DataTypeOID: oid}},
		[][][]byte{{value}},
		opts...,
	)
	require.NoError(t, err)
	return res
}
