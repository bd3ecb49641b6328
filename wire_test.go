package pgfield_test

import (
	"bytes"
	"io"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgproto3"
	"github.com/pgfield/pgfield"
	"github.com/pgfield/pgfield/internal/pgio"
	"github.com/pgfield/pgfield/pgtype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// receiveAll feeds every message of a simple query response to b until ReadyForQuery.
func receiveAll(t testing.TB, b *pgfield.ResultBuilder, wire []byte) {
	t.Helper()

	frontend := pgproto3.NewFrontend(bytes.NewReader(wire), io.Discard)
	for {
		msg, err := frontend.Receive()
		require.NoError(t, err)
		require.NoError(t, b.Receive(msg))
		if _, ok := msg.(*pgproto3.ReadyForQuery); ok {
			return
		}
	}
}

func queryResponse(fields []pgconn.FieldDescription, rows [][][]byte, tag string) []byte {
	buf := pgio.AppendRowDescription(nil, fields)
	for _, row := range rows {
		buf = pgio.AppendDataRow(buf, row)
	}
	buf = pgio.AppendCommandComplete(buf, tag)
	return pgio.AppendReadyForQuery(buf, 'I')
}

func TestWireResponseMatchesNewResult(t *testing.T) {
	b := pgfield.NewResultBuilder()
	receiveAll(t, b, queryResponse(testFieldDescriptions, testRows, "SELECT 3"))

	built, err := b.Build()
	require.NoError(t, err)

	res := newTestResult(t)
	assert.Equal(t, res.FieldDescriptions(), built.FieldDescriptions())
	assert.Equal(t, "SELECT 3", built.CommandTag())
	require.Equal(t, res.Len(), built.Len())
	for i, row := range res.All() {
		assert.True(t, row.Equal(built.Row(i)), "row %d", i)
	}

	// The frontend reuses its read buffer, so the values must have been copied.
	assert.Equal(t, `{a,"b c",NULL}`, built.Field(0, 3).View())
	assert.True(t, built.Field(1, 2).IsNull())
	assert.Equal(t, "", built.Field(1, 1).View())
	assert.False(t, built.Field(1, 1).IsNull())
}

func TestWireResponseClientEncoding(t *testing.T) {
	fields := []pgconn.FieldDescription{{Name: "names", DataTypeOID: pgtype.TextArrayOID}}
	// 0x835c is a katakana whose trailing byte is a backslash.
	wire := pgio.AppendParameterStatus(nil, "client_encoding", "SJIS")
	wire = append(wire, queryResponse(fields, [][][]byte{{[]byte("{\x83\x5c,x}")}}, "SELECT 1")...)

	b := pgfield.NewResultBuilder()
	receiveAll(t, b, wire)
	res, err := b.Build()
	require.NoError(t, err)
	assert.Equal(t, "SJIS", res.Encoding().Name())

	tok, err := res.Field(0, 0).Array()
	require.NoError(t, err)
	require.Equal(t, 2, tok.Len())
	assert.Equal(t, "\x83\x5c", tok.Elements[0].Text)
	assert.Equal(t, "x", tok.Elements[1].Text)
}

func TestWireErrorResponse(t *testing.T) {
	wire := pgio.AppendErrorResponse(nil, "ERROR", "42P01", `relation "missing" does not exist`)
	wire = pgio.AppendReadyForQuery(wire, 'I')

	b := pgfield.NewResultBuilder()
	receiveAll(t, b, wire)

	_, err := b.Build()
	var pgErr *pgconn.PgError
	require.ErrorAs(t, err, &pgErr)
	assert.Equal(t, "42P01", pgErr.Code)
	assert.Equal(t, `relation "missing" does not exist`, pgErr.Message)
}
