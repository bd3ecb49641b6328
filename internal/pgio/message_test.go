package pgio_test

import (
	"bytes"
	"io"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgproto3"
	"github.com/pgfield/pgfield/internal/pgio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMessagesDecode(t *testing.T) {
	var buf []byte
	buf = pgio.AppendParameterStatus(buf, "client_encoding", "UTF8")
	buf = pgio.AppendRowDescription(buf, []pgconn.FieldDescription{
		{Name: "id", TableOID: 16384, TableAttributeNumber: 1, DataTypeOID: 20, DataTypeSize: 8, TypeModifier: -1},
	})
	buf = pgio.AppendDataRow(buf, [][]byte{[]byte("7")})
	buf = pgio.AppendDataRow(buf, [][]byte{nil})
	buf = pgio.AppendCommandComplete(buf, "SELECT 2")
	buf = pgio.AppendErrorResponse(buf, "ERROR", "22P02", "invalid input syntax")
	buf = pgio.AppendReadyForQuery(buf, 'I')

	frontend := pgproto3.NewFrontend(bytes.NewReader(buf), io.Discard)

	msg, err := frontend.Receive()
	require.NoError(t, err)
	ps, ok := msg.(*pgproto3.ParameterStatus)
	require.True(t, ok)
	assert.Equal(t, "client_encoding", ps.Name)
	assert.Equal(t, "UTF8", ps.Value)

	msg, err = frontend.Receive()
	require.NoError(t, err)
	rd, ok := msg.(*pgproto3.RowDescription)
	require.True(t, ok)
	require.Len(t, rd.Fields, 1)
	assert.Equal(t, "id", string(rd.Fields[0].Name))
	assert.Equal(t, uint32(16384), rd.Fields[0].TableOID)
	assert.Equal(t, uint16(1), rd.Fields[0].TableAttributeNumber)
	assert.Equal(t, uint32(20), rd.Fields[0].DataTypeOID)
	assert.Equal(t, int16(8), rd.Fields[0].DataTypeSize)
	assert.Equal(t, int32(-1), rd.Fields[0].TypeModifier)

	msg, err = frontend.Receive()
	require.NoError(t, err)
	dr, ok := msg.(*pgproto3.DataRow)
	require.True(t, ok)
	assert.Equal(t, [][]byte{[]byte("7")}, dr.Values)

	msg, err = frontend.Receive()
	require.NoError(t, err)
	dr, ok = msg.(*pgproto3.DataRow)
	require.True(t, ok)
	require.Len(t, dr.Values, 1)
	assert.Nil(t, dr.Values[0])

	msg, err = frontend.Receive()
	require.NoError(t, err)
	cc, ok := msg.(*pgproto3.CommandComplete)
	require.True(t, ok)
	assert.Equal(t, "SELECT 2", string(cc.CommandTag))

	msg, err = frontend.Receive()
	require.NoError(t, err)
	er, ok := msg.(*pgproto3.ErrorResponse)
	require.True(t, ok)
	assert.Equal(t, "ERROR", er.Severity)
	assert.Equal(t, "22P02", er.Code)
	assert.Equal(t, "invalid input syntax", er.Message)

	msg, err = frontend.Receive()
	require.NoError(t, err)
	rfq, ok := msg.(*pgproto3.ReadyForQuery)
	require.True(t, ok)
	assert.Equal(t, byte('I'), rfq.TxStatus)
}
