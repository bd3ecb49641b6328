package pgfield_test

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"testing"

	"github.com/pgfield/pgfield"
	"github.com/pgfield/pgfield/pgtype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	_ io.Reader      = (*pgfield.FieldReader)(nil)
	_ io.ByteScanner = (*pgfield.FieldReader)(nil)
	_ io.RuneScanner = (*pgfield.FieldReader)(nil)
	_ io.WriterTo    = (*pgfield.FieldReader)(nil)
	_ io.WriterTo    = pgfield.Field{}
)

func TestFieldReaderFscan(t *testing.T) {
	res := singleFieldResult(t, pgtype.PointOID, []byte("12 34.5"))

	var x int
	var y float64
	n, err := fmt.Fscan(res.Field(0, 0).Reader(), &x, &y)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, 12, x)
	assert.Equal(t, 34.5, y)
}

func TestFieldReaderRead(t *testing.T) {
	res := singleFieldResult(t, pgtype.TextOID, []byte("héllo"))
	fr := pgfield.NewFieldReader(res.Field(0, 0))

	assert.Equal(t, 6, fr.Len())

	b, err := fr.ReadByte()
	require.NoError(t, err)
	assert.Equal(t, byte('h'), b)

	r, size, err := fr.ReadRune()
	require.NoError(t, err)
	assert.Equal(t, 'é', r)
	assert.Equal(t, 2, size)

	require.NoError(t, fr.UnreadRune())
	r, _, err = fr.ReadRune()
	require.NoError(t, err)
	assert.Equal(t, 'é', r)

	rest, err := io.ReadAll(fr)
	require.NoError(t, err)
	assert.Equal(t, "llo", string(rest))

	_, err = fr.ReadByte()
	assert.Equal(t, io.EOF, err)
}

func TestFieldReaderNull(t *testing.T) {
	res := newTestResult(t)

	b, err := io.ReadAll(res.Field(1, 2).Reader())
	require.NoError(t, err)
	assert.Empty(t, b)
}

func TestFieldReaderWriteTo(t *testing.T) {
	res := newTestResult(t)

	var buf bytes.Buffer
	n, err := res.Field(0, 3).Reader().WriteTo(&buf)
	require.NoError(t, err)
	assert.Equal(t, int64(len(`{a,"b c",NULL}`)), n)
	assert.Equal(t, `{a,"b c",NULL}`, buf.String())
}

func TestFieldReaderIsNotSeekableOrWritable(t *testing.T) {
	res := newTestResult(t)
	fr := res.Field(0, 1).Reader()

	_, err := fr.ReadByte()
	require.NoError(t, err)

	_, err = fr.Seek(0, io.SeekStart)
	assert.True(t, errors.Is(err, errors.ErrUnsupported))

	n, err := fr.Write([]byte("x"))
	assert.Equal(t, 0, n)
	assert.True(t, errors.Is(err, errors.ErrUnsupported))

	// A failed seek does not move the reader.
	rest, err := io.ReadAll(fr)
	require.NoError(t, err)
	assert.Equal(t, "lice", string(rest))
	assert.Equal(t, "alice", res.Field(0, 1).View())
}
