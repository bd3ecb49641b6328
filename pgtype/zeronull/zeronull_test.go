package zeronull_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pgfield/pgfield/pgtype"
	"github.com/pgfield/pgfield/pgtype/zeronull"
)

func TestNullScansAsZero(t *testing.T) {
	m := pgtype.NewMap()

	var i2 zeronull.Int2 = 7
	require.NoError(t, m.Scan(nil, &i2))
	assert.Equal(t, zeronull.Int2(0), i2)

	var i8 zeronull.Int8 = 7
	require.NoError(t, m.Scan(nil, &i8))
	assert.Equal(t, zeronull.Int8(0), i8)

	var f zeronull.Float8 = 1.5
	require.NoError(t, m.Scan(nil, &f))
	assert.Equal(t, zeronull.Float8(0), f)

	var s zeronull.Text = "x"
	require.NoError(t, m.Scan(nil, &s))
	assert.Equal(t, zeronull.Text(""), s)

	ts := zeronull.Timestamptz(time.Now())
	require.NoError(t, m.Scan(nil, &ts))
	assert.True(t, time.Time(ts).IsZero())

	u := zeronull.UUID{1}
	require.NoError(t, m.Scan(nil, &u))
	assert.Equal(t, zeronull.UUID{}, u)

	assert.True(t, pgtype.HasNull[zeronull.Int4](m))
}

func TestScanValues(t *testing.T) {
	m := pgtype.NewMap()

	i4, err := pgtype.Parse[zeronull.Int4](m, []byte("-12"))
	require.NoError(t, err)
	assert.Equal(t, zeronull.Int4(-12), i4)

	_, err = pgtype.Parse[zeronull.Int2](m, []byte("40000"))
	require.Error(t, err)
	assert.ErrorIs(t, err, pgtype.ErrConversion)

	f, err := pgtype.Parse[zeronull.Float8](m, []byte("2.25"))
	require.NoError(t, err)
	assert.Equal(t, zeronull.Float8(2.25), f)

	s, err := pgtype.Parse[zeronull.Text](m, []byte("hello"))
	require.NoError(t, err)
	assert.Equal(t, zeronull.Text("hello"), s)

	ts, err := pgtype.Parse[zeronull.Timestamptz](m, []byte("2022-03-04 05:06:07Z"))
	require.NoError(t, err)
	assert.True(t, time.Date(2022, 3, 4, 5, 6, 7, 0, time.UTC).Equal(time.Time(ts)))

	_, err = pgtype.Parse[zeronull.Timestamptz](m, []byte("infinity"))
	require.Error(t, err)
}

func TestZeroEncodesAsNull(t *testing.T) {
	m := pgtype.NewMap()

	for _, v := range []any{zeronull.Int2(0), zeronull.Int4(0), zeronull.Int8(0), zeronull.Float8(0), zeronull.Text(""), zeronull.Timestamptz{}, zeronull.UUID{}} {
		buf, err := m.Encode(v, nil)
		require.NoError(t, err)
		assert.Nilf(t, buf, "%T", v)
	}

	buf, err := m.Encode(zeronull.Int8(42), nil)
	require.NoError(t, err)
	assert.Equal(t, "42", string(buf))

	buf, err = m.Encode(zeronull.Text("abc"), nil)
	require.NoError(t, err)
	assert.Equal(t, "abc", string(buf))
}

func TestUUID(t *testing.T) {
	const text = "00010203-0405-0607-0809-0a0b0c0d0e0f"
	want := zeronull.UUID{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15}

	for _, src := range []string{text, "000102030405060708090a0b0c0d0e0f", "{" + text + "}"} {
		var u zeronull.UUID
		require.NoError(t, u.DecodeText([]byte(src)), src)
		assert.Equal(t, want, u, src)
	}

	buf, err := want.EncodeText(nil)
	require.NoError(t, err)
	assert.Equal(t, text, string(buf))

	v, err := want.Value()
	require.NoError(t, err)
	assert.Equal(t, text, v)

	var u zeronull.UUID
	assert.Error(t, u.DecodeText([]byte("0001")))
	assert.Error(t, u.DecodeText([]byte("zz010203-0405-0607-0809-0a0b0c0d0e0f")))
}

func TestSQLInterfaces(t *testing.T) {
	var n zeronull.Int8
	require.NoError(t, n.Scan(int64(9)))
	assert.Equal(t, zeronull.Int8(9), n)
	require.NoError(t, n.Scan(nil))
	assert.Equal(t, zeronull.Int8(0), n)

	v, err := zeronull.Int8(0).Value()
	require.NoError(t, err)
	assert.Nil(t, v)

	v, err = zeronull.Text("a").Value()
	require.NoError(t, err)
	assert.Equal(t, "a", v)

	now := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	var ts zeronull.Timestamptz
	require.NoError(t, ts.Scan(now))
	v, err = ts.Value()
	require.NoError(t, err)
	assert.Equal(t, now, v)
}

func TestRegister(t *testing.T) {
	m := pgtype.NewMap()
	zeronull.Register(m)

	v, err := m.DecodeValue(pgtype.Int8OID, pgtype.UTF8, []byte("5"))
	require.NoError(t, err)
	assert.Equal(t, zeronull.Int8(5), v)

	v, err = m.DecodeValue(pgtype.TextOID, pgtype.UTF8, []byte("s"))
	require.NoError(t, err)
	assert.Equal(t, zeronull.Text("s"), v)
}
