package pgfield_test

import (
	"bytes"
	"database/sql"
	"math"
	"testing"

	"github.com/pgfield/pgfield"
	"github.com/pgfield/pgfield/pgtype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFieldMetadata(t *testing.T) {
	res := newTestResult(t)
	f := res.Field(0, 1)

	assert.Equal(t, "name", f.Name())
	assert.Equal(t, uint32(pgtype.TextOID), f.Type())
	assert.Equal(t, uint32(16384), f.Table())
	assert.Equal(t, uint16(2), f.TableColumn())
	assert.Equal(t, 1, f.Num())
	assert.Equal(t, 0, f.RowNum())
	assert.Equal(t, testFieldDescriptions[1], f.Description())

	computed := res.Field(0, 2)
	assert.Equal(t, uint32(0), computed.Table())
	assert.Equal(t, uint16(0), computed.TableColumn())
}

func TestFieldNullAndEmpty(t *testing.T) {
	res := newTestResult(t)

	empty := res.Field(1, 1)
	assert.False(t, empty.IsNull())
	assert.Equal(t, 0, empty.Len())
	assert.NotNil(t, empty.Bytes())
	assert.Len(t, empty.Bytes(), 0)
	assert.Equal(t, "", empty.View())

	null := res.Field(1, 2)
	assert.True(t, null.IsNull())
	assert.Equal(t, 0, null.Len())
	assert.Nil(t, null.Bytes())
	assert.Equal(t, "", null.View())
	assert.Equal(t, "", null.String())
}

func TestFieldBytesCapacityIsLimited(t *testing.T) {
	res := newTestResult(t)

	b := res.Field(0, 0).Bytes()
	assert.Equal(t, len(b), cap(b))

	b = append(b, '9')
	assert.Equal(t, "19", string(b))
	assert.Equal(t, "alice", res.Field(0, 1).View())
}

func TestFieldEqual(t *testing.T) {
	res := newTestResult(t)
	other := newTestResult(t)

	assert.True(t, res.Field(0, 1).Equal(res.Field(0, 1)))
	assert.True(t, res.Field(0, 1).Equal(other.Field(0, 1)))
	assert.False(t, res.Field(0, 0).Equal(res.Field(1, 0)))

	// NULL fields are equal regardless of column type.
	assert.True(t, res.Field(1, 2).Equal(res.Field(2, 1)))
	assert.True(t, res.Field(2, 3).Equal(other.Field(1, 2)))

	// NULL is not the empty string.
	assert.False(t, res.Field(1, 2).Equal(res.Field(1, 1)))
	assert.False(t, res.Field(1, 1).Equal(res.Field(1, 2)))

	// Equality is textual.
	zero := singleFieldResult(t, pgtype.Float8OID, []byte("0"))
	zeroPoint := singleFieldResult(t, pgtype.Float8OID, []byte("0.0"))
	assert.False(t, zero.Field(0, 0).Equal(zeroPoint.Field(0, 0)))
}

func TestAs(t *testing.T) {
	res := newTestResult(t)

	n, err := pgfield.As[int](res.Field(0, 0))
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	s, err := pgfield.As[string](res.Field(0, 1))
	require.NoError(t, err)
	assert.Equal(t, "alice", s)

	f, err := pgfield.As[float64](res.Field(0, 2))
	require.NoError(t, err)
	assert.Equal(t, 1.5, f)
}

func TestAsMalformed(t *testing.T) {
	res := newTestResult(t)

	_, err := pgfield.As[int](res.Field(2, 0))
	require.Error(t, err)
	assert.ErrorIs(t, err, pgtype.ErrConversion)

	var fieldErr *pgfield.FieldError
	require.ErrorAs(t, err, &fieldErr)
	assert.Equal(t, 2, fieldErr.Row)
	assert.Equal(t, 0, fieldErr.Column)
	assert.Equal(t, "id", fieldErr.Name)

	var convErr *pgtype.ConversionError
	require.ErrorAs(t, err, &convErr)
	assert.Equal(t, "int", convErr.TypeName)
	assert.Equal(t, "42x", convErr.Text)
	assert.Contains(t, err.Error(), `"42x"`)
}

func TestAsNull(t *testing.T) {
	res := newTestResult(t)
	null := res.Field(1, 2)

	_, err := pgfield.As[float64](null)
	var nullErr *pgtype.NullConversionError
	require.ErrorAs(t, err, &nullErr)
	assert.Equal(t, "float64", nullErr.TypeName)
	assert.ErrorIs(t, err, pgtype.ErrConversion)

	p, err := pgfield.As[*float64](null)
	require.NoError(t, err)
	assert.Nil(t, p)

	nf, err := pgfield.As[sql.Null[float64]](null)
	require.NoError(t, err)
	assert.False(t, nf.Valid)

	f8, err := pgfield.As[pgtype.Float8](null)
	require.NoError(t, err)
	assert.False(t, f8.Valid)
}

func TestAsNullableNonNull(t *testing.T) {
	res := newTestResult(t)

	p, err := pgfield.As[*float64](res.Field(0, 2))
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, 1.5, *p)

	nf, err := pgfield.As[sql.Null[float64]](res.Field(0, 2))
	require.NoError(t, err)
	assert.Equal(t, sql.Null[float64]{V: 1.5, Valid: true}, nf)

	f8, err := pgfield.As[pgtype.Float8](res.Field(2, 2))
	require.NoError(t, err)
	assert.True(t, f8.Valid)
	assert.True(t, math.IsNaN(f8.Float64))
}

func TestToLeavesTargetUntouchedOnNull(t *testing.T) {
	res := newTestResult(t)

	n := 7.0
	ok, err := pgfield.To(res.Field(1, 2), &n)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, 7.0, n)

	ok, err = pgfield.To(res.Field(0, 2), &n)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 1.5, n)
}

func TestToWritesNullRepresentation(t *testing.T) {
	res := newTestResult(t)

	v := 3.0
	p := &v
	ok, err := pgfield.To(res.Field(1, 2), &p)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Nil(t, p)
}

func TestToStillFailsOnMalformedText(t *testing.T) {
	res := newTestResult(t)

	n := 7
	ok, err := pgfield.To(res.Field(2, 0), &n)
	assert.False(t, ok)
	assert.ErrorIs(t, err, pgtype.ErrConversion)

	ok, err = pgfield.ToDefault(res.Field(2, 0), &n, -1)
	assert.False(t, ok)
	assert.ErrorIs(t, err, pgtype.ErrConversion)
}

func TestToDefault(t *testing.T) {
	res := newTestResult(t)

	n := 7.0
	ok, err := pgfield.ToDefault(res.Field(1, 2), &n, -1)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, -1.0, n)

	ok, err = pgfield.ToDefault(res.Field(0, 2), &n, -1)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 1.5, n)
}

func TestAsDefault(t *testing.T) {
	res := newTestResult(t)

	s, err := pgfield.AsDefault(res.Field(2, 1), "anonymous")
	require.NoError(t, err)
	assert.Equal(t, "anonymous", s)

	s, err = pgfield.AsDefault(res.Field(0, 1), "anonymous")
	require.NoError(t, err)
	assert.Equal(t, "alice", s)

	_, err = pgfield.AsDefault(res.Field(2, 0), 0)
	assert.ErrorIs(t, err, pgtype.ErrConversion)
}

func TestGet(t *testing.T) {
	res := newTestResult(t)

	p, err := pgfield.Get[int64](res.Field(1, 0))
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, int64(2), *p)

	p, err = pgfield.Get[int64](res.Field(2, 1))
	require.NoError(t, err)
	assert.Nil(t, p)
}

func TestFieldScanRejectsNonPointer(t *testing.T) {
	res := newTestResult(t)

	var n int
	_, err := res.Field(0, 0).Scan(n)
	assert.ErrorIs(t, err, pgtype.ErrConversion)

	_, err = res.Field(1, 2).Scan(nil)
	assert.ErrorIs(t, err, pgtype.ErrConversion)
}

func TestParseRenderRoundTrip(t *testing.T) {
	m := pgtype.NewMap()

	for _, text := range []string{"0", "1", "-1", "9223372036854775807", "-9223372036854775808"} {
		res := singleFieldResult(t, pgtype.Int8OID, []byte(text))
		n, err := pgfield.As[int64](res.Field(0, 0))
		require.NoError(t, err)

		rendered, err := pgtype.Render(m, n)
		require.NoError(t, err)
		assert.Equal(t, text, rendered)
	}

	for _, text := range []string{"t", "f", "hello", "1.25", "-0.5"} {
		res := singleFieldResult(t, pgtype.TextOID, []byte(text))
		s, err := pgfield.As[string](res.Field(0, 0))
		require.NoError(t, err)
		rendered, err := pgtype.Render(m, s)
		require.NoError(t, err)
		assert.Equal(t, text, rendered)
	}
}

func TestFieldArray(t *testing.T) {
	res := newTestResult(t)

	tok, err := res.Field(0, 3).Array()
	require.NoError(t, err)
	require.True(t, tok.IsNested())
	require.Equal(t, 3, tok.Len())
	assert.Equal(t, "a", tok.Elements[0].Text)
	assert.Equal(t, "b c", tok.Elements[1].Text)
	assert.True(t, tok.Elements[2].IsNull())

	tok, err = res.Field(2, 3).Array()
	require.NoError(t, err)
	assert.True(t, tok.IsNull())

	_, err = res.Field(0, 1).Array()
	var syntaxErr *pgtype.SyntaxError
	assert.ErrorAs(t, err, &syntaxErr)
}

func TestFieldArrayConversion(t *testing.T) {
	res := newTestResult(t)

	tags, err := pgfield.As[[]*string](res.Field(0, 3))
	require.NoError(t, err)
	require.Len(t, tags, 3)
	assert.Equal(t, "a", *tags[0])
	assert.Equal(t, "b c", *tags[1])
	assert.Nil(t, tags[2])

	_, err = pgfield.As[[]string](res.Field(0, 3))
	var nullErr *pgtype.NullConversionError
	assert.ErrorAs(t, err, &nullErr)

	grid := singleFieldResult(t, pgtype.Int4ArrayOID, []byte("{{1,2},{3,4}}"))
	ints, err := pgfield.As[[][]int32](grid.Field(0, 0))
	require.NoError(t, err)
	assert.Equal(t, [][]int32{{1, 2}, {3, 4}}, ints)

	_, err = pgfield.As[[]int32](grid.Field(0, 0))
	assert.ErrorIs(t, err, pgtype.ErrConversion)
}

func TestFieldArrayShiftJIS(t *testing.T) {
	sjis, err := pgtype.EncodingByName("SJIS")
	require.NoError(t, err)

	// 0x95 0x5c is one character whose trailing byte is a backslash.
	text := []byte("{\"\x95\x5c\",x}")

	res := singleFieldResult(t, pgtype.TextArrayOID, text, pgfield.WithEncoding(sjis))
	tok, err := res.Field(0, 0).Array()
	require.NoError(t, err)
	require.Equal(t, 2, tok.Len())
	assert.Equal(t, "\x95\x5c", tok.Elements[0].Text)
	assert.Equal(t, "x", tok.Elements[1].Text)

	utf8 := singleFieldResult(t, pgtype.TextArrayOID, text)
	_, err = utf8.Field(0, 0).Array()
	assert.Error(t, err)
}

func TestFieldValue(t *testing.T) {
	res := newTestResult(t)

	v, err := res.Field(0, 0).Value()
	require.NoError(t, err)
	assert.Equal(t, int64(1), v)

	v, err = res.Field(1, 2).Value()
	require.NoError(t, err)
	assert.Nil(t, v)

	ts := singleFieldResult(t, pgtype.TimestamptzOID, []byte("infinity"))
	v, err = ts.Field(0, 0).Value()
	require.NoError(t, err)
	assert.Equal(t, pgtype.Timestamptz{InfinityModifier: pgtype.Infinity, Valid: true}, v)

	unknown := singleFieldResult(t, 999999, []byte("whatever"))
	v, err = unknown.Field(0, 0).Value()
	require.NoError(t, err)
	assert.Equal(t, "whatever", v)
}

func TestFieldDecode(t *testing.T) {
	latin1, err := pgtype.EncodingByName("latin1")
	require.NoError(t, err)

	res := singleFieldResult(t, pgtype.TextOID, []byte("caf\xe9"), pgfield.WithEncoding(latin1))
	s, err := res.Field(0, 0).Decode()
	require.NoError(t, err)
	assert.Equal(t, "café", s)

	res = singleFieldResult(t, pgtype.TextOID, []byte("café"))
	s, err = res.Field(0, 0).Decode()
	require.NoError(t, err)
	assert.Equal(t, "café", s)
}

func TestFieldWriteTo(t *testing.T) {
	res := newTestResult(t)

	var buf bytes.Buffer
	n, err := res.Field(0, 1).WriteTo(&buf)
	require.NoError(t, err)
	assert.Equal(t, int64(5), n)
	assert.Equal(t, "alice", buf.String())

	buf.Reset()
	n, err = res.Field(1, 2).WriteTo(&buf)
	require.NoError(t, err)
	assert.Equal(t, int64(0), n)
	assert.Equal(t, "", buf.String())
}
