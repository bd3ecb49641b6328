package pgfield

import (
	"iter"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pgfield/pgfield/pgtype"
)

// span locates the raw text of one cell in Result.buf. A length of -1 marks NULL.
type span struct {
	off int
	len int
}

const nullSpanLen = -1

// Result is an immutable, fully materialized query result. All cell text is held in one buffer that is shared by every
// Row, Field, byte slice and string derived from the Result.
type Result struct {
	fields      []pgconn.FieldDescription
	columnIndex map[string]int

	buf   []byte
	spans []span
	rows  int

	encoding   pgtype.Encoding
	commandTag string
	typeMap    *pgtype.Map
	convTracer ConversionTracer
}

// ResultOption configures the construction of a Result.
type ResultOption func(*resultConfig)

type resultConfig struct {
	typeMap  *pgtype.Map
	encoding pgtype.Encoding
	tracer   BuildTracer
}

// WithTypeMap sets the Map used to convert field text. By default every Result gets its own pgtype.NewMap.
func WithTypeMap(m *pgtype.Map) ResultOption {
	return func(c *resultConfig) {
		c.typeMap = m
	}
}

// WithEncoding sets the client encoding of the field text. The default is UTF8. A ParameterStatus message for
// client_encoding received by a ResultBuilder overrides it.
func WithEncoding(enc pgtype.Encoding) ResultOption {
	return func(c *resultConfig) {
		c.encoding = enc
	}
}

// WithTracer sets the tracer. If tracer also implements ConversionTracer it is used for field conversions.
func WithTracer(tracer BuildTracer) ResultOption {
	return func(c *resultConfig) {
		c.tracer = tracer
	}
}

func newResultConfig(opts []ResultOption) resultConfig {
	var c resultConfig
	for _, opt := range opts {
		opt(&c)
	}
	if c.typeMap == nil {
		c.typeMap = pgtype.NewMap()
	}
	return c
}

// NewResult builds a Result from field descriptions and raw text values. A nil value is NULL. rows is copied.
func NewResult(fields []pgconn.FieldDescription, rows [][][]byte, opts ...ResultOption) (*Result, error) {
	b := NewResultBuilder(opts...)
	if err := b.SetFieldDescriptions(fields); err != nil {
		return nil, err
	}
	for _, row := range rows {
		if err := b.AppendRow(row); err != nil {
			return nil, err
		}
	}
	return b.Build()
}

// ResultFromPgconn builds a Result from the output of pgconn.ResultReader.Read. If r.Err is set it is returned
// unchanged.
func ResultFromPgconn(r *pgconn.Result, opts ...ResultOption) (*Result, error) {
	if r.Err != nil {
		return nil, r.Err
	}

	b := NewResultBuilder(opts...)
	if err := b.SetFieldDescriptions(r.FieldDescriptions); err != nil {
		return nil, err
	}
	for _, row := range r.Rows {
		if err := b.AppendRow(row); err != nil {
			return nil, err
		}
	}
	b.commandTag = r.CommandTag.String()
	return b.Build()
}

// Len returns the number of rows.
func (r *Result) Len() int {
	return r.rows
}

// ColumnCount returns the number of columns.
func (r *Result) ColumnCount() int {
	return len(r.fields)
}

// Row returns row i. It panics with *OutOfRangeError if i is not in [0, r.Len()).
func (r *Result) Row(i int) Row {
	if i < 0 || i >= r.rows {
		panic(&OutOfRangeError{What: "row", Index: i, Len: r.rows})
	}
	return Row{res: r, row: i}
}

// Field returns the field at row and col. It panics with *OutOfRangeError if either index is out of range.
func (r *Result) Field(row, col int) Field {
	return r.Row(row).Field(col)
}

// FieldDescriptions returns a copy of the column metadata.
func (r *Result) FieldDescriptions() []pgconn.FieldDescription {
	fds := make([]pgconn.FieldDescription, len(r.fields))
	copy(fds, r.fields)
	return fds
}

// ColumnIndex returns the index of the first column named name.
func (r *Result) ColumnIndex(name string) (int, bool) {
	i, ok := r.columnIndex[name]
	return i, ok
}

func (r *Result) Encoding() pgtype.Encoding {
	return r.encoding
}

func (r *Result) TypeMap() *pgtype.Map {
	return r.typeMap
}

func (r *Result) CommandTag() string {
	return r.commandTag
}

// Size returns the number of bytes of cell text held by the Result.
func (r *Result) Size() int {
	return len(r.buf)
}

// All iterates over the rows in order.
func (r *Result) All() iter.Seq2[int, Row] {
	return func(yield func(int, Row) bool) {
		for i := 0; i < r.rows; i++ {
			if !yield(i, Row{res: r, row: i}) {
				return
			}
		}
	}
}

func (r *Result) span(row, col int) span {
	return r.spans[row*len(r.fields)+col]
}
