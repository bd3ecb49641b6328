package pgfield

import (
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgproto3"
	"github.com/pgfield/pgfield/pgtype"
)

var errRowsBeforeFields = errors.New("field descriptions must be set before rows are appended")

// ResultBuilder accumulates field descriptions and rows and produces a Result. Row values are copied into a single
// buffer, so the caller may reuse them after AppendRow or Receive returns. A ResultBuilder is not safe for concurrent
// use. After Build it is empty and may be reused.
type ResultBuilder struct {
	cfg resultConfig

	fields     []pgconn.FieldDescription
	buf        []byte
	spans      []span
	rows       int
	commandTag string
	err        error
	start      time.Time
}

func NewResultBuilder(opts ...ResultOption) *ResultBuilder {
	return &ResultBuilder{cfg: newResultConfig(opts)}
}

// SetFieldDescriptions sets the column metadata. It must be called before any row is appended. Every column must use
// the text format.
func (b *ResultBuilder) SetFieldDescriptions(fields []pgconn.FieldDescription) error {
	b.started()
	if b.rows > 0 {
		return errRowsBeforeFields
	}
	for i, fd := range fields {
		if fd.Format != pgtype.TextFormatCode {
			return fmt.Errorf("column %d (%q) uses format code %d, only text format is supported", i, fd.Name, fd.Format)
		}
	}

	b.fields = make([]pgconn.FieldDescription, len(fields))
	copy(b.fields, fields)
	return nil
}

// AppendRow copies values as the next row. A nil value is NULL and an empty non-nil value is the empty string.
func (b *ResultBuilder) AppendRow(values [][]byte) error {
	b.started()
	if len(values) != len(b.fields) {
		return fmt.Errorf("row %d has %d values, expected %d", b.rows, len(values), len(b.fields))
	}

	for _, v := range values {
		if v == nil {
			b.spans = append(b.spans, span{off: len(b.buf), len: nullSpanLen})
			continue
		}
		b.spans = append(b.spans, span{off: len(b.buf), len: len(v)})
		b.buf = append(b.buf, v...)
	}
	b.rows++
	return nil
}

// Receive consumes one message of a simple or extended query response. RowDescription, DataRow, CommandComplete and
// ErrorResponse build the Result. A ParameterStatus for client_encoding sets the encoding. Other messages are ignored.
// An ErrorResponse is converted to a *pgconn.PgError and returned by Build.
func (b *ResultBuilder) Receive(msg pgproto3.BackendMessage) error {
	switch msg := msg.(type) {
	case *pgproto3.RowDescription:
		fields := make([]pgconn.FieldDescription, len(msg.Fields))
		for i, f := range msg.Fields {
			fields[i] = pgconn.FieldDescription{
				Name:                 string(f.Name),
				TableOID:             f.TableOID,
				TableAttributeNumber: f.TableAttributeNumber,
				DataTypeOID:          f.DataTypeOID,
				DataTypeSize:         f.DataTypeSize,
				TypeModifier:         f.TypeModifier,
				Format:               f.Format,
			}
		}
		return b.SetFieldDescriptions(fields)
	case *pgproto3.DataRow:
		return b.AppendRow(msg.Values)
	case *pgproto3.CommandComplete:
		b.commandTag = string(msg.CommandTag)
	case *pgproto3.ParameterStatus:
		if msg.Name == "client_encoding" {
			enc, err := pgtype.EncodingByName(msg.Value)
			if err != nil {
				return err
			}
			b.cfg.encoding = enc
		}
	case *pgproto3.ErrorResponse:
		b.err = pgconn.ErrorResponseToPgError(msg)
	}
	return nil
}

// Build returns the Result and resets the builder.
func (b *ResultBuilder) Build() (*Result, error) {
	defer b.reset()

	if b.err != nil {
		if b.cfg.tracer != nil {
			b.cfg.tracer.TraceBuild(nil, TraceBuildData{Duration: b.elapsed(), Err: b.err})
		}
		return nil, b.err
	}

	buf := b.buf
	if buf == nil {
		buf = []byte{}
	}

	r := &Result{
		fields:      b.fields,
		columnIndex: make(map[string]int, len(b.fields)),
		buf:         buf,
		spans:       b.spans,
		rows:        b.rows,
		encoding:    b.cfg.encoding,
		commandTag:  b.commandTag,
		typeMap:     b.cfg.typeMap,
	}
	for i := len(r.fields) - 1; i >= 0; i-- {
		r.columnIndex[r.fields[i].Name] = i
	}
	if ct, ok := b.cfg.tracer.(ConversionTracer); ok {
		r.convTracer = ct
	}

	if b.cfg.tracer != nil {
		b.cfg.tracer.TraceBuild(r, TraceBuildData{
			Duration:   b.elapsed(),
			Rows:       r.rows,
			Columns:    len(r.fields),
			Bytes:      len(r.buf),
			CommandTag: r.commandTag,
		})
	}

	return r, nil
}

func (b *ResultBuilder) started() {
	if b.start.IsZero() {
		b.start = time.Now()
	}
}

func (b *ResultBuilder) elapsed() time.Duration {
	if b.start.IsZero() {
		return 0
	}
	return time.Since(b.start)
}

func (b *ResultBuilder) reset() {
	b.start = time.Time{}
	b.fields = nil
	b.buf = nil
	b.spans = nil
	b.rows = 0
	b.commandTag = ""
	b.err = nil
}
