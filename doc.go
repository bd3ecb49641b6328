// Package pgfield provides typed access to the cells of a materialized PostgreSQL query result.
/*
A Result holds every row of a query in one immutable buffer. Row and Field are small values that index into it; copying
them never copies row data. Because a Result never changes after it is built it can be read from any number of
goroutines without locking, and any Row, Field, byte slice or string obtained from it keeps the whole Result reachable.

Building a Result

Results are produced from the output of a query. ResultFromPgconn converts a *pgconn.Result as returned by
pgconn.ResultReader.Read. ResultBuilder consumes pgproto3 backend messages directly. NewResult builds a Result from
field descriptions and raw row values, which is mostly useful in tests.

	res, err := pgfield.ResultFromPgconn(conn.ExecParams(ctx, sql, nil, nil, nil, nil).Read())

Only the text format is supported. Columns requested in binary format are rejected when the Result is built.

Reading Fields

Field exposes the raw text of a cell with Bytes and View, its NULL status with IsNull and its column metadata with Name,
Type, Table and TableColumn. Typed values are read through the pgtype.Map of the Result.

	var n int64
	ok, err := pgfield.To(res.Field(0, 0), &n) // ok is false and n untouched if the field is NULL

	n, err := pgfield.As[int64](res.Field(0, 0)) // NULL is a pgtype.NullConversionError

	p, err := pgfield.As[*int64](res.Field(0, 0)) // NULL is a nil pointer

	n, err := pgfield.AsDefault(res.Field(0, 0), int64(-1)) // NULL is -1

NULL is never turned into a Go zero value unless the destination type says so. Pointers, sql.Null[T], the pgtype
nullable types such as pgtype.Int8, and the types in package zeronull all have a representation of NULL.

Equality

Field.Equal compares raw text byte for byte. All NULL fields are equal to each other and unequal to every non-NULL
field. This is not SQL's three-valued comparison.

Arrays

Field.Array parses an array literal into a pgtype.ArrayToken tree. Scanning into a slice type parses the literal and
converts each element, so As[[]int32] and As[[][]string] work without any registration.

Tracing

A BuildTracer and ConversionTracer can be set with WithTracer. Package tracelog logs through any of the adapters in
the log directory. Package multitracer combines several tracers.
*/
package pgfield
