// Package pgtype converts between Go values and the text form of PostgreSQL values.
/*
The primary type is the Map type. It maps Go types to conversion policies. A policy knows how to parse a value from
text, how to render a value as text, and whether the Go type has an in-band representation of SQL NULL. NewMap creates
a Map that already supports the common Go types. Additional types can be registered with RegisterCodec.

Use Map.Scan and Map.Encode to convert text to Go and Go to text respectively. The generic Parse and Render functions
are thin wrappers over them.

NULL Handling

A Go type either has a way to represent NULL or it does not. Pointers, sql.Scanner implementations such as sql.Null[T],
TextDecoder implementations such as Int4 and Text, and codecs that implement NullCodec all have one. Plain Go types
such as int and string do not. Scanning NULL into a type without a null representation is a NullConversionError. It is
never silently turned into the zero value. Package zeronull provides types that opt in to that behavior.

Supported Types

Without registration a Map handles bool, string, []byte, all integer and float widths, time.Time, named types with one
of those underlying kinds, pointers to any supported type, sql.Scanner and driver.Valuer implementations,
encoding.TextUnmarshaler and encoding.TextMarshaler implementations, and slices of any supported type. Numeric parsing
ignores surrounding whitespace but rejects any other trailing text and any value that does not fit in the destination.

Array Support

ParseArray turns an array literal such as {{1,2},{3,NULL}} into a tree of ArrayToken values. Slices are scanned by
parsing the literal and converting every element with the element type's policy, so []int, [][]string and []*float64
work out of the box. A NULL element requires an element type with a null representation.

Extending Type Support

Types in external packages can be supported by registering a Codec. See the ext directory for shopspring/decimal,
cockroachdb/apd and gofrs/uuid.
*/
package pgtype
