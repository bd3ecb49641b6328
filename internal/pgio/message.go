package pgio

import (
	"github.com/jackc/pgx/v5/pgconn"
)

// beginMessage appends the type byte and a length placeholder. finishMessage fills in the length.
func beginMessage(buf []byte, typ byte) ([]byte, int) {
	buf = append(buf, typ)
	start := len(buf)
	return AppendInt32(buf, -1), start
}

func finishMessage(buf []byte, start int) []byte {
	SetInt32(buf[start:], int32(len(buf)-start))
	return buf
}

func AppendRowDescription(buf []byte, fields []pgconn.FieldDescription) []byte {
	buf, start := beginMessage(buf, 'T')
	buf = AppendUint16(buf, uint16(len(fields)))
	for _, fd := range fields {
		buf = AppendCString(buf, fd.Name)
		buf = AppendUint32(buf, fd.TableOID)
		buf = AppendUint16(buf, fd.TableAttributeNumber)
		buf = AppendUint32(buf, fd.DataTypeOID)
		buf = AppendInt16(buf, fd.DataTypeSize)
		buf = AppendInt32(buf, fd.TypeModifier)
		buf = AppendInt16(buf, fd.Format)
	}
	return finishMessage(buf, start)
}

// AppendDataRow encodes one row. A nil value is NULL.
func AppendDataRow(buf []byte, values [][]byte) []byte {
	buf, start := beginMessage(buf, 'D')
	buf = AppendUint16(buf, uint16(len(values)))
	for _, v := range values {
		if v == nil {
			buf = AppendInt32(buf, -1)
			continue
		}
		buf = AppendInt32(buf, int32(len(v)))
		buf = append(buf, v...)
	}
	return finishMessage(buf, start)
}

func AppendCommandComplete(buf []byte, tag string) []byte {
	buf, start := beginMessage(buf, 'C')
	buf = AppendCString(buf, tag)
	return finishMessage(buf, start)
}

func AppendParameterStatus(buf []byte, name, value string) []byte {
	buf, start := beginMessage(buf, 'S')
	buf = AppendCString(buf, name)
	buf = AppendCString(buf, value)
	return finishMessage(buf, start)
}

// AppendErrorResponse encodes an error with the severity, SQLSTATE and message fields.
func AppendErrorResponse(buf []byte, severity, code, message string) []byte {
	buf, start := beginMessage(buf, 'E')
	buf = append(buf, 'S')
	buf = AppendCString(buf, severity)
	buf = append(buf, 'C')
	buf = AppendCString(buf, code)
	buf = append(buf, 'M')
	buf = AppendCString(buf, message)
	buf = append(buf, 0)
	return finishMessage(buf, start)
}

func AppendReadyForQuery(buf []byte, txStatus byte) []byte {
	buf, start := beginMessage(buf, 'Z')
	buf = append(buf, txStatus)
	return finishMessage(buf, start)
}
