package pgtype

import (
	"database/sql"
	"database/sql/driver"
	"encoding"
	"errors"
	"fmt"
	"reflect"
	"sync"
	"time"
)

// PostgreSQL oids for common types
const (
	BoolOID             = 16
	ByteaOID            = 17
	QCharOID            = 18
	NameOID             = 19
	Int8OID             = 20
	Int2OID             = 21
	Int4OID             = 23
	TextOID             = 25
	OIDOID              = 26
	TIDOID              = 27
	XIDOID              = 28
	CIDOID              = 29
	JSONOID             = 114
	JSONArrayOID        = 199
	PointOID            = 600
	Float4OID           = 700
	Float8OID           = 701
	UnknownOID          = 705
	InetOID             = 869
	BoolArrayOID        = 1000
	QCharArrayOID       = 1002
	NameArrayOID        = 1003
	Int2ArrayOID        = 1005
	Int4ArrayOID        = 1007
	TextArrayOID        = 1009
	ByteaArrayOID       = 1001
	BPCharArrayOID      = 1014
	VarcharArrayOID     = 1015
	Int8ArrayOID        = 1016
	Float4ArrayOID      = 1021
	Float8ArrayOID      = 1022
	OIDArrayOID         = 1028
	BPCharOID           = 1042
	VarcharOID          = 1043
	DateOID             = 1082
	TimestampOID        = 1114
	TimestampArrayOID   = 1115
	DateArrayOID        = 1182
	TimestamptzOID      = 1184
	TimestamptzArrayOID = 1185
	NumericArrayOID     = 1231
	NumericOID          = 1700
	RecordOID           = 2249
	UUIDOID             = 2950
	UUIDArrayOID        = 2951
	JSONBOID            = 3802
	JSONBArrayOID       = 3807
)

const (
	TextFormatCode   = 0
	BinaryFormatCode = 1
)

// TextDecoder is implemented by types that parse themselves from text and can represent NULL.
type TextDecoder interface {
	// DecodeText decodes src into the receiver. If src is nil then the original SQL value is NULL. src must not be
	// modified or retained.
	DecodeText(src []byte) error
}

// TextEncoder is implemented by types that render themselves as text.
type TextEncoder interface {
	// EncodeText appends the text form of the receiver to buf. It returns nil if the value is NULL.
	EncodeText(buf []byte) (newBuf []byte, err error)
}

// Codec converts values of type T to and from their text form.
type Codec[T any] interface {
	// DecodeText parses src. src is never nil; NULL is handled by the Map.
	DecodeText(src []byte) (T, error)

	// EncodeText appends the text form of value to buf.
	EncodeText(buf []byte, value T) (newBuf []byte, err error)
}

// NullCodec is a Codec whose Go type has an in-band representation of NULL.
type NullCodec[T any] interface {
	Codec[T]

	// Null returns the value that represents NULL.
	Null() T

	// IsNull reports whether value represents NULL.
	IsNull(value T) bool
}

// CodecFuncs adapts a pair of functions to the Codec interface. Encode may be nil for parse-only types.
type CodecFuncs[T any] struct {
	Decode func(src []byte) (T, error)
	Encode func(buf []byte, value T) ([]byte, error)
}

func (c CodecFuncs[T]) DecodeText(src []byte) (T, error) {
	return c.Decode(src)
}

func (c CodecFuncs[T]) EncodeText(buf []byte, value T) ([]byte, error) {
	if c.Encode == nil {
		return nil, errRenderUnsupported
	}
	return c.Encode(buf, value)
}

var (
	errUnsupportedType   = errors.New("no conversion policy for type")
	errRenderUnsupported = errors.New("type cannot be rendered as text")
	errNullText          = errors.New("NULL has no text representation")
)

// policy is the type-erased form of a conversion policy. dst values are always addressable.
type policy struct {
	typeName string

	decode func(m *Map, enc Encoding, src []byte, dst reflect.Value) error

	// encode appends the text form of src to buf. A nil result means NULL.
	encode func(m *Map, buf []byte, src reflect.Value) ([]byte, error)

	// setNull is nil when the type has no null representation.
	setNull func(dst reflect.Value) error

	// decodeToken is set for slice types that are scanned from array literals.
	decodeToken func(m *Map, enc Encoding, tok ArrayToken, dst reflect.Value) error
}

// Map is the registry of conversion policies keyed by Go type, plus the default Go type for PostgreSQL type OIDs. A
// Map is safe for concurrent use once registration is finished.
type Map struct {
	mu         sync.RWMutex
	policies   map[reflect.Type]*policy
	oidTypes   map[uint32]reflect.Type
	arrayElems map[uint32]uint32
}

// NewMap creates a Map with the standard policies and default OID types registered.
func NewMap() *Map {
	m := &Map{
		policies:   make(map[reflect.Type]*policy),
		oidTypes:   make(map[uint32]reflect.Type),
		arrayElems: make(map[uint32]uint32),
	}

	RegisterCodec[time.Time](m, CodecFuncs[time.Time]{Decode: parseTimestamp, Encode: appendTimestamp})

	for oid, value := range map[uint32]any{
		BoolOID:        false,
		ByteaOID:       Bytea{},
		QCharOID:       "",
		NameOID:        "",
		Int8OID:        int64(0),
		Int2OID:        int16(0),
		Int4OID:        int32(0),
		TextOID:        "",
		OIDOID:         uint32(0),
		XIDOID:         uint32(0),
		CIDOID:         uint32(0),
		JSONOID:        "",
		Float4OID:      float32(0),
		Float8OID:      float64(0),
		UnknownOID:     "",
		BPCharOID:      "",
		VarcharOID:     "",
		DateOID:        time.Time{},
		TimestampOID:   time.Time{},
		TimestamptzOID: Timestamptz{},
		NumericOID:     "",
		UUIDOID:        "",
		JSONBOID:       "",
	} {
		m.RegisterDefaultType(oid, value)
	}

	for arrayOID, elemOID := range map[uint32]uint32{
		BoolArrayOID:        BoolOID,
		QCharArrayOID:       QCharOID,
		NameArrayOID:        NameOID,
		Int2ArrayOID:        Int2OID,
		Int4ArrayOID:        Int4OID,
		TextArrayOID:        TextOID,
		ByteaArrayOID:       ByteaOID,
		BPCharArrayOID:      BPCharOID,
		VarcharArrayOID:     VarcharOID,
		Int8ArrayOID:        Int8OID,
		Float4ArrayOID:      Float4OID,
		Float8ArrayOID:      Float8OID,
		OIDArrayOID:         OIDOID,
		TimestampArrayOID:   TimestampOID,
		DateArrayOID:        DateOID,
		TimestamptzArrayOID: TimestamptzOID,
		NumericArrayOID:     NumericOID,
		UUIDArrayOID:        UUIDOID,
		JSONArrayOID:        JSONOID,
		JSONBArrayOID:       JSONBOID,
	} {
		m.RegisterArrayType(arrayOID, elemOID)
	}

	return m
}

// RegisterCodec registers c as the conversion policy for T, replacing any existing policy. If c implements
// NullCodec[T] then T participates in NULL handling.
func RegisterCodec[T any](m *Map, c Codec[T]) {
	t := reflect.TypeFor[T]()
	p := &policy{
		typeName: t.String(),
		decode: func(m *Map, enc Encoding, src []byte, dst reflect.Value) error {
			v, err := c.DecodeText(src)
			if err != nil {
				return err
			}
			*dst.Addr().Interface().(*T) = v
			return nil
		},
	}

	nc, hasNull := c.(NullCodec[T])
	p.encode = func(m *Map, buf []byte, src reflect.Value) ([]byte, error) {
		v := src.Interface().(T)
		if hasNull && nc.IsNull(v) {
			return nil, nil
		}
		return c.EncodeText(buf, v)
	}
	if hasNull {
		p.setNull = func(dst reflect.Value) error {
			*dst.Addr().Interface().(*T) = nc.Null()
			return nil
		}
	}

	m.mu.Lock()
	m.policies[t] = p
	m.mu.Unlock()
}

// RegisterDefaultType sets the Go type DecodeValue produces for oid to the type of value.
func (m *Map) RegisterDefaultType(oid uint32, value any) {
	m.mu.Lock()
	m.oidTypes[oid] = reflect.TypeOf(value)
	m.mu.Unlock()
}

// RegisterArrayType declares arrayOID to be an array of elemOID for DecodeValue.
func (m *Map) RegisterArrayType(arrayOID, elemOID uint32) {
	m.mu.Lock()
	m.arrayElems[arrayOID] = elemOID
	m.mu.Unlock()
}

func (m *Map) policyFor(t reflect.Type) *policy {
	m.mu.RLock()
	p, ok := m.policies[t]
	m.mu.RUnlock()
	if ok {
		return p
	}

	p = m.derivePolicy(t)

	m.mu.Lock()
	if existing, ok := m.policies[t]; ok {
		p = existing
	} else {
		m.policies[t] = p
	}
	m.mu.Unlock()

	return p
}

var (
	textDecoderType     = reflect.TypeFor[TextDecoder]()
	textEncoderType     = reflect.TypeFor[TextEncoder]()
	sqlScannerType      = reflect.TypeFor[sql.Scanner]()
	driverValuerType    = reflect.TypeFor[driver.Valuer]()
	textUnmarshalerType = reflect.TypeFor[encoding.TextUnmarshaler]()
	textMarshalerType   = reflect.TypeFor[encoding.TextMarshaler]()
)

// derivePolicy builds the policy for a type that was not registered. It returns nil for unsupported types.
func (m *Map) derivePolicy(t reflect.Type) *policy {
	if t == nil {
		return nil
	}

	p := &policy{typeName: t.String()}
	ptr := reflect.PointerTo(t)

	switch {
	case ptr.Implements(textDecoderType):
		p.decode = decodeTextDecoder
		p.setNull = func(dst reflect.Value) error {
			return dst.Addr().Interface().(TextDecoder).DecodeText(nil)
		}
	case ptr.Implements(sqlScannerType):
		p.decode = decodeSQLScanner
		p.setNull = func(dst reflect.Value) error {
			return dst.Addr().Interface().(sql.Scanner).Scan(nil)
		}
	case t.Kind() == reflect.Pointer:
		p.decode = decodePointer
		p.setNull = func(dst reflect.Value) error {
			dst.SetZero()
			return nil
		}
	case ptr.Implements(textUnmarshalerType):
		p.decode = decodeTextUnmarshaler
	default:
		p.decode = kindDecoder(t)
	}

	switch {
	case t.Implements(textEncoderType) || ptr.Implements(textEncoderType):
		p.encode = encodeTextEncoder
	case t.Implements(driverValuerType) || ptr.Implements(driverValuerType):
		p.encode = encodeDriverValuer
	case t.Kind() == reflect.Pointer:
		p.encode = encodePointer
	case t.Implements(textMarshalerType) || ptr.Implements(textMarshalerType):
		p.encode = encodeTextMarshaler
	default:
		p.encode = kindEncoder(t)
	}

	if t.Kind() == reflect.Slice && t.Elem().Kind() != reflect.Uint8 && p.decode != nil {
		p.decodeToken = decodeArrayToken
	}

	if p.decode == nil && p.encode == nil {
		return nil
	}

	return p
}

// addressable returns an addressable copy of v when v itself is not addressable.
func addressable(v reflect.Value) reflect.Value {
	if v.CanAddr() {
		return v
	}
	c := reflect.New(v.Type()).Elem()
	c.Set(v)
	return c
}

func decodeTextDecoder(m *Map, enc Encoding, src []byte, dst reflect.Value) error {
	return dst.Addr().Interface().(TextDecoder).DecodeText(src)
}

func decodeSQLScanner(m *Map, enc Encoding, src []byte, dst reflect.Value) error {
	return dst.Addr().Interface().(sql.Scanner).Scan(string(src))
}

func decodeTextUnmarshaler(m *Map, enc Encoding, src []byte, dst reflect.Value) error {
	return dst.Addr().Interface().(encoding.TextUnmarshaler).UnmarshalText(src)
}

func decodePointer(m *Map, enc Encoding, src []byte, dst reflect.Value) error {
	elem := reflect.New(dst.Type().Elem())
	if err := m.scanValue(enc, src, elem.Elem()); err != nil {
		return err
	}
	dst.Set(elem)
	return nil
}

func encodeTextEncoder(m *Map, buf []byte, src reflect.Value) ([]byte, error) {
	if src.Kind() == reflect.Pointer && src.IsNil() {
		return nil, nil
	}
	if te, ok := src.Interface().(TextEncoder); ok {
		return te.EncodeText(buf)
	}
	return addressable(src).Addr().Interface().(TextEncoder).EncodeText(buf)
}

func encodeDriverValuer(m *Map, buf []byte, src reflect.Value) ([]byte, error) {
	if src.Kind() == reflect.Pointer && src.IsNil() {
		return nil, nil
	}
	valuer, ok := src.Interface().(driver.Valuer)
	if !ok {
		valuer = addressable(src).Addr().Interface().(driver.Valuer)
	}
	v, err := valuer.Value()
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, nil
	}
	if _, ok := v.(driver.Valuer); ok {
		return nil, fmt.Errorf("%s.Value returned another driver.Valuer", src.Type())
	}
	return m.encode(buf, reflect.ValueOf(v))
}

func encodePointer(m *Map, buf []byte, src reflect.Value) ([]byte, error) {
	if src.IsNil() {
		return nil, nil
	}
	return m.encode(buf, src.Elem())
}

func encodeTextMarshaler(m *Map, buf []byte, src reflect.Value) ([]byte, error) {
	tm, ok := src.Interface().(encoding.TextMarshaler)
	if !ok {
		tm = addressable(src).Addr().Interface().(encoding.TextMarshaler)
	}
	text, err := tm.MarshalText()
	if err != nil {
		return nil, err
	}
	return append(buf, text...), nil
}

// scanTarget validates that dst is a non-nil pointer and returns the value it points to.
func scanTarget(dst any) (reflect.Value, error) {
	v := reflect.ValueOf(dst)
	if v.Kind() != reflect.Pointer || v.IsNil() {
		return reflect.Value{}, &ConversionError{TypeName: fmt.Sprintf("%T", dst), Err: errors.New("destination must be a non-nil pointer")}
	}
	return v.Elem(), nil
}

// Scan converts src, the text of a UTF-8 value, into dst, which must be a non-nil pointer. A nil src means NULL.
func (m *Map) Scan(src []byte, dst any) error {
	return m.ScanEncoded(UTF8, src, dst)
}

// ScanEncoded is like Scan for text in the client encoding enc. The encoding only matters for array literals.
func (m *Map) ScanEncoded(enc Encoding, src []byte, dst any) error {
	v, err := scanTarget(dst)
	if err != nil {
		return err
	}

	if src == nil {
		p := m.policyFor(v.Type())
		if p == nil || p.setNull == nil {
			return &NullConversionError{TypeName: v.Type().String()}
		}
		return p.setNull(v)
	}

	return m.scanValue(enc, src, v)
}

// scanValue converts non-NULL text into the addressable value dst.
func (m *Map) scanValue(enc Encoding, src []byte, dst reflect.Value) error {
	p := m.policyFor(dst.Type())
	if p == nil || p.decode == nil {
		return newConversionError(dst.Type().String(), src, errUnsupportedType)
	}

	err := p.decode(m, enc, src, dst)
	if err != nil && !errors.Is(err, ErrConversion) {
		return newConversionError(p.typeName, src, err)
	}
	return err
}

// SetNull writes the NULL representation of *dst's type into dst and reports whether the type has one. dst is left
// untouched when it does not.
func (m *Map) SetNull(dst any) bool {
	v, err := scanTarget(dst)
	if err != nil {
		return false
	}
	p := m.policyFor(v.Type())
	if p == nil || p.setNull == nil {
		return false
	}
	return p.setNull(v) == nil
}

// HasNull reports whether values of the type that dst points to can represent NULL.
func (m *Map) HasNull(dst any) bool {
	v, err := scanTarget(dst)
	if err != nil {
		return false
	}
	p := m.policyFor(v.Type())
	return p != nil && p.setNull != nil
}

// Encode appends the text form of value to buf. It returns nil if value is NULL.
func (m *Map) Encode(value any, buf []byte) (newBuf []byte, err error) {
	if value == nil {
		return nil, nil
	}
	if buf == nil {
		buf = []byte{}
	}
	return m.encode(buf, reflect.ValueOf(value))
}

func (m *Map) encode(buf []byte, src reflect.Value) ([]byte, error) {
	if src.Kind() == reflect.Interface {
		if src.IsNil() {
			return nil, nil
		}
		src = src.Elem()
	}

	p := m.policyFor(src.Type())
	if p == nil || p.encode == nil {
		return nil, &ConversionError{TypeName: src.Type().String(), Text: truncateText(fmt.Sprint(src.Interface())), Err: errRenderUnsupported}
	}

	newBuf, err := p.encode(m, buf, src)
	if err != nil && !errors.Is(err, ErrConversion) {
		return nil, &ConversionError{TypeName: p.typeName, Text: truncateText(fmt.Sprint(src.Interface())), Err: err}
	}
	return newBuf, err
}

// DecodeValue converts src into the default Go type for oid. Array types become []any with nil for NULL elements,
// nested to the array's dimensionality. Unknown types are returned as string.
func (m *Map) DecodeValue(oid uint32, enc Encoding, src []byte) (any, error) {
	if src == nil {
		return nil, nil
	}

	m.mu.RLock()
	elemOID, isArray := m.arrayElems[oid]
	m.mu.RUnlock()

	if isArray {
		tok, err := ParseArray(string(src), enc)
		if err != nil {
			return nil, err
		}
		return m.tokenValue(elemOID, enc, tok)
	}

	m.mu.RLock()
	t, ok := m.oidTypes[oid]
	m.mu.RUnlock()
	if !ok {
		return string(src), nil
	}

	v := reflect.New(t).Elem()
	if err := m.scanValue(enc, src, v); err != nil {
		return nil, err
	}
	return v.Interface(), nil
}

func (m *Map) tokenValue(elemOID uint32, enc Encoding, tok ArrayToken) (any, error) {
	switch tok.Kind {
	case ArrayNull:
		return nil, nil
	case ArrayNested:
		values := make([]any, len(tok.Elements))
		for i, e := range tok.Elements {
			v, err := m.tokenValue(elemOID, enc, e)
			if err != nil {
				return nil, err
			}
			values[i] = v
		}
		return values, nil
	default:
		return m.DecodeValue(elemOID, enc, []byte(tok.Text))
	}
}

// Parse converts src into a T. A nil src means NULL: the result is T's null representation or a
// NullConversionError.
func Parse[T any](m *Map, src []byte) (T, error) {
	var v T
	err := m.Scan(src, &v)
	return v, err
}

// Render returns the text form of v. A value that represents NULL has no text form and is a ConversionError.
func Render[T any](m *Map, v T) (string, error) {
	buf, err := m.encode([]byte{}, reflect.ValueOf(&v).Elem())
	if err != nil {
		return "", err
	}
	if buf == nil {
		return "", &ConversionError{TypeName: reflect.TypeFor[T]().String(), Text: "NULL", Err: errNullText}
	}
	return string(buf), nil
}

// HasNull reports whether T has an in-band representation of NULL.
func HasNull[T any](m *Map) bool {
	p := m.policyFor(reflect.TypeFor[T]())
	return p != nil && p.setNull != nil
}

// Null returns T's representation of NULL. ok is false when T has none.
func Null[T any](m *Map) (v T, ok bool) {
	ok = m.SetNull(&v)
	return v, ok
}
