package pgtype

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
	"time"
)

// kindDecoder returns the decoder for types that are handled by their underlying kind, including named types such as
// `type Celsius float64`.
func kindDecoder(t reflect.Type) func(m *Map, enc Encoding, src []byte, dst reflect.Value) error {
	switch t.Kind() {
	case reflect.String:
		return func(m *Map, enc Encoding, src []byte, dst reflect.Value) error {
			dst.SetString(string(src))
			return nil
		}
	case reflect.Bool:
		return func(m *Map, enc Encoding, src []byte, dst reflect.Value) error {
			b, err := parseBool(src)
			if err != nil {
				return err
			}
			dst.SetBool(b)
			return nil
		}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return func(m *Map, enc Encoding, src []byte, dst reflect.Value) error {
			n, err := parseInt(src, dst.Type().Bits())
			if err != nil {
				return err
			}
			dst.SetInt(n)
			return nil
		}
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return func(m *Map, enc Encoding, src []byte, dst reflect.Value) error {
			n, err := parseUint(src, dst.Type().Bits())
			if err != nil {
				return err
			}
			dst.SetUint(n)
			return nil
		}
	case reflect.Float32, reflect.Float64:
		return func(m *Map, enc Encoding, src []byte, dst reflect.Value) error {
			f, err := parseFloat(src, dst.Type().Bits())
			if err != nil {
				return err
			}
			dst.SetFloat(f)
			return nil
		}
	case reflect.Slice:
		if t.Elem().Kind() == reflect.Uint8 {
			return func(m *Map, enc Encoding, src []byte, dst reflect.Value) error {
				dst.SetBytes(bytes.Clone(src))
				return nil
			}
		}
		return decodeArray
	}
	return nil
}

// kindEncoder is the rendering counterpart of kindDecoder.
func kindEncoder(t reflect.Type) func(m *Map, buf []byte, src reflect.Value) ([]byte, error) {
	switch t.Kind() {
	case reflect.String:
		return func(m *Map, buf []byte, src reflect.Value) ([]byte, error) {
			return append(buf, src.String()...), nil
		}
	case reflect.Bool:
		return func(m *Map, buf []byte, src reflect.Value) ([]byte, error) {
			return appendBool(buf, src.Bool()), nil
		}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return func(m *Map, buf []byte, src reflect.Value) ([]byte, error) {
			return strconv.AppendInt(buf, src.Int(), 10), nil
		}
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return func(m *Map, buf []byte, src reflect.Value) ([]byte, error) {
			return strconv.AppendUint(buf, src.Uint(), 10), nil
		}
	case reflect.Float32, reflect.Float64:
		return func(m *Map, buf []byte, src reflect.Value) ([]byte, error) {
			return appendFloat(buf, src.Float(), src.Type().Bits()), nil
		}
	case reflect.Slice:
		if t.Elem().Kind() == reflect.Uint8 {
			return func(m *Map, buf []byte, src reflect.Value) ([]byte, error) {
				return append(buf, src.Bytes()...), nil
			}
		}
		return encodeArray
	}
	return nil
}

// numError strips the strconv wrapper so conversion errors read "value out of range" rather than repeating the input.
func numError(err error) error {
	var ne *strconv.NumError
	if errors.As(err, &ne) {
		return ne.Err
	}
	return err
}

func parseInt(src []byte, bitSize int) (int64, error) {
	n, err := strconv.ParseInt(strings.TrimSpace(string(src)), 10, bitSize)
	if err != nil {
		return 0, numError(err)
	}
	return n, nil
}

func parseUint(src []byte, bitSize int) (uint64, error) {
	n, err := strconv.ParseUint(strings.TrimSpace(string(src)), 10, bitSize)
	if err != nil {
		return 0, numError(err)
	}
	return n, nil
}

func parseFloat(src []byte, bitSize int) (float64, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(string(src)), bitSize)
	if err != nil {
		return 0, numError(err)
	}
	return f, nil
}

func appendFloat(buf []byte, f float64, bitSize int) []byte {
	switch {
	case math.IsNaN(f):
		return append(buf, "NaN"...)
	case math.IsInf(f, 1):
		return append(buf, "Infinity"...)
	case math.IsInf(f, -1):
		return append(buf, "-Infinity"...)
	}
	return strconv.AppendFloat(buf, f, 'f', -1, bitSize)
}

var errInvalidBool = errors.New("invalid boolean")

// parseBool accepts the spellings PostgreSQL's boolin accepts.
func parseBool(src []byte) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(string(src))) {
	case "t", "true", "y", "yes", "on", "1":
		return true, nil
	case "f", "false", "n", "no", "off", "0":
		return false, nil
	}
	return false, errInvalidBool
}

func appendBool(buf []byte, b bool) []byte {
	if b {
		return append(buf, 't')
	}
	return append(buf, 'f')
}

var timestampLayouts = []string{
	"2006-01-02 15:04:05.999999999Z07:00:00",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999Z07",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04:05.999999999Z07:00",
	"2006-01-02",
}

var errBCTimestamp = errors.New("BC dates are not supported")

// parseTimestamp parses the text form of date, timestamp and timestamptz. Values without a zone are UTC.
func parseTimestamp(src []byte) (time.Time, error) {
	s := strings.TrimSpace(string(src))
	if strings.HasSuffix(s, " BC") {
		return time.Time{}, errBCTimestamp
	}

	for _, layout := range timestampLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid timestamp")
}

func appendTimestamp(buf []byte, t time.Time) ([]byte, error) {
	if t.Year() < 1 || t.Year() > 9999 {
		return nil, fmt.Errorf("year %d is outside the supported range", t.Year())
	}
	return t.AppendFormat(buf, "2006-01-02 15:04:05.999999999Z07:00"), nil
}

// decodeArray scans an array literal into a slice.
func decodeArray(m *Map, enc Encoding, src []byte, dst reflect.Value) error {
	tok, err := ParseArray(string(src), enc)
	if err != nil {
		return err
	}
	return decodeArrayToken(m, enc, tok, dst)
}

func decodeArrayToken(m *Map, enc Encoding, tok ArrayToken, dst reflect.Value) error {
	if !tok.IsNested() {
		return fmt.Errorf("dimension mismatch: expected sub-array for %s", dst.Type())
	}

	elemType := dst.Type().Elem()
	ep := m.policyFor(elemType)
	if ep == nil || ep.decode == nil {
		return &ConversionError{TypeName: dst.Type().String(), Err: fmt.Errorf("%w %s", errUnsupportedType, elemType)}
	}

	s := reflect.MakeSlice(dst.Type(), len(tok.Elements), len(tok.Elements))
	for i, e := range tok.Elements {
		ev := s.Index(i)
		switch {
		case e.IsNull():
			if ep.setNull == nil {
				return &NullConversionError{TypeName: ep.typeName}
			}
			if err := ep.setNull(ev); err != nil {
				return err
			}
		case e.IsNested():
			if ep.decodeToken == nil {
				return fmt.Errorf("dimension mismatch: unexpected sub-array for element type %s", elemType)
			}
			if err := ep.decodeToken(m, enc, e, ev); err != nil {
				return err
			}
		default:
			if ep.decodeToken != nil {
				return fmt.Errorf("dimension mismatch: expected sub-array for element type %s, found %q", elemType, e.Text)
			}
			if err := m.scanValue(enc, []byte(e.Text), ev); err != nil {
				return err
			}
		}
	}

	dst.Set(s)
	return nil
}

// encodeArray renders a slice as an array literal. Slices of slices become nested literals. A nil slice renders as
// the empty array, not NULL.
func encodeArray(m *Map, buf []byte, src reflect.Value) ([]byte, error) {
	nested := src.Type().Elem().Kind() == reflect.Slice && src.Type().Elem().Elem().Kind() != reflect.Uint8

	buf = append(buf, '{')
	elemBuf := make([]byte, 0, 32)
	for i := 0; i < src.Len(); i++ {
		if i > 0 {
			buf = append(buf, ',')
		}

		ev := src.Index(i)
		if nested {
			var err error
			buf, err = encodeArray(m, buf, ev)
			if err != nil {
				return nil, err
			}
			continue
		}

		eb, err := m.encode(elemBuf[:0], ev)
		if err != nil {
			return nil, err
		}
		if eb == nil {
			buf = append(buf, "NULL"...)
		} else {
			buf = append(buf, QuoteArrayElementIfNeeded(string(eb))...)
			elemBuf = eb
		}
	}
	return append(buf, '}'), nil
}
