package pgtype

import (
	"fmt"
	"strings"
)

// ArrayTokenKind identifies what an ArrayToken holds.
type ArrayTokenKind uint8

const (
	// ArrayScalar is a single element whose text is in Text.
	ArrayScalar ArrayTokenKind = iota
	// ArrayNull is an element spelled as the unquoted literal NULL.
	ArrayNull
	// ArrayNested is a brace-delimited sequence whose members are in Elements.
	ArrayNested
)

func (k ArrayTokenKind) String() string {
	switch k {
	case ArrayScalar:
		return "scalar"
	case ArrayNull:
		return "null"
	case ArrayNested:
		return "nested"
	default:
		return fmt.Sprintf("invalid kind %d", k)
	}
}

// ArrayToken is one node of a parsed array literal. Element text is not interpreted; it is converted later against
// whatever element type the caller asks for. Unquoted and escape-free quoted elements share memory with the parsed
// literal.
type ArrayToken struct {
	Kind     ArrayTokenKind
	Text     string
	Elements []ArrayToken
}

// IsNull reports whether the token is an element NULL.
func (t ArrayToken) IsNull() bool {
	return t.Kind == ArrayNull
}

// IsNested reports whether the token is a sub-array.
func (t ArrayToken) IsNested() bool {
	return t.Kind == ArrayNested
}

// Len returns the number of elements of a nested token and 0 otherwise.
func (t ArrayToken) Len() int {
	return len(t.Elements)
}

// Information on the text format of PostgreSQL arrays can be found in src/backend/utils/adt/arrayfuncs.c, in
// particular array_in and array_out.

// ParseArray parses the text form of an SQL array into a token tree that preserves the literal's dimensionality. src
// is scanned as text in enc so that multibyte characters whose trailing bytes look like delimiters are skipped
// whole. An explicit bounds decoration such as "[0:2]=" is validated and discarded.
func ParseArray(src string, enc Encoding) (ArrayToken, error) {
	p := arrayParser{src: src, enc: enc}

	p.skipWhitespace()
	if p.peek() == '[' {
		if err := p.skipBounds(); err != nil {
			return ArrayToken{}, err
		}
	}

	root, err := p.parseNested()
	if err != nil {
		return ArrayToken{}, err
	}

	p.skipWhitespace()
	if p.pos < len(p.src) {
		return ArrayToken{}, p.errorf("unexpected trailing data %q", truncateText(p.src[p.pos:]))
	}

	return root, nil
}

type arrayParser struct {
	src string
	pos int
	enc Encoding
}

func (p *arrayParser) errorf(format string, args ...any) *SyntaxError {
	return &SyntaxError{Pos: p.pos, Msg: fmt.Sprintf(format, args...)}
}

// peek returns the byte at the current position or 0 at the end of input.
func (p *arrayParser) peek() byte {
	if p.pos >= len(p.src) {
		return 0
	}
	return p.src[p.pos]
}

func (p *arrayParser) skipWhitespace() {
	for p.pos < len(p.src) && isArraySpace(p.src[p.pos]) {
		p.pos++
	}
}

func (p *arrayParser) skipBounds() error {
	for p.peek() == '[' {
		p.pos++
		if err := p.skipInteger(); err != nil {
			return err
		}
		if p.peek() != ':' {
			return p.errorf("expected ':' in array bounds")
		}
		p.pos++
		if err := p.skipInteger(); err != nil {
			return err
		}
		if p.peek() != ']' {
			return p.errorf("expected ']' in array bounds")
		}
		p.pos++
	}

	if p.peek() != '=' {
		return p.errorf("expected '=' after array bounds")
	}
	p.pos++
	p.skipWhitespace()
	return nil
}

func (p *arrayParser) skipInteger() error {
	if p.peek() == '-' || p.peek() == '+' {
		p.pos++
	}
	start := p.pos
	for p.pos < len(p.src) && p.src[p.pos] >= '0' && p.src[p.pos] <= '9' {
		p.pos++
	}
	if p.pos == start {
		return p.errorf("expected integer in array bounds")
	}
	return nil
}

func (p *arrayParser) parseNested() (ArrayToken, error) {
	if p.peek() != '{' {
		if p.pos >= len(p.src) {
			return ArrayToken{}, p.errorf("expected '{', found end of input")
		}
		return ArrayToken{}, p.errorf("expected '{', found %q", p.src[p.pos])
	}
	p.pos++

	nested := ArrayToken{Kind: ArrayNested, Elements: []ArrayToken{}}

	p.skipWhitespace()
	if p.peek() == '}' {
		p.pos++
		return nested, nil
	}

	for {
		p.skipWhitespace()
		if p.pos >= len(p.src) {
			return ArrayToken{}, p.errorf("unbalanced braces: expected element, found end of input")
		}

		var elem ArrayToken
		var err error
		switch c := p.src[p.pos]; c {
		case '{':
			elem, err = p.parseNested()
		case '"':
			elem, err = p.parseQuoted()
		case ',', '}':
			return ArrayToken{}, p.errorf("expected element, found %q", c)
		default:
			elem, err = p.parseUnquoted()
		}
		if err != nil {
			return ArrayToken{}, err
		}
		nested.Elements = append(nested.Elements, elem)

		p.skipWhitespace()
		if p.pos >= len(p.src) {
			return ArrayToken{}, p.errorf("unbalanced braces: expected ',' or '}', found end of input")
		}
		switch c := p.src[p.pos]; c {
		case ',':
			p.pos++
		case '}':
			p.pos++
			return nested, nil
		default:
			return ArrayToken{}, p.errorf("expected ',' or '}', found %q", c)
		}
	}
}

func (p *arrayParser) parseUnquoted() (ArrayToken, error) {
	start := p.pos
	for p.pos < len(p.src) {
		c := p.src[p.pos]
		if c == '{' || c == '}' || c == ',' || c == '"' || isArraySpace(c) {
			break
		}
		n, err := p.enc.glyphLen(p.src, p.pos)
		if err != nil {
			return ArrayToken{}, err
		}
		p.pos += n
	}

	text := p.src[start:p.pos]
	if text == "NULL" {
		return ArrayToken{Kind: ArrayNull}, nil
	}
	return ArrayToken{Kind: ArrayScalar, Text: text}, nil
}

func (p *arrayParser) parseQuoted() (ArrayToken, error) {
	open := p.pos
	p.pos++
	start := p.pos

	var sb *strings.Builder
	for p.pos < len(p.src) {
		c := p.src[p.pos]
		switch c {
		case '"':
			var text string
			if sb == nil {
				text = p.src[start:p.pos]
			} else {
				text = sb.String()
			}
			p.pos++
			return ArrayToken{Kind: ArrayScalar, Text: text}, nil
		case '\\':
			if sb == nil {
				sb = &strings.Builder{}
				sb.WriteString(p.src[start:p.pos])
			}
			p.pos++
			if p.pos >= len(p.src) {
				return ArrayToken{}, &SyntaxError{Pos: open, Msg: "unterminated quoted element"}
			}
		}

		n, err := p.enc.glyphLen(p.src, p.pos)
		if err != nil {
			return ArrayToken{}, err
		}
		if sb != nil {
			sb.WriteString(p.src[p.pos : p.pos+n])
		}
		p.pos += n
	}

	return ArrayToken{}, &SyntaxError{Pos: open, Msg: "unterminated quoted element"}
}

func isArraySpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	}
	return false
}

// QuoteArrayElementIfNeeded returns src as it must appear inside an array literal.
func QuoteArrayElementIfNeeded(src string) string {
	if src == "" || (len(src) == 4 && strings.EqualFold(src, "null")) || strings.ContainsAny(src, "{},\"\\ \t\n\r\v\f") {
		return quoteArrayElement(src)
	}
	return src
}

var quoteArrayReplacer = strings.NewReplacer(`\`, `\\`, `"`, `\"`)

func quoteArrayElement(src string) string {
	return `"` + quoteArrayReplacer.Replace(src) + `"`
}
