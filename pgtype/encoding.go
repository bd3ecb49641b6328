package pgtype

import (
	"fmt"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/encoding/korean"
	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/encoding/traditionalchinese"
)

// encodingGroup classifies client encodings by how their multibyte characters are laid out. Only the groups whose
// trailing bytes may fall in the ASCII range need glyph-aware scanning.
type encodingGroup uint8

const (
	groupUTF8 encodingGroup = iota
	groupMonobyte
	groupEUC
	groupBIG5
	groupGB18030
	groupGBK
	groupJOHAB
	groupSJIS
	groupUHC
)

// Encoding is a PostgreSQL client encoding. The zero value is UTF8.
type Encoding struct {
	name  string
	group encodingGroup
}

// UTF8 is the default client encoding.
var UTF8 = Encoding{name: "UTF8", group: groupUTF8}

var encodingsByName = map[string]Encoding{}

func init() {
	for _, e := range []Encoding{
		UTF8,
		{"SQL_ASCII", groupMonobyte},
		{"MULE_INTERNAL", groupEUC},
		{"EUC_CN", groupEUC},
		{"EUC_JP", groupEUC},
		{"EUC_JIS_2004", groupEUC},
		{"EUC_KR", groupEUC},
		{"EUC_TW", groupEUC},
		{"BIG5", groupBIG5},
		{"GB18030", groupGB18030},
		{"GBK", groupGBK},
		{"JOHAB", groupJOHAB},
		{"SJIS", groupSJIS},
		{"SHIFT_JIS_2004", groupSJIS},
		{"UHC", groupUHC},
		{"KOI8R", groupMonobyte},
		{"KOI8U", groupMonobyte},
		{"LATIN1", groupMonobyte},
		{"LATIN2", groupMonobyte},
		{"LATIN3", groupMonobyte},
		{"LATIN4", groupMonobyte},
		{"LATIN5", groupMonobyte},
		{"LATIN6", groupMonobyte},
		{"LATIN7", groupMonobyte},
		{"LATIN8", groupMonobyte},
		{"LATIN9", groupMonobyte},
		{"LATIN10", groupMonobyte},
		{"ISO_8859_5", groupMonobyte},
		{"ISO_8859_6", groupMonobyte},
		{"ISO_8859_7", groupMonobyte},
		{"ISO_8859_8", groupMonobyte},
		{"WIN866", groupMonobyte},
		{"WIN874", groupMonobyte},
		{"WIN1250", groupMonobyte},
		{"WIN1251", groupMonobyte},
		{"WIN1252", groupMonobyte},
		{"WIN1253", groupMonobyte},
		{"WIN1254", groupMonobyte},
		{"WIN1255", groupMonobyte},
		{"WIN1256", groupMonobyte},
		{"WIN1257", groupMonobyte},
		{"WIN1258", groupMonobyte},
	} {
		encodingsByName[normalizeEncodingName(e.name)] = e
	}
	encodingsByName[normalizeEncodingName("UNICODE")] = UTF8
}

// normalizeEncodingName drops case and separators the way the server does when it looks up client_encoding.
func normalizeEncodingName(name string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z':
			return r - 'a' + 'A'
		case r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		default:
			return -1
		}
	}, name)
}

// EncodingByName returns the encoding known to PostgreSQL by name, e.g. the value of the client_encoding parameter.
// Matching ignores case, '-' and '_'.
func EncodingByName(name string) (Encoding, error) {
	if e, ok := encodingsByName[normalizeEncodingName(name)]; ok {
		return e, nil
	}
	return Encoding{}, fmt.Errorf("unknown client encoding %q", name)
}

// Name returns the canonical PostgreSQL name of the encoding.
func (e Encoding) Name() string {
	if e.name == "" {
		return UTF8.name
	}
	return e.name
}

func (e Encoding) String() string {
	return e.Name()
}

// glyphLen returns the length in bytes of the character starting at s[pos]. Encodings whose multibyte characters
// never contain bytes below 0x80 are scanned byte by byte since every delimiter the array parser cares about is ASCII.
func (e Encoding) glyphLen(s string, pos int) (int, error) {
	b := s[pos]
	if b < 0x80 {
		return 1, nil
	}

	n := 1
	switch e.group {
	case groupBIG5, groupGBK, groupUHC:
		if b >= 0x81 && b <= 0xfe {
			n = 2
		}
	case groupGB18030:
		if b >= 0x81 && b <= 0xfe {
			n = 2
			if pos+1 < len(s) && s[pos+1] >= 0x30 && s[pos+1] <= 0x39 {
				n = 4
			}
		}
	case groupJOHAB:
		if (b >= 0x84 && b <= 0xd3) || (b >= 0xd8 && b <= 0xf9) {
			n = 2
		}
	case groupSJIS:
		if (b >= 0x81 && b <= 0x9f) || (b >= 0xe0 && b <= 0xfc) {
			n = 2
		}
	}

	if pos+n > len(s) {
		return 0, &SyntaxError{Pos: pos, Msg: fmt.Sprintf("truncated multibyte character in %s text", e.Name())}
	}
	return n, nil
}

// Decoder returns the x/text decoder that converts text in e to UTF-8. It returns nil when no transcoding is needed.
func (e Encoding) Decoder() (*encoding.Decoder, error) {
	var enc encoding.Encoding
	switch e.Name() {
	case "UTF8", "SQL_ASCII":
		return nil, nil
	case "EUC_JP", "EUC_JIS_2004":
		enc = japanese.EUCJP
	case "SJIS", "SHIFT_JIS_2004":
		enc = japanese.ShiftJIS
	case "EUC_KR", "UHC":
		enc = korean.EUCKR
	case "EUC_CN", "GBK":
		enc = simplifiedchinese.GBK
	case "GB18030":
		enc = simplifiedchinese.GB18030
	case "BIG5":
		enc = traditionalchinese.Big5
	case "KOI8R":
		enc = charmap.KOI8R
	case "KOI8U":
		enc = charmap.KOI8U
	case "LATIN1":
		enc = charmap.ISO8859_1
	case "LATIN2":
		enc = charmap.ISO8859_2
	case "LATIN3":
		enc = charmap.ISO8859_3
	case "LATIN4":
		enc = charmap.ISO8859_4
	case "LATIN5":
		enc = charmap.ISO8859_9
	case "LATIN6":
		enc = charmap.ISO8859_10
	case "LATIN7":
		enc = charmap.ISO8859_13
	case "LATIN8":
		enc = charmap.ISO8859_14
	case "LATIN9":
		enc = charmap.ISO8859_15
	case "LATIN10":
		enc = charmap.ISO8859_16
	case "ISO_8859_5":
		enc = charmap.ISO8859_5
	case "ISO_8859_6":
		enc = charmap.ISO8859_6
	case "ISO_8859_7":
		enc = charmap.ISO8859_7
	case "ISO_8859_8":
		enc = charmap.ISO8859_8
	case "WIN866":
		enc = charmap.CodePage866
	case "WIN874":
		enc = charmap.Windows874
	case "WIN1250":
		enc = charmap.Windows1250
	case "WIN1251":
		enc = charmap.Windows1251
	case "WIN1252":
		enc = charmap.Windows1252
	case "WIN1253":
		enc = charmap.Windows1253
	case "WIN1254":
		enc = charmap.Windows1254
	case "WIN1255":
		enc = charmap.Windows1255
	case "WIN1256":
		enc = charmap.Windows1256
	case "WIN1257":
		enc = charmap.Windows1257
	case "WIN1258":
		enc = charmap.Windows1258
	default:
		return nil, fmt.Errorf("no decoder available for client encoding %s", e.Name())
	}
	return enc.NewDecoder(), nil
}

// DecodeString converts s from e to UTF-8.
func (e Encoding) DecodeString(s string) (string, error) {
	d, err := e.Decoder()
	if err != nil {
		return "", err
	}
	if d == nil {
		return s, nil
	}
	return d.String(s)
}
