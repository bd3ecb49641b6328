package pgfield

import (
	"bytes"
	"io"
)

// FieldReader reads the text of a field sequentially. It implements io.Reader, io.ByteScanner, io.RuneScanner and
// io.WriterTo, so it can be handed to fmt.Fscan and similar functions. It reads the Result's buffer directly.
//
// A FieldReader cannot seek or be written to. Seek and Write always fail with an error wrapping errors.ErrUnsupported.
type FieldReader struct {
	r *bytes.Reader
}

// NewFieldReader returns a FieldReader over the text of f. A NULL field reads as empty.
func NewFieldReader(f Field) *FieldReader {
	return &FieldReader{r: bytes.NewReader(f.Bytes())}
}

func (fr *FieldReader) Read(p []byte) (int, error) {
	return fr.r.Read(p)
}

func (fr *FieldReader) ReadByte() (byte, error) {
	return fr.r.ReadByte()
}

func (fr *FieldReader) UnreadByte() error {
	return fr.r.UnreadByte()
}

func (fr *FieldReader) ReadRune() (ch rune, size int, err error) {
	return fr.r.ReadRune()
}

func (fr *FieldReader) UnreadRune() error {
	return fr.r.UnreadRune()
}

func (fr *FieldReader) WriteTo(w io.Writer) (int64, error) {
	return fr.r.WriteTo(w)
}

// Len returns the number of unread bytes.
func (fr *FieldReader) Len() int {
	return fr.r.Len()
}

func (fr *FieldReader) Seek(offset int64, whence int) (int64, error) {
	return 0, errFieldReaderSeek
}

func (fr *FieldReader) Write(p []byte) (int, error) {
	return 0, errFieldReaderWrite
}
