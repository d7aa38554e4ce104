package csv

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf16"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

var (
	// ErrInvalidEncoding is returned for content that is not valid text.
	ErrInvalidEncoding = errors.New("invalid text encoding")

	// ErrInvalidDelimiter is returned for a delimiter the parser cannot use.
	ErrInvalidDelimiter = errors.New("invalid delimiter")
)

var (
	bom        = []byte{0xef, 0xbb, 0xbf}
	utf16BEBOM = []byte{0xfe, 0xff}
	utf16LEBOM = []byte{0xff, 0xfe}
)

// Options controls parsing and writing.
type Options struct {
	// Delimiter separates fields. Zero means ','.
	Delimiter rune
}

func (o Options) delimiter() (rune, error) {
	d := o.Delimiter
	if d == 0 {
		d = ','
	}
	if !ValidDelimiter(d) {
		return 0, fmt.Errorf("%w: %q", ErrInvalidDelimiter, d)
	}
	return d, nil
}

// ValidDelimiter reports whether r can separate fields.
func ValidDelimiter(r rune) bool {
	return r != 0 && r != '"' && r != '\r' && r != '\n' && utf8.ValidRune(r) && r != utf8.RuneError
}

// Decode turns raw content into text. A UTF-8 byte order mark is dropped and
// UTF-16 content is accepted when it starts with a byte order mark.
func Decode(data []byte) (string, error) {
	if bytes.HasPrefix(data, utf16BEBOM) || bytes.HasPrefix(data, utf16LEBOM) {
		if err := checkUTF16(data, bytes.HasPrefix(data, utf16BEBOM)); err != nil {
			return "", err
		}
		out, _, err := transform.Bytes(unicode.BOMOverride(encoding.Nop.NewDecoder()), data)
		if err != nil {
			return "", fmt.Errorf("%w: %v", ErrInvalidEncoding, err)
		}
		data = out
	}
	data = bytes.TrimPrefix(data, bom)
	if !utf8.Valid(data) {
		return "", fmt.Errorf("%w: content is not valid UTF-8", ErrInvalidEncoding)
	}
	return string(data), nil
}

// checkUTF16 rejects UTF-16 content the decoder would otherwise patch up with
// replacement characters: a dangling byte or an unpaired surrogate.
func checkUTF16(data []byte, bigEndian bool) error {
	if len(data)%2 != 0 {
		return fmt.Errorf("%w: odd number of bytes in UTF-16 content", ErrInvalidEncoding)
	}
	unit := func(i int) rune {
		if bigEndian {
			return rune(data[i])<<8 | rune(data[i+1])
		}
		return rune(data[i+1])<<8 | rune(data[i])
	}
	for i := 2; i < len(data); i += 2 {
		u := unit(i)
		if !utf16.IsSurrogate(u) {
			continue
		}
		if u >= 0xdc00 || i+2 >= len(data) {
			return fmt.Errorf("%w: unpaired surrogate at byte %d", ErrInvalidEncoding, i)
		}
		if next := unit(i + 2); next < 0xdc00 || next > 0xdfff {
			return fmt.Errorf("%w: unpaired surrogate at byte %d", ErrInvalidEncoding, i)
		}
		i += 2
	}
	return nil
}

// Parse parses CSV text. The first record is the header; every later record
// becomes a Row. Blank lines are skipped.
func Parse(text string, opts Options) (*Result, error) {
	delim, err := opts.delimiter()
	if err != nil {
		return nil, err
	}

	reader := csv.NewReader(strings.NewReader(text))
	reader.Comma = delim
	reader.FieldsPerRecord = -1

	var (
		records [][]string
		lines   []int
	)
	for {
		rec, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		line, _ := reader.FieldPos(0)
		records = append(records, rec)
		lines = append(lines, line)
	}
	return NewResult(records, lines), nil
}

// Read reads all of r, decodes it and parses it.
func Read(r io.Reader, opts Options) (*Result, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	text, err := Decode(data)
	if err != nil {
		return nil, err
	}
	return Parse(text, opts)
}
