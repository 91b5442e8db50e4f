// convert.go — strict charset → UTF-8 conversion.
//
// Unlike the x/text decoders, which substitute U+FFFD for bytes they cannot
// map, a Converter reports the first illegal sequence and how many input bytes
// were consumed before it. Callers that need whole-buffer conversion compare
// that count against the input length.
package locale

import (
	"bytes"
	"strings"
	"unicode/utf8"

	"github.com/pkg/errors"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/transform"
)

var (
	// ErrIllegalSequence reports input that is not valid in the source charset.
	ErrIllegalSequence = errors.New("locale: invalid byte sequence in conversion input")
	// ErrUnsupportedCharset reports a codeset no decoder is known for.
	ErrUnsupportedCharset = errors.New("locale: unsupported charset")
)

type kind uint8

const (
	kindTable kind = iota
	kindUTF8
	kindASCII
)

// glibc spells several codesets in ways neither index recognizes.
var aliases = map[string]string{
	"eucjp":     "EUC-JP",
	"euckr":     "EUC-KR",
	"euccn":     "GB2312",
	"sjis":      "Shift_JIS",
	"big5hkscs": "Big5",
	"koi8r":     "KOI8-R",
	"koi8u":     "KOI8-U",
	"iso88591":  "ISO-8859-1",
	"iso88592":  "ISO-8859-2",
	"iso88595":  "ISO-8859-5",
	"iso88597":  "ISO-8859-7",
	"iso88599":  "ISO-8859-9",
	"iso885915": "ISO-8859-15",
	"cp1251":    "windows-1251",
	"cp1252":    "windows-1252",
}

// Converter decodes one charset into UTF-8.
type Converter struct {
	name string
	kind kind
	enc  encoding.Encoding
}

// NewConverter returns a Converter for the named charset.
func NewConverter(charset string) (*Converter, error) {
	key := normalize(charset)
	switch key {
	case "utf8":
		return &Converter{name: charset, kind: kindUTF8}, nil
	case "", "c", "posix", "ascii", "usascii", "ansix3.41968", "ansix341968", "646":
		return &Converter{name: charset, kind: kindASCII}, nil
	}
	lookup := charset
	if a, ok := aliases[key]; ok {
		lookup = a
	}
	enc, err := ianaindex.IANA.Encoding(lookup)
	if err != nil || enc == nil {
		enc, err = htmlindex.Get(lookup)
	}
	if err != nil || enc == nil {
		return nil, errors.Wrapf(ErrUnsupportedCharset, "%q", charset)
	}
	return &Converter{name: charset, kind: kindTable, enc: enc}, nil
}

// FromConfig builds a Converter for the charset cfg implies.
func FromConfig(cfg Config) (*Converter, error) {
	return NewConverter(cfg.CharsetName())
}

// Charset returns the name the Converter was created with.
func (c *Converter) Charset() string { return c.name }

// ToUTF8 converts src into a fresh UTF-8 buffer. On an illegal sequence it
// returns nil, the number of bytes consumed before the failure, and an error
// wrapping ErrIllegalSequence.
func (c *Converter) ToUTF8(src []byte) ([]byte, int, error) {
	switch c.kind {
	case kindUTF8:
		if n := validPrefix(src); n < len(src) {
			return nil, n, errors.Wrapf(ErrIllegalSequence, "offset %d", n)
		}
		return bytes.Clone(src), len(src), nil
	case kindASCII:
		for i, b := range src {
			if b >= utf8.RuneSelf {
				return nil, i, errors.Wrapf(ErrIllegalSequence, "offset %d", i)
			}
		}
		return bytes.Clone(src), len(src), nil
	}

	out, n, err := transform.Bytes(c.enc.NewDecoder(), src)
	if err != nil {
		return nil, n, errors.Wrapf(ErrIllegalSequence, "%s: %v", c.name, err)
	}
	if i := bytes.IndexRune(out, utf8.RuneError); i >= 0 {
		// Re-encode the clean prefix to learn how much input it came from.
		prefix, eerr := c.enc.NewEncoder().Bytes(out[:i])
		read := 0
		if eerr == nil {
			read = len(prefix)
		}
		return nil, read, errors.Wrapf(ErrIllegalSequence, "offset %d", read)
	}
	return out, len(src), nil
}

func validPrefix(b []byte) int {
	n := 0
	for n < len(b) {
		r, size := utf8.DecodeRune(b[n:])
		if r == utf8.RuneError && size <= 1 {
			return n
		}
		n += size
	}
	return n
}

func normalize(name string) string {
	name = strings.ToLower(name)
	return strings.NewReplacer("-", "", "_", "").Replace(name)
}
