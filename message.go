// message.go — decoding native messages into Go strings.
//
// Native messages carry no encoding tag. The best guesses, in order, are
// UTF-8 and the locale charset. When neither accounts for every byte the
// message is rendered lossily rather than dropped.
package gerror

import (
	"runtime"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/unicode"

	"github.com/xgx-io/xgx-gerror/native"
)

// UnsetMessage is what Message returns for an unset handle.
const UnsetMessage = "no error"

// Message returns the record's message decoded as text. It never fails:
//
//  1. bytes that are valid UTF-8 are returned as is;
//  2. otherwise the locale charset conversion is used, but only if it
//     consumed the whole message;
//  3. otherwise each maximal ill-formed subsequence is replaced with one
//     U+FFFD.
//
// An unset handle yields UnsetMessage.
func (e *Error) Message() string {
	rec := e.record()
	if rec == nil {
		return UnsetMessage
	}
	defer runtime.KeepAlive(e)
	return decodeMessage(e.library(), native.Bytes(rec))
}

// Error implements the error interface; it is Message.
func (e *Error) Error() string { return e.Message() }

// RawMessage returns the undecoded message bytes, or nil for an unset handle.
// The slice aliases the record and is valid until the handle is freed.
//
// The caller must keep e reachable while using the slice; a handle that is
// never freed explicitly is released by the runtime once unreachable.
func (e *Error) RawMessage() []byte {
	return native.Bytes(e.record())
}

func decodeMessage(lib native.Library, raw []byte) string {
	if utf8.Valid(raw) {
		return string(raw)
	}

	if conv, read := lib.LocaleToUTF8(raw, nil); conv != nil {
		s := string(conv)
		lib.Free(conv)
		// A partial conversion would present a truncated message as whole.
		if read == len(raw) {
			return s
		}
	}

	return lossyUTF8(raw)
}

// lossyUTF8 keeps the valid runs of b and replaces each maximal ill-formed
// subsequence with a single U+FFFD, so "a\xe2\x82b" becomes "a\ufffdb".
func lossyUTF8(b []byte) string {
	out, err := unicode.UTF8.NewDecoder().Bytes(b)
	if err != nil {
		return strings.ToValidUTF8(string(b), string(utf8.RuneError))
	}
	return string(out)
}
