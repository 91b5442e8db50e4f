// Package quark interns strings into small process-wide identifiers.
//
// A Quark is whatever the native registry hands out for a string: the same
// text always yields the same Quark, and a Quark stays valid until the process
// exits. Interning is delegated to a Registry (by default the native library);
// this package adds lock-free caches on top so hot lookups, such as an error
// domain checked on every call, cost one atomic load.
package quark

import (
	"fmt"
	"unicode/utf8"

	"github.com/pkg/errors"

	"github.com/xgx-io/xgx-gerror/native"
)

// ErrNotUTF8 reports interned bytes that are not valid UTF-8.
var ErrNotUTF8 = errors.New("quark: interned string is not valid UTF-8")

// Registry is the interning half of native.Library.
type Registry interface {
	InternStatic(text string) uint32
	QuarkToString(q uint32) []byte
}

// DefaultRegistry returns the registry of the process-wide native library.
func DefaultRegistry() Registry { return native.Default() }

// Quark is an interned string identifier. The zero Quark is never valid.
type Quark uint32

// FromRaw adopts a raw identifier. raw must have come from the registry, for
// example as the domain field of a native error record.
func FromRaw(raw uint32) Quark { return Quark(raw) }

// FromStatic interns text in the default registry. It calls the registry on
// every use; see Static for a cached slot.
func FromStatic(text string) Quark { return FromStaticIn(DefaultRegistry(), text) }

// FromStaticIn interns text in r. text is expected to be a constant that lives
// for the whole process. A registry that cannot intern is a broken process
// invariant, so FromStaticIn panics rather than returning an error.
func FromStaticIn(r Registry, text string) Quark {
	q := r.InternStatic(text)
	if q == 0 {
		panic(fmt.Sprintf("quark: registry failed to intern %q", text))
	}
	return Quark(q)
}

// Uint returns the raw identifier.
func (q Quark) Uint() uint32 { return uint32(q) }

// IsValid reports whether q is non-zero.
func (q Quark) IsValid() bool { return q != 0 }

// Bytes resolves q in the default registry. The result is owned by the
// registry and must not be modified.
func (q Quark) Bytes() []byte { return q.BytesIn(DefaultRegistry()) }

// BytesIn resolves q in r.
func (q Quark) BytesIn(r Registry) []byte {
	if q == 0 {
		return nil
	}
	return r.QuarkToString(uint32(q))
}

// Text resolves q in the default registry and decodes it as UTF-8.
func (q Quark) Text() (string, error) { return q.TextIn(DefaultRegistry()) }

// TextIn resolves q in r and decodes it as UTF-8.
func (q Quark) TextIn(r Registry) (string, error) {
	b := q.BytesIn(r)
	if !utf8.Valid(b) {
		return "", errors.Wrapf(ErrNotUTF8, "quark %d", uint32(q))
	}
	return string(b), nil
}

// String implements fmt.Stringer. Undecodable bytes are replaced with U+FFFD;
// unknown quarks render as quark(N).
func (q Quark) String() string {
	b := q.Bytes()
	if b == nil {
		return fmt.Sprintf("quark(%d)", uint32(q))
	}
	if utf8.Valid(b) {
		return string(b)
	}
	return string([]rune(string(b)))
}
