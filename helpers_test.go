// helpers_test.go — an instrumented native library for handle tests.
package gerror

import (
	"sync/atomic"
	"testing"

	"github.com/xgx-io/xgx-gerror/native"
)

// countingLib wraps a native.Memory, counts the calls the handle makes, and
// lets a test replace the matching predicate and the locale conversion.
type countingLib struct {
	*native.Memory

	copies    atomic.Int64
	frees     atomic.Int64
	matches   atomic.Int64
	convs     atomic.Int64
	bufFrees  atomic.Int64
	matchFunc func(rec *native.GError, domain uint32, code int32) bool
	convFunc  func(src []byte) ([]byte, int)
}

func newCountingLib(t *testing.T, charset string) *countingLib {
	t.Helper()
	lib := &countingLib{Memory: native.NewMemory(native.WithCharset(charset))}
	t.Cleanup(func() {
		if n := lib.Stats().Records; n != 0 {
			t.Errorf("leaked %d native records", n)
		}
	})
	return lib
}

func (l *countingLib) ErrorCopy(e *native.GError) *native.GError {
	l.copies.Add(1)
	return l.Memory.ErrorCopy(e)
}

func (l *countingLib) ErrorFree(e *native.GError) {
	l.frees.Add(1)
	l.Memory.ErrorFree(e)
}

func (l *countingLib) ErrorMatches(e *native.GError, domain uint32, code int32) bool {
	l.matches.Add(1)
	if l.matchFunc != nil {
		return l.matchFunc(e, domain, code)
	}
	return l.Memory.ErrorMatches(e, domain, code)
}

func (l *countingLib) LocaleToUTF8(src []byte, slot **native.GError) ([]byte, int) {
	l.convs.Add(1)
	if l.convFunc != nil {
		return l.convFunc(src)
	}
	return l.Memory.LocaleToUTF8(src, slot)
}

func (l *countingLib) Free(buf []byte) {
	if buf != nil {
		l.bufFrees.Add(1)
	}
	if l.convFunc == nil {
		l.Memory.Free(buf)
	}
}

// newRaw returns a set handle whose message is exactly raw.
func newRaw(lib *countingLib, d Domain, raw []byte) *Error {
	return FromRecord(lib, lib.NewError(d.Domain().Uint(), int32(d.Code()), raw))
}

// mustPanicMisuse runs fn and returns the *MisuseError it panics with.
func mustPanicMisuse(t *testing.T, fn func()) (m *MisuseError) {
	t.Helper()
	defer func() {
		r := recover()
		if r == nil {
			t.Fatalf("expected a misuse panic, got none")
		}
		var ok bool
		if m, ok = r.(*MisuseError); !ok {
			t.Fatalf("panic value %T(%v), want *MisuseError", r, r)
		}
	}()
	fn()
	return nil
}
