// Package native describes the boundary to the C error/quark facility that
// gerror wraps, and ships a pure-Go implementation of it.
//
// The record layout and function set mirror GLib: a GError is a heap record
// {domain, code, message}, quarks come from a process-wide append-only table,
// and every record is released through the library that allocated it. Code
// outside this package and native/glib never allocates or frees records
// directly; it goes through a Library.
package native

import (
	"sync/atomic"
	"unsafe"

	"go.uber.org/zap"
)

// GError mirrors the C struct GError { GQuark domain; gint code; gchar *message; }.
// Message points at a NUL-terminated byte string owned by the record.
type GError struct {
	Domain  uint32
	Code    int32
	Message *byte
}

// Library is the set of native calls the error and quark wrappers rely on.
// Implementations must be safe for concurrent use.
type Library interface {
	// InternStatic returns the quark for text, creating it on first use.
	// Zero is never a valid quark and signals registry failure.
	InternStatic(text string) uint32

	// QuarkToString returns the interned bytes for q, or nil if q is unknown.
	// The bytes stay valid for the life of the process.
	QuarkToString(q uint32) []byte

	// ErrorNewLiteral allocates a record with a copy of msg.
	ErrorNewLiteral(domain uint32, code int32, msg string) *GError

	// ErrorCopy allocates an independent deep copy of e.
	ErrorCopy(e *GError) *GError

	// ErrorFree releases e and its message.
	ErrorFree(e *GError)

	// ErrorMatches is the library's own domain/code predicate.
	ErrorMatches(e *GError, domain uint32, code int32) bool

	// LocaleToUTF8 converts src from the locale charset. On failure conv is
	// nil and, if slot is non-nil, a conversion error is stored through it.
	// bytesRead is the number of input bytes the conversion consumed.
	LocaleToUTF8(src []byte, slot **GError) (conv []byte, bytesRead int)

	// Free releases a buffer returned by LocaleToUTF8.
	Free(buf []byte)
}

// Domain name and codes of the conversion errors LocaleToUTF8 reports.
const (
	ConvertErrorDomain = "g_convert_error"

	ConvertNoConversion    int32 = 0
	ConvertIllegalSequence int32 = 1
	ConvertFailed          int32 = 2
	ConvertPartialInput    int32 = 3
	ConvertBadURI          int32 = 4
	ConvertNotAbsolutePath int32 = 5
	ConvertNoMemory        int32 = 6
	ConvertEmbeddedNUL     int32 = 7
)

// Bytes returns the message of e without its terminating NUL. The slice
// aliases record memory and is valid only while e is alive.
func Bytes(e *GError) []byte {
	if e == nil || e.Message == nil {
		return nil
	}
	return CString(e.Message)
}

// CString returns the bytes of a NUL-terminated string starting at p.
func CString(p *byte) []byte {
	if p == nil {
		return nil
	}
	n := 0
	for *(*byte)(unsafe.Add(unsafe.Pointer(p), n)) != 0 {
		n++
	}
	return unsafe.Slice(p, n)
}

// SetError stores a new record in *slot, like g_set_error_literal. A nil slot
// discards the error. An occupied slot is left untouched and a warning is
// logged; overwriting would leak the first error.
func SetError(lib Library, slot **GError, domain uint32, code int32, msg string) {
	setError(logger(), lib, slot, domain, code, msg)
}

func setError(log *zap.Logger, lib Library, slot **GError, domain uint32, code int32, msg string) {
	if slot == nil {
		return
	}
	if *slot != nil {
		log.Warn("GError set over the top of a previous GError or uninitialized memory",
			zap.Uint32("domain", domain),
			zap.Int32("code", code),
			zap.String("message", msg),
		)
		return
	}
	*slot = lib.ErrorNewLiteral(domain, code, msg)
}

// -----------------------------------------------------------------------------
// Process default
// -----------------------------------------------------------------------------

type libBox struct{ lib Library }

var (
	defaultLib atomic.Pointer[libBox]
	pkgLogger  atomic.Pointer[zap.Logger]
)

// Default returns the process-wide Library. Unless SetDefault was called it is
// a Memory configured from the locale environment.
func Default() Library {
	if b := defaultLib.Load(); b != nil {
		return b.lib
	}
	b := &libBox{lib: NewMemory()}
	if defaultLib.CompareAndSwap(nil, b) {
		return b.lib
	}
	return defaultLib.Load().lib
}

// SetDefault installs lib as the process-wide Library. It must run before the
// first quark is interned: quarks from different libraries do not mix.
func SetDefault(lib Library) {
	if lib == nil {
		panic("native: SetDefault(nil)")
	}
	defaultLib.Store(&libBox{lib: lib})
}

// SetLogger sets the logger used by package-level helpers such as SetError.
func SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	pkgLogger.Store(l)
}

func logger() *zap.Logger {
	if l := pkgLogger.Load(); l != nil {
		return l
	}
	return zap.NewNop()
}
