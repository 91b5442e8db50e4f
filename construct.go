// construct.go — constructors for set and unset handles.
//
// Most handles are created unset and filled by a native call through Slot.
// New/Newf cover Go code that raises errors in a native domain itself, for
// example a Go implementation of a callback that must report a GError.
package gerror

import (
	"fmt"

	"github.com/xgx-io/xgx-gerror/native"
)

// Option customizes a handle at construction.
type Option func(*Error)

// WithLibrary binds the handle to lib instead of the process default. Records
// are always copied and freed through the library that allocated them.
func WithLibrary(lib native.Library) Option {
	return func(e *Error) {
		if lib != nil {
			e.lib = lib
		}
	}
}

// New returns a set handle for d with the given message.
func New(d Domain, msg string, opts ...Option) *Error {
	e := Unset(opts...)
	lib := e.library()
	*e.Slot() = lib.ErrorNewLiteral(d.Domain().Uint(), int32(d.Code()), msg)
	return e
}

// Newf is New with a formatted message, in the default library. Use NewfIn
// to allocate in another one.
func Newf(d Domain, format string, args ...any) *Error {
	return New(d, fmt.Sprintf(format, args...))
}

// NewfIn is Newf with the record allocated in lib.
func NewfIn(lib native.Library, d Domain, format string, args ...any) *Error {
	return New(d, fmt.Sprintf(format, args...), WithLibrary(lib))
}

// FromRecord adopts rec, which must have been allocated by lib and must not be
// owned by anything else. A nil rec yields an unset handle.
func FromRecord(lib native.Library, rec *native.GError) *Error {
	e := Unset(WithLibrary(lib))
	if rec != nil {
		*e.Slot() = rec
	}
	return e
}
