// Package gerror defines the owning handle over native error records used
// across xgx bindings. It keeps the native allocation discipline (one record,
// one free) while exposing the stdlib error contracts.
//
// Handle tenets:
//   - Ownership is explicit: Free releases, Move/Steal transfer, Clone copies.
//   - No implicit duplication: Error carries a noCopy guard for go vet.
//   - Misuse is loud: reading domain/code from an unset handle panics.
package gerror

import (
	"runtime"

	"github.com/xgx-io/xgx-gerror/native"
	"github.com/xgx-io/xgx-gerror/quark"
)

// Error owns at most one native error record. The zero value is an unset
// handle bound to the default native library. Error must not be copied after
// first use; pass *Error.
type Error struct {
	_   noCopy
	lib native.Library
	c   *cell
}

// cell holds the record pointer outside the Error so the runtime cleanup can
// reach it without keeping the Error alive.
type cell struct {
	lib native.Library
	rec *native.GError
}

func (c *cell) release() {
	if c.rec != nil {
		c.lib.ErrorFree(c.rec)
		c.rec = nil
	}
}

// noCopy makes go vet's copylocks check flag Error values passed by value.
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}

// Unset returns a handle with no record.
func Unset(opts ...Option) *Error {
	e := &Error{}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Slot exposes the record pointer for one native call to populate, in the
// GError** convention. The call must be the only write before the next read,
// and the pointer must not be retained after it returns. Native calls that
// find the slot occupied leave it alone (see native.SetError).
func (e *Error) Slot() **native.GError {
	e.ensure()
	return &e.c.rec
}

// IsSet reports whether the handle owns a record.
func (e *Error) IsSet() bool { return e.record() != nil }

// Key returns the domain and code. It panics if the handle is unset.
func (e *Error) Key() (quark.Quark, int) {
	rec := e.mustRecord("Key")
	defer runtime.KeepAlive(e)
	return quark.FromRaw(rec.Domain), int(rec.Code)
}

// Clone returns an independent handle. An unset handle clones to an unset
// handle without touching the library; a set one is deep-copied.
func (e *Error) Clone() *Error {
	lib := e.library()
	n := Unset(WithLibrary(lib))
	if rec := e.record(); rec != nil {
		n.ensure()
		n.c.rec = lib.ErrorCopy(rec)
	}
	runtime.KeepAlive(e)
	return n
}

// Free releases the record, leaving the handle unset. Free on an unset handle
// does nothing, so it is safe to defer unconditionally.
func (e *Error) Free() {
	if e == nil || e.c == nil {
		return
	}
	e.c.release()
	runtime.KeepAlive(e)
}

// Move transfers the record to a new handle and leaves e unset.
func (e *Error) Move() *Error {
	n := Unset(WithLibrary(e.library()))
	if rec := e.record(); rec != nil {
		n.ensure()
		n.c.rec = rec
		e.c.rec = nil
	}
	return n
}

// Steal gives up ownership of the record and returns it, leaving e unset. The
// caller must release it through the same library, typically by passing it
// back to native code through its own out-slot.
func (e *Error) Steal() *native.GError {
	rec := e.record()
	if rec != nil {
		e.c.rec = nil
	}
	return rec
}

// Err returns e as an error, or nil if e is unset.
func (e *Error) Err() error {
	if !e.IsSet() {
		return nil
	}
	return e
}

// Library returns the native library that owns the handle's record.
func (e *Error) Library() native.Library { return e.library() }

func (e *Error) ensure() {
	if e.c != nil {
		return
	}
	e.c = &cell{lib: e.library()}
	// The cleanup may run as soon as e is unreachable, which can be before
	// a method that loaded e.c.rec is done with it. Every such method ends
	// with runtime.KeepAlive(e).
	runtime.AddCleanup(e, (*cell).release, e.c)
}

// ensureFor rebinds an unset handle to lib before it adopts a record
// allocated there.
func (e *Error) ensureFor(lib native.Library) {
	e.lib = lib
	e.ensure()
	e.c.lib = lib
}

func (e *Error) record() *native.GError {
	if e == nil || e.c == nil {
		return nil
	}
	return e.c.rec
}

func (e *Error) library() native.Library {
	switch {
	case e == nil:
		return native.Default()
	case e.c != nil:
		return e.c.lib
	case e.lib != nil:
		return e.lib
	default:
		return native.Default()
	}
}

func (e *Error) mustRecord(op string) *native.GError {
	rec := e.record()
	if rec == nil {
		panic(newMisuse(op, "use of an unset GError slot"))
	}
	return rec
}
