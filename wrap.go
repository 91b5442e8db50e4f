// wrap.go — moving and rewriting records between owners.
//
// These mirror the native helpers for error plumbing:
//
//	g_propagate_error        → Propagate / PropagateTo
//	g_prefix_error           → Prefix
//	g_propagate_prefixed_error → PropagatePrefixed
//
// All of them keep the one-record-one-owner rule: a record that has nowhere
// to go is freed, never dropped.
package gerror

import (
	"fmt"
	"runtime"

	"github.com/xgx-io/xgx-gerror/native"
)

// Prefix replaces the record with one whose message starts with the
// formatted prefix. Domain and code are kept. An unset handle is left alone.
//
// The prefix is joined to the raw message bytes, so a message in the locale
// charset stays decodable after prefixing an ASCII prefix.
func (e *Error) Prefix(format string, args ...any) {
	rec := e.record()
	if rec == nil {
		return
	}
	defer runtime.KeepAlive(e)
	lib := e.library()
	msg := fmt.Sprintf(format, args...) + string(native.Bytes(rec))
	e.c.rec = lib.ErrorNewLiteral(rec.Domain, rec.Code, msg)
	lib.ErrorFree(rec)
}

// PropagateTo moves e's record into dest, leaving e unset. If dest is nil
// the record is freed. If dest is already set it keeps its own record, the
// moved one is freed, and false is returned; like the native call this is a
// bug in the caller, but not one worth crashing over.
func (e *Error) PropagateTo(dest *Error) bool {
	rec := e.Steal()
	if rec == nil {
		return true
	}
	lib := e.library()
	if dest == nil {
		lib.ErrorFree(rec)
		return true
	}
	if dest.IsSet() {
		lib.ErrorFree(rec)
		return false
	}
	dest.ensureFor(lib)
	dest.c.rec = rec
	return true
}

// Propagate moves e's record through a native out-slot, for Go code that
// implements a native callback. A nil slot frees the record; an occupied
// slot is left untouched and the record is freed.
func (e *Error) Propagate(slot **native.GError) {
	rec := e.Steal()
	if rec == nil {
		return
	}
	if slot == nil || *slot != nil {
		e.library().ErrorFree(rec)
		return
	}
	*slot = rec
}

// PropagatePrefixed is PropagateTo followed by Prefix on dest, when the move
// happened.
func (e *Error) PropagatePrefixed(dest *Error, format string, args ...any) bool {
	if !e.IsSet() {
		return true
	}
	if !e.PropagateTo(dest) {
		return false
	}
	if dest != nil {
		dest.Prefix(format, args...)
	}
	return true
}
