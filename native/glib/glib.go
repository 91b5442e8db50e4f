//go:build glib && cgo

// Package glib implements native.Library over the system GLib. Importing it
// installs the implementation as the process default:
//
//	import _ "github.com/xgx-io/xgx-gerror/native/glib"
//
// Build with -tags glib; pkg-config must know glib-2.0.
package glib

/*
#cgo pkg-config: glib-2.0
#include <stdlib.h>
#include <string.h>
#include <glib.h>
*/
import "C"

import (
	"unsafe"

	"github.com/xgx-io/xgx-gerror/native"
)

func init() {
	native.SetDefault(New())
}

// Library calls straight into GLib. It has no state; GLib's quark table and
// allocator are process-wide and thread-safe.
type Library struct{}

// New returns the GLib-backed library.
func New() *Library { return &Library{} }

func cerr(e *native.GError) *C.GError { return (*C.GError)(unsafe.Pointer(e)) }
func gerr(e *C.GError) *native.GError { return (*native.GError)(unsafe.Pointer(e)) }

func (*Library) InternStatic(text string) uint32 {
	// g_quark_from_static_string would keep a pointer into Go memory; the
	// copying variant is the safe one from Go.
	cs := C.CString(text)
	defer C.free(unsafe.Pointer(cs))
	return uint32(C.g_quark_from_string(cs))
}

func (*Library) QuarkToString(q uint32) []byte {
	if q == 0 {
		return nil
	}
	p := C.g_quark_to_string(C.GQuark(q))
	if p == nil {
		return nil
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(p)), int(C.strlen(p)))
}

func (*Library) ErrorNewLiteral(domain uint32, code int32, msg string) *native.GError {
	cs := C.CString(msg)
	defer C.free(unsafe.Pointer(cs))
	return gerr(C.g_error_new_literal(C.GQuark(domain), C.gint(code), cs))
}

func (*Library) ErrorCopy(e *native.GError) *native.GError {
	return gerr(C.g_error_copy(cerr(e)))
}

func (*Library) ErrorFree(e *native.GError) {
	C.g_error_free(cerr(e))
}

func (*Library) ErrorMatches(e *native.GError, domain uint32, code int32) bool {
	return C.g_error_matches(cerr(e), C.GQuark(domain), C.gint(code)) != 0
}

func (*Library) LocaleToUTF8(src []byte, slot **native.GError) ([]byte, int) {
	var (
		read, written C.gsize
		err           *C.GError
		in            *C.gchar
	)
	if len(src) > 0 {
		in = (*C.gchar)(unsafe.Pointer(&src[0]))
	} else {
		in = (*C.gchar)(unsafe.Pointer(C.CString("")))
		defer C.free(unsafe.Pointer(in))
	}

	out := C.g_locale_to_utf8(in, C.gssize(len(src)), &read, &written, &err)
	if err != nil {
		if slot != nil && *slot == nil {
			*slot = gerr(err)
		} else {
			C.g_error_free(err)
		}
	}
	if out == nil {
		return nil, int(read)
	}
	// GLib NUL-terminates the result; keep that byte in the capacity so Free
	// can find the allocation even for an empty conversion.
	buf := unsafe.Slice((*byte)(unsafe.Pointer(out)), int(written)+1)
	return buf[:written:written+1], int(read)
}

func (*Library) Free(buf []byte) {
	if buf == nil {
		return
	}
	C.g_free(C.gpointer(unsafe.Pointer(unsafe.SliceData(buf))))
}

var _ native.Library = (*Library)(nil)
