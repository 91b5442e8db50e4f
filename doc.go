// doc.go — package documentation for xgx-gerror
//
// Package gerror wraps the native "out-pointer + domain/code + owned message"
// error convention in a handle that owns its record and releases it exactly
// once.
//
// # Lifecycle
//
// An *Error is either unset (no record) or set (owns one native record).
//
//	+--------------------------+------------------+----------------------------------+
//	| Operation                | Unset            | Set                              |
//	+--------------------------+------------------+----------------------------------+
//	| IsSet                    | false            | true                             |
//	| Message / Error()        | "no error"       | decoded message                  |
//	| Key / Matches / ToDomain | panics (misuse)  | domain + code                    |
//	| Clone                    | new unset handle | deep copy via the native library |
//	| Free                     | no-op            | one native free, handle unset    |
//	| Move / Steal             | unset result     | ownership leaves the handle      |
//	+--------------------------+------------------+----------------------------------+
//
// A handle is populated by a native call writing through Slot:
//
//	e := gerror.Unset()
//	defer e.Free()
//	C.g_file_get_contents(path, &buf, &n, (**C.GError)(unsafe.Pointer(e.Slot())))
//	if e.IsSet() {
//	    return e.Move()
//	}
//
// Slot is the only way a record gets in from outside; hand it to exactly one
// native call. If a set handle becomes unreachable without Free, a runtime
// cleanup releases the record, but Free is the contract.
//
// # Domains
//
// Error codes only mean something inside their domain. An enumeration becomes
// a domain by implementing Domain (its quark and its numeric code); adding
// Known() lets ToDomain classify a handle into one of three outcomes:
//
//	switch m := gerror.ToDomain[gerror.FileError](e); m.Kind {
//	case gerror.NotInDomain: // some other subsystem's error
//	case gerror.Known:       // m.Value is a FileError constant
//	case gerror.Unknown:     // right domain, code newer than the enumeration
//	}
//
// Matches and errors.Is defer to the native library's own predicate rather
// than comparing fields, so library-side equivalences are honored.
//
// # Messages
//
// Native messages have no guaranteed encoding. Message tries, in order:
// UTF-8 as is; whole-buffer conversion from the locale charset; lossy UTF-8
// with U+FFFD markers. It never fails.
//
// # Interop
//
//   - *Error implements error, fmt.Formatter (%+v adds domain and code) and
//     json.Marshaler.
//   - Use Err() when returning through an error interface so an unset handle
//     becomes a nil error.
//   - errors.Is(err, gerror.FileErrorNoent) works on any chain containing a
//     set *Error.
//
// # Backends
//
// Records live in a native.Library. The default is native.Memory, a pure-Go
// implementation. Building with -tags glib and importing native/glib switches
// the process to the system GLib.
//
// # Concurrency
//
// A handle is single-owner: one goroutine populates and reads it, then frees
// it or transfers it with Move/Clone. Quark caches (package quark) are safe
// for concurrent use without locks.
package gerror
