// domain.go — typed error domains.
//
// A domain is a quark plus a code space. An enumeration takes part by
// implementing Domain; implementing Known as well lets ToDomain classify
// handles into it. The core never hard-codes a mapping for any domain.
package gerror

import (
	"math"
	"runtime"

	"golang.org/x/exp/constraints"

	"github.com/xgx-io/xgx-gerror/native"
	"github.com/xgx-io/xgx-gerror/quark"
)

// Domain is a value from an error-domain enumeration.
type Domain interface {
	// Domain returns the domain quark. It must not depend on the receiver's
	// value: ToDomain calls it on the zero value.
	Domain() quark.Quark
	// Code returns the numeric code within the domain.
	Code() int
}

// Enum is an integer enumeration that is a Domain and knows which of its
// values are defined.
type Enum interface {
	constraints.Integer
	Domain
	Known() bool
}

// MatchKind classifies a handle against an enumeration.
type MatchKind uint8

const (
	// NotInDomain: the handle's domain is not the enumeration's.
	NotInDomain MatchKind = iota
	// Known: right domain, and the code is one of the enumeration's values.
	Known
	// Unknown: right domain, but the code is not in the enumeration, usually
	// because the library is newer than the binding.
	Unknown
)

func (k MatchKind) String() string {
	switch k {
	case NotInDomain:
		return "not_in_domain"
	case Known:
		return "known"
	case Unknown:
		return "unknown"
	default:
		return "invalid"
	}
}

// Match is the result of ToDomain. Value is set for Known; Code is set for
// Known and Unknown.
type Match[E Enum] struct {
	Kind  MatchKind
	Value E
	Code  int
}

// ToDomain classifies e against E. It panics with a *MisuseError if e is
// unset.
func ToDomain[E Enum](e *Error) Match[E] {
	rec := e.mustRecord("ToDomain")
	defer runtime.KeepAlive(e)
	code := int(rec.Code)

	var zero E
	if quark.FromRaw(rec.Domain) != zero.Domain() {
		return Match[E]{Kind: NotInDomain}
	}

	v := E(code)
	if int(v) != code || !v.Known() {
		return Match[E]{Kind: Unknown, Code: code}
	}
	return Match[E]{Kind: Known, Value: v, Code: code}
}

// Matches reports whether e carries d, using the native library's own
// domain/code predicate. A code outside the native int32 range matches
// nothing. It panics with a *MisuseError if e is unset.
func (e *Error) Matches(d Domain) bool {
	rec := e.mustRecord("Matches")
	defer runtime.KeepAlive(e)
	return matchDomain(e.library(), rec, d)
}

// Is lets errors.Is match a set handle against a Domain value or against
// another set handle with the same domain and code. Unset handles match
// nothing.
func (e *Error) Is(target error) bool {
	rec := e.record()
	if rec == nil {
		return false
	}
	defer runtime.KeepAlive(e)
	switch t := target.(type) {
	case *Error:
		other := t.record()
		if other == nil {
			return false
		}
		defer runtime.KeepAlive(t)
		return e.library().ErrorMatches(rec, other.Domain, other.Code)
	case Domain:
		return matchDomain(e.library(), rec, t)
	}
	return false
}

func matchDomain(lib native.Library, rec *native.GError, d Domain) bool {
	code := d.Code()
	if code < math.MinInt32 || code > math.MaxInt32 {
		return false
	}
	return lib.ErrorMatches(rec, d.Domain().Uint(), int32(code))
}
