// predicates.go — questions about arbitrary Go errors.
//
// These work on any error value, typically one that wraps a set *Error
// somewhere along its chain. They never panic: an error with no set handle
// simply answers false or zero.
package gerror

import (
	"github.com/xgx-io/xgx-gerror/quark"
)

// Is reports whether any set handle in err's graph matches d, using the
// native library's predicate.
func Is(err error, d Domain) bool {
	found := false
	Walk(err, func(e error) bool {
		if h, ok := e.(*Error); ok && h.IsSet() && h.Matches(d) {
			found = true
			return false
		}
		return true
	})
	return found
}

// InDomain reports whether any set handle in err's graph belongs to the
// domain of E, whatever its code.
func InDomain[E Enum](err error) bool {
	for _, h := range Records(err) {
		if ToDomain[E](h).Kind != NotInDomain {
			return true
		}
	}
	return false
}

// As returns the first set handle in err's graph.
func As(err error) (*Error, bool) {
	rs := Records(err)
	if len(rs) == 0 {
		return nil, false
	}
	return rs[0], true
}

// KeyOf returns the domain and code of the first set handle in err's graph,
// or the zero quark and 0 if there is none.
func KeyOf(err error) (quark.Quark, int) {
	h, ok := As(err)
	if !ok {
		return 0, 0
	}
	return h.Key()
}
