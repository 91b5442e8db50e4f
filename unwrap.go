// unwrap.go — locating handles inside Go error graphs.
//
// A set *Error usually travels through ordinary Go wrapping (fmt.Errorf %w,
// errors.Join) before someone asks what it was. errors.As stops at the first
// match; the helpers here walk the whole graph so a joined error carrying two
// native records reports both.
//
// Traversal handles both Unwrap() error and Unwrap() []error. map[error] is
// not a safe "seen" set on its own because non-comparable dynamic types panic
// as map keys, so comparable values are tracked by value and pointer-typed
// ones by address.
package gerror

import (
	"reflect"
)

type singleUnwrapper interface{ Unwrap() error }
type multiUnwrapper interface{ Unwrap() []error }

func fastIsPointer(err error) bool {
	if err == nil {
		return false
	}
	switch err.(type) {
	case *Error, *MisuseError:
		return true
	}
	return reflect.ValueOf(err).Kind() == reflect.Ptr
}

func isComparable(err error) bool {
	if err == nil {
		return false
	}
	return reflect.TypeOf(err).Comparable()
}

func ptrID(err error) (uintptr, bool) {
	if err == nil {
		return 0, false
	}
	rv := reflect.ValueOf(err)
	if rv.Kind() == reflect.Ptr && !rv.IsNil() {
		return rv.Pointer(), true
	}
	return 0, false
}

// markSeen returns true if err was newly marked. Values that are neither
// comparable nor pointers are always "new"; the depth cap bounds them.
func markSeen(err error, seenErr map[error]struct{}, seenPtr map[uintptr]struct{}) bool {
	if err == nil {
		return false
	}
	if isComparable(err) {
		if _, ok := seenErr[err]; ok {
			return false
		}
		seenErr[err] = struct{}{}
		return true
	}
	if fastIsPointer(err) {
		if id, ok := ptrID(err); ok {
			if _, dup := seenPtr[id]; dup {
				return false
			}
			seenPtr[id] = struct{}{}
			return true
		}
	}
	return true
}

// Walk visits each distinct node of err's graph depth-first, in pre-order,
// left to right. Returning false from visit stops the walk. Cycles are safe
// and a nil err is a no-op.
func Walk(err error, visit func(error) bool) {
	if err == nil || visit == nil {
		return
	}
	const maxDepth = 1 << 12

	stack := make([]error, 0, 8)
	seenErr := make(map[error]struct{}, 16)
	seenPtr := make(map[uintptr]struct{}, 16)

	stack = append(stack, err)
	_ = markSeen(err, seenErr, seenPtr)

	for len(stack) > 0 && len(stack) < maxDepth {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if !visit(cur) {
			return
		}

		if m, ok := cur.(multiUnwrapper); ok {
			kids := m.Unwrap()
			for i := len(kids) - 1; i >= 0; i-- {
				if c := kids[i]; c != nil && markSeen(c, seenErr, seenPtr) {
					stack = append(stack, c)
				}
			}
			continue
		}
		if s, ok := cur.(singleUnwrapper); ok {
			if u := s.Unwrap(); u != nil && markSeen(u, seenErr, seenPtr) {
				stack = append(stack, u)
			}
		}
	}
}

// Records returns every set *Error in err's graph in Walk order. Unset
// handles are skipped. The handles are not copied; they stay owned by
// whoever built err.
func Records(err error) []*Error {
	var out []*Error
	Walk(err, func(e error) bool {
		if h, ok := e.(*Error); ok && h.IsSet() {
			out = append(out, h)
		}
		return true
	})
	return out
}
