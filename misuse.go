package gerror

import (
	"errors"
	"fmt"
)

// MisuseError is the panic value raised when a handle is read in a state that
// has no meaningful answer, such as the domain of an unset handle. It is a
// programming error; recover it only in tests or at a crash-reporting
// boundary.
type MisuseError struct {
	Op     string // the method that was misused, e.g. "Key"
	Reason string
	stk    Stack
}

func newMisuse(op, reason string) *MisuseError {
	return &MisuseError{Op: op, Reason: reason, stk: captureStackDefault(2)}
}

func (m *MisuseError) Error() string {
	return fmt.Sprintf("gerror: %s: %s", m.Op, m.Reason)
}

// Stack returns the call site of the misuse, most recent first.
func (m *MisuseError) Stack() Stack { return m.stk }

// IsMisuse reports whether v, typically a value returned by recover, is a
// *MisuseError or an error wrapping one.
func IsMisuse(v any) bool {
	err, ok := v.(error)
	if !ok {
		return false
	}
	var m *MisuseError
	return errors.As(err, &m)
}
