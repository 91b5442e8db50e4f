// format.go — fmt.Formatter implementations.
//
// Behavior:
//
//	%s, %v   → Message(), "no error" when unset.
//	%q       → quoted Message().
//	%+v      → domain=<quark> code=<n> msg="<message>"
//	           (msg="no error" alone when unset)
//
// MisuseError adds its captured stack under %+v:
//
//	gerror: Key: use of an unset GError slot
//	stack:
//	  funcA file.go:123
package gerror

import (
	"fmt"
	"io"
	"runtime"

	"github.com/xgx-io/xgx-gerror/native"
	"github.com/xgx-io/xgx-gerror/quark"
)

func formatConcise(w io.Writer, e error) {
	_, _ = io.WriteString(w, e.Error())
}

func formatVerbose(w io.Writer, e *Error) {
	if rec := e.record(); rec != nil {
		_, _ = fmt.Fprintf(w, "domain=%s code=%d ", domainName(e.library(), rec.Domain), rec.Code)
	}
	_, _ = fmt.Fprintf(w, "msg=%q", e.Message())
}

func formatStack(w io.Writer, stk Stack) {
	if len(stk) == 0 {
		return
	}
	_, _ = io.WriteString(w, "\nstack:")
	for _, fr := range stk {
		_, _ = fmt.Fprintf(w, "\n  %s %s:%d", fr.Function, fr.File, fr.Line)
	}
}

// domainName resolves a domain quark for display; unknown quarks print as
// quark(N).
func domainName(lib native.Library, q uint32) string {
	b := quark.FromRaw(q).BytesIn(lib)
	if b == nil {
		return fmt.Sprintf("quark(%d)", q)
	}
	return lossyUTF8(b)
}

// Format implements fmt.Formatter.
func (e *Error) Format(s fmt.State, verb rune) {
	defer runtime.KeepAlive(e)
	switch verb {
	case 'v':
		if s.Flag('+') {
			formatVerbose(s, e)
			return
		}
		formatConcise(s, e)
	case 'q':
		_, _ = fmt.Fprintf(s, "%q", e.Message())
	default:
		formatConcise(s, e)
	}
}

// Format implements fmt.Formatter.
func (m *MisuseError) Format(s fmt.State, verb rune) {
	switch verb {
	case 'v':
		formatConcise(s, m)
		if s.Flag('+') {
			formatStack(s, m.stk)
		}
	case 'q':
		_, _ = fmt.Fprintf(s, "%q", m.Error())
	default:
		formatConcise(s, m)
	}
}
