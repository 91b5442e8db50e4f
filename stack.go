// stack.go — stack capture for misuse reports.
//
// A handle read while unset panics with a *MisuseError. The panic value
// carries the call site so a recovered report (or a crash log rendered with
// %+v) points at the offending read rather than at the runtime.
//
// Frames are resolved with runtime.CallersFrames, which expands inlined calls.
package gerror

import (
	"runtime"
)

// Frame is a single call site in a stack trace.
type Frame struct {
	PC       uintptr
	File     string
	Line     int
	Function string // fully-qualified, e.g. github.com/x/y.(*T).Method
}

// Stack is a slice of Frames from most recent call outward.
type Stack []Frame

const defaultMaxDepth = 32

// captureStackDefault captures a stack skipping 'skip' frames beyond its
// caller, bounded by defaultMaxDepth.
//
// For a misuse report the chain is
//
//	(*Error).Key → mustRecord → newMisuse → captureStackDefault → captureStack → runtime.Callers
//
// and newMisuse passes skip=2 so the first frame is the exported method.
func captureStackDefault(skip int) Stack {
	return captureStack(skip, defaultMaxDepth)
}

// captureStack captures up to maxDepth frames. The +3 skips runtime.Callers,
// captureStack and captureStackDefault.
func captureStack(skip, maxDepth int) Stack {
	if maxDepth <= 0 {
		maxDepth = defaultMaxDepth
	}

	pc := make([]uintptr, maxDepth)
	n := runtime.Callers(skip+3, pc)
	if n == 0 {
		return nil
	}
	pc = pc[:n]

	frames := runtime.CallersFrames(pc)
	out := make(Stack, 0, n)
	for {
		fr, more := frames.Next()
		out = append(out, Frame{
			PC:       fr.PC,
			File:     fr.File,
			Line:     fr.Line,
			Function: fr.Function,
		})
		if !more {
			break
		}
	}
	return out
}

// Top returns the most recent frame, or the zero Frame for an empty stack.
func (s Stack) Top() Frame {
	if len(s) == 0 {
		return Frame{}
	}
	return s[0]
}
