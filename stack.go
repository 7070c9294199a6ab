// stack.go — call-site and backtrace capture for xgx-rail.
//
// Design goals:
//   - Interop & correctness: use runtime.Callers + runtime.CallersFrames for
//     accurate frame resolution (handles inlining correctly).
//   - Opt-in only: nothing here runs unless Here/Backtrace is called, and
//     Backtrace's capture is further deferred behind a LazyContext thunk.
//   - Bounded depth, cheap defaults, no allocations on success paths.
package xgxrail

import (
	"runtime"
	"strings"
)

// Frame represents a single call site in a captured backtrace.
type Frame struct {
	PC       uintptr // program counter of the call return
	File     string  // absolute file path (as provided by runtime)
	Line     int     // line number
	Function string  // fully-qualified function name (pkg.Func or method)
}

// Stack is a slice of Frames from most recent call outward.
type Stack []Frame

const (
	// defaultMaxDepth bounds capture work on exceptional paths while still
	// covering meaningful call chains.
	defaultMaxDepth = 64
)

// captureStack captures up to maxDepth frames, skipping 'skip' initial frames
// beyond the internal helpers, and resolves file/line/function names.
//
// Skip accounting:
//   • +1 for runtime.Callers itself
//   • +1 for captureStack
// so skip=0 places the first recorded frame at captureStack's caller.
func captureStack(skip, maxDepth int) Stack {
	if maxDepth <= 0 {
		maxDepth = defaultMaxDepth
	}
	pc := make([]uintptr, maxDepth)
	n := runtime.Callers(skip+2, pc)
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

// callSite resolves the immediate caller 'skip' frames up, for Here().
func callSite(skip int) (file string, line int) {
	_, file, line, ok := runtime.Caller(skip + 1)
	if !ok {
		return "unknown", 0
	}
	return file, line
}

// String renders the stack one frame per line, most recent first.
func (s Stack) String() string {
	if len(s) == 0 {
		return ""
	}
	var sb strings.Builder
	for i, fr := range s {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(fr.Function)
		sb.WriteByte(' ')
		sb.WriteString(fr.File)
		sb.WriteByte(':')
		sb.WriteString(itoa(fr.Line))
	}
	return sb.String()
}
