// facade.go — call-site sugar: source locations, backtraces, rail shorthand.
//
// These helpers are the ergonomic literal layer over the context model. Each
// one produces a plain ErrorContext or LazyContext; nothing here carries
// policy, and everything composes with WithContext/asErrorContext as-is.
package xgxrail

import "os"

// backtraceEnv gates Backtrace capture. Unset or "0"/"off"/"false" disables
// capture; Backtrace then yields the literal text "disabled backtrace" so
// chains keep a stable shape across environments.
const backtraceEnv = "XGXRAIL_BACKTRACE"

// Here returns a Location context for the caller's file and line.
func Here() ErrorContext {
	file, line := callSite(1)
	return Location(file, line)
}

// Backtrace returns a lazy context whose body is the stack captured at
// evaluation time, or "disabled backtrace" when capture is disabled via
// XGXRAIL_BACKTRACE. The capture itself only happens on the failure path.
func Backtrace() *LazyContext {
	if !backtraceEnabled() {
		return Lazy(func() string { return "disabled backtrace" })
	}
	return Lazy(func() string { return captureStack(1, defaultMaxDepth).String() })
}

// BacktraceForce captures unconditionally, ignoring the environment gate.
func BacktraceForce() *LazyContext {
	return Lazy(func() string { return captureStack(1, defaultMaxDepth).String() })
}

func backtraceEnabled() bool {
	switch os.Getenv(backtraceEnv) {
	case "", "0", "off", "false":
		return false
	}
	return true
}

// Rail wraps a (value, error) pair in a pipeline and immediately finalizes
// it, producing a result whose error side is a *ComposableError.
//
//	v, err := xgxrail.Rail(loadConfig(path))
func Rail[T any](v T, err error) (T, error) {
	return Pipe(v, err).Finish()
}
