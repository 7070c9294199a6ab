// construct.go — semantic constructors for xgx-rail.
//
// Pragmatic shorthands for the common failure categories: each returns a
// ComposableError pre-seeded with a built-in code and a tagged Group context.
// Nothing here adds policy; they are plain New/WithCode/WithContext chains
// spelled once.
package xgxrail

import (
	"errors"
	"fmt"
	"time"
)

// Errorf builds a ComposableError around a formatted core error.
// The %w verb works as in fmt.Errorf, so wrapped causes stay reachable.
func Errorf(format string, args ...any) *ComposableError {
	return New(fmt.Errorf(format, args...))
}

// NotFound reports a missing entity: code 404, tagged "not_found".
//
//	xgxrail.NotFound("user", 42)
func NotFound(what string, id any) *ComposableError {
	return WithCode(fmt.Errorf("%s not found", what), CodeNotFound).
		WithContext(Group().
			Tag("not_found").
			Metadata("entity", what).
			Metadata("id", fmt.Sprint(id)).
			Build())
}

// InvalidField reports a validation failure on a named field: code 422.
func InvalidField(field, reason string) *ComposableError {
	return WithCode(fmt.Errorf("invalid %s", field), CodeUnprocessable).
		WithContext(Group().
			Tag("invalid").
			Metadata("field", field).
			Metadata("reason", reason).
			Build())
}

// Conflict reports a state conflict: code 409.
func Conflict(what string) *ComposableError {
	return WithCode(fmt.Errorf("conflict on %s", what), CodeConflict).
		WithContext(Tag("conflict"))
}

// Timeout reports an operation exceeding its deadline: code 504. The core is
// marked transient, so RecoverTransient and the retry helper engage.
func Timeout(op string, limit time.Duration) *ComposableError {
	core := MarkTransient(fmt.Errorf("%s timed out after %s", op, limit))
	return WithCode(core, CodeTimeout).
		WithContext(Group().
			Tag("timeout").
			Metadata("op", op).
			Metadata("limit", limit.String()).
			Build())
}

// Unavailable reports a dependency being down: code 503, transient.
func Unavailable(service string) *ComposableError {
	core := MarkTransient(fmt.Errorf("%s unavailable", service))
	return WithCode(core, CodeUnavailable).
		WithContext(Group().
			Tag("unavailable").
			Metadata("service", service).
			Build())
}

// Internal wraps an unexpected failure: code 500. A nil cause still yields a
// usable error.
func Internal(cause error) *ComposableError {
	if cause == nil {
		cause = errors.New("internal error")
	}
	return WithCode(cause, CodeInternal).WithContext(Tag("internal"))
}

// Unauthorized reports missing or bad credentials: code 401.
func Unauthorized(reason string) *ComposableError {
	return WithCode(errors.New("unauthorized"), CodeUnauthorized).
		WithContext(Group().
			Tag("unauthorized").
			Metadata("reason", reason).
			Build())
}

// Forbidden reports a denied action: code 403.
func Forbidden(action string) *ComposableError {
	return WithCode(fmt.Errorf("forbidden: %s", action), CodeForbidden).
		WithContext(Tag("forbidden"))
}

// RateLimited reports throttling: code 429, transient, with the retry delay
// attached both as a hint context and as structured metadata.
func RateLimited(after time.Duration) *ComposableError {
	core := MarkTransient(errors.New("rate limited"))
	return WithCode(core, CodeTooManyRequests).
		WithContext(Tag("rate_limited")).
		WithContext(fieldRetryAfterHint.Context(after))
}
