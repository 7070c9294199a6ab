// codes.go — numeric error code definitions for xgx-rail core.
//
// Intent:
//   - Provide a small set of widely useful codes aligned with HTTP status
//     numbering, since that is what most services end up mapping to anyway.
//   - Keep semantics open-ended: no transport or retry policy in core.
//   - Projects may use arbitrary uint32 values; nothing here is a registry.
//
// Conventions (documented, not enforced here):
//   - Zero is never a built-in; a ComposableError distinguishes "no code"
//     from "code 0" explicitly, so zero remains usable if a project wants it.
package xgxrail

// Built-in codes, HTTP-aligned.
const (
	CodeBadRequest      uint32 = 400
	CodeUnauthorized    uint32 = 401
	CodeForbidden       uint32 = 403
	CodeNotFound        uint32 = 404
	CodeConflict        uint32 = 409
	CodeUnprocessable   uint32 = 422
	CodeTooManyRequests uint32 = 429
	CodeInternal        uint32 = 500
	CodeUnavailable     uint32 = 503
	CodeTimeout         uint32 = 504
)

// codeNames maps built-in codes to stable snake_case names.
// Order-independent; lookup only.
var codeNames = map[uint32]string{
	CodeBadRequest:      "bad_request",
	CodeUnauthorized:    "unauthorized",
	CodeForbidden:       "forbidden",
	CodeNotFound:        "not_found",
	CodeConflict:        "conflict",
	CodeUnprocessable:   "unprocessable",
	CodeTooManyRequests: "too_many_requests",
	CodeInternal:        "internal",
	CodeUnavailable:     "unavailable",
	CodeTimeout:         "timeout",
}

// allBuiltinCodes is the stable ordered set the core ships with.
var allBuiltinCodes = []uint32{
	CodeBadRequest,
	CodeUnauthorized,
	CodeForbidden,
	CodeNotFound,
	CodeConflict,
	CodeUnprocessable,
	CodeTooManyRequests,
	CodeInternal,
	CodeUnavailable,
	CodeTimeout,
}

// CodeName returns the snake_case name for a built-in code, or "" for
// unknown values. Ergonomics-only; codes remain plain numbers everywhere.
func CodeName(code uint32) string {
	return codeNames[code]
}

// BuiltinCodes returns a defensive copy of the built-in codes in a stable order.
func BuiltinCodes() []uint32 {
	out := make([]uint32, len(allBuiltinCodes))
	copy(out, allBuiltinCodes)
	return out
}

// IsBuiltinCode reports whether code is one of the built-in core codes.
func IsBuiltinCode(code uint32) bool {
	_, ok := codeNames[code]
	return ok
}
