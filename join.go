// join.go — formatting-aware multi-error join for xgx-rail.
//
// Goals:
//   • Preserve stdlib semantics for unwrapping & default string form:
//       - Unwrap() []error for tree traversal (errors.Is/As pre-order DFS).
//       - Error() == newline-joined child Error() strings (like errors.Join).
//   • Improve diagnostics: fmt.Formatter so "%+v" prints each child with its
//     own "%+v" recursively — a joined ComposableError renders its cascaded
//     form — while "%v"/"%s" keep the concise stdlib shape.
//
// Validation.ToResultAll uses Join so the full error list stays reachable
// through the stdlib unwrap protocol.
package xgxrail

import (
	"fmt"
	"strings"
)

// multi is a formatting-aware join mirroring errors.Join for Error()/Unwrap()
// while recursing on %+v.
type multi struct {
	errs []error // non-nil children only
}

// Error concatenates child Error() strings with newlines, identical to
// errors.Join.
func (m *multi) Error() string {
	if len(m.errs) == 0 {
		return ""
	}
	if len(m.errs) == 1 {
		return m.errs[0].Error()
	}
	var sb strings.Builder
	for i, e := range m.errs {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(e.Error())
	}
	return sb.String()
}

// Unwrap exposes the children to stdlib traversal.
func (m *multi) Unwrap() []error { return m.errs }

// Format implements fmt.Formatter.
//   %v, %s, %q  → render like Error() (concise, stdlib-compatible).
//   %+v         → recurse into children and render each with %+v.
func (m *multi) Format(s fmt.State, verb rune) {
	switch verb {
	case 'v':
		if s.Flag('+') {
			for i, e := range m.errs {
				if i > 0 {
					fmt.Fprint(s, "\n")
				}
				fmt.Fprintf(s, "%+v", e)
			}
			return
		}
		fmt.Fprint(s, m.Error())
	case 's':
		fmt.Fprint(s, m.Error())
	case 'q':
		fmt.Fprintf(s, "%q", m.Error())
	default:
		fmt.Fprintf(s, "%%!%c(%T)", verb, m)
	}
}

// Join returns an error that wraps the given errors, ignoring nils.
// Behavior:
//   • All nil → nil
//   • One non-nil → that error (identity preserved)
//   • 2+ non-nil → a joined error with Unwrap() []error
func Join(errs ...error) error {
	nz := make([]error, 0, len(errs))
	for _, e := range errs {
		if e != nil {
			nz = append(nz, e)
		}
	}
	switch len(nz) {
	case 0:
		return nil
	case 1:
		return nz[0]
	default:
		return &multi{errs: nz}
	}
}

// Append appends more errors to an existing head, optimizing nil cases.
func Append(head error, more ...error) error {
	if head == nil {
		return Join(more...)
	}
	onlyNil := true
	for _, e := range more {
		if e != nil {
			onlyNil = false
			break
		}
	}
	if len(more) == 0 || onlyNil {
		return head
	}
	combined := make([]error, 0, 1+len(more))
	combined = append(combined, head)
	combined = append(combined, more...)
	return Join(combined...)
}
