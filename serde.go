// serde.go — JSON serialization for xgx-rail values.
//
// The contract is round-trip equality: context order, code presence, and the
// core's display form survive marshal → unmarshal exactly. The core error is
// serialized as its display string; unmarshalling rebuilds it with
// errors.New, which is structurally equal for display, formatting, and
// fingerprint purposes. Dynamic error types do not survive serialization;
// that is inherent to the wire boundary, not a defect.
package xgxrail

import (
	"encoding/json"
	"errors"
	"fmt"
)

// contextJSON is the tagged wire shape of an ErrorContext.
type contextJSON struct {
	Kind string     `json:"kind"`
	Text string     `json:"text,omitempty"`
	File string     `json:"file,omitempty"`
	Line int        `json:"line,omitempty"`
	Loc  bool       `json:"has_location,omitempty"`
	Tags []string   `json:"tags,omitempty"`
	Meta []MetaPair `json:"meta,omitempty"`
}

const (
	kindNameMessage  = "message"
	kindNameLocation = "location"
	kindNameGroup    = "group"
)

// MarshalJSON encodes the context as a tagged object.
func (c ErrorContext) MarshalJSON() ([]byte, error) {
	out := contextJSON{Text: c.text, Tags: c.tags, Meta: c.meta}
	switch c.kind {
	case KindMessage:
		out.Kind = kindNameMessage
	case KindLocation:
		out.Kind = kindNameLocation
		out.File, out.Line, out.Loc = c.file, c.line, true
	case KindGroup:
		out.Kind = kindNameGroup
		out.File, out.Line, out.Loc = c.file, c.line, c.hasLoc
	default:
		return nil, fmt.Errorf("xgxrail: unknown context kind %d", c.kind)
	}
	return json.Marshal(out)
}

// UnmarshalJSON decodes the tagged object form.
func (c *ErrorContext) UnmarshalJSON(data []byte) error {
	var in contextJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	switch in.Kind {
	case kindNameMessage:
		*c = Message(in.Text)
	case kindNameLocation:
		*c = Location(in.File, in.Line)
	case kindNameGroup:
		*c = ErrorContext{
			kind:   KindGroup,
			text:   in.Text,
			file:   in.File,
			line:   in.Line,
			hasLoc: in.Loc,
			tags:   in.Tags,
			meta:   in.Meta,
		}
	default:
		return fmt.Errorf("xgxrail: unknown context kind %q", in.Kind)
	}
	return nil
}

// composableJSON is the wire shape of a ComposableError. Stack order on the
// wire is insertion order, matching the in-memory representation.
type composableJSON struct {
	Core    string         `json:"core"`
	Stack   []ErrorContext `json:"stack,omitempty"`
	Code    uint32         `json:"code,omitempty"`
	HasCode bool           `json:"has_code,omitempty"`
}

// MarshalJSON encodes core display, stack (insertion order), and code.
func (e *ComposableError) MarshalJSON() ([]byte, error) {
	return json.Marshal(composableJSON{
		Core:    e.coreDisplay(),
		Stack:   e.stack,
		Code:    e.code,
		HasCode: e.hasCode,
	})
}

// UnmarshalJSON decodes the wire shape; the core becomes errors.New of its
// display form.
func (e *ComposableError) UnmarshalJSON(data []byte) error {
	var in composableJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	*e = ComposableError{
		core:    errors.New(in.Core),
		stack:   in.Stack,
		code:    in.Code,
		hasCode: in.HasCode,
	}
	return nil
}

// validationJSON is the wire shape of a Validation. Errors serialize as
// display strings, in accumulation order.
type validationJSON[T any] struct {
	Valid  bool     `json:"valid"`
	Value  T        `json:"value,omitempty"`
	Errors []string `json:"errors,omitempty"`
}

// MarshalJSON encodes the value side or the error list.
func (v Validation[T]) MarshalJSON() ([]byte, error) {
	out := validationJSON[T]{Valid: v.IsValid()}
	if v.IsValid() {
		out.Value = v.value
	} else {
		out.Errors = make([]string, len(v.errs))
		for i, e := range v.errs {
			out.Errors[i] = e.Error()
		}
	}
	return json.Marshal(out)
}

// UnmarshalJSON decodes the wire shape; errors are rebuilt with errors.New.
// An invalid payload with an empty error list violates the non-empty
// contract and is rejected.
func (v *Validation[T]) UnmarshalJSON(data []byte) error {
	var in validationJSON[T]
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	if in.Valid {
		*v = Valid(in.Value)
		return nil
	}
	if len(in.Errors) == 0 {
		return errors.New("xgxrail: invalid Validation payload with no errors")
	}
	errs := make([]error, len(in.Errors))
	for i, s := range in.Errors {
		errs[i] = errors.New(s)
	}
	*v = Validation[T]{errs: errs}
	return nil
}
