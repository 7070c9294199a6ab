// context.go — immutable context annotations for xgx-rail core.
//
// Design:
//   • ErrorContext is a closed tagged variant: Message, Location, Group.
//   • Values are immutable once built; builders allocate fresh slices.
//   • Display form is deterministic: tag/metadata order is insertion order.
//
// Rationale:
//   • A slice-backed Group preserves insertion order; Go map iteration order
//     is unspecified and would break the display and serialization contracts.
//   • Conversion from arbitrary values (asErrorContext) lives here so every
//     call site that accepts "anything context-like" shares one rule set.
package xgxrail

import (
	"fmt"
	"strings"
)

// ContextKind discriminates the three annotation shapes.
type ContextKind uint8

const (
	// KindMessage is a free-form human-readable string.
	KindMessage ContextKind = iota
	// KindLocation is a source coordinate, displayed as "at <file>:<line>".
	KindLocation
	// KindGroup is a structured bundle of optional message, ordered tags,
	// ordered key/value metadata, and an optional source location.
	KindGroup
)

// MetaPair is a single ordered key/value entry inside a Group context.
type MetaPair struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// ErrorContext is a single immutable annotation attached to an error.
// Construct via Message, Location, Tag, Metadata, or Group().…().Build().
type ErrorContext struct {
	kind ContextKind

	// Message text (KindMessage) or the optional Group message.
	text string

	// Source coordinate (KindLocation, or an optional Group location).
	file   string
	line   int
	hasLoc bool

	// Group payload. Insertion order is preserved.
	tags []string
	meta []MetaPair
}

// Message builds a free-form message context.
func Message(text string) ErrorContext {
	return ErrorContext{kind: KindMessage, text: text}
}

// Messagef builds a message context from a format string. The formatting
// happens eagerly; use Contextf for a lazy variant.
func Messagef(format string, args ...any) ErrorContext {
	return Message(fmt.Sprintf(format, args...))
}

// Location builds a source-coordinate context displayed as "at <file>:<line>".
func Location(file string, line int) ErrorContext {
	return ErrorContext{kind: KindLocation, file: file, line: line, hasLoc: true}
}

// Tag builds a Group context carrying exactly one tag.
func Tag(label string) ErrorContext {
	return ErrorContext{kind: KindGroup, tags: []string{label}}
}

// Metadata builds a Group context carrying exactly one key/value pair.
func Metadata(key, value string) ErrorContext {
	return ErrorContext{kind: KindGroup, meta: []MetaPair{{Key: key, Value: value}}}
}

// Kind returns the variant discriminator.
func (c ErrorContext) Kind() ContextKind { return c.kind }

// Text returns the message text (empty for Location and message-less Groups).
func (c ErrorContext) Text() string { return c.text }

// SourceLocation returns the file and line when the context carries one.
func (c ErrorContext) SourceLocation() (file string, line int, ok bool) {
	return c.file, c.line, c.hasLoc
}

// Tags returns a defensive copy of the group's tags in insertion order.
func (c ErrorContext) Tags() []string {
	if len(c.tags) == 0 {
		return nil
	}
	out := make([]string, len(c.tags))
	copy(out, c.tags)
	return out
}

// Meta returns a defensive copy of the group's metadata in insertion order.
func (c ErrorContext) Meta() []MetaPair {
	if len(c.meta) == 0 {
		return nil
	}
	out := make([]MetaPair, len(c.meta))
	copy(out, c.meta)
	return out
}

// String renders the canonical displayed form.
//
// Group fragments appear in a fixed order, each emitted only when present,
// separated by single spaces:
//
//	[tag1][tag2] at file:line: message (k1=v1, k2=v2)
//
// An empty Group renders as the empty string.
func (c ErrorContext) String() string {
	switch c.kind {
	case KindMessage:
		return c.text
	case KindLocation:
		return "at " + c.file + ":" + itoa(c.line)
	case KindGroup:
		return c.groupString()
	default:
		return ""
	}
}

func (c ErrorContext) groupString() string {
	var sb strings.Builder
	if len(c.tags) > 0 {
		for _, t := range c.tags {
			sb.WriteByte('[')
			sb.WriteString(t)
			sb.WriteByte(']')
		}
	}
	if c.hasLoc {
		if sb.Len() > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString("at ")
		sb.WriteString(c.file)
		sb.WriteByte(':')
		sb.WriteString(itoa(c.line))
		if c.text != "" {
			sb.WriteString(": ")
			sb.WriteString(c.text)
		}
	} else if c.text != "" {
		if sb.Len() > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(c.text)
	}
	if len(c.meta) > 0 {
		if sb.Len() > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteByte('(')
		for i, kv := range c.meta {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(kv.Key)
			sb.WriteByte('=')
			sb.WriteString(kv.Value)
		}
		sb.WriteByte(')')
	}
	return sb.String()
}

// Equal reports structural equality, preserving tag and metadata order.
func (c ErrorContext) Equal(other ErrorContext) bool {
	if c.kind != other.kind || c.text != other.text {
		return false
	}
	if c.hasLoc != other.hasLoc || c.file != other.file || c.line != other.line {
		return false
	}
	if len(c.tags) != len(other.tags) || len(c.meta) != len(other.meta) {
		return false
	}
	for i, t := range c.tags {
		if other.tags[i] != t {
			return false
		}
	}
	for i, kv := range c.meta {
		if other.meta[i] != kv {
			return false
		}
	}
	return true
}

// isEmpty reports whether a Group carries no payload at all.
func (c ErrorContext) isEmpty() bool {
	return c.kind == KindGroup && c.text == "" && !c.hasLoc &&
		len(c.tags) == 0 && len(c.meta) == 0
}

// -----------------------------------------------------------------------------
// GroupBuilder
// -----------------------------------------------------------------------------

// GroupBuilder assembles a Group context piece by piece. Pieces are recorded
// in call order; Build produces an immutable ErrorContext.
type GroupBuilder struct {
	ctx ErrorContext
}

// Group starts a new Group builder.
func Group() *GroupBuilder {
	return &GroupBuilder{ctx: ErrorContext{kind: KindGroup}}
}

// Message sets the group's message. Last call wins.
func (b *GroupBuilder) Message(text string) *GroupBuilder {
	b.ctx.text = text
	return b
}

// Messagef sets the group's message from a format string.
func (b *GroupBuilder) Messagef(format string, args ...any) *GroupBuilder {
	return b.Message(fmt.Sprintf(format, args...))
}

// Tag appends a tag.
func (b *GroupBuilder) Tag(label string) *GroupBuilder {
	b.ctx.tags = append(b.ctx.tags, label)
	return b
}

// Metadata appends a key/value pair.
func (b *GroupBuilder) Metadata(key, value string) *GroupBuilder {
	b.ctx.meta = append(b.ctx.meta, MetaPair{Key: key, Value: value})
	return b
}

// Location sets the group's source coordinate. Last call wins.
func (b *GroupBuilder) Location(file string, line int) *GroupBuilder {
	b.ctx.file, b.ctx.line, b.ctx.hasLoc = file, line, true
	return b
}

// Build finalizes the group. The builder must not be reused afterwards.
func (b *GroupBuilder) Build() ErrorContext {
	out := b.ctx
	// Freeze: detach the builder's slices so later builder calls cannot
	// alias the published value.
	if len(out.tags) > 0 {
		tags := make([]string, len(out.tags))
		copy(tags, out.tags)
		out.tags = tags
	}
	if len(out.meta) > 0 {
		meta := make([]MetaPair, len(out.meta))
		copy(meta, out.meta)
		out.meta = meta
	}
	return out
}

// -----------------------------------------------------------------------------
// Conversion
// -----------------------------------------------------------------------------

// asErrorContext projects an arbitrary value into an ErrorContext.
//
// Rules (normative):
//   • string            → Message
//   • ErrorContext      → itself
//   • *GroupBuilder     → Build()
//   • *LazyContext      → evaluated (single-shot)
//   • func() ErrorContext → invoked
//   • func() string     → invoked, wrapped as Message
//   • error             → Message(err.Error())
//   • fmt.Stringer      → Message(v.String())
//   • anything else     → Message(fmt.Sprint(v))
func asErrorContext(v any) ErrorContext {
	switch x := v.(type) {
	case string:
		return Message(x)
	case ErrorContext:
		return x
	case *GroupBuilder:
		return x.Build()
	case *LazyContext:
		return x.Eval()
	case func() ErrorContext:
		return x()
	case func() string:
		return Message(x())
	case error:
		return Message(x.Error())
	case fmt.Stringer:
		return Message(x.String())
	default:
		return Message(fmt.Sprint(v))
	}
}

// itoa is a tiny allocation-light int formatter for line numbers.
func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}
