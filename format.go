// format.go — display configuration and fmt.Formatter for xgx-rail core.
//
// Behavior:
//
//   %s, %v   → concise single-line chain (Error()).
//   %+v      → cascaded multi-line form:
//                Error: <core display> (code: <code>)
//                Context:
//                  - <most recent ctx>
//                  - <oldest ctx>
//   %q       → quoted concise chain.
//
// The builder exposes separator override, context-order reversal, code
// toggling, and the named variants: cascaded, pretty (tree), compact, no-code.
// Rendering writes directly into one strings.Builder; no intermediate slices
// of fragments are built.
package xgxrail

import (
	"fmt"
	"io"
	"strings"
)

type formatStyle uint8

const (
	styleChain formatStyle = iota
	styleCascaded
	stylePretty
	styleCompact
)

// formatConfig is the immutable rendering recipe behind FormatBuilder.
type formatConfig struct {
	style       formatStyle
	separator   string
	oldestFirst bool
	hideCode    bool
}

var defaultFormat = formatConfig{style: styleChain, separator: " -> "}

// FormatBuilder configures a display rendering for one ComposableError.
// Obtain via (*ComposableError).Fmt(); terminate with String().
type FormatBuilder struct {
	err *ComposableError
	cfg formatConfig
}

// Fmt starts a display builder with the default configuration.
func (e *ComposableError) Fmt() *FormatBuilder {
	return &FormatBuilder{err: e, cfg: defaultFormat}
}

// Separator overrides the chain separator (default " -> ").
func (b *FormatBuilder) Separator(sep string) *FormatBuilder {
	b.cfg.separator = sep
	return b
}

// OldestFirst reverses context order: oldest context first instead of the
// default most-recent-first.
func (b *FormatBuilder) OldestFirst() *FormatBuilder {
	b.cfg.oldestFirst = true
	return b
}

// NoCode suppresses the "(code: N)" suffix even when a code is set.
func (b *FormatBuilder) NoCode() *FormatBuilder {
	b.cfg.hideCode = true
	return b
}

// Cascaded selects the multi-line "Error: … / Context:" variant.
func (b *FormatBuilder) Cascaded() *FormatBuilder {
	b.cfg.style = styleCascaded
	return b
}

// Pretty selects the tree variant drawn with ┌ ├─ └─ connectors.
func (b *FormatBuilder) Pretty() *FormatBuilder {
	b.cfg.style = stylePretty
	return b
}

// Compact selects a single-line pipe-separated variant.
func (b *FormatBuilder) Compact() *FormatBuilder {
	b.cfg.style = styleCompact
	b.cfg.separator = " | "
	return b
}

// String renders with the accumulated configuration.
func (b *FormatBuilder) String() string {
	return b.cfg.render(b.err)
}

// render walks the stack exactly once, writing into a single builder.
func (c formatConfig) render(e *ComposableError) string {
	var sb strings.Builder
	switch c.style {
	case styleCascaded:
		c.renderCascaded(&sb, e)
	case stylePretty:
		c.renderPretty(&sb, e)
	default:
		c.renderChain(&sb, e)
	}
	return sb.String()
}

func (c formatConfig) renderChain(sb *strings.Builder, e *ComposableError) {
	c.eachContext(e, func(ctx ErrorContext) {
		sb.WriteString(ctx.String())
		sb.WriteString(c.separator)
	})
	sb.WriteString(e.coreDisplay())
	c.writeCodeSuffix(sb, e)
}

func (c formatConfig) renderCascaded(sb *strings.Builder, e *ComposableError) {
	sb.WriteString("Error: ")
	sb.WriteString(e.coreDisplay())
	c.writeCodeSuffix(sb, e)
	sb.WriteByte('\n')
	if len(e.stack) == 0 {
		return
	}
	sb.WriteString("Context:\n")
	c.eachContext(e, func(ctx ErrorContext) {
		sb.WriteString("  - ")
		sb.WriteString(ctx.String())
		sb.WriteByte('\n')
	})
}

func (c formatConfig) renderPretty(sb *strings.Builder, e *ComposableError) {
	sb.WriteString("┌ ")
	sb.WriteString(e.coreDisplay())
	c.writeCodeSuffix(sb, e)
	n := len(e.stack)
	i := 0
	c.eachContext(e, func(ctx ErrorContext) {
		sb.WriteByte('\n')
		if i == n-1 {
			sb.WriteString("└─ ")
		} else {
			sb.WriteString("├─ ")
		}
		sb.WriteString(ctx.String())
		i++
	})
}

// eachContext visits the stack in the configured display order.
func (c formatConfig) eachContext(e *ComposableError, visit func(ErrorContext)) {
	if c.oldestFirst {
		for _, ctx := range e.stack {
			visit(ctx)
		}
		return
	}
	for i := len(e.stack) - 1; i >= 0; i-- {
		visit(e.stack[i])
	}
}

func (c formatConfig) writeCodeSuffix(sb *strings.Builder, e *ComposableError) {
	if c.hideCode || !e.hasCode {
		return
	}
	sb.WriteString(" (code: ")
	sb.WriteString(itoa(int(e.code)))
	sb.WriteByte(')')
}

// Format implements fmt.Formatter.
//   %v, %s → concise chain; %+v → cascaded multi-line; %q → quoted chain.
func (e *ComposableError) Format(s fmt.State, verb rune) {
	switch verb {
	case 'v':
		if s.Flag('+') {
			_, _ = io.WriteString(s, e.Fmt().Cascaded().String())
			return
		}
		_, _ = io.WriteString(s, e.Error())
	case 's':
		_, _ = io.WriteString(s, e.Error())
	case 'q':
		_, _ = fmt.Fprintf(s, "%q", e.Error())
	default:
		_, _ = io.WriteString(s, e.Error())
	}
}
