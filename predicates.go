// predicates.go — classification and inspection predicates over plain errors.
//
// These helpers operate on arbitrary error values and locate the nearest
// ComposableError via errors.As, so they work through fmt.Errorf %w wrapping,
// Join trees, and marks alike.
package xgxrail

import "errors"

// AsComposable finds the nearest ComposableError in err's chain.
func AsComposable(err error) (*ComposableError, bool) {
	var ce *ComposableError
	if errors.As(err, &ce) {
		return ce, true
	}
	return nil, false
}

// CodeOf returns the numeric code of the nearest ComposableError carrying
// one. Walks past code-less wrappers so an inner coded error remains visible.
func CodeOf(err error) (uint32, bool) {
	for err != nil {
		var ce *ComposableError
		if !errors.As(err, &ce) {
			return 0, false
		}
		if code, ok := ce.Code(); ok {
			return code, true
		}
		err = ce.Unwrap()
	}
	return 0, false
}

// HasCode reports whether any ComposableError in the chain carries code.
func HasCode(err error, code uint32) bool {
	found := false
	Walk(err, func(e error) bool {
		if ce, ok := e.(*ComposableError); ok {
			if c, has := ce.Code(); has && c == code {
				found = true
				return false
			}
		}
		return true
	})
	return found
}

// HasTag reports whether any Group context anywhere in the chain carries the
// given tag.
func HasTag(err error, tag string) bool {
	found := false
	Walk(err, func(e error) bool {
		ce, ok := e.(*ComposableError)
		if !ok {
			return true
		}
		for _, ctx := range ce.stack {
			for _, t := range ctx.tags {
				if t == tag {
					found = true
					return false
				}
			}
		}
		return true
	})
	return found
}

// MetadataOf returns the value for a metadata key, scanning contexts most
// recent first (and pairs latest first within a group), so newer annotations
// shadow older ones. Walks past wrappers whose own stack lacks the key, so
// an inner annotation stays visible after re-wrapping.
func MetadataOf(err error, key string) (string, bool) {
	for err != nil {
		var ce *ComposableError
		if !errors.As(err, &ce) {
			return "", false
		}
		for ctx := range ce.ContextIter() {
			for i := len(ctx.meta) - 1; i >= 0; i-- {
				if ctx.meta[i].Key == key {
					return ctx.meta[i].Value, true
				}
			}
		}
		err = ce.Unwrap()
	}
	return "", false
}
