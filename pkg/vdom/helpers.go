package vdom

import (
	"fmt"

	"github.com/alder-ui/alder/pkg/dom"
)

// Text creates a text leaf.
func Text(content string) *VNode {
	return &VNode{Kind: KindText, Text: content}
}

// Textf creates a formatted text leaf.
func Textf(format string, args ...any) *VNode {
	return Text(fmt.Sprintf(format, args...))
}

// Element creates an element node. Facts are organized into categories in
// one pass; the descendant count is computed here and never recomputed.
func Element(tag string, facts []Fact, children ...*VNode) *VNode {
	fs, namespace := OrganizeFacts(facts)

	descendants := len(children)
	for _, child := range children {
		descendants += child.descendants
	}

	return &VNode{
		Kind:        KindElement,
		Tag:         tag,
		Namespace:   namespace,
		Facts:       fs,
		Children:    children,
		descendants: descendants,
	}
}

// Map wraps a subtree so messages produced inside it are transformed by
// tagger before leaving it. Nested Maps collapse into one routing
// boundary at render time.
func Map(tagger Tagger, inner *VNode) *VNode {
	return &VNode{
		Kind:        KindTagger,
		Tagger:      tagger,
		Inner:       inner,
		descendants: 1 + inner.descendants,
	}
}

// Lazy defers building a subtree until it is rendered or diffed. The
// compute function is skipped on subsequent diffs while args stay
// identical (by reference, not by deep equality); the compute function
// itself takes part in that comparison, so two Lazy nodes built from
// different functions never share a cache.
//
// Lazy nodes are transparent to index bookkeeping: their interior gets a
// local numbering of its own.
func Lazy(compute func() *VNode, args ...any) *VNode {
	keys := make([]any, 0, len(args)+1)
	keys = append(keys, compute)
	keys = append(keys, args...)
	return &VNode{
		Kind:    KindThunk,
		Compute: compute,
		Args:    keys,
	}
}

// Custom creates a node whose rendering and diffing is delegated to impl.
// The engine only compares two custom nodes when they carry the identical
// impl; otherwise the subtree is redrawn.
func Custom(facts []Fact, model any, impl CustomImpl) *VNode {
	fs, namespace := OrganizeFacts(facts)
	return &VNode{
		Kind:      KindCustom,
		Namespace: namespace,
		Facts:     fs,
		Model:     model,
		Impl:      impl,
	}
}

// Attr declares a host attribute fact.
func Attr(key, value string) Fact {
	return Fact{Kind: FactAttr, Key: key, Value: value}
}

// AttrNS declares a namespaced host attribute fact.
func AttrNS(namespace, key, value string) Fact {
	return Fact{Kind: FactAttrNS, Key: key, Namespace: namespace, Value: value}
}

// Prop declares a direct property fact.
func Prop(key string, value any) Fact {
	return Fact{Kind: FactProp, Key: key, Value: value}
}

// Style declares an inline style fact.
func Style(key, value string) Fact {
	return Fact{Kind: FactStyle, Key: key, Value: value}
}

// On declares an event listener fact for the named event.
func On(name string, handler Handler) Fact {
	return Fact{Kind: FactEvent, Key: name, Value: handler}
}

// OnMsg declares a listener that always produces msg, ignoring the
// native event payload. Convenient for clicks and other fire-and-forget
// interactions.
func OnMsg(name string, msg Msg) Fact {
	return On(name, Handler{
		Decode: func(*dom.Event) (Msg, error) { return msg, nil },
		Key:    msg,
	})
}

// Namespace declares the element's namespace (e.g. the SVG namespace).
// It is extracted during fact organization rather than stored as a fact.
func Namespace(uri string) Fact {
	return Prop(namespaceKey, uri)
}
