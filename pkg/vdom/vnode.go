package vdom

import (
	"reflect"

	"github.com/alder-ui/alder/pkg/dom"
)

// LiveNode is a node of the mutable presentation tree patches apply to.
type LiveNode = dom.Node

// Msg is an application message produced by event handlers. The engine
// treats messages as opaque values; taggers transform them on the way up.
type Msg = any

// Tagger transforms a message produced inside a wrapped subtree before it
// leaves that subtree.
type Tagger func(Msg) Msg

// VKind is the node type discriminator.
type VKind uint8

const (
	KindText   VKind = iota // Plain text leaf
	KindElement             // <div>, <button>, etc.
	KindTagger              // Message-mapping wrapper
	KindThunk               // Deferred subtree with identity-keyed cache
	KindCustom              // Delegated rendering/diffing
)

// String returns the string representation of the VKind.
func (k VKind) String() string {
	switch k {
	case KindText:
		return "Text"
	case KindElement:
		return "Element"
	case KindTagger:
		return "Tagger"
	case KindThunk:
		return "Thunk"
	case KindCustom:
		return "Custom"
	default:
		return "Unknown"
	}
}

// VNode is one immutable virtual tree node. Which fields are meaningful
// depends on Kind; constructors keep the bookkeeping consistent, so build
// nodes through them rather than with struct literals.
//
// A VNode is never mutated after it has been diffed. The one exception is
// the thunk cache cell, which memoizes the computed subtree.
type VNode struct {
	Kind VKind

	// KindText
	Text string

	// KindElement
	Tag       string
	Namespace string
	Facts     *FactSet
	Children  []*VNode

	// KindTagger
	Tagger Tagger
	Inner  *VNode

	// KindThunk
	Compute func() *VNode
	Args    []any
	cached  *VNode

	// KindCustom
	Model any
	Impl  CustomImpl

	// descendants is the number of VNodes in this subtree excluding the
	// node itself. The indexer's skip arithmetic depends on it being
	// exact, so it is computed once at construction and never touched.
	descendants int
}

// CustomImpl renders and patches node kinds the engine does not
// understand structurally. Two custom nodes are only comparable when they
// share the same CustomImpl; otherwise the differ falls back to a redraw.
type CustomImpl interface {
	// Render turns the node's model into a live subtree.
	Render(model any) *LiveNode

	// Diff compares two models and returns an opaque patch payload, or
	// ok=false when nothing changed.
	Diff(oldModel, newModel any) (payload any, ok bool)

	// Apply applies a payload produced by Diff and returns the (possibly
	// replaced) live node.
	Apply(node *LiveNode, payload any) *LiveNode
}

// Descendants returns the number of VNodes in the subtree excluding the
// node itself.
func (v *VNode) Descendants() int {
	return v.descendants
}

// force computes and caches a thunk's subtree. Calling it on an already
// forced thunk reuses the cache.
func (v *VNode) force() *VNode {
	if v.cached == nil {
		v.cached = v.Compute()
	}
	return v.cached
}

// Forced returns a thunk's cached subtree without computing it, or nil.
func (v *VNode) Forced() *VNode {
	return v.cached
}

// flatten collapses a chain of directly nested taggers into the ordered
// mapper list (outermost first) and the first non-tagger node below it.
func (v *VNode) flatten() ([]Tagger, *VNode) {
	taggers := []Tagger{v.Tagger}
	inner := v.Inner
	for inner.Kind == KindTagger {
		taggers = append(taggers, inner.Tagger)
		inner = inner.Inner
	}
	return taggers, inner
}

// sameRef reports whether two opaque values are identical, in the sense
// reference equality gives a host language: pointers, maps, funcs, and
// channels compare by address, slices by address and length, and plain
// comparable values by ==. Deep equality is deliberately not used; skip
// decisions in the differ rely on identity being cheap.
func sameRef(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	va := reflect.ValueOf(a)
	vb := reflect.ValueOf(b)
	if va.Kind() != vb.Kind() {
		return false
	}
	switch va.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Chan, reflect.Func, reflect.UnsafePointer:
		return va.Pointer() == vb.Pointer()
	case reflect.Slice:
		return va.Pointer() == vb.Pointer() && va.Len() == vb.Len()
	}
	if va.Type() != vb.Type() || !va.Type().Comparable() {
		return false
	}
	return a == b
}

// sameTagger reports whether two taggers are the same function.
func sameTagger(a, b Tagger) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return reflect.ValueOf(a).Pointer() == reflect.ValueOf(b).Pointer()
}
