package vdom

import (
	"reflect"

	"github.com/alder-ui/alder/pkg/dom"
)

// Decoder turns a native event into an application message. A non-nil
// error means the handler does not care about this particular event; it
// is dropped without dispatching anything.
type Decoder func(*dom.Event) (Msg, error)

// Handler describes one event listener fact: how to decode the native
// event, and what to ask the host to do with it.
//
// Key disambiguates handlers whose decoders are closures sharing one
// function body: function identity in Go is a code pointer, so two
// closures over different captured state look identical to the differ.
// A handler whose decoder captures changing state must set Key to a
// value identifying that state.
type Handler struct {
	Decode          Decoder
	StopPropagation bool
	PreventDefault  bool
	Key             any
}

// equal compares two handlers by decoder identity, key identity, and
// option values. Decoders are functions; code-pointer identity is the
// closest Go gets to the reference comparison the skip decision needs.
func (h Handler) equal(other Handler) bool {
	if h.StopPropagation != other.StopPropagation || h.PreventDefault != other.PreventDefault {
		return false
	}
	if !sameRef(h.Key, other.Key) {
		return false
	}
	if h.Decode == nil || other.Decode == nil {
		return h.Decode == nil && other.Decode == nil
	}
	return reflect.ValueOf(h.Decode).Pointer() == reflect.ValueOf(other.Decode).Pointer()
}

// EventNode is one link of the message-routing chain. Every tagger
// boundary in the rendered tree owns one; the root of the mount owns the
// sink. Messages decoded inside a subtree walk the chain from that
// subtree's node to the root, picking up each link's mappers on the way.
type EventNode struct {
	// Taggers holds the collapsed mapper list for this boundary,
	// outermost mapper first. Application order is innermost first, so
	// dispatch walks the list backwards. The patcher swaps this slice in
	// place when only the mappers changed.
	Taggers []Tagger

	// Parent is the enclosing boundary, nil at the root.
	Parent *EventNode

	// Sink receives the fully mapped message. Set only on the root node.
	Sink func(Msg)
}

// NewRootEventNode creates the chain root that delivers messages to sink.
func NewRootEventNode(sink func(Msg)) *EventNode {
	return &EventNode{Sink: sink}
}

// Dispatch maps msg through the chain and delivers it to the root sink.
func (e *EventNode) Dispatch(msg Msg) {
	for node := e; node != nil; node = node.Parent {
		for i := len(node.Taggers) - 1; i >= 0; i-- {
			msg = node.Taggers[i](msg)
		}
		if node.Sink != nil {
			node.Sink(msg)
			return
		}
	}
}

// listenerInfo is the mutable cell a listener closure reads on every
// firing. Updating a handler swaps the cell contents; the native
// listener itself is attached once per (node, event) pair and never
// detached on update.
type listenerInfo struct {
	handler Handler
}

// makeCallback builds the stable native listener for one (node, event)
// pair. eventNode is fixed at attach time; tagger changes reach the
// callback because the patcher mutates the EventNode in place.
func makeCallback(eventNode *EventNode, info *listenerInfo) func(*dom.Event) {
	return func(ev *dom.Event) {
		h := info.handler
		if h.Decode == nil {
			return
		}
		msg, err := h.Decode(ev)
		if err != nil {
			// Decode failure is a silent drop, not an error.
			return
		}
		if h.StopPropagation {
			ev.StopPropagation()
		}
		if h.PreventDefault {
			ev.PreventDefault()
		}
		eventNode.Dispatch(msg)
	}
}

// applyEvent installs, updates, or removes the listener for one event
// key. A nil handler removes.
func applyEvent(node *dom.Node, eventNode *EventNode, name string, h *Handler) {
	existing := node.Listener(name)

	if h == nil {
		if existing != nil {
			node.RemoveListener(name)
		}
		return
	}

	if existing != nil {
		if info, ok := existing.Info.(*listenerInfo); ok {
			info.handler = *h
			return
		}
		node.RemoveListener(name)
	}

	info := &listenerInfo{handler: *h}
	l := node.AddListener(name, makeCallback(eventNode, info))
	l.Info = info
}
