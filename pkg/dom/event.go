package dom

// Event is a native event as seen by listeners: a type name plus a flat
// payload. The stop/prevent latches record what handlers asked for so the
// host (or a test) can observe them after dispatch.
type Event struct {
	Type string
	Data map[string]any

	target *Node

	stopped   bool
	prevented bool
}

// NewEvent creates an event with the given type and payload.
func NewEvent(typ string, data map[string]any) *Event {
	return &Event{Type: typ, Data: data}
}

// Target returns the node the event was fired on.
func (e *Event) Target() *Node {
	return e.target
}

// StopPropagation stops the event from bubbling to ancestor listeners.
func (e *Event) StopPropagation() {
	e.stopped = true
}

// PreventDefault marks the host's default action as suppressed.
func (e *Event) PreventDefault() {
	e.prevented = true
}

// PropagationStopped reports whether StopPropagation was called.
func (e *Event) PropagationStopped() bool {
	return e.stopped
}

// DefaultPrevented reports whether PreventDefault was called.
func (e *Event) DefaultPrevented() bool {
	return e.prevented
}

// Fire dispatches the event on n and bubbles it up through ancestors,
// invoking each node's listener for the event type until the root is
// reached or a handler stops propagation.
func (n *Node) Fire(ev *Event) {
	ev.target = n
	for cur := n; cur != nil; cur = cur.parent {
		if l := cur.listeners[ev.Type]; l != nil {
			l.Fn(ev)
		}
		if ev.stopped {
			return
		}
	}
}
