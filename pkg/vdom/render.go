package vdom

import "github.com/alder-ui/alder/pkg/dom"

// Render turns a virtual tree into a fresh live subtree. eventNode is
// the routing chain for messages decoded inside this subtree; pass the
// mount's root node when rendering a whole tree.
func Render(vnode *VNode, eventNode *EventNode) *dom.Node {
	switch vnode.Kind {
	case KindText:
		return dom.CreateText(vnode.Text)

	case KindThunk:
		return Render(vnode.force(), eventNode)

	case KindTagger:
		// Collapse the whole directly-nested chain into one routing
		// boundary: a single live node carries the combined mapper list.
		taggers, inner := vnode.flatten()
		sub := &EventNode{Taggers: taggers, Parent: eventNode}
		node := Render(inner, sub)
		node.EventRef = sub
		return node

	case KindCustom:
		node := vnode.Impl.Render(vnode.Model)
		applyFacts(node, eventNode, vnode.Facts.asDelta())
		return node

	default: // KindElement
		var node *dom.Node
		if vnode.Namespace != "" {
			node = dom.CreateElementNS(vnode.Namespace, vnode.Tag)
		} else {
			node = dom.CreateElement(vnode.Tag)
		}

		applyFacts(node, eventNode, vnode.Facts.asDelta())

		for _, child := range vnode.Children {
			node.AppendChild(Render(child, eventNode))
		}

		return node
	}
}

// applyFacts applies a fact delta to a live node. It serves both first
// render (full set viewed as additions) and incremental patching.
func applyFacts(node *dom.Node, eventNode *EventNode, delta *FactDelta) {
	if delta == nil {
		return
	}

	for key, value := range delta.Styles {
		node.SetStyle(key, value)
	}

	for name, handler := range delta.Events {
		applyEvent(node, eventNode, name, handler)
	}

	for key, value := range delta.Attrs {
		if value == nil {
			node.RemoveAttr(key)
		} else {
			node.SetAttr(key, *value)
		}
	}

	for key, value := range delta.AttrsNS {
		if value == nil {
			node.RemoveAttrNS(key)
		} else {
			node.SetAttrNS(key, value.Namespace, value.Value)
		}
	}

	for key, value := range delta.Props {
		// Re-writing an identical value is skipped so form controls keep
		// native state such as the cursor position.
		if alwaysReapplied(key) && sameRef(node.Prop(key), value) {
			continue
		}
		node.SetProp(key, value)
	}
}
