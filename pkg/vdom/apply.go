package vdom

import "github.com/alder-ui/alder/pkg/dom"

// ApplyPatches locates each patch against the live tree rendered from
// oldVNode, then executes the patches in order. It returns the live
// root, which is a different node when the root itself was redrawn.
func ApplyPatches(root *dom.Node, oldVNode *VNode, patches []Patch, eventNode *EventNode) *dom.Node {
	if len(patches) == 0 {
		return root
	}
	addDOMNodes(root, oldVNode, patches, eventNode)
	return applyPatchesHelp(root, patches)
}

func applyPatchesHelp(root *dom.Node, patches []Patch) *dom.Node {
	for i := range patches {
		patch := &patches[i]
		localRoot := applyPatch(patch.domNode, patch)
		if patch.domNode == root {
			root = localRoot
		}
		// Rebind to the resulting node so Target() points into the live
		// tree after a redraw swapped the original out.
		patch.domNode = localRoot
	}
	return root
}

func applyPatch(domNode *dom.Node, patch *Patch) *dom.Node {
	switch patch.Kind {
	case PatchRedraw:
		return applyPatchRedraw(domNode, patch)

	case PatchFacts:
		applyFacts(domNode, patch.eventNode, patch.Facts)
		return domNode

	case PatchText:
		domNode.SetText(patch.Text)
		return domNode

	case PatchThunk:
		// Nested list already located during the indexer's nested walk.
		return applyPatchesHelp(domNode, patch.Sub)

	case PatchTagger:
		if ref, ok := domNode.EventRef.(*EventNode); ok {
			ref.Taggers = patch.Taggers
		} else {
			domNode.EventRef = &EventNode{Taggers: patch.Taggers, Parent: patch.eventNode}
		}
		return domNode

	case PatchRemoveLast:
		domNode.RemoveLast(patch.Remove)
		return domNode

	case PatchAppend:
		for _, kid := range patch.Children {
			domNode.AppendChild(Render(kid, patch.eventNode))
		}
		return domNode

	case PatchCustom:
		return patch.Impl.Apply(domNode, patch.Data)

	default:
		return domNode
	}
}

// applyPatchRedraw renders the replacement fresh and swaps it into the
// live parent. The routing back-reference is carried over when the new
// subtree did not establish one of its own, so listeners attached higher
// up keep working.
func applyPatchRedraw(domNode *dom.Node, patch *Patch) *dom.Node {
	parent := domNode.Parent()
	newNode := Render(patch.Node, patch.eventNode)

	if newNode.EventRef == nil {
		newNode.EventRef = domNode.EventRef
	}
	if parent != nil && newNode != domNode {
		parent.ReplaceChild(newNode, domNode)
	}
	return newNode
}
