package vdom

import (
	"github.com/alder-ui/alder/pkg/dom"

	ierr "github.com/alder-ui/alder/internal/errors"
)

// CheckInvariants enables runtime validation of locator preconditions:
// patch indices must be nondecreasing and descendant counts consistent.
// Violations are programming errors in the reconciler; with checking on
// they panic instead of silently binding a patch to the wrong live node.
var CheckInvariants = false

// addDOMNodes walks the old virtual tree and the live tree in lockstep,
// binding every patch to the live node its preorder index describes.
// Descendant counts let whole untouched subtrees be skipped without
// descending into them, so location costs O(patched region), not O(tree).
func addDOMNodes(domNode *dom.Node, vNode *VNode, patches []Patch, eventNode *EventNode) {
	if len(patches) == 0 {
		return
	}
	if CheckInvariants {
		checkPatchOrder(patches)
	}
	addDOMNodesHelp(domNode, vNode, patches, 0, 0, vNode.descendants, eventNode)
}

func addDOMNodesHelp(domNode *dom.Node, vNode *VNode, patches []Patch, i, low, high int, eventNode *EventNode) int {
	if i >= len(patches) {
		return i
	}
	patch := &patches[i]
	index := patch.Index

	for index == low {
		if patch.Kind == PatchThunk {
			// A thunk's interior is numbered locally; run a nested walk
			// over its cached subtree for the nested patch list.
			addDOMNodes(domNode, vNode.cached, patch.Sub, eventNode)
		} else {
			patch.domNode = domNode
			patch.eventNode = eventNode
		}

		i++
		if i >= len(patches) {
			return i
		}
		patch = &patches[i]
		index = patch.Index
		if index > high {
			return i
		}
	}

	switch vNode.Kind {
	case KindTagger:
		// The flattened chain renders to a single live node; skip to the
		// first non-tagger interior and continue under its routing node.
		subNode := vNode.Inner
		for subNode.Kind == KindTagger {
			subNode = subNode.Inner
		}
		subEvents, _ := domNode.EventRef.(*EventNode)
		return addDOMNodesHelp(domNode, subNode, patches, i, low+1, high, subEvents)

	case KindElement:
		for j, vKid := range vNode.Children {
			low++
			newHigh := low + vKid.descendants
			if low <= index && index <= newHigh {
				kid := domNode.Child(j)
				if CheckInvariants && kid == nil {
					panic(ierr.Invariant(ierr.CategoryLocate,
						"live tree has no child %d under <%s>; descendant counts are inconsistent", j, vNode.Tag))
				}
				i = addDOMNodesHelp(kid, vKid, patches, i, low, newHigh, eventNode)
				if i >= len(patches) {
					return i
				}
				patch = &patches[i]
				index = patch.Index
				if index > high {
					return i
				}
			}
			low = newHigh
		}
	}
	return i
}

func checkPatchOrder(patches []Patch) {
	for i := 1; i < len(patches); i++ {
		if patches[i].Index < patches[i-1].Index {
			panic(ierr.Invariant(ierr.CategoryLocate,
				"patch indices decrease at position %d (%d after %d)",
				i, patches[i].Index, patches[i-1].Index))
		}
	}
}
