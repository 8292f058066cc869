package vdom

import "github.com/alder-ui/alder/pkg/dom"

// PatchKind is the type of patch operation.
type PatchKind uint8

const (
	PatchRedraw     PatchKind = iota // Replace the whole subtree
	PatchFacts                       // Apply a fact delta in place
	PatchText                        // Replace character data
	PatchThunk                       // Nested patch list, locally numbered
	PatchTagger                      // Swap the mapper list in place
	PatchRemoveLast                  // Drop trailing children
	PatchAppend                      // Render and append trailing children
	PatchCustom                      // Delegate to the node's CustomImpl
)

// String returns the string representation of the PatchKind.
func (k PatchKind) String() string {
	switch k {
	case PatchRedraw:
		return "Redraw"
	case PatchFacts:
		return "Facts"
	case PatchText:
		return "Text"
	case PatchThunk:
		return "Thunk"
	case PatchTagger:
		return "Tagger"
	case PatchRemoveLast:
		return "RemoveLast"
	case PatchAppend:
		return "Append"
	case PatchCustom:
		return "Custom"
	default:
		return "Unknown"
	}
}

// Patch is one edit to the live tree. Index addresses the target as a
// preorder position counted over the old virtual tree; the locator
// resolves it to a concrete live node before the patcher runs. Which
// payload field is meaningful depends on Kind.
type Patch struct {
	Kind  PatchKind
	Index int

	Node     *VNode     // Redraw: the replacement subtree
	Facts    *FactDelta // Facts
	Text     string     // Text
	Sub      []Patch    // Thunk: nested list numbered from the thunk's interior
	Taggers  []Tagger   // Tagger: the new mapper list
	Remove   int        // RemoveLast: how many trailing children go
	Children []*VNode   // Append: the trailing new children
	Data     any        // Custom: impl-defined payload
	Impl     CustomImpl // Custom: the impl that will apply Data

	domNode   *dom.Node
	eventNode *EventNode
}

// Target returns the live node the locator bound this patch to, or nil
// before location.
func (p *Patch) Target() *dom.Node {
	return p.domNode
}

func pushPatch(patches *[]Patch, p Patch) {
	*patches = append(*patches, p)
}
