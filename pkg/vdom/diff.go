package vdom

// Diff compares two virtual trees and returns the ordered patch list
// that transforms a rendering of old into a rendering of new. Patch
// indices are preorder positions over the old tree, strictly
// nondecreasing through the list; the live tree is never touched here.
func Diff(old, new *VNode) []Patch {
	var patches []Patch
	diffHelp(old, new, &patches, 0)
	return patches
}

func diffHelp(x, y *VNode, patches *[]Patch, index int) {
	// Identical values describe identical subtrees.
	if x == y {
		return
	}

	// Different variants are never diffed structurally; a full subtree
	// replacement is always correct and keeps the work proportional to
	// the changed region.
	if x.Kind != y.Kind {
		pushPatch(patches, Patch{Kind: PatchRedraw, Index: index, Node: y})
		return
	}

	switch x.Kind {
	case KindText:
		if x.Text != y.Text {
			pushPatch(patches, Patch{Kind: PatchText, Index: index, Text: y.Text})
		}

	case KindThunk:
		diffThunk(x, y, patches, index)

	case KindTagger:
		diffTagger(x, y, patches, index)

	case KindElement:
		if x.Tag != y.Tag || x.Namespace != y.Namespace {
			pushPatch(patches, Patch{Kind: PatchRedraw, Index: index, Node: y})
			return
		}
		if delta := diffFacts(x.Facts, y.Facts); delta != nil {
			pushPatch(patches, Patch{Kind: PatchFacts, Index: index, Facts: delta})
		}
		diffKids(x, y, patches, index)

	case KindCustom:
		if !sameRef(x.Impl, y.Impl) {
			pushPatch(patches, Patch{Kind: PatchRedraw, Index: index, Node: y})
			return
		}
		if delta := diffFacts(x.Facts, y.Facts); delta != nil {
			pushPatch(patches, Patch{Kind: PatchFacts, Index: index, Facts: delta})
		}
		if payload, ok := y.Impl.Diff(x.Model, y.Model); ok {
			pushPatch(patches, Patch{Kind: PatchCustom, Index: index, Data: payload, Impl: y.Impl})
		}
	}
}

// diffThunk skips the interior entirely when the argument lists are
// pairwise identical, carrying the cache across. Otherwise the new
// interior is forced and diffed against the old one under a local
// numbering, so an unchanged thunk later costs nothing to walk.
func diffThunk(x, y *VNode, patches *[]Patch, index int) {
	same := len(x.Args) == len(y.Args)
	if same {
		for i := range x.Args {
			if !sameRef(x.Args[i], y.Args[i]) {
				same = false
				break
			}
		}
	}
	if same {
		y.cached = x.cached
		return
	}

	oldInner := x.force()
	newInner := y.force()

	var sub []Patch
	diffHelp(oldInner, newInner, &sub, 0)
	if len(sub) > 0 {
		pushPatch(patches, Patch{Kind: PatchThunk, Index: index, Sub: sub})
	}
}

func diffTagger(x, y *VNode, patches *[]Patch, index int) {
	xTaggers, xInner := x.flatten()
	yTaggers, yInner := y.flatten()

	// A change in chain depth is a structural change.
	if len(xTaggers) != len(yTaggers) {
		pushPatch(patches, Patch{Kind: PatchRedraw, Index: index, Node: y})
		return
	}

	for i := range xTaggers {
		if !sameTagger(xTaggers[i], yTaggers[i]) {
			pushPatch(patches, Patch{Kind: PatchTagger, Index: index, Taggers: yTaggers})
			break
		}
	}

	diffHelp(xInner, yInner, patches, index+1)
}

// diffKids matches children positionally: length differences become one
// tail-based remove or append patch, and the common prefix is diffed
// pairwise. There is no keyed reconciliation; reordering a list shows up
// as a cascade of per-child patches rather than a move.
func diffKids(xParent, yParent *VNode, patches *[]Patch, index int) {
	xKids := xParent.Children
	yKids := yParent.Children
	xLen := len(xKids)
	yLen := len(yKids)

	if xLen > yLen {
		pushPatch(patches, Patch{Kind: PatchRemoveLast, Index: index, Remove: xLen - yLen})
	} else if xLen < yLen {
		pushPatch(patches, Patch{Kind: PatchAppend, Index: index, Children: yKids[xLen:]})
	}

	minLen := xLen
	if yLen < minLen {
		minLen = yLen
	}
	for i := 0; i < minLen; i++ {
		index++
		xKid := xKids[i]
		diffHelp(xKid, yKids[i], patches, index)
		index += xKid.descendants
	}
}
