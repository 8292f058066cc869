package server

import (
	"encoding/json"
	"fmt"

	"github.com/alder-ui/alder/pkg/protocol"
	"github.com/alder-ui/alder/pkg/vdom"
)

// wireOps translates one commit's applied patches into wire operations
// a thin client can replay. It runs after the patches have executed, so
// every Target() points at the resulting live node and structural ops
// can serialize the post-commit markup directly.
func wireOps(patches []vdom.Patch) []protocol.Op {
	return appendWireOps(nil, patches)
}

func appendWireOps(ops []protocol.Op, patches []vdom.Patch) []protocol.Op {
	for i := range patches {
		p := &patches[i]
		target := p.Target()
		if target == nil {
			continue
		}

		switch p.Kind {
		case vdom.PatchRedraw, vdom.PatchCustom:
			ops = append(ops, protocol.Op{
				Code:  protocol.OpReplace,
				Path:  target.Path(),
				Value: target.String(),
			})

		case vdom.PatchText:
			ops = append(ops, protocol.Op{
				Code:  protocol.OpText,
				Path:  target.Path(),
				Value: target.Text,
			})

		case vdom.PatchFacts:
			ops = appendFactOps(ops, target.Path(), p.Facts)

		case vdom.PatchThunk:
			ops = appendWireOps(ops, p.Sub)

		case vdom.PatchTagger:
			// Mapper swaps rewire server-side routing only; the client
			// tree is untouched.

		case vdom.PatchRemoveLast:
			ops = append(ops, protocol.Op{
				Code:  protocol.OpTruncate,
				Path:  target.Path(),
				Count: p.Remove,
			})

		case vdom.PatchAppend:
			n := len(p.Children)
			count := target.ChildCount()
			nodes := make([]string, 0, n)
			for j := count - n; j < count; j++ {
				nodes = append(nodes, target.Child(j).String())
			}
			ops = append(ops, protocol.Op{
				Code:  protocol.OpAppend,
				Path:  target.Path(),
				Nodes: nodes,
			})
		}
	}
	return ops
}

func appendFactOps(ops []protocol.Op, path []int, delta *vdom.FactDelta) []protocol.Op {
	if delta.Empty() {
		return ops
	}

	for key, value := range delta.Styles {
		if value == "" {
			ops = append(ops, protocol.Op{Code: protocol.OpRemoveStyle, Path: path, Key: key})
		} else {
			ops = append(ops, protocol.Op{Code: protocol.OpSetStyle, Path: path, Key: key, Value: value})
		}
	}

	for key, value := range delta.Attrs {
		if value == nil {
			ops = append(ops, protocol.Op{Code: protocol.OpRemoveAttr, Path: path, Key: key})
		} else {
			ops = append(ops, protocol.Op{Code: protocol.OpSetAttr, Path: path, Key: key, Value: *value})
		}
	}

	for key, value := range delta.AttrsNS {
		if value == nil {
			ops = append(ops, protocol.Op{Code: protocol.OpRemoveAttrNS, Path: path, Key: key})
		} else {
			ops = append(ops, protocol.Op{
				Code:      protocol.OpSetAttrNS,
				Path:      path,
				Key:       key,
				Namespace: value.Namespace,
				Value:     value.Value,
			})
		}
	}

	for key, value := range delta.Props {
		if value == nil {
			ops = append(ops, protocol.Op{Code: protocol.OpRemoveProp, Path: path, Key: key})
		} else {
			ops = append(ops, protocol.Op{Code: protocol.OpSetProp, Path: path, Key: key, Value: jsonValue(value)})
		}
	}

	for name, handler := range delta.Events {
		if handler == nil {
			ops = append(ops, protocol.Op{Code: protocol.OpUnlisten, Path: path, Key: name})
		} else {
			ops = append(ops, protocol.Op{Code: protocol.OpListen, Path: path, Key: name})
		}
	}

	return ops
}

// jsonValue encodes a property value for the wire. Values that cannot
// marshal degrade to their string form rather than dropping the op.
func jsonValue(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%q", fmt.Sprint(v))
	}
	return string(b)
}
