package protocol

// OpCode identifies a wire patch operation. Targets are addressed by
// child-index paths from the session root, so a thin client can apply
// them with nothing but childNodes lookups.
type OpCode uint8

const (
	OpReplace      OpCode = 0x01 // Swap the target for new markup
	OpText         OpCode = 0x02 // Replace text content
	OpAppend       OpCode = 0x03 // Append children to the target
	OpTruncate     OpCode = 0x04 // Remove the last N children
	OpSetAttr      OpCode = 0x10 // Set attribute
	OpRemoveAttr   OpCode = 0x11 // Remove attribute
	OpSetAttrNS    OpCode = 0x12 // Set namespaced attribute
	OpRemoveAttrNS OpCode = 0x13 // Remove namespaced attribute
	OpSetProp      OpCode = 0x14 // Set property (JSON-encoded value)
	OpRemoveProp   OpCode = 0x15 // Remove property
	OpSetStyle     OpCode = 0x16 // Set style property
	OpRemoveStyle  OpCode = 0x17 // Remove style property
	OpListen       OpCode = 0x20 // Start forwarding an event type
	OpUnlisten     OpCode = 0x21 // Stop forwarding an event type
)

// String returns the string representation of the op code.
func (op OpCode) String() string {
	switch op {
	case OpReplace:
		return "Replace"
	case OpText:
		return "Text"
	case OpAppend:
		return "Append"
	case OpTruncate:
		return "Truncate"
	case OpSetAttr:
		return "SetAttr"
	case OpRemoveAttr:
		return "RemoveAttr"
	case OpSetAttrNS:
		return "SetAttrNS"
	case OpRemoveAttrNS:
		return "RemoveAttrNS"
	case OpSetProp:
		return "SetProp"
	case OpRemoveProp:
		return "RemoveProp"
	case OpSetStyle:
		return "SetStyle"
	case OpRemoveStyle:
		return "RemoveStyle"
	case OpListen:
		return "Listen"
	case OpUnlisten:
		return "Unlisten"
	default:
		return "Unknown"
	}
}

// Op is a single wire patch operation.
type Op struct {
	Code      OpCode
	Path      []int    // Target node, child indices from the root
	Key       string   // Attribute/property/style/event name
	Value     string   // New value; markup for Replace; text for Text
	Namespace string   // For SetAttrNS/RemoveAttrNS
	Count     int      // For Truncate
	Nodes     []string // Serialized children for Append
}

// PatchSet is one commit's worth of operations, tagged with the commit
// sequence number so clients can detect gaps after a reconnect.
type PatchSet struct {
	Seq uint64
	Ops []Op
}

// EncodePatchSet encodes ps to bytes.
func EncodePatchSet(ps *PatchSet) []byte {
	e := NewEncoder()
	EncodePatchSetTo(e, ps)
	return e.Bytes()
}

// EncodePatchSetTo encodes ps using the provided encoder.
func EncodePatchSetTo(e *Encoder, ps *PatchSet) {
	e.WriteUvarint(ps.Seq)
	e.WriteUvarint(uint64(len(ps.Ops)))
	for i := range ps.Ops {
		encodeOp(e, &ps.Ops[i])
	}
}

func encodeOp(e *Encoder, op *Op) {
	e.WriteByte(byte(op.Code))
	e.WritePath(op.Path)

	switch op.Code {
	case OpReplace, OpText:
		e.WriteString(op.Value)

	case OpAppend:
		e.WriteUvarint(uint64(len(op.Nodes)))
		for _, n := range op.Nodes {
			e.WriteString(n)
		}

	case OpTruncate:
		e.WriteUvarint(uint64(op.Count))

	case OpSetAttr, OpSetProp, OpSetStyle:
		e.WriteString(op.Key)
		e.WriteString(op.Value)

	case OpRemoveAttr, OpRemoveProp, OpRemoveStyle, OpListen, OpUnlisten:
		e.WriteString(op.Key)

	case OpSetAttrNS:
		e.WriteString(op.Namespace)
		e.WriteString(op.Key)
		e.WriteString(op.Value)

	case OpRemoveAttrNS:
		e.WriteString(op.Namespace)
		e.WriteString(op.Key)
	}
}

// splitHeadroom bounds the seq and count prefixes of an encoded patch
// set: two uvarints of at most ten bytes each.
const splitHeadroom = 20

// SplitPatchSet splits ps into consecutive sets whose encoded payloads
// each fit within max bytes, numbered sequentially from ps.Seq. Clients
// apply sets in order, so a split commit is indistinguishable from a
// burst of small ones. An op whose encoding alone exceeds the budget
// comes back as its own single-op set, still oversized; the caller
// decides how to fail.
func SplitPatchSet(ps *PatchSet, max int) []*PatchSet {
	if len(ps.Ops) == 0 {
		return []*PatchSet{ps}
	}
	budget := max - splitHeadroom

	e := NewEncoder()
	var (
		sets  []*PatchSet
		start int
		size  int
		seq   = ps.Seq
	)
	for i := range ps.Ops {
		e.Reset()
		encodeOp(e, &ps.Ops[i])
		n := e.Len()
		if size > 0 && size+n > budget {
			sets = append(sets, &PatchSet{Seq: seq, Ops: ps.Ops[start:i]})
			seq++
			start = i
			size = 0
		}
		size += n
	}
	sets = append(sets, &PatchSet{Seq: seq, Ops: ps.Ops[start:]})
	return sets
}

// DecodePatchSet decodes a patch set from bytes.
func DecodePatchSet(data []byte) (*PatchSet, error) {
	d := NewDecoder(data)
	return DecodePatchSetFrom(d)
}

// DecodePatchSetFrom decodes a patch set from a decoder.
func DecodePatchSetFrom(d *Decoder) (*PatchSet, error) {
	seq, err := d.ReadUvarint()
	if err != nil {
		return nil, err
	}
	count, err := d.ReadCollectionCount()
	if err != nil {
		return nil, err
	}
	ops := make([]Op, count)
	for i := range ops {
		if err := decodeOp(d, &ops[i]); err != nil {
			return nil, err
		}
	}
	return &PatchSet{Seq: seq, Ops: ops}, nil
}

func decodeOp(d *Decoder, op *Op) error {
	code, err := d.ReadByte()
	if err != nil {
		return err
	}
	op.Code = OpCode(code)

	op.Path, err = d.ReadPath()
	if err != nil {
		return err
	}

	switch op.Code {
	case OpReplace, OpText:
		op.Value, err = d.ReadString()

	case OpAppend:
		var n int
		n, err = d.ReadCollectionCount()
		if err != nil {
			return err
		}
		op.Nodes = make([]string, n)
		for i := range op.Nodes {
			op.Nodes[i], err = d.ReadString()
			if err != nil {
				return err
			}
		}

	case OpTruncate:
		var count uint64
		count, err = d.ReadUvarint()
		op.Count = int(count)

	case OpSetAttr, OpSetProp, OpSetStyle:
		op.Key, err = d.ReadString()
		if err != nil {
			return err
		}
		op.Value, err = d.ReadString()

	case OpRemoveAttr, OpRemoveProp, OpRemoveStyle, OpListen, OpUnlisten:
		op.Key, err = d.ReadString()

	case OpSetAttrNS:
		op.Namespace, err = d.ReadString()
		if err != nil {
			return err
		}
		op.Key, err = d.ReadString()
		if err != nil {
			return err
		}
		op.Value, err = d.ReadString()

	case OpRemoveAttrNS:
		op.Namespace, err = d.ReadString()
		if err != nil {
			return err
		}
		op.Key, err = d.ReadString()
	}
	return err
}
