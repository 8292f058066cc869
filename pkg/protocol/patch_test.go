package protocol

import (
	"reflect"
	"testing"
)

func TestPatchSetRoundTrip(t *testing.T) {
	want := &PatchSet{
		Seq: 42,
		Ops: []Op{
			{Code: OpText, Path: []int{0, 1}, Value: "hello"},
			{Code: OpSetAttr, Path: []int{0}, Key: "class", Value: "active"},
			{Code: OpRemoveAttr, Path: []int{0}, Key: "hidden"},
			{Code: OpSetStyle, Path: []int{2}, Key: "color", Value: "red"},
			{Code: OpRemoveStyle, Path: []int{2}, Key: "width"},
			{Code: OpSetProp, Path: []int{1, 0}, Key: "value", Value: `"typed"`},
			{Code: OpRemoveProp, Path: []int{1, 0}, Key: "checked"},
			{Code: OpReplace, Path: []int{3}, Value: "<div><span>new</span></div>"},
			{Code: OpAppend, Path: nil, Nodes: []string{"<li>a</li>", "<li>b</li>"}},
			{Code: OpTruncate, Path: []int{1}, Count: 2},
			{Code: OpListen, Path: []int{0, 2}, Key: "click"},
			{Code: OpUnlisten, Path: []int{0, 2}, Key: "input"},
			{Code: OpSetAttrNS, Path: []int{4}, Namespace: "http://www.w3.org/1999/xlink", Key: "href", Value: "#icon"},
			{Code: OpRemoveAttrNS, Path: []int{4}, Namespace: "http://www.w3.org/1999/xlink", Key: "title"},
		},
	}

	got, err := DecodePatchSet(EncodePatchSet(want))
	if err != nil {
		t.Fatalf("DecodePatchSet() error = %v", err)
	}
	if got.Seq != want.Seq {
		t.Errorf("Seq = %d, want %d", got.Seq, want.Seq)
	}
	if len(got.Ops) != len(want.Ops) {
		t.Fatalf("len(Ops) = %d, want %d", len(got.Ops), len(want.Ops))
	}
	for i := range want.Ops {
		g, w := got.Ops[i], want.Ops[i]
		if g.Code != w.Code || g.Key != w.Key || g.Value != w.Value ||
			g.Namespace != w.Namespace || g.Count != w.Count {
			t.Errorf("Ops[%d] = %+v, want %+v", i, g, w)
		}
		if len(g.Path) != len(w.Path) || (len(w.Path) > 0 && !reflect.DeepEqual(g.Path, w.Path)) {
			t.Errorf("Ops[%d].Path = %v, want %v", i, g.Path, w.Path)
		}
		if !reflect.DeepEqual(g.Nodes, w.Nodes) && (len(g.Nodes) > 0 || len(w.Nodes) > 0) {
			t.Errorf("Ops[%d].Nodes = %v, want %v", i, g.Nodes, w.Nodes)
		}
	}
}

func TestPatchSetEmpty(t *testing.T) {
	got, err := DecodePatchSet(EncodePatchSet(&PatchSet{Seq: 7}))
	if err != nil {
		t.Fatalf("DecodePatchSet() error = %v", err)
	}
	if got.Seq != 7 || len(got.Ops) != 0 {
		t.Errorf("DecodePatchSet() = %+v, want Seq 7 and no ops", got)
	}
}

func TestDecodePatchSetTruncated(t *testing.T) {
	data := EncodePatchSet(&PatchSet{
		Seq: 1,
		Ops: []Op{{Code: OpText, Path: []int{0}, Value: "some text content"}},
	})
	for cut := 1; cut < len(data); cut++ {
		if _, err := DecodePatchSet(data[:cut]); err == nil {
			t.Errorf("DecodePatchSet on %d of %d bytes: error = nil", cut, len(data))
		}
	}
}

func TestSplitPatchSetSmall(t *testing.T) {
	want := &PatchSet{Seq: 9, Ops: []Op{
		{Code: OpText, Path: []int{0}, Value: "a"},
		{Code: OpText, Path: []int{1}, Value: "b"},
	}}
	sets := SplitPatchSet(want, MaxPayloadSize)
	if len(sets) != 1 {
		t.Fatalf("len(sets) = %d, want 1", len(sets))
	}
	if sets[0].Seq != 9 || len(sets[0].Ops) != 2 {
		t.Errorf("sets[0] = %+v, want original set unsplit", sets[0])
	}
}

func TestSplitPatchSetLarge(t *testing.T) {
	big := make([]byte, 400)
	for i := range big {
		big[i] = 'x'
	}
	var ops []Op
	for i := 0; i < 20; i++ {
		ops = append(ops, Op{Code: OpText, Path: []int{i}, Value: string(big)})
	}
	const max = 1024

	sets := SplitPatchSet(&PatchSet{Seq: 5, Ops: ops}, max)
	if len(sets) < 2 {
		t.Fatalf("len(sets) = %d, want several", len(sets))
	}

	var (
		total int
		seq   = uint64(4)
	)
	for i, set := range sets {
		if set.Seq != seq+1 {
			t.Errorf("sets[%d].Seq = %d, want %d", i, set.Seq, seq+1)
		}
		seq = set.Seq
		if n := len(EncodePatchSet(set)); n > max {
			t.Errorf("sets[%d] encodes to %d bytes, want <= %d", i, n, max)
		}
		for _, op := range set.Ops {
			if op.Path[0] != total {
				t.Fatalf("op order broken: got path %v at position %d", op.Path, total)
			}
			total++
		}
	}
	if total != len(ops) {
		t.Errorf("ops across sets = %d, want %d", total, len(ops))
	}
}

func TestSplitPatchSetOversizedOp(t *testing.T) {
	big := make([]byte, 4096)
	ops := []Op{
		{Code: OpText, Path: []int{0}, Value: "a"},
		{Code: OpReplace, Path: []int{1}, Value: string(big)},
		{Code: OpText, Path: []int{2}, Value: "b"},
	}

	// The middle op cannot fit any budget; it still comes back alone, in
	// order, rather than being dropped or merged.
	sets := SplitPatchSet(&PatchSet{Seq: 1, Ops: ops}, 1024)
	if len(sets) != 3 {
		t.Fatalf("len(sets) = %d, want 3", len(sets))
	}
	if len(sets[1].Ops) != 1 || sets[1].Ops[0].Code != OpReplace {
		t.Errorf("sets[1].Ops = %+v, want the oversized Replace alone", sets[1].Ops)
	}
}

func TestOpCodeString(t *testing.T) {
	cases := map[OpCode]string{
		OpReplace:  "Replace",
		OpText:     "Text",
		OpTruncate: "Truncate",
		OpListen:   "Listen",
		OpCode(99): "Unknown",
	}
	for op, want := range cases {
		if got := op.String(); got != want {
			t.Errorf("%d.String() = %q, want %q", op, got, want)
		}
	}
}
