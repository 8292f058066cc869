package protocol

import (
	"errors"
	"reflect"
	"testing"
)

func TestEventRoundTrip(t *testing.T) {
	want := &Event{
		Seq:  9,
		Name: "input",
		Path: []int{0, 2, 1},
		Data: map[string]any{
			"value":   "hello",
			"repeat":  false,
			"clientX": int64(120),
			"deltaY":  -3.5,
			"none":    nil,
			"touches": []any{int64(1), int64(2)},
			"nested":  map[string]any{"key": "Enter"},
		},
	}

	got, err := DecodeEvent(EncodeEvent(want))
	if err != nil {
		t.Fatalf("DecodeEvent() error = %v", err)
	}
	if got.Seq != want.Seq || got.Name != want.Name {
		t.Errorf("header = (%d, %q), want (%d, %q)", got.Seq, got.Name, want.Seq, want.Name)
	}
	if !reflect.DeepEqual(got.Path, want.Path) {
		t.Errorf("Path = %v, want %v", got.Path, want.Path)
	}
	if !reflect.DeepEqual(got.Data, want.Data) {
		t.Errorf("Data = %#v, want %#v", got.Data, want.Data)
	}
}

func TestEventNoData(t *testing.T) {
	got, err := DecodeEvent(EncodeEvent(&Event{Name: "click", Path: []int{0}}))
	if err != nil {
		t.Fatalf("DecodeEvent() error = %v", err)
	}
	if got.Data != nil {
		t.Errorf("Data = %v, want nil", got.Data)
	}
}

func TestEventIntNormalization(t *testing.T) {
	// Plain ints encode as svarints and come back as int64.
	got, err := DecodeEvent(EncodeEvent(&Event{
		Name: "scroll",
		Data: map[string]any{"scrollTop": 250},
	}))
	if err != nil {
		t.Fatalf("DecodeEvent() error = %v", err)
	}
	if v, ok := got.Data["scrollTop"].(int64); !ok || v != 250 {
		t.Errorf("Data[scrollTop] = %#v, want int64(250)", got.Data["scrollTop"])
	}
}

func TestEventUnknownValueTypeEncodesNull(t *testing.T) {
	got, err := DecodeEvent(EncodeEvent(&Event{
		Name: "custom",
		Data: map[string]any{"ch": make(chan int)},
	}))
	if err != nil {
		t.Fatalf("DecodeEvent() error = %v", err)
	}
	if v, ok := got.Data["ch"]; !ok || v != nil {
		t.Errorf("Data[ch] = %#v, want nil", v)
	}
}

func TestEventDepthLimit(t *testing.T) {
	// Hand-build a value nested past MaxValueDepth.
	e := NewEncoder()
	e.WriteUvarint(0)    // seq
	e.WriteString("x")   // name
	e.WritePath(nil)     // path
	e.WriteUvarint(1)    // one data entry
	e.WriteString("deep")
	for i := 0; i < MaxValueDepth+2; i++ {
		e.WriteByte(byte(valueArray))
		e.WriteUvarint(1)
	}
	e.WriteByte(byte(valueNull))

	if _, err := DecodeEvent(e.Bytes()); !errors.Is(err, ErrValueTooDeep) {
		t.Errorf("DecodeEvent() error = %v, want ErrValueTooDeep", err)
	}
}

func TestDecodeEventTruncated(t *testing.T) {
	data := EncodeEvent(&Event{
		Seq:  3,
		Name: "keydown",
		Path: []int{1, 2},
		Data: map[string]any{"key": "Escape"},
	})
	for cut := 0; cut < len(data); cut++ {
		if _, err := DecodeEvent(data[:cut]); err == nil {
			t.Errorf("DecodeEvent on %d of %d bytes: error = nil", cut, len(data))
		}
	}
}
