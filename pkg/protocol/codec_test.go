package protocol

import (
	"bytes"
	"errors"
	"io"
	"testing"
)

func TestUvarintRoundTrip(t *testing.T) {
	values := []uint64{0, 1, 127, 128, 300, 16384, 1<<32 - 1, 1<<64 - 1}
	for _, v := range values {
		e := NewEncoder()
		e.WriteUvarint(v)
		d := NewDecoder(e.Bytes())
		got, err := d.ReadUvarint()
		if err != nil {
			t.Fatalf("ReadUvarint(%d) error = %v", v, err)
		}
		if got != v {
			t.Errorf("ReadUvarint = %d, want %d", got, v)
		}
		if !d.EOF() {
			t.Errorf("decoder not at EOF after %d", v)
		}
	}
}

func TestSvarintRoundTrip(t *testing.T) {
	values := []int64{0, 1, -1, 63, -64, 64, -65, 1 << 40, -(1 << 40)}
	for _, v := range values {
		e := NewEncoder()
		e.WriteSvarint(v)
		d := NewDecoder(e.Bytes())
		got, err := d.ReadSvarint()
		if err != nil {
			t.Fatalf("ReadSvarint(%d) error = %v", v, err)
		}
		if got != v {
			t.Errorf("ReadSvarint = %d, want %d", got, v)
		}
	}
}

func TestStringRoundTrip(t *testing.T) {
	e := NewEncoder()
	e.WriteString("hello")
	e.WriteString("")
	e.WriteString("héllo wörld")

	d := NewDecoder(e.Bytes())
	for _, want := range []string{"hello", "", "héllo wörld"} {
		got, err := d.ReadString()
		if err != nil {
			t.Fatalf("ReadString() error = %v", err)
		}
		if got != want {
			t.Errorf("ReadString() = %q, want %q", got, want)
		}
	}
}

func TestPathRoundTrip(t *testing.T) {
	paths := [][]int{nil, {0}, {1, 0, 3}, {0, 0, 0, 0, 0, 7}}
	for _, p := range paths {
		e := NewEncoder()
		e.WritePath(p)
		d := NewDecoder(e.Bytes())
		got, err := d.ReadPath()
		if err != nil {
			t.Fatalf("ReadPath(%v) error = %v", p, err)
		}
		if len(got) != len(p) {
			t.Fatalf("ReadPath(%v) = %v", p, got)
		}
		for i := range p {
			if got[i] != p[i] {
				t.Errorf("ReadPath(%v) = %v", p, got)
			}
		}
	}
}

func TestDecoderTruncatedInput(t *testing.T) {
	e := NewEncoder()
	e.WriteString("hello world")
	full := e.Bytes()

	for cut := 0; cut < len(full); cut++ {
		d := NewDecoder(full[:cut])
		if _, err := d.ReadString(); !errors.Is(err, io.ErrUnexpectedEOF) {
			t.Errorf("ReadString on %d bytes: error = %v, want ErrUnexpectedEOF", cut, err)
		}
	}
}

func TestDecoderHugeLengthPrefix(t *testing.T) {
	// A length prefix larger than the remaining buffer must fail before
	// allocating.
	e := NewEncoder()
	e.WriteUvarint(1 << 40)
	d := NewDecoder(e.Bytes())
	if _, err := d.ReadString(); !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Errorf("ReadString error = %v, want ErrUnexpectedEOF", err)
	}
}

func TestReadCollectionCountLimit(t *testing.T) {
	e := NewEncoder()
	e.WriteUvarint(MaxCollectionCount + 1)
	e.WriteBytes(make([]byte, MaxCollectionCount+8))
	d := NewDecoder(e.Bytes())
	if _, err := d.ReadCollectionCount(); !errors.Is(err, ErrCollectionTooLarge) {
		t.Errorf("ReadCollectionCount error = %v, want ErrCollectionTooLarge", err)
	}
}

func TestReadPathDepthLimit(t *testing.T) {
	e := NewEncoder()
	e.WriteUvarint(MaxPathDepth + 1)
	e.WriteBytes(make([]byte, MaxPathDepth+8))
	d := NewDecoder(e.Bytes())
	if _, err := d.ReadPath(); !errors.Is(err, ErrPathTooDeep) {
		t.Errorf("ReadPath error = %v, want ErrPathTooDeep", err)
	}
}

func TestVarintOverflow(t *testing.T) {
	// Eleven continuation bytes cannot encode a uint64.
	data := bytes.Repeat([]byte{0xFF}, 11)
	d := NewDecoder(data)
	if _, err := d.ReadUvarint(); !errors.Is(err, ErrVarintOverflow) {
		t.Errorf("ReadUvarint error = %v, want ErrVarintOverflow", err)
	}
}

func TestEncoderReset(t *testing.T) {
	e := NewEncoder()
	e.WriteString("first")
	e.Reset()
	e.WriteString("x")
	if e.Len() != 2 {
		t.Errorf("Len() after Reset = %d, want 2", e.Len())
	}
}
