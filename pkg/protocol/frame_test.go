package protocol

import (
	"bytes"
	"errors"
	"io"
	"testing"
)

func TestFrameRoundTrip(t *testing.T) {
	f := NewFrame(FramePatches, []byte("payload"))
	got, err := DecodeFrame(f.Encode())
	if err != nil {
		t.Fatalf("DecodeFrame() error = %v", err)
	}
	if got.Type != FramePatches {
		t.Errorf("Type = %v, want %v", got.Type, FramePatches)
	}
	if !bytes.Equal(got.Payload, []byte("payload")) {
		t.Errorf("Payload = %q, want %q", got.Payload, "payload")
	}
}

func TestFrameEmptyPayload(t *testing.T) {
	f := NewFrame(FrameControl, nil)
	encoded := f.Encode()
	if len(encoded) != FrameHeaderSize {
		t.Errorf("len(Encode()) = %d, want %d", len(encoded), FrameHeaderSize)
	}
	got, err := DecodeFrame(encoded)
	if err != nil {
		t.Fatalf("DecodeFrame() error = %v", err)
	}
	if len(got.Payload) != 0 {
		t.Errorf("Payload = %v, want empty", got.Payload)
	}
}

func TestReadWriteFrame(t *testing.T) {
	var buf bytes.Buffer
	want := NewFrame(FrameEvent, []byte{1, 2, 3})
	if err := WriteFrame(&buf, want); err != nil {
		t.Fatalf("WriteFrame() error = %v", err)
	}
	got, err := ReadFrame(&buf)
	if err != nil {
		t.Fatalf("ReadFrame() error = %v", err)
	}
	if got.Type != want.Type || !bytes.Equal(got.Payload, want.Payload) {
		t.Errorf("ReadFrame() = %+v, want %+v", got, want)
	}
}

func TestWriteFrameTooLarge(t *testing.T) {
	var buf bytes.Buffer
	f := NewFrame(FramePatches, make([]byte, MaxPayloadSize+1))
	if err := WriteFrame(&buf, f); !errors.Is(err, ErrFrameTooLarge) {
		t.Errorf("WriteFrame() error = %v, want ErrFrameTooLarge", err)
	}
}

func TestReadFrameShortHeader(t *testing.T) {
	_, err := ReadFrame(bytes.NewReader([]byte{0x01, 0x00}))
	if err == nil {
		t.Error("ReadFrame() error = nil, want EOF")
	}
}

func TestReadFrameTruncatedPayload(t *testing.T) {
	data := NewFrame(FrameEvent, []byte{1, 2, 3, 4}).Encode()
	_, err := ReadFrame(bytes.NewReader(data[:len(data)-2]))
	if !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Errorf("ReadFrame() error = %v, want ErrUnexpectedEOF", err)
	}
}

func TestFrameTypeString(t *testing.T) {
	if got := FramePatches.String(); got != "Patches" {
		t.Errorf("String() = %q, want %q", got, "Patches")
	}
	if got := FrameType(0x7F).String(); got != "Unknown" {
		t.Errorf("String() = %q, want %q", got, "Unknown")
	}
}
