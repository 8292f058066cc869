package errors

import (
	stderrors "errors"
	"io"
	"testing"
)

func TestErrorString(t *testing.T) {
	err := New("A201", CategoryProtocol, "frame payload too large: %d bytes", 70000)
	want := "A201: frame payload too large: 70000 bytes"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestErrorStringNoCode(t *testing.T) {
	err := &AlderError{Message: "bad frame"}
	if err.Error() != "bad frame" {
		t.Errorf("Error() = %q, want %q", err.Error(), "bad frame")
	}
}

func TestUnwrap(t *testing.T) {
	err := New("A202", CategoryProtocol, "truncated payload").Wrap(io.ErrUnexpectedEOF)
	if !stderrors.Is(err, io.ErrUnexpectedEOF) {
		t.Error("errors.Is should find the wrapped cause")
	}
}

func TestAs(t *testing.T) {
	var target *AlderError
	err := func() error { return New("A101", CategoryLocate, "patch index out of range") }()
	if !stderrors.As(err, &target) {
		t.Fatal("errors.As should match *AlderError")
	}
	if target.Code != "A101" {
		t.Errorf("Code = %q, want A101", target.Code)
	}
	if target.Category != CategoryLocate {
		t.Errorf("Category = %q, want locate", target.Category)
	}
}

func TestInvariantHint(t *testing.T) {
	err := Invariant(CategoryDiff, "patch indices not increasing")
	if err.Hint == "" {
		t.Error("Invariant errors should carry a hint")
	}
	if err.Code != "A001" {
		t.Errorf("Code = %q, want A001", err.Code)
	}
}
