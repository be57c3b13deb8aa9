package errors

import (
	stderrors "errors"
	"fmt"
	"testing"
)

func TestErrorIsMatchesByCode(t *testing.T) {
	err := New(CodeToolUnknown, "tool type \"lens\" is not in the catalog")
	if !stderrors.Is(err, New(CodeToolUnknown, "")) {
		t.Fatal("expected errors.Is to match on code")
	}
	if stderrors.Is(err, New(CodeObjectInvalid, "")) {
		t.Fatal("expected different codes not to match")
	}
}

func TestWrapKeepsCause(t *testing.T) {
	cause := fmt.Errorf("boom")
	err := Wrap(CodeSnapshotInvalid, "decode snapshot", cause)
	if !stderrors.Is(err, cause) {
		t.Fatal("expected wrapped cause to be reachable")
	}
	if err.Error() != "decode snapshot: boom" {
		t.Fatalf("message = %q, want %q", err.Error(), "decode snapshot: boom")
	}
}

func TestCodeOf(t *testing.T) {
	wrapped := fmt.Errorf("register: %w", WithMetadata(CodeObjectDuplicate, "duplicate", map[string]string{"ObjectID": "desk"}))
	if got := CodeOf(wrapped); got != CodeObjectDuplicate {
		t.Fatalf("CodeOf = %q, want %q", got, CodeObjectDuplicate)
	}
	if got := CodeOf(fmt.Errorf("plain")); got != CodeUnknown {
		t.Fatalf("CodeOf(plain) = %q, want %q", got, CodeUnknown)
	}
}
