package errors

import (
	stderrors "errors"
	"strings"
	"testing"
)

func TestErrorFormatting(t *testing.T) {
	cause := stderrors.New("disk full")
	err := New(StoreUnavailable, "failed to persist state", cause)

	msg := err.Error()
	if !strings.Contains(msg, "STORE_UNAVAILABLE") {
		t.Errorf("missing code in %q", msg)
	}
	if !strings.Contains(msg, "disk full") {
		t.Errorf("missing cause in %q", msg)
	}
}

func TestUnwrap(t *testing.T) {
	cause := stderrors.New("boom")
	err := New(ProseGenerationFailed, "generator error", cause)

	if !stderrors.Is(err, cause) {
		t.Error("errors.Is should find the cause through Unwrap")
	}
}

func TestCodeOf(t *testing.T) {
	if CodeOf(New(StateVersionMismatch, "old format", nil)) != StateVersionMismatch {
		t.Error("expected StateVersionMismatch")
	}
	if CodeOf(stderrors.New("plain")) != InternalError {
		t.Error("plain errors should map to InternalError")
	}
}
