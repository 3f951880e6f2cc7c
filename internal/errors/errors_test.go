// Package errors tests for error code definitions.
package errors

import (
	"fmt"
	"testing"
)

func TestAppError_Error(t *testing.T) {
	err := New(ErrCaptureCancelled, "capture cancelled by user")
	want := "[CAPTURE_CANCELLED] capture cancelled by user"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestAppError_ErrorWithCause(t *testing.T) {
	cause := fmt.Errorf("exec: file not found")
	err := Wrap(ErrCaptureLaunch, "cannot start capture tool", cause)
	want := "[CAPTURE_LAUNCH_FAILED] cannot start capture tool: exec: file not found"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
	if err.Unwrap() != cause {
		t.Errorf("Unwrap() = %v, want %v", err.Unwrap(), cause)
	}
}

func TestIs(t *testing.T) {
	err := New(ErrInvalidImageData, "not an image")
	if !Is(err, ErrInvalidImageData) {
		t.Error("Is() = false for matching code, want true")
	}
	if Is(err, ErrCaptureCancelled) {
		t.Error("Is() = true for mismatched code, want false")
	}
	if Is(nil, ErrInternal) {
		t.Error("Is(nil) = true, want false")
	}
}

// TestIs_Wrapped verifies codes are found through wrapped chains.
func TestIs_Wrapped(t *testing.T) {
	inner := New(ErrTextRecognition, "ocr failed")
	outer := fmt.Errorf("pipeline run: %w", inner)

	if !Is(outer, ErrTextRecognition) {
		t.Error("Is() = false for wrapped code, want true")
	}
}

func TestCodeOf(t *testing.T) {
	if got := CodeOf(New(ErrHistoryLoad, "corrupt")); got != ErrHistoryLoad {
		t.Errorf("CodeOf() = %q, want %q", got, ErrHistoryLoad)
	}
	if got := CodeOf(fmt.Errorf("plain")); got != ErrInternal {
		t.Errorf("CodeOf(plain) = %q, want %q", got, ErrInternal)
	}
}
