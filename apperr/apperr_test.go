package apperr

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestError_FormatIncludesOpMetadataAndCause(t *testing.T) {
	cause := errors.New("display unavailable")
	err := Wrap(cause, KindCapture, "scan.capture", "grab region failed").WithMetadata("region", "8,8 35x5")
	got := err.Error()
	for _, want := range []string{"[capture]", "scan.capture", "grab region failed", "region:8,8 35x5", "display unavailable"} {
		if !strings.Contains(got, want) {
			t.Fatalf("error %q missing %q", got, want)
		}
	}
}

func TestIsKind_ThroughWrapping(t *testing.T) {
	base := New(KindConfig, "config.validate", "marker tables differ")
	wrapped := fmt.Errorf("startup: %w", base)
	if !IsKind(wrapped, KindConfig) {
		t.Fatalf("expected config kind through fmt wrapping")
	}
	if IsKind(wrapped, KindCapture) {
		t.Fatalf("unexpected capture kind")
	}
	if IsKind(errors.New("plain"), KindConfig) {
		t.Fatalf("plain error should not match")
	}
}

func TestUnwrap_ErrorsIs(t *testing.T) {
	err := Wrapf(ErrUnsupported, KindInput, "action.keydown", "key %q", "a")
	if !errors.Is(err, ErrUnsupported) {
		t.Fatalf("expected errors.Is to reach ErrUnsupported")
	}
}
