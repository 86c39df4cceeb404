package core

import (
	"errors"
	"fmt"
	"testing"
)

func TestOpErrorKindOf(t *testing.T) {
	err := NewOpError("nav.open_profile", KindTransient, errors.New("element vanished"))

	if KindOf(err) != KindTransient {
		t.Errorf("KindOf = %v, want transient", KindOf(err))
	}
	// Kind survives wrapping.
	wrapped := fmt.Errorf("visiting profile: %w", err)
	if KindOf(wrapped) != KindTransient {
		t.Errorf("KindOf(wrapped) = %v, want transient", KindOf(wrapped))
	}
	// Plain errors default to transient.
	if KindOf(errors.New("boom")) != KindTransient {
		t.Errorf("plain error kind = %v, want transient", KindOf(errors.New("boom")))
	}
}

func TestKindString(t *testing.T) {
	for kind, want := range map[Kind]string{
		KindNotFound:  "not_found",
		KindTransient: "transient",
		KindFatal:     "fatal",
	} {
		if kind.String() != want {
			t.Errorf("Kind(%d).String() = %q, want %q", kind, kind.String(), want)
		}
	}
}
