package core

import (
	"errors"
	"fmt"
)

// Kind classifies a boundary-crossing failure so callers can tell a missing
// element from a transient store hiccup from something fatal.
type Kind int

const (
	// KindNotFound means a locator did not resolve within its timeout.
	KindNotFound Kind = iota
	// KindTransient means an external collaborator failed but may recover
	// (ledger unavailable, flaky device read).
	KindTransient
	// KindFatal means the run cannot continue.
	KindFatal
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindTransient:
		return "transient"
	case KindFatal:
		return "fatal"
	default:
		return "unknown"
	}
}

// OpError wraps an error with the operation that produced it and its kind.
type OpError struct {
	Op   string
	Kind Kind
	Err  error
}

func (e *OpError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Op, e.Kind)
	}
	return fmt.Sprintf("%s: %s: %v", e.Op, e.Kind, e.Err)
}

func (e *OpError) Unwrap() error { return e.Err }

// NewOpError builds an OpError.
func NewOpError(op string, kind Kind, err error) *OpError {
	return &OpError{Op: op, Kind: kind, Err: err}
}

// KindOf extracts the kind from an error chain, defaulting to KindTransient.
func KindOf(err error) Kind {
	var oe *OpError
	if errors.As(err, &oe) {
		return oe.Kind
	}
	return KindTransient
}

// ErrRecoveryFailed indicates hard recovery (app restart + re-navigation)
// could not restore the session; the run must end.
var ErrRecoveryFailed = errors.New("recovery failed")
