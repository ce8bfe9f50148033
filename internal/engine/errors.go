package engine

import (
	"errors"
	"fmt"
)

var (
	// ErrNoTargetObjects reports that there is no object with user-defined attributes to work on.
	ErrNoTargetObjects = errors.New("no target objects")
	// ErrNoAttributeSelected reports an empty attribute selection.
	ErrNoAttributeSelected = errors.New("no attribute selected")
	// ErrAttributeNotMovable reports a selected name that is not a user-defined attribute.
	ErrAttributeNotMovable = errors.New("attribute cannot be moved")
	// ErrHostPrimitiveFailure reports that a host call failed mid-sequence.
	ErrHostPrimitiveFailure = errors.New("host primitive failure")
	// ErrNativeUnsupported reports that the native strategy was requested for a host without direct moves.
	ErrNativeUnsupported = errors.New("host does not support direct moves")

	errUndoMismatch = errors.New("undo did not restore the deleted attribute")
)

// Warning texts shown to the user.
const (
	msgNoObjects   = "Please select one or more transform nodes."
	msgNoAttribute = "Please select one or more attributes."
	msgNotMovable  = "Selected attribute cannot be moved."
)

// HostPrimitiveError describes a failed host call after mutation has started.
// The attribute list is in an unknown state afterwards.
type HostPrimitiveError struct {
	// Op is the host call that failed (list, unlock, delete, undo, move, relock).
	Op string
	// Object is the object being reordered.
	Object string
	// Attribute is the attribute the call targeted, if any.
	Attribute string
	// Err is the underlying cause.
	Err error
}

func (e *HostPrimitiveError) Error() string {
	if e == nil {
		return ErrHostPrimitiveFailure.Error()
	}
	target := e.Object
	if e.Attribute != "" {
		target += "." + e.Attribute
	}
	return fmt.Sprintf("%s: %s %s: %v", ErrHostPrimitiveFailure, e.Op, target, e.Err)
}

// Unwrap exposes both the failure class and the cause.
func (e *HostPrimitiveError) Unwrap() []error {
	return []error{ErrHostPrimitiveFailure, e.Err}
}

// IsHostPrimitiveFailure reports whether err is a fatal mid-sequence host failure.
func IsHostPrimitiveFailure(err error) bool {
	var target *HostPrimitiveError
	return errors.As(err, &target)
}

// WarningFor returns the short user-facing message for err.
func WarningFor(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrNoTargetObjects):
		return msgNoObjects
	case errors.Is(err, ErrNoAttributeSelected):
		return msgNoAttribute
	case errors.Is(err, ErrAttributeNotMovable):
		return msgNotMovable
	case IsHostPrimitiveFailure(err):
		return fmt.Sprintf("Attribute reorder aborted, attribute list may be inconsistent: %v", err)
	default:
		return err.Error()
	}
}
