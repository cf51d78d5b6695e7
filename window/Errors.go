package window

import (
	"errors"
	"fmt"
)

// ErrNotReady is wrapped by all NotReadyErrors
var ErrNotReady = errors.New("window not ready")

// NotReadyError is returned when a snapshot of a Window is requested
// before enough frames have been pushed. It signals a bug in the caller.
type NotReadyError struct {
	Have int
	Want int
}

// Error satisfies the error interface
func (e *NotReadyError) Error() string {
	return fmt.Sprintf("snapshot: %v: have %d frames, want %d", ErrNotReady,
		e.Have, e.Want)
}

// Unwrap returns ErrNotReady
func (e *NotReadyError) Unwrap() error {
	return ErrNotReady
}
