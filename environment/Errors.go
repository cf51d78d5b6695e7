package environment

import (
	"errors"
	"fmt"
)

// Fault reports that an environment could not be stepped, reset, or
// observed. A Fault is never retried, the state of the simulator cannot
// be trusted after one.
type Fault struct {
	Op  string
	Err error
}

// Error satisfies the error interface
func (f *Fault) Error() string {
	return fmt.Sprintf("environment fault: %v: %v", f.Op, f.Err)
}

func (f *Fault) Unwrap() error {
	return f.Err
}

// NewFault wraps err as a Fault of operation op. If err is already a
// Fault, it is returned unchanged.
func NewFault(op string, err error) error {
	if err == nil {
		return nil
	}
	if IsFault(err) {
		return err
	}
	return &Fault{Op: op, Err: err}
}

// IsFault returns whether err reports an environment fault
func IsFault(err error) bool {
	var f *Fault
	return errors.As(err, &f)
}
