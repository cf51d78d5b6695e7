package expreplay

import (
	"errors"
	"fmt"
)

// ExpReplayError implements errors unique to an experience replay
// buffer.
type ExpReplayError struct {
	Op  string
	Err error
}

// Error satisifes the error interface
func (e *ExpReplayError) Error() string {
	return e.Op + ": " + e.Err.Error()
}

func (e *ExpReplayError) Unwrap() error {
	return e.Err
}

// ErrEmptyBuffer is reported when sampling a buffer with no transitions
var ErrEmptyBuffer = errors.New("buffer empty")

// ErrInsufficientSamples is reported when sampling a buffer that holds
// fewer transitions than its minimum capacity
var ErrInsufficientSamples = errors.New("minimum capacity not yet reached")

// errEmptyInsufficient reports an empty buffer. An empty buffer never
// holds enough samples, whatever its minimum capacity.
var errEmptyInsufficient = fmt.Errorf("%w: %w", ErrEmptyBuffer,
	ErrInsufficientSamples)

var errTerminalState = errors.New("transition starts from the terminal state")

// IsInsufficientSamples returns whether or not an error reports that
// there are insufficient samples in the buffer to sample from the
// buffer.
//
// A buffer has too few samples to sample if its current length is
// less than its minimum capacity.
func IsInsufficientSamples(err error) bool {
	return errors.Is(err, ErrInsufficientSamples)
}

// IsEmptyBuffer returns whether or not an error reports that a
// replay buffer is empty.
func IsEmptyBuffer(err error) bool {
	return errors.Is(err, ErrEmptyBuffer)
}
