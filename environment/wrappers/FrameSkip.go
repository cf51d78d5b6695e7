// Package wrappers implements wrappers around emulators that change how
// actions are applied or when episodes end
package wrappers

import (
	"fmt"

	"github.com/samuelfneumann/fastdqn/environment"
	"github.com/samuelfneumann/fastdqn/frame"
)

// DefaultSkip is the number of raw frames each action is repeated for
const DefaultSkip = 4

// FrameSkip turns an Emulator into an environment.Environment by
// repeating each action for a number of raw frames and summing the
// reward over those frames. Repetition stops early if the episode ends.
type FrameSkip struct {
	environment.Emulator
	skip int
}

// NewFrameSkip returns a new FrameSkip wrapping emulator
func NewFrameSkip(emulator environment.Emulator, skip int) (*FrameSkip,
	error) {
	if skip < 1 {
		return nil, fmt.Errorf("newFrameSkip: skip must be >= 1, have %v",
			skip)
	}
	return &FrameSkip{Emulator: emulator, skip: skip}, nil
}

// Skip returns the number of raw frames each action is repeated for
func (f *FrameSkip) Skip() int {
	return f.skip
}

// Act repeats action for up to Skip raw frames and returns the sum of
// the rewards
func (f *FrameSkip) Act(action int) (float64, error) {
	if action < 0 || action >= f.NumActions() {
		return 0, &environment.Fault{
			Op:  "act",
			Err: fmt.Errorf("illegal action %v, want [0, %v)", action, f.NumActions()),
		}
	}

	reward := 0.0
	for i := 0; i < f.skip && !f.Emulator.GameOver(); i++ {
		r, err := f.Emulator.Step(action)
		if err != nil {
			return reward, environment.NewFault("act", err)
		}
		reward += r
	}
	return reward, nil
}

// ActNoop repeats the no-op action
func (f *FrameSkip) ActNoop() (float64, error) {
	return f.Act(0)
}

// EpisodeOver returns whether the current episode has ended
func (f *FrameSkip) EpisodeOver() bool {
	return f.Emulator.GameOver()
}

// Screen returns the current raw screen
func (f *FrameSkip) Screen() (frame.Raw, error) {
	r, err := f.Emulator.Screen()
	return r, environment.NewFault("screen", err)
}

// Reset starts a new episode
func (f *FrameSkip) Reset() error {
	return environment.NewFault("reset", f.Emulator.Reset())
}

// Close closes the wrapped emulator if it holds resources
func (f *FrameSkip) Close() error {
	return environment.Close(f.Emulator)
}
