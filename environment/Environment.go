// Package environment outlines the interfaces that pixel environments
// implement to be played by the experience-collection loop
package environment

import "github.com/samuelfneumann/fastdqn/frame"

// Emulator is a game that advances a single raw frame per action
type Emulator interface {
	// Step applies an action for one raw frame and returns the reward
	Step(action int) (float64, error)

	// GameOver returns whether the current episode has ended
	GameOver() bool

	// Screen returns the current raw screen
	Screen() (frame.Raw, error)

	// Reset starts a new episode
	Reset() error

	// NumActions returns the number of legal actions, enumerated from 0.
	// Action 0 is the no-op.
	NumActions() int
}

// Environment is the environment as seen by the experience-collection
// loop: each action spans several raw frames, and its reward is the sum
// of the rewards over those frames.
type Environment interface {
	// Screen returns the current raw screen
	Screen() (frame.Raw, error)

	// Act applies an action and returns the cumulative reward
	Act(action int) (float64, error)

	// ActNoop applies the no-op action and returns the cumulative reward
	ActNoop() (float64, error)

	// EpisodeOver returns whether the current episode has ended
	EpisodeOver() bool

	// Reset starts a new episode
	Reset() error

	// NumActions returns the number of legal actions
	NumActions() int
}

// Closer is an environment that holds resources that must be released
// once it is no longer needed
type Closer interface {
	Close() error
}

// Close closes e if it holds resources
func Close(e interface{}) error {
	if c, ok := e.(Closer); ok {
		return c.Close()
	}
	return nil
}
