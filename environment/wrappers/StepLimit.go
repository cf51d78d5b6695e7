package wrappers

import (
	"fmt"

	"github.com/samuelfneumann/fastdqn/environment"
)

// StepLimit ends episodes of an Emulator after a fixed number of raw
// frames
type StepLimit struct {
	environment.Emulator
	episodeSteps int
	steps        int
}

// NewStepLimit creates and returns a new step limit
func NewStepLimit(emulator environment.Emulator,
	episodeSteps int) (*StepLimit, error) {
	if episodeSteps < 1 {
		return nil, fmt.Errorf("newStepLimit: episode steps must be >= 1, "+
			"have %v", episodeSteps)
	}
	return &StepLimit{Emulator: emulator, episodeSteps: episodeSteps}, nil
}

// Step takes a single raw step
func (s *StepLimit) Step(action int) (float64, error) {
	s.steps++
	return s.Emulator.Step(action)
}

// GameOver returns whether the wrapped episode ended or whether the
// step limit was reached
func (s *StepLimit) GameOver() bool {
	return s.steps >= s.episodeSteps || s.Emulator.GameOver()
}

// Reset starts a new episode
func (s *StepLimit) Reset() error {
	s.steps = 0
	return s.Emulator.Reset()
}

// Close closes the wrapped emulator if it holds resources
func (s *StepLimit) Close() error {
	return environment.Close(s.Emulator)
}
