// Package timestep implements timesteps of the agent-environment
// interaction and the transitions recorded from them
package timestep

import (
	"fmt"

	"github.com/samuelfneumann/fastdqn/frame"
)

// StepType denotes the type of step that a TimeStep can be, either the
// first decision point of an episode, a middle step, or the last step
type StepType int

const (
	First StepType = iota
	Mid
	Last
)

func (s StepType) String() string {
	switch s {
	case First:
		return "First"
	case Last:
		return "Last"
	default:
		return "Mid"
	}
}

// TimeStep packages together a single decision point of an episode: the
// frame observed, the action taken in response, and the raw (unclipped)
// reward that action produced.
type TimeStep struct {
	StepType
	Reward float64
	Action int
	Number int
	Frame  *frame.Frame
}

// New returns a new TimeStep
func New(t StepType, r float64, action int, f *frame.Frame, n int) TimeStep {
	return TimeStep{StepType: t, Reward: r, Action: action, Number: n, Frame: f}
}

// First returns whether a TimeStep is the first in an episode
func (t *TimeStep) First() bool {
	return t.StepType == First
}

// Mid returns whether a TimeStep is a middle step in an episode
func (t *TimeStep) Mid() bool {
	return t.StepType == Mid
}

// Last returns whether a TimeStep is the last step in an episode
func (t *TimeStep) Last() bool {
	return t.StepType == Last
}

func (t TimeStep) String() string {
	str := "TimeStep | Type: %v  |  Reward:  %.2f  |  Action: %v  |  " +
		"Step Number:  %v"

	return fmt.Sprintf(str, t.StepType, t.Reward, t.Action, t.Number)
}
