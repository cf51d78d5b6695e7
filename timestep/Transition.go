package timestep

import (
	"fmt"

	"github.com/samuelfneumann/fastdqn/window"
)

// Transition is one recorded experience tuple (s, a, r, s'). NextState
// is window.Terminal if and only if the action ended the episode.
type Transition struct {
	State     window.State
	Action    int
	Reward    float64
	NextState window.State
}

// NewTransition returns a new non-terminal Transition
func NewTransition(state window.State, action int, reward float64,
	next window.State) Transition {
	return Transition{
		State:     state,
		Action:    action,
		Reward:    reward,
		NextState: next,
	}
}

// NewTerminalTransition returns a new Transition whose action ended the
// episode
func NewTerminalTransition(state window.State, action int,
	reward float64) Transition {
	return NewTransition(state, action, reward, window.Terminal)
}

// Terminal returns whether the Transition ended an episode
func (t Transition) Terminal() bool {
	return t.NextState.IsTerminal()
}

func (t Transition) String() string {
	return fmt.Sprintf("Transition | Action: %v  |  Reward:  %.2f  |  "+
		"Terminal: %v", t.Action, t.Reward, t.Terminal())
}

// ClipReward returns the sign of the reward: 1 for a positive reward,
// -1 for a negative reward, and 0 otherwise.
func ClipReward(r float64) float64 {
	switch {
	case r > 0:
		return 1.0
	case r < 0:
		return -1.0
	default:
		return 0.0
	}
}
