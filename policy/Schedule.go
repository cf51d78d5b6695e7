// Package policy implements exploration schedules and ε-greedy action
// selection over state windows
package policy

import (
	"fmt"
	"math"
)

// Schedule determines the probability of taking a random action at
// a given training iteration
type Schedule interface {
	Epsilon(iteration int) float64
}

// LinearDecay decays ε linearly from 1.0 at iteration 0 to Floor at
// iteration Horizon, after which ε stays at Floor.
type LinearDecay struct {
	Horizon int
	Floor   float64
}

// NewLinearDecay returns a new LinearDecay schedule
func NewLinearDecay(horizon int, floor float64) (LinearDecay, error) {
	if horizon <= 0 {
		return LinearDecay{}, fmt.Errorf("newLinearDecay: horizon must be "+
			"> 0, have %v", horizon)
	}
	if floor < 0 || floor > 1 {
		return LinearDecay{}, fmt.Errorf("newLinearDecay: floor must be in "+
			"[0, 1], have %v", floor)
	}
	return LinearDecay{Horizon: horizon, Floor: floor}, nil
}

// Epsilon implements the Schedule interface
func (l LinearDecay) Epsilon(iteration int) float64 {
	if iteration < 0 {
		iteration = 0
	}
	progress := math.Min(float64(iteration), float64(l.Horizon))
	return 1.0 - (1.0-l.Floor)*progress/float64(l.Horizon)
}

// Constant is a fixed ε, used when evaluating a trained policy
type Constant float64

// Epsilon implements the Schedule interface
func (c Constant) Epsilon(int) float64 {
	return float64(c)
}

func (l LinearDecay) String() string {
	return fmt.Sprintf("LinearDecay(horizon=%v, floor=%v)", l.Horizon,
		l.Floor)
}

func (c Constant) String() string {
	return fmt.Sprintf("Constant(%v)", float64(c))
}
