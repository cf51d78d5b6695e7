// Package trackers implements Trackers that record per-episode data and
// per-frame diagnostics of an experiment
package trackers

import (
	"fmt"

	"github.com/samuelfneumann/fastdqn/experiment/tracker"
	ts "github.com/samuelfneumann/fastdqn/timestep"
)

// Return tracks and saves the episodic score of an experiment. The
// score is accumulated from the raw, unclipped rewards of each decision
// point, which is what the reference training log reports.
//
// Note: An episode must finish for this Tracker to save its data.
// If the last episode in an experiment does not finish, that episode's
// score will not be saved.
type Return struct {
	lastTimeStep   int
	currentReturn  float64
	episodeReturns []float64
	filename       string
}

// NewReturn creates and returns a new *Return Tracker
func NewReturn(filename string) *Return {
	return &Return{lastTimeStep: -1, filename: filename}
}

// Track tracks the reward seen on a decision point. When a new episode
// starts, the rewards are accumulated separately from those of earlier
// episodes.
//
// Track panics if it is called for non-sequential timesteps
func (r *Return) Track(step ts.TimeStep) {
	if step.First() {
		r.currentReturn = 0
		r.lastTimeStep = step.Number - 1
	}
	if r.lastTimeStep >= 0 && r.lastTimeStep+1 != step.Number {
		panic(fmt.Sprintf("track: last two timesteps tracked are not "+
			"sequential: timestep %v --> timestep %v were tracked",
			r.lastTimeStep, step.Number))
	}

	r.currentReturn += step.Reward
	r.lastTimeStep = step.Number

	if step.Last() {
		r.episodeReturns = append(r.episodeReturns, r.currentReturn)
		r.currentReturn = 0.0
		r.lastTimeStep = -1
	}
}

// Returns returns the scores of all finished episodes
func (r *Return) Returns() []float64 {
	out := make([]float64, len(r.episodeReturns))
	copy(out, r.episodeReturns)
	return out
}

// Save saves the data tracked by the Return Tracker to disk.
func (r *Return) Save() error {
	if err := tracker.SaveData(r.filename, r.episodeReturns); err != nil {
		return fmt.Errorf("save: could not save episode scores: %w", err)
	}
	return nil
}
