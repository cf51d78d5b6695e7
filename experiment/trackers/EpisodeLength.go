package trackers

import (
	"fmt"

	"github.com/samuelfneumann/fastdqn/experiment/tracker"
	ts "github.com/samuelfneumann/fastdqn/timestep"
)

// EpisodeLength tracks and saves the lengths of episodes in an
// experiment, measured in frames since the episode began. Warm-up
// frames count towards the length.
//
// Note that an episode must finish for this Tracker to save its data.
type EpisodeLength struct {
	episodeLengths []float64
	filename       string
}

// NewEpisodeLength returns a new EpisodeLength tracker which will save
// its data at the specified location filename
func NewEpisodeLength(filename string) *EpisodeLength {
	return &EpisodeLength{filename: filename}
}

// Track caches the episode length if the timestep passed to it is the
// last timestep in the episode
func (e *EpisodeLength) Track(step ts.TimeStep) {
	if step.Last() {
		e.episodeLengths = append(e.episodeLengths, float64(step.Number+1))
	}
}

// Lengths returns the lengths of all finished episodes
func (e *EpisodeLength) Lengths() []float64 {
	out := make([]float64, len(e.episodeLengths))
	copy(out, e.episodeLengths)
	return out
}

// Save saves the episode lengths to disk. The lengths are saved as
// float64 so that tracker.LoadData can read them back.
func (e *EpisodeLength) Save() error {
	if err := tracker.SaveData(e.filename, e.episodeLengths); err != nil {
		return fmt.Errorf("save: could not save episode lengths: %w", err)
	}
	return nil
}
