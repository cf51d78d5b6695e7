package trackers

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/samuelfneumann/fastdqn/diagnostics"
	ts "github.com/samuelfneumann/fastdqn/timestep"
)

// Frames dumps every decision frame it tracks as a numbered PNG in a
// directory, and records the action and raw reward of each decision
// point in an actions.csv log in the same directory. Frames are
// numbered consecutively across episodes, starting at 1.
type Frames struct {
	dir   string
	count int
	rows  [][]string
	err   error
}

// NewFrames returns a new Frames tracker writing to dir, creating dir
// if needed
func NewFrames(dir string) (*Frames, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("newFrames: %w", err)
	}
	return &Frames{
		dir:  dir,
		rows: [][]string{{"frame", "episode step", "action", "reward"}},
	}, nil
}

// Track saves the frame of a timestep. The first error encountered is
// kept and reported by Save.
func (f *Frames) Track(step ts.TimeStep) {
	if f.err != nil || step.Frame == nil {
		return
	}

	f.count++
	path := filepath.Join(f.dir, fmt.Sprintf("%v.png", f.count))
	if err := diagnostics.SaveFrame(step.Frame, path); err != nil {
		f.err = fmt.Errorf("track: %w", err)
		return
	}

	f.rows = append(f.rows, []string{
		strconv.Itoa(f.count),
		strconv.Itoa(step.Number),
		strconv.Itoa(step.Action),
		strconv.FormatFloat(step.Reward, 'g', -1, 64),
	})
}

// Count returns the number of frames saved
func (f *Frames) Count() int {
	return f.count
}

// Save writes the action log
func (f *Frames) Save() error {
	if f.err != nil {
		return fmt.Errorf("save: %w", f.err)
	}

	file, err := os.Create(filepath.Join(f.dir, "actions.csv"))
	if err != nil {
		return fmt.Errorf("save: %w", err)
	}
	defer file.Close()

	w := csv.NewWriter(file)
	if err := w.WriteAll(f.rows); err != nil {
		return fmt.Errorf("save: %w", err)
	}
	return nil
}
