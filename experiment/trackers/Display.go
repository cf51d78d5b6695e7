package trackers

import (
	"fmt"
	"io"

	"github.com/samuelfneumann/fastdqn/diagnostics"
	ts "github.com/samuelfneumann/fastdqn/timestep"
)

// Display draws every decision frame it tracks to a terminal
type Display struct {
	out io.Writer
}

// NewDisplay returns a new Display tracker drawing to out
func NewDisplay(out io.Writer) *Display {
	return &Display{out: out}
}

// Track draws the frame of step
func (d *Display) Track(step ts.TimeStep) {
	if step.Frame == nil {
		return
	}
	fmt.Fprint(d.out, diagnostics.DrawFrame(step.Frame))
	fmt.Fprintf(d.out, "%v\n", step)
}

// Save does nothing, a Display has no data to save
func (d *Display) Save() error {
	return nil
}
