// Package window implements sliding windows of the most recent
// preprocessed frames, which form the inputs to a policy.
package window

import (
	"fmt"

	"github.com/samuelfneumann/fastdqn/frame"
)

// DefaultDepth is the default number of frames in a state window
const DefaultDepth = 4

// Window holds the last depth frames pushed since the last Reset, in
// the order they were pushed. Pushing onto a full Window evicts the
// oldest frame first, so the Window never holds more than depth frames.
type Window struct {
	depth  int
	frames []*frame.Frame
}

// New returns a new, empty Window of the given depth
func New(depth int) (*Window, error) {
	if depth < 1 {
		return nil, fmt.Errorf("new: depth must be >= 1")
	}
	return &Window{depth: depth, frames: make([]*frame.Frame, 0, depth)}, nil
}

// Depth returns the number of frames in a full Window
func (w *Window) Depth() int {
	return w.depth
}

// Len returns the number of frames currently held
func (w *Window) Len() int {
	return len(w.frames)
}

// Push appends a frame to the back of the Window
func (w *Window) Push(f *frame.Frame) {
	if len(w.frames) == w.depth {
		copy(w.frames, w.frames[1:])
		w.frames = w.frames[:w.depth-1]
	}
	w.frames = append(w.frames, f)
}

// Ready returns whether at least depth frames have been pushed since
// the last Reset
func (w *Window) Ready() bool {
	return len(w.frames) == w.depth
}

// Snapshot returns the frames in the Window, oldest first. The returned
// State is independent of the Window: later pushes do not change it.
func (w *Window) Snapshot() (State, error) {
	if !w.Ready() {
		return State{}, &NotReadyError{Have: len(w.frames), Want: w.depth}
	}

	frames := make([]*frame.Frame, w.depth)
	copy(frames, w.frames)
	return State{frames: frames}, nil
}

// Reset removes all frames from the Window
func (w *Window) Reset() {
	for i := range w.frames {
		w.frames[i] = nil
	}
	w.frames = w.frames[:0]
}
