package window

import "github.com/samuelfneumann/fastdqn/frame"

// State is an immutable, ordered sequence of frames, oldest first. The
// zero State holds no frames and is used as the terminal marker.
type State struct {
	frames []*frame.Frame
}

// Terminal marks the absence of a next state after an episode ends
var Terminal = State{}

// NewState returns a new State holding the given frames, oldest first
func NewState(frames ...*frame.Frame) State {
	if len(frames) == 0 {
		return Terminal
	}
	f := make([]*frame.Frame, len(frames))
	copy(f, frames)
	return State{frames: f}
}

// IsTerminal returns whether the State is the terminal marker
func (s State) IsTerminal() bool {
	return len(s.frames) == 0
}

// Len returns the number of frames in the State
func (s State) Len() int {
	return len(s.frames)
}

// Frame returns the i-th oldest frame
func (s State) Frame(i int) *frame.Frame {
	return s.frames[i]
}

// Frames returns a copy of the frames in the State
func (s State) Frames() []*frame.Frame {
	out := make([]*frame.Frame, len(s.frames))
	copy(out, s.frames)
	return out
}

// NumFeatures returns the length of the slice returned by Features
func (s State) NumFeatures() int {
	if s.IsTerminal() {
		return 0
	}
	side := s.frames[0].Side()
	return len(s.frames) * side * side
}

// Features flattens the State into a feature vector, oldest frame
// first, with samples scaled to [0, 1]
func (s State) Features() []float64 {
	return s.AppendFeatures(make([]float64, 0, s.NumFeatures()))
}

// AppendFeatures appends the flattened State to dst
func (s State) AppendFeatures(dst []float64) []float64 {
	for _, f := range s.frames {
		dst = f.AppendFeatures(dst)
	}
	return dst
}
