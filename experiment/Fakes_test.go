package experiment

import (
	"errors"

	"github.com/samuelfneumann/fastdqn/expreplay"
	"github.com/samuelfneumann/fastdqn/frame"
	ts "github.com/samuelfneumann/fastdqn/timestep"
	"github.com/samuelfneumann/fastdqn/window"
)

// fakeEnv is a scripted 2x2 RGB environment. Each Act returns the next
// scripted reward and the episode ends once all rewards are used, or
// after maxNoops no-ops if maxNoops > 0.
type fakeEnv struct {
	rewards    []float64
	noopReward float64
	maxNoops   int

	acts       int
	noops      int
	totalNoops int
	resets     int
	actions    []int

	actErr    error
	screenErr error
	badScreen bool
}

func (f *fakeEnv) Screen() (frame.Raw, error) {
	if f.screenErr != nil {
		return frame.Raw{}, f.screenErr
	}
	if f.badScreen {
		return frame.NewRGB(2, 2, []uint8{1, 2, 3}), nil
	}

	pix := make([]uint8, 12)
	for i := range pix {
		pix[i] = uint8(10 * (f.acts + f.noops))
	}
	return frame.NewRGB(2, 2, pix), nil
}

func (f *fakeEnv) Act(action int) (float64, error) {
	if f.actErr != nil {
		return 0, f.actErr
	}
	f.actions = append(f.actions, action)
	r := f.rewards[f.acts]
	f.acts++
	return r, nil
}

func (f *fakeEnv) ActNoop() (float64, error) {
	f.noops++
	f.totalNoops++
	return f.noopReward, nil
}

func (f *fakeEnv) EpisodeOver() bool {
	return f.acts >= len(f.rewards) || (f.maxNoops > 0 && f.noops >= f.maxNoops)
}

func (f *fakeEnv) Reset() error {
	f.acts = 0
	f.noops = 0
	f.resets++
	return nil
}

func (f *fakeEnv) NumActions() int {
	return 3
}

// fakeAgent always takes the same greedy action and counts updates
type fakeAgent struct {
	action    int
	iteration int
	states    []window.State
	batches   []*expreplay.Batch
	saved     []string
}

func (f *fakeAgent) BestAction(s window.State) (int, error) {
	f.states = append(f.states, s)
	return f.action, nil
}

func (f *fakeAgent) Learn(b *expreplay.Batch) error {
	f.batches = append(f.batches, b)
	f.iteration++
	return nil
}

func (f *fakeAgent) Iteration() int {
	return f.iteration
}

func (f *fakeAgent) Save(path string) error {
	f.saved = append(f.saved, path)
	return nil
}

func (f *fakeAgent) Load(string) error {
	return errors.New("not implemented")
}

// spySchedule records the iterations at which ε is requested
type spySchedule struct {
	epsilon    float64
	iterations []int
}

func (s *spySchedule) Epsilon(iteration int) float64 {
	s.iterations = append(s.iterations, iteration)
	return s.epsilon
}

// recorder is a tracker.Tracker which keeps every timestep
type recorder struct {
	steps []ts.TimeStep
	saves int
}

func (r *recorder) Track(t ts.TimeStep) {
	r.steps = append(r.steps, t)
}

func (r *recorder) Save() error {
	r.saves++
	return nil
}
