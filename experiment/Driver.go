package experiment

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/samuelfneumann/fastdqn/agent"
	env "github.com/samuelfneumann/fastdqn/environment"
	"github.com/samuelfneumann/fastdqn/experiment/tracker"
	"github.com/samuelfneumann/fastdqn/expreplay"
	"github.com/samuelfneumann/fastdqn/frame"
	"github.com/samuelfneumann/fastdqn/policy"
	ts "github.com/samuelfneumann/fastdqn/timestep"
	"github.com/samuelfneumann/fastdqn/window"
)

// DriverState is the phase of an episode that a Driver is in
type DriverState int

const (
	// WarmingUp is the phase before the state window is full, in which
	// only the no-op action is taken
	WarmingUp DriverState = iota

	// Acting is the phase in which actions are chosen ε-greedily and
	// transitions are recorded
	Acting

	// Terminated means the episode is over
	Terminated
)

func (d DriverState) String() string {
	switch d {
	case WarmingUp:
		return "WarmingUp"
	case Acting:
		return "Acting"
	case Terminated:
		return "Terminated"
	}
	return fmt.Sprintf("DriverState(%d)", int(d))
}

// Result summarizes a finished episode
type Result struct {
	Score       float64 // Sum of raw rewards of non-warm-up actions
	Frames      int     // Decision points, including warm-up no-ops
	Transitions int     // Transitions added to the replay buffer
	Updates     int     // Learning updates performed
}

// DriverConfig configures a Driver
type DriverConfig struct {
	WindowDepth     int
	FrameSize       int
	ReplayThreshold int // Learn only when the buffer holds more
	BatchSize       int
	Seed            uint64
}

// DriverConfig returns the configuration of the episode Driver
func (c Config) DriverConfig() DriverConfig {
	return DriverConfig{
		WindowDepth:     c.WindowDepth,
		FrameSize:       c.FrameSize,
		ReplayThreshold: c.ReplayThreshold,
		BatchSize:       c.BatchSize,
		Seed:            c.Seed,
	}
}

// Driver plays single episodes of an environment with an agent. At each
// decision point, the current screen is preprocessed and pushed onto a
// state window. Until the window is full, the no-op action is taken.
// Afterwards, actions are chosen ε-greedily and, when learning, each
// (state, action, clipped reward, next state) transition is added to the
// replay buffer and the agent is trained on replayed batches.
//
// A Driver is not safe for concurrent use.
type Driver struct {
	env      env.Environment
	agent    agent.Agent
	policy   *policy.EGreedy
	replay   expreplay.ExperienceReplayer
	trackers []tracker.Tracker

	preprocessor *frame.Preprocessor
	window       *window.Window
	current      *frame.Frame

	threshold int
	batchSize int

	state  DriverState
	logger zerolog.Logger
}

// NewDriver returns a new Driver
func NewDriver(c DriverConfig, e env.Environment, a agent.Agent,
	replay expreplay.ExperienceReplayer, logger zerolog.Logger) (*Driver,
	error) {
	if e == nil || a == nil || replay == nil {
		return nil, fmt.Errorf("newDriver: nil environment, agent, or " +
			"replay buffer")
	}
	if c.BatchSize < 1 {
		return nil, fmt.Errorf("newDriver: batch size must be >= 1, have %v",
			c.BatchSize)
	}

	pre, err := frame.NewPreprocessor(c.FrameSize)
	if err != nil {
		return nil, fmt.Errorf("newDriver: %w", err)
	}
	w, err := window.New(c.WindowDepth)
	if err != nil {
		return nil, fmt.Errorf("newDriver: %w", err)
	}
	p, err := policy.NewEGreedy(a, e.NumActions(), c.Seed)
	if err != nil {
		return nil, fmt.Errorf("newDriver: %w", err)
	}

	return &Driver{
		env:          e,
		agent:        a,
		policy:       p,
		replay:       replay,
		preprocessor: pre,
		window:       w,
		threshold:    c.ReplayThreshold,
		batchSize:    c.BatchSize,
		state:        Terminated,
		logger:       logger.With().Str("component", "episode_driver").Logger(),
	}, nil
}

// Register registers a tracker.Tracker with the Driver, which is sent
// every decision point from then on
func (d *Driver) Register(t tracker.Tracker) {
	d.trackers = append(d.trackers, t)
}

// State returns the phase the Driver is in
func (d *Driver) State() DriverState {
	return d.state
}

// RunEpisode plays one episode, choosing actions with the ε of schedule
// at the agent's current iteration. If learn is true, transitions are
// recorded and the agent is trained. The environment is reset once the
// episode ends.
//
// Any error returned is fatal: the environment may be left mid-episode.
func (d *Driver) RunEpisode(schedule policy.Schedule, learn bool) (Result,
	error) {
	if d.env.EpisodeOver() {
		return Result{}, fmt.Errorf("runEpisode: episode is already over")
	}

	d.window.Reset()
	d.state = WarmingUp

	var err error
	d.current, err = d.observe()
	if err != nil {
		d.state = Terminated
		return Result{}, fmt.Errorf("runEpisode: %w", err)
	}

	var res Result
	for d.state != Terminated {
		number := res.Frames
		res.Frames++

		if d.state == WarmingUp && d.window.Ready() {
			d.state = Acting
		}

		switch d.state {
		case WarmingUp:
			err = d.warmUp(number)
		case Acting:
			err = d.act(number, schedule, learn, &res)
		}
		if err != nil {
			d.state = Terminated
			return res, fmt.Errorf("runEpisode: %w", err)
		}
	}

	if err := d.env.Reset(); err != nil {
		return res, fmt.Errorf("runEpisode: %w", env.NewFault("reset", err))
	}
	return res, nil
}

// observe preprocesses the current screen and pushes it onto the window
func (d *Driver) observe() (*frame.Frame, error) {
	raw, err := d.env.Screen()
	if err != nil {
		return nil, env.NewFault("screen", err)
	}

	f, err := d.preprocessor.Process(raw)
	if err != nil {
		return nil, err
	}

	d.window.Push(f)
	return f, nil
}

// warmUp takes the no-op action. Its reward is not scored.
func (d *Driver) warmUp(number int) error {
	if _, err := d.env.ActNoop(); err != nil {
		return env.NewFault("actNoop", err)
	}

	over := d.env.EpisodeOver()
	d.track(number, over, 0, 0)
	if over {
		d.state = Terminated
		return nil
	}

	f, err := d.observe()
	if err != nil {
		return err
	}
	d.current = f
	return nil
}

// act takes an ε-greedy action and records its transition
func (d *Driver) act(number int, schedule policy.Schedule, learn bool,
	res *Result) error {
	state, err := d.window.Snapshot()
	if err != nil {
		return err
	}

	epsilon := schedule.Epsilon(d.agent.Iteration())
	action, err := d.policy.SelectAction(state, epsilon)
	if err != nil {
		return err
	}

	reward, err := d.env.Act(action)
	if err != nil {
		return env.NewFault("act", err)
	}
	over := d.env.EpisodeOver()

	next := window.Terminal
	var f *frame.Frame
	if !over {
		if f, err = d.observe(); err != nil {
			return err
		}
		if next, err = d.window.Snapshot(); err != nil {
			return err
		}
	}

	if learn {
		t := ts.NewTransition(state, action, ts.ClipReward(reward), next)
		if err := d.replay.Add(t); err != nil {
			return err
		}
		res.Transitions++

		if d.replay.Len() > d.threshold {
			updated, err := d.learn()
			if err != nil {
				return err
			}
			if updated {
				res.Updates++
			}
		}
	}

	res.Score += reward
	d.track(number, over, action, reward)

	if over {
		d.state = Terminated
	} else {
		d.current = f
	}
	return nil
}

// learn trains the agent on a batch sampled from the replay buffer. It
// returns false if the buffer could not yet be sampled.
func (d *Driver) learn() (bool, error) {
	transitions, err := d.replay.Sample(d.batchSize)
	if expreplay.IsInsufficientSamples(err) {
		return false, nil
	} else if err != nil {
		return false, err
	}

	batch, err := expreplay.NewBatch(transitions, d.policy.NumActions())
	if err != nil {
		return false, err
	}
	if err := d.agent.Learn(batch); err != nil {
		return false, fmt.Errorf("learn: %w", err)
	}

	d.logger.Debug().
		Int("iteration", d.agent.Iteration()).
		Int("replay_size", d.replay.Len()).
		Msg("learning update")
	return true, nil
}

// track sends the current decision point to all trackers
func (d *Driver) track(number int, over bool, action int, reward float64) {
	if len(d.trackers) == 0 {
		return
	}

	stepType := ts.Mid
	if number == 0 {
		stepType = ts.First
	}
	if over {
		stepType = ts.Last
	}

	step := ts.New(stepType, reward, action, d.current, number)
	for _, t := range d.trackers {
		t.Track(step)
	}
}
