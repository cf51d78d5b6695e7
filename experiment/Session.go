package experiment

import (
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/samuelfneumann/fastdqn/agent"
	env "github.com/samuelfneumann/fastdqn/environment"
	"github.com/samuelfneumann/fastdqn/experiment/checkpointer"
	"github.com/samuelfneumann/fastdqn/experiment/epoch"
	"github.com/samuelfneumann/fastdqn/experiment/tracker"
	"github.com/samuelfneumann/fastdqn/expreplay"
	"github.com/samuelfneumann/fastdqn/utils/progressbar"
	"gonum.org/v1/gonum/stat"
)

// progressWidth is the width in characters of the epoch progress bar
const progressWidth = 50

// Session trains or evaluates an agent on an environment over many
// episodes. A Session owns the episode Driver, the replay buffer, the
// epoch Reporter, and all trackers and checkpointers, so that several
// Sessions may run in the same process.
//
// A Session is used by calling Start, then Train or Evaluate any number
// of times, then Stop.
type Session struct {
	config Config
	agent  agent.Agent
	replay expreplay.ExperienceReplayer
	driver *Driver

	reporter      *epoch.Reporter
	trackers      []tracker.Tracker
	checkpointers []checkpointer.Checkpointer
	bar           *progressbar.ManualProgressBar

	runID    string
	episodes int
	started  bool
	stopped  bool

	logger zerolog.Logger
}

// NewSession returns a new Session playing e with a
func NewSession(c Config, e env.Environment, a agent.Agent,
	logger zerolog.Logger) (*Session, error) {
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("newSession: %w", err)
	}

	replay, err := c.ReplayConfig().Create(c.Seed)
	if err != nil {
		return nil, fmt.Errorf("newSession: %w", err)
	}

	driver, err := NewDriver(c.DriverConfig(), e, a, replay, logger)
	if err != nil {
		return nil, fmt.Errorf("newSession: %w", err)
	}

	return &Session{
		config: c,
		agent:  a,
		replay: replay,
		driver: driver,
		logger: logger,
	}, nil
}

// Register registers a tracker.Tracker, which is sent every decision
// point of every later episode and saved when the Session stops
func (s *Session) Register(t tracker.Tracker) {
	s.trackers = append(s.trackers, t)
	s.driver.Register(t)
}

// AddCheckpointer adds a checkpointer, which is checked after every
// training episode
func (s *Session) AddCheckpointer(c checkpointer.Checkpointer) {
	s.checkpointers = append(s.checkpointers, c)
}

// ShowProgress displays the progress towards the next epoch boundary
// on out after every training episode
func (s *Session) ShowProgress(out io.Writer) {
	s.bar = progressbar.NewManualProgressBar(out, progressWidth,
		s.config.StepsPerEpoch)
}

// RunID returns the unique id of the run, which is empty until the
// Session is started
func (s *Session) RunID() string {
	return s.runID
}

// Episodes returns the number of training episodes played
func (s *Session) Episodes() int {
	return s.episodes
}

// Replay returns the Session's replay buffer
func (s *Session) Replay() expreplay.ExperienceReplayer {
	return s.replay
}

// Records returns the epoch Records reported so far
func (s *Session) Records() []epoch.Record {
	if s.reporter == nil {
		return nil
	}
	return s.reporter.Records()
}

// Start starts the Session, writing the training log to log
func (s *Session) Start(log io.Writer) error {
	if s.started {
		return fmt.Errorf("start: session already started")
	}

	s.runID = uuid.New().String()
	s.logger = s.logger.With().Str("run_id", s.runID).Logger()

	reporter, err := epoch.NewReporter(log, s.config.ReporterConfig(),
		s.logger)
	if err != nil {
		return fmt.Errorf("start: %w", err)
	}
	s.reporter = reporter
	s.started = true

	s.logger.Info().
		Str("environment", s.config.Title()).
		Int("replay_capacity", s.config.ReplayCapacity).
		Int("replay_threshold", s.config.ReplayThreshold).
		Int("batch_size", s.config.BatchSize).
		Int("steps_per_epoch", s.config.StepsPerEpoch).
		Msg("session started")
	return nil
}

func (s *Session) running() error {
	if !s.started {
		return fmt.Errorf("session not started")
	}
	if s.stopped {
		return fmt.Errorf("session stopped")
	}
	return nil
}

// Train plays training episodes. If episodes is 0, episodes are played
// until the configured maximum number of iterations is reached, or
// forever if there is no maximum.
func (s *Session) Train(episodes int) error {
	if err := s.running(); err != nil {
		return fmt.Errorf("train: %w", err)
	}
	if episodes < 0 {
		return fmt.Errorf("train: episodes must be >= 0, have %v", episodes)
	}

	schedule, err := s.config.Schedule()
	if err != nil {
		return fmt.Errorf("train: %w", err)
	}

	for i := 0; episodes == 0 || i < episodes; i++ {
		iteration := s.agent.Iteration()
		if s.config.MaxIterations > 0 && iteration >= s.config.MaxIterations {
			s.logger.Info().
				Int("iteration", iteration).
				Msg("maximum iterations reached")
			break
		}

		start := time.Now()
		res, err := s.driver.RunEpisode(schedule, true)
		if err != nil {
			return fmt.Errorf("train: episode %v: %w", s.episodes, err)
		}
		s.episodes++

		iteration = s.agent.Iteration()
		_, _, err = s.reporter.Track(res.Score, res.Frames, time.Since(start),
			iteration)
		if err != nil {
			return fmt.Errorf("train: %w", err)
		}

		for _, c := range s.checkpointers {
			if err := c.Checkpoint(iteration); err != nil {
				return fmt.Errorf("train: %w", err)
			}
		}

		if s.bar != nil {
			epochStart := s.reporter.NextBoundary() - s.reporter.StepsPerEpoch()
			s.bar.Set(iteration - epochStart)
			s.bar.Display()
		}
	}

	return nil
}

// Evaluate plays games with the evaluation ε and without learning, and
// returns the score of each game
func (s *Session) Evaluate(games int) ([]float64, error) {
	if games < 1 {
		return nil, fmt.Errorf("evaluate: games must be >= 1, have %v", games)
	}

	schedule := s.config.EvalSchedule()
	scores := make([]float64, 0, games)
	for i := 0; i < games; i++ {
		res, err := s.driver.RunEpisode(schedule, false)
		if err != nil {
			return scores, fmt.Errorf("evaluate: game %v: %w", i, err)
		}
		scores = append(scores, res.Score)

		s.logger.Info().
			Int("game", i).
			Float64("score", res.Score).
			Int("frames", res.Frames).
			Msg("evaluation game finished")
	}

	var total float64
	for _, score := range scores {
		total += score
	}
	event := s.logger.Info().
		Float64("total_score", total).
		Float64("mean_score", stat.Mean(scores, nil))
	if len(scores) > 1 {
		event = event.Float64("std_score", stat.StdDev(scores, nil))
	}
	event.Msg("evaluation finished")

	return scores, nil
}

// SaveTrackers saves the data of all registered trackers, returning the
// first error encountered. Sessions used only for evaluation are never
// started, so they save their trackers with SaveTrackers rather than
// Stop.
func (s *Session) SaveTrackers() error {
	var firstErr error
	for _, t := range s.trackers {
		if err := t.Save(); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("saveTrackers: %w", err)
		}
	}
	return firstErr
}

// Stop stops the Session, flushing the training log and saving the data
// of all trackers
func (s *Session) Stop() error {
	if err := s.running(); err != nil {
		return fmt.Errorf("stop: %w", err)
	}
	s.stopped = true

	if s.bar != nil {
		s.bar.Close()
	}

	var firstErr error
	if err := s.reporter.Flush(); err != nil {
		firstErr = fmt.Errorf("stop: %w", err)
	}
	if err := s.SaveTrackers(); err != nil && firstErr == nil {
		firstErr = fmt.Errorf("stop: %w", err)
	}

	s.logger.Info().
		Int("episodes", s.episodes).
		Int("iteration", s.agent.Iteration()).
		Msg("session stopped")
	return firstErr
}
