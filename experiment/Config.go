// Package experiment implements the experience-collection and training
// loop: an episode Driver which plays one episode at a time, and a
// Session which trains or evaluates an agent over many episodes and
// reports progress once per epoch
package experiment

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/samuelfneumann/fastdqn/agent"
	"github.com/samuelfneumann/fastdqn/agent/linear/qlearning"
	env "github.com/samuelfneumann/fastdqn/environment"
	"github.com/samuelfneumann/fastdqn/environment/envconfig"
	"github.com/samuelfneumann/fastdqn/environment/wrappers"
	"github.com/samuelfneumann/fastdqn/experiment/epoch"
	"github.com/samuelfneumann/fastdqn/expreplay"
	"github.com/samuelfneumann/fastdqn/frame"
	"github.com/samuelfneumann/fastdqn/policy"
	"github.com/samuelfneumann/fastdqn/window"
)

// Config represents a configuration of an experiment
type Config struct {
	ReplayCapacity  int // Maximum transitions in the replay buffer
	ReplayThreshold int // Learning starts once the buffer holds more

	BatchSize int // Transitions per learning update

	ExploreHorizon int     // Updates until ε reaches ExploreFloor
	ExploreFloor   float64 // Final ε

	Gamma float64

	StepsPerEpoch int // Learning updates per epoch

	Evaluate    bool
	EvalEpsilon float64
	EvalGames   int

	// FrameSkip is the number of raw frames each action is repeated
	// for. It overrides EnvConf.FrameSkip.
	FrameSkip   int
	WindowDepth int
	FrameSize   int

	Smoothing     float64 // Weight of a new score in the running average
	MaxIterations int     // Training stops after this many updates, 0 for never
	Seed          uint64

	EnvConf envconfig.Config

	// AgentConf is the agent to train. If nil, a linear Q-learning
	// agent is created with Gamma and BatchSize.
	AgentConf *agent.TypedConfig `json:",omitempty"`
}

// DefaultConfig returns the Config of the reference training run,
// playing Catch
func DefaultConfig() Config {
	return Config{
		ReplayCapacity:  500000,
		ReplayThreshold: 100,
		BatchSize:       32,
		ExploreHorizon:  1000000,
		ExploreFloor:    0.1,
		Gamma:           0.95,
		StepsPerEpoch:   5000,
		EvalEpsilon:     0.05,
		EvalGames:       1,
		FrameSkip:       wrappers.DefaultSkip,
		WindowDepth:     window.DefaultDepth,
		FrameSize:       frame.DefaultSize,
		Smoothing:       epoch.DefaultSmoothing,
		EnvConf:         envconfig.Default(envconfig.Catch),
	}
}

// LoadConfig reads a JSON Config from path. Fields missing from the
// file keep their default values.
func LoadConfig(path string) (Config, error) {
	c := DefaultConfig()

	file, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("loadConfig: %w", err)
	}
	defer file.Close()

	dec := json.NewDecoder(file)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&c); err != nil {
		return Config{}, fmt.Errorf("loadConfig: could not decode %v: %w",
			path, err)
	}

	if err := c.Validate(); err != nil {
		return Config{}, fmt.Errorf("loadConfig: %w", err)
	}
	return c, nil
}

// Validate checks a Config for errors
func (c Config) Validate() error {
	if err := c.ReplayConfig().Validate(); err != nil {
		return fmt.Errorf("validate: replay: %w", err)
	}
	if c.ReplayThreshold >= c.ReplayCapacity {
		return fmt.Errorf("validate: replay threshold (%v) must be below "+
			"the replay capacity (%v)", c.ReplayThreshold, c.ReplayCapacity)
	}
	if c.BatchSize < 1 {
		return fmt.Errorf("validate: batch size must be >= 1, have %v",
			c.BatchSize)
	}
	if _, err := c.Schedule(); err != nil {
		return fmt.Errorf("validate: %w", err)
	}
	if c.Gamma < 0 || c.Gamma > 1 {
		return fmt.Errorf("validate: gamma must be in [0, 1], have %v",
			c.Gamma)
	}
	if c.EvalEpsilon < 0 || c.EvalEpsilon > 1 {
		return fmt.Errorf("validate: evaluation epsilon must be in [0, 1], "+
			"have %v", c.EvalEpsilon)
	}
	if c.EvalGames < 1 {
		return fmt.Errorf("validate: evaluation games must be >= 1, have %v",
			c.EvalGames)
	}
	if c.WindowDepth < 1 || c.FrameSize < 1 {
		return fmt.Errorf("validate: window depth and frame size must be "+
			">= 1, have %v and %v", c.WindowDepth, c.FrameSize)
	}
	if c.MaxIterations < 0 {
		return fmt.Errorf("validate: max iterations must be >= 0, have %v",
			c.MaxIterations)
	}
	if err := c.ReporterConfig().Validate(); err != nil {
		return fmt.Errorf("validate: %w", err)
	}
	if err := c.environmentConfig().Validate(); err != nil {
		return fmt.Errorf("validate: %w", err)
	}

	agentConf, err := c.AgentConfig()
	if err != nil {
		return fmt.Errorf("validate: %w", err)
	}
	if err := agentConf.Validate(); err != nil {
		return fmt.Errorf("validate: agent: %w", err)
	}
	if q, ok := agentConf.(qlearning.Config); ok && q.BatchSize != c.BatchSize {
		return fmt.Errorf("validate: agent batch size (%v) differs from "+
			"the experiment batch size (%v)", q.BatchSize, c.BatchSize)
	}
	return nil
}

// Features returns the number of features in a state window
func (c Config) Features() int {
	return c.WindowDepth * c.FrameSize * c.FrameSize
}

// Title returns the name of the configured environment, which heads the
// training log
func (c Config) Title() string {
	if c.EnvConf.Name == envconfig.Gym {
		return c.EnvConf.GymID
	}
	return string(c.EnvConf.Name)
}

// ReplayConfig returns the configuration of the replay buffer
func (c Config) ReplayConfig() expreplay.Config {
	return expreplay.Config{
		SampleMethod:      expreplay.Uniform,
		MaxReplayCapacity: c.ReplayCapacity,
		MinReplayCapacity: c.ReplayThreshold,
	}
}

// ReporterConfig returns the configuration of the epoch reporter
func (c Config) ReporterConfig() epoch.ReporterConfig {
	return epoch.ReporterConfig{
		StepsPerEpoch: c.StepsPerEpoch,
		Smoothing:     c.Smoothing,
		Title:         c.Title(),
	}
}

// Schedule returns the exploration schedule used in training
func (c Config) Schedule() (policy.Schedule, error) {
	return policy.NewLinearDecay(c.ExploreHorizon, c.ExploreFloor)
}

// EvalSchedule returns the exploration schedule used in evaluation
func (c Config) EvalSchedule() policy.Schedule {
	return policy.Constant(c.EvalEpsilon)
}

func (c Config) environmentConfig() envconfig.Config {
	e := c.EnvConf
	e.FrameSkip = c.FrameSkip
	return e
}

// CreateEnvironment creates the configured environment
func (c Config) CreateEnvironment() (env.Environment, error) {
	e, err := c.environmentConfig().Create(c.Seed)
	if err != nil {
		return nil, fmt.Errorf("createEnvironment: %w", err)
	}
	return e, nil
}

// AgentConfig returns the configuration of the agent to train
func (c Config) AgentConfig() (agent.Config, error) {
	if c.AgentConf != nil && c.AgentConf.Config != nil {
		return c.AgentConf.Config, nil
	}

	q, err := qlearning.DefaultConfig(c.Gamma, c.BatchSize)
	if err != nil {
		return nil, fmt.Errorf("agentConfig: %w", err)
	}
	return q, nil
}

// CreateAgent creates the configured agent for an environment with
// numActions actions
func (c Config) CreateAgent(numActions int) (agent.Agent, error) {
	conf, err := c.AgentConfig()
	if err != nil {
		return nil, fmt.Errorf("createAgent: %w", err)
	}

	a, err := conf.CreateAgent(c.Features(), numActions, c.Seed)
	if err != nil {
		return nil, fmt.Errorf("createAgent: %w", err)
	}
	return a, nil
}
