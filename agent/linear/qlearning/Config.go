package qlearning

import (
	"fmt"

	"github.com/samuelfneumann/fastdqn/agent"
	"github.com/samuelfneumann/fastdqn/initwfn"
	"github.com/samuelfneumann/fastdqn/solver"
)

func init() {
	// Register Config type so that it can be typed using
	// agent.TypedConfig to help with serialization/deserialization.
	agent.Register(agent.QLearningLinear, Config{})
}

// Config represents a configuration for the QLearning agent
type Config struct {
	Gamma                float64
	BatchSize            int
	TargetUpdateInterval int // Updates between target weight copies

	Solver  *solver.Solver
	InitWFn *initwfn.InitWFn
}

// DefaultConfig returns the Config used when no agent configuration
// file is given
func DefaultConfig(gamma float64, batchSize int) (Config, error) {
	s, err := solver.NewDefaultRMSProp(2.5e-4, batchSize)
	if err != nil {
		return Config{}, fmt.Errorf("defaultConfig: %w", err)
	}
	init, err := initwfn.NewZeroes()
	if err != nil {
		return Config{}, fmt.Errorf("defaultConfig: %w", err)
	}

	return Config{
		Gamma:                gamma,
		BatchSize:            batchSize,
		TargetUpdateInterval: 1000,
		Solver:               s,
		InitWFn:              init,
	}, nil
}

// CreateAgent creates the agent from the Config
func (c Config) CreateAgent(features, numActions int,
	seed uint64) (agent.Agent, error) {
	return New(c, features, numActions)
}

// Validate ensures that the Config is valid
func (c Config) Validate() error {
	if c.Gamma < 0 || c.Gamma > 1 {
		return fmt.Errorf("validate: gamma must be in [0, 1], have %v",
			c.Gamma)
	}
	if c.BatchSize < 1 {
		return fmt.Errorf("validate: batch size must be >= 1, have %v",
			c.BatchSize)
	}
	if c.TargetUpdateInterval < 1 {
		return fmt.Errorf("validate: target update interval must be >= 1, "+
			"have %v", c.TargetUpdateInterval)
	}
	if c.Solver == nil {
		return fmt.Errorf("validate: no solver")
	}
	if c.InitWFn == nil {
		return fmt.Errorf("validate: no weight initializer")
	}
	return nil
}

// Type returns the type of the agent constructed by the Config
func (c Config) Type() agent.Type {
	return agent.QLearningLinear
}
