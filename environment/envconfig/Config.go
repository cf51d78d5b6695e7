// Package envconfig provides JSON serializable configurations of the
// environments that the experience-collection loop can play
package envconfig

import (
	"fmt"

	env "github.com/samuelfneumann/fastdqn/environment"
	"github.com/samuelfneumann/fastdqn/environment/catch"
	"github.com/samuelfneumann/fastdqn/environment/gym"
	"github.com/samuelfneumann/fastdqn/environment/wrappers"
)

// EnvName stores the name of environments that can be configured with
// this package
type EnvName string

// Environments available for configuration
const (
	Catch EnvName = "Catch"
	Gym   EnvName = "Gym"
)

// Config implements a specific configuration of a specific environment
type Config struct {
	Name      EnvName
	GymID     string // Gym environment name, used only by Gym
	FrameSkip int

	// Raw screen dimensions, used only by Gym
	Width  int
	Height int

	Balls            int // Balls per episode, used only by Catch
	MaxEpisodeFrames int // 0 if episodes are not cut off
}

// Default returns the default configuration of the named environment
func Default(name EnvName) Config {
	c := Config{
		Name:      name,
		FrameSkip: wrappers.DefaultSkip,
	}

	switch name {
	case Catch:
		c.Balls = catch.DefaultBalls
	case Gym:
		c.GymID = "PongNoFrameskip-v4"
		c.Width = gym.DefaultWidth
		c.Height = gym.DefaultHeight
	}
	return c
}

// Validate checks a Config for errors
func (c Config) Validate() error {
	if c.FrameSkip < 1 {
		return fmt.Errorf("validate: frame skip must be >= 1, have %v",
			c.FrameSkip)
	}
	if c.MaxEpisodeFrames < 0 {
		return fmt.Errorf("validate: max episode frames must be >= 0, "+
			"have %v", c.MaxEpisodeFrames)
	}

	switch c.Name {
	case Catch:
		if c.Balls < 1 {
			return fmt.Errorf("validate: Catch needs at least one ball, "+
				"have %v", c.Balls)
		}
	case Gym:
		if c.GymID == "" {
			return fmt.Errorf("validate: no Gym environment name")
		}
		if c.Width < 1 || c.Height < 1 {
			return fmt.Errorf("validate: invalid screen size %vx%v",
				c.Width, c.Height)
		}
	default:
		return fmt.Errorf("validate: no such environment %q", c.Name)
	}
	return nil
}

// Create returns the environment described by the Config, which repeats
// each action for FrameSkip raw frames
func (c Config) Create(seed uint64) (env.Environment, error) {
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("create: %w", err)
	}

	var emulator env.Emulator
	switch c.Name {
	case Catch:
		game, err := catch.New(c.Balls, seed)
		if err != nil {
			return nil, fmt.Errorf("create: %w", err)
		}
		emulator = game

	case Gym:
		g, err := gym.New(c.GymID, c.Width, c.Height, seed)
		if err != nil {
			return nil, fmt.Errorf("create: %w", err)
		}
		emulator = g
	}

	if c.MaxEpisodeFrames > 0 {
		limited, err := wrappers.NewStepLimit(emulator, c.MaxEpisodeFrames)
		if err != nil {
			return nil, fmt.Errorf("create: %w", err)
		}
		emulator = limited
	}

	e, err := wrappers.NewFrameSkip(emulator, c.FrameSkip)
	if err != nil {
		return nil, fmt.Errorf("create: %w", err)
	}
	return e, nil
}
