// Package expreplay implements a bounded experience replay buffer of
// transitions, sampled uniformly at random with replacement
package expreplay

import (
	"fmt"

	"github.com/samuelfneumann/fastdqn/timestep"
)

// Config implements a specific configuration of an ExperienceReplayer
type Config struct {
	SampleMethod      SelectorType
	MaxReplayCapacity int
	MinReplayCapacity int
}

// Validate checks a Config for errors
func (c Config) Validate() error {
	if c.MaxReplayCapacity < 1 {
		return fmt.Errorf("validate: max capacity must be >= 1, have %v",
			c.MaxReplayCapacity)
	}
	if c.MinReplayCapacity < 0 {
		return fmt.Errorf("validate: min capacity must be >= 0, have %v",
			c.MinReplayCapacity)
	}
	if c.MinReplayCapacity > c.MaxReplayCapacity {
		return fmt.Errorf("validate: min capacity (%v) > max capacity (%v)",
			c.MinReplayCapacity, c.MaxReplayCapacity)
	}
	return nil
}

// Create creates and returns the ExperienceReplayer with the specified
// Config.
func (c Config) Create(seed uint64) (ExperienceReplayer, error) {
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("create: %w", err)
	}

	sampler, err := CreateSelector(c.SampleMethod, seed)
	if err != nil {
		return nil, fmt.Errorf("create: %w", err)
	}

	return New(sampler, c.MinReplayCapacity, c.MaxReplayCapacity)
}

// ExperienceReplayer implements an experience replay buffer
type ExperienceReplayer interface {
	// Add adds a transition to the buffer, evicting the oldest
	// transition if the buffer is full
	Add(t timestep.Transition) error

	// Sample samples a batch of k transitions from the buffer
	Sample(k int) ([]timestep.Transition, error)

	// Len returns the current number of transitions in the buffer
	Len() int

	// MaxCapacity returns the maximum allowable transitions in the
	// buffer
	MaxCapacity() int

	// MinCapacity returns the number of transitions required to be in
	// the buffer before the buffer can be sampled
	MinCapacity() int
}

// New creates and returns a new ExperienceReplayer. The sampler
// parameter determines how data is sampled from the buffer.
func New(sampler Selector, minCapacity,
	maxCapacity int) (ExperienceReplayer, error) {
	if minCapacity < 0 {
		return nil, fmt.Errorf("new: minCapacity must be >= 0")
	}
	if maxCapacity < 1 {
		return nil, fmt.Errorf("new: maxCapacity must be >= 1")
	}
	if sampler == nil {
		return nil, fmt.Errorf("new: nil sampler")
	}

	return newDefaultCache(sampler, minCapacity, maxCapacity), nil
}
