package expreplay

import (
	"fmt"

	"golang.org/x/exp/rand"
)

// SelectorType determines how data is sampled from a buffer
type SelectorType string

const (
	Uniform SelectorType = "Uniform"
)

// Selector implements functionality for choosing how data should be
// sampled from an experience replay buffer
type Selector interface {
	// choose selects k indices in [0, size) at which data should be
	// sampled from the experience replay buffer
	choose(k, size int) []int
}

// CreateSelector returns a Selector of type t. The zero SelectorType
// creates a uniform Selector.
func CreateSelector(t SelectorType, seed uint64) (Selector, error) {
	switch t {
	case Uniform, "":
		return NewUniformSelector(seed), nil
	default:
		return nil, fmt.Errorf("createSelector: unknown selector type %q", t)
	}
}

// uniformSelector is a Selector which selects data from an experience
// replay buffer uniformly randomly, with replacement
type uniformSelector struct {
	rng *rand.Rand
}

// NewUniformSelector returns a new Selector which selects data uniformly
// randomly from an experience replay buffer
func NewUniformSelector(seed uint64) Selector {
	source := rand.NewSource(seed)
	rng := rand.New(source)

	return &uniformSelector{rng: rng}
}

// choose selects a number of indices at which to draw data from the
// buffer
func (u *uniformSelector) choose(k, size int) []int {
	selected := make([]int, k)
	for i := range selected {
		selected[i] = u.rng.Intn(size)
	}
	return selected
}
