package expreplay

import (
	"fmt"
	"sync"

	"github.com/samuelfneumann/fastdqn/timestep"
)

// defaultCache implements a concrete ExperienceReplayer as a ring over
// a preallocated slice of transitions. Once full, each Add overwrites
// the oldest transition.
type defaultCache struct {
	mu              sync.Mutex // Guards the following
	cache           []timestep.Transition
	currentInUsePos int
	isFull          bool

	sampler Selector

	minCapacity int
	maxCapacity int
}

// newDefaultCache returns a new defaultCache. The minCapacity
// parameter determines the minimum number of samples that should be in
// the buffer before sampling is allowed. The maxCapacity parameter
// determines the maximum number of samples allowed in the buffer at
// any given time.
func newDefaultCache(sampler Selector, minCapacity,
	maxCapacity int) *defaultCache {
	return &defaultCache{
		cache:       make([]timestep.Transition, maxCapacity),
		sampler:     sampler,
		minCapacity: minCapacity,
		maxCapacity: maxCapacity,
	}
}

// String returns the string representation of the defaultCache
func (d *defaultCache) String() string {
	d.mu.Lock()
	defer d.mu.Unlock()

	return fmt.Sprintf("defaultCache | Len: %v  |  MinCapacity: %v  |  "+
		"MaxCapacity: %v", d.len(), d.minCapacity, d.maxCapacity)
}

// len returns the number of stored transitions, d.mu must be held
func (d *defaultCache) len() int {
	if d.isFull {
		return d.maxCapacity
	}
	return d.currentInUsePos
}

// Len returns the current number of transitions in the buffer
func (d *defaultCache) Len() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.len()
}

// MaxCapacity returns the maximum number of elements that are allowed
// in the defaultCache
func (d *defaultCache) MaxCapacity() int {
	return d.maxCapacity
}

// MinCapacity returns the minimum number of elements required in the
// defaultCache before sampling is allowed
func (d *defaultCache) MinCapacity() int {
	return d.minCapacity
}

// Add adds a transition to the defaultCache
func (d *defaultCache) Add(t timestep.Transition) error {
	if t.State.IsTerminal() {
		return &ExpReplayError{Op: "add", Err: errTerminalState}
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	d.cache[d.currentInUsePos] = t
	d.currentInUsePos = (d.currentInUsePos + 1) % d.maxCapacity
	if d.currentInUsePos == 0 {
		d.isFull = true
	}
	return nil
}

// Sample samples and returns a batch of k transitions from the replay
// buffer. Since sampling is done with replacement, k may exceed the
// number of stored transitions.
func (d *defaultCache) Sample(k int) ([]timestep.Transition, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	size := d.len()
	if size == 0 {
		return nil, &ExpReplayError{Op: "sample", Err: errEmptyInsufficient}
	}
	if size < d.minCapacity {
		return nil, &ExpReplayError{Op: "sample", Err: ErrInsufficientSamples}
	}
	if k < 1 {
		return nil, &ExpReplayError{
			Op:  "sample",
			Err: fmt.Errorf("batch size must be >= 1, have %v", k),
		}
	}

	indices := d.sampler.choose(k, size)
	batch := make([]timestep.Transition, k)
	for i, index := range indices {
		batch[i] = d.cache[index]
	}
	return batch, nil
}

// Ordered returns the transitions currently stored in the buffer,
// oldest first
func Ordered(e ExperienceReplayer) []timestep.Transition {
	d, ok := e.(*defaultCache)
	if !ok {
		return nil
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.isFull {
		out := make([]timestep.Transition, d.currentInUsePos)
		copy(out, d.cache[:d.currentInUsePos])
		return out
	}

	out := make([]timestep.Transition, 0, d.maxCapacity)
	out = append(out, d.cache[d.currentInUsePos:]...)
	out = append(out, d.cache[:d.currentInUsePos]...)
	return out
}
