// Package agent defines the value-function collaborator that the
// experience-collection loop acts with and trains
package agent

import (
	"github.com/samuelfneumann/fastdqn/expreplay"
	"github.com/samuelfneumann/fastdqn/window"
)

// Agent determines the implementation details of an agent or algorithm
//
// An Agent is composed of a Greedy policy, which chooses the best action
// in a state, and a Learner, which updates the weights the policy uses
// from batches of replayed transitions. The Greedy policy and the Learner
// should share weights so that any changes the Learner makes are
// reflected in the actions the policy chooses.
type Agent interface {
	Greedy
	Learner
	Persister
}

// Greedy selects the action of highest estimated value in a state
type Greedy interface {
	BestAction(s window.State) (int, error)
}

// Learner implements a learning algorithm that defines how weights are
// updated.
type Learner interface {
	// Learn performs a single update on a batch of transitions
	Learn(b *expreplay.Batch) error

	// Iteration returns the number of updates performed so far. It
	// advances only when Learn succeeds.
	Iteration() int
}

// Persister is an agent whose learned weights can be saved to and
// restored from a file
type Persister interface {
	Save(path string) error
	Load(path string) error
}

// Closer is an agent that must be closed after it is done learning
type Closer interface {
	Agent
	Close() error
}
