package policy

import (
	"fmt"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/samuelfneumann/fastdqn/window"
)

// Greedy selects the action of highest estimated value in a state
type Greedy interface {
	BestAction(s window.State) (int, error)
}

// EGreedy implements an ε-greedy action selector. With probability ε
// an action is chosen uniformly at random from the legal actions,
// otherwise the greedy action is taken.
type EGreedy struct {
	greedy     Greedy
	numActions int

	explore distuv.Bernoulli
	random  distuv.Categorical
}

// NewEGreedy returns a new EGreedy selector over numActions actions
func NewEGreedy(greedy Greedy, numActions int, seed uint64) (*EGreedy,
	error) {
	if numActions < 1 {
		return nil, fmt.Errorf("newEGreedy: numActions must be >= 1, have %v",
			numActions)
	}
	if greedy == nil {
		return nil, fmt.Errorf("newEGreedy: nil greedy policy")
	}

	source := rand.NewSource(seed)

	uniform := make([]float64, numActions)
	for i := range uniform {
		uniform[i] = 1.0
	}

	return &EGreedy{
		greedy:     greedy,
		numActions: numActions,
		explore:    distuv.Bernoulli{P: 0, Src: source},
		random:     distuv.NewCategorical(uniform, source),
	}, nil
}

// NumActions returns the number of legal actions
func (e *EGreedy) NumActions() int {
	return e.numActions
}

// SelectAction selects an action in state s, exploring with
// probability epsilon
func (e *EGreedy) SelectAction(s window.State, epsilon float64) (int,
	error) {
	if epsilon < 0 || epsilon > 1 {
		return 0, fmt.Errorf("selectAction: epsilon must be in [0, 1], "+
			"have %v", epsilon)
	}

	e.explore.P = epsilon
	if e.explore.Rand() == 1.0 {
		return int(e.random.Rand()), nil
	}

	action, err := e.greedy.BestAction(s)
	if err != nil {
		return 0, fmt.Errorf("selectAction: %w", err)
	}
	if action < 0 || action >= e.numActions {
		return 0, fmt.Errorf("selectAction: greedy action %v outside "+
			"[0, %v)", action, e.numActions)
	}
	return action, nil
}
