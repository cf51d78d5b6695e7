package expreplay

import (
	"fmt"

	"github.com/samuelfneumann/fastdqn/timestep"
	"gorgonia.org/tensor"
)

// Batch is a sampled batch of transitions laid out as dense tensors,
// one row per transition.
//
// Actions are one-hot encoded. Rows of NextStates for terminal
// transitions are zero, and the matching entry of Continues is 0,
// otherwise it is 1.
type Batch struct {
	States     *tensor.Dense // (Size, Features)
	Actions    *tensor.Dense // (Size, NumActions)
	Rewards    *tensor.Dense // (Size)
	NextStates *tensor.Dense // (Size, Features)
	Continues  *tensor.Dense // (Size)

	Size       int
	Features   int
	NumActions int
}

// NewBatch assembles transitions into a Batch. Every transition must
// start from a state with the same number of features, and every action
// must be in [0, numActions).
func NewBatch(transitions []timestep.Transition, numActions int) (*Batch,
	error) {
	if len(transitions) == 0 {
		return nil, fmt.Errorf("newBatch: no transitions")
	}
	if numActions < 1 {
		return nil, fmt.Errorf("newBatch: numActions must be >= 1, have %v",
			numActions)
	}

	size := len(transitions)
	features := transitions[0].State.NumFeatures()
	if features == 0 {
		return nil, fmt.Errorf("newBatch: transition 0 has no features")
	}

	states := make([]float64, 0, size*features)
	nextStates := make([]float64, size*features)
	actions := make([]float64, size*numActions)
	rewards := make([]float64, size)
	continues := make([]float64, size)

	for i, t := range transitions {
		if n := t.State.NumFeatures(); n != features {
			return nil, fmt.Errorf("newBatch: transition %v has %v features, "+
				"want %v", i, n, features)
		}
		if t.Action < 0 || t.Action >= numActions {
			return nil, fmt.Errorf("newBatch: transition %v has action %v "+
				"outside [0, %v)", i, t.Action, numActions)
		}

		states = t.State.AppendFeatures(states)
		actions[i*numActions+t.Action] = 1.0
		rewards[i] = t.Reward

		if t.Terminal() {
			continue
		}
		if n := t.NextState.NumFeatures(); n != features {
			return nil, fmt.Errorf("newBatch: transition %v has %v next "+
				"state features, want %v", i, n, features)
		}
		t.NextState.AppendFeatures(nextStates[i*features : i*features])
		continues[i] = 1.0
	}

	return &Batch{
		States: tensor.New(tensor.WithShape(size, features),
			tensor.WithBacking(states)),
		Actions: tensor.New(tensor.WithShape(size, numActions),
			tensor.WithBacking(actions)),
		Rewards: tensor.New(tensor.WithShape(size),
			tensor.WithBacking(rewards)),
		NextStates: tensor.New(tensor.WithShape(size, features),
			tensor.WithBacking(nextStates)),
		Continues: tensor.New(tensor.WithShape(size),
			tensor.WithBacking(continues)),

		Size:       size,
		Features:   features,
		NumActions: numActions,
	}, nil
}
