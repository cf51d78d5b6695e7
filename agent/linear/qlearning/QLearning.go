// Package qlearning implements linear Q-learning trained on batches of
// replayed transitions, with a periodically copied target weight matrix
package qlearning

import (
	"bytes"
	"encoding/gob"
	"fmt"
	"os"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	G "gorgonia.org/gorgonia"
	"gorgonia.org/tensor"

	"github.com/samuelfneumann/fastdqn/expreplay"
	"github.com/samuelfneumann/fastdqn/solver"
	"github.com/samuelfneumann/fastdqn/window"
)

// QLearning implements the Q-learning algorithm with a linear
// action-value function, Q(s, a) = Σᵢ W[i, a] xᵢ(s), over the flattened
// state window x(s).
//
// Weights are learned by a Gorgonia graph which minimizes the mean
// squared TD error over a batch:
//
//		(r + γ c max[Q_target(s', a')] - Q(s, a))²
//
// where c is 0 if s' is terminal and 1 otherwise. Action values for
// action selection and the update target are computed with Gonum
// directly on the backing data of the learned weights.
type QLearning struct {
	features   int
	numActions int
	batchSize  int

	gamma                float64
	targetUpdateInterval int
	iteration            int

	g       *G.ExprGraph
	weights *G.Node // (features, numActions)
	states  *G.Node // (batch, features)
	actions *G.Node // (batch, numActions), one-hot
	targets *G.Node // (batch)
	vm      G.VM
	solver  *solver.Solver

	targetWeights *mat.Dense
}

// New creates and returns a new QLearning agent for states with the
// given number of features and the given number of actions
func New(c Config, features, numActions int) (*QLearning, error) {
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("new: %w", err)
	}
	if features < 1 || numActions < 1 {
		return nil, fmt.Errorf("new: need at least one feature and one "+
			"action, have %v features and %v actions", features, numActions)
	}

	g := G.NewGraph()
	weights := G.NewMatrix(g, tensor.Float64,
		G.WithShape(features, numActions), G.WithName("weights"),
		G.WithInit(c.InitWFn.InitWFn()))

	states := G.NewMatrix(g, tensor.Float64,
		G.WithShape(c.BatchSize, features), G.WithName("states"))
	actions := G.NewMatrix(g, tensor.Float64,
		G.WithShape(c.BatchSize, numActions), G.WithName("actionSelected"))
	targets := G.NewVector(g, tensor.Float64, G.WithShape(c.BatchSize),
		G.WithName("targets"))

	// Action values of the actions taken in each state
	actionValues := G.Must(G.Mul(states, weights))
	selected := G.Must(G.HadamardProd(actionValues, actions))
	selected = G.Must(G.Sum(selected, 1))

	// Mean squared TD error
	losses := G.Must(G.Sub(targets, selected))
	losses = G.Must(G.Square(losses))
	cost := G.Must(G.Mean(losses))

	if _, err := G.Grad(cost, weights); err != nil {
		return nil, fmt.Errorf("new: could not compute gradient: %w", err)
	}

	q := &QLearning{
		features:             features,
		numActions:           numActions,
		batchSize:            c.BatchSize,
		gamma:                c.Gamma,
		targetUpdateInterval: c.TargetUpdateInterval,

		g:       g,
		weights: weights,
		states:  states,
		actions: actions,
		targets: targets,
		vm:      G.NewTapeMachine(g, G.BindDualValues(weights)),
		solver:  c.Solver,
	}
	q.targetWeights = mat.DenseCopyOf(q.weightMatrix())

	return q, nil
}

// weightMatrix returns a (features, numActions) view of the learned
// weights
func (q *QLearning) weightMatrix() *mat.Dense {
	return mat.NewDense(q.features, q.numActions,
		q.weights.Value().Data().([]float64))
}

// Iteration returns the number of updates performed so far
func (q *QLearning) Iteration() int {
	return q.iteration
}

// NumActions returns the number of actions the agent chooses between
func (q *QLearning) NumActions() int {
	return q.numActions
}

// ActionValues returns the estimated value of each action in state s
func (q *QLearning) ActionValues(s window.State) (*mat.VecDense, error) {
	if s.IsTerminal() {
		return nil, fmt.Errorf("actionValues: terminal state has no " +
			"action values")
	}
	if n := s.NumFeatures(); n != q.features {
		return nil, fmt.Errorf("actionValues: state has %v features, "+
			"want %v", n, q.features)
	}

	x := mat.NewVecDense(q.features, s.Features())
	values := mat.NewVecDense(q.numActions, nil)
	values.MulVec(q.weightMatrix().T(), x)
	return values, nil
}

// BestAction returns the action of highest estimated value in state s.
// Ties are broken in favour of the lowest action index.
func (q *QLearning) BestAction(s window.State) (int, error) {
	values, err := q.ActionValues(s)
	if err != nil {
		return 0, fmt.Errorf("bestAction: %w", err)
	}
	return floats.MaxIdx(values.RawVector().Data), nil
}

// Learn performs one update on a batch of transitions
func (q *QLearning) Learn(b *expreplay.Batch) error {
	if b.Size != q.batchSize {
		return fmt.Errorf("learn: batch has %v transitions, want %v",
			b.Size, q.batchSize)
	}
	if b.Features != q.features || b.NumActions != q.numActions {
		return fmt.Errorf("learn: batch has %v features and %v actions, "+
			"want %v and %v", b.Features, b.NumActions, q.features,
			q.numActions)
	}

	// Compute the update target: r + γ * c * max[Q_target(s', a')]
	nextStates := mat.NewDense(b.Size, b.Features,
		b.NextStates.Data().([]float64))
	nextValues := mat.NewDense(b.Size, q.numActions, nil)
	nextValues.Mul(nextStates, q.targetWeights)

	rewards := b.Rewards.Data().([]float64)
	continues := b.Continues.Data().([]float64)
	targets := make([]float64, b.Size)
	for i := range targets {
		targets[i] = rewards[i] +
			q.gamma*continues[i]*floats.Max(nextValues.RawRowView(i))
	}

	if err := G.Let(q.states, b.States); err != nil {
		return fmt.Errorf("learn: could not set states: %w", err)
	}
	if err := G.Let(q.actions, b.Actions); err != nil {
		return fmt.Errorf("learn: could not set actions: %w", err)
	}
	targetTensor := tensor.New(tensor.WithShape(b.Size),
		tensor.WithBacking(targets))
	if err := G.Let(q.targets, targetTensor); err != nil {
		return fmt.Errorf("learn: could not set targets: %w", err)
	}

	defer q.vm.Reset()
	if err := q.vm.RunAll(); err != nil {
		return fmt.Errorf("learn: %w", err)
	}
	if err := q.solver.Step(G.NodesToValueGrads(G.Nodes{q.weights})); err != nil {
		return fmt.Errorf("learn: could not step solver: %w", err)
	}
	q.iteration++

	if q.iteration%q.targetUpdateInterval == 0 {
		q.targetWeights.Copy(q.weightMatrix())
	}
	return nil
}

// snapshot is the persisted form of a QLearning agent
type snapshot struct {
	Features   int
	NumActions int
	Iteration  int
	Weights    []float64
	Target     []float64
}

// Save gob-encodes the learned weights to a file
func (q *QLearning) Save(path string) error {
	s := snapshot{
		Features:   q.features,
		NumActions: q.numActions,
		Iteration:  q.iteration,
		Weights:    q.weights.Value().Data().([]float64),
		Target:     q.targetWeights.RawMatrix().Data,
	}

	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(s); err != nil {
		return fmt.Errorf("save: could not encode weights: %w", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("save: %w", err)
	}
	return nil
}

// Load restores weights saved with Save. The saved weights must have
// been learned for the same number of features and actions.
func (q *QLearning) Load(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("load: %w", err)
	}
	defer f.Close()

	var s snapshot
	if err := gob.NewDecoder(f).Decode(&s); err != nil {
		return fmt.Errorf("load: could not decode weights: %w", err)
	}
	if s.Features != q.features || s.NumActions != q.numActions {
		return fmt.Errorf("load: saved weights have %v features and %v "+
			"actions, want %v and %v", s.Features, s.NumActions,
			q.features, q.numActions)
	}
	if len(s.Weights) != q.features*q.numActions ||
		len(s.Target) != len(s.Weights) {
		return fmt.Errorf("load: corrupt weights in %v", path)
	}

	copy(q.weights.Value().Data().([]float64), s.Weights)
	copy(q.targetWeights.RawMatrix().Data, s.Target)
	q.iteration = s.Iteration
	return nil
}

// Close releases the resources held by the Gorgonia VM
func (q *QLearning) Close() error {
	return q.vm.Close()
}
