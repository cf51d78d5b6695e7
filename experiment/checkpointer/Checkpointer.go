// Package checkpointer implements Checkpointers, which periodically save
// the learned weights of an agent during training
package checkpointer

// Persister is an object that can be saved to a file
type Persister interface {
	Save(path string) error
}

// Checkpointer checkpoints objects based on the number of learning
// updates performed so far
type Checkpointer interface {
	Checkpoint(iteration int) error
}
