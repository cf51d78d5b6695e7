package checkpointer

import "fmt"

// nStep implements checkpointing every N learning updates
type nStep struct {
	interval int
	next     int
	object   Persister

	// filename returns the string filename of the file to save the object
	// in.
	//
	// If each saved object should be in a separate file with each file
	// having an incremented number as a suffix (e.g. file1.bin,
	// file2.bin, ..., fileK.bin), then use FilenameEnumerator.
	//
	// If each saved object should be in a separate file, but the
	// filename does not matter, use FileTimer. For example:
	//
	// n := NewNStep(10, object, FileTimer("filename", ".bin"))
	filename func() string
}

// NewNStep returns a checkpointer that checkpoints every n updates.
func NewNStep(n int, object Persister,
	filename func() string) (Checkpointer, error) {
	if n < 1 {
		return nil, fmt.Errorf("newNStep: interval must be >= 1, have %v", n)
	}
	if object == nil || filename == nil {
		return nil, fmt.Errorf("newNStep: nil object or filename function")
	}

	return &nStep{
		interval: n,
		next:     n,
		object:   object,
		filename: filename,
	}, nil
}

// Checkpoint saves the tracked object once iteration has reached the
// next multiple of the interval. Checkpoints are only taken between
// episodes, so several intervals may have passed since the last call;
// only one checkpoint is saved in that case.
func (n *nStep) Checkpoint(iteration int) error {
	if iteration < n.next {
		return nil
	}
	for n.next <= iteration {
		n.next += n.interval
	}

	if err := n.object.Save(n.filename()); err != nil {
		return fmt.Errorf("checkpoint: %w", err)
	}
	return nil
}
