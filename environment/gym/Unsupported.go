//go:build !gym

package gym

import (
	"errors"

	"github.com/samuelfneumann/fastdqn/frame"
)

// ErrUnsupported is returned when creating a Gym emulator in a binary
// built without the gym build tag
var ErrUnsupported = errors.New("gym: built without the gym build tag")

// Gym is unavailable without the gym build tag
type Gym struct{}

// New always fails without the gym build tag
func New(name string, width, height int, seed uint64) (*Gym, error) {
	return nil, ErrUnsupported
}

func (g *Gym) Step(int) (float64, error) { return 0, ErrUnsupported }
func (g *Gym) GameOver() bool { return true }
func (g *Gym) NumActions() int { return 0 }
func (g *Gym) Reset() error { return ErrUnsupported }
func (g *Gym) Screen() (frame.Raw, error) { return frame.Raw{}, ErrUnsupported }
func (g *Gym) Close() error { return nil }

// Finalize is a no-op without the gym build tag
func Finalize() {}
