//go:build gym

// Package gym provides access to OpenAI Gym's Atari environments as
// emulators with RGB screens.
//
// This is made possible through the Go bindings for OpenAI Gym,
// found at https://github.com/samuelfneumann/GoGym. Gym environments
// must be played with the RGB observation type, for example
// "PongNoFrameskip-v4", so that each raw step advances one frame.
//
// GoGym embeds a Python interpreter through cgo, so this package is
// only built with the gym build tag. Without it, New always fails.
package gym

import (
	"fmt"
	"math"

	"github.com/samuelfneumann/gogym"
	"gonum.org/v1/gonum/mat"

	"github.com/samuelfneumann/fastdqn/frame"
)

// Gym implements environment.Emulator for a GoGym environment
type Gym struct {
	gogym.Environment

	width, height int
	numActions    int
	obs           *mat.VecDense
	done          bool
}

// New returns a new Gym emulator for the environment with the given
// name, which must be a legal name from the OpenAI Gym suite with a
// discrete action space and RGB screens of the given size.
func New(name string, width, height int, seed uint64) (*Gym, error) {
	goGymEnv, err := gogym.Make(name)
	if err != nil {
		return nil, fmt.Errorf("new: could not create environment: %w", err)
	}

	space, ok := goGymEnv.ActionSpace().(*gogym.DiscreteSpace)
	if !ok {
		goGymEnv.Close()
		return nil, fmt.Errorf("new: environment %v does not have "+
			"discrete actions", name)
	}
	numActions := int(space.High()[0].AtVec(0)) + 1

	goGymEnv.Seed(int(seed))
	g := &Gym{
		Environment: goGymEnv,
		width:       width,
		height:      height,
		numActions:  numActions,
	}

	if err := g.Reset(); err != nil {
		goGymEnv.Close()
		return nil, fmt.Errorf("new: %w", err)
	}
	return g, nil
}

// Step takes a single environmental step
func (g *Gym) Step(action int) (float64, error) {
	if action < 0 || action >= g.numActions {
		return 0, fmt.Errorf("step: illegal action %v", action)
	}

	a := mat.NewVecDense(1, []float64{float64(action)})
	obs, reward, done, err := g.Environment.Step(a)
	if err != nil {
		return 0, fmt.Errorf("step: could not step GoGym environment: %w",
			err)
	}

	g.obs = obs
	g.done = done
	return reward, nil
}

// GameOver returns whether the current episode has ended
func (g *Gym) GameOver() bool {
	return g.done
}

// NumActions returns the number of legal actions
func (g *Gym) NumActions() int {
	return g.numActions
}

// Reset resets the environment to some starting state
func (g *Gym) Reset() error {
	obs, err := g.Environment.Reset()
	if err != nil {
		return fmt.Errorf("reset: could not reset environment: %w", err)
	}

	g.obs = obs
	g.done = false
	return nil
}

// Screen returns the last observation as an RGB frame
func (g *Gym) Screen() (frame.Raw, error) {
	data := g.obs.RawVector().Data
	want := g.width * g.height * 3
	if len(data) != want {
		return frame.Raw{}, &frame.InvalidFrameError{
			Width:  g.width,
			Height: g.height,
			Len:    len(data),
			Reason: fmt.Sprintf("observation is not an RGB screen of %v "+
				"samples", want),
		}
	}

	pix := make([]uint8, len(data))
	for i, v := range data {
		pix[i] = uint8(math.Max(0, math.Min(255, math.Round(v))))
	}
	return frame.NewRGB(g.width, g.height, pix), nil
}

// Close performs resource cleanup after the environment is no longer
// needed
func (g *Gym) Close() error {
	g.Environment.Close()
	return nil
}

// Finalize releases the Python interpreter used by GoGym. No Gym
// environment may be used afterwards.
func Finalize() {
	gogym.Close()
}
