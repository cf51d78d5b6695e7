package expreplay

import (
	"testing"

	"github.com/samuelfneumann/fastdqn/frame"
	"github.com/samuelfneumann/fastdqn/timestep"
	"github.com/samuelfneumann/fastdqn/window"
	"github.com/stretchr/testify/require"
)

func TestNewBatch(t *testing.T) {
	a, err := frame.New(2, []uint8{0, 255, 255, 0})
	require.NoError(t, err)
	b, err := frame.New(2, []uint8{255, 255, 255, 255})
	require.NoError(t, err)

	s := window.NewState(a, b)
	next := window.NewState(b, b)
	transitions := []timestep.Transition{
		timestep.NewTransition(s, 2, 1, next),
		timestep.NewTerminalTransition(s, 0, -1),
	}

	batch, err := NewBatch(transitions, 3)
	require.NoError(t, err)

	require.Equal(t, 2, batch.Size)
	require.Equal(t, 8, batch.Features)
	require.Equal(t, []int{2, 8}, []int(batch.States.Shape()))
	require.Equal(t, []int{2, 3}, []int(batch.Actions.Shape()))
	require.Equal(t, []int{2, 8}, []int(batch.NextStates.Shape()))

	require.Equal(t, []float64{0, 0, 1, 1, 0, 0}, batch.Actions.Data())
	require.Equal(t, []float64{1, -1}, batch.Rewards.Data())
	require.Equal(t, []float64{1, 0}, batch.Continues.Data())

	states := batch.States.Data().([]float64)
	require.Equal(t, []float64{0, 1, 1, 0, 1, 1, 1, 1}, states[:8])

	nextStates := batch.NextStates.Data().([]float64)
	require.Equal(t, []float64{1, 1, 1, 1, 1, 1, 1, 1}, nextStates[:8])
	require.Equal(t, make([]float64, 8), nextStates[8:])
}

func TestNewBatchErrors(t *testing.T) {
	a, err := frame.New(2, []uint8{0, 0, 0, 0})
	require.NoError(t, err)
	c, err := frame.New(1, []uint8{0})
	require.NoError(t, err)

	s := window.NewState(a)

	_, err = NewBatch(nil, 3)
	require.Error(t, err)

	_, err = NewBatch([]timestep.Transition{
		timestep.NewTerminalTransition(s, 3, 0),
	}, 3)
	require.Error(t, err)

	_, err = NewBatch([]timestep.Transition{
		timestep.NewTerminalTransition(s, 0, 0),
		timestep.NewTerminalTransition(window.NewState(c), 0, 0),
	}, 3)
	require.Error(t, err)
}
