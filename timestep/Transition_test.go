package timestep

import (
	"testing"

	"github.com/samuelfneumann/fastdqn/frame"
	"github.com/samuelfneumann/fastdqn/window"
	"github.com/stretchr/testify/require"
)

func TestClipReward(t *testing.T) {
	raw := []float64{5, -3, 0, 2, 0.25, -1000}
	want := []float64{1, -1, 0, 1, 1, -1}

	for i := range raw {
		require.Equal(t, want[i], ClipReward(raw[i]))
	}
}

func TestTerminalTransition(t *testing.T) {
	f, err := frame.New(1, []uint8{7})
	require.NoError(t, err)
	s := window.NewState(f)

	tr := NewTransition(s, 1, 1.0, s)
	require.False(t, tr.Terminal())

	tr = NewTerminalTransition(s, 2, -1.0)
	require.True(t, tr.Terminal())
	require.True(t, tr.NextState.IsTerminal())
	require.Equal(t, 2, tr.Action)
}
