package window

import (
	"errors"
	"testing"

	"github.com/samuelfneumann/fastdqn/frame"
	"github.com/stretchr/testify/require"
)

func frames(t *testing.T, n int) []*frame.Frame {
	out := make([]*frame.Frame, n)
	for i := range out {
		f, err := frame.New(2, []uint8{uint8(i), uint8(i), uint8(i), uint8(i)})
		require.NoError(t, err)
		out[i] = f
	}
	return out
}

func TestSnapshotReturnsMostRecentFrames(t *testing.T) {
	w, err := New(4)
	require.NoError(t, err)

	f := frames(t, 6)
	for _, fr := range f {
		w.Push(fr)
	}

	s, err := w.Snapshot()
	require.NoError(t, err)
	require.Equal(t, []*frame.Frame{f[2], f[3], f[4], f[5]}, s.Frames())
}

func TestWindowNeverExceedsDepth(t *testing.T) {
	for depth := 1; depth <= 5; depth++ {
		w, err := New(depth)
		require.NoError(t, err)

		f := frames(t, 12)
		for i, fr := range f {
			w.Push(fr)
			require.LessOrEqual(t, w.Len(), depth)
			require.Equal(t, i+1 >= depth, w.Ready())

			if w.Ready() {
				s, err := w.Snapshot()
				require.NoError(t, err)
				require.Equal(t, f[i+1-depth:i+1], s.Frames())
			}
		}
	}
}

func TestSnapshotBeforeReady(t *testing.T) {
	w, err := New(4)
	require.NoError(t, err)

	f := frames(t, 3)
	for _, fr := range f {
		w.Push(fr)
		_, err := w.Snapshot()
		require.True(t, errors.Is(err, ErrNotReady))

		var notReady *NotReadyError
		require.True(t, errors.As(err, &notReady))
		require.Equal(t, 4, notReady.Want)
	}
}

func TestResetClearsFrames(t *testing.T) {
	w, err := New(2)
	require.NoError(t, err)

	f := frames(t, 3)
	w.Push(f[0])
	w.Push(f[1])
	require.True(t, w.Ready())

	w.Reset()
	require.Equal(t, 0, w.Len())
	require.False(t, w.Ready())

	w.Push(f[2])
	require.False(t, w.Ready())
}

func TestSnapshotIsIndependentOfLaterPushes(t *testing.T) {
	w, err := New(2)
	require.NoError(t, err)

	f := frames(t, 4)
	w.Push(f[0])
	w.Push(f[1])
	s, err := w.Snapshot()
	require.NoError(t, err)

	w.Push(f[2])
	w.Push(f[3])
	require.Equal(t, []*frame.Frame{f[0], f[1]}, s.Frames())

	w.Reset()
	require.Equal(t, 2, s.Len())
}

func TestStateFeatures(t *testing.T) {
	f := frames(t, 2)
	s := NewState(f...)
	require.False(t, s.IsTerminal())
	require.Equal(t, 8, s.NumFeatures())

	features := s.Features()
	require.Len(t, features, 8)
	require.InDelta(t, 0.0, features[0], 1e-12)
	require.InDelta(t, 1.0/255, features[7], 1e-12)

	require.True(t, Terminal.IsTerminal())
	require.True(t, NewState().IsTerminal())
	require.Empty(t, Terminal.Features())
}

func TestNewRejectsInvalidDepth(t *testing.T) {
	_, err := New(0)
	require.Error(t, err)
}
