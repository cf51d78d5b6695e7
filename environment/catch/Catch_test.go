package catch

import (
	"testing"

	"github.com/samuelfneumann/fastdqn/frame"
	"github.com/stretchr/testify/require"
)

// track moves the paddle toward the ball
func track(c *Catch) int {
	switch {
	case c.ballCol < c.paddleCol:
		return Left
	case c.ballCol >= c.paddleCol+PaddleWidth:
		return Right
	default:
		return Stay
	}
}

func TestEpisodeLength(t *testing.T) {
	c, err := New(3, 1)
	require.NoError(t, err)

	steps, scored := 0, 0
	for !c.GameOver() {
		r, err := c.Step(Stay)
		require.NoError(t, err)
		require.Contains(t, []float64{-1, 0, 1}, r)
		if r != 0 {
			scored++
		}
		steps++
	}
	require.Equal(t, 3*(Rows-1), steps)
	require.Equal(t, 3, scored)

	_, err = c.Step(Stay)
	require.Error(t, err)
}

func TestTrackingCatchesEveryBall(t *testing.T) {
	c, err := New(DefaultBalls, 7)
	require.NoError(t, err)

	score := 0.0
	for !c.GameOver() {
		r, err := c.Step(track(c))
		require.NoError(t, err)
		score += r
	}
	require.Equal(t, float64(DefaultBalls), score)

	require.NoError(t, c.Reset())
	require.False(t, c.GameOver())
}

func TestSameSeedSameGame(t *testing.T) {
	a, err := New(5, 3)
	require.NoError(t, err)
	b, err := New(5, 3)
	require.NoError(t, err)

	for !a.GameOver() {
		ra, err := a.Step(Right)
		require.NoError(t, err)
		rb, err := b.Step(Right)
		require.NoError(t, err)
		require.Equal(t, ra, rb)
	}
	require.True(t, b.GameOver())
}

func TestScreen(t *testing.T) {
	c, err := New(1, 1)
	require.NoError(t, err)

	raw, err := c.Screen()
	require.NoError(t, err)
	require.NoError(t, raw.Validate())
	require.Equal(t, Width, raw.Width)
	require.Equal(t, Height, raw.Height)
	require.Equal(t, frame.NTSC, raw.Palette)

	// Paddle occupies the bottom row
	y := Height - 1
	x := c.paddleCol*CellWidth + 1
	require.Equal(t, Paddle, raw.Pix[y*Width+x])

	// Ball occupies its cell in the top row
	x = c.ballCol*CellWidth + 1
	require.Equal(t, Ball, raw.Pix[x])

	count := 0
	for _, p := range raw.Pix {
		if p != Background {
			count++
		}
	}
	require.Equal(t, (1+PaddleWidth)*CellWidth*CellHeight, count)
}

func TestInvalid(t *testing.T) {
	_, err := New(0, 1)
	require.Error(t, err)

	c, err := New(1, 1)
	require.NoError(t, err)
	_, err = c.Step(NumActions)
	require.Error(t, err)
}
