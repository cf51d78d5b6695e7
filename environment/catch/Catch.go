// Package catch implements Catch, a small pixel game in which a paddle
// at the bottom of the screen must catch balls falling from the top.
//
// The screen is drawn with palette indices of the NTSC palette on a
// 160x210 raw frame, the same screen layout as an Atari 2600 game. The
// board is a grid of 20x21 cells, each 8 pixels wide and 10 pixels
// high. Each raw step, the ball falls by one row and the paddle moves by
// one column. Catching a ball is rewarded with +1, missing it with -1.
// An episode ends once a fixed number of balls have fallen.
package catch

import (
	"fmt"

	"golang.org/x/exp/rand"

	"github.com/samuelfneumann/fastdqn/frame"
)

const (
	Width  = 160
	Height = 210

	CellWidth  = 8
	CellHeight = 10
	Cols       = Width / CellWidth
	Rows       = Height / CellHeight

	PaddleWidth = 3 // In cells

	DefaultBalls = 10
)

// Palette indices used to draw the screen
const (
	Background uint8 = 0x00
	Ball       uint8 = 0x0e
	Paddle     uint8 = 0x46
)

// Actions
const (
	Stay = iota
	Left
	Right
	NumActions
)

// Catch implements the Catch game as an environment.Emulator
type Catch struct {
	rng   *rand.Rand
	balls int

	ballRow, ballCol int
	paddleCol        int // Leftmost column of the paddle
	ballsLeft        int
	over             bool
}

// New returns a new Catch game in which each episode lasts balls balls
func New(balls int, seed uint64) (*Catch, error) {
	if balls < 1 {
		return nil, fmt.Errorf("new: need at least one ball per episode, "+
			"have %v", balls)
	}

	c := &Catch{
		rng:   rand.New(rand.NewSource(seed)),
		balls: balls,
	}
	c.Reset()
	return c, nil
}

// Reset starts a new episode
func (c *Catch) Reset() error {
	c.ballsLeft = c.balls
	c.paddleCol = (Cols - PaddleWidth) / 2
	c.over = false
	c.dropBall()
	return nil
}

// dropBall places a new ball at a random column of the top row
func (c *Catch) dropBall() {
	c.ballRow = 0
	c.ballCol = c.rng.Intn(Cols)
}

// Step moves the paddle and then the ball
func (c *Catch) Step(action int) (float64, error) {
	if c.over {
		return 0, fmt.Errorf("step: episode is over")
	}

	switch action {
	case Stay:
	case Left:
		if c.paddleCol > 0 {
			c.paddleCol--
		}
	case Right:
		if c.paddleCol < Cols-PaddleWidth {
			c.paddleCol++
		}
	default:
		return 0, fmt.Errorf("step: illegal action %v", action)
	}

	c.ballRow++
	if c.ballRow < Rows-1 {
		return 0, nil
	}

	reward := -1.0
	if c.ballCol >= c.paddleCol && c.ballCol < c.paddleCol+PaddleWidth {
		reward = 1.0
	}

	c.ballsLeft--
	if c.ballsLeft == 0 {
		c.over = true
	} else {
		c.dropBall()
	}
	return reward, nil
}

// GameOver returns whether the current episode has ended
func (c *Catch) GameOver() bool {
	return c.over
}

// NumActions returns the number of legal actions
func (c *Catch) NumActions() int {
	return NumActions
}

// Screen draws the current screen
func (c *Catch) Screen() (frame.Raw, error) {
	pix := make([]uint8, Width*Height)

	if !c.over {
		fillCell(pix, c.ballRow, c.ballCol, Ball)
	}
	for col := c.paddleCol; col < c.paddleCol+PaddleWidth; col++ {
		fillCell(pix, Rows-1, col, Paddle)
	}

	return frame.NewIndexed(Width, Height, frame.NTSC, pix), nil
}

func fillCell(pix []uint8, row, col int, colour uint8) {
	for y := row * CellHeight; y < (row+1)*CellHeight; y++ {
		start := y*Width + col*CellWidth
		for x := start; x < start+CellWidth; x++ {
			pix[x] = colour
		}
	}
}

func (c *Catch) String() string {
	return fmt.Sprintf("Catch | Ball: (%v, %v)  |  Paddle: %v  |  "+
		"Balls Left: %v", c.ballRow, c.ballCol, c.paddleCol, c.ballsLeft)
}
