// Package frame implements the preprocessing of raw environment
// screens into fixed-size, single-channel frames
package frame

import (
	"image"
)

// DefaultSize is the default side length of a preprocessed Frame
const DefaultSize = 84

// Frame is a square grid of 8-bit luminance samples stored in row-major
// order. A Frame is never mutated after it is created, so it may be
// shared freely between state windows and the replay buffer.
type Frame struct {
	side int
	pix  []uint8
}

// New returns a new Frame with the given side length, copying pix.
func New(side int, pix []uint8) (*Frame, error) {
	if side <= 0 || len(pix) != side*side {
		return nil, &InvalidFrameError{
			Width:  side,
			Height: side,
			Len:    len(pix),
			Reason: "frame data does not match side length",
		}
	}
	data := make([]uint8, len(pix))
	copy(data, pix)
	return &Frame{side: side, pix: data}, nil
}

// Side returns the side length of the Frame
func (f *Frame) Side() int {
	return f.side
}

// At returns the sample at the given row and column
func (f *Frame) At(row, col int) uint8 {
	return f.pix[row*f.side+col]
}

// Bytes returns a copy of the Frame's samples in row-major order
func (f *Frame) Bytes() []uint8 {
	out := make([]uint8, len(f.pix))
	copy(out, f.pix)
	return out
}

// Image returns a copy of the Frame as a grayscale image
func (f *Frame) Image() *image.Gray {
	img := image.NewGray(image.Rect(0, 0, f.side, f.side))
	copy(img.Pix, f.pix)
	return img
}

// AppendFeatures appends the Frame's samples, scaled to [0, 1], to dst
// and returns the extended slice.
func (f *Frame) AppendFeatures(dst []float64) []float64 {
	for _, p := range f.pix {
		dst = append(dst, float64(p)/255.0)
	}
	return dst
}
