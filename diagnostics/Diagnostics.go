// Package diagnostics renders preprocessed frames and state windows as
// PNG images and as shaded terminal text
package diagnostics

import (
	"fmt"
	"strings"

	"github.com/fogleman/gg"
	"github.com/logrusorgru/aurora"
	"github.com/samuelfneumann/fastdqn/frame"
	"github.com/samuelfneumann/fastdqn/window"
)

// grayLevels is the number of grayscale shades available in a terminal
const grayLevels = 24

// SaveFrame saves a Frame as a grayscale PNG at path
func SaveFrame(f *frame.Frame, path string) error {
	if f == nil {
		return fmt.Errorf("saveFrame: nil frame")
	}

	dc := gg.NewContextForImage(f.Image())
	if err := dc.SavePNG(path); err != nil {
		return fmt.Errorf("saveFrame: %w", err)
	}
	return nil
}

// SaveState saves the frames of a State side by side, oldest on the
// left, as a single PNG at path
func SaveState(s window.State, path string) error {
	if s.IsTerminal() {
		return fmt.Errorf("saveState: cannot save the terminal state")
	}

	side := s.Frame(0).Side()
	dc := gg.NewContext(side*s.Len(), side)
	dc.SetRGB(0, 0, 0)
	dc.Clear()
	for i, f := range s.Frames() {
		dc.DrawImage(f.Image(), i*side, 0)
	}

	if err := dc.SavePNG(path); err != nil {
		return fmt.Errorf("saveState: %w", err)
	}
	return nil
}

// DrawFrame returns a terminal rendering of a Frame, with one shaded
// cell per sample. Black samples are left blank.
func DrawFrame(f *frame.Frame) string {
	var b strings.Builder

	side := f.Side()
	b.WriteString(strings.Repeat("-", side+2))
	b.WriteByte('\n')
	for row := 0; row < side; row++ {
		b.WriteByte('|')
		for col := 0; col < side; col++ {
			sample := f.At(row, col)
			if sample == 0 {
				b.WriteByte(' ')
				continue
			}
			b.WriteString(aurora.Gray(shade(sample), "█").String())
		}
		b.WriteString("|\n")
	}
	b.WriteString(strings.Repeat("-", side+2))
	b.WriteByte('\n')

	return b.String()
}

// shade maps a sample onto one of the terminal grayscale levels
func shade(sample uint8) uint8 {
	return uint8(int(sample) * (grayLevels - 1) / 255)
}
