// Package progressbar implements functionality of printing a progress
// bar to the terminal window
package progressbar

import (
	"fmt"
	"io"
	"strings"
	"time"
)

// ManualProgressBar implement progress bar functionality that must
// be manually managed. That is, the Display() function must be called
// whenever an updated progress bar should be printed.
//
// ManualProgressBar does not use concurrency.
type ManualProgressBar struct {
	out             io.Writer
	width           int
	maxProgress     int
	currentProgress int
	bar             strings.Builder
	startTime       time.Time
}

// NewManualProgressBar returns a new ManualProgressBar which is width
// characters wide and is full once its progress reaches max
func NewManualProgressBar(out io.Writer, width, max int) *ManualProgressBar {
	if max < 1 {
		max = 1
	}
	return &ManualProgressBar{
		out:         out,
		width:       width,
		maxProgress: max,
		startTime:   time.Now(),
	}
}

// Increment increments the interal progress counter
func (p *ManualProgressBar) Increment() {
	p.Set(p.currentProgress + 1)
}

// Set sets the progress counter, clamped to [0, max]
func (p *ManualProgressBar) Set(progress int) {
	switch {
	case progress < 0:
		p.currentProgress = 0
	case progress > p.maxProgress:
		p.currentProgress = p.maxProgress
	default:
		p.currentProgress = progress
	}
}

// Restart empties the progress bar and sets a new maximum
func (p *ManualProgressBar) Restart(max int) {
	if max < 1 {
		max = 1
	}
	p.maxProgress = max
	p.currentProgress = 0
}

// Fraction returns the fraction of the bar that is filled
func (p *ManualProgressBar) Fraction() float64 {
	return float64(p.currentProgress) / float64(p.maxProgress)
}

// String returns the current progress bar
func (p *ManualProgressBar) String() string {
	p.bar.Reset()
	p.bar.WriteString("|")

	filled := p.currentProgress * p.width / p.maxProgress
	p.bar.WriteString(strings.Repeat("█", filled))
	p.bar.WriteString(strings.Repeat(" ", p.width-filled))
	p.bar.WriteString(fmt.Sprintf("| [%.2f%% | elapsed: %v]",
		p.Fraction()*100, time.Since(p.startTime).Truncate(time.Second)))

	return p.bar.String()
}

// Display redraws the progress bar over the current terminal line
func (p *ManualProgressBar) Display() {
	fmt.Fprintf(p.out, "\n\033[1A\033[K%v", p.String())
}

// Close moves past the progress bar's line
func (p *ManualProgressBar) Close() {
	fmt.Fprintln(p.out)
}
