package frame

import "fmt"

// InvalidFrameError reports a raw frame whose reported size is zero or
// inconsistent with its declared dimensions. No valid state can be built
// from such a frame, so callers should treat it as fatal.
type InvalidFrameError struct {
	Width  int
	Height int
	Len    int
	Reason string
}

// Error satisfies the error interface
func (e *InvalidFrameError) Error() string {
	return fmt.Sprintf("invalid frame (%dx%d, %d samples): %s", e.Width,
		e.Height, e.Len, e.Reason)
}
