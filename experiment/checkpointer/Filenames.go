package checkpointer

import (
	"fmt"
	"time"
)

// FilenameEnumerator returns a function which returns filenames with an
// increasing integer suffix. The first call returns the filename with
// suffix start+1. Each suffix is placed between filename and extension.
func FilenameEnumerator(start int, filename, extension string) func() string {
	i := start
	return func() string {
		i++
		return fmt.Sprintf("%v%v%v", filename, i, extension)
	}
}

// FileTimer returns a function which appends to a filename the number
// of nanoseconds since January 1, 1970.
func FileTimer(filename, extension string) func() string {
	return func() string {
		return fmt.Sprintf("%v-%v%v", filename, time.Now().UnixNano(),
			extension)
	}
}
