package checkpointer

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

type recorder struct {
	paths []string
	err   error
}

func (r *recorder) Save(path string) error {
	r.paths = append(r.paths, path)
	return r.err
}

func TestNStep(t *testing.T) {
	r := &recorder{}
	c, err := NewNStep(10, r, FilenameEnumerator(0, "weights", ".bin"))
	require.NoError(t, err)

	for _, it := range []int{0, 5, 9, 10, 12, 19, 35, 39, 40} {
		require.NoError(t, c.Checkpoint(it))
	}
	require.Equal(t, []string{"weights1.bin", "weights2.bin",
		"weights3.bin"}, r.paths)
}

func TestNStepErrors(t *testing.T) {
	_, err := NewNStep(0, &recorder{}, FileTimer("w", ".bin"))
	require.Error(t, err)

	_, err = NewNStep(1, nil, FileTimer("w", ".bin"))
	require.Error(t, err)

	r := &recorder{err: errors.New("disk full")}
	c, err := NewNStep(1, r, FileTimer("w", ".bin"))
	require.NoError(t, err)
	require.ErrorIs(t, c.Checkpoint(1), r.err)
}

func TestFileTimer(t *testing.T) {
	name := FileTimer("dir/weights", ".bin")()
	require.True(t, strings.HasPrefix(name, "dir/weights-"))
	require.True(t, strings.HasSuffix(name, ".bin"))
}
