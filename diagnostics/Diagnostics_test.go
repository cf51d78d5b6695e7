package diagnostics

import (
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/samuelfneumann/fastdqn/frame"
	"github.com/samuelfneumann/fastdqn/window"
	"github.com/stretchr/testify/require"
)

func testFrame(t *testing.T, fill uint8) *frame.Frame {
	pix := make([]uint8, 16)
	for i := range pix {
		pix[i] = fill
	}
	f, err := frame.New(4, pix)
	require.NoError(t, err)
	return f
}

func TestSaveFrame(t *testing.T) {
	path := filepath.Join(t.TempDir(), "frame.png")
	require.NoError(t, SaveFrame(testFrame(t, 200), path))

	file, err := os.Open(path)
	require.NoError(t, err)
	defer file.Close()

	img, err := png.Decode(file)
	require.NoError(t, err)
	require.Equal(t, 4, img.Bounds().Dx())
	require.Equal(t, 4, img.Bounds().Dy())

	require.Error(t, SaveFrame(nil, path))
}

func TestSaveState(t *testing.T) {
	s := window.NewState(testFrame(t, 0), testFrame(t, 100),
		testFrame(t, 255))
	path := filepath.Join(t.TempDir(), "state.png")
	require.NoError(t, SaveState(s, path))

	file, err := os.Open(path)
	require.NoError(t, err)
	defer file.Close()

	img, err := png.Decode(file)
	require.NoError(t, err)
	require.Equal(t, 12, img.Bounds().Dx())
	require.Equal(t, 4, img.Bounds().Dy())

	r, _, _, _ := img.At(9, 1).RGBA()
	require.Equal(t, uint32(0xffff), r)

	require.Error(t, SaveState(window.Terminal, path))
}

func TestDrawFrame(t *testing.T) {
	out := DrawFrame(testFrame(t, 0))
	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	require.Len(t, lines, 6)
	require.Equal(t, "|    |", lines[1])

	out = DrawFrame(testFrame(t, 255))
	require.Contains(t, out, "█")
}

func TestShade(t *testing.T) {
	require.Equal(t, uint8(0), shade(0))
	require.Equal(t, uint8(grayLevels-1), shade(255))
}
