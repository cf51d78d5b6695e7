package envconfig

import (
	"encoding/json"
	"testing"

	"github.com/samuelfneumann/fastdqn/environment/catch"
	"github.com/stretchr/testify/require"
)

func TestCreateCatch(t *testing.T) {
	c := Default(Catch)
	c.Balls = 2

	e, err := c.Create(1)
	require.NoError(t, err)
	require.Equal(t, catch.NumActions, e.NumActions())

	// Each ball falls for Rows-1 raw frames, 4 raw frames per action
	acts := 0
	for !e.EpisodeOver() {
		_, err := e.Act(catch.Stay)
		require.NoError(t, err)
		acts++
	}
	require.Equal(t, 2*(catch.Rows-1)/4, acts)
}

func TestCreateCatchStepLimit(t *testing.T) {
	c := Default(Catch)
	c.MaxEpisodeFrames = 8

	e, err := c.Create(1)
	require.NoError(t, err)

	_, err = e.ActNoop()
	require.NoError(t, err)
	_, err = e.ActNoop()
	require.NoError(t, err)
	require.True(t, e.EpisodeOver())
}

func TestValidate(t *testing.T) {
	require.NoError(t, Default(Catch).Validate())
	require.NoError(t, Default(Gym).Validate())

	c := Default(Catch)
	c.FrameSkip = 0
	require.Error(t, c.Validate())

	c = Default(Gym)
	c.GymID = ""
	require.Error(t, c.Validate())

	require.Error(t, Config{Name: "Pong", FrameSkip: 4}.Validate())
}

func TestJSON(t *testing.T) {
	var c Config
	data := []byte(`{"Name": "Catch", "FrameSkip": 2, "Balls": 5}`)
	require.NoError(t, json.Unmarshal(data, &c))
	require.Equal(t, Catch, c.Name)
	require.Equal(t, 5, c.Balls)
	require.NoError(t, c.Validate())
}
