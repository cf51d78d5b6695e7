package experiment

import (
	"errors"
	"testing"

	"github.com/rs/zerolog"
	env "github.com/samuelfneumann/fastdqn/environment"
	"github.com/samuelfneumann/fastdqn/expreplay"
	"github.com/samuelfneumann/fastdqn/frame"
	ts "github.com/samuelfneumann/fastdqn/timestep"
	"github.com/stretchr/testify/require"
)

func newTestDriver(t *testing.T, depth, threshold, batch int, e *fakeEnv,
	a *fakeAgent) (*Driver, expreplay.ExperienceReplayer) {
	replay, err := expreplay.New(expreplay.NewUniformSelector(1), 0, 100)
	require.NoError(t, err)

	c := DriverConfig{
		WindowDepth:     depth,
		FrameSize:       2,
		ReplayThreshold: threshold,
		BatchSize:       batch,
		Seed:            1,
	}
	d, err := NewDriver(c, e, a, replay, zerolog.Nop())
	require.NoError(t, err)
	return d, replay
}

func TestRunEpisodeClipsRewards(t *testing.T) {
	e := &fakeEnv{rewards: []float64{5, -3, 0, 2}, noopReward: 7}
	a := &fakeAgent{action: 1}
	d, replay := newTestDriver(t, 2, 100, 4, e, a)

	res, err := d.RunEpisode(&spySchedule{}, true)
	require.NoError(t, err)
	require.Equal(t, Result{Score: 4, Frames: 5, Transitions: 4}, res)
	require.Equal(t, Terminated, d.State())
	require.Equal(t, 1, e.resets)
	require.Equal(t, []int{1, 1, 1, 1}, e.actions)

	transitions := expreplay.Ordered(replay)
	require.Len(t, transitions, 4)

	terminal := 0
	for i, tr := range transitions {
		require.Equal(t, []float64{1, -1, 0, 1}[i], tr.Reward)
		require.Equal(t, 1, tr.Action)
		require.Equal(t, 2, tr.State.Len())
		if tr.Terminal() {
			terminal++
			continue
		}
		require.Equal(t, transitions[i+1].State, tr.NextState)
	}
	require.Equal(t, 1, terminal)
	require.True(t, transitions[3].Terminal())
}

func TestRunEpisodeWarmUp(t *testing.T) {
	e := &fakeEnv{rewards: []float64{1, 1}, noopReward: 7}
	a := &fakeAgent{action: 2}
	d, replay := newTestDriver(t, 4, 100, 4, e, a)

	rec := &recorder{}
	d.Register(rec)

	schedule := &spySchedule{}
	res, err := d.RunEpisode(schedule, true)
	require.NoError(t, err)
	require.Equal(t, 5, res.Frames)
	require.Equal(t, 2.0, res.Score)
	require.Equal(t, 2, replay.Len())
	require.Equal(t, 3, e.totalNoops)
	require.Equal(t, 1, e.resets)

	// The policy is only ever asked about full windows
	require.Len(t, a.states, 2)
	for _, s := range a.states {
		require.Equal(t, 4, s.Len())
	}
	require.Len(t, schedule.iterations, 2)

	require.Len(t, rec.steps, 5)
	types := []ts.StepType{ts.First, ts.Mid, ts.Mid, ts.Mid, ts.Last}
	for i, step := range rec.steps {
		require.Equal(t, types[i], step.StepType)
		require.Equal(t, i, step.Number)
		require.NotNil(t, step.Frame)
		if i < 3 {
			require.Equal(t, 0, step.Action)
			require.Equal(t, 0.0, step.Reward)
		} else {
			require.Equal(t, 2, step.Action)
			require.Equal(t, 1.0, step.Reward)
		}
	}
	require.Equal(t, uint8(30), rec.steps[3].Frame.At(0, 0))
}

func TestRunEpisodeLearns(t *testing.T) {
	e := &fakeEnv{rewards: []float64{0, 0, 1, 0}}
	a := &fakeAgent{}
	d, _ := newTestDriver(t, 1, 1, 2, e, a)

	schedule := &spySchedule{}
	res, err := d.RunEpisode(schedule, true)
	require.NoError(t, err)
	require.Equal(t, 3, res.Updates)
	require.Equal(t, 3, a.Iteration())
	require.Equal(t, 4, res.Frames)

	// ε is recomputed at every decision point
	require.Equal(t, []int{0, 0, 1, 2}, schedule.iterations)

	for _, b := range a.batches {
		require.Equal(t, 2, b.Size)
		require.Equal(t, 3, b.NumActions)
		require.Equal(t, 4, b.Features)
	}
}

func TestRunEpisodeEvaluationDoesNotLearn(t *testing.T) {
	e := &fakeEnv{rewards: []float64{1, -1, 1}}
	a := &fakeAgent{}
	d, replay := newTestDriver(t, 2, 0, 1, e, a)

	res, err := d.RunEpisode(&spySchedule{}, false)
	require.NoError(t, err)
	require.Equal(t, 1.0, res.Score)
	require.Zero(t, res.Transitions)
	require.Zero(t, replay.Len())
	require.Empty(t, a.batches)
}

func TestRunEpisodeInsufficientSamplesAbsorbed(t *testing.T) {
	replay, err := expreplay.New(expreplay.NewUniformSelector(1), 10, 100)
	require.NoError(t, err)

	e := &fakeEnv{rewards: []float64{1, 1, 1}}
	a := &fakeAgent{}
	c := DriverConfig{WindowDepth: 1, FrameSize: 2, BatchSize: 2, Seed: 1}
	d, err := NewDriver(c, e, a, replay, zerolog.Nop())
	require.NoError(t, err)

	res, err := d.RunEpisode(&spySchedule{}, true)
	require.NoError(t, err)
	require.Equal(t, 3, res.Transitions)
	require.Zero(t, res.Updates)
	require.Zero(t, a.Iteration())
}

func TestRunEpisodeEndsDuringWarmUp(t *testing.T) {
	e := &fakeEnv{rewards: []float64{1}, maxNoops: 1}
	a := &fakeAgent{}
	d, replay := newTestDriver(t, 4, 0, 1, e, a)

	rec := &recorder{}
	d.Register(rec)

	res, err := d.RunEpisode(&spySchedule{}, true)
	require.NoError(t, err)
	require.Equal(t, Result{Frames: 1}, res)
	require.Zero(t, replay.Len())
	require.Len(t, rec.steps, 1)
	require.True(t, rec.steps[0].Last())
	require.Equal(t, 1, e.resets)
}

func TestRunEpisodeErrors(t *testing.T) {
	fault := errors.New("emulator crashed")

	e := &fakeEnv{rewards: []float64{1, 1}, actErr: fault}
	d, _ := newTestDriver(t, 1, 0, 1, e, &fakeAgent{})
	_, err := d.RunEpisode(&spySchedule{}, true)
	require.True(t, env.IsFault(err))
	require.ErrorIs(t, err, fault)
	require.Equal(t, Terminated, d.State())

	e = &fakeEnv{rewards: []float64{1}, screenErr: fault}
	d, _ = newTestDriver(t, 1, 0, 1, e, &fakeAgent{})
	_, err = d.RunEpisode(&spySchedule{}, true)
	require.True(t, env.IsFault(err))

	e = &fakeEnv{rewards: []float64{1}, badScreen: true}
	d, _ = newTestDriver(t, 1, 0, 1, e, &fakeAgent{})
	_, err = d.RunEpisode(&spySchedule{}, true)
	var invalid *frame.InvalidFrameError
	require.ErrorAs(t, err, &invalid)

	e = &fakeEnv{}
	d, _ = newTestDriver(t, 1, 0, 1, e, &fakeAgent{})
	_, err = d.RunEpisode(&spySchedule{}, true)
	require.Error(t, err)

	e = &fakeEnv{rewards: []float64{1}}
	d, _ = newTestDriver(t, 1, 0, 1, e, &fakeAgent{})
	_, err = d.RunEpisode(&spySchedule{epsilon: 2}, true)
	require.Error(t, err)
}

func TestNewDriverErrors(t *testing.T) {
	replay, err := expreplay.New(expreplay.NewUniformSelector(1), 0, 10)
	require.NoError(t, err)
	c := DriverConfig{WindowDepth: 1, FrameSize: 2, BatchSize: 1}

	_, err = NewDriver(c, nil, &fakeAgent{}, replay, zerolog.Nop())
	require.Error(t, err)

	bad := c
	bad.BatchSize = 0
	_, err = NewDriver(bad, &fakeEnv{}, &fakeAgent{}, replay, zerolog.Nop())
	require.Error(t, err)

	bad = c
	bad.WindowDepth = 0
	_, err = NewDriver(bad, &fakeEnv{}, &fakeAgent{}, replay, zerolog.Nop())
	require.Error(t, err)
}

func TestDriverStateString(t *testing.T) {
	require.Equal(t, "WarmingUp", WarmingUp.String())
	require.Equal(t, "Acting", Acting.String())
	require.Equal(t, "Terminated", Terminated.String())
	require.Equal(t, "DriverState(7)", DriverState(7).String())
}
