package epoch

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func newTestReporter(t *testing.T, steps int) (*Reporter, *bytes.Buffer) {
	var buf bytes.Buffer
	r, err := NewReporter(&buf, DefaultReporterConfig("catch", steps),
		zerolog.Nop())
	require.NoError(t, err)
	return r, &buf
}

func TestReporterHeader(t *testing.T) {
	_, buf := newTestReporter(t, 5000)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	require.Equal(t, "catch,5000,,,,", lines[0])
	require.Equal(t, "Epoch,Epoch avg score,Hours training,"+
		"Number of episodes,Episodes in epoch,Number of frames", lines[1])
}

func TestReporterEpochs(t *testing.T) {
	r, buf := newTestReporter(t, 10)

	_, ok, err := r.Track(2, 10, time.Hour, 0)
	require.NoError(t, err)
	require.False(t, ok)
	require.Equal(t, 2.0, r.RunningAverage())

	_, ok, err = r.Track(4, 20, time.Hour, 5)
	require.NoError(t, err)
	require.False(t, ok)
	require.InDelta(t, 2.1, r.RunningAverage(), 1e-12)

	record, ok, err := r.Track(6, 30, time.Hour, 25)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, 1, record.Epoch)
	require.InDelta(t, 2.295, record.AverageScore, 1e-12)
	require.InDelta(t, 2.0, record.Hours, 1e-12)
	require.Equal(t, 3, record.Episodes)
	require.Equal(t, 3, record.EpisodesInEpoch)
	require.Equal(t, 60, record.Frames)
	require.Equal(t, 25, record.Iteration)
	require.InDelta(t, 4.0, record.EpochMean, 1e-12)
	require.Equal(t, 30, r.NextBoundary())

	_, ok, err = r.Track(0, 5, time.Hour, 29)
	require.NoError(t, err)
	require.False(t, ok)

	record, ok, err = r.Track(0, 5, time.Hour, 30)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, 3, record.Epoch)
	require.Equal(t, 5, record.Episodes)
	require.Equal(t, 2, record.EpisodesInEpoch)
	require.InDelta(t, 4.0, record.Hours, 1e-12)
	require.Equal(t, 70, record.Frames)
	require.Equal(t, 40, r.NextBoundary())

	require.Len(t, r.Records(), 2)

	loaded, err := LoadRecords(buf)
	require.NoError(t, err)
	require.Len(t, loaded, 2)
	for i, want := range r.Records() {
		want.Iteration = 0
		want.EpochMean = 0
		require.Equal(t, want, loaded[i])
	}
}

func TestReporterBoundaryOnExactIteration(t *testing.T) {
	r, _ := newTestReporter(t, 10)

	_, ok, err := r.Track(1, 1, time.Second, 10)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, 20, r.NextBoundary())

	_, ok, err = r.Track(1, 1, time.Second, 10)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestReporterConfigValidate(t *testing.T) {
	var buf bytes.Buffer
	_, err := NewReporter(&buf, ReporterConfig{StepsPerEpoch: 0,
		Smoothing: 0.05}, zerolog.Nop())
	require.Error(t, err)

	_, err = NewReporter(&buf, ReporterConfig{StepsPerEpoch: 1,
		Smoothing: 1.5}, zerolog.Nop())
	require.Error(t, err)
}

func TestLoadRecordsReferenceLog(t *testing.T) {
	log := "roms/breakout.bin,5000,,,\n" +
		"Epoch,Epoch avg score,Hours training,Number of episodes," +
		"Episodes in epoch,Number of frames\n" +
		"1, 0.5, 0.25, 10, 11,3000\n"

	records, err := LoadRecords(strings.NewReader(log))
	require.NoError(t, err)
	require.Equal(t, []Record{{
		Epoch:           1,
		AverageScore:    0.5,
		Hours:           0.25,
		Episodes:        10,
		EpisodesInEpoch: 11,
		Frames:          3000,
	}}, records)
}

func TestLoadRecordsErrors(t *testing.T) {
	_, err := LoadRecords(strings.NewReader("title,1\n"))
	require.Error(t, err)

	_, err = LoadRecords(strings.NewReader("title,1\nEpoch,Score\n"))
	require.Error(t, err)

	_, err = LoadRecords(strings.NewReader("title,1\n" +
		strings.Join(Header, ",") + "\n1,x,0,1,1,1\n"))
	require.Error(t, err)
}

func TestPlot(t *testing.T) {
	records := []Record{
		{Epoch: 1, AverageScore: -1, EpisodesInEpoch: 2, EpochMean: -0.5},
		{Epoch: 2, AverageScore: 0.5, EpisodesInEpoch: 3, EpochMean: 1},
	}

	var buf bytes.Buffer
	require.NoError(t, Plot("catch", records, &buf))
	require.Contains(t, buf.String(), "echarts")
	require.Contains(t, buf.String(), "catch")

	require.Error(t, Plot("catch", nil, &buf))
}
