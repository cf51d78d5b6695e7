// Package epoch implements the training progress report: a smoothed
// episode score, the training time and frame counts, written as one CSV
// row each time the learner crosses an epoch boundary
package epoch

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/rs/zerolog"
	"gonum.org/v1/gonum/stat"
)

// Header is the column header of the training log
var Header = []string{
	"Epoch",
	"Epoch avg score",
	"Hours training",
	"Number of episodes",
	"Episodes in epoch",
	"Number of frames",
}

// DefaultSmoothing is the default weight of the newest episode score in
// the running average
const DefaultSmoothing = 0.05

// ReporterConfig configures a Reporter
type ReporterConfig struct {
	// StepsPerEpoch is the number of learning updates in an epoch
	StepsPerEpoch int

	// Smoothing is the weight of each new episode score in the
	// exponentially weighted running average, in (0, 1]
	Smoothing float64

	// Title is written in the first line of the log, usually the
	// environment name
	Title string
}

// DefaultReporterConfig returns the default ReporterConfig
func DefaultReporterConfig(title string, stepsPerEpoch int) ReporterConfig {
	return ReporterConfig{
		StepsPerEpoch: stepsPerEpoch,
		Smoothing:     DefaultSmoothing,
		Title:         title,
	}
}

// Validate checks a ReporterConfig for errors
func (c ReporterConfig) Validate() error {
	if c.StepsPerEpoch < 1 {
		return fmt.Errorf("validate: steps per epoch must be >= 1, have %v",
			c.StepsPerEpoch)
	}
	if c.Smoothing <= 0 || c.Smoothing > 1 {
		return fmt.Errorf("validate: smoothing must be in (0, 1], have %v",
			c.Smoothing)
	}
	return nil
}

// Record is a single row of the training log
type Record struct {
	Epoch           int
	AverageScore    float64
	Hours           float64
	Episodes        int
	EpisodesInEpoch int
	Frames          int

	// Iteration and EpochMean are logged but not written to the CSV
	Iteration int
	EpochMean float64
}

func (r Record) row() []string {
	return []string{
		strconv.Itoa(r.Epoch),
		strconv.FormatFloat(r.AverageScore, 'g', -1, 64),
		strconv.FormatFloat(r.Hours, 'g', -1, 64),
		strconv.Itoa(r.Episodes),
		strconv.Itoa(r.EpisodesInEpoch),
		strconv.Itoa(r.Frames),
	}
}

// Reporter tracks training episodes and reports progress once per epoch
type Reporter struct {
	config ReporterConfig
	out    *csv.Writer
	logger zerolog.Logger

	runningAverage float64
	episodes       int
	frames         int
	elapsed        time.Duration
	nextBoundary   int

	epochScores []float64
	records     []Record
}

// NewReporter returns a new Reporter writing its log to w. The title
// and header lines are written immediately.
func NewReporter(w io.Writer, c ReporterConfig,
	logger zerolog.Logger) (*Reporter, error) {
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("newReporter: %w", err)
	}

	r := &Reporter{
		config:       c,
		out:          csv.NewWriter(w),
		logger:       logger.With().Str("component", "epoch_reporter").Logger(),
		nextBoundary: c.StepsPerEpoch,
	}

	title := make([]string, len(Header))
	title[0] = c.Title
	title[1] = strconv.Itoa(c.StepsPerEpoch)
	if err := r.out.Write(title); err != nil {
		return nil, fmt.Errorf("newReporter: %w", err)
	}
	if err := r.out.Write(Header); err != nil {
		return nil, fmt.Errorf("newReporter: %w", err)
	}
	if err := r.Flush(); err != nil {
		return nil, fmt.Errorf("newReporter: %w", err)
	}

	return r, nil
}

// Track records a finished training episode with the given score,
// number of frames and wall-clock duration. The iteration is the number
// of learning updates performed so far.
//
// If the episode crossed an epoch boundary, Track returns the epoch's
// Record and true, after writing it to the log.
func (r *Reporter) Track(score float64, frames int, elapsed time.Duration,
	iteration int) (Record, bool, error) {
	r.episodes++
	r.frames += frames
	r.epochScores = append(r.epochScores, score)

	// Time spent filling the replay buffer is not training time
	if iteration > 0 {
		r.elapsed += elapsed
	}

	if r.episodes == 1 {
		r.runningAverage = score
	} else {
		alpha := r.config.Smoothing
		r.runningAverage = alpha*score + (1-alpha)*r.runningAverage
	}

	r.logger.Debug().
		Int("episode", r.episodes-1).
		Float64("score", score).
		Int("frames", frames).
		Int("iteration", iteration).
		Msg("training episode finished")

	if iteration < r.nextBoundary {
		return Record{}, false, nil
	}

	record := Record{
		Epoch:           r.nextBoundary / r.config.StepsPerEpoch,
		AverageScore:    r.runningAverage,
		Hours:           r.elapsed.Hours(),
		Episodes:        r.episodes,
		EpisodesInEpoch: len(r.epochScores),
		Frames:          r.frames,
		Iteration:       iteration,
		EpochMean:       stat.Mean(r.epochScores, nil),
	}

	event := r.logger.Info().
		Int("epoch", record.Epoch).
		Int("iteration", iteration).
		Float64("average_score", record.AverageScore).
		Float64("epoch_mean", record.EpochMean).
		Float64("hours", record.Hours)
	if iteration > 0 {
		event = event.Float64("hours_per_million",
			record.Hours/(float64(iteration)/1e6))
	}
	event.Msg("epoch finished")

	if err := r.out.Write(record.row()); err != nil {
		return Record{}, false, fmt.Errorf("track: %w", err)
	}
	if err := r.Flush(); err != nil {
		return Record{}, false, fmt.Errorf("track: %w", err)
	}

	r.records = append(r.records, record)
	r.epochScores = r.epochScores[:0]
	for r.nextBoundary <= iteration {
		r.nextBoundary += r.config.StepsPerEpoch
	}

	return record, true, nil
}

// NextBoundary returns the iteration at which the next epoch ends
func (r *Reporter) NextBoundary() int {
	return r.nextBoundary
}

// StepsPerEpoch returns the number of learning updates in an epoch
func (r *Reporter) StepsPerEpoch() int {
	return r.config.StepsPerEpoch
}

// RunningAverage returns the smoothed episode score
func (r *Reporter) RunningAverage() float64 {
	return r.runningAverage
}

// Records returns all Records emitted so far
func (r *Reporter) Records() []Record {
	out := make([]Record, len(r.records))
	copy(out, r.records)
	return out
}

// Flush writes any buffered log data to the underlying writer
func (r *Reporter) Flush() error {
	r.out.Flush()
	return r.out.Error()
}
