package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"github.com/samuelfneumann/fastdqn/agent"
	"github.com/samuelfneumann/fastdqn/environment"
	"github.com/samuelfneumann/fastdqn/environment/envconfig"
	"github.com/samuelfneumann/fastdqn/environment/gym"
	"github.com/samuelfneumann/fastdqn/experiment"
	"github.com/samuelfneumann/fastdqn/experiment/checkpointer"
	"github.com/samuelfneumann/fastdqn/experiment/epoch"
	"github.com/samuelfneumann/fastdqn/experiment/trackers"
)

var (
	verbose         = flag.Bool("verbose", false, "verbose output")
	memory          = flag.Int("memory", 500000, "Capacity of replay memory")
	explore         = flag.Int("explore", 1000000, "Number of iterations needed for epsilon to reach 0.1")
	gamma           = flag.Float64("gamma", 0.95, "Discount factor of future rewards (0,1]")
	memoryThreshold = flag.Int("memory_threshold", 100, "Enough amount of transitions to start learning")
	skipFrame       = flag.Int("skip_frame", 4, "Number of frames each action is repeated for")
	showFrame       = flag.Bool("show_frame", false, "Show the current frame in the terminal")
	model           = flag.String("model", "", "Model file to load")
	evaluate        = flag.Bool("evaluate", false, "Evaluation mode: only playing a game, no updates")
	evalEpsilon     = flag.Float64("evaluate_with_epsilon", 0.05, "Epsilon value to be used in evaluation mode")
	repeatGames     = flag.Int("repeat_games", 1, "Number of games played in evaluation mode")
	stepsPerEpoch   = flag.Int("steps_per_epoch", 5000, "Number of training steps per epoch")

	config          = flag.String("config", "", "JSON experiment configuration, overridden by any flags given")
	envName         = flag.String("env", "Catch", "Environment to play: Catch or Gym")
	gymID           = flag.String("gym", "PongNoFrameskip-v4", "Gym environment, used with -env Gym")
	episodes        = flag.Int("episodes", 0, "Number of training episodes, 0 to train until stopped")
	logPath         = flag.String("log", "./training_log.csv", "Training log file")
	plotPath        = flag.String("plot", "", "HTML file to plot the training log to")
	saveFrames      = flag.String("save_frames", "", "Directory to save every decision frame to")
	dataDir         = flag.String("data", "", "Directory to save episode scores and lengths to")
	checkpointEvery = flag.Int("checkpoint_every", 0, "Save the model every this many iterations, 0 to never")
	seed            = flag.Uint64("seed", 0, "Random seed")
	progress        = flag.Bool("progress", false, "Show progress towards the next epoch")
)

func main() {
	flag.Parse()

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if *verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	logger := zerolog.New(zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
	}).With().Timestamp().Logger()

	if err := run(logger); err != nil {
		logger.Fatal().Err(err).Msg("fast_dqn failed")
	}
}

// buildConfig returns the experiment configuration. Flags given on the
// command line override the configuration file.
func buildConfig() (experiment.Config, error) {
	c := experiment.DefaultConfig()
	if *config != "" {
		var err error
		if c, err = experiment.LoadConfig(*config); err != nil {
			return experiment.Config{}, err
		}
	}

	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "memory":
			c.ReplayCapacity = *memory
		case "explore":
			c.ExploreHorizon = *explore
		case "gamma":
			c.Gamma = *gamma
		case "memory_threshold":
			c.ReplayThreshold = *memoryThreshold
		case "skip_frame":
			c.FrameSkip = *skipFrame
		case "evaluate":
			c.Evaluate = *evaluate
		case "evaluate_with_epsilon":
			c.EvalEpsilon = *evalEpsilon
		case "repeat_games":
			c.EvalGames = *repeatGames
		case "steps_per_epoch":
			c.StepsPerEpoch = *stepsPerEpoch
		case "seed":
			c.Seed = *seed
		case "env", "gym":
			name := envconfig.EnvName(*envName)
			if c.EnvConf.Name != name {
				c.EnvConf = envconfig.Default(name)
			}
			if name == envconfig.Gym {
				c.EnvConf.GymID = *gymID
			}
		}
	})
	if err := c.Validate(); err != nil {
		return experiment.Config{}, err
	}
	return c, nil
}

func run(logger zerolog.Logger) error {
	defer gym.Finalize()

	c, err := buildConfig()
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	e, err := c.CreateEnvironment()
	if err != nil {
		return err
	}
	defer environment.Close(e)

	a, err := c.CreateAgent(e.NumActions())
	if err != nil {
		return err
	}
	if closer, ok := a.(agent.Closer); ok {
		defer closer.Close()
	}

	if *model != "" {
		logger.Info().Str("model", *model).Msg("loading model")
		if err := a.Load(*model); err != nil {
			return err
		}
	}

	s, err := experiment.NewSession(c, e, a, logger)
	if err != nil {
		return err
	}
	if err := registerTrackers(s); err != nil {
		return err
	}

	if c.Evaluate {
		if _, err := s.Evaluate(c.EvalGames); err != nil {
			return err
		}
		return s.SaveTrackers()
	}

	return train(c, s, a, logger)
}

func registerTrackers(s *experiment.Session) error {
	if *showFrame {
		s.Register(trackers.NewDisplay(os.Stdout))
	}

	if *saveFrames != "" {
		f, err := trackers.NewFrames(*saveFrames)
		if err != nil {
			return err
		}
		s.Register(f)
	}

	if *dataDir != "" {
		if err := os.MkdirAll(*dataDir, 0o755); err != nil {
			return err
		}
		s.Register(trackers.NewReturn(filepath.Join(*dataDir, "scores.bin")))
		s.Register(trackers.NewEpisodeLength(
			filepath.Join(*dataDir, "lengths.bin")))
	}
	return nil
}

func train(c experiment.Config, s *experiment.Session, a agent.Agent,
	logger zerolog.Logger) error {
	if *checkpointEvery > 0 {
		n, err := checkpointer.NewNStep(*checkpointEvery, a,
			checkpointer.FilenameEnumerator(0, "./dqn_checkpoint_", ".bin"))
		if err != nil {
			return err
		}
		s.AddCheckpointer(n)
	}
	if *progress {
		s.ShowProgress(os.Stdout)
	}

	logFile, err := os.Create(*logPath)
	if err != nil {
		return err
	}
	defer logFile.Close()

	if err := s.Start(logFile); err != nil {
		return err
	}
	trainErr := s.Train(*episodes)
	if err := s.Stop(); err != nil && trainErr == nil {
		trainErr = err
	}
	if trainErr != nil {
		return trainErr
	}

	if *plotPath != "" {
		plot, err := os.Create(*plotPath)
		if err != nil {
			return err
		}
		defer plot.Close()

		if err := epoch.Plot(c.Title(), s.Records(), plot); err != nil {
			return err
		}
		logger.Info().Str("plot", *plotPath).Msg("training curve saved")
	}
	return nil
}
