package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-match3/internal/config"
	"github.com/vovakirdan/tui-match3/internal/sim"
)

var (
	flagSimRounds   int
	flagSimWorkers  int
	flagSimStrategy string
	flagSimThink    time.Duration
	flagSimMaxMoves int
	flagSimOut      string
	flagSimQuiet    bool
)

var simCmd = &cobra.Command{
	Use:   "sim",
	Short: "Let a bot play many rounds and summarize them",
	Long: `Play rounds headlessly with a bot and print score, level, move and
cascade statistics. Useful for tuning configs and difficulty presets.

The bot waits --think before every move; that time is taken off the round
timer. Round i uses seed --seed + i, so runs are reproducible.

Examples:
  match3 sim
  match3 sim --rounds 1000 --workers 8 --difficulty hard
  match3 sim --wrap --strategy random --out report.json.zst`,
	Args: cobra.NoArgs,
	Run:  runSim,
}

func init() {
	simCmd.Flags().IntVar(&flagSimRounds, "rounds", 100, "Number of rounds")
	simCmd.Flags().IntVar(&flagSimWorkers, "workers", 0, "Parallel workers (0 = number of CPUs)")
	simCmd.Flags().StringVar(&flagSimStrategy, "strategy", "first", "Bot strategy: first, random")
	simCmd.Flags().DurationVar(&flagSimThink, "think", 1500*time.Millisecond, "Time the bot spends per move")
	simCmd.Flags().IntVar(&flagSimMaxMoves, "max-moves", 500, "Move limit per round")
	simCmd.Flags().StringVar(&flagSimOut, "out", "", "Write a JSON report (.zst suffix compresses)")
	simCmd.Flags().BoolVar(&flagSimQuiet, "quiet", false, "Hide the progress bar")
	simCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	simCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	simCmd.Flags().BoolVar(&flagWrap, "wrap", false, "Simulate the wrap-around board")
}

func runSim(_ *cobra.Command, _ []string) {
	if err := simulate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func simulate() error {
	logger, closeLog, err := newLogger(false)
	if err != nil {
		return err
	}
	defer closeLog()

	strategy, err := sim.ParseStrategy(flagSimStrategy)
	if err != nil {
		return err
	}
	preset, err := config.ParsePreset(flagDifficulty)
	if err != nil {
		return err
	}
	cfg, err := config.LoadMatch3(flagConfig)
	if err != nil {
		return err
	}
	config.ApplyMatch3Preset(&cfg, preset)

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	opts := sim.DefaultOptions()
	opts.Rounds = flagSimRounds
	opts.Workers = flagSimWorkers
	opts.Seed = seed
	opts.Strategy = strategy
	opts.ThinkTime = flagSimThink
	opts.MaxMoves = flagSimMaxMoves
	opts.Board = cfg.ToBoardConfig(flagWrap)
	opts.ShowProgress = !flagSimQuiet

	// Board events are only worth the noise when debugging.
	if logger.GetLevel() <= log.DebugLevel {
		opts.Logger = logger
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	logger.Info("simulation starting", "rounds", opts.Rounds, "difficulty", preset, "wrap", flagWrap, "seed", seed)
	report, err := sim.Run(ctx, opts)
	if err != nil {
		return err
	}

	if err := report.Format(os.Stdout); err != nil {
		return err
	}

	if flagSimOut != "" {
		if err := report.Save(flagSimOut); err != nil {
			return err
		}
		logger.Info("report written", "path", flagSimOut)
	}
	return nil
}
