// Package sim plays match-three rounds headlessly with a bot and
// summarizes the outcome. It is used to tune presets: every round runs on
// an instant presenter, so a full round takes milliseconds.
package sim

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"runtime"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/cheggaaa/pb/v3"

	"github.com/vovakirdan/tui-match3/internal/match3"
)

// Strategy decides which legal move the bot plays.
type Strategy string

const (
	// StrategyFirst always plays the first move the analyzer reports.
	StrategyFirst Strategy = "first"
	// StrategyRandom picks uniformly among all legal moves.
	StrategyRandom Strategy = "random"
)

// ParseStrategy validates a strategy name. Empty means first.
func ParseStrategy(s string) (Strategy, error) {
	switch Strategy(s) {
	case "", StrategyFirst:
		return StrategyFirst, nil
	case StrategyRandom:
		return StrategyRandom, nil
	}
	return "", fmt.Errorf("unknown strategy %q (want first or random)", s)
}

// Options controls a simulation run.
type Options struct {
	Rounds   int
	Workers  int   // 0 uses GOMAXPROCS
	Seed     int64 // round i uses Seed+i
	Strategy Strategy

	// ThinkTime is charged to the round timer before every move.
	ThinkTime time.Duration
	// MaxMoves ends a round that never runs out of time.
	MaxMoves int

	Board        match3.Config
	Logger       *log.Logger
	ShowProgress bool
	Progress     io.Writer // defaults to stderr when ShowProgress is set
}

// DefaultOptions returns a 100-round run on the default board.
func DefaultOptions() Options {
	return Options{
		Rounds:    100,
		Seed:      1,
		Strategy:  StrategyFirst,
		ThinkTime: 1500 * time.Millisecond,
		MaxMoves:  500,
		Board:     match3.DefaultConfig(),
	}
}

// RoundResult is the outcome of one simulated round.
type RoundResult struct {
	Seed       int64 `json:"seed"`
	Score      int   `json:"score"`
	Level      int   `json:"level"`
	Moves      int   `json:"moves"`
	Cascades   int   `json:"cascades"`
	MaxCombo   int   `json:"max_combo"`
	Stalemates int   `json:"stalemates"`
	GameOver   bool  `json:"game_over"`
}

// ErrStuck is returned when a board stops settling between moves.
var ErrStuck = errors.New("sim: board did not settle")

// PlayRound plays one round with seed until the timer runs out or
// opts.MaxMoves moves have been made.
func PlayRound(ctx context.Context, opts Options, seed int64) (RoundResult, error) {
	cfg := opts.Board
	cfg.Seed = seed

	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	b, err := match3.New(cfg,
		match3.WithPresenter(&match3.InstantPresenter{}),
		match3.WithLogger(logger.With("seed", seed)),
	)
	if err != nil {
		return RoundResult{Seed: seed}, err
	}

	bot := rand.New(rand.NewSource(seed))
	res := RoundResult{Seed: seed}

loop:
	for res.Moves < opts.MaxMoves {
		if err := ctx.Err(); err != nil {
			return res, err
		}

		switch b.Phase() {
		case match3.PhaseGameOver:
			break loop
		case match3.PhaseNoMoreMoves:
			b.Reset()
			if b.Err() != nil {
				return res, b.Err()
			}
			continue
		case match3.PhaseInPlay:
		default:
			return res, fmt.Errorf("%w: phase %s", ErrStuck, b.Phase())
		}

		b.Tick(opts.ThinkTime)
		if b.Phase() != match3.PhaseInPlay {
			continue
		}

		mv := pick(b.Moves(), opts.Strategy, bot)
		if err := b.RequestSwap(mv.From, mv.To); err != nil {
			return res, err
		}
		res.Moves++
	}

	stats := b.Stats()
	res.Score = b.Score()
	res.Level = b.Level()
	res.Cascades = stats.Cascades
	res.MaxCombo = stats.MaxCombo
	res.Stalemates = stats.Stalemates
	res.GameOver = b.Phase() == match3.PhaseGameOver
	return res, nil
}

func pick(moves []match3.Move, s Strategy, rng *rand.Rand) match3.Move {
	if s == StrategyRandom {
		return moves[rng.Intn(len(moves))]
	}
	return moves[0]
}

// Run plays opts.Rounds rounds on a pool of workers and returns the report.
// Results are ordered by round, independent of scheduling.
func Run(ctx context.Context, opts Options) (*Report, error) {
	if opts.Rounds < 1 {
		return nil, fmt.Errorf("sim: rounds must be positive, got %d", opts.Rounds)
	}
	if opts.MaxMoves < 1 {
		return nil, fmt.Errorf("sim: max moves must be positive, got %d", opts.MaxMoves)
	}
	if err := opts.Board.Validate(); err != nil {
		return nil, err
	}
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	workers = min(workers, opts.Rounds)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	bar := pb.StartNew(opts.Rounds)
	switch {
	case !opts.ShowProgress:
		bar.SetWriter(io.Discard)
	case opts.Progress != nil:
		bar.SetWriter(opts.Progress)
	}

	results := make([]RoundResult, opts.Rounds)
	jobs := make(chan int, workers)

	var (
		wg       sync.WaitGroup
		errOnce  sync.Once
		firstErr error
	)
	wg.Add(workers)
	for range workers {
		go func() {
			defer wg.Done()
			for i := range jobs {
				res, err := PlayRound(ctx, opts, opts.Seed+int64(i))
				if err != nil {
					errOnce.Do(func() {
						firstErr = fmt.Errorf("round %d: %w", i, err)
						cancel()
					})
					continue
				}
				results[i] = res
				bar.Increment()
			}
		}()
	}

	start := time.Now()
feed:
	for i := range opts.Rounds {
		select {
		case jobs <- i:
		case <-ctx.Done():
			break feed
		}
	}
	close(jobs)
	wg.Wait()
	bar.Finish()

	if firstErr != nil {
		return nil, firstErr
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return NewReport(opts, results, time.Since(start)), nil
}
