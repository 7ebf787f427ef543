package sim

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-match3/internal/match3"
)

func smallOptions() Options {
	opts := DefaultOptions()
	opts.Rounds = 6
	opts.MaxMoves = 60
	opts.ThinkTime = 3 * time.Second
	return opts
}

func TestParseStrategy(t *testing.T) {
	s, err := ParseStrategy("")
	require.NoError(t, err)
	assert.Equal(t, StrategyFirst, s)

	s, err = ParseStrategy("random")
	require.NoError(t, err)
	assert.Equal(t, StrategyRandom, s)

	_, err = ParseStrategy("greedy")
	assert.Error(t, err)
}

func TestPlayRoundDeterministic(t *testing.T) {
	for _, strategy := range []Strategy{StrategyFirst, StrategyRandom} {
		t.Run(string(strategy), func(t *testing.T) {
			opts := smallOptions()
			opts.Strategy = strategy

			a, err := PlayRound(context.Background(), opts, 42)
			require.NoError(t, err)
			b, err := PlayRound(context.Background(), opts, 42)
			require.NoError(t, err)

			assert.Equal(t, a, b)
			assert.Positive(t, a.Moves)
			assert.Positive(t, a.Score)
			assert.GreaterOrEqual(t, a.Level, 1)
			assert.GreaterOrEqual(t, a.Cascades, a.Moves, "every legal move clears at least one group")
		})
	}
}

func TestPlayRoundEndsOnTimer(t *testing.T) {
	opts := smallOptions()
	opts.MaxMoves = 10_000
	opts.ThinkTime = 20 * time.Second

	res, err := PlayRound(context.Background(), opts, 3)
	require.NoError(t, err)
	assert.True(t, res.GameOver)
	assert.Less(t, res.Moves, opts.MaxMoves)
}

func TestPlayRoundWrapAround(t *testing.T) {
	opts := smallOptions()
	opts.Board.WrapAround = true

	res, err := PlayRound(context.Background(), opts, 9)
	require.NoError(t, err)
	assert.Positive(t, res.Moves)
}

func TestPlayRoundCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := PlayRound(ctx, smallOptions(), 1)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRunIndependentOfWorkers(t *testing.T) {
	opts := smallOptions()

	opts.Workers = 1
	serial, err := Run(context.Background(), opts)
	require.NoError(t, err)

	opts.Workers = 4
	parallel, err := Run(context.Background(), opts)
	require.NoError(t, err)

	require.Len(t, serial.Results, opts.Rounds)
	assert.Equal(t, serial.Results, parallel.Results)
	assert.Equal(t, serial.Summary, parallel.Summary)
	for i, r := range serial.Results {
		assert.Equal(t, opts.Seed+int64(i), r.Seed)
	}
}

func TestRunRejectsBadOptions(t *testing.T) {
	opts := smallOptions()
	opts.Rounds = 0
	_, err := Run(context.Background(), opts)
	assert.Error(t, err)

	opts = smallOptions()
	opts.Board.Types = 0
	_, err = Run(context.Background(), opts)
	assert.ErrorIs(t, err, match3.ErrEmptyTypeSet)
}

func TestSummarize(t *testing.T) {
	results := []RoundResult{
		{Score: 10, Level: 1, Moves: 2, GameOver: true},
		{Score: 20, Level: 1, Moves: 4, GameOver: true},
		{Score: 30, Level: 2, Moves: 6},
		{Score: 40, Level: 2, Moves: 8, GameOver: true},
	}

	s := Summarize(results)
	assert.Equal(t, 4, s.Rounds)
	assert.Equal(t, 3, s.GameOvers)
	assert.InDelta(t, 25, s.Score.Mean, 1e-9)
	assert.InDelta(t, 12.9099, s.Score.Std, 1e-4)
	assert.Equal(t, 10.0, s.Score.Min)
	assert.Equal(t, 40.0, s.Score.Max)
	assert.Equal(t, 20.0, s.Score.P50)
	assert.Equal(t, 40.0, s.Score.P90)
	assert.InDelta(t, 1.5, s.Level.Mean, 1e-9)

	single := Summarize(results[:1])
	assert.Equal(t, 0.0, single.Score.Std)
	assert.Equal(t, 10.0, single.Score.Mean)

	assert.Equal(t, Summary{}, Summarize(nil))
}

func TestReportFormat(t *testing.T) {
	opts := smallOptions()
	results := []RoundResult{{Score: 12345, Level: 2, Moves: 30}, {Score: 2000, Level: 1, Moves: 10}}
	r := NewReport(opts, results, 2*time.Second)

	var buf bytes.Buffer
	require.NoError(t, r.Format(&buf))
	out := buf.String()

	assert.Contains(t, out, "8x8, 6 types, linear, first bot")
	assert.Contains(t, out, "12,345")
	assert.Contains(t, out, "max combo")

	// Every table line has the same width.
	var width int
	for _, line := range strings.Split(out, "\n") {
		if !strings.HasPrefix(line, "+") && !strings.HasPrefix(line, "|") {
			continue
		}
		if width == 0 {
			width = len(line)
		}
		assert.Equal(t, width, len(line), "misaligned line %q", line)
	}
}

func TestReportSaveLoad(t *testing.T) {
	opts := smallOptions()
	r := NewReport(opts, []RoundResult{{Seed: 1, Score: 50, Level: 1, Moves: 3}}, time.Second)

	for _, name := range []string{"report.json", "report.json.zst"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), name)
			require.NoError(t, r.Save(path))

			got, err := LoadReport(path)
			require.NoError(t, err)
			assert.Equal(t, r.Results, got.Results)
			assert.Equal(t, r.Summary, got.Summary)
			assert.Equal(t, r.Board, got.Board)
		})
	}
}
