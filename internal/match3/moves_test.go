package match3

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyzeMovesTemplates(t *testing.T) {
	tests := []struct {
		name string
		rows []string
		move Move
		wrap bool
	}{
		{
			name: "straight",
			rows: []string{"CDEF", "EFCD", "CDEF", "ABAA"},
			move: Move{From: P(0, 0), To: P(0, 1), Shape: ShapeStraight},
		},
		{
			name: "x",
			rows: []string{"CDEF", "EFCD", "ADAF", "CACD"},
			move: Move{From: P(0, 1), To: P(1, 1), Shape: ShapeX},
		},
		{
			name: "lying L",
			rows: []string{"CDEF", "EFCD", "CAAF", "ADCD"},
			move: Move{From: P(0, 0), To: P(1, 0), Shape: ShapeLyingL},
		},
		{
			name: "standing L",
			rows: []string{"CDEF", "EFAD", "CDAF", "DAEC"},
			move: Move{From: P(0, 1), To: P(0, 2), Shape: ShapeStandingL},
		},
		{
			name: "x across the seam",
			rows: []string{"CDEF", "EFCD", "CDEF", "AABC"},
			move: Move{From: P(0, 3), To: P(0, 0), Shape: ShapeX},
			wrap: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := gridOf(tt.rows...)
			require.False(t, HasMatches(g, tt.wrap))

			a := AnalyzeMoves(g, tt.wrap)
			require.True(t, a.HasAnyMove)
			assert.Equal(t, []Move{tt.move}, a.Moves)
			require.Len(t, a.Hints, 1)
			assert.Equal(t, tt.move.From, a.Hints[0].Pos)
			assert.True(t, a.IsHint(a.Hints[0]))

			// The move really completes a run.
			require.NoError(t, g.Swap(tt.move.From, tt.move.To))
			assert.True(t, HasMatches(g, tt.wrap))
		})
	}
}

func TestAnalyzeMovesSeamNeedsWrap(t *testing.T) {
	g := gridOf("CDEF", "EFCD", "CDEF", "AABC")

	assert.False(t, AnalyzeMoves(g, false).HasAnyMove)
	assert.True(t, AnalyzeMoves(g, true).HasAnyMove)
}

func TestAnalyzeMovesStalemate(t *testing.T) {
	for _, wrap := range []bool{false, true} {
		g := stalemateGrid()
		require.False(t, HasMatches(g, wrap))

		a := AnalyzeMoves(g, wrap)
		assert.False(t, a.HasAnyMove, "wrap=%v", wrap)
		assert.Empty(t, a.Hints)
		assert.Empty(t, a.Moves)
	}
}

func TestAnalyzeMovesEveryMoveMatches(t *testing.T) {
	for seed := 0; seed < 20; seed++ {
		cfg := DefaultConfig()
		cfg.Seed = int64(seed)
		b, err := New(cfg)
		require.NoError(t, err)

		grid := b.Grid()
		for _, m := range AnalyzeMoves(grid, cfg.WrapAround).Moves {
			require.NoError(t, grid.Swap(m.From, m.To))
			assert.True(t, HasMatches(grid, cfg.WrapAround), "seed %d move %v\n%s", seed, m, grid)
			require.NoError(t, grid.Swap(m.From, m.To))
		}
	}
}
