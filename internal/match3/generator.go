package match3

import (
	"fmt"

	"github.com/charmbracelet/log"
)

// Generator builds starting boards: random fill, one row repair pass, one
// column repair pass, then a move check.
//
// The repair passes are not iterated to a fixed point. Retyping a cell to
// break a column run can, on rare boards, leave a row run behind. Such a
// board is still accepted if it has a legal move.
type Generator struct {
	rows        int
	cols        int
	wrap        bool
	types       TypeSet
	rng         Random
	maxAttempts int
	logger      *log.Logger
}

// NewGenerator creates a generator for cfg. cfg must already be valid.
func NewGenerator(cfg Config, types TypeSet, rng Random, logger *log.Logger) *Generator {
	attempts := cfg.MaxGenerateAttempts
	if attempts <= 0 {
		attempts = 1
	}
	if logger == nil {
		logger = discardLogger()
	}
	return &Generator{
		rows:        cfg.Rows,
		cols:        cfg.Columns,
		wrap:        cfg.WrapAround,
		types:       types,
		rng:         rng,
		maxAttempts: attempts,
		logger:      logger,
	}
}

// Generate returns a repaired board with at least one legal move.
func (gen *Generator) Generate() (*Grid, error) {
	for attempt := 1; attempt <= gen.maxAttempts; attempt++ {
		g := gen.Fill()
		gen.Repair(g)
		if AnalyzeMoves(g, gen.wrap).HasAnyMove {
			gen.logger.Debug("board generated", "attempt", attempt)
			return g, nil
		}
		gen.logger.Debug("generated board has no moves, retrying", "attempt", attempt)
	}
	return nil, fmt.Errorf("%w: %d attempts on %dx%d with %d types",
		ErrNoLegalMoveAfterGeneration, gen.maxAttempts, gen.rows, gen.cols, len(gen.types))
}

// Fill returns a grid of uniformly random tiles.
func (gen *Generator) Fill() *Grid {
	g := NewGrid(gen.rows, gen.cols)
	for r := 0; r < gen.rows; r++ {
		for c := 0; c < gen.cols; c++ {
			g.cells[r][c] = g.NewTile(gen.types.Random(gen.rng), P(r, c))
		}
	}
	return g
}

// Repair runs the row pass and then the column pass once each.
func (gen *Generator) Repair(g *Grid) {
	for r := 0; r < g.rows; r++ {
		gen.repairLine(g, g.cols, func(i int) Position { return P(r, i) })
	}
	for c := 0; c < g.cols; c++ {
		gen.repairLine(g, g.rows, func(i int) Position { return P(i, c) })
	}
}

// repairLine walks one line keeping a run counter. When the counter passes
// two the current cell is retyped and the counter restarts at zero. The
// tracked type is left alone, so a following cell of the old type starts a
// fresh count of one. In wrap mode the walk continues two cells past the
// end so runs across the seam are seen.
func (gen *Generator) repairLine(g *Grid, length int, at func(i int) Position) {
	end := length
	if gen.wrap && length >= 3 {
		end = length + 2
	}

	counter := 0
	var current TileType
	started := false
	for i := 0; i < end; i++ {
		p := at(i % length)
		t := g.at(p.Row, p.Col)
		if started && t.Type == current {
			counter++
		} else {
			current = t.Type
			counter = 1
			started = true
		}
		if counter > 2 {
			t.Type = gen.replacementType(g, p, t.Type)
			counter = 0
		}
	}
}

// replacementType picks a type for p that differs from everything in its
// 3x3 neighbourhood. If the palette is too small it only avoids the four
// orthogonal neighbours, and failing that any type other than old.
func (gen *Generator) replacementType(g *Grid, p Position, old TileType) TileType {
	ring := gen.neighbourhood(g, p, true)
	if cands := gen.excluding(ring); len(cands) > 0 {
		return cands[gen.rng.Intn(len(cands))]
	}
	cross := gen.neighbourhood(g, p, false)
	if cands := gen.excluding(cross); len(cands) > 0 {
		return cands[gen.rng.Intn(len(cands))]
	}
	if cands := gen.excluding(map[TileType]bool{old: true}); len(cands) > 0 {
		return cands[gen.rng.Intn(len(cands))]
	}
	return old
}

func (gen *Generator) neighbourhood(g *Grid, p Position, diagonals bool) map[TileType]bool {
	seen := make(map[TileType]bool, 9)
	for dr := -1; dr <= 1; dr++ {
		for dc := -1; dc <= 1; dc++ {
			if !diagonals && dr != 0 && dc != 0 {
				continue
			}
			q := P(p.Row+dr, p.Col+dc)
			if gen.wrap {
				q = g.wrapPos(q)
			} else if !g.InBounds(q) {
				continue
			}
			if t := g.at(q.Row, q.Col); t != nil {
				seen[t.Type] = true
			}
		}
	}
	return seen
}

func (gen *Generator) excluding(skip map[TileType]bool) []TileType {
	var out []TileType
	for _, t := range gen.types {
		if !skip[t] {
			out = append(out, t)
		}
	}
	return out
}
