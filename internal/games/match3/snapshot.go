package match3

import (
	m3 "github.com/vovakirdan/tui-match3/internal/match3"
)

// Snapshot captures the complete game state for determinism testing and replay.
type Snapshot struct {
	Tick      uint64
	Mode      string // "linear" or "wrap"
	Cursor    m3.Position
	Paused    bool
	Animating int
	Board     m3.Snapshot
}

// Snapshot returns the current game snapshot for determinism verification.
func (g *Game) Snapshot() Snapshot {
	s := Snapshot{
		Tick:      g.tick,
		Mode:      string(g.mode),
		Cursor:    g.cursor,
		Paused:    g.paused,
		Animating: len(g.anims),
	}
	if g.board != nil {
		s.Board = g.board.Snapshot()
	}
	return s
}
