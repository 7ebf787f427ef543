package match3

import (
	"github.com/vovakirdan/tui-match3/internal/core"
	m3 "github.com/vovakirdan/tui-match3/internal/match3"
)

// handleInput turns one frame of platform input into board events.
// Pointer events are applied first, in arrival order.
func (g *Game) handleInput(in core.InputFrame) {
	for _, ev := range in.Pointer {
		g.handlePointer(ev)
	}

	switch {
	case in.Has(core.ActionUp):
		g.moveCursor(1, 0)
	case in.Has(core.ActionDown):
		g.moveCursor(-1, 0)
	case in.Has(core.ActionLeft):
		g.moveCursor(0, -1)
	case in.Has(core.ActionRight):
		g.moveCursor(0, 1)
	}

	if in.Has(core.ActionConfirm) {
		g.board.Select(g.cursor)
	}
	if in.Has(core.ActionBack) {
		if sel := g.board.Selected(); sel != nil {
			g.board.Deselect(sel.Pos)
		}
	}
	if in.Has(core.ActionHint) {
		g.board.ShowHints(!g.board.HintsShown())
	}
	if in.Has(core.ActionRestart) {
		switch g.board.Phase() {
		case m3.PhaseNoMoreMoves, m3.PhaseGameOver:
			g.board.Reset()
		}
	}
}

// handlePointer maps mouse events onto board cells. A press followed by a
// release on the same cell is a click; on another cell it is a drag.
func (g *Game) handlePointer(ev core.PointerEvent) {
	cell, ok := g.cellAt(ev.X, ev.Y)

	switch ev.Kind {
	case core.PointerPress:
		g.pressed = nil
		if ok {
			g.cursor = cell
			g.pressed = &cell
		}
	case core.PointerRelease:
		if g.pressed == nil {
			return
		}
		from := *g.pressed
		g.pressed = nil
		target := from
		if ok {
			target = cell
		}
		g.board.DragRelease(from, target)
	case core.PointerMotion:
		if g.hovered != nil && (!ok || cell != *g.hovered) {
			g.board.Unhover(*g.hovered)
			g.hovered = nil
		}
		if ok && g.hovered == nil {
			g.board.Hover(cell)
			g.hovered = &cell
		}
	}
}

// moveCursor moves the keyboard cursor, wrapping in wrap mode and stopping
// at the edge otherwise. Rows grow upwards.
func (g *Game) moveCursor(dRow, dCol int) {
	rows, cols := g.cfg.Board.Rows, g.cfg.Board.Columns
	r, c := g.cursor.Row+dRow, g.cursor.Col+dCol
	if g.mode == ModeWrap {
		g.cursor = m3.P(core.Wrap(r, rows), core.Wrap(c, cols))
		return
	}
	g.cursor = m3.P(core.Clamp(r, 0, rows-1), core.Clamp(c, 0, cols-1))
}

// Cursor returns the keyboard cursor position.
func (g *Game) Cursor() m3.Position {
	return g.cursor
}

// cellAt converts a screen coordinate into a board position.
func (g *Game) cellAt(x, y int) (m3.Position, bool) {
	col, fromTop, ok := g.boardRect().CellAt(x, y, cellWidth, cellHeight)
	if !ok {
		return m3.Position{}, false
	}
	return m3.P(g.cfg.Board.Rows-1-fromTop, col), true
}

// CellOrigin returns the screen coordinate of the glyph drawn for p.
func (g *Game) CellOrigin(p m3.Position) (x, y int) {
	r := g.boardRect()
	return r.X + p.Col*cellWidth + 1, r.Y + (g.cfg.Board.Rows-1-p.Row)*cellHeight
}
