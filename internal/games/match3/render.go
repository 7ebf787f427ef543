package match3

import (
	"fmt"
	"math"
	"strings"

	"github.com/vovakirdan/tui-match3/internal/core"
	m3 "github.com/vovakirdan/tui-match3/internal/match3"
)

const (
	cellWidth  = 4 // Marker, glyph, marker, gap
	cellHeight = 2 // Glyph line, spacer line
	hudHeight  = 3
	timerBarW  = 20
)

// symbols gives each tile type a distinct shape so the board reads
// without color.
var symbols = []rune{'●', '▲', '◆', '■', '♥', '✚', '♣', '♠'}

func symbol(t m3.TileType) rune {
	if int(t) < len(symbols) {
		return symbols[t]
	}
	return t.Glyph()
}

// boardRect is the screen area covered by the cells.
func (g *Game) boardRect() core.Rect {
	w := g.cfg.Board.Columns * cellWidth
	h := g.cfg.Board.Rows * cellHeight
	return core.NewRect((g.screenW-w)/2, hudHeight+1, w, h)
}

// Render draws the game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.board == nil {
		g.drawOverlay(dst, dst.Width()/2, dst.Height()/2, "Cannot start round", trimErr(g.err))
		return
	}

	// Check screen size
	if g.tooSmall {
		g.renderTooSmall(dst)
		return
	}

	rect := g.boardRect()
	g.renderHUD(dst, rect)
	g.renderBoard(dst, rect)
	g.renderOverlays(dst, rect)
}

// renderTooSmall shows a "window too small" message.
func (g *Game) renderTooSmall(dst *core.Screen) {
	y := g.screenH / 2
	dst.DrawTextCentered(y, "Window too small")
	dst.DrawTextCentered(y+1, "Please resize terminal")
}

// renderHUD draws score, level, the cascade multiplier and the timer bar.
func (g *Game) renderHUD(dst *core.Screen, rect core.Rect) {
	dst.DrawStyledTextCentered(0, g.Title(), core.ColorBrightWhite, core.AttrBold)

	left := fmt.Sprintf("Score: %d", g.board.Score())
	dst.DrawText(rect.X-1, 1, left)

	info := fmt.Sprintf("Level %d", g.board.Level())
	if mult := g.board.Multiplier(); mult > 1 {
		info = fmt.Sprintf("x%d  %s", mult, info)
	}
	dst.DrawText(max(rect.X-1, rect.Right()-len(info)), 1, info)

	frac := g.board.TimerFraction()
	filled := int(math.Round(frac * timerBarW))
	color := core.ColorGreen
	switch {
	case frac < 0.2:
		color = core.ColorBrightRed
	case frac < 0.4:
		color = core.ColorYellow
	}
	bar := strings.Repeat("█", filled) + strings.Repeat("░", timerBarW-filled)
	secs := fmt.Sprintf(" %4.1fs", g.board.Remaining().Seconds())
	x := (g.screenW - timerBarW - len(secs)) / 2
	dst.DrawStyledText(x, 2, bar, color, 0)
	dst.DrawText(x+timerBarW, 2, secs)
}

// renderBoard draws the frame and every tile, animated ones at their
// interpolated position.
func (g *Game) renderBoard(dst *core.Screen, rect core.Rect) {
	dst.DrawBox(core.NewRect(rect.X-1, rect.Y-1, rect.W+1, rect.H+1), core.ColorGray)

	rows, cols := g.cfg.Board.Rows, g.cfg.Board.Columns
	wrap := g.mode == ModeWrap
	shake := 0
	if g.shaking && (g.tick/4)%2 == 0 {
		shake = 1
	}

	for _, t := range g.board.Grid().Tiles() {
		row, col := float64(t.Pos.Row), float64(t.Pos.Col)
		a := g.animationFor(t)
		if a != nil && a.kind == animMove {
			row, col = a.position(rows, cols, wrap)
		}

		r := int(math.Round(row))
		c := int(math.Round(col))
		if wrap && a != nil && a.from.Row < rows {
			r, c = core.Wrap(r, rows), core.Wrap(c, cols)
		}
		if r < 0 || r >= rows || c < 0 || c >= cols {
			continue // still above the board
		}

		x := rect.X + c*cellWidth + shake
		y := rect.Y + (rows-1-r)*cellHeight
		g.drawTile(dst, x, y, t, a)
	}

	if g.board.Settled() && g.board.Phase() == m3.PhaseInPlay {
		cx, cy := g.CellOrigin(g.cursor)
		cell := dst.GetCell(cx, cy)
		cell.Attr |= core.AttrReverse
		dst.SetCell(cx, cy, cell)
	}
}

// drawTile draws one tile: left marker, glyph, right marker.
func (g *Game) drawTile(dst *core.Screen, x, y int, t *m3.Tile, a *animation) {
	fg := core.ColorDefault
	if int(t.Type) < len(g.colors) {
		fg = g.colors[t.Type]
	}
	glyph := symbol(t.Type)
	var attr core.Attr

	left, right := ' ', ' '
	switch t.Overlay {
	case m3.OverlaySelected:
		left, right = '[', ']'
		attr |= core.AttrBold
	case m3.OverlayHighlighted:
		left, right = '<', '>'
	case m3.OverlayHover:
		attr |= core.AttrUnderline
	}

	if a != nil {
		switch a.kind {
		case animDisappear:
			attr |= core.AttrFaint
			if a.progress() >= 0.5 {
				glyph = '·'
			}
		case animAppear:
			if a.progress() < 0.5 {
				attr |= core.AttrFaint
			}
		}
	}

	dst.SetCell(x, y, core.Cell{Rune: left, Fg: core.ColorBrightYellow, Attr: core.AttrBold})
	dst.SetCell(x+1, y, core.Cell{Rune: glyph, Fg: fg, Attr: attr})
	dst.SetCell(x+2, y, core.Cell{Rune: right, Fg: core.ColorBrightYellow, Attr: core.AttrBold})
}

// renderOverlays draws the banner and game state overlays.
func (g *Game) renderOverlays(dst *core.Screen, rect core.Rect) {
	if g.banner.text != "" {
		dst.DrawStyledTextCentered(rect.Bottom()+1, g.banner.text, core.ColorBrightYellow, core.AttrBold)
	}

	centerX, centerY := rect.Center()

	if g.paused {
		g.drawOverlay(dst, centerX, centerY, "PAUSED", "Press P to resume")
		return
	}

	switch g.board.Phase() {
	case m3.PhaseNoMoreMoves:
		g.drawOverlay(dst, centerX, centerY, "NO MORE MOVES", "Press R for a new board")
	case m3.PhaseGameOver:
		scoreStr := fmt.Sprintf("Score: %d  Level: %d", g.board.Score(), g.board.Level())
		g.drawOverlay(dst, centerX, centerY, "GAME OVER", scoreStr, "Press R to restart")
	}
}

// drawOverlay draws a centered text overlay.
func (g *Game) drawOverlay(dst *core.Screen, centerX, centerY int, lines ...string) {
	// Find max line width
	maxLen := 0
	for _, line := range lines {
		maxLen = max(maxLen, len(line))
	}

	// Draw box
	boxW := maxLen + 4
	boxH := len(lines) + 2
	box := core.NewRect(centerX-boxW/2, centerY-boxH/2, boxW, boxH)

	// Clear area behind overlay
	dst.DrawRect(box, ' ')
	dst.DrawBox(box, core.ColorBrightWhite)

	for i, line := range lines {
		x := centerX - len(line)/2
		dst.DrawStyledText(x, box.Y+1+i, line, core.ColorBrightWhite, core.AttrBold)
	}
}

func trimErr(err error) string {
	if err == nil {
		return ""
	}
	s := err.Error()
	if len(s) > 60 {
		s = s[:57] + "..."
	}
	return s
}
