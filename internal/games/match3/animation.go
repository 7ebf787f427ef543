package match3

import (
	"fmt"
	"math"
	"time"

	m3 "github.com/vovakirdan/tui-match3/internal/match3"
)

// animKind is what an animation does to its tile.
type animKind int

const (
	animMove animKind = iota
	animAppear
	animDisappear
)

// animation is one board animation request played back over whole ticks.
type animation struct {
	kind     animKind
	tile     *m3.Tile
	from     m3.Position
	to       m3.Position
	duration int // ticks
	elapsed  int
	done     m3.Event
}

// progress returns 0.0 → 1.0.
func (a *animation) progress() float64 {
	if a.duration <= 0 {
		return 1
	}
	return math.Min(float64(a.elapsed)/float64(a.duration), 1)
}

// bannerTicks is how long a banner stays up (~1.5s at 60fps).
const bannerTicks = 90

// banner is a short status message shown above the board.
type banner struct {
	text  string
	ticks int
}

func (b *banner) show(text string) {
	b.text = text
	b.ticks = bannerTicks
}

func (b *banner) step() {
	if b.ticks > 0 {
		b.ticks--
		if b.ticks == 0 {
			b.text = ""
		}
	}
}

// ticksFor converts a board duration into whole ticks, rounding up and at
// least one so that every completion is posted on a later Step than the
// request. The product is taken before dividing since a frame at 60 fps is
// not a whole number of nanoseconds.
func (g *Game) ticksFor(d time.Duration) int {
	return max(1, int((d*time.Duration(g.tickRate)+time.Second-1)/time.Second))
}

// advanceAnimations moves every running animation one tick forward and
// posts the completion of those that finished, in request order.
func (g *Game) advanceAnimations() {
	running := g.anims[:0]
	var finished []*animation
	for _, a := range g.anims {
		a.elapsed++
		if a.elapsed >= a.duration {
			finished = append(finished, a)
			continue
		}
		running = append(running, a)
	}
	g.anims = running
	for _, a := range finished {
		g.post(a.done)
	}
}

// Animating reports how many animations are in flight.
func (g *Game) Animating() int {
	return len(g.anims)
}

// animationFor returns the running animation of t, if any.
func (g *Game) animationFor(t *m3.Tile) *animation {
	for i := len(g.anims) - 1; i >= 0; i-- {
		if g.anims[i].tile == t {
			return g.anims[i]
		}
	}
	return nil
}

func (g *Game) post(e m3.Event) {
	if g.sink != nil {
		g.sink.Post(e)
	}
}

func (g *Game) start(a *animation) {
	g.anims = append(g.anims, a)
}

// Bind implements match3.Binder.
func (g *Game) Bind(p m3.Poster) {
	g.sink = p
}

// OnMoveStart implements match3.Presenter.
func (g *Game) OnMoveStart(m m3.Motion) {
	g.start(&animation{kind: animMove, tile: m.Tile, from: m.From, to: m.To, duration: g.ticksFor(m.Duration), done: m.Done})
}

// OnAppear implements match3.Presenter.
func (g *Game) OnAppear(t *m3.Tile, d time.Duration, done m3.Event) {
	g.start(&animation{kind: animAppear, tile: t, from: t.Pos, to: t.Pos, duration: g.ticksFor(d), done: done})
}

// OnDisappear implements match3.Presenter.
func (g *Game) OnDisappear(t *m3.Tile, d time.Duration, done m3.Event) {
	g.start(&animation{kind: animDisappear, tile: t, from: t.Pos, to: t.Pos, duration: g.ticksFor(d), done: done})
}

// OnHighlight implements match3.Presenter. Hint tiles carry the overlay.
func (g *Game) OnHighlight(*m3.Tile, bool) {}

// OnShake implements match3.Presenter. Every tile shakes together, so one
// flag is enough.
func (g *Game) OnShake(_ *m3.Tile, active bool) {
	g.shaking = active
}

// OnScoreChanged implements match3.Presenter. The HUD reads the board.
func (g *Game) OnScoreChanged(int) {}

// OnTimerSecondsAdded implements match3.Presenter.
func (g *Game) OnTimerSecondsAdded(seconds float64) {
	if seconds > 0 {
		g.banner.show(fmt.Sprintf("+%.2gs", seconds))
	}
}

// OnLevelAdvanced implements match3.Presenter.
func (g *Game) OnLevelAdvanced(level, basePoints int, baseBonus float64) {
	g.banner.show(fmt.Sprintf("Level %d! %d pts, +%.2gs per match", level, basePoints, baseBonus))
}

// OnTimerExpired implements match3.Presenter.
func (g *Game) OnTimerExpired() {
	g.banner.show("Time!")
}

// OnTimerCapped implements match3.Presenter.
func (g *Game) OnTimerCapped() {}

// OnPhaseChanged implements match3.Presenter.
func (g *Game) OnPhaseChanged(from, to m3.Phase) {
	if to == m3.PhaseNoMoreMoves {
		g.banner.show("No more moves")
	}
}

// easeOutQuad provides smooth deceleration for animation.
func easeOutQuad(t float64) float64 {
	return t * (2 - t)
}

// position returns the fractional (row, col) of the animated tile. Swaps
// across a wrap seam take the short way and are folded back onto the board.
// Refills start above the board and are never folded.
func (a *animation) position(rows, cols int, wrap bool) (row, col float64) {
	t := easeOutQuad(a.progress())
	wrap = wrap && a.from.Row < rows
	dr := float64(a.to.Row - a.from.Row)
	dc := float64(a.to.Col - a.from.Col)
	if wrap {
		dr = shortest(dr, rows)
		dc = shortest(dc, cols)
	}
	row = float64(a.from.Row) + dr*t
	col = float64(a.from.Col) + dc*t
	if wrap {
		row = foldF(row, rows)
		col = foldF(col, cols)
	}
	return row, col
}

func shortest(d float64, n int) float64 {
	half := float64(n) / 2
	switch {
	case d > half:
		return d - float64(n)
	case d < -half:
		return d + float64(n)
	}
	return d
}

// foldF wraps v into [-0.5, n-0.5) so rounding lands on a board cell.
func foldF(v float64, n int) float64 {
	f := float64(n)
	v = math.Mod(v+0.5, f)
	if v < 0 {
		v += f
	}
	return v - 0.5
}
